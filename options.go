/*
 * MinIO Cloud Storage, (C) 2020 MinIO, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package flatjson

// Option configures a parse. Options compose the same way the teacher
// library's ParserOption does: a function that mutates a private config
// struct, returning an error for options that fail validation.
type Option func(*config) error

type config struct {
	keyLengthWidth   uint
	valueLengthWidth uint
	childrenWidth    uint
	checkOverflow    bool
	useSIMD          bool
	despaced         bool
	hexNumbers       bool
	alignedTokens    bool
	alloc            func(n int) []Token
}

func defaultConfig() *config {
	return &config{
		keyLengthWidth:   8,
		valueLengthWidth: 16,
		childrenWidth:    16,
		checkOverflow:    true,
		useSIMD:          true,
		despaced:         false,
		hexNumbers:       false,
		alignedTokens:    false,
	}
}

func (c *config) maxKeyLength() uint32   { return 1<<c.keyLengthWidth - 1 }
func (c *config) maxValueLength() uint32 { return 1<<c.valueLengthWidth - 1 }
func (c *config) maxChilds() uint32      { return 1<<c.childrenWidth - 1 }

// WithKeyLengthWidth sets the number of bits available to an object
// member key's length before ErrKeyLengthOverflow is raised. Default 8.
func WithKeyLengthWidth(bits uint) Option {
	return func(c *config) error {
		if bits == 0 || bits > 32 {
			return errOption("key_length_width", bits)
		}
		c.keyLengthWidth = bits
		return nil
	}
}

// WithValueLengthWidth sets the number of bits available to a value's
// text length before ErrValueLengthOverflow is raised. Default 16.
func WithValueLengthWidth(bits uint) Option {
	return func(c *config) error {
		if bits == 0 || bits > 32 {
			return errOption("value_length_width", bits)
		}
		c.valueLengthWidth = bits
		return nil
	}
}

// WithChildrenWidth sets the number of bits available to a container's
// child count before ErrChildsOverflow is raised. Default 16.
func WithChildrenWidth(bits uint) Option {
	return func(c *config) error {
		if bits == 0 || bits > 32 {
			return errOption("children_width", bits)
		}
		c.childrenWidth = bits
		return nil
	}
}

// WithOverflowChecks toggles the key/value/children width checks
// (dont_check_overflow in the source library). Disabling them is unsafe
// and intended only for trusted input where the configured widths are
// known never to be hit. Default true.
func WithOverflowChecks(enabled bool) Option {
	return func(c *config) error {
		c.checkOverflow = enabled
		return nil
	}
}

// WithSIMD toggles the word-parallel string/number scanners (C2). When
// false, the scalar fallback is used unconditionally (dont_use_simd).
// Default true; simdSupported still gates whether the wide path is used.
func WithSIMD(enabled bool) Option {
	return func(c *config) error {
		c.useSIMD = enabled
		return nil
	}
}

// WithDespacedInput asserts the source has no insignificant whitespace
// between tokens, skipping the inter-token whitespace-skip. Parsing a
// source that does contain insignificant whitespace under this option is
// undefined (despaced_input). Default false.
func WithDespacedInput(despaced bool) Option {
	return func(c *config) error {
		c.despaced = despaced
		return nil
	}
}

// WithHexNumbers accepts a leading "0x"/"0X" followed by hex digits as a
// NUMBER token, an extension RFC 8259 forbids. Default false (strict).
func WithHexNumbers(enabled bool) Option {
	return func(c *config) error {
		c.hexNumbers = enabled
		return nil
	}
}

// WithAlignedTokens controls the capacity of the token slice Parse
// allocates after its counting pass (dont_pack_tokens in the source
// library). false (default) allocates exactly the counted number of
// tokens; true rounds the capacity up to the next power of two, at the
// cost of a larger live slice. It has no effect when WithAllocator is set.
func WithAlignedTokens(aligned bool) Option {
	return func(c *config) error {
		c.alignedTokens = aligned
		return nil
	}
}

// WithAllocator supplies the function used to obtain the backing token
// slice when Parse allocates it, replacing the source
// library's allocate-by-size/free-by-pointer function pointer pair (Go's
// GC makes the free half moot). The function receives the exact token
// count required and must return a slice with at least that length.
func WithAllocator(alloc func(n int) []Token) Option {
	return func(c *config) error {
		if alloc == nil {
			return errOption("allocator", 0)
		}
		c.alloc = alloc
		return nil
	}
}

func errOption(name string, v uint) error {
	return &optionError{name: name, value: v}
}

type optionError struct {
	name  string
	value uint
}

func (e *optionError) Error() string {
	return "flatjson: invalid option " + e.name
}

func buildConfig(opts []Option) (*config, error) {
	c := defaultConfig()
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}
