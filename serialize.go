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

import (
	"bytes"
	"io"
	"net"
)

// Sink is the gather-write callback the serializer emits through: each
// call carries up to four byte-slice segments (e.g. opening quote, key
// bytes, closing quote, colon) so the backing destination can batch them
// into one underlying write — a buffer, an io.Writer, or (via SerializeTo)
// a vectored net.Buffers write. A nil Sink means "count bytes only, write
// nothing", which is how Length and WriteTo share one walk.
type Sink func(segments ...[]byte) error

var (
	sQuote        = []byte{'"'}
	sColon        = []byte{':'}
	sComma        = []byte{','}
	sNewline      = []byte{'\n'}
	sOpenBrace    = []byte{'{'}
	sCloseBrace   = []byte{'}'}
	sOpenBracket  = []byte{'['}
	sCloseBracket = []byte{']'}
)

func indentRun(width, depth int) []byte {
	n := width * depth
	if n <= 0 {
		return nil
	}
	return bytes.Repeat([]byte{' '}, n)
}

// Length returns the exact number of bytes WriteTo would write for the
// same (nav, indent) pair, without writing any of them — the calc_length
// walk of spec.md §4.6, sharing the emit walk's exact control flow so the
// two can never disagree.
func Length(nav Navigator, indent int) int {
	n, _ := serializeWalk(nav, indent, nil)
	return n
}

// WriteTo walks nav's scope, writing textual JSON through sink. indent is
// the number of spaces per nesting level; 0 produces compact output with
// no inter-token whitespace, whatever the source's spacing. Returns the number of
// bytes written (== Length(nav, indent) on success).
func WriteTo(sink Sink, nav Navigator, indent int) (int, error) {
	return serializeWalk(nav, indent, sink)
}

// Serialize renders nav's scope to a freshly allocated byte slice.
func Serialize(nav Navigator, indent int) ([]byte, error) {
	buf := make([]byte, 0, Length(nav, indent))
	sink := func(segments ...[]byte) error {
		for _, s := range segments {
			buf = append(buf, s...)
		}
		return nil
	}
	if _, err := serializeWalk(nav, indent, sink); err != nil {
		return nil, err
	}
	return buf, nil
}

// SerializeTo writes nav's scope to w. Each gather-write call is handed to
// w as a single net.Buffers.WriteTo, which performs one vectored write
// when w is a connection that supports it and otherwise calls w.Write
// once per segment.
func SerializeTo(w io.Writer, nav Navigator, indent int) (int64, error) {
	var total int64
	sink := func(segments ...[]byte) error {
		bufs := make(net.Buffers, len(segments))
		copy(bufs, segments)
		n, err := bufs.WriteTo(w)
		total += n
		return err
	}
	if _, err := serializeWalk(nav, indent, sink); err != nil {
		return total, err
	}
	return total, nil
}

// serializeWalk implements spec.md §4.6's single pass over
// [start_token .. end_token]: every rule (key emission, container
// open/close, leaf quoting, sibling commas and indentation) lives here
// once, shared by the counting and emitting callers via sink == nil.
func serializeWalk(nav Navigator, indent int, sink Sink) (int, error) {
	doc := nav.doc
	tokens := doc.Tokens
	src := doc.Source
	start := nav.begin

	var last int32
	if t := tokens[start].Type; t == TypeObject || t == TypeArray {
		last = tokens[start].End
	} else {
		last = start
	}

	type frame struct{ count int }
	var stack []frame
	depth := 0
	total := 0

	write := func(segments ...[]byte) error {
		for _, s := range segments {
			total += len(s)
		}
		if sink == nil {
			return nil
		}
		return sink(segments...)
	}

	for i := start; i <= last; i++ {
		tok := &tokens[i]

		if tok.Type == TypeObjectEnd || tok.Type == TypeArrayEnd {
			popped := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			depth--
			closer := sCloseBrace
			if tok.Type == TypeArrayEnd {
				closer = sCloseBracket
			}
			if indent > 0 && popped.count > 0 {
				if err := write(sNewline, indentRun(indent, depth)); err != nil {
					return total, err
				}
			}
			if err := write(closer); err != nil {
				return total, err
			}
			continue
		}

		if i != start {
			parent := &stack[len(stack)-1]
			if parent.count > 0 {
				if err := write(sComma); err != nil {
					return total, err
				}
			}
			if indent > 0 {
				if err := write(sNewline, indentRun(indent, depth)); err != nil {
					return total, err
				}
			}
			parent.count++
		}

		if doc.HasKey(int(i)) {
			if err := write(sQuote, tok.Key(src), sQuote, sColon); err != nil {
				return total, err
			}
		}

		switch tok.Type {
		case TypeObject:
			if err := write(sOpenBrace); err != nil {
				return total, err
			}
			stack = append(stack, frame{})
			depth++
		case TypeArray:
			if err := write(sOpenBracket); err != nil {
				return total, err
			}
			stack = append(stack, frame{})
			depth++
		case TypeString:
			if err := write(sQuote, tok.Val(src), sQuote); err != nil {
				return total, err
			}
		default:
			if err := write(tok.Val(src)); err != nil {
				return total, err
			}
		}
	}

	return total, nil
}
