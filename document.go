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
	"errors"
	"fmt"
	"io"
)

// Document owns a parsed token array together with the source buffer its
// tokens reference. Tokens never copy out of Source, so a Document is
// only valid as long as Source is unmodified and alive — the Go
// equivalent of the source library's implicit "caller keeps the buffer
// alive" precondition, made explicit by this type's field rather than a
// comment.
type Document struct {
	Source []byte
	Tokens []Token

	cfg *config
}

// Parse parses src into a freshly allocated Document.
//
// The token count isn't known up front, so this runs the two-pass
// discipline of spec.md §4.3: a throw-away counting pass (every branch
// that can fail executes, no tokens are written) sizes the allocation,
// then a second pass fills it. Because both passes share the exact same
// code path, a document that fails the count pass also fails the fill
// pass and vice versa — no wasted allocation on a document that will
// fail anyway.
func Parse(src []byte, opts ...Option) (*Document, error) {
	cfg, err := buildConfig(opts)
	if err != nil {
		return nil, err
	}

	counter := &parser{cfg: cfg, src: src, mode: modeCount}
	if _, err := counter.run(); err != nil {
		return nil, err
	}
	n := counter.count

	tokens, err := allocateTokens(cfg, n)
	if err != nil {
		return nil, err
	}

	filler := &parser{cfg: cfg, src: src, mode: modeFill, tokens: tokens[:0]}
	if _, err := filler.run(); err != nil {
		return nil, err
	}

	return &Document{Source: src, Tokens: filler.tokens, cfg: cfg}, nil
}

// ParseInto parses src into the caller-provided dst slice, never
// allocating a token array of its own (construction shape: fixed token
// buffer, either caller- or parser-owned in the source library's terms).
// It returns the number of tokens written, or ErrNoFreeTokens wrapped in
// a *ParseError if dst is too small. Tokens written before a failure are
// valid under the invariants of spec.md §3 but a truncated trailing
// container may be missing its End link — check the error before
// traversing dst.
func ParseInto(dst []Token, src []byte, opts ...Option) (int, error) {
	cfg, err := buildConfig(opts)
	if err != nil {
		return 0, err
	}
	p := &parser{cfg: cfg, src: src, mode: modeFixed, fixedTokens: dst}
	if _, err := p.run(); err != nil {
		return p.fixedCursor, err
	}
	return p.fixedCursor, nil
}

// Count returns the number of tokens src would parse into, without
// allocating or writing any of them (modeCount). Callers that manage
// their own fixed buffers can use this to size one before calling
// ParseInto.
func Count(src []byte, opts ...Option) (int, error) {
	cfg, err := buildConfig(opts)
	if err != nil {
		return 0, err
	}
	p := &parser{cfg: cfg, src: src, mode: modeCount}
	if _, err := p.run(); err != nil {
		return 0, err
	}
	return p.count, nil
}

func allocateTokens(cfg *config, n int) ([]Token, error) {
	if cfg.alloc != nil {
		t := cfg.alloc(n)
		if len(t) < n {
			return nil, errors.New("flatjson: allocator returned fewer tokens than requested")
		}
		return t[:n], nil
	}
	if cfg.alignedTokens {
		return make([]Token, 0, nextPow2(n)), nil
	}
	return make([]Token, 0, n), nil
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Root returns a Navigator positioned at the document's single root
// token (index 0). It panics if the document has no tokens, as with a
// zero-value Document that was never parsed or one unpacked from a blob
// whose token count is zero.
func (d *Document) Root() Navigator {
	if len(d.Tokens) == 0 {
		panic("flatjson: Root called on an empty Document")
	}
	end := int32(1)
	if d.Tokens[0].End >= 0 {
		end = d.Tokens[0].End
	}
	return Navigator{doc: d, begin: 0, cur: 0, end: end}
}

// Dump writes a human-readable, one-line-per-token listing of the entire
// token array to w: index, type, parent/end/childs links, and key/value
// text where present. A debug aid only, in the spirit of the source
// library's dump_raw_tape — never called from the parse/serialize hot
// path, opt-in only.
func (d *Document) Dump(w io.Writer) error {
	for i := range d.Tokens {
		tok := &d.Tokens[i]
		if _, err := fmt.Fprintf(w, "%d : %s (parent=%d end=%d childs=%d)", i, tok.Type, tok.Parent, tok.End, tok.Childs); err != nil {
			return err
		}
		if d.HasKey(i) {
			if _, err := fmt.Fprintf(w, " key=%q", tok.Key(d.Source)); err != nil {
				return err
			}
		}
		if tok.Type.IsSimple() {
			if _, err := fmt.Fprintf(w, " val=%q", tok.Val(d.Source)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// HasKey reports whether the token at idx carries an object member key:
// true exactly when its parent is an OBJECT start token and idx is not
// that object's own end token (spec.md §3 invariant 6).
func (d *Document) HasKey(idx int) bool {
	tok := &d.Tokens[idx]
	if tok.Parent == noIndex32 {
		return false
	}
	parent := &d.Tokens[tok.Parent]
	return parent.Type == TypeObject && tok.Type != TypeObjectEnd
}
