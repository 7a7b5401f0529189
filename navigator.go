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
	"errors"
)

// Navigator is a typed iterator over one scope of a Document's token
// array: begin is the container start token whose members are being
// walked (or, for a simple value, the value's own index), cur is the
// position the navigator currently refers to, and end is the matching
// container-end token's index (or begin+1 for a simple scope, a
// single-step range). This mirrors spec.md §4.5's (begin_of_scope,
// current, end_of_scope) triple.
type Navigator struct {
	doc   *Document
	begin int32
	cur   int32
	end   int32
}

// Type returns the type of the token the navigator currently refers to.
func (n Navigator) Type() Type {
	return n.doc.Tokens[n.cur].Type
}

// Token returns the token the navigator currently refers to.
func (n Navigator) Token() *Token {
	return &n.doc.Tokens[n.cur]
}

// Index returns the token array index the navigator currently refers to.
func (n Navigator) Index() int {
	return int(n.cur)
}

// scopeAt returns a Navigator scoped to the subtree rooted at token i:
// for a container, begin=cur=i and end is that container's End; for a
// leaf, it's the single-step range spec.md §4.5 describes for leaves.
func (n Navigator) scopeAt(i int32) Navigator {
	tok := &n.doc.Tokens[i]
	if tok.Type == TypeObject || tok.Type == TypeArray {
		return Navigator{doc: n.doc, begin: i, cur: i, end: tok.End}
	}
	return Navigator{doc: n.doc, begin: i, cur: i, end: i + 1}
}

// Descend returns a Navigator scoped to the subtree the navigator
// currently refers to (iter_begin in spec.md §4.5). Valid on any token;
// for a leaf it returns a single-step range over that leaf itself.
func (n Navigator) Descend() Navigator {
	return n.scopeAt(n.cur)
}

// Next advances the navigator to the next sibling within its scope
// (iter_next in spec.md §4.5). The very first call from a freshly
// scoped container Navigator moves onto its first member; a container
// member is skipped over in O(1) via its own End link rather than
// scanned token by token. Returns false (and leaves the navigator
// positioned at end) once there is no next sibling.
func (n *Navigator) Next() bool {
	if n.cur >= n.end {
		return false
	}
	var next int32
	if n.cur == n.begin {
		next = n.begin + 1
	} else if cur := &n.doc.Tokens[n.cur]; cur.End != noIndex32 {
		next = cur.End + 1
	} else {
		next = n.cur + 1
	}
	if next >= n.end {
		n.cur = n.end
		return false
	}
	n.cur = next
	return true
}

// MemberCount returns the number of immediate members of the navigator's
// scope: for a container, Childs-1 (the END token doesn't count); for a
// simple scope, 1 (spec.md §4.5).
func (n Navigator) MemberCount() int {
	tok := &n.doc.Tokens[n.begin]
	if tok.Type != TypeObject && tok.Type != TypeArray {
		return 1
	}
	if tok.Childs == 0 {
		return 0
	}
	return int(tok.Childs) - 1
}

// Key looks up an object member by key (O(n), linear scan with O(1)
// subtree skip over non-matching container members) and returns a
// Navigator scoped to the match's subtree. ok is false if the
// navigator's scope isn't an object or no member has that key.
func (n Navigator) Key(key string) (result Navigator, ok bool) {
	tok := &n.doc.Tokens[n.begin]
	if tok.Type != TypeObject {
		return Navigator{}, false
	}
	i := n.begin + 1
	for i < n.end {
		child := &n.doc.Tokens[i]
		if int(child.KeyLength) == len(key) && string(child.Key(n.doc.Source)) == key {
			return n.scopeAt(i), true
		}
		if child.Type == TypeObject || child.Type == TypeArray {
			i = child.End + 1
		} else {
			i++
		}
	}
	return Navigator{}, false
}

// Index looks up an array element by position. Arrays whose Flags has
// the simple-only bit set resolve in O(1); otherwise this walks
// (skipping subtrees in O(1)) from the first element. ok is false if the
// navigator's scope isn't an array or idx is out of range.
func (n Navigator) Index(idx int) (result Navigator, ok bool) {
	tok := &n.doc.Tokens[n.begin]
	if tok.Type != TypeArray || tok.Childs == 0 {
		return Navigator{}, false
	}
	members := int(tok.Childs) - 1
	if idx < 0 || idx >= members {
		return Navigator{}, false
	}
	if tok.SimpleOnly() {
		return n.scopeAt(n.begin + 1 + int32(idx)), true
	}
	i := n.begin + 1
	for step := 0; step < idx; step++ {
		child := &n.doc.Tokens[i]
		if child.Type == TypeObject || child.Type == TypeArray {
			i = child.End + 1
		} else {
			i++
		}
	}
	return n.scopeAt(i), true
}

// Keys collects every member key of an object scope without descending
// into nested values. Returns an error if the navigator's scope isn't an
// object.
func (n Navigator) Keys() ([]string, error) {
	tok := &n.doc.Tokens[n.begin]
	if tok.Type != TypeObject {
		return nil, errors.New("flatjson: Keys called on a non-object navigator")
	}
	keys := make([]string, 0, n.MemberCount())
	cursor := n
	for cursor.Next() {
		keys = append(keys, string(cursor.doc.Tokens[cursor.cur].Key(cursor.doc.Source)))
	}
	return keys, nil
}

// Members calls fn for every immediate member of an object scope,
// stopping (and returning fn's error) on the first non-nil error.
func (n Navigator) Members(fn func(key string, member Navigator) error) error {
	tok := &n.doc.Tokens[n.begin]
	if tok.Type != TypeObject {
		return errors.New("flatjson: Members called on a non-object navigator")
	}
	cursor := n
	for cursor.Next() {
		key := string(cursor.doc.Tokens[cursor.cur].Key(cursor.doc.Source))
		if err := fn(key, cursor.scopeAt(cursor.cur)); err != nil {
			return err
		}
	}
	return nil
}

// Elements calls fn for every element of an array scope, stopping (and
// returning fn's error) on the first non-nil error.
func (n Navigator) Elements(fn func(i int, elem Navigator) error) error {
	tok := &n.doc.Tokens[n.begin]
	if tok.Type != TypeArray {
		return errors.New("flatjson: Elements called on a non-array navigator")
	}
	cursor := n
	i := 0
	for cursor.Next() {
		if err := fn(i, cursor.scopeAt(cursor.cur)); err != nil {
			return err
		}
		i++
	}
	return nil
}

// Distance returns the number of Next steps from `from` to `to` within
// the same scope. When from is scoped to its own subtree (as the results
// of Key and Index are), the scope is its parent container. For a
// simple-only array scope this is pointer arithmetic; otherwise it walks
// with Next, counting.
func Distance(from, to Navigator) int {
	scope := from
	if from.cur == from.begin {
		if p := from.doc.Tokens[from.cur].Parent; p != noIndex32 {
			scope = Navigator{doc: from.doc, begin: p, cur: from.cur, end: from.doc.Tokens[p].End}
		}
	}
	tok := &from.doc.Tokens[scope.begin]
	if tok.Type == TypeArray && tok.SimpleOnly() {
		return int(to.cur - from.cur)
	}
	count := 0
	cursor := scope
	for cursor.cur != to.cur && cursor.Next() {
		count++
	}
	return count
}

// CompareMode selects how much of two documents Compare inspects.
type CompareMode uint8

const (
	// CompareMarkupOnly compares only token types (structure).
	CompareMarkupOnly CompareMode = iota
	// CompareLengthOnly additionally compares key/value text lengths.
	CompareLengthOnly
	// CompareFull additionally compares key/value bytes exactly.
	CompareFull
)

// CompareResult is the outcome of Compare.
type CompareResult uint8

const (
	CompareOK CompareResult = iota
	CompareDiffType
	CompareDiffKey
	CompareNoKey
	CompareDiffLength
	CompareDiffValue
	CompareLonger
	CompareShorter
)

func (r CompareResult) String() string {
	switch r {
	case CompareOK:
		return "ok"
	case CompareDiffType:
		return "type"
	case CompareDiffKey:
		return "key"
	case CompareNoKey:
		return "no_key"
	case CompareDiffLength:
		return "length"
	case CompareDiffValue:
		return "value"
	case CompareLonger:
		return "longer"
	case CompareShorter:
		return "shorter"
	}
	return "unknown"
}

// Compare compares two parsed documents structurally. The first
// difference found is returned as a CompareResult plus a pair of
// navigators pointing at the diverging tokens on each side (spec.md
// §4.5). left and right are compared in full: Compare first checks
// overall token counts (CompareLonger/CompareShorter if they differ),
// then root types, then recurses over members.
func Compare(left, right *Document, mode CompareMode) (CompareResult, Navigator, Navigator) {
	if len(left.Tokens) != len(right.Tokens) {
		if len(right.Tokens) > len(left.Tokens) {
			return CompareLonger, left.Root(), right.Root()
		}
		return CompareShorter, left.Root(), right.Root()
	}
	return compareNodes(left.Root(), right.Root(), mode)
}

func compareNodes(l, r Navigator, mode CompareMode) (CompareResult, Navigator, Navigator) {
	lt := l.doc.Tokens[l.cur].Type
	rt := r.doc.Tokens[r.cur].Type
	if lt != rt {
		return CompareDiffType, l, r
	}
	switch lt {
	case TypeObject:
		return compareObject(l, r, mode)
	case TypeArray:
		return compareArray(l, r, mode)
	default:
		return compareLeaf(l, r, mode)
	}
}

func compareLeaf(l, r Navigator, mode CompareMode) (CompareResult, Navigator, Navigator) {
	if mode == CompareMarkupOnly {
		return CompareOK, l, r
	}
	lt := &l.doc.Tokens[l.cur]
	rt := &r.doc.Tokens[r.cur]
	if lt.ValLength != rt.ValLength {
		return CompareDiffLength, l, r
	}
	if mode == CompareLengthOnly {
		return CompareOK, l, r
	}
	if !bytes.Equal(lt.Val(l.doc.Source), rt.Val(r.doc.Source)) {
		return CompareDiffValue, l, r
	}
	return CompareOK, l, r
}

func compareObject(l, r Navigator, mode CompareMode) (CompareResult, Navigator, Navigator) {
	member := l
	for member.Next() {
		key := string(member.doc.Tokens[member.cur].Key(member.doc.Source))
		rScope, ok := r.Key(key)
		if !ok {
			return CompareNoKey, member.scopeAt(member.cur), r
		}
		lScope := member.scopeAt(member.cur)
		if res, lx, rx := compareNodes(lScope, rScope, mode); res != CompareOK {
			return res, lx, rx
		}
	}
	return CompareOK, l, r
}

func compareArray(l, r Navigator, mode CompareMode) (CompareResult, Navigator, Navigator) {
	n := l.MemberCount()
	for i := 0; i < n; i++ {
		lc, _ := l.Index(i)
		rc, ok := r.Index(i)
		if !ok {
			return CompareNoKey, lc, r
		}
		if res, lx, rx := compareNodes(lc, rc, mode); res != CompareOK {
			return res, lx, rx
		}
	}
	return CompareOK, l, r
}

// ValidateString validates a standalone JSON string literal (the
// surrounding quotes included in src, consuming exactly one literal with
// no trailing bytes) without building a Document. Grounded on the
// original C++ library's standalone fj_is_valid_json_string entry point
// (see SPEC_FULL.md's supplemented-features section).
func ValidateString(src []byte, opts ...Option) error {
	cfg, err := buildConfig(opts)
	if err != nil {
		return err
	}
	if len(src) == 0 || src[0] != '"' {
		return newParseError(ErrInvalid, src, 0, "ValidateString", "-")
	}
	p := &parser{cfg: cfg, src: src, mode: modeCount}
	if _, _, err := p.scanStringContent(); err != nil {
		return err
	}
	if p.pos != len(src) {
		return p.fail(ErrExtraData, p.pos)
	}
	return nil
}
