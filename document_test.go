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
	"strings"
	"testing"
)

func TestParseFlatObject(t *testing.T) {
	doc, err := Parse([]byte(`{"a":1,"b":true,"c":"x"}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Tokens) != 5 {
		t.Fatalf("token count = %d, want 5", len(doc.Tokens))
	}
	if doc.Tokens[0].Type != TypeObject {
		t.Errorf("root type = %v, want object", doc.Tokens[0].Type)
	}
	if doc.Tokens[0].Childs != 4 {
		t.Errorf("root childs = %d, want 4 (3 members + end)", doc.Tokens[0].Childs)
	}
	if doc.Tokens[0].End != 4 {
		t.Errorf("root end = %d, want 4", doc.Tokens[0].End)
	}
	if doc.Tokens[4].Type != TypeObjectEnd {
		t.Errorf("last token = %v, want object_end", doc.Tokens[4].Type)
	}
}

func TestParseNestedMixedDocument(t *testing.T) {
	src := `{"a":true,"b":{"c":{"d":1,"e":2}},"c":[0,1,2,3]}`
	doc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	// OBJECT a b_OBJECT c_OBJECT d e OBJECT_END OBJECT_END ARRAY 0 1 2 3 ARRAY_END OBJECT_END
	if len(doc.Tokens) != 15 {
		t.Fatalf("token count = %d, want 15", len(doc.Tokens))
	}
	if doc.Tokens[0].Type != TypeObject {
		t.Errorf("root type = %v, want object", doc.Tokens[0].Type)
	}
	if doc.HasKey(0) {
		t.Error("root should not have a key")
	}
	if doc.Tokens[0].Childs != 4 {
		t.Errorf("root childs = %d, want 4 (a, b, c + end)", doc.Tokens[0].Childs)
	}
}

func TestParseEmptyContainers(t *testing.T) {
	for _, tc := range []struct {
		src      string
		rootType Type
	}{
		{"{}", TypeObject},
		{"[]", TypeArray},
	} {
		doc, err := Parse([]byte(tc.src))
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.src, err)
		}
		if len(doc.Tokens) != 2 {
			t.Fatalf("Parse(%q): token count = %d, want 2", tc.src, len(doc.Tokens))
		}
		if doc.Tokens[0].Type != tc.rootType {
			t.Errorf("Parse(%q): root type = %v, want %v", tc.src, doc.Tokens[0].Type, tc.rootType)
		}
		if doc.Tokens[0].Childs != 1 {
			t.Errorf("Parse(%q): childs = %d, want 1 (just the end token)", tc.src, doc.Tokens[0].Childs)
		}
	}
}

func TestParseSingleLeafDocument(t *testing.T) {
	doc, err := Parse([]byte(`42`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Tokens) != 1 {
		t.Fatalf("token count = %d, want 1", len(doc.Tokens))
	}
	if doc.Tokens[0].Type != TypeNumber {
		t.Errorf("root type = %v, want number", doc.Tokens[0].Type)
	}
	root := doc.Root()
	if root.end != 1 {
		t.Errorf("Root() scope end = %d, want 1 for a leaf document", root.end)
	}
}

func TestParseRejectsTrailingComma(t *testing.T) {
	for _, src := range []string{`{"a":1,}`, `[1,2,]`} {
		if _, err := Parse([]byte(src)); err == nil {
			t.Errorf("Parse(%q) should fail on a trailing comma", src)
		}
	}
}

func TestParseRejectsLeadingZero(t *testing.T) {
	if _, err := Parse([]byte(`{"a":01}`)); err == nil {
		t.Error("Parse should reject a leading zero in a number")
	}
}

func TestParseRejectsEmbeddedControlByte(t *testing.T) {
	src := append([]byte(`{"a":"`), 0x01)
	src = append(src, []byte(`"}`)...)
	if _, err := Parse(src); err == nil {
		t.Error("Parse should reject a raw control byte inside a string")
	}
}

func TestParseRejectsTruncatedUnicodeEscape(t *testing.T) {
	if _, err := Parse([]byte(`{"a":"\u00`)); err == nil {
		t.Error("Parse should reject a truncated \\u escape")
	}
}

func TestParseRejectsExtraData(t *testing.T) {
	doc, err := Parse([]byte(`{"a":1} {"b":2}`))
	if err == nil {
		t.Fatalf("Parse should reject trailing data, got doc with %d tokens", len(doc.Tokens))
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
	if pe.Kind != ErrExtraData {
		t.Errorf("error kind = %v, want ErrExtraData", pe.Kind)
	}
}

func TestKeyLengthOverflow(t *testing.T) {
	longKey := make([]byte, 300)
	for i := range longKey {
		longKey[i] = 'k'
	}
	src := []byte(`{"` + string(longKey) + `":1}`)
	_, err := Parse(src, WithKeyLengthWidth(8))
	if err == nil {
		t.Fatal("expected a key-length overflow error")
	}
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != ErrKeyLengthOverflow {
		t.Errorf("error = %v, want ErrKeyLengthOverflow", err)
	}
}

func TestCountMatchesParseTokenCount(t *testing.T) {
	src := []byte(`{"a":true,"b":{"c":{"d":1,"e":2}},"c":[0,1,2,3]}`)
	n, err := Count(src)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	doc, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if n != len(doc.Tokens) {
		t.Errorf("Count = %d, Parse produced %d tokens", n, len(doc.Tokens))
	}
}

func TestParseIntoFillsCallerBuffer(t *testing.T) {
	src := []byte(`{"a":1,"b":2}`)
	n, err := Count(src)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	buf := make([]Token, n)
	written, err := ParseInto(buf, src)
	if err != nil {
		t.Fatalf("ParseInto: %v", err)
	}
	if written != n {
		t.Errorf("ParseInto wrote %d tokens, want %d", written, n)
	}
}

func TestParseIntoReportsNoFreeTokens(t *testing.T) {
	buf := make([]Token, 1)
	_, err := ParseInto(buf, []byte(`{"a":1,"b":2}`))
	if err == nil {
		t.Fatal("expected ErrNoFreeTokens for an undersized buffer")
	}
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != ErrNoFreeTokens {
		t.Errorf("error = %v, want ErrNoFreeTokens", err)
	}
}

func TestDumpListsEveryToken(t *testing.T) {
	doc, err := Parse([]byte(`{"a":1,"b":[true,false]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var buf strings.Builder
	if err := doc.Dump(&buf); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	out := buf.String()
	if strings.Count(out, "\n") != len(doc.Tokens) {
		t.Errorf("Dump produced %d lines, want %d (one per token)", strings.Count(out, "\n"), len(doc.Tokens))
	}
	if !strings.Contains(out, `key="a"`) {
		t.Errorf("Dump output missing key=\"a\":\n%s", out)
	}
}

func TestHasKeyStructuralCheck(t *testing.T) {
	doc, err := Parse([]byte(`{"a":[1,2],"b":3}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	// index 0: root object, no key.
	if doc.HasKey(0) {
		t.Error("root object should not report a key")
	}
	// index 1 is the "a" array; it does have a key.
	if !doc.HasKey(1) {
		t.Error("array member \"a\" should report a key")
	}
	// array elements (1 and 2 inside "a") have no key, even though they
	// are not the object's own end token.
	for _, idx := range []int{2, 3} {
		if doc.HasKey(idx) {
			t.Errorf("token %d is an array element, should not report a key", idx)
		}
	}
}
