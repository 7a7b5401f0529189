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

import "testing"

func TestDefaultConfig(t *testing.T) {
	c := defaultConfig()
	if c.keyLengthWidth != 8 {
		t.Errorf("keyLengthWidth = %d, want 8", c.keyLengthWidth)
	}
	if c.valueLengthWidth != 16 {
		t.Errorf("valueLengthWidth = %d, want 16", c.valueLengthWidth)
	}
	if c.childrenWidth != 16 {
		t.Errorf("childrenWidth = %d, want 16", c.childrenWidth)
	}
	if !c.checkOverflow {
		t.Error("checkOverflow should default to true")
	}
	if c.hexNumbers {
		t.Error("hexNumbers should default to false (strict RFC 8259)")
	}
}

func TestBuildConfigAppliesOptions(t *testing.T) {
	c, err := buildConfig([]Option{
		WithKeyLengthWidth(4),
		WithValueLengthWidth(10),
		WithChildrenWidth(6),
		WithHexNumbers(true),
		WithDespacedInput(true),
	})
	if err != nil {
		t.Fatalf("buildConfig: %v", err)
	}
	if c.maxKeyLength() != 15 {
		t.Errorf("maxKeyLength = %d, want 15", c.maxKeyLength())
	}
	if c.maxValueLength() != 1023 {
		t.Errorf("maxValueLength = %d, want 1023", c.maxValueLength())
	}
	if c.maxChilds() != 63 {
		t.Errorf("maxChilds = %d, want 63", c.maxChilds())
	}
	if !c.hexNumbers || !c.despaced {
		t.Error("hexNumbers/despaced not applied")
	}
}

func TestOptionRejectsOutOfRangeWidth(t *testing.T) {
	for _, opt := range []Option{
		WithKeyLengthWidth(0),
		WithKeyLengthWidth(33),
		WithValueLengthWidth(0),
		WithChildrenWidth(0),
	} {
		if _, err := buildConfig([]Option{opt}); err == nil {
			t.Error("expected an error for an out-of-range width")
		}
	}
}

func TestWithAllocatorRejectsNil(t *testing.T) {
	if _, err := buildConfig([]Option{WithAllocator(nil)}); err == nil {
		t.Error("expected an error for a nil allocator")
	}
}

func TestWithAllocatorIsUsed(t *testing.T) {
	var gotN int
	alloc := func(n int) []Token {
		gotN = n
		return make([]Token, n)
	}
	doc, err := Parse([]byte(`{"a":1,"b":2}`), WithAllocator(alloc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if gotN != len(doc.Tokens) {
		t.Errorf("allocator received n=%d, want %d", gotN, len(doc.Tokens))
	}
}
