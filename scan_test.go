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

func TestHasLessAndHasValue(t *testing.T) {
	w := uint64(0x2041424344454620) // bytes: 0x20 0x46 0x45 0x44 0x43 0x42 0x41 0x20 (LE irrelevant here, just lanes)
	if hasLess(w, 0x21) == 0 {
		t.Error("expected at least one lane < 0x21")
	}
	if hasValue(w, 0x20) == 0 {
		t.Error("expected at least one lane == 0x20")
	}
	allAbove := pattern(0x41)
	if hasLess(allAbove, 0x21) != 0 {
		t.Error("no lane should be < 0x21")
	}
}

func TestStringBodyAdvanceScalarAndSWARAgree(t *testing.T) {
	cases := [][]byte{
		[]byte(`hello world, this is longer than a single machine word`),
		[]byte(`short`),
		[]byte(`with"quote`),
		[]byte("with\\escape tail"),
		[]byte("control\x01byte"),
		[]byte("exactly8"),
		[]byte(""),
	}
	for _, src := range cases {
		scalar := stringBodyAdvanceScalar(src, 0)
		swar := stringBodyAdvanceSWAR(src, 0)
		if scalar != swar {
			t.Errorf("stringBodyAdvance mismatch for %q: scalar=%d swar=%d", src, scalar, swar)
		}
	}
}

func TestDigitsAdvanceScalarAndSWARAgree(t *testing.T) {
	cases := []string{
		"12345678901234",
		"123",
		"12345678",
		"1234a5678",
		"",
		"999999990abc",
	}
	for _, s := range cases {
		src := []byte(s)
		sn, sstop := digitsAdvanceScalar(src, 0)
		wn, wstop := digitsAdvanceSWAR(src, 0)
		if sn != wn || sstop != wstop {
			t.Errorf("digitsAdvance mismatch for %q: scalar=(%d,%v) swar=(%d,%v)", s, sn, sstop, wn, wstop)
		}
	}
}

func TestPatternBroadcastsByte(t *testing.T) {
	p := pattern(0x20)
	for i := 0; i < 8; i++ {
		b := byte(p >> (8 * i))
		if b != 0x20 {
			t.Errorf("lane %d = 0x%02X, want 0x20", i, b)
		}
	}
}
