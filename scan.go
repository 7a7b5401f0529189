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

import "encoding/binary"

// The source library's string/number scanners are hand-written AVX2/SSE2/
// NEON assembly with a scalar fallback behind build tags. This port keeps
// the shape (a wide fast path plus a scalar path with identical results)
// but expresses the wide path as SWAR (SIMD-within-a-register): the
// classic "hasless"/"hasvalue" bit tricks operating on one uint64 (8
// bytes) at a time, portable to every GOARCH. scan_amd64.go/scan_other.go
// decide, via cpuid, whether the wide path is worth preferring; the
// scalar path is always compiled and always correct on its own.

const wordSize = 8

// pattern broadcasts a byte value n (n < 0x80) into every byte of a
// uint64, e.g. pattern(0x20) == 0x2020202020202020.
func pattern(n byte) uint64 {
	return uint64(n) * 0x0101010101010101
}

const patternHigh = 0x8080808080808080

// hasLess returns a non-zero word exactly when some byte lane of w holds
// a value strictly less than n (n must be < 0x80); every such lane has
// its high bit set. Classic "Bit Twiddling Hacks" trick. The subtraction
// borrows across lanes, so lanes above a matching lane may be flagged
// too: only "zero or non-zero" is exact, not which lanes are set.
func hasLess(w uint64, n byte) uint64 {
	return (w - pattern(n)) & ^w & patternHigh
}

// hasValue returns a non-zero word exactly when some byte lane of w
// equals n; as with hasLess, lanes above a matching lane may also be
// flagged.
func hasValue(w uint64, n byte) uint64 {
	x := w ^ pattern(n)
	return (x - 0x0101010101010101) & ^x & patternHigh
}

// stringBodyAdvanceScalar advances past plain single-byte string-body
// bytes starting at i: bytes that are not '"', not '\\', not a control
// byte (< 0x20), and not the lead byte of a multi-byte UTF-8 sequence (>=
// 0x80 — those need their own validation, see the string branch in
// parser.go). It stops at (does not consume) the first such byte, or at
// len(src) if the string runs off the end of the buffer.
func stringBodyAdvanceScalar(src []byte, i int) int {
	for i < len(src) {
		b := src[i]
		if b == '"' || b == '\\' || b < 0x20 || b >= 0x80 {
			return i
		}
		i++
	}
	return i
}

// stringBodyAdvanceSWAR is the wide-path equivalent of
// stringBodyAdvanceScalar: it tests 8 bytes at a time for any of the
// four halting conditions and only drops to scalar scanning within the
// (rare) word that actually contains one.
func stringBodyAdvanceSWAR(src []byte, i int) int {
	for i+wordSize <= len(src) {
		w := binary.LittleEndian.Uint64(src[i:])
		mask := hasLess(w, 0x20) | hasValue(w, '"') | hasValue(w, '\\') | (w & patternHigh)
		if mask == 0 {
			i += wordSize
			continue
		}
		return stringBodyAdvanceScalar(src, i)
	}
	return stringBodyAdvanceScalar(src, i)
}

// digitsAdvanceScalar advances past ASCII digit bytes starting at i and
// reports whether a non-digit was found before the end of src.
func digitsAdvanceScalar(src []byte, i int) (next int, stoppedOnNonDigit bool) {
	for i < len(src) {
		if !isDigit(src[i]) {
			return i, true
		}
		i++
	}
	return i, false
}

// digitsAdvanceSWAR is the wide-path equivalent of digitsAdvanceScalar.
func digitsAdvanceSWAR(src []byte, i int) (next int, stoppedOnNonDigit bool) {
	for i+wordSize <= len(src) {
		w := binary.LittleEndian.Uint64(src[i:])
		// Non-zero iff some byte is below '0', above '9' (adding
		// 0x7F-'9' carries such a byte into its high bit), or has its
		// own high bit set.
		mask := hasLess(w, '0') | ((w+pattern(0x7F-'9'))|w)&patternHigh
		if mask == 0 {
			// All 8 bytes were digits.
			i += wordSize
			continue
		}
		return digitsAdvanceScalar(src, i)
	}
	return digitsAdvanceScalar(src, i)
}

// stringBodyAdvance dispatches to the wide or scalar scanner per cfg.
func stringBodyAdvance(cfg *config, src []byte, i int) int {
	if cfg.useSIMD && simdSupported {
		return stringBodyAdvanceSWAR(src, i)
	}
	return stringBodyAdvanceScalar(src, i)
}

// digitsAdvance dispatches to the wide or scalar scanner per cfg.
func digitsAdvance(cfg *config, src []byte, i int) (next int, stoppedOnNonDigit bool) {
	if cfg.useSIMD && simdSupported {
		return digitsAdvanceSWAR(src, i)
	}
	return digitsAdvanceScalar(src, i)
}
