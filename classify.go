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

// Character classification tables. All are 256-entry lookup tables so
// classification is a single indexed load, no branching.

var whitespaceTable = [256]bool{
	0x09: true,
	0x0A: true,
	0x0D: true,
	0x20: true,
}

var digitTable = [256]bool{}

var hexDigitTable = [256]bool{}

var utf8LenTable = [256]uint8{}

func init() {
	for b := '0'; b <= '9'; b++ {
		digitTable[b] = true
		hexDigitTable[b] = true
	}
	for b := 'A'; b <= 'F'; b++ {
		hexDigitTable[b] = true
	}
	for b := 'a'; b <= 'f'; b++ {
		hexDigitTable[b] = true
	}
	for b := 0; b <= 0x7F; b++ {
		utf8LenTable[b] = 1
	}
	for b := 0xC0; b <= 0xDF; b++ {
		utf8LenTable[b] = 2
	}
	for b := 0xE0; b <= 0xEF; b++ {
		utf8LenTable[b] = 3
	}
	for b := 0xF0; b <= 0xF7; b++ {
		utf8LenTable[b] = 4
	}
}

// isWhitespace reports whether b is JSON insignificant whitespace
// (0x09, 0x0A, 0x0D, 0x20).
func isWhitespace(b byte) bool { return whitespaceTable[b] }

// isDigit reports whether b is 0x30..0x39.
func isDigit(b byte) bool { return digitTable[b] }

// isHexDigit reports whether b is a digit or 0x41..0x46 or 0x61..0x66.
func isHexDigit(b byte) bool { return hexDigitTable[b] }

// utf8Length returns the expected byte length of a UTF-8 sequence
// starting with b: 1 for ASCII, 2/3/4 for the respective lead bytes, and
// 0 for a byte that cannot start a sequence (a stray continuation byte
// or an invalid lead byte).
func utf8Length(b byte) uint8 { return utf8LenTable[b] }

// skipWhitespace advances past is_whitespace bytes starting at i and
// returns the new index.
func skipWhitespace(src []byte, i int) int {
	for i < len(src) && isWhitespace(src[i]) {
		i++
	}
	return i
}
