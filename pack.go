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
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Binary layout (spec.md §4.6):
//
//   [ u32 json_length ] [ json bytes ] [ u32 token_count ] [ packed tokens ... ]
//
// Each token contributes eight fields, in order: type, key_offset,
// key_length, val_offset, val_length, parent_offset, childs, end_offset.
// Every field uses the same variable-length encoding:
//
//   - fits in 7 bits: one byte, high bit set, value in the low 7 bits.
//   - otherwise: a length-prefix byte (2..5, high bit clear) followed by
//     that many-minus-one little-endian bytes of the value.
//
// Offsets are deltas from useful anchors (previous key/value pointer,
// token distance) rather than absolute, so most fields fit the one-byte
// fast form.

const packHeaderSize = 4

// writeVarField appends one field using the fast-form/length-prefix
// encoding above.
func writeVarField(dst []byte, v uint32) []byte {
	if v < 0x80 {
		return append(dst, byte(v)|0x80)
	}
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	n := 4
	for n > 1 && tmp[n-1] == 0 {
		n--
	}
	dst = append(dst, byte(n+1))
	return append(dst, tmp[:n]...)
}

// readVarField decodes one field written by writeVarField, returning the
// value and the number of bytes consumed.
func readVarField(src []byte) (uint32, int, error) {
	if len(src) == 0 {
		return 0, 0, errors.New("flatjson: truncated packed token field")
	}
	b := src[0]
	if b&0x80 != 0 {
		return uint32(b & 0x7f), 1, nil
	}
	if b < 2 || b > 5 {
		return 0, 0, fmt.Errorf("flatjson: invalid packed field prefix %d", b)
	}
	n := int(b - 1)
	if len(src) < 1+n {
		return 0, 0, errors.New("flatjson: truncated packed token field")
	}
	var tmp [4]byte
	copy(tmp[:n], src[1:1+n])
	return binary.LittleEndian.Uint32(tmp[:]), 1 + n, nil
}

// Pack serializes doc into the self-describing binary blob of spec.md
// §4.6, appending to dst (which may be nil). The blob embeds doc.Source
// verbatim; unpacking never needs the original JSON text supplied
// separately.
func Pack(dst []byte, doc *Document) []byte {
	var hdr [4]byte
	binary.LittleEndian.PutUint32(hdr[:], uint32(len(doc.Source)))
	dst = append(dst, hdr[:]...)
	dst = append(dst, doc.Source...)

	binary.LittleEndian.PutUint32(hdr[:], uint32(len(doc.Tokens)))
	dst = append(dst, hdr[:]...)

	var prevKeyEnd, prevValEnd uint32
	for i := range doc.Tokens {
		tok := &doc.Tokens[i]

		// A token without a key/value (a container, or an array element)
		// has KeyLength/ValLength == 0; its offset field is meaningless,
		// so it's encoded as a literal 0 rather than a delta against
		// whatever key/value happened to precede it in the array.
		var keyDelta, valDelta uint32
		if tok.KeyLength > 0 {
			keyDelta = tok.KeyOffset - prevKeyEnd
		}
		if tok.ValLength > 0 {
			valDelta = tok.ValOffset - prevValEnd
		}

		var parentOffset uint32
		if tok.Parent != noIndex32 {
			parentOffset = uint32(i) - uint32(tok.Parent)
		}
		var endOffset uint32
		if tok.End != noIndex32 {
			endOffset = uint32(tok.End) - uint32(i)
		}

		dst = writeVarField(dst, uint32(tok.Type))
		dst = writeVarField(dst, keyDelta)
		dst = writeVarField(dst, tok.KeyLength)
		dst = writeVarField(dst, valDelta)
		dst = writeVarField(dst, tok.ValLength)
		dst = writeVarField(dst, parentOffset)
		dst = writeVarField(dst, tok.Childs)
		dst = writeVarField(dst, endOffset)

		if tok.KeyLength > 0 {
			prevKeyEnd = tok.KeyOffset + tok.KeyLength
		}
		if tok.ValLength > 0 {
			prevValEnd = tok.ValOffset + tok.ValLength
		}
	}
	return dst
}

// PackedSize returns len(Pack(nil, doc)). It builds the whole blob to
// measure it, so it allocates as much as Pack does.
func PackedSize(doc *Document) int {
	return len(Pack(nil, doc))
}

// Unpack reverses Pack, reconstructing a Document whose Source is a
// fresh copy of the blob's embedded JSON bytes. On a truncated or
// malformed blob it returns an error without publishing any tokens.
func Unpack(blob []byte) (*Document, error) {
	if len(blob) < packHeaderSize {
		return nil, errors.New("flatjson: packed blob too short for header")
	}
	jsonLen := int(binary.LittleEndian.Uint32(blob))
	blob = blob[packHeaderSize:]
	if len(blob) < jsonLen {
		return nil, errors.New("flatjson: packed blob truncated in json section")
	}
	src := make([]byte, jsonLen)
	copy(src, blob[:jsonLen])
	blob = blob[jsonLen:]

	if len(blob) < packHeaderSize {
		return nil, errors.New("flatjson: packed blob too short for token count")
	}
	tokenCount := int(binary.LittleEndian.Uint32(blob))
	blob = blob[packHeaderSize:]

	tokens := make([]Token, tokenCount)
	var prevKeyEnd, prevValEnd uint32
	for i := 0; i < tokenCount; i++ {
		var fields [8]uint32
		for f := 0; f < 8; f++ {
			v, n, err := readVarField(blob)
			if err != nil {
				return nil, err
			}
			fields[f] = v
			blob = blob[n:]
		}

		tok := &tokens[i]
		tok.Type = Type(fields[0])
		tok.KeyLength = fields[2]
		if tok.KeyLength > 0 {
			tok.KeyOffset = prevKeyEnd + fields[1]
		}
		tok.ValLength = fields[4]
		if tok.ValLength > 0 {
			tok.ValOffset = prevValEnd + fields[3]
		}
		if fields[5] == 0 {
			tok.Parent = noIndex32
		} else {
			tok.Parent = int32(uint32(i) - fields[5])
		}
		tok.Childs = fields[6]
		if fields[7] == 0 {
			tok.End = noIndex32
		} else {
			tok.End = int32(uint32(i) + fields[7])
		}

		if tok.KeyLength > 0 {
			prevKeyEnd = tok.KeyOffset + tok.KeyLength
		}
		if tok.ValLength > 0 {
			prevValEnd = tok.ValOffset + tok.ValLength
		}
	}

	return &Document{Source: src, Tokens: tokens, cfg: defaultConfig()}, nil
}

// PackCompressed is Pack followed by a zstd pass over the whole blob:
// the uncompressed wire format of spec.md §4.6 is unchanged, the
// compression wraps it. Grounded on the teacher's own zstd usage in its
// (now-superseded) tape serializer.
func PackCompressed(doc *Document, level zstd.EncoderLevel) ([]byte, error) {
	raw := Pack(nil, doc)
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(level))
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(raw, nil), nil
}

// UnpackCompressed reverses PackCompressed.
func UnpackCompressed(blob []byte) (*Document, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(blob, nil)
	if err != nil {
		return nil, err
	}
	return Unpack(raw)
}
