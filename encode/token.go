// seehuhn.de/go/bitfont - a compressor for embedded bitmap fonts
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package encode compresses bitmap fonts into token strings.
//
// Glyph bitmaps are flattened into pixel strings (row-major, one 4-bit
// alpha value per pixel) and encoded as sequences of integer tokens.
// Token values below DictBase are primitive run instructions which
// expand to a short run of pixels of a single intensity.  Token value
// DictBase+k is a reference to dictionary entry k, which expands
// recursively; a dictionary entry only ever references entries at
// strictly lower indices, so expansion terminates.
package encode

// A Token is one instruction in an encoded pixel string: either a
// primitive run instruction (values below DictBase) or a dictionary
// reference (DictBase + entry index).
type Token uint16

// The token alphabet.  Values 0 to 15 emit a single pixel of the given
// alpha value.  The next two groups emit runs of blank (alpha 0) and
// opaque (alpha 15) pixels with the lengths given by runLengths.
const (
	blankBase  Token = 16
	opaqueBase Token = 24

	// DictBase is the first dictionary reference.  Token DictBase+k
	// expands to dictionary entry k.
	DictBase Token = 32
)

// runLengths gives the run length of the tokens in the blank and
// opaque groups.
var runLengths = [8]int{2, 3, 4, 5, 6, 8, 16, 32}

// maxToken is the largest encodable token value: two serialized bytes
// hold 14 bits of payload.
const maxToken = 0x3FFF

// MaxDictSize is the largest number of dictionary entries that can be
// addressed by the token alphabet.
const MaxDictSize = maxToken - int(DictBase) + 1

// literalRun returns the pixel value and run length a primitive run
// token expands to.
func literalRun(t Token) (alpha byte, n int) {
	switch {
	case t < blankBase:
		return byte(t), 1
	case t < opaqueBase:
		return 0, runLengths[t-blankBase]
	default:
		return 15, runLengths[t-opaqueBase]
	}
}

// tokenCost returns the number of bytes the token occupies when
// serialized: values which fit into 7 bits cost one byte, larger
// values two.
func tokenCost(t Token) int {
	if t < 0x80 {
		return 1
	}
	return 2
}

// AppendToken appends the serialized form of a token.  Values below
// 0x80 are stored as a single byte; larger values as two bytes with
// the top bit of the first byte set.
func AppendToken(dst []byte, t Token) []byte {
	if t < 0x80 {
		return append(dst, byte(t))
	}
	return append(dst, 0x80|byte(t>>8), byte(t))
}

// tokensSize returns the serialized size of a token sequence in bytes.
func tokensSize(tt []Token) int {
	size := 0
	for _, t := range tt {
		size += tokenCost(t)
	}
	return size
}
