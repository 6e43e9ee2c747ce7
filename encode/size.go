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

package encode

import (
	"seehuhn.de/go/bitfont"
)

// Serialized layout costs, in bytes.  These match the tables emitted
// by the code generator: a fixed header, one offset per dictionary
// entry plus a sentinel, offset/width/height/advance per glyph, and
// one map record per code point.
const (
	headerSize     = 16
	dictOffsetSize = 2
	glyphIndexSize = 5
	charMapSize    = 6
)

// Size returns the exact number of bytes the encoded font occupies
// once serialized.  This is the cost function the optimizer minimizes.
func Size(f *bitfont.Font) (int, error) {
	if len(f.Glyphs) == 0 {
		return 0, bitfont.ErrNoGlyphs
	}

	e, err := Encode(f)
	if err != nil {
		return 0, err
	}

	size := headerSize

	size += dictOffsetSize * (len(e.Dict) + 1)
	for _, tt := range e.Dict {
		size += tokensSize(tt)
	}

	size += glyphIndexSize * len(e.Glyphs)
	for _, tt := range e.Glyphs {
		size += tokensSize(tt)
	}

	for i := range f.Glyphs {
		size += charMapSize * len(f.Glyphs[i].Runes)
	}

	return size, nil
}
