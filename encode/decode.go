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
	"fmt"
)

// Decode expands the token sequence of glyph i back into its pixel
// string.  This inverts Encode exactly and is used to verify encoded
// fonts.
func Decode(e *Font, i int) ([]byte, error) {
	if i < 0 || i >= len(e.Glyphs) {
		return nil, fmt.Errorf("encode: no glyph %d", i)
	}
	cache := make([][]byte, len(e.Dict))
	return expand(e, e.Glyphs[i], len(e.Dict), cache)
}

// expand expands a token sequence, resolving references to the first
// maxRef dictionary entries recursively.  The maxRef limit rejects
// token streams which violate the lower-index reference rule, so
// expansion always terminates.
func expand(e *Font, tt []Token, maxRef int, cache [][]byte) ([]byte, error) {
	var out []byte
	for _, t := range tt {
		if t < DictBase {
			alpha, n := literalRun(t)
			for j := 0; j < n; j++ {
				out = append(out, alpha)
			}
			continue
		}

		k := int(t - DictBase)
		if k >= maxRef {
			return nil, fmt.Errorf("encode: reference to entry %d out of range", k)
		}
		if cache[k] == nil {
			pix, err := expand(e, e.Dict[k], k, cache)
			if err != nil {
				return nil, err
			}
			if pix == nil {
				pix = []byte{}
			}
			cache[k] = pix
		}
		out = append(out, cache[k]...)
	}
	return out, nil
}
