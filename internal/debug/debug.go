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

// Package debug provides a simple font for use in unit tests.
package debug

import (
	"seehuhn.de/go/bitfont"
)

// MakeTestFont creates a small deterministic font for use in unit
// tests.  The glyph bitmaps share repeated pixel runs, so that
// dictionary seeding and optimization have something to work with.
func MakeTestFont() *bitfont.Font {
	info := bitfont.FontInfo{
		Name:       "Debug",
		MaxWidth:   6,
		MaxHeight:  8,
		BaselineY:  7,
		LineHeight: 9,
	}

	glyphs := []bitfont.Glyph{
		{
			Runes:  []rune{' '},
			Width:  6,
			Bitmap: parseBitmap(6, 8, ""+
				"......"+
				"......"+
				"......"+
				"......"+
				"......"+
				"......"+
				"......"+
				"......"),
		},
		{
			Runes:  []rune{'-', '_'},
			Width:  6,
			Bitmap: parseBitmap(6, 8, ""+
				"......"+
				"......"+
				"......"+
				"......"+
				"@@@@@@"+
				"......"+
				"......"+
				"......"),
		},
		{
			Runes:  []rune{'I'},
			Width:  6,
			Bitmap: parseBitmap(6, 8, ""+
				"@@@@@@"+
				"..@@.."+
				"..@@.."+
				"..@@.."+
				"..@@.."+
				"..@@.."+
				"..@@.."+
				"@@@@@@"),
		},
		{
			Runes:  []rune{'o'},
			Width:  6,
			Bitmap: parseBitmap(6, 8, ""+
				"......"+
				"......"+
				".7@@7."+
				"7....7"+
				"7....7"+
				"7....7"+
				".7@@7."+
				"......"),
		},
	}

	f, err := bitfont.New(info, nil, glyphs)
	if err != nil {
		panic(err)
	}
	return f
}

// parseBitmap builds a bitmap from a string with one character per
// pixel: '.' is blank, '@' opaque, a hex digit gives the alpha level.
func parseBitmap(w, h int, s string) bitfont.Bitmap {
	if len(s) != w*h {
		panic("bitmap string has wrong length")
	}
	bm := bitfont.NewBitmap(w, h)
	for i := 0; i < len(s); i++ {
		var v byte
		switch c := s[i]; {
		case c == '.':
			v = 0
		case c == '@':
			v = 15
		case c >= '0' && c <= '9':
			v = c - '0'
		case c >= 'a' && c <= 'f':
			v = c - 'a' + 10
		default:
			panic("invalid pixel character")
		}
		bm.Pix[i] = v
	}
	return bm
}
