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

package bitfont

import (
	"bytes"
	"fmt"

	"golang.org/x/exp/slices"
)

// Bitmap is a rectangular grid of 4-bit alpha values, stored row-major
// with one byte per pixel.  0 is fully transparent, 15 fully opaque.
type Bitmap struct {
	W, H int
	Pix  []byte
}

// NewBitmap allocates a fully transparent bitmap.
func NewBitmap(w, h int) Bitmap {
	return Bitmap{W: w, H: h, Pix: make([]byte, w*h)}
}

// At returns the pixel value at (x, y).
func (b *Bitmap) At(x, y int) byte {
	return b.Pix[y*b.W+x]
}

// Set stores the pixel value v at (x, y).
func (b *Bitmap) Set(x, y int, v byte) {
	b.Pix[y*b.W+x] = v
}

// Clone makes a deep copy of the bitmap.
func (b *Bitmap) Clone() Bitmap {
	return Bitmap{W: b.W, H: b.H, Pix: slices.Clone(b.Pix)}
}

// Equal reports whether two bitmaps have the same size and pixels.
func (b *Bitmap) Equal(other *Bitmap) bool {
	return b.W == other.W && b.H == other.H && bytes.Equal(b.Pix, other.Pix)
}

func (b *Bitmap) valid() error {
	if b.W < 0 || b.H < 0 || len(b.Pix) != b.W*b.H {
		return fmt.Errorf("bitmap dimensions %dx%d do not match %d pixels",
			b.W, b.H, len(b.Pix))
	}
	for _, p := range b.Pix {
		if p > 15 {
			return fmt.Errorf("pixel value %d out of range", p)
		}
	}
	return nil
}

// shades maps the 16 alpha levels to characters for text rendering.
const shades = " .,:;-=+*xoO8%#@"

// Text renders the bitmap as human-readable ASCII shading, one text
// line per pixel row.
func (b *Bitmap) Text() string {
	buf := &bytes.Buffer{}
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			buf.WriteByte(shades[b.At(x, y)])
		}
		buf.WriteByte('\n')
	}
	return buf.String()
}

// GlyphText renders the glyph at the given index as ASCII shading.
func (f *Font) GlyphText(i int) string {
	return f.Glyphs[i].Bitmap.Text()
}
