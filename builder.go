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
	"fmt"
	"sort"
)

// Builder collects (code point, bitmap) pairs from an importer and
// assembles them into a font, collapsing code points which render to
// identical bitmaps into shared glyphs.
type Builder struct {
	info   FontInfo
	glyphs []Glyph
	index  map[glyphKey]int
	seen   map[rune]bool
}

type glyphKey struct {
	w, h, width int
	pix         string
}

// NewBuilder returns a builder for a font with the given metadata.
func NewBuilder(info FontInfo) *Builder {
	return &Builder{
		info:  info,
		index: make(map[glyphKey]int),
		seen:  make(map[rune]bool),
	}
}

// Add records the bitmap for one code point.  Code points with
// identical bitmaps and advance widths share a glyph.
func (b *Builder) Add(r rune, width int, bm Bitmap) error {
	if b.seen[r] {
		return fmt.Errorf("bitfont: code point %d added twice", r)
	}
	b.seen[r] = true

	key := glyphKey{w: bm.W, h: bm.H, width: width, pix: string(bm.Pix)}
	if i, ok := b.index[key]; ok {
		b.glyphs[i].Runes = append(b.glyphs[i].Runes, r)
		return nil
	}
	b.index[key] = len(b.glyphs)
	b.glyphs = append(b.glyphs, Glyph{Runes: []rune{r}, Width: width, Bitmap: bm})
	return nil
}

// Font assembles the collected glyphs into a font and verifies the
// font invariants.
func (b *Builder) Font() (*Font, error) {
	info := b.info

	mono := true
	for i := range b.glyphs {
		g := &b.glyphs[i]
		sort.Slice(g.Runes, func(i, j int) bool { return g.Runes[i] < g.Runes[j] })
		if g.Width != b.glyphs[0].Width {
			mono = false
		}
	}
	if mono && len(b.glyphs) > 0 {
		info.Flags |= FlagMonospace
	}

	return New(info, nil, b.glyphs)
}
