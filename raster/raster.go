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

// Package raster imports outline fonts by rasterizing glyphs into the
// bitmap font intermediate representation.
package raster

import (
	"errors"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"seehuhn.de/go/bitfont"
)

// Options controls rasterization.
type Options struct {
	// Size is the glyph height in pixels.
	Size float64

	// DPI is the rendering resolution.  A zero value means 72 dpi, at
	// which Size is both points and pixels.
	DPI float64

	// BW restricts pixels to fully transparent and fully opaque.
	BW bool

	Hinting font.Hinting
}

// FromOpenType rasterizes glyphs from TrueType/OpenType font data.
// If runes is nil, all mapped code points of the font are imported.
func FromOpenType(data []byte, runes []rune, opts *Options) (*bitfont.Font, error) {
	fnt, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}

	var buf sfnt.Buffer
	if runes == nil {
		for r := rune(0x20); r <= 0xFFFF; r++ {
			if unicode.Is(unicode.Cs, r) {
				continue
			}
			gid, err := fnt.GlyphIndex(&buf, r)
			if err != nil || gid == 0 {
				continue
			}
			runes = append(runes, r)
		}
	}

	name, err := fnt.Name(&buf, sfnt.NameIDFamily)
	if err != nil {
		name = ""
	}
	name = strings.TrimSpace(name)

	if opts == nil {
		opts = &Options{}
	}
	dpi := opts.DPI
	if dpi == 0 {
		dpi = 72
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    opts.Size,
		DPI:     dpi,
		Hinting: opts.Hinting,
	})
	if err != nil {
		return nil, err
	}
	defer face.Close()

	return FromFace(face, name, runes, opts)
}

// FromFace rasterizes the given code points from a font face.  Code
// points the face has no glyph for are skipped; identical bitmaps are
// collapsed into shared glyphs.
func FromFace(face font.Face, name string, runes []rune, opts *Options) (*bitfont.Font, error) {
	if opts == nil {
		opts = &Options{}
	}

	runes = sortedRunes(runes)

	// Determine a common glyph box covering every imported glyph.
	var minX, minY, maxX, maxY fixed.Int26_6
	first := true
	for _, r := range runes {
		bounds, advance, ok := face.GlyphBounds(r)
		if !ok {
			continue
		}
		if bounds.Max.X < advance {
			bounds.Max.X = advance
		}
		if first {
			minX, minY = bounds.Min.X, bounds.Min.Y
			maxX, maxY = bounds.Max.X, bounds.Max.Y
			first = false
			continue
		}
		if bounds.Min.X < minX {
			minX = bounds.Min.X
		}
		if bounds.Min.Y < minY {
			minY = bounds.Min.Y
		}
		if bounds.Max.X > maxX {
			maxX = bounds.Max.X
		}
		if bounds.Max.Y > maxY {
			maxY = bounds.Max.Y
		}
	}
	if first {
		return nil, errors.New("raster: no glyphs to import")
	}

	baselineX := -minX.Floor()
	baselineY := -minY.Floor()
	cellW := maxX.Ceil() + baselineX
	cellH := maxY.Ceil() + baselineY

	info := bitfont.FontInfo{
		Name:       name,
		MaxWidth:   cellW,
		MaxHeight:  cellH,
		BaselineX:  baselineX,
		BaselineY:  baselineY,
		LineHeight: face.Metrics().Height.Ceil(),
	}
	if opts.BW {
		info.Flags |= bitfont.FlagBW
	}

	builder := bitfont.NewBuilder(info)
	dot := fixed.P(baselineX, baselineY)
	for _, r := range runes {
		dr, mask, maskp, advance, ok := face.Glyph(dot, r)
		if !ok {
			continue
		}

		bm := bitfont.NewBitmap(cellW, cellH)
		for y := dr.Min.Y; y < dr.Max.Y; y++ {
			if y < 0 || y >= cellH {
				continue
			}
			for x := dr.Min.X; x < dr.Max.X; x++ {
				if x < 0 || x >= cellW {
					continue
				}
				mx := maskp.X + x - dr.Min.X
				my := maskp.Y + y - dr.Min.Y
				_, _, _, a := mask.At(mx, my).RGBA()
				v := byte(a >> 12)
				if opts.BW {
					if a >= 0x8000 {
						v = 15
					} else {
						v = 0
					}
				}
				bm.Set(x, y, v)
			}
		}

		err := builder.Add(r, advance.Ceil(), bm)
		if err != nil {
			return nil, err
		}
	}

	return builder.Font()
}

func sortedRunes(runes []rune) []rune {
	seen := make(map[rune]bool, len(runes))
	var out []rune
	for _, r := range runes {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
