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

// Package bitfont holds an intermediate representation for rasterized
// bitmap fonts: a set of unique glyph shapes, the code points mapped to
// each shape, and a dictionary of reusable pixel strings which the
// encoder uses to compress the glyph data.
package bitfont

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Font metadata flags.
const (
	// FlagBW indicates that all pixels are either fully transparent or
	// fully opaque.
	FlagBW uint32 = 1 << iota

	// FlagMonospace indicates that all glyphs have the same advance width.
	FlagMonospace
)

// ErrNoGlyphs indicates that an operation which requires at least one
// glyph was called on a font without glyphs.
var ErrNoGlyphs = errors.New("bitfont: no glyphs")

// FontInfo contains the metadata needed to reconstruct rendering
// geometry.  It is immutable once the font is constructed.
type FontInfo struct {
	Name string

	// MaxWidth and MaxHeight give the glyph bounding box, in pixels.
	// Every glyph bitmap fits within this box.
	MaxWidth  int
	MaxHeight int

	// BaselineX and BaselineY give the offset of the rendering origin
	// from the top-left corner of the glyph box.
	BaselineX int
	BaselineY int

	// LineHeight is the vertical advance from one line to the next.
	LineHeight int

	Flags uint32
}

// Glyph is one unique glyph shape together with the set of code points
// which render to it.
type Glyph struct {
	// Runes is the sorted, duplicate-free list of code points mapped to
	// this shape.  A code point occurs in at most one glyph of a font,
	// and every glyph of a font has at least one code point.
	Runes []rune

	// Width is the advance width in pixels.
	Width int

	Bitmap Bitmap
}

// Clone makes a deep copy of the glyph.
func (g *Glyph) Clone() Glyph {
	return Glyph{
		Runes:  slices.Clone(g.Runes),
		Width:  g.Width,
		Bitmap: g.Bitmap.Clone(),
	}
}

// DictEntry is a reusable pixel string shared between glyph encodings.
// The position of an entry in the font's dictionary, offset by the
// reserved literal token range, is its reference id.
type DictEntry struct {
	// Pixels is the uncompressed pixel string the entry expands to.
	Pixels []byte

	// Ref selects how the entry itself is encoded.  Entries with
	// Ref == false are encoded using primitive run tokens only; entries
	// with Ref == true may also reference dictionary entries at strictly
	// lower indices.
	Ref bool
}

// Clone makes a deep copy of the dictionary entry.
func (d *DictEntry) Clone() DictEntry {
	return DictEntry{Pixels: slices.Clone(d.Pixels), Ref: d.Ref}
}

// Font is the font intermediate representation.  It is manipulated as a
// single mutable unit: the optimizer mutates it in place, the encoder
// only reads it, and Write/Read persist it wholesale.
type Font struct {
	Info FontInfo

	// Dict is the compression dictionary.  Entries with Ref == false
	// precede all entries with Ref == true.
	Dict []DictEntry

	Glyphs []Glyph

	// Seed carries the random state of the optimizer between
	// iterations, so that the font file is the only state a search
	// needs to resume.
	Seed int64
}

// New constructs a font and verifies its invariants.
func New(info FontInfo, dict []DictEntry, glyphs []Glyph) (*Font, error) {
	f := &Font{Info: info, Dict: dict, Glyphs: glyphs}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// NumGlyphs returns the number of unique glyph shapes in the font.
func (f *Font) NumGlyphs() int {
	return len(f.Glyphs)
}

// Glyph returns the glyph at the given index.
func (f *Font) Glyph(i int) *Glyph {
	return &f.Glyphs[i]
}

// DictEntry returns the dictionary entry at the given index.
func (f *Font) DictEntry(i int) *DictEntry {
	return &f.Dict[i]
}

// Clone makes a deep copy of the font.
func (f *Font) Clone() *Font {
	f2 := &Font{
		Info: f.Info,
		Seed: f.Seed,
	}
	f2.Dict = make([]DictEntry, len(f.Dict))
	for i := range f.Dict {
		f2.Dict[i] = f.Dict[i].Clone()
	}
	f2.Glyphs = make([]Glyph, len(f.Glyphs))
	for i := range f.Glyphs {
		f2.Glyphs[i] = f.Glyphs[i].Clone()
	}
	return f2
}

// Filter removes all code points for which allowed is false.  Glyphs
// which lose all their code points are removed from the font.
func (f *Font) Filter(allowed map[rune]bool) {
	var glyphs []Glyph
	for _, g := range f.Glyphs {
		var keep []rune
		for _, r := range g.Runes {
			if allowed[r] {
				keep = append(keep, r)
			}
		}
		if len(keep) == 0 {
			continue
		}
		g.Runes = keep
		glyphs = append(glyphs, g)
	}
	f.Glyphs = glyphs
}

// Runes returns the sorted list of all code points in the font.
func (f *Font) Runes() []rune {
	seen := make(map[rune]bool)
	for i := range f.Glyphs {
		for _, r := range f.Glyphs[i].Runes {
			seen[r] = true
		}
	}
	rr := maps.Keys(seen)
	sort.Slice(rr, func(i, j int) bool { return rr[i] < rr[j] })
	return rr
}

// Lookup returns the index of the glyph for the given code point, or -1
// if the font has no glyph for it.
func (f *Font) Lookup(r rune) int {
	for i := range f.Glyphs {
		for _, q := range f.Glyphs[i].Runes {
			if q == r {
				return i
			}
		}
	}
	return -1
}

// Validate checks the font invariants.  Fonts constructed by New or
// Read, and fonts mutated through the public operations, always pass.
func (f *Font) Validate() error {
	if f.Info.Name != strings.TrimSpace(f.Info.Name) ||
		strings.ContainsAny(f.Info.Name, "\r\n") {
		return fmt.Errorf("bitfont: invalid font name %q", f.Info.Name)
	}

	seen := make(map[rune]int)
	for i := range f.Glyphs {
		g := &f.Glyphs[i]
		if len(g.Runes) == 0 {
			return fmt.Errorf("bitfont: glyph %d has no code points", i)
		}
		for _, r := range g.Runes {
			if !utf8.ValidRune(r) {
				return fmt.Errorf("bitfont: glyph %d: invalid code point %d", i, r)
			}
			if j, ok := seen[r]; ok {
				return fmt.Errorf("bitfont: code point %d in glyphs %d and %d", r, j, i)
			}
			seen[r] = i
		}
		if g.Width < 0 {
			return fmt.Errorf("bitfont: glyph %d has negative advance width %d", i, g.Width)
		}
		if err := g.Bitmap.valid(); err != nil {
			return fmt.Errorf("bitfont: glyph %d: %w", i, err)
		}
		if g.Bitmap.W > f.Info.MaxWidth || g.Bitmap.H > f.Info.MaxHeight {
			return fmt.Errorf("bitfont: glyph %d exceeds the %dx%d glyph box",
				i, f.Info.MaxWidth, f.Info.MaxHeight)
		}
	}

	refSeen := false
	for i := range f.Dict {
		d := &f.Dict[i]
		if len(d.Pixels) == 0 {
			return fmt.Errorf("bitfont: dictionary entry %d is empty", i)
		}
		for _, p := range d.Pixels {
			if p > 15 {
				return fmt.Errorf("bitfont: dictionary entry %d: pixel value %d out of range", i, p)
			}
		}
		if d.Ref {
			refSeen = true
		} else if refSeen {
			return fmt.Errorf("bitfont: dictionary entry %d: literal entry after composite entries", i)
		}
	}

	return nil
}
