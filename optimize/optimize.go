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

// Package optimize shrinks the encoded size of a bitmap font by local
// search over its compression dictionary.
//
// Each call to Optimize performs one self-contained search iteration.
// The font is the only state carried between iterations: the random
// state lives in the font's Seed field, so a caller can persist the
// font after every call and resume later, or stop at any time, without
// losing progress.
package optimize

import (
	"math/rand"

	"seehuhn.de/go/bitfont"
	"seehuhn.de/go/bitfont/encode"
)

const (
	numTrials = 16

	minEntryLen = 2
	maxEntryLen = 64
)

// Optimize performs one optimization iteration on the font.
//
// The call proposes a bounded number of random dictionary mutations,
// evaluates each candidate on a private copy via encode.Size, and
// commits the best candidate if it does not increase the encoded size.
// The font is never left with a larger encoded size than on entry, and
// all font invariants hold on return.  Glyph shapes and code point
// assignments are never changed.
func Optimize(f *bitfont.Font) error {
	base, err := encode.Size(f)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(f.Seed))

	bestSize := base
	var bestDict []bitfont.DictEntry
	for t := 0; t < numTrials; t++ {
		dict := mutate(f, rng)
		if dict == nil {
			continue
		}
		trial := &bitfont.Font{
			Info:   f.Info,
			Dict:   dict,
			Glyphs: f.Glyphs,
		}
		size, err := encode.Size(trial)
		if err != nil {
			return err
		}
		if size <= bestSize {
			bestSize = size
			bestDict = dict
		}
	}

	if bestDict != nil {
		f.Dict = bestDict
	}
	f.Seed = rng.Int63()
	return nil
}

// mutate returns a mutated deep copy of the font's dictionary, or nil
// if the chosen mutation is not applicable.  The font itself is left
// untouched.
func mutate(f *bitfont.Font, rng *rand.Rand) []bitfont.DictEntry {
	dict := make([]bitfont.DictEntry, len(f.Dict))
	for i := range f.Dict {
		dict[i] = f.Dict[i].Clone()
	}

	switch rng.Intn(6) {
	case 0:
		return addEntry(f, dict, rng)
	case 1:
		return removeEntry(dict, rng)
	case 2:
		return growEntry(f, dict, rng)
	case 3:
		return shrinkEntry(dict, rng)
	case 4:
		return mutatePixel(dict, rng)
	default:
		return toggleRef(dict, rng)
	}
}

// addEntry inserts a new entry taken from a random glyph substring.
func addEntry(f *bitfont.Font, dict []bitfont.DictEntry, rng *rand.Rand) []bitfont.DictEntry {
	if len(dict) >= encode.MaxDictSize || len(f.Glyphs) == 0 {
		return nil
	}
	pix := f.Glyphs[rng.Intn(len(f.Glyphs))].Bitmap.Pix
	if len(pix) < minEntryLen {
		return nil
	}
	n := minEntryLen + rng.Intn(15)
	if n > maxEntryLen {
		n = maxEntryLen
	}
	if n > len(pix) {
		n = len(pix)
	}
	v := rng.Intn(len(pix) - n + 1)
	entry := bitfont.DictEntry{
		Pixels: append([]byte(nil), pix[v:v+n]...),
		Ref:    rng.Intn(2) == 0,
	}
	if entry.Ref {
		return append(dict, entry)
	}
	return insertLiteral(dict, entry)
}

func removeEntry(dict []bitfont.DictEntry, rng *rand.Rand) []bitfont.DictEntry {
	if len(dict) == 0 {
		return nil
	}
	i := rng.Intn(len(dict))
	return append(dict[:i], dict[i+1:]...)
}

// growEntry extends an entry by one pixel, using the context of an
// occurrence of the entry inside a glyph so that the longer string
// still matches somewhere.
func growEntry(f *bitfont.Font, dict []bitfont.DictEntry, rng *rand.Rand) []bitfont.DictEntry {
	if len(dict) == 0 {
		return nil
	}
	i := rng.Intn(len(dict))
	d := &dict[i]
	if len(d.Pixels) >= maxEntryLen {
		return nil
	}
	atEnd := rng.Intn(2) == 0

	p, ok := findContext(f, d.Pixels, atEnd, rng)
	if !ok {
		return nil
	}
	if atEnd {
		d.Pixels = append(d.Pixels, p)
	} else {
		d.Pixels = append([]byte{p}, d.Pixels...)
	}
	return dict
}

// findContext looks for an occurrence of pix in some glyph with a
// neighboring pixel after (atEnd) or before it, and returns that
// neighbor.
func findContext(f *bitfont.Font, pix []byte, atEnd bool, rng *rand.Rand) (byte, bool) {
	if len(f.Glyphs) == 0 {
		return 0, false
	}
	start := rng.Intn(len(f.Glyphs))
	for j := 0; j < len(f.Glyphs); j++ {
		g := &f.Glyphs[(start+j)%len(f.Glyphs)]
		p := g.Bitmap.Pix
		for v := 0; v+len(pix) <= len(p); v++ {
			if !match(p[v:], pix) {
				continue
			}
			if atEnd && v+len(pix) < len(p) {
				return p[v+len(pix)], true
			}
			if !atEnd && v > 0 {
				return p[v-1], true
			}
		}
	}
	return 0, false
}

func match(p, pix []byte) bool {
	for i := range pix {
		if p[i] != pix[i] {
			return false
		}
	}
	return true
}

func shrinkEntry(dict []bitfont.DictEntry, rng *rand.Rand) []bitfont.DictEntry {
	if len(dict) == 0 {
		return nil
	}
	i := rng.Intn(len(dict))
	d := &dict[i]
	if len(d.Pixels) <= minEntryLen {
		return nil
	}
	if rng.Intn(2) == 0 {
		d.Pixels = d.Pixels[1:]
	} else {
		d.Pixels = d.Pixels[:len(d.Pixels)-1]
	}
	return dict
}

func mutatePixel(dict []bitfont.DictEntry, rng *rand.Rand) []bitfont.DictEntry {
	if len(dict) == 0 {
		return nil
	}
	i := rng.Intn(len(dict))
	d := &dict[i]
	d.Pixels[rng.Intn(len(d.Pixels))] = byte(rng.Intn(16))
	return dict
}

// toggleRef flips an entry between literal and composite, moving it to
// the other side of the literal/composite boundary.
func toggleRef(dict []bitfont.DictEntry, rng *rand.Rand) []bitfont.DictEntry {
	if len(dict) == 0 {
		return nil
	}
	i := rng.Intn(len(dict))
	entry := dict[i]
	entry.Ref = !entry.Ref
	dict = append(dict[:i], dict[i+1:]...)
	if entry.Ref {
		return append(dict, entry)
	}
	return insertLiteral(dict, entry)
}

// insertLiteral inserts a literal entry at the literal/composite
// boundary, keeping literal entries in front.
func insertLiteral(dict []bitfont.DictEntry, entry bitfont.DictEntry) []bitfont.DictEntry {
	b := len(dict)
	for i := range dict {
		if dict[i].Ref {
			b = i
			break
		}
	}
	out := make([]bitfont.DictEntry, 0, len(dict)+1)
	out = append(out, dict[:b]...)
	out = append(out, entry)
	out = append(out, dict[b:]...)
	return out
}
