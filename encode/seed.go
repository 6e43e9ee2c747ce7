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
	"sort"

	"golang.org/x/exp/maps"

	"seehuhn.de/go/bitfont"
)

const seedMaxEntries = 64

// seedLengths gives the substring lengths considered when seeding.
var seedLengths = []int{3, 4, 6, 8, 12, 16}

// Seed populates the dictionary of a freshly imported font with
// literal entries for the most valuable repeated pixel substrings
// across all glyphs.  The result is a starting point for the
// optimizer; decoded glyph bitmaps are unaffected.
func Seed(f *bitfont.Font) {
	count := make(map[string]int)
	for i := range f.Glyphs {
		pix := f.Glyphs[i].Bitmap.Pix
		for v := range pix {
			for _, n := range seedLengths {
				if v+n > len(pix) {
					break
				}
				s := pix[v : v+n]
				if uniform(s) {
					// already covered by a single run token
					continue
				}
				count[string(s)]++
			}
		}
	}

	existing := make(map[string]bool)
	for i := range f.Dict {
		existing[string(f.Dict[i].Pixels)] = true
	}

	type candidate struct {
		pix   string
		score int
	}
	var cands []candidate
	for _, s := range maps.Keys(count) {
		c := count[s]
		if c < 2 || existing[s] {
			continue
		}
		// rough byte savings: every occurrence after the first replaces
		// len(s) single-pixel tokens by one reference
		cands = append(cands, candidate{pix: s, score: (c - 1) * (len(s) - 2)})
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].score != cands[j].score {
			return cands[i].score > cands[j].score
		}
		return cands[i].pix < cands[j].pix
	})

	room := MaxDictSize - len(f.Dict)
	if room > seedMaxEntries {
		room = seedMaxEntries
	}
	var add []bitfont.DictEntry
	for _, c := range cands {
		if len(add) >= room {
			break
		}
		if c.score <= 0 {
			break
		}
		add = append(add, bitfont.DictEntry{Pixels: []byte(c.pix)})
	}

	// insert the new literal entries at the literal/composite boundary
	b := len(f.Dict)
	for i := range f.Dict {
		if f.Dict[i].Ref {
			b = i
			break
		}
	}
	dict := make([]bitfont.DictEntry, 0, len(f.Dict)+len(add))
	dict = append(dict, f.Dict[:b]...)
	dict = append(dict, add...)
	dict = append(dict, f.Dict[b:]...)
	f.Dict = dict
}

func uniform(s []byte) bool {
	for _, p := range s[1:] {
		if p != s[0] {
			return false
		}
	}
	return true
}
