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
	"bytes"
	"fmt"

	"seehuhn.de/go/dag"

	"seehuhn.de/go/bitfont"
)

// A Font is the fully tokenized form of a bitmap font: one token
// sequence per dictionary entry and one per glyph.  The position of an
// entry in Dict, offset by DictBase, is its reference id.
type Font struct {
	Dict   [][]Token
	Glyphs [][]Token
}

// Encode compresses all dictionary entries and glyphs of the font.
//
// For each pixel string the encoder picks the token sequence with the
// smallest serialized size among all sequences whose expansion
// reproduces the pixel string exactly.  The result is deterministic
// for a fixed font.
func Encode(f *bitfont.Font) (*Font, error) {
	if len(f.Dict) > MaxDictSize {
		return nil, fmt.Errorf("encode: dictionary has %d entries, limit is %d",
			len(f.Dict), MaxDictSize)
	}

	e := &Font{
		Dict:   make([][]Token, len(f.Dict)),
		Glyphs: make([][]Token, len(f.Glyphs)),
	}

	for k := range f.Dict {
		d := &f.Dict[k]
		// Literal entries use run tokens only.  Composite entries may
		// also reference entries at strictly lower indices, which keeps
		// the dictionary acyclic by construction.
		numRef := 0
		if d.Ref {
			numRef = k
		}
		tt, err := tokenize(d.Pixels, f.Dict, numRef)
		if err != nil {
			return nil, err
		}
		e.Dict[k] = tt
	}

	for i := range f.Glyphs {
		tt, err := tokenize(f.Glyphs[i].Bitmap.Pix, f.Dict, len(f.Dict))
		if err != nil {
			return nil, err
		}
		e.Glyphs[i] = tt
	}

	return e, nil
}

// tokenize finds the cheapest token sequence for a pixel string, using
// run tokens and references to the first numRef dictionary entries.
// Cheapest means smallest serialized size in bytes.
func tokenize(pix []byte, dict []bitfont.DictEntry, numRef int) ([]Token, error) {
	if len(pix) == 0 {
		return []Token{}, nil
	}

	g := tokenGraph{pix: pix, dict: dict, numRef: numRef}
	ee, err := dag.ShortestPath[Token, int](g, len(pix))
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return ee, nil
}

// tokenGraph is the search graph for tokenize.  Vertices are positions
// in the pixel string; each edge consumes the expansion of one token.
type tokenGraph struct {
	pix    []byte
	dict   []bitfont.DictEntry
	numRef int
}

func (g tokenGraph) AppendEdges(ee []Token, v int) []Token {
	pix := g.pix

	// a single pixel of any alpha value
	ee = append(ee, Token(pix[v]))

	// runs of blank or opaque pixels
	if pix[v] == 0 || pix[v] == 15 {
		m := 1
		for v+m < len(pix) && m < runLengths[len(runLengths)-1] && pix[v+m] == pix[v] {
			m++
		}
		base := blankBase
		if pix[v] == 15 {
			base = opaqueBase
		}
		for i, n := range runLengths {
			if n > m {
				break
			}
			ee = append(ee, base+Token(i))
		}
	}

	// dictionary references
	for k := 0; k < g.numRef; k++ {
		d := g.dict[k].Pixels
		if len(d) <= len(pix)-v && bytes.Equal(pix[v:v+len(d)], d) {
			ee = append(ee, DictBase+Token(k))
		}
	}

	return ee
}

func (g tokenGraph) Length(v int, t Token) int {
	return tokenCost(t)
}

func (g tokenGraph) To(v int, t Token) int {
	if t < DictBase {
		_, n := literalRun(t)
		return v + n
	}
	return v + len(g.dict[t-DictBase].Pixels)
}
