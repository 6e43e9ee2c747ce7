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

package encode_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/bitfont"
	"seehuhn.de/go/bitfont/encode"
	"seehuhn.de/go/bitfont/internal/debug"
)

// checkRoundTrip verifies that decoding reproduces every glyph bitmap
// exactly.
func checkRoundTrip(t *testing.T, f *bitfont.Font) {
	t.Helper()

	e, err := encode.Encode(f)
	if err != nil {
		t.Fatal(err)
	}
	for i := range f.Glyphs {
		pix, err := encode.Decode(e, i)
		if err != nil {
			t.Fatalf("glyph %d: %v", i, err)
		}
		if len(pix) == 0 && len(f.Glyphs[i].Bitmap.Pix) == 0 {
			continue
		}
		if !bytes.Equal(pix, f.Glyphs[i].Bitmap.Pix) {
			t.Errorf("glyph %d: decoded bitmap differs", i)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	f := debug.MakeTestFont()
	checkRoundTrip(t, f)

	encode.Seed(f)
	checkRoundTrip(t, f)
}

func TestRoundTripComposite(t *testing.T) {
	f := debug.MakeTestFont()
	f.Dict = []bitfont.DictEntry{
		{Pixels: []byte{15, 15, 0, 0}},
		{Pixels: []byte{15, 15, 0, 0, 15, 15, 0, 0}, Ref: true},
	}
	if err := f.Validate(); err != nil {
		t.Fatal(err)
	}
	checkRoundTrip(t, f)
}

func TestDeterministic(t *testing.T) {
	f := debug.MakeTestFont()
	encode.Seed(f)

	e1, err := encode.Encode(f)
	if err != nil {
		t.Fatal(err)
	}
	e2, err := encode.Encode(f)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(e1, e2); d != "" {
		t.Errorf("encoding is not deterministic:\n%s", d)
	}
}

// TestReferenceRange checks that every emitted token is either a
// primitive run token or a reference to an existing dictionary entry,
// and that dictionary entries only reference lower indices.
func TestReferenceRange(t *testing.T) {
	f := debug.MakeTestFont()
	encode.Seed(f)
	f.Dict = append(f.Dict, bitfont.DictEntry{
		Pixels: append([]byte(nil), f.Glyphs[2].Bitmap.Pix[:12]...),
		Ref:    true,
	})
	if err := f.Validate(); err != nil {
		t.Fatal(err)
	}

	e, err := encode.Encode(f)
	if err != nil {
		t.Fatal(err)
	}

	for k, tt := range e.Dict {
		for _, tok := range tt {
			if tok < encode.DictBase {
				continue
			}
			if ref := int(tok - encode.DictBase); ref >= k {
				t.Errorf("entry %d references entry %d", k, ref)
			}
		}
	}
	for i, tt := range e.Glyphs {
		for _, tok := range tt {
			if tok >= encode.DictBase && int(tok-encode.DictBase) >= len(f.Dict) {
				t.Errorf("glyph %d references entry %d", i, int(tok-encode.DictBase))
			}
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	e := &encode.Font{
		Dict:   [][]encode.Token{{encode.DictBase}}, // entry referencing itself
		Glyphs: [][]encode.Token{{encode.DictBase}},
	}
	if _, err := encode.Decode(e, 0); err == nil {
		t.Error("expected error for cyclic reference")
	}
	if _, err := encode.Decode(e, 1); err == nil {
		t.Error("expected error for glyph index out of range")
	}

	e = &encode.Font{
		Glyphs: [][]encode.Token{{encode.DictBase + 3}},
	}
	if _, err := encode.Decode(e, 0); err == nil {
		t.Error("expected error for dangling reference")
	}
}

func TestDictEntryUsed(t *testing.T) {
	f := debug.MakeTestFont()
	// the stem rows of 'I' all have the pixel pattern "..@@.."
	f.Dict = []bitfont.DictEntry{
		{Pixels: []byte{0, 0, 15, 15, 0, 0}},
	}

	e, err := encode.Encode(f)
	if err != nil {
		t.Fatal(err)
	}

	used := false
	for _, tt := range e.Glyphs {
		for _, tok := range tt {
			if tok == encode.DictBase {
				used = true
			}
		}
	}
	if !used {
		t.Error("dictionary entry not used although it matches glyph content")
	}

	checkRoundTrip(t, f)
}

func TestSize(t *testing.T) {
	f := debug.MakeTestFont()
	size, err := encode.Size(f)
	if err != nil {
		t.Fatal(err)
	}
	if size <= 0 {
		t.Errorf("size = %d, want > 0", size)
	}

	// filtering away code points can only shrink the encoded font
	f2 := f.Clone()
	f2.Filter(map[rune]bool{'I': true, 'o': true})
	size2, err := encode.Size(f2)
	if err != nil {
		t.Fatal(err)
	}
	if size2 > size {
		t.Errorf("size grew from %d to %d after filtering", size, size2)
	}
}

func TestSizeEmptyFont(t *testing.T) {
	f := debug.MakeTestFont()
	f.Filter(map[rune]bool{})
	_, err := encode.Size(f)
	if !errors.Is(err, bitfont.ErrNoGlyphs) {
		t.Errorf("got %v, want ErrNoGlyphs", err)
	}
}

func TestSeed(t *testing.T) {
	f := debug.MakeTestFont()
	if len(f.Dict) != 0 {
		t.Fatal("test font already has a dictionary")
	}

	encode.Seed(f)

	if len(f.Dict) == 0 {
		t.Fatal("seeding added no dictionary entries")
	}
	if err := f.Validate(); err != nil {
		t.Error(err)
	}
	for i := range f.Dict {
		if f.Dict[i].Ref {
			t.Errorf("seeded entry %d is composite", i)
		}
	}

	checkRoundTrip(t, f)
}
