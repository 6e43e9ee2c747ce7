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

package optimize

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/bitfont"
	"seehuhn.de/go/bitfont/encode"
	"seehuhn.de/go/bitfont/internal/debug"
)

// TestMonotonic checks the core optimizer contract: the encoded size
// never increases, over any number of iterations.
func TestMonotonic(t *testing.T) {
	f := debug.MakeTestFont()
	encode.Seed(f)

	prev, err := encode.Size(f)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		if err := Optimize(f); err != nil {
			t.Fatal(err)
		}
		size, err := encode.Size(f)
		if err != nil {
			t.Fatal(err)
		}
		if size > prev {
			t.Fatalf("iteration %d: size grew from %d to %d", i+1, prev, size)
		}
		prev = size

		if err := f.Validate(); err != nil {
			t.Fatalf("iteration %d: %v", i+1, err)
		}
	}
}

// TestGlyphsUntouched checks that optimization never changes which
// code points exist or what their bitmaps look like.
func TestGlyphsUntouched(t *testing.T) {
	f := debug.MakeTestFont()
	encode.Seed(f)
	want := make([]bitfont.Glyph, len(f.Glyphs))
	for i := range f.Glyphs {
		want[i] = f.Glyphs[i].Clone()
	}

	for i := 0; i < 5; i++ {
		if err := Optimize(f); err != nil {
			t.Fatal(err)
		}
	}

	if d := cmp.Diff(want, f.Glyphs); d != "" {
		t.Errorf("glyphs changed (-want +got):\n%s", d)
	}
}

// TestRoundTripAfterOptimize checks that decoding still reproduces all
// bitmaps after optimization.
func TestRoundTripAfterOptimize(t *testing.T) {
	f := debug.MakeTestFont()
	encode.Seed(f)
	for i := 0; i < 8; i++ {
		if err := Optimize(f); err != nil {
			t.Fatal(err)
		}
	}

	e, err := encode.Encode(f)
	if err != nil {
		t.Fatal(err)
	}
	for i := range f.Glyphs {
		pix, err := encode.Decode(e, i)
		if err != nil {
			t.Fatalf("glyph %d: %v", i, err)
		}
		if len(pix) != len(f.Glyphs[i].Bitmap.Pix) || !bytes.Equal(pix, f.Glyphs[i].Bitmap.Pix) {
			t.Errorf("glyph %d: decoded bitmap differs", i)
		}
	}
}

// TestDeterministic checks that the search state is fully contained in
// the font: two identical fonts optimize identically.
func TestDeterministic(t *testing.T) {
	f1 := debug.MakeTestFont()
	encode.Seed(f1)
	f1.Seed = 99
	f2 := f1.Clone()

	for i := 0; i < 3; i++ {
		if err := Optimize(f1); err != nil {
			t.Fatal(err)
		}
		if err := Optimize(f2); err != nil {
			t.Fatal(err)
		}
	}
	if d := cmp.Diff(f1, f2); d != "" {
		t.Errorf("optimization diverged (-f1 +f2):\n%s", d)
	}
}

func TestSeedAdvances(t *testing.T) {
	f := debug.MakeTestFont()
	encode.Seed(f)
	before := f.Seed
	if err := Optimize(f); err != nil {
		t.Fatal(err)
	}
	if f.Seed == before {
		t.Error("random state not advanced")
	}
}

func TestEmptyFont(t *testing.T) {
	f := debug.MakeTestFont()
	f.Filter(map[rune]bool{})
	err := Optimize(f)
	if !errors.Is(err, bitfont.ErrNoGlyphs) {
		t.Errorf("got %v, want ErrNoGlyphs", err)
	}
}
