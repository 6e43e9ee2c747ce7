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
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRoundTrip(t *testing.T) {
	f := makeTestFont(t)
	f.Seed = 12345

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		t.Fatal(err)
	}

	f2, err := Read(buf)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(f, f2); d != "" {
		t.Errorf("font changed in round trip (-want +got):\n%s", d)
	}
}

func TestReadErrors(t *testing.T) {
	const header = `bitfont format 1
FontName Test
MaxWidth 2
MaxHeight 2
BaselineX 0
BaselineY 1
LineHeight 3
Flags 0
Seed 0
`
	cases := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"bad magic", "bitfont format 99\n"},
		{"unknown keyword", header + "Bogus 1\n"},
		{"bad pixel digit", header + "Glyph 65 2 2x2 00fg\n"},
		{"pixel count mismatch", header + "Glyph 65 2 2x2 000\n"},
		{"bad code point", header + "Glyph x 2 2x2 0000\n"},
		{"code point out of range", header + "Glyph 1114112 1 1x1 0\n"},
		{"surrogate code point", header + "Glyph 55296 1 1x1 0\n"},
		{"negative glyph width", header + "Glyph 65 -3 2x2 0000\n"},
		{"missing glyph fields", header + "Glyph 65 2\n"},
		{"empty dict entry", header + "DictEntry 0 -\n"},
		{"bad ref flag", header + "DictEntry 2 00ff\n"},
		{"duplicate code point", header + "Glyph 65 2 2x2 0000\nGlyph 65 2 2x2 00ff\n"},
		{"bitmap too large", header + "Glyph 65 2 3x2 000000\n"},
		{"literal after composite", header + "DictEntry 1 0f\nDictEntry 0 f0\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(c.in))
			if err == nil {
				t.Fatal("expected error")
			}
			var fmtErr *FormatError
			if !errors.As(err, &fmtErr) {
				t.Errorf("got %T, want *FormatError", err)
			}
		})
	}
}

func TestReadComments(t *testing.T) {
	in := `bitfont format 1
# a comment
FontName Test

MaxWidth 1
MaxHeight 1
Glyph 32 1 1x1 0
`
	f, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if f.NumGlyphs() != 1 || f.Info.Name != "Test" {
		t.Errorf("unexpected font: %+v", f)
	}
}

func FuzzRead(f *testing.F) {
	buf := &bytes.Buffer{}
	font := &Font{
		Info: FontInfo{
			Name:      "Seed",
			MaxWidth:  2,
			MaxHeight: 2,
		},
		Dict: []DictEntry{
			{Pixels: []byte{0, 15}},
			{Pixels: []byte{15, 15, 0}, Ref: true},
		},
		Glyphs: []Glyph{
			{Runes: []rune{'A'}, Width: 2, Bitmap: Bitmap{W: 2, H: 2, Pix: []byte{0, 15, 15, 0}}},
		},
		Seed: 42,
	}
	if err := font.Write(buf); err != nil {
		f.Fatal(err)
	}
	f.Add(buf.String())

	f.Fuzz(func(t *testing.T, data string) {
		f1, err := Read(strings.NewReader(data))
		if err != nil {
			return
		}

		buf := &bytes.Buffer{}
		if err := f1.Write(buf); err != nil {
			t.Fatal(err)
		}
		f2, err := Read(buf)
		if err != nil {
			t.Fatal(err)
		}
		if d := cmp.Diff(f1, f2); d != "" {
			t.Errorf("font changed in round trip (-want +got):\n%s", d)
		}
	})
}
