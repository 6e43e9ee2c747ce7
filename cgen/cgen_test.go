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

package cgen

import (
	"bytes"
	"strings"
	"testing"

	"seehuhn.de/go/bitfont/encode"
	"seehuhn.de/go/bitfont/internal/debug"
)

func TestWriteHeader(t *testing.T) {
	f := debug.MakeTestFont()
	encode.Seed(f)

	buf := &bytes.Buffer{}
	if err := WriteHeader(buf, "my-font", f); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"#ifndef MY_FONT_H",
		"#define MY_FONT_H",
		"#define MY_FONT_MAX_WIDTH 6",
		"#define MY_FONT_MAX_HEIGHT 8",
		"#define MY_FONT_GLYPH_COUNT 4",
		"#define MY_FONT_CHAR_COUNT 5",
		"extern const uint8_t my_font_glyph_data[];",
		"extern const uint32_t my_font_chars[];",
		"#endif",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("header is missing %q", want)
		}
	}
}

func TestWriteSource(t *testing.T) {
	f := debug.MakeTestFont()
	encode.Seed(f)

	buf := &bytes.Buffer{}
	if err := WriteSource(buf, "my-font", f); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"#include \"my-font.h\"",
		"const uint16_t my_font_dict_offsets[] = {",
		"const uint8_t my_font_dict_data[] = {",
		"const uint16_t my_font_glyph_offsets[] = {",
		"const uint8_t my_font_glyph_data[] = {",
		"const uint32_t my_font_chars[] = {",
		"const uint16_t my_font_char_glyphs[] = {",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("source is missing %q", want)
		}
	}

	// all five code points of the test font appear in the map
	if !strings.Contains(out, "32,") {
		t.Error("code point for ' ' missing from character map")
	}
}

func TestWriteSourceDeterministic(t *testing.T) {
	f := debug.MakeTestFont()
	encode.Seed(f)

	buf1 := &bytes.Buffer{}
	buf2 := &bytes.Buffer{}
	if err := WriteSource(buf1, "x", f); err != nil {
		t.Fatal(err)
	}
	if err := WriteSource(buf2, "x", f); err != nil {
		t.Fatal(err)
	}
	if buf1.String() != buf2.String() {
		t.Error("generated source is not deterministic")
	}
}

func TestIdentifier(t *testing.T) {
	cases := []struct{ in, want string }{
		{"myfont", "myfont"},
		{"my-font", "my_font"},
		{"8x13", "_x13"},
		{"font.12", "font_12"},
	}
	for _, c := range cases {
		if got := identifier(c.in); got != c.want {
			t.Errorf("identifier(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
