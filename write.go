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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Write stores the font in its persisted form.  The output round-trips
// through Read exactly.
func (f *Font) Write(w io.Writer) error {
	b := bufio.NewWriter(w)

	fmt.Fprintln(b, fileMagic)
	fmt.Fprintln(b, "FontName", f.Info.Name)
	fmt.Fprintln(b, "MaxWidth", f.Info.MaxWidth)
	fmt.Fprintln(b, "MaxHeight", f.Info.MaxHeight)
	fmt.Fprintln(b, "BaselineX", f.Info.BaselineX)
	fmt.Fprintln(b, "BaselineY", f.Info.BaselineY)
	fmt.Fprintln(b, "LineHeight", f.Info.LineHeight)
	fmt.Fprintln(b, "Flags", f.Info.Flags)
	fmt.Fprintln(b, "Seed", f.Seed)

	for i := range f.Dict {
		d := &f.Dict[i]
		ref := "0"
		if d.Ref {
			ref = "1"
		}
		fmt.Fprintln(b, "DictEntry", ref, formatPixels(d.Pixels))
	}

	for i := range f.Glyphs {
		g := &f.Glyphs[i]
		cc := make([]string, len(g.Runes))
		for j, r := range g.Runes {
			cc[j] = strconv.Itoa(int(r))
		}
		fmt.Fprintln(b, "Glyph", strings.Join(cc, ","), g.Width,
			fmt.Sprintf("%dx%d", g.Bitmap.W, g.Bitmap.H),
			formatPixels(g.Bitmap.Pix))
	}

	return b.Flush()
}

func formatPixels(pixels []byte) string {
	if len(pixels) == 0 {
		return "-"
	}
	const digits = "0123456789abcdef"
	buf := make([]byte, len(pixels))
	for i, p := range pixels {
		buf[i] = digits[p&0x0F]
	}
	return string(buf)
}
