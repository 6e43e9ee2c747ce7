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

// Package cgen turns compressed bitmap fonts into C source code for
// embedding in firmware images.
package cgen

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"seehuhn.de/go/bitfont"
	"seehuhn.de/go/bitfont/encode"
)

// WriteHeader emits the C header file declaring the tables for the
// font.  The base name is used as identifier prefix and include guard.
func WriteHeader(w io.Writer, base string, f *bitfont.Font) error {
	id := identifier(base)
	guard := strings.ToUpper(id) + "_H"

	b := bufio.NewWriter(w)
	fmt.Fprintf(b, "/* Compressed bitmap font %q. Generated by bitfont; do not edit. */\n\n", f.Info.Name)
	fmt.Fprintf(b, "#ifndef %s\n", guard)
	fmt.Fprintf(b, "#define %s\n\n", guard)
	fmt.Fprintf(b, "#include <stdint.h>\n\n")

	fmt.Fprintf(b, "#define %s_MAX_WIDTH %d\n", strings.ToUpper(id), f.Info.MaxWidth)
	fmt.Fprintf(b, "#define %s_MAX_HEIGHT %d\n", strings.ToUpper(id), f.Info.MaxHeight)
	fmt.Fprintf(b, "#define %s_BASELINE_X %d\n", strings.ToUpper(id), f.Info.BaselineX)
	fmt.Fprintf(b, "#define %s_BASELINE_Y %d\n", strings.ToUpper(id), f.Info.BaselineY)
	fmt.Fprintf(b, "#define %s_LINE_HEIGHT %d\n", strings.ToUpper(id), f.Info.LineHeight)
	fmt.Fprintf(b, "#define %s_FLAGS %du\n", strings.ToUpper(id), f.Info.Flags)
	fmt.Fprintf(b, "#define %s_DICT_COUNT %d\n", strings.ToUpper(id), len(f.Dict))
	fmt.Fprintf(b, "#define %s_GLYPH_COUNT %d\n", strings.ToUpper(id), len(f.Glyphs))
	fmt.Fprintf(b, "#define %s_CHAR_COUNT %d\n\n", strings.ToUpper(id), len(f.Runes()))

	fmt.Fprintf(b, "extern const uint16_t %s_dict_offsets[];\n", id)
	fmt.Fprintf(b, "extern const uint8_t %s_dict_data[];\n", id)
	fmt.Fprintf(b, "extern const uint16_t %s_glyph_offsets[];\n", id)
	fmt.Fprintf(b, "extern const uint8_t %s_glyph_widths[];\n", id)
	fmt.Fprintf(b, "extern const uint8_t %s_glyph_data[];\n", id)
	fmt.Fprintf(b, "extern const uint32_t %s_chars[];\n", id)
	fmt.Fprintf(b, "extern const uint16_t %s_char_glyphs[];\n\n", id)
	fmt.Fprintf(b, "#endif /* %s */\n", guard)
	return b.Flush()
}

// WriteSource emits the C source file with the encoded dictionary and
// glyph tables and the code point to glyph mapping.
func WriteSource(w io.Writer, base string, f *bitfont.Font) error {
	e, err := encode.Encode(f)
	if err != nil {
		return err
	}
	id := identifier(base)

	b := bufio.NewWriter(w)
	fmt.Fprintf(b, "/* Compressed bitmap font %q. Generated by bitfont; do not edit. */\n\n", f.Info.Name)
	fmt.Fprintf(b, "#include \"%s.h\"\n\n", base)

	var dictData []byte
	var dictOffsets []int
	for _, tt := range e.Dict {
		dictOffsets = append(dictOffsets, len(dictData))
		for _, t := range tt {
			dictData = encode.AppendToken(dictData, t)
		}
	}
	dictOffsets = append(dictOffsets, len(dictData))

	fmt.Fprintf(b, "const uint16_t %s_dict_offsets[] = {\n", id)
	writeInts(b, dictOffsets)
	fmt.Fprintf(b, "};\n\n")
	fmt.Fprintf(b, "const uint8_t %s_dict_data[] = {\n", id)
	writeBytes(b, dictData)
	fmt.Fprintf(b, "};\n\n")

	var glyphData []byte
	var glyphOffsets []int
	var glyphWidths []int
	for i, tt := range e.Glyphs {
		glyphOffsets = append(glyphOffsets, len(glyphData))
		glyphWidths = append(glyphWidths, f.Glyphs[i].Width)
		for _, t := range tt {
			glyphData = encode.AppendToken(glyphData, t)
		}
	}
	glyphOffsets = append(glyphOffsets, len(glyphData))

	fmt.Fprintf(b, "const uint16_t %s_glyph_offsets[] = {\n", id)
	writeInts(b, glyphOffsets)
	fmt.Fprintf(b, "};\n\n")
	fmt.Fprintf(b, "const uint8_t %s_glyph_widths[] = {\n", id)
	writeInts(b, glyphWidths)
	fmt.Fprintf(b, "};\n\n")
	fmt.Fprintf(b, "const uint8_t %s_glyph_data[] = {\n", id)
	writeBytes(b, glyphData)
	fmt.Fprintf(b, "};\n\n")

	runes := f.Runes()
	chars := make([]int, len(runes))
	glyphs := make([]int, len(runes))
	for i, r := range runes {
		chars[i] = int(r)
		glyphs[i] = f.Lookup(r)
	}
	fmt.Fprintf(b, "const uint32_t %s_chars[] = {\n", id)
	writeInts(b, chars)
	fmt.Fprintf(b, "};\n\n")
	fmt.Fprintf(b, "const uint16_t %s_char_glyphs[] = {\n", id)
	writeInts(b, glyphs)
	fmt.Fprintf(b, "};\n")
	return b.Flush()
}

// identifier turns a file base name into a valid C identifier.
func identifier(base string) string {
	var sb strings.Builder
	for i, c := range base {
		ok := c == '_' ||
			c >= 'a' && c <= 'z' ||
			c >= 'A' && c <= 'Z' ||
			c >= '0' && c <= '9' && i > 0
		if ok {
			sb.WriteRune(c)
		} else {
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

func writeBytes(w io.Writer, data []byte) {
	for i, v := range data {
		if i%12 == 0 {
			fmt.Fprint(w, "    ")
		}
		fmt.Fprintf(w, "0x%02x,", v)
		if i%12 == 11 || i == len(data)-1 {
			fmt.Fprintln(w)
		} else {
			fmt.Fprint(w, " ")
		}
	}
}

func writeInts(w io.Writer, data []int) {
	for i, v := range data {
		if i%12 == 0 {
			fmt.Fprint(w, "    ")
		}
		fmt.Fprintf(w, "%d,", v)
		if i%12 == 11 || i == len(data)-1 {
			fmt.Fprintln(w)
		} else {
			fmt.Fprint(w, " ")
		}
	}
}
