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

// Package bdf imports fonts in the Glyph Bitmap Distribution Format.
package bdf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"seehuhn.de/go/bitfont"
)

// Read parses a BDF font.  The one-bit pixels of the format are mapped
// to fully transparent and fully opaque, and the FlagBW flag is set.
func Read(r io.Reader) (*bitfont.Font, error) {
	p := &parser{scanner: bufio.NewScanner(r)}
	p.scanner.Buffer(make([]byte, 0, 1<<16), 1<<20)

	fields, ok := p.next()
	if !ok || fields[0] != "STARTFONT" {
		return nil, p.error("missing STARTFONT line")
	}

	var name string
	var fbbW, fbbH, fbbOx, fbbOy int
	haveBox := false
	for {
		fields, ok := p.next()
		if !ok {
			return nil, p.error("missing CHARS line")
		}
		switch fields[0] {
		case "FONT":
			if len(fields) > 1 {
				name = strings.Join(fields[1:], " ")
			}
		case "FONTBOUNDINGBOX":
			if len(fields) != 5 {
				return nil, p.error("malformed FONTBOUNDINGBOX")
			}
			var err error
			fbbW, fbbH, fbbOx, fbbOy, err = parseBox(fields[1:])
			if err != nil {
				return nil, p.error("malformed FONTBOUNDINGBOX")
			}
			haveBox = true
		case "CHARS":
			goto chars
		}
	}

chars:
	if !haveBox || fbbW <= 0 || fbbH <= 0 {
		return nil, p.error("missing or invalid FONTBOUNDINGBOX")
	}
	ascent := fbbH + fbbOy

	info := bitfont.FontInfo{
		Name:       name,
		MaxWidth:   fbbW,
		MaxHeight:  fbbH,
		BaselineX:  -fbbOx,
		BaselineY:  ascent,
		LineHeight: fbbH,
		Flags:      bitfont.FlagBW,
	}
	builder := bitfont.NewBuilder(info)

	for {
		fields, ok := p.next()
		if !ok {
			return nil, p.error("missing ENDFONT line")
		}
		switch fields[0] {
		case "STARTCHAR":
			err := p.readChar(builder, fbbW, fbbH, fbbOx, ascent)
			if err != nil {
				return nil, err
			}
		case "ENDFONT":
			return builder.Font()
		}
	}
}

type parser struct {
	scanner *bufio.Scanner
	line    int
}

func (p *parser) next() ([]string, bool) {
	for p.scanner.Scan() {
		p.line++
		fields := strings.Fields(p.scanner.Text())
		if len(fields) == 0 {
			continue
		}
		return fields, true
	}
	return nil, false
}

func (p *parser) error(format string, a ...interface{}) error {
	return &bitfont.FormatError{Line: p.line, Reason: fmt.Sprintf(format, a...)}
}

// readChar parses one STARTCHAR..ENDCHAR block and places the glyph
// into the common glyph box.
func (p *parser) readChar(builder *bitfont.Builder, cellW, cellH, fbbOx, ascent int) error {
	code := -1
	width := 0
	var bbxW, bbxH, bbxOx, bbxOy int
	haveBBX := false

	for {
		fields, ok := p.next()
		if !ok {
			return p.error("missing BITMAP line")
		}
		switch fields[0] {
		case "ENCODING":
			if len(fields) < 2 {
				return p.error("malformed ENCODING")
			}
			c, err := strconv.Atoi(fields[1])
			if err != nil {
				return p.error("malformed ENCODING")
			}
			code = c
		case "DWIDTH":
			if len(fields) < 2 {
				return p.error("malformed DWIDTH")
			}
			w, err := strconv.Atoi(fields[1])
			if err != nil || w < 0 {
				return p.error("malformed DWIDTH")
			}
			width = w
		case "BBX":
			if len(fields) != 5 {
				return p.error("malformed BBX")
			}
			var err error
			bbxW, bbxH, bbxOx, bbxOy, err = parseBox(fields[1:])
			if err != nil {
				return p.error("malformed BBX")
			}
			haveBBX = true
		case "BITMAP":
			goto bitmap
		case "ENDCHAR":
			return p.error("BITMAP missing in character")
		}
	}

bitmap:
	if !haveBBX {
		return p.error("BBX missing in character")
	}

	bm := bitfont.NewBitmap(cellW, cellH)
	x0 := bbxOx - fbbOx
	y0 := ascent - (bbxH + bbxOy)
	for row := 0; row < bbxH; row++ {
		fields, ok := p.next()
		if !ok {
			return p.error("unexpected end of bitmap")
		}
		bits, err := parseBitmapRow(fields[0], bbxW)
		if err != nil {
			return p.error("%s", err)
		}
		y := y0 + row
		if y < 0 || y >= cellH {
			continue
		}
		for col, on := range bits {
			x := x0 + col
			if !on || x < 0 || x >= cellW {
				continue
			}
			bm.Set(x, y, 15)
		}
	}

	fields, ok := p.next()
	if !ok || fields[0] != "ENDCHAR" {
		return p.error("missing ENDCHAR line")
	}

	if code < 0 {
		// glyph without a code point
		return nil
	}
	return builder.Add(rune(code), width, bm)
}

func parseBox(fields []string) (w, h, ox, oy int, err error) {
	vv := make([]int, 4)
	for i, s := range fields {
		vv[i], err = strconv.Atoi(s)
		if err != nil {
			return 0, 0, 0, 0, err
		}
	}
	return vv[0], vv[1], vv[2], vv[3], nil
}

// parseBitmapRow decodes one row of hex digits, most significant bit
// leftmost, padded to a whole number of bytes.
func parseBitmapRow(s string, width int) ([]bool, error) {
	need := (width + 7) / 8 * 2
	if len(s) < need {
		return nil, fmt.Errorf("bitmap row %q too short for %d pixels", s, width)
	}
	bits := make([]bool, width)
	for i := 0; i < width; i++ {
		d := s[i/4]
		var v byte
		switch {
		case d >= '0' && d <= '9':
			v = d - '0'
		case d >= 'a' && d <= 'f':
			v = d - 'a' + 10
		case d >= 'A' && d <= 'F':
			v = d - 'A' + 10
		default:
			return nil, fmt.Errorf("invalid hex digit %q in bitmap row", d)
		}
		bits[i] = v&(1<<(3-i%4)) != 0
	}
	return bits, nil
}
