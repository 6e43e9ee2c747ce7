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
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// fileMagic is the first line of the persisted font format.
const fileMagic = "bitfont format 1"

// FormatError indicates that persisted font data is malformed.
type FormatError struct {
	Line   int
	Reason string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("bitfont: line %d: %s", e.Line, e.Reason)
	}
	return "bitfont: " + e.Reason
}

// Read parses a font from its persisted form.  On any malformed input
// it returns a *FormatError and no font.
func Read(r io.Reader) (*Font, error) {
	p := &fontReader{scanner: bufio.NewScanner(r)}
	p.scanner.Buffer(make([]byte, 0, 1<<16), 1<<24)

	line, ok := p.next()
	if !ok || line != fileMagic {
		return nil, p.error("missing %q header", fileMagic)
	}

	f := &Font{}
	for {
		line, ok := p.next()
		if !ok {
			break
		}
		key, rest, _ := strings.Cut(line, " ")
		var err error
		switch key {
		case "FontName":
			f.Info.Name = rest
		case "MaxWidth":
			f.Info.MaxWidth, err = strconv.Atoi(rest)
		case "MaxHeight":
			f.Info.MaxHeight, err = strconv.Atoi(rest)
		case "BaselineX":
			f.Info.BaselineX, err = strconv.Atoi(rest)
		case "BaselineY":
			f.Info.BaselineY, err = strconv.Atoi(rest)
		case "LineHeight":
			f.Info.LineHeight, err = strconv.Atoi(rest)
		case "Flags":
			var flags uint64
			flags, err = strconv.ParseUint(rest, 10, 32)
			f.Info.Flags = uint32(flags)
		case "Seed":
			f.Seed, err = strconv.ParseInt(rest, 10, 64)
		case "DictEntry":
			err = p.readDictEntry(f, rest)
		case "Glyph":
			err = p.readGlyph(f, rest)
		default:
			err = fmt.Errorf("unknown keyword %q", key)
		}
		if err != nil {
			return nil, p.error("%s", err)
		}
	}
	if err := p.scanner.Err(); err != nil {
		return nil, err
	}

	if err := f.Validate(); err != nil {
		return nil, p.error("%s", strings.TrimPrefix(err.Error(), "bitfont: "))
	}
	return f, nil
}

type fontReader struct {
	scanner *bufio.Scanner
	line    int
}

func (p *fontReader) next() (string, bool) {
	for p.scanner.Scan() {
		p.line++
		line := strings.TrimSpace(p.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line, true
	}
	return "", false
}

func (p *fontReader) error(format string, a ...interface{}) error {
	return &FormatError{Line: p.line, Reason: fmt.Sprintf(format, a...)}
}

func (p *fontReader) readDictEntry(f *Font, rest string) error {
	fields := strings.Fields(rest)
	if len(fields) != 2 {
		return fmt.Errorf("DictEntry needs 2 fields, got %d", len(fields))
	}
	var ref bool
	switch fields[0] {
	case "0":
		ref = false
	case "1":
		ref = true
	default:
		return fmt.Errorf("invalid ref flag %q", fields[0])
	}
	pixels, err := parsePixels(fields[1])
	if err != nil {
		return err
	}
	if len(pixels) == 0 {
		return fmt.Errorf("empty dictionary entry")
	}
	f.Dict = append(f.Dict, DictEntry{Pixels: pixels, Ref: ref})
	return nil
}

func (p *fontReader) readGlyph(f *Font, rest string) error {
	fields := strings.Fields(rest)
	if len(fields) != 4 {
		return fmt.Errorf("Glyph needs 4 fields, got %d", len(fields))
	}

	var runes []rune
	for _, s := range strings.Split(fields[0], ",") {
		c, err := strconv.ParseUint(s, 10, 21)
		if err != nil || !utf8.ValidRune(rune(c)) {
			return fmt.Errorf("invalid code point %q", s)
		}
		runes = append(runes, rune(c))
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })

	width, err := strconv.Atoi(fields[1])
	if err != nil || width < 0 {
		return fmt.Errorf("invalid glyph width %q", fields[1])
	}

	ws, hs, ok := strings.Cut(fields[2], "x")
	if !ok {
		return fmt.Errorf("invalid bitmap size %q", fields[2])
	}
	w, err1 := strconv.Atoi(ws)
	h, err2 := strconv.Atoi(hs)
	if err1 != nil || err2 != nil || w < 0 || h < 0 {
		return fmt.Errorf("invalid bitmap size %q", fields[2])
	}

	pixels, err := parsePixels(fields[3])
	if err != nil {
		return err
	}
	if len(pixels) != w*h {
		return fmt.Errorf("bitmap size %dx%d does not match %d pixels",
			w, h, len(pixels))
	}

	f.Glyphs = append(f.Glyphs, Glyph{
		Runes:  runes,
		Width:  width,
		Bitmap: Bitmap{W: w, H: h, Pix: pixels},
	})
	return nil
}

// parsePixels decodes a pixel string with one hex digit per pixel.
// "-" denotes an empty pixel string.
func parsePixels(s string) ([]byte, error) {
	if s == "-" {
		return []byte{}, nil
	}
	pixels := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			pixels[i] = c - '0'
		case c >= 'a' && c <= 'f':
			pixels[i] = c - 'a' + 10
		default:
			return nil, fmt.Errorf("invalid pixel digit %q", c)
		}
	}
	return pixels, nil
}
