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

// Bitfont compresses bitmap fonts for embedding in memory-constrained
// devices.
//
// Usage:
//
//	bitfont import_ttf <ttffile> <size> [bw]
//	bitfont import_bdf <bdffile>
//	bitfont export <datfile> <basename>
//	bitfont filter <datfile> <range> ...
//	bitfont size <datfile>
//	bitfont optimize <datfile> [iterations]
//	bitfont show_encoded <datfile>
//	bitfont show_glyph <datfile> <index|largest>
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"
	"golang.org/x/text/unicode/runenames"

	"seehuhn.de/go/bitfont"
	"seehuhn.de/go/bitfont/bdf"
	"seehuhn.de/go/bitfont/cgen"
	"seehuhn.de/go/bitfont/encode"
	"seehuhn.de/go/bitfont/optimize"
	"seehuhn.de/go/bitfont/raster"
)

type status int

const (
	statusOK      status = 0 // all good
	statusInvalid status = 1 // invalid command or args
	statusError   status = 2 // error when executing command
)

var commands = map[string]func(args []string) status{
	"import_ttf":   cmdImportTTF,
	"import_bdf":   cmdImportBDF,
	"export":       cmdExport,
	"filter":       cmdFilter,
	"size":         cmdSize,
	"optimize":     cmdOptimize,
	"show_encoded": cmdShowEncoded,
	"show_glyph":   cmdShowGlyph,
}

const usage = `Usage: bitfont <command> [options] ...
   import_ttf <ttffile> <size> [bw]   Import a .ttf font into a data file.
   import_bdf <bdffile>               Import a .bdf font into a data file.
   export <datfile> <basename>        Export to .c and .h source code.
   filter <datfile> <range> ...       Remove everything except specified characters.
   size <datfile>                     Check the encoded size of the data file.
   optimize <datfile> [n]             Perform optimization passes on the data file.
   show_encoded <datfile>             Show the encoded data for debugging.
   show_glyph <datfile> <index>       Show the glyph at index.
`

func main() {
	args := os.Args[1:]

	st := statusInvalid
	if len(args) >= 1 {
		if cmd, ok := commands[args[0]]; ok {
			st = cmd(args)
		}
	}
	if st == statusInvalid {
		fmt.Print(usage)
	}
	os.Exit(int(st))
}

func loadDat(fname string) (*bitfont.Font, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return bitfont.Read(fd)
}

func saveDat(fname string, f *bitfont.Font) error {
	fd, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := f.Write(fd); err != nil {
		fd.Close()
		return err
	}
	return fd.Close()
}

func fail(err error) status {
	fmt.Fprintln(os.Stderr, err)
	return statusError
}

func stripExtension(fname string) string {
	return strings.TrimSuffix(fname, filepath.Ext(fname))
}

func cmdImportTTF(args []string) status {
	if len(args) != 3 && len(args) != 4 {
		return statusInvalid
	}
	src := args[1]
	size, err := strconv.Atoi(args[2])
	if err != nil || size <= 0 {
		return statusInvalid
	}
	bw := len(args) == 4 && args[3] == "bw"

	dest := stripExtension(src) + strconv.Itoa(size)
	if bw {
		dest += "bw"
	}
	dest += ".dat"
	fmt.Println("Importing", src, "to", dest)

	data, err := os.ReadFile(src)
	if err != nil {
		return fail(err)
	}
	f, err := raster.FromOpenType(data, nil, &raster.Options{
		Size: float64(size),
		BW:   bw,
	})
	if err != nil {
		return fail(err)
	}
	encode.Seed(f)

	if err := saveDat(dest, f); err != nil {
		return fail(err)
	}
	fmt.Println("Done:", f.NumGlyphs(), "unique glyphs.")
	return statusOK
}

func cmdImportBDF(args []string) status {
	if len(args) != 2 {
		return statusInvalid
	}
	src := args[1]
	dest := stripExtension(src) + ".dat"
	fmt.Println("Importing", src, "to", dest)

	fd, err := os.Open(src)
	if err != nil {
		return fail(err)
	}
	f, err := bdf.Read(fd)
	fd.Close()
	if err != nil {
		return fail(err)
	}
	encode.Seed(f)

	if err := saveDat(dest, f); err != nil {
		return fail(err)
	}
	fmt.Println("Done:", f.NumGlyphs(), "unique glyphs.")
	return statusOK
}

func cmdExport(args []string) status {
	if len(args) != 3 {
		return statusInvalid
	}
	f, err := loadDat(args[1])
	if err != nil {
		return fail(err)
	}
	base := args[2]

	header, err := os.Create(base + ".h")
	if err != nil {
		return fail(err)
	}
	if err := cgen.WriteHeader(header, filepath.Base(base), f); err != nil {
		header.Close()
		return fail(err)
	}
	if err := header.Close(); err != nil {
		return fail(err)
	}
	fmt.Println("Wrote " + base + ".h")

	source, err := os.Create(base + ".c")
	if err != nil {
		return fail(err)
	}
	if err := cgen.WriteSource(source, filepath.Base(base), f); err != nil {
		source.Close()
		return fail(err)
	}
	if err := source.Close(); err != nil {
		return fail(err)
	}
	fmt.Println("Wrote " + base + ".c")
	return statusOK
}

func cmdFilter(args []string) status {
	if len(args) < 3 {
		return statusInvalid
	}

	allowed := make(map[rune]bool)
	for _, s := range args[2:] {
		lo, hi, ok := strings.Cut(s, "-")
		if !ok {
			hi = lo
		}
		first, err1 := strconv.ParseInt(lo, 0, 32)
		last, err2 := strconv.ParseInt(hi, 0, 32)
		if err1 != nil || err2 != nil || first > last {
			return statusInvalid
		}
		for c := first; c <= last; c++ {
			allowed[rune(c)] = true
		}
	}

	f, err := loadDat(args[1])
	if err != nil {
		return fail(err)
	}
	fmt.Println("Font originally had", f.NumGlyphs(), "glyphs.")

	f.Filter(allowed)
	fmt.Println("After filtering,", f.NumGlyphs(), "glyphs remain.")

	if err := saveDat(args[1], f); err != nil {
		return fail(err)
	}
	return statusOK
}

func cmdSize(args []string) status {
	if len(args) != 2 {
		return statusInvalid
	}
	f, err := loadDat(args[1])
	if err != nil {
		return fail(err)
	}
	size, err := encode.Size(f)
	if err != nil {
		return fail(err)
	}

	fmt.Println("Glyph count:       ", f.NumGlyphs())
	fmt.Printf("Glyph bbox:         %dx%d pixels\n", f.Info.MaxWidth, f.Info.MaxHeight)
	fmt.Println("Uncompressed size: ",
		f.NumGlyphs()*f.Info.MaxWidth*f.Info.MaxHeight/2, "bytes")
	fmt.Println("Compressed size:   ", size, "bytes")
	fmt.Println("Bytes per glyph:   ", size/f.NumGlyphs())
	return statusOK
}

func cmdOptimize(args []string) status {
	if len(args) != 2 && len(args) != 3 {
		return statusInvalid
	}
	src := args[1]
	f, err := loadDat(src)
	if err != nil {
		return fail(err)
	}

	oldSize, err := encode.Size(f)
	if err != nil {
		return fail(err)
	}
	fmt.Println("Original size is", oldSize, "bytes")

	limit := 100
	if len(args) == 3 {
		limit, err = strconv.Atoi(args[2])
		if err != nil {
			return statusInvalid
		}
	}
	if limit > 0 {
		fmt.Println("Limit is", limit, "iterations")
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println("Press ctrl-C at any time to stop.")
		fmt.Println("Results are saved automatically after each iteration.")
	}

	start := time.Now()
	for i := 0; limit <= 0 || i < limit; i++ {
		if err := optimize.Optimize(f); err != nil {
			return fail(err)
		}
		newSize, err := encode.Size(f)
		if err != nil {
			return fail(err)
		}

		elapsed := time.Since(start).Seconds() + 1
		bytesPerMin := float64(oldSize-newSize) * 60 / elapsed
		fmt.Printf("iteration %d, size %d bytes, speed %.0f B/min\n",
			i+1, newSize, bytesPerMin)

		if err := saveDat(src, f); err != nil {
			return fail(err)
		}
	}
	return statusOK
}

func cmdShowEncoded(args []string) status {
	if len(args) != 2 {
		return statusInvalid
	}
	f, err := loadDat(args[1])
	if err != nil {
		return fail(err)
	}
	e, err := encode.Encode(f)
	if err != nil {
		return fail(err)
	}

	for i, tt := range e.Dict {
		kind := "RLE"
		if f.Dict[i].Ref {
			kind = "Ref"
		}
		fmt.Printf("Dict %s %d: %s\n", kind, int(encode.DictBase)+i, hexTokens(tt))
	}
	for i, tt := range e.Glyphs {
		fmt.Printf("Glyph %d: %s\n", i, hexTokens(tt))
	}
	return statusOK
}

func hexTokens(tt []encode.Token) string {
	var data []byte
	for _, t := range tt {
		data = encode.AppendToken(data, t)
	}
	parts := make([]string, len(data))
	for i, v := range data {
		parts[i] = fmt.Sprintf("%02x", v)
	}
	return strings.Join(parts, " ")
}

func cmdShowGlyph(args []string) status {
	if len(args) != 3 {
		return statusInvalid
	}
	f, err := loadDat(args[1])
	if err != nil {
		return fail(err)
	}

	var index int
	if args[2] == "largest" {
		e, err := encode.Encode(f)
		if err != nil {
			return fail(err)
		}
		maxLen := -1
		for i, tt := range e.Glyphs {
			var data []byte
			for _, t := range tt {
				data = encode.AppendToken(data, t)
			}
			if len(data) > maxLen {
				maxLen = len(data)
				index = i
			}
		}
		if maxLen < 0 {
			return fail(bitfont.ErrNoGlyphs)
		}
		fmt.Println("Index", index, ", length", maxLen)
	} else {
		index64, err := strconv.ParseInt(args[2], 0, 32)
		if err != nil {
			return statusInvalid
		}
		index = int(index64)
	}

	if index < 0 || index >= f.NumGlyphs() {
		fmt.Fprintln(os.Stderr, "No such glyph", index)
		return statusError
	}

	for _, r := range f.Glyph(index).Runes {
		fmt.Printf("U+%04X %s\n", r, runenames.Name(r))
	}
	fmt.Print(f.GlyphText(index))
	return statusOK
}
