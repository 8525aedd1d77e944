package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"quaero-icons/internal/pngenc"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run dumps the chunks of one PNG file and returns the exit code: 0 when every
// checksum matches, 1 on any problem, 2 on bad usage.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("inspectpng", flag.ContinueOnError)
	fs.SetOutput(stderr)
	rows := fs.Int("rows", 4, "Print the filter byte of the first N scanlines")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "usage: inspectpng [-rows N] <file.png>")
		return 2
	}
	path := fs.Arg(0)

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return 1
	}
	defer f.Close()

	chunks, readErr := pngenc.ReadRawChunks(f)
	if readErr != nil {
		fmt.Fprintf(stdout, "Error: %v\n", readErr)
		if len(chunks) == 0 {
			return 1
		}
	}

	bad := 0
	fmt.Fprintf(stdout, "%s: %d chunks\n", path, len(chunks))
	for i, c := range chunks {
		status := "ok"
		if !c.Valid() {
			status = fmt.Sprintf("BAD (computed %08x)", c.CRC())
			bad++
		}
		fmt.Fprintf(stdout, "  [%d] %s len=%d crc=%08x %s\n", i, c.Type, len(c.Data), c.Stored, status)
	}
	if chunks[0].Type != pngenc.TypeIHDR {
		fmt.Fprintln(stdout, "No IHDR chunk first")
		return 1
	}

	h, err := pngenc.ParseHeader(chunks[0].Data)
	if err != nil {
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "IHDR: %dx%d depth=%d colour=%d compression=%d filter=%d interlace=%d\n",
		h.Width, h.Height, h.BitDepth, h.ColorType, h.CompressionMethod, h.FilterMethod, h.InterlaceMethod)

	plain := make([]pngenc.Chunk, len(chunks))
	for i, c := range chunks {
		plain[i] = c.Chunk
	}
	raw, err := pngenc.Inflate(plain)
	if err != nil {
		fmt.Fprintf(stdout, "Inflate: %v\n", err)
		return 1
	}
	stride := int(h.Width)*h.BytesPerPixel() + 1
	fmt.Fprintf(stdout, "Scanlines: %d bytes inflated, %d expected\n", len(raw), int(h.Height)*stride)
	for y := 0; y < *rows && y < int(h.Height) && y*stride < len(raw); y++ {
		fmt.Fprintf(stdout, "  row %d filter=%d\n", y, raw[y*stride])
	}

	if bad > 0 || readErr != nil {
		return 1
	}
	return 0
}
