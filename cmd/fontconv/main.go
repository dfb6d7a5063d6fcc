// Command fontconv converts glyph grid sheets into sprite strip fonts.
//
//	fontconv [-debug] <font_path> <graphics_dir> <descriptor_dir> [-debug]
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/younwookim/textscenes/internal/infrastructure/fontconv"
)

func main() {
	debugFlag := flag.Bool("debug", false, "Print per-font progress")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Usage: %s [-debug] <font_path> <graphics_dir> <descriptor_dir>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) < 3 {
		flag.Usage()
		os.Exit(2)
	}
	// flags may also follow the positional arguments
	if err := flag.CommandLine.Parse(args[3:]); err != nil {
		os.Exit(2)
	}

	progress := log.New(io.Discard, "", 0)
	if *debugFlag {
		progress = log.New(os.Stderr, "", 0)
	}

	conv := &fontconv.Converter{
		GraphicsDir:   args[1],
		DescriptorDir: args[2],
		Logger:        progress,
	}
	sum, err := conv.ConvertAll(args[0])
	if err != nil {
		log.Fatalf("Conversion failed: %v", err)
	}

	log.Printf("Converted %d fonts", len(sum.Converted))
	for _, res := range sum.Converted {
		log.Printf("  %s %s (%d glyphs) -> %s", res.Name, res.SizeName, res.Glyphs, res.DescriptorPath)
	}
	if len(sum.Failed) > 0 {
		log.Printf("Failed %d fonts", len(sum.Failed))
		for _, f := range sum.Failed {
			log.Printf("  %s: %v", f.Name, f.Err)
		}
		os.Exit(1)
	}
}
