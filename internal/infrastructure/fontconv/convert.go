// Package fontconv converts glyph grid sheets into sprite strip fonts.
package fontconv

import (
	"encoding/json"
	"fmt"
	"image"
	_ "image/png" // glyph sheets are PNG
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/younwookim/textscenes/internal/domain/entity"
	"github.com/younwookim/textscenes/internal/infrastructure/assets"
)

// DefaultCharWidth is written for characters without spacing data
const DefaultCharWidth = 8

var trailingNumberRe = regexp.MustCompile(`_\d+$`)

// FindFontDirs returns the subdirectories of root holding both a .txt
// metrics file and a .png sheet, sorted by name.
func FindFontDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read font path: %w", err)
	}

	var dirs []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(root, e.Name())
		txt, _ := filepath.Glob(filepath.Join(dir, "*.txt"))
		png, _ := filepath.Glob(filepath.Join(dir, "*.png"))
		if len(txt) > 0 && len(png) > 0 {
			dirs = append(dirs, dir)
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

// FontName derives a font name from its directory: everything before the
// last "_v" and without a trailing "_<digits>".
func FontName(dir string) string {
	name := filepath.Base(dir)
	if i := strings.LastIndex(name, "_v"); i >= 0 {
		name = name[:i]
	}
	return trailingNumberRe.ReplaceAllString(name, "")
}

// Result lists what a conversion wrote
type Result struct {
	Name           string
	SizeName       string
	SpriteItem     string
	Glyphs         int
	BMPPath        string
	JSONPath       string
	DescriptorPath string
}

// Failure is a font that could not be converted
type Failure struct {
	Name string
	Err  error
}

// Summary is the outcome of a batch conversion
type Summary struct {
	Converted []Result
	Failed    []Failure
}

// Converter writes strips and sprite items to GraphicsDir and font
// descriptors to DescriptorDir.
type Converter struct {
	GraphicsDir   string
	DescriptorDir string
	Logger        *log.Logger // nil disables progress output
}

// ConvertAll converts every font directory under root.
// A failing font is recorded and the batch continues.
func (c *Converter) ConvertAll(root string) (Summary, error) {
	dirs, err := FindFontDirs(root)
	if err != nil {
		return Summary{}, err
	}
	c.logf("found %d font directories", len(dirs))

	var sum Summary
	for i, dir := range dirs {
		name := FontName(dir)
		c.logf("[%d/%d] %s", i+1, len(dirs), filepath.Base(dir))

		res, err := c.Convert(dir, name)
		if err != nil {
			c.logf("  error: %v", err)
			sum.Failed = append(sum.Failed, Failure{Name: name, Err: err})
			continue
		}
		sum.Converted = append(sum.Converted, res)
	}
	return sum, nil
}

// Convert converts the font in dir and writes its outputs under name.
func (c *Converter) Convert(dir, name string) (Result, error) {
	txtPath, pngPath, err := fontFiles(dir)
	if err != nil {
		return Result{}, err
	}

	content, err := os.ReadFile(txtPath)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read metrics: %w", err)
	}
	metrics, err := ParseMetrics(string(content))
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", filepath.Base(txtPath), err)
	}

	sheet, err := decodeSheet(pngPath)
	if err != nil {
		return Result{}, err
	}

	grid, err := ExtractGrid(sheet, metrics.Charset, metrics.CharWidth, metrics.CharHeight)
	if err != nil {
		return Result{}, err
	}
	if len(grid.Glyphs) == 0 {
		return Result{}, fmt.Errorf("no supported characters in %s", filepath.Base(pngPath))
	}

	w, h := ContentSize(metrics.CharWidth, metrics.CharHeight, grid.MaxContent)
	size, err := SpriteSize(w, h)
	if err != nil {
		return Result{}, err
	}
	c.logf("  %d glyphs, tile %dx%d, content %dx%d, sprite %dx%d",
		len(grid.Glyphs), metrics.CharWidth, metrics.CharHeight, w, h, size, size)

	strip, err := Quantize(BuildStrip(grid.Glyphs, size))
	if err != nil {
		return Result{}, err
	}

	if err := os.MkdirAll(c.GraphicsDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("failed to create graphics dir: %w", err)
	}
	if err := os.MkdirAll(c.DescriptorDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("failed to create descriptor dir: %w", err)
	}

	sizeName := fmt.Sprintf("%dx%d", size, size)
	item := strings.ReplaceAll(name, "_", "") + sizeName
	res := Result{
		Name:           name,
		SizeName:       sizeName,
		SpriteItem:     item,
		Glyphs:         len(grid.Glyphs),
		BMPPath:        filepath.Join(c.GraphicsDir, item+".bmp"),
		JSONPath:       filepath.Join(c.GraphicsDir, item+".json"),
		DescriptorPath: filepath.Join(c.DescriptorDir, fmt.Sprintf("%s_%s_font.json", name, sizeName)),
	}

	sprite := assets.SpriteItem{Type: "sprite", Height: size, Width: size}
	if err := writeFile(res.BMPPath, func(w io.Writer) error { return bmp.Encode(w, strip) }); err != nil {
		return Result{}, err
	}
	if err := writeFile(res.JSONPath, func(w io.Writer) error { return encodeJSON(w, sprite) }); err != nil {
		return Result{}, err
	}

	rel, err := filepath.Rel(c.DescriptorDir, res.BMPPath)
	if err != nil {
		rel = res.BMPPath
	}
	desc := assets.StripDescriptor{
		Name:    name,
		Size:    sizeName,
		Image:   filepath.ToSlash(rel),
		Sprite:  sprite,
		Charset: grid.Charset(),
		Spacing: metrics.CharSpacing,
		Widths:  CharWidths(grid.Charset(), metrics.Widths),
	}
	if err := writeFile(res.DescriptorPath, desc.Encode); err != nil {
		return Result{}, err
	}

	c.logf("  wrote %s, %s, %s", res.BMPPath, res.JSONPath, res.DescriptorPath)
	return res, nil
}

// CharWidths lists the advance of ASCII 32..126 followed by the accented
// characters. Characters missing from charset or from widths get DefaultCharWidth.
func CharWidths(charset string, widths map[rune]int) []assets.CharWidth {
	chars := make([]rune, 0, 95+16)
	for r := rune(32); r < 127; r++ {
		chars = append(chars, r)
	}
	for _, r := range entity.DefaultCharset {
		if r >= 128 {
			chars = append(chars, r)
		}
	}

	out := make([]assets.CharWidth, 0, len(chars))
	for _, r := range chars {
		w, ok := widths[r]
		if !ok || !strings.ContainsRune(charset, r) {
			w = DefaultCharWidth
		}
		out = append(out, assets.CharWidth{Char: string(r), Width: w})
	}
	return out
}

func fontFiles(dir string) (string, string, error) {
	txt, _ := filepath.Glob(filepath.Join(dir, "*.txt"))
	png, _ := filepath.Glob(filepath.Join(dir, "*.png"))
	if len(txt) == 0 || len(png) == 0 {
		return "", "", fmt.Errorf("could not find .txt or .png file in %s", dir)
	}
	sort.Strings(txt)
	sort.Strings(png)
	return txt[0], png[0], nil
}

func decodeSheet(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sheet: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

func writeFile(path string, encode func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := encode(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(v)
}

func (c *Converter) logf(format string, args ...any) {
	if c.Logger != nil {
		c.Logger.Printf(format, args...)
	}
}
