package fontconv

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	widthRe       = regexp.MustCompile(`Character width:\s*(\d+)`)
	heightRe      = regexp.MustCompile(`Character height:\s*(\d+)`)
	charsetRe     = regexp.MustCompile(`(?s)Character set:\s*\n(.+?)\n\n`)
	spacingDataRe = regexp.MustCompile(`(?s)Spacing data:\s*(\[\[.*?\]\])`)
	spacingPairRe = regexp.MustCompile(`\[\s*(-?\d+)\s*,\s*("(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*')\s*\]`)
	charSpacingRe = regexp.MustCompile(`Character spacing:\s*(-?\d+)`)
)

// Metrics is the content of a font's metrics text file
type Metrics struct {
	CharWidth   int
	CharHeight  int
	Charset     string
	Widths      map[rune]int // from Spacing data, may be empty
	CharSpacing int
}

// ParseMetrics reads the metrics text that accompanies a glyph grid.
// Width, height and charset are required.
func ParseMetrics(content string) (Metrics, error) {
	var m Metrics

	match := widthRe.FindStringSubmatch(content)
	if match == nil {
		return m, fmt.Errorf("missing character width")
	}
	m.CharWidth, _ = strconv.Atoi(match[1])

	match = heightRe.FindStringSubmatch(content)
	if match == nil {
		return m, fmt.Errorf("missing character height")
	}
	m.CharHeight, _ = strconv.Atoi(match[1])

	if m.CharWidth <= 0 || m.CharHeight <= 0 {
		return m, fmt.Errorf("invalid character size %dx%d", m.CharWidth, m.CharHeight)
	}

	// a charset at the end of the file may lack the blank line after it
	match = charsetRe.FindStringSubmatch(content + "\n\n")
	if match == nil {
		return m, fmt.Errorf("missing character set")
	}
	m.Charset = strings.TrimSpace(match[1])

	m.Widths = make(map[rune]int)
	if match := spacingDataRe.FindStringSubmatch(content); match != nil {
		widths, err := parseSpacingData(match[1])
		if err != nil {
			return m, fmt.Errorf("invalid spacing data: %w", err)
		}
		m.Widths = widths
	}

	if match := charSpacingRe.FindStringSubmatch(content); match != nil {
		m.CharSpacing, _ = strconv.Atoi(match[1])
	}

	return m, nil
}

// parseSpacingData reads [[width, "chars"], ...] into a per-character map
func parseSpacingData(s string) (map[rune]int, error) {
	widths := make(map[rune]int)
	for _, pair := range spacingPairRe.FindAllStringSubmatch(s, -1) {
		w, err := strconv.Atoi(pair[1])
		if err != nil {
			return nil, err
		}
		chars, err := unquote(pair[2])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pair[2], err)
		}
		for _, r := range chars {
			widths[r] = w
		}
	}
	return widths, nil
}

// unquote accepts double or single quoted string literals
func unquote(lit string) (string, error) {
	if strings.HasPrefix(lit, "'") {
		inner := lit[1 : len(lit)-1]
		inner = strings.ReplaceAll(inner, `\'`, `'`)
		inner = strings.ReplaceAll(inner, `"`, `\"`)
		lit = `"` + inner + `"`
	}
	return strconv.Unquote(lit)
}
