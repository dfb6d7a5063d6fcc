// Package script parses .scn scene scripts, a compact alternative to the
// JSON scene lists:
//
//	scenes demo
//
//	scene happy font happy align center {
//	    text 0 -48 "Happy"
//	    text 0 48 "PRESS START"
//	}
package script

import (
	"fmt"
	"io"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	scriptLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "Comment", Pattern: `(?:#|//)[^\n]*`},
		{Name: "Number", Pattern: `-?\d+(?:\.\d+)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Punct", Pattern: `[{}]`},
	})

	scriptParser = participle.MustBuild[Script](
		participle.Lexer(scriptLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.Unquote("String"),
	)
)

// Script is the root of a .scn file.
type Script struct {
	ID     string   `parser:"Newline* ( 'scenes' @Ident Newline+ )?"`
	Scenes []*Scene `parser:"( @@ Newline* )*"`
}

// Scene is one screen: a font, an alignment and its text blocks.
type Scene struct {
	Pos   lexer.Position
	Name  string         `parser:"'scene' @Ident"`
	Font  string         `parser:"'font' @Ident"`
	Align string         `parser:"( 'align' @( 'left' | 'center' | 'centre' | 'right' ) )?"`
	Texts []*Text        `parser:"'{' Newline* ( @@ Newline* )* '}'"`
}

// Text anchors one (possibly multi-line) string. Escapes such as \n are decoded.
type Text struct {
	X     float64 `parser:"'text' @Number"`
	Y     float64 `parser:"@Number"`
	Value string  `parser:"@String"`
}

// Parse reads a scene script. filename is only used in error positions.
func Parse(filename string, r io.Reader) (*Script, error) {
	s, err := scriptParser.Parse(filename, r)
	if err != nil {
		return nil, err
	}
	return s, s.validate()
}

// ParseString parses a scene script held in memory.
func ParseString(filename, input string) (*Script, error) {
	s, err := scriptParser.ParseString(filename, input)
	if err != nil {
		return nil, err
	}
	return s, s.validate()
}

func (s *Script) validate() error {
	if len(s.Scenes) == 0 {
		return fmt.Errorf("script declares no scenes")
	}
	seen := make(map[string]lexer.Position, len(s.Scenes))
	for _, sc := range s.Scenes {
		if prev, dup := seen[sc.Name]; dup {
			return fmt.Errorf("%s: scene %q already declared at %s", sc.Pos, sc.Name, prev)
		}
		seen[sc.Name] = sc.Pos
	}
	return nil
}
