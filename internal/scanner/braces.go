package scanner

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// BraceCounter yields the structural brace characters of one class line in
// source order. Implementations may carry state across lines of one file.
type BraceCounter interface {
	Braces(line string) []rune
	Reset()
}

// NewBraceCounter returns the lexically aware counter when strict is set and
// the textual counter otherwise
func NewBraceCounter(strict bool) BraceCounter {
	if strict {
		return NewLexicalBraceCounter()
	}
	return TextualBraceCounter{}
}

// TextualBraceCounter counts every '{' and '}' on the line. Braces inside
// string or character literals and comments are counted too, so such
// occurrences can desynchronise the depth.
type TextualBraceCounter struct{}

// Braces returns every brace character of line
func (TextualBraceCounter) Braces(line string) []rune {
	var braces []rune
	for _, r := range line {
		if r == '{' || r == '}' {
			braces = append(braces, r)
		}
	}
	return braces
}

// Reset is a no-op; the textual counter is stateless
func (TextualBraceCounter) Reset() {}

var braceLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "LineComment", Pattern: `//.*`},
	{Name: "BlockComment", Pattern: `/\*([^*]|\*+[^*/])*\*+/`},
	{Name: "OpenComment", Pattern: `/\*.*`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Char", Pattern: `'(\\.|[^'\\])*'`},
	{Name: "Brace", Pattern: `[{}]`},
	{Name: "Text", Pattern: `[^{}"'/]+`},
	{Name: "Stray", Pattern: `.`},
})

// LexicalBraceCounter tokenises each line and only reports braces that sit
// outside string literals, character literals and comments. An unterminated
// /* comment carries over to the following lines.
type LexicalBraceCounter struct {
	braceType       lexer.TokenType
	openCommentType lexer.TokenType
	inBlockComment  bool
}

// NewLexicalBraceCounter creates a counter backed by the participle lexer
func NewLexicalBraceCounter() *LexicalBraceCounter {
	symbols := braceLexer.Symbols()
	return &LexicalBraceCounter{
		braceType:       symbols["Brace"],
		openCommentType: symbols["OpenComment"],
	}
}

// Braces returns the structural braces of line
func (c *LexicalBraceCounter) Braces(line string) []rune {
	if c.inBlockComment {
		end := strings.Index(line, "*/")
		if end < 0 {
			return nil
		}
		line = line[end+2:]
		c.inBlockComment = false
	}

	lex, err := braceLexer.LexString("", line)
	if err != nil {
		return TextualBraceCounter{}.Braces(line)
	}
	tokens, err := lexer.ConsumeAll(lex)
	if err != nil {
		return TextualBraceCounter{}.Braces(line)
	}

	var braces []rune
	for _, token := range tokens {
		switch token.Type {
		case c.braceType:
			braces = append(braces, rune(token.Value[0]))
		case c.openCommentType:
			c.inBlockComment = true
		}
	}
	return braces
}

// Reset clears the carried block-comment state
func (c *LexicalBraceCounter) Reset() {
	c.inBlockComment = false
}
