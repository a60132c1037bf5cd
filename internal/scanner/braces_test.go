package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextualBraceCounter(t *testing.T) {
	counter := TextualBraceCounter{}

	assert.Equal(t, []rune{'{', '}', '{'}, counter.Braces(`class A { }; // {`))
	assert.Empty(t, counter.Braces("int x;"))
}

func TestLexicalBraceCounter(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []rune
	}{
		{name: "plain braces", line: "class A { };", expected: []rune{'{', '}'}},
		{name: "string literal", line: `const char* s = "{}"; {`, expected: []rune{'{'}},
		{name: "escaped quote", line: `const char* s = "\"{"; }`, expected: []rune{'}'}},
		{name: "char literal", line: `char c = '{'; }`, expected: []rune{'}'}},
		{name: "line comment", line: "{ // }", expected: []rune{'{'}},
		{name: "closed block comment", line: "/* { */ }", expected: []rune{'}'}},
		{name: "division", line: "int x = a / b; {", expected: []rune{'{'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := NewLexicalBraceCounter()
			assert.Equal(t, tt.expected, counter.Braces(tt.line))
		})
	}
}

func TestLexicalBraceCounter_MultiLineComment(t *testing.T) {
	counter := NewLexicalBraceCounter()

	assert.Equal(t, []rune{'{'}, counter.Braces("{ /* start {"))
	assert.Empty(t, counter.Braces("still } inside"))
	assert.Equal(t, []rune{'}'}, counter.Braces("end */ }"))

	counter.Braces("/* open")
	counter.Reset()
	assert.Equal(t, []rune{'}'}, counter.Braces("}"))
}
