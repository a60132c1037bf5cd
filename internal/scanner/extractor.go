// Package scanner isolates annotated class declarations from a header.
//
// The extractor is a two-state machine driven one line at a time:
//
//	state    event                       action                              next
//	Outside  CLASS() on line             start block at line                 InClass
//	Outside  ENUM() on line              record enum marker                  Outside
//	Outside  any other line              ignore                              Outside
//	InClass  every line                  append line to block                InClass
//	InClass  GENERATED_BODY() (first)    record definition line              InClass
//	InClass  '{'                         depth++, mark opened                InClass
//	InClass  '}' before any '{'          ignore                              InClass
//	InClass  '}'                         depth--                             InClass
//	InClass  depth == 0 after opened     hand block to the handler, reset    Outside
//
// The line carrying CLASS() is itself processed as an InClass line.
package scanner

import (
	"bufio"
	"io"
	"strings"

	"github.com/toyz/headertool/internal/annotations"
)

// State is the extractor's scanning state
type State int

const (
	Outside State = iota
	InClass
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case Outside:
		return "Outside"
	case InClass:
		return "InClass"
	default:
		return "unknown"
	}
}

// ClassBlock is the complete text of one annotated class, from the line
// holding CLASS() to the line closing the class body
type ClassBlock struct {
	Text           string
	StartLine      int
	EndLine        int
	DefinitionLine int // first GENERATED_BODY() line inside the block, 0 if none
}

// BlockHandler receives each block as soon as its body is closed. Returning
// an error stops extraction.
type BlockHandler func(block ClassBlock) error

// Result describes what a full pass over one file found besides the blocks
// already handed to the handler
type Result struct {
	Blocks       int         // number of blocks handed off
	EnumLines    []int       // lines holding ENUM() outside any class block
	Unterminated *ClassBlock // block still open at end of input
	Lines        int         // total lines read
}

// maxLineSize bounds a single header line
const maxLineSize = 16 * 1024 * 1024

// ClassScopeExtractor splits header text into annotated class blocks
type ClassScopeExtractor struct {
	counter BraceCounter

	state  State
	depth  int
	opened bool
	buffer strings.Builder
	block  ClassBlock
}

// NewClassScopeExtractor creates an extractor using counter for brace events
func NewClassScopeExtractor(counter BraceCounter) *ClassScopeExtractor {
	if counter == nil {
		counter = TextualBraceCounter{}
	}
	return &ClassScopeExtractor{counter: counter}
}

// State returns the current scanning state
func (e *ClassScopeExtractor) State() State {
	return e.state
}

// Extract reads r line by line and calls handle for every closed class block
func (e *ClassScopeExtractor) Extract(r io.Reader, handle BlockHandler) (*Result, error) {
	e.reset()

	result := &Result{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSuffix(scanner.Text(), "\r")

		block, closed := e.step(line, lineNumber, result)
		if !closed {
			continue
		}
		result.Blocks++
		if handle != nil {
			if err := handle(block); err != nil {
				result.Lines = lineNumber
				return result, err
			}
		}
	}
	result.Lines = lineNumber

	if err := scanner.Err(); err != nil {
		return result, err
	}

	if e.state == InClass {
		pending := e.block
		pending.Text = e.buffer.String()
		pending.EndLine = lineNumber
		result.Unterminated = &pending
		e.reset()
	}

	return result, nil
}

// ExtractString is Extract over an in-memory header
func (e *ClassScopeExtractor) ExtractString(content string, handle BlockHandler) (*Result, error) {
	return e.Extract(strings.NewReader(content), handle)
}

// step feeds one line to the state machine and reports a closed block
func (e *ClassScopeExtractor) step(line string, lineNumber int, result *Result) (ClassBlock, bool) {
	if e.state == Outside {
		if !annotations.IsClassMarkerLine(line) {
			if annotations.IsEnumMarkerLine(line) {
				result.EnumLines = append(result.EnumLines, lineNumber)
			}
			return ClassBlock{}, false
		}
		e.state = InClass
		e.block = ClassBlock{StartLine: lineNumber}
	}

	e.buffer.WriteString(line)
	e.buffer.WriteByte('\n')

	if e.block.DefinitionLine == 0 && annotations.IsBodyMarkerLine(line) {
		e.block.DefinitionLine = lineNumber
	}

	for _, brace := range e.counter.Braces(line) {
		switch {
		case brace == '{':
			e.depth++
			e.opened = true
		case !e.opened:
			// closes an enclosing scope, not this class
			continue
		default:
			e.depth--
		}

		if e.opened && e.depth == 0 {
			block := e.block
			block.Text = e.buffer.String()
			block.EndLine = lineNumber
			e.reset()
			return block, true
		}
	}

	return ClassBlock{}, false
}

// reset returns the machine to Outside with an empty buffer and a fresh
// brace counter
func (e *ClassScopeExtractor) reset() {
	e.counter.Reset()
	e.state = Outside
	e.depth = 0
	e.opened = false
	e.buffer.Reset()
	e.block = ClassBlock{}
}
