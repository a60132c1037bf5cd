package parser

import (
	"io"
)

// HeaderParser defines the interface for turning one annotated header into
// a file record
type HeaderParser interface {
	ParseFile(path, relativePath string, r io.Reader) (*ParseResult, error)
	ParseSource(path, content string) (*ParseResult, error)
}

var _ HeaderParser = (*Parser)(nil)
