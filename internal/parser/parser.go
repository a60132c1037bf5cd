package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/toyz/headertool/internal/errors"
	"github.com/toyz/headertool/internal/models"
	"github.com/toyz/headertool/internal/scanner"
)

// Options controls how headers are parsed
type Options struct {
	StrictBraces bool // ignore braces inside literals and comments
	RequireBody  bool // a class without GENERATED_BODY() is fatal
}

// ParseResult is the outcome of parsing one header
type ParseResult struct {
	File     *models.FileRecord
	Warnings []*errors.BaseError
}

// Parser turns annotated headers into file records
type Parser struct {
	options Options
}

// NewParser creates a new declaration parser
func NewParser(options Options) *Parser {
	return &Parser{options: options}
}

// ParseSource parses header content held in memory
func (p *Parser) ParseSource(path, content string) (*ParseResult, error) {
	return p.ParseFile(path, filepath.ToSlash(path), strings.NewReader(content))
}

// ParseFile scans r for annotated class blocks and parses each of them. A
// block without a class name stops the scan and returns a fatal parse error;
// the caller decides whether that aborts the run.
func (p *Parser) ParseFile(path, relativePath string, r io.Reader) (*ParseResult, error) {
	result := &ParseResult{
		File: &models.FileRecord{
			SourcePath:   path,
			RelativePath: relativePath,
		},
	}

	extractor := scanner.NewClassScopeExtractor(scanner.NewBraceCounter(p.options.StrictBraces))
	scan, err := extractor.Extract(r, func(block scanner.ClassBlock) error {
		class, err := p.parseBlock(path, block)
		if err != nil {
			return err
		}
		if !class.HasBody() {
			result.Warnings = append(result.Warnings, missingBodyWarning(path, class))
		}
		result.File.Classes = append(result.File.Classes, *class)
		result.File.EnumCount += CountEnums(block.Text)
		return nil
	})
	if err != nil {
		if errors.IsFatal(err) {
			return result, err
		}
		return result, errors.WrapFileSystemError("read", path, err)
	}

	result.File.EnumCount += len(scan.EnumLines)

	if scan.Unterminated != nil {
		warning := errors.New(errors.SyntaxErrorCode,
			"class block opened by CLASS() is never closed; it is ignored").
			WithLocation(errors.SourceLocation{File: path, Line: scan.Unterminated.StartLine}).
			WithSuggestions("Check for unbalanced braces, including braces inside strings or comments (try --strict-braces)")
		result.Warnings = append(result.Warnings, warning)
	}

	return result, nil
}

// parseBlock extracts one class record from an isolated block
func (p *Parser) parseBlock(path string, block scanner.ClassBlock) (*models.ClassRecord, error) {
	header, ok := ParseClassHeader(block.Text)
	if !ok {
		return nil, errors.FatalParseError(path, block.StartLine,
			"annotated block has no parseable class name").
			WithContext("block_end", block.EndLine)
	}

	if block.DefinitionLine == 0 && p.options.RequireBody {
		return nil, errors.FatalParseError(path, block.StartLine,
			fmt.Sprintf("class '%s' has no GENERATED_BODY() marker", header.ClassName)).
			WithContext("class", header.ClassName)
	}

	return &models.ClassRecord{
		ClassName:      header.ClassName,
		BaseClassName:  header.BaseClassName,
		DefinitionLine: block.DefinitionLine,
		StartLine:      block.StartLine,
		Properties:     ParseProperties(block.Text),
		Methods:        ParseMethods(block.Text),
	}, nil
}

func missingBodyWarning(path string, class *models.ClassRecord) *errors.BaseError {
	return errors.Newf(errors.SyntaxErrorCode,
		"class '%s' has no GENERATED_BODY() marker; its macro is keyed on line 0", class.ClassName).
		WithLocation(errors.SourceLocation{File: path, Line: class.StartLine}).
		WithContext("class", class.ClassName).
		WithSuggestions("Place GENERATED_BODY() inside the class body")
}
