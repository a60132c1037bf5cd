package parser

import (
	"strings"

	"github.com/toyz/headertool/internal/annotations"
	"github.com/toyz/headertool/internal/models"
)

// ClassHeader is the name and base extracted from a class block
type ClassHeader struct {
	ClassName     string
	BaseClassName string
}

// ParseClassHeader matches the first class declaration head in block. When
// no base clause is present the base name equals the class name. ok is false
// when no class name can be found.
func ParseClassHeader(block string) (header ClassHeader, ok bool) {
	match := annotations.ClassHeaderRegex.FindStringSubmatch(block)
	if match == nil || match[1] == "" {
		return ClassHeader{}, false
	}

	header.ClassName = match[1]
	header.BaseClassName = match[2]
	if header.BaseClassName == "" {
		header.BaseClassName = header.ClassName
	}
	return header, true
}

// ParseProperties returns every PROPERTY-annotated field of block in source
// order. Occurrences inside comments are dropped.
func ParseProperties(block string) []models.PropertyRecord {
	filter := newCommentFilter(block)

	var properties []models.PropertyRecord
	for _, loc := range annotations.PropertyRegex.FindAllStringSubmatchIndex(block, -1) {
		if filter.commented(loc[0]) {
			continue
		}

		// type text as declared, pointer marker and inner spacing included
		fieldType := strings.TrimRight(block[loc[4]:loc[7]], " \t\r\n")

		properties = append(properties, models.PropertyRecord{
			Type:       fieldType,
			Name:       block[loc[8]:loc[9]],
			Attributes: SplitAttributes(block[loc[2]:loc[3]]),
		})
	}
	return properties
}

// ParseMethods returns every FUNCTION-annotated zero-argument void method of
// block in source order. Occurrences inside comments are dropped.
func ParseMethods(block string) []models.MethodRecord {
	filter := newCommentFilter(block)

	var methods []models.MethodRecord
	for _, loc := range annotations.FunctionRegex.FindAllStringSubmatchIndex(block, -1) {
		if filter.commented(loc[0]) {
			continue
		}
		methods = append(methods, models.MethodRecord{Name: block[loc[2]:loc[3]]})
	}
	return methods
}

// CountEnums counts the ENUM-annotated declarations of block outside
// comments. Enums are recognised only; nothing is extracted from them.
func CountEnums(block string) int {
	filter := newCommentFilter(block)

	count := 0
	for _, loc := range annotations.EnumRegex.FindAllStringIndex(block, -1) {
		if !filter.commented(loc[0]) {
			count++
		}
	}
	return count
}

// SplitAttributes splits a PROPERTY argument list on commas and trims each
// token. An empty list yields no attributes and a trailing comma does not
// produce an empty attribute.
func SplitAttributes(list string) []string {
	if list == "" {
		return []string{}
	}

	tokens := strings.Split(list, ",")
	if tokens[len(tokens)-1] == "" {
		tokens = tokens[:len(tokens)-1]
	}

	attributes := make([]string, 0, len(tokens))
	for _, token := range tokens {
		attributes = append(attributes, strings.TrimSpace(token))
	}
	return attributes
}

// commentFilter decides whether an offset in a block sits inside a comment
type commentFilter struct {
	block string
	spans [][]int
}

func newCommentFilter(block string) commentFilter {
	return commentFilter{
		block: block,
		spans: annotations.BlockCommentRegex.FindAllStringIndex(block, -1),
	}
}

// commented reports whether offset falls inside a /* */ span, or follows a
// // token on its own physical line
func (f commentFilter) commented(offset int) bool {
	for _, span := range f.spans {
		if offset >= span[0] && offset < span[1] {
			return true
		}
	}

	lineStart := strings.LastIndexByte(f.block[:offset], '\n') + 1
	return strings.Contains(f.block[lineStart:offset], annotations.LineCommentToken)
}
