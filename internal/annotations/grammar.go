package annotations

import "regexp"

// Declaration patterns applied to one isolated class block.
//
// ClassHeaderRegex captures the class name and, when present, the base
// clause: `class Name [: public [ns::]*Base[<Arg>]] {`.
var ClassHeaderRegex = regexp.MustCompile(
	`\bclass\s+(\w+)\s*(?::\s*(?:public\s+)?((?:\w+::)*\w+(?:<[\w:, ]*>)?))?\s*\{`)

// PropertyRegex captures the attribute list, the declared type, an optional
// pointer marker and the field name of `PROPERTY(args)[;] [class|struct] Type name [= expr];`.
// The type allows namespace qualification and one nested level of template
// arguments.
var PropertyRegex = regexp.MustCompile(
	PropertyMarker + `\(([^)]*)\);?\s*(?:class\s+|struct\s+)?` +
		`((?:\w+::)*\w+(?:\s*<[^;<>]*(?:<[^;<>]*>)*[^;<>]*>)?)` +
		`(\s*\*\s*|\s+)(\w+)\s*(?:=\s*[^;]*)?;`)

// FunctionRegex captures the name of a zero-argument void method:
// `FUNCTION()[;] void name ( )`.
var FunctionRegex = regexp.MustCompile(
	FunctionMarker + `\(\);?\s*void\s+(\w+)\s*\(\s*\)`)

// EnumRegex matches an enum marker followed by its declaration head. Enum
// reflection is not generated; the pattern only lets the parser count them.
var EnumRegex = regexp.MustCompile(
	EnumMarker + `\(\);?\s*enum\s+(?:class\s+)?(\w+)`)

// BlockCommentRegex matches a /* ... */ span, including spans crossing lines.
var BlockCommentRegex = regexp.MustCompile(`/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`)

// LineCommentToken starts a comment running to the end of the physical line.
const LineCommentToken = "//"
