package annotations

import "regexp"

// Marker tokens as they appear in annotated headers
const (
	ClassMarker    = "CLASS"
	BodyMarker     = "GENERATED_BODY"
	PropertyMarker = "PROPERTY"
	FunctionMarker = "FUNCTION"
	EnumMarker     = "ENUM"
)

// Line-level marker detectors. Each marker must be a whole word followed by
// an empty argument list.
var (
	classLineRegex = regexp.MustCompile(`\b` + ClassMarker + `\(\)`)
	bodyLineRegex  = regexp.MustCompile(`\b` + BodyMarker + `\(\)`)
	enumLineRegex  = regexp.MustCompile(`\b` + EnumMarker + `\(\)`)
)

// IsClassMarkerLine reports whether line opens an annotated class region
func IsClassMarkerLine(line string) bool {
	return classLineRegex.MatchString(line)
}

// IsBodyMarkerLine reports whether line holds the body-injection marker
func IsBodyMarkerLine(line string) bool {
	return bodyLineRegex.MatchString(line)
}

// IsEnumMarkerLine reports whether line holds an enum marker
func IsEnumMarkerLine(line string) bool {
	return enumLineRegex.MatchString(line)
}
