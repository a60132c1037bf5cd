package generator

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Output file suffixes
const (
	GlueSuffix     = ".generated.h"
	MetadataSuffix = ".gen"
)

// FileID normalises a header path into the identifier used as the macro
// prefix: every character that is not an ASCII letter or digit becomes '_'
// and letters are upper-cased
func FileID(path string) string {
	path = filepath.ToSlash(path)

	var b strings.Builder
	b.Grow(len(path))
	for i := 0; i < len(path); i++ {
		c := path[i]
		switch {
		case c >= 'a' && c <= 'z':
			b.WriteByte(c - 'a' + 'A')
		case (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9'):
			b.WriteByte(c)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// MacroName returns the body-injection macro for a class whose
// GENERATED_BODY() sits on line of the file identified by fileID
func MacroName(fileID string, line int) string {
	return fmt.Sprintf("%s_%d_GENERATED_BODY", fileID, line)
}

// FactoryName returns the exported factory of a class
func FactoryName(className string) string {
	return "Internal_Create_" + className
}

// GetterName returns the exported accessor of a property
func GetterName(className, property string) string {
	return "Internal_Get_" + className + "_" + property
}

// SetterName returns the exported mutator of a property
func SetterName(className, property string) string {
	return "Internal_Set_" + className + "_" + property
}

// InvokerName returns the exported invoker of a method
func InvokerName(className, method string) string {
	return "Internal_Call_" + className + "_" + method
}

// artifactPath places a generated file for source directly under outputDir.
// Only the file stem of the source is kept.
func artifactPath(outputDir, source, suffix string) string {
	base := filepath.Base(source)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, stem+suffix)
}

// GluePath returns where the glue header of source is written
func GluePath(outputDir, source string) string {
	return artifactPath(outputDir, source, GlueSuffix)
}

// MetadataPath returns where the metadata document of source is written
func MetadataPath(outputDir, source string) string {
	return artifactPath(outputDir, source, MetadataSuffix)
}
