package metadata

import (
	"fmt"

	"github.com/toyz/headertool/internal/errors"
	"github.com/toyz/headertool/internal/generator"
	"github.com/toyz/headertool/internal/models"
)

// Document keys
const (
	KeyClassSize     = "Class Size"
	KeyClassName     = "Class Name"
	KeyBaseClassName = "Base Class Name"
	KeyPropertySize  = "Property Size"
	KeyArgumentSize  = "Argument Size"
	KeyName          = "Name"
	KeyType          = "Type"
	KeyMethodSize    = "Method Size"
)

// ClassEntry, PropertyEntry, MethodEntry and ArgumentKey name the i-th
// entry of a counted list
func ClassEntry(i int) string    { return fmt.Sprintf("Class %d", i) }
func PropertyEntry(i int) string { return fmt.Sprintf("Property %d", i) }
func MethodEntry(i int) string   { return fmt.Sprintf("Method %d", i) }
func ArgumentKey(i int) string   { return fmt.Sprintf("Argument %d", i) }

// Serialize writes the catalog of record to w
func Serialize(record *models.FileRecord, w MapWriter) {
	w.Key(KeyClassSize)
	w.Value(len(record.Classes))

	for i, class := range record.Classes {
		w.BeginMap(ClassEntry(i))
		w.Key(KeyClassName)
		w.Value(class.ClassName)
		w.Key(KeyBaseClassName)
		w.Value(class.BaseClassName)

		w.Key(KeyPropertySize)
		w.Value(len(class.Properties))
		for j, property := range class.Properties {
			w.BeginMap(PropertyEntry(j))
			w.Key(KeyArgumentSize)
			w.Value(len(property.Attributes))
			for k, attribute := range property.Attributes {
				w.Key(ArgumentKey(k))
				w.Value(attribute)
			}
			w.Key(KeyName)
			w.Value(property.Name)
			w.Key(KeyType)
			w.Value(property.Type)
			w.EndMap()
		}

		w.Key(KeyMethodSize)
		w.Value(len(class.Methods))
		for j, method := range class.Methods {
			w.BeginMap(MethodEntry(j))
			w.Key(KeyName)
			w.Value(method.Name)
			w.EndMap()
		}

		w.EndMap()
	}
}

// Serializer renders metadata documents as YAML
type Serializer struct {
	indent int
}

// NewSerializer creates a serializer writing YAML with the given indentation
func NewSerializer(indent int) *Serializer {
	return &Serializer{indent: indent}
}

// Render returns the metadata document of record
func (s *Serializer) Render(record *models.FileRecord) ([]byte, error) {
	writer := NewYAMLWriter(s.indent)
	Serialize(record, writer)

	content, err := writer.Bytes()
	if err != nil {
		return nil, errors.WrapGenerateError("metadata document", err).
			WithLocation(errors.SourceLocation{File: record.SourcePath})
	}
	return content, nil
}

// GenerateMetadata renders record into an artifact placed under outputDir
func (s *Serializer) GenerateMetadata(record *models.FileRecord, outputDir string) (*models.GeneratedArtifact, error) {
	content, err := s.Render(record)
	if err != nil {
		return nil, err
	}

	return &models.GeneratedArtifact{
		Kind:       models.ArtifactMetadata,
		SourcePath: record.SourcePath,
		FilePath:   generator.MetadataPath(outputDir, record.SourcePath),
		Content:    content,
	}, nil
}
