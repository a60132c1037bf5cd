package generator

import (
	"github.com/toyz/headertool/internal/errors"
	"github.com/toyz/headertool/internal/models"
	"github.com/toyz/headertool/internal/templates"
)

// Generator renders the glue header of parsed files
type Generator struct {
	templates *templates.TemplateRegistry
	symbols   *SymbolRegistry
}

// NewGenerator creates a new code generator instance
func NewGenerator() *Generator {
	return &Generator{
		templates: templates.DefaultTemplateRegistry,
		symbols:   NewSymbolRegistry(),
	}
}

// Symbols returns the run-wide symbol registry
func (g *Generator) Symbols() *SymbolRegistry {
	return g.symbols
}

// GenerateGlue renders the glue header of record into an artifact placed
// under outputDir
func (g *Generator) GenerateGlue(record *models.FileRecord, outputDir string) (*models.GeneratedArtifact, error) {
	content, err := g.EmitGlue(record)
	if err != nil {
		return nil, err
	}

	return &models.GeneratedArtifact{
		Kind:       models.ArtifactGlue,
		SourcePath: record.SourcePath,
		FilePath:   GluePath(outputDir, record.SourcePath),
		Content:    content,
	}, nil
}

// EmitGlue renders the glue header text of record. Classes are emitted in
// source order: one body macro each, then the shared END_FILE() export block.
func (g *Generator) EmitGlue(record *models.FileRecord) ([]byte, error) {
	fileID := FileID(record.RelativePath)

	if err := checkMacros(record, fileID); err != nil {
		return nil, err
	}

	data := templates.GlueHeaderData{
		SourcePath: record.RelativePath,
		FileID:     fileID,
		Classes:    make([]templates.ClassData, 0, len(record.Classes)),
	}
	for _, class := range record.Classes {
		data.Classes = append(data.Classes, classData(fileID, class))
	}

	content, err := g.templates.Execute(templates.GlueHeaderTemplate, data)
	if err != nil {
		return nil, errors.WrapTemplateError(templates.GlueHeaderTemplate, "execute", err).
			WithLocation(errors.SourceLocation{File: record.SourcePath})
	}

	return []byte(content), nil
}

func classData(fileID string, class models.ClassRecord) templates.ClassData {
	data := templates.ClassData{
		ClassName:     class.ClassName,
		BaseClassName: class.BaseClassName,
		IsRoot:        class.IsRoot(),
		MacroName:     MacroName(fileID, class.DefinitionLine),
		Factory:       FactoryName(class.ClassName),
	}
	if data.BaseClassName == "" {
		data.BaseClassName = class.ClassName
	}

	for _, property := range class.Properties {
		data.Properties = append(data.Properties, templates.PropertyData{
			Name:   property.Name,
			Getter: GetterName(class.ClassName, property.Name),
			Setter: SetterName(class.ClassName, property.Name),
		})
	}
	for _, method := range class.Methods {
		data.Methods = append(data.Methods, templates.MethodData{
			Name:    method.Name,
			Invoker: InvokerName(class.ClassName, method.Name),
		})
	}
	return data
}
