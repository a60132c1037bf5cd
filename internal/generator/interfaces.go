package generator

import "github.com/toyz/headertool/internal/models"

// CodeGenerator defines the interface for rendering the glue header of a parsed file
type CodeGenerator interface {
	GenerateGlue(record *models.FileRecord, outputDir string) (*models.GeneratedArtifact, error)
	EmitGlue(record *models.FileRecord) ([]byte, error)
	Symbols() *SymbolRegistry
}

var _ CodeGenerator = (*Generator)(nil)
