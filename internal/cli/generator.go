package cli

import (
	"os"
	"time"

	"github.com/toyz/headertool/internal/errors"
	"github.com/toyz/headertool/internal/generator"
	"github.com/toyz/headertool/internal/metadata"
	"github.com/toyz/headertool/internal/models"
	"github.com/toyz/headertool/internal/parser"
	"github.com/toyz/headertool/internal/utils"
)

// Generator coordinates the generation process: scan, staleness check,
// parse, then emit both artifacts for every header
type Generator struct {
	scanner       *DirectoryScanner
	codeGenerator generator.CodeGenerator
	reporter      *DiagnosticReporter
	diagnostics   *utils.DiagnosticSystem
	summary       models.GenerationSummary
}

// NewGenerator creates a new CLI generator with default diagnostics
func NewGenerator(verbose bool) *Generator {
	level := utils.DiagnosticInfo
	if verbose {
		level = utils.DiagnosticVerbose
	}
	return NewGeneratorWithDiagnostics(verbose, utils.NewDiagnosticSystem(level))
}

// NewGeneratorWithDiagnostics creates a new CLI generator reporting through diagnostics
func NewGeneratorWithDiagnostics(verbose bool, diagnostics *utils.DiagnosticSystem) *Generator {
	return &Generator{
		scanner:       NewDirectoryScanner(),
		codeGenerator: generator.NewGenerator(),
		reporter:      NewDiagnosticReporter(verbose, diagnostics),
		diagnostics:   diagnostics,
	}
}

// GetSummary returns the summary of the last run
func (g *Generator) GetSummary() models.GenerationSummary {
	return g.summary
}

// Reporter returns the reporter used for errors and warnings
func (g *Generator) Reporter() *DiagnosticReporter {
	return g.reporter
}

// Run executes the complete generation process. A fatal parse error aborts
// the run unless config.KeepGoing is set. Any other per-header failure
// (unreadable file, macro collision, failed write) is reported and skipped.
func (g *Generator) Run(config Config) error {
	startTime := time.Now()
	config = config.WithDefaults()
	g.summary = models.GenerationSummary{GeneratedFiles: make([]string, 0)}
	g.codeGenerator.Symbols().Reset()

	if err := config.Validate(); err != nil {
		return err
	}

	g.diagnostics.Verbose("Starting generation at %s", startTime.Format("15:04:05"))
	g.diagnostics.Debug("Input: %s, output: %s, extensions: %v", config.InputDir, config.OutputDir, config.Extensions)

	if err := utils.EnsureDirectory(config.OutputDir); err != nil {
		return errors.WrapFileSystemError("create output directory", config.OutputDir, err)
	}

	headers, err := g.scanner.ScanHeaders(config)
	if err != nil {
		return err
	}
	g.diagnostics.Verbose("Found %d header(s)", len(headers))

	p := parser.NewParser(parser.Options{
		StrictBraces: config.StrictBraces,
		RequireBody:  config.RequireBody,
	})
	serializer := metadata.NewSerializer(config.MetadataIndent)

	shared := g.registerOutputs(config, headers)

	for _, header := range headers {
		g.summary.FilesScanned++

		if !config.forceRegeneration() && !shared[header] {
			upToDate, err := g.scanner.IsUpToDate(header, config.OutputDir)
			if err != nil {
				g.diagnostics.Debug("staleness check failed for %s: %v", header, err)
			}
			if upToDate {
				g.summary.FilesSkipped++
				g.diagnostics.Verbose("Skipping up-to-date %s", header)
				continue
			}
		}

		err := g.processHeader(config, p, serializer, header)
		if err == nil {
			continue
		}
		if errors.IsFatal(err) && !config.KeepGoing {
			return err
		}
		g.summary.FilesFailed++
		g.reporter.ReportFileError(header, err)
	}

	g.diagnostics.Verbose("Generation finished in %s", time.Since(startTime).Round(time.Millisecond))
	return nil
}

// registerOutputs claims the artifact paths of every header before any
// staleness decision and reports headers that would write the same file.
// Headers sharing an output are always regenerated: the artifacts on disk
// belong to whichever of them was written last.
func (g *Generator) registerOutputs(config Config, headers []string) map[string]bool {
	symbols := g.codeGenerator.Symbols()
	shared := make(map[string]bool)

	for _, header := range headers {
		outputs := []string{
			generator.GluePath(config.OutputDir, header),
			generator.MetadataPath(config.OutputDir, header),
		}
		for _, output := range outputs {
			collision := symbols.RegisterOutput(output, header)
			if collision == nil {
				continue
			}
			g.reporter.ReportWarning(collision)
			owner, _ := symbols.OutputOwner(output)
			shared[owner] = true
			shared[header] = true
		}
	}
	return shared
}

// processHeader parses one header and writes both artifacts
func (g *Generator) processHeader(config Config, p parser.HeaderParser, serializer *metadata.Serializer, header string) error {
	relativePath := g.scanner.RelativePath(config.InputDir, header)

	file, err := os.Open(header)
	if err != nil {
		return errors.WrapFileSystemError("open", header, err)
	}
	result, err := p.ParseFile(header, relativePath, file)
	file.Close()
	if err != nil {
		return err
	}

	for _, warning := range result.Warnings {
		g.reporter.ReportWarning(warning)
	}
	for _, class := range result.File.Classes {
		g.diagnostics.Debug("%s: class %s (base %s), body line %d, %d properties, %d methods",
			relativePath, class.ClassName, class.BaseClassName, class.DefinitionLine,
			len(class.Properties), len(class.Methods))
	}
	for _, collision := range g.codeGenerator.Symbols().RegisterFile(result.File) {
		g.reporter.ReportWarning(collision)
	}

	glue, err := g.codeGenerator.GenerateGlue(result.File, config.OutputDir)
	if err != nil {
		return err
	}
	gen, err := serializer.GenerateMetadata(result.File, config.OutputDir)
	if err != nil {
		return err
	}

	for _, artifact := range []*models.GeneratedArtifact{glue, gen} {
		if err := g.writeArtifact(artifact); err != nil {
			return err
		}
	}

	g.summary.Add(result.File)
	g.summary.FilesGenerated++
	g.diagnostics.Info("Generated %s", glue.FilePath)
	return nil
}

// writeArtifact writes one rendered file
func (g *Generator) writeArtifact(artifact *models.GeneratedArtifact) error {
	if err := os.WriteFile(artifact.FilePath, artifact.Content, 0644); err != nil {
		return errors.WrapFileSystemError("write", artifact.FilePath, err)
	}
	g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, artifact.FilePath)
	return nil
}

// ReportSuccess reports the summary of the last run
func (g *Generator) ReportSuccess() {
	g.reporter.ReportSuccess(g.summary)
}
