package cli

import (
	"path/filepath"
	"strings"

	"github.com/toyz/headertool/internal/errors"
	"github.com/toyz/headertool/internal/generator"
	"github.com/toyz/headertool/internal/utils"
)

// DirectoryScanner finds candidate headers and decides which need work
type DirectoryScanner struct {
	fileProcessor *utils.FileProcessor
}

// NewDirectoryScanner creates a new directory scanner
func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{
		fileProcessor: utils.NewFileProcessor(),
	}
}

// ScanHeaders recursively lists the headers under config.InputDir, skipping
// the tool's own output
func (s *DirectoryScanner) ScanHeaders(config Config) ([]string, error) {
	root, err := filepath.Abs(config.InputDir)
	if err != nil {
		return nil, errors.WrapFileSystemError("resolve", config.InputDir, err)
	}

	files, err := s.fileProcessor.WalkFiles(root, utils.FileWalkOptions{
		FileFilter:      utils.HeaderFileFilter(config.Extensions, config.GeneratedMarker),
		DirectoryFilter: utils.DefaultDirectoryFilter(),
	})
	if err != nil {
		return nil, errors.WrapFileSystemError("scan", config.InputDir, err)
	}
	return files, nil
}

// IsUpToDate reports whether both artifacts of header exist under outputDir
// and are at least as new as header
func (s *DirectoryScanner) IsUpToDate(header, outputDir string) (bool, error) {
	return utils.IsUpToDate(header,
		generator.GluePath(outputDir, header),
		generator.MetadataPath(outputDir, header),
	)
}

// RelativePath returns header relative to the input root, slash separated.
// It falls back to the file name when header lies outside the root.
func (s *DirectoryScanner) RelativePath(inputDir, header string) string {
	root, err := filepath.Abs(inputDir)
	if err != nil {
		return filepath.Base(header)
	}
	rel, err := filepath.Rel(root, header)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.Base(header)
	}
	return filepath.ToSlash(rel)
}
