package cli

import (
	"os"

	"github.com/toyz/headertool/internal/errors"
	"github.com/toyz/headertool/internal/generator"
	"github.com/toyz/headertool/internal/utils"
)

// Cleaner handles cleaning up generated files
type Cleaner struct {
	fileProcessor *utils.FileProcessor
}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{
		fileProcessor: utils.NewFileProcessor(),
	}
}

// CleanGeneratedFiles removes every X.generated.h and X.gen under outputDir
// and returns the removed paths. A missing directory is not an error.
func (c *Cleaner) CleanGeneratedFiles(outputDir string) ([]string, error) {
	if _, err := os.Stat(outputDir); os.IsNotExist(err) {
		return nil, nil
	}

	files, err := c.fileProcessor.WalkFiles(outputDir, utils.FileWalkOptions{
		FileFilter:      utils.ArtifactFileFilter(generator.GlueSuffix, generator.MetadataSuffix),
		DirectoryFilter: utils.DefaultDirectoryFilter(),
	})
	if err != nil {
		return nil, errors.WrapFileSystemError("scan", outputDir, err)
	}

	removed := make([]string, 0, len(files))
	for _, file := range files {
		if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
			return removed, errors.WrapFileSystemError("remove", file, err)
		}
		removed = append(removed, file)
	}

	return removed, nil
}
