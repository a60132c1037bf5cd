package utils

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultHeaderExtensions are the header extensions scanned when none are configured
var DefaultHeaderExtensions = []string{".h", ".hpp"}

// DefaultGeneratedMarker is the path segment that identifies the tool's own output
const DefaultGeneratedMarker = ".generated"

// FileProcessor provides utilities for common file processing operations
type FileProcessor struct{}

// NewFileProcessor creates a new file processor
func NewFileProcessor() *FileProcessor {
	return &FileProcessor{}
}

// FileFilter defines a function that determines whether a file should be processed
type FileFilter func(path string, info fs.DirEntry) bool

// DirectoryFilter defines a function that determines whether a directory should be descended into
type DirectoryFilter func(path string, info fs.DirEntry) bool

// FileWalkOptions configures file walking behavior
type FileWalkOptions struct {
	FileFilter      FileFilter
	DirectoryFilter DirectoryFilter
	SkipErrors      bool
}

// HeaderFileFilter accepts regular files whose extension is one of extensions
// and whose path does not contain the generated-output marker
func HeaderFileFilter(extensions []string, generatedMarker string) FileFilter {
	if len(extensions) == 0 {
		extensions = DefaultHeaderExtensions
	}
	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		allowed[ext] = true
	}

	return func(path string, info fs.DirEntry) bool {
		if info.IsDir() || !info.Type().IsRegular() {
			return false
		}
		if generatedMarker != "" && strings.Contains(filepath.ToSlash(path), generatedMarker) {
			return false
		}
		return allowed[filepath.Ext(path)]
	}
}

// ArtifactFileFilter accepts files produced by the generator
func ArtifactFileFilter(suffixes ...string) FileFilter {
	return func(path string, info fs.DirEntry) bool {
		if info.IsDir() {
			return false
		}
		for _, suffix := range suffixes {
			if strings.HasSuffix(info.Name(), suffix) {
				return true
			}
		}
		return false
	}
}

// DefaultDirectoryFilter skips VCS metadata directories
func DefaultDirectoryFilter() DirectoryFilter {
	skipDirs := map[string]bool{
		".git": true,
		".svn": true,
		".hg":  true,
	}

	return func(path string, info fs.DirEntry) bool {
		return !skipDirs[info.Name()]
	}
}

// WalkFiles walks through files in a directory tree with filtering. The
// result is sorted so runs are reproducible.
func (fp *FileProcessor) WalkFiles(rootDir string, options FileWalkOptions) ([]string, error) {
	var matchedFiles []string

	err := filepath.WalkDir(rootDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if options.SkipErrors {
				return nil
			}
			return err
		}

		if entry.IsDir() {
			if path != rootDir && options.DirectoryFilter != nil && !options.DirectoryFilter(path, entry) {
				return filepath.SkipDir
			}
			return nil
		}

		if options.FileFilter == nil || options.FileFilter(path, entry) {
			matchedFiles = append(matchedFiles, path)
		}

		return nil
	})

	sort.Strings(matchedFiles)
	return matchedFiles, err
}

// IsUpToDate reports whether every target exists and was modified no earlier
// than source
func IsUpToDate(source string, targets ...string) (bool, error) {
	sourceInfo, err := os.Stat(source)
	if err != nil {
		return false, err
	}

	for _, target := range targets {
		targetInfo, err := os.Stat(target)
		if err != nil {
			if os.IsNotExist(err) {
				return false, nil
			}
			return false, err
		}
		if targetInfo.ModTime().Before(sourceInfo.ModTime()) {
			return false, nil
		}
	}

	return len(targets) > 0, nil
}

// EnsureDirectory creates dir and its parents when missing
func EnsureDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return &fs.PathError{Op: "mkdir", Path: dir, Err: fs.ErrExist}
		}
		return nil
	}
	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0755)
	}
	return err
}
