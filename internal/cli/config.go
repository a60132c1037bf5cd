package cli

import (
	"strings"

	"github.com/toyz/headertool/internal/errors"
	"github.com/toyz/headertool/internal/metadata"
	"github.com/toyz/headertool/internal/utils"
)

// ForceRegenerate disables the staleness check for every run. It is set
// by building with the headertool_debug tag.
var ForceRegenerate = debugBuild

// Config holds the configuration for one generation run. It is passed down
// explicitly; no component keeps the output directory as shared state.
type Config struct {
	// InputDir is the root scanned recursively for annotated headers
	InputDir string

	// OutputDir receives X.generated.h and X.gen for every header X.h
	OutputDir string

	// Extensions lists the header extensions to scan (default .h, .hpp)
	Extensions []string

	// GeneratedMarker excludes any path containing it
	GeneratedMarker string

	// Force regenerates headers whose outputs are up to date
	Force bool

	// StrictBraces ignores braces inside literals and comments
	StrictBraces bool

	// KeepGoing skips a header with an unparseable class instead of aborting
	KeepGoing bool

	// RequireBody makes a class without GENERATED_BODY() fatal
	RequireBody bool

	// MetadataIndent is the YAML indentation of X.gen
	MetadataIndent int

	// Verbose enables detailed logging and error reporting
	Verbose bool
}

// WithDefaults returns a copy of c with empty fields filled in
func (c Config) WithDefaults() Config {
	if len(c.Extensions) == 0 {
		c.Extensions = utils.DefaultHeaderExtensions
	}
	if c.GeneratedMarker == "" {
		c.GeneratedMarker = utils.DefaultGeneratedMarker
	}
	if c.MetadataIndent <= 0 {
		c.MetadataIndent = metadata.DefaultIndent
	}
	return c
}

// Validate reports a missing input or output directory
func (c Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.InputDir) == "" {
		missing = append(missing, "input directory")
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		missing = append(missing, "output directory")
	}
	if len(missing) == 0 {
		return nil
	}

	return errors.ConfigurationError("arguments", "missing "+strings.Join(missing, " and ")).
		WithSuggestions("Usage: headertool <input-dir> <output-dir>")
}

// forceRegeneration reports whether the staleness check is bypassed
func (c Config) forceRegeneration() bool {
	return c.Force || ForceRegenerate
}
