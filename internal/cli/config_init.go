package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/toyz/headertool/internal/errors"
	"github.com/toyz/headertool/internal/metadata"
	"github.com/toyz/headertool/internal/utils"
)

// ConfigBaseName is the file name, without extension, looked up in the
// working directory
const ConfigBaseName = "headertool"

// ConfigInit scaffolds a configuration file holding the defaults of every
// generation flag
type ConfigInit struct {
	Format    string `help:"Output format" enum:"json,yaml,yml,toml" default:"yaml"`
	Output    string `help:"Destination file path (defaults to headertool.<format> in the current directory)" type:"path"`
	Overwrite bool   `help:"Replace the file if it already exists"`
}

// configEntry is one generation flag and its default value
type configEntry struct {
	flag  string
	value any
}

// configEntries lists the generation flags in the order they appear in the
// scaffolded file
func configEntries() []configEntry {
	return []configEntry{
		{"extensions", utils.DefaultHeaderExtensions},
		{"generated-marker", utils.DefaultGeneratedMarker},
		{"force", false},
		{"strict-braces", false},
		{"keep-going", false},
		{"require-body", false},
		{"metadata-indent", metadata.DefaultIndent},
		{"verbose", false},
	}
}

// Run writes the scaffolded file and returns its path
func (c *ConfigInit) Run() (string, error) {
	format := normalizeFormat(c.Format)
	if format == "" {
		return "", errors.ConfigurationError("config init", "unsupported format: "+c.Format).
			WithSuggestions("Use one of json, yaml or toml")
	}

	dest := c.Output
	if dest == "" {
		dest = ConfigBaseName + "." + format
	}

	if !c.Overwrite {
		if _, err := os.Stat(dest); err == nil {
			return "", errors.ConfigurationError("config init", "destination exists: "+dest).
				WithSuggestions("Use --overwrite to replace it")
		}
	}
	if err := utils.EnsureDirectory(filepath.Dir(dest)); err != nil {
		return "", errors.WrapFileSystemError("create directory", filepath.Dir(dest), err)
	}

	data, err := renderConfig(format)
	if err != nil {
		return "", errors.WrapConfigurationError(format, "render", err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", errors.WrapFileSystemError("write", dest, err)
	}
	return dest, nil
}

// renderConfig encodes the defaults. JSON keys are snake_case, YAML and
// TOML keys are the flag names themselves; these are the spellings each
// configuration loader resolves.
func renderConfig(format string) ([]byte, error) {
	switch format {
	case "json":
		root := map[string]any{}
		for _, entry := range configEntries() {
			root[strings.ReplaceAll(entry.flag, "-", "_")] = entry.value
		}
		return json.MarshalIndent(root, "", "  ")

	case "yaml":
		// A mapping node keeps the flags in declaration order
		root := &yaml.Node{Kind: yaml.MappingNode}
		for _, entry := range configEntries() {
			var value yaml.Node
			if err := value.Encode(entry.value); err != nil {
				return nil, err
			}
			root.Content = append(root.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: entry.flag}, &value)
		}
		return yaml.Marshal(root)

	case "toml":
		root := map[string]any{}
		for _, entry := range configEntries() {
			root[entry.flag] = entry.value
		}
		return toml.Marshal(root)
	}
	return nil, nil
}

func normalizeFormat(f string) string {
	switch strings.ToLower(f) {
	case "json":
		return "json"
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	default:
		return ""
	}
}

// ConfigCandidatePaths builds the configuration files to try per format.
// A user supplied path comes first and is routed to the loader matching its
// extension; headertool.{json,yaml,yml,toml} in the working directory follow.
func ConfigCandidatePaths(userPath string) (jsonPaths, yamlPaths, tomlPaths []string) {
	if userPath != "" {
		switch filepath.Ext(userPath) {
		case ".yaml", ".yml":
			yamlPaths = append(yamlPaths, userPath)
		case ".toml":
			tomlPaths = append(tomlPaths, userPath)
		default:
			jsonPaths = append(jsonPaths, userPath)
		}
	}

	wd, _ := os.Getwd()
	jsonPaths = append(jsonPaths, filepath.Join(wd, ConfigBaseName+".json"))
	yamlPaths = append(yamlPaths,
		filepath.Join(wd, ConfigBaseName+".yaml"),
		filepath.Join(wd, ConfigBaseName+".yml"))
	tomlPaths = append(tomlPaths, filepath.Join(wd, ConfigBaseName+".toml"))
	return jsonPaths, yamlPaths, tomlPaths
}

// FindUserConfig returns the value of --config in args, falling back to the
// HEADERTOOL_CONFIG environment variable
func FindUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv("HEADERTOOL_CONFIG")
}
