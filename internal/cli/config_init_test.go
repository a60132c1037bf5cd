package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	toml "github.com/pelletier/go-toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"

	"github.com/toyz/headertool/internal/errors"
)

func TestConfigInit_Formats(t *testing.T) {
	dir := t.TempDir()

	t.Run("yaml keeps flag order", func(t *testing.T) {
		dest := filepath.Join(dir, "headertool.yaml")
		written, err := (&ConfigInit{Format: "yml", Output: dest}).Run()
		require.NoError(t, err)
		assert.Equal(t, dest, written)

		content, err := os.ReadFile(dest)
		require.NoError(t, err)

		var document yaml.Node
		require.NoError(t, yaml.Unmarshal(content, &document))
		assert.Equal(t, []string{
			"extensions", "generated-marker", "force", "strict-braces",
			"keep-going", "require-body", "metadata-indent", "verbose",
		}, keysOfNode(document.Content[0]))

		var values map[string]interface{}
		require.NoError(t, yaml.Unmarshal(content, &values))
		assert.Equal(t, 2, values["metadata-indent"])
		assert.Equal(t, []interface{}{".h", ".hpp"}, values["extensions"])
	})

	t.Run("json uses snake case", func(t *testing.T) {
		dest := filepath.Join(dir, "headertool.json")
		_, err := (&ConfigInit{Format: "json", Output: dest}).Run()
		require.NoError(t, err)

		content, err := os.ReadFile(dest)
		require.NoError(t, err)

		var values map[string]interface{}
		require.NoError(t, json.Unmarshal(content, &values))
		assert.Equal(t, ".generated", values["generated_marker"])
		assert.Equal(t, false, values["strict_braces"])
	})

	t.Run("toml", func(t *testing.T) {
		dest := filepath.Join(dir, "nested", "headertool.toml")
		_, err := (&ConfigInit{Format: "toml", Output: dest}).Run()
		require.NoError(t, err)

		tree, err := toml.LoadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, false, tree.Get("keep-going"))
		assert.Equal(t, ".generated", tree.Get("generated-marker"))
	})
}

func TestConfigInit_RefusesOverwrite(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "headertool.yaml")
	require.NoError(t, os.WriteFile(dest, []byte("keep: me\n"), 0644))

	_, err := (&ConfigInit{Format: "yaml", Output: dest}).Run()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ConfigurationErrorCode))

	content, readErr := os.ReadFile(dest)
	require.NoError(t, readErr)
	assert.Equal(t, "keep: me\n", string(content))

	_, err = (&ConfigInit{Format: "yaml", Output: dest, Overwrite: true}).Run()
	require.NoError(t, err)
}

func TestConfigInit_UnsupportedFormat(t *testing.T) {
	_, err := (&ConfigInit{Format: "ini", Output: filepath.Join(t.TempDir(), "x.ini")}).Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestConfigCandidatePaths(t *testing.T) {
	jsonPaths, yamlPaths, tomlPaths := ConfigCandidatePaths("custom.yml")
	assert.Equal(t, "custom.yml", yamlPaths[0])
	assert.Len(t, yamlPaths, 3)
	assert.Len(t, jsonPaths, 1)
	assert.Len(t, tomlPaths, 1)
	assert.Equal(t, "headertool.toml", filepath.Base(tomlPaths[0]))

	jsonPaths, _, _ = ConfigCandidatePaths("settings.conf")
	assert.Equal(t, "settings.conf", jsonPaths[0])
}

func TestFindUserConfig(t *testing.T) {
	t.Setenv("HEADERTOOL_CONFIG", "")

	assert.Equal(t, "a.yaml", FindUserConfig([]string{"--config=a.yaml", "in", "out"}))
	assert.Equal(t, "b.toml", FindUserConfig([]string{"in", "--config", "b.toml"}))
	assert.Equal(t, "", FindUserConfig([]string{"in", "out", "--config"}))

	t.Setenv("HEADERTOOL_CONFIG", "env.json")
	assert.Equal(t, "env.json", FindUserConfig([]string{"in", "out"}))
}

func keysOfNode(node *yaml.Node) []string {
	var keys []string
	for i := 0; i+1 < len(node.Content); i += 2 {
		keys = append(keys, node.Content[i].Value)
	}
	return keys
}
