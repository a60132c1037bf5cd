package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lithammer/dedent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/headertool/internal/errors"
	"github.com/toyz/headertool/internal/utils"
)

var playerHeader = dedent.Dedent(`
	#pragma once
	#include "Player.generated.h"

	CLASS()
	class Player : public Pawn
	{
		GENERATED_BODY()
	public:
		PROPERTY(edit, visible)
		int Health = 100;

		PROPERTY()
		Weapon* Primary;

		FUNCTION()
		void Jump();
	};
`)

var brokenHeader = dedent.Dedent(`
	CLASS()
	struct Broken
	{
	};
`)

var collidingHeader = dedent.Dedent(`
	CLASS()
	class First
	{
	};

	CLASS()
	class Second
	{
	};
`)

func writeHeader(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestGenerator(verbose bool) (*Generator, *bytes.Buffer) {
	var out bytes.Buffer
	level := utils.DiagnosticInfo
	if verbose {
		level = utils.DiagnosticDebug
	}
	return NewGeneratorWithDiagnostics(verbose, utils.NewBufferedDiagnostics(level, &out)), &out
}

func TestGenerator_Run_WritesBothArtifacts(t *testing.T) {
	input := t.TempDir()
	output := filepath.Join(t.TempDir(), "generated")
	writeHeader(t, input, "Player.h", playerHeader)
	writeHeader(t, input, "README.md", "not a header")

	g, _ := newTestGenerator(false)
	require.NoError(t, g.Run(Config{InputDir: input, OutputDir: output}))

	glue, err := os.ReadFile(filepath.Join(output, "Player.generated.h"))
	require.NoError(t, err)
	assert.Contains(t, string(glue), "#define PLAYER_H_8_GENERATED_BODY")
	assert.Contains(t, string(glue), "typedef Pawn Super;")
	assert.Contains(t, string(glue), "EXPORT_FUNC void* Internal_Create_Player()")
	assert.Contains(t, string(glue), "Internal_Set_Player_Primary")
	assert.Contains(t, string(glue), "Internal_Call_Player_Jump")
	assert.Contains(t, string(glue), "#define CURRENT_FILE_ID PLAYER_H")

	gen, err := os.ReadFile(filepath.Join(output, "Player.gen"))
	require.NoError(t, err)
	assert.Contains(t, string(gen), "Class Size: 1")
	assert.Contains(t, string(gen), "Type: Weapon*")

	summary := g.GetSummary()
	assert.Equal(t, 1, summary.FilesScanned)
	assert.Equal(t, 1, summary.FilesGenerated)
	assert.Equal(t, 1, summary.ClassesFound)
	assert.Equal(t, 2, summary.PropertiesFound)
	assert.Equal(t, 1, summary.MethodsFound)
	assert.Len(t, summary.GeneratedFiles, 2)
}

func TestGenerator_Run_HeaderWithoutClasses(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()
	writeHeader(t, input, "Plain.hpp", "struct Plain { int x; };\n")

	g, _ := newTestGenerator(false)
	require.NoError(t, g.Run(Config{InputDir: input, OutputDir: output}))

	gen, err := os.ReadFile(filepath.Join(output, "Plain.gen"))
	require.NoError(t, err)
	assert.Equal(t, "Class Size: 0\n", string(gen))
	assert.FileExists(t, filepath.Join(output, "Plain.generated.h"))
}

func TestGenerator_Run_SkipsGeneratedInputs(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()
	writeHeader(t, input, "Player.generated.h", playerHeader)

	g, _ := newTestGenerator(false)
	require.NoError(t, g.Run(Config{InputDir: input, OutputDir: output}))
	assert.Equal(t, 0, g.GetSummary().FilesScanned)
}

func TestGenerator_Run_Staleness(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()
	header := writeHeader(t, input, "Player.h", playerHeader)
	gluePath := filepath.Join(output, "Player.generated.h")

	g, _ := newTestGenerator(false)
	require.NoError(t, g.Run(Config{InputDir: input, OutputDir: output}))

	// Outputs newer than the header: nothing to do
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(header, past, past))
	require.NoError(t, os.WriteFile(gluePath, []byte("stale marker"), 0644))

	require.NoError(t, g.Run(Config{InputDir: input, OutputDir: output}))
	assert.Equal(t, 1, g.GetSummary().FilesSkipped)
	assert.Equal(t, 0, g.GetSummary().FilesGenerated)
	content, err := os.ReadFile(gluePath)
	require.NoError(t, err)
	assert.Equal(t, "stale marker", string(content))

	// Force bypasses the check
	require.NoError(t, g.Run(Config{InputDir: input, OutputDir: output, Force: true}))
	assert.Equal(t, 1, g.GetSummary().FilesGenerated)
	content, err = os.ReadFile(gluePath)
	require.NoError(t, err)
	assert.NotEqual(t, "stale marker", string(content))

	// Header touched after the outputs: regenerated
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(header, future, future))
	require.NoError(t, g.Run(Config{InputDir: input, OutputDir: output}))
	assert.Equal(t, 1, g.GetSummary().FilesGenerated)
}

func TestGenerator_Run_MissingMetadataRegenerates(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()
	header := writeHeader(t, input, "Player.h", playerHeader)

	g, _ := newTestGenerator(false)
	require.NoError(t, g.Run(Config{InputDir: input, OutputDir: output}))

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(header, past, past))
	require.NoError(t, os.Remove(filepath.Join(output, "Player.gen")))

	require.NoError(t, g.Run(Config{InputDir: input, OutputDir: output}))
	assert.Equal(t, 1, g.GetSummary().FilesGenerated)
	assert.FileExists(t, filepath.Join(output, "Player.gen"))
}

func TestGenerator_Run_FatalParseErrorAborts(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()
	writeHeader(t, input, "A_Broken.h", brokenHeader)
	writeHeader(t, input, "B_Player.h", playerHeader)

	g, _ := newTestGenerator(false)
	err := g.Run(Config{InputDir: input, OutputDir: output})
	require.Error(t, err)
	assert.True(t, errors.IsFatal(err))
	assert.NoFileExists(t, filepath.Join(output, "B_Player.generated.h"))
}

func TestGenerator_Run_KeepGoingSkipsFatalHeader(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()
	writeHeader(t, input, "A_Broken.h", brokenHeader)
	writeHeader(t, input, "B_Player.h", playerHeader)

	g, out := newTestGenerator(false)
	require.NoError(t, g.Run(Config{InputDir: input, OutputDir: output, KeepGoing: true}))

	assert.NoFileExists(t, filepath.Join(output, "A_Broken.generated.h"))
	assert.FileExists(t, filepath.Join(output, "B_Player.generated.h"))
	assert.Equal(t, 1, g.GetSummary().FilesFailed)
	assert.Equal(t, 1, g.GetSummary().FilesGenerated)
	assert.Contains(t, out.String(), "skipping")
}

func TestGenerator_Run_RequireBody(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()
	writeHeader(t, input, "Bare.h", "CLASS()\nclass Bare\n{\n};\n")

	g, out := newTestGenerator(false)
	require.NoError(t, g.Run(Config{InputDir: input, OutputDir: output}))
	assert.Contains(t, out.String(), "GENERATED_BODY")
	assert.FileExists(t, filepath.Join(output, "Bare.generated.h"))

	err := g.Run(Config{InputDir: input, OutputDir: output, RequireBody: true, Force: true})
	require.Error(t, err)
	assert.True(t, errors.IsFatal(err))
}

func TestGenerator_Run_MacroCollisionSkipsFile(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()
	writeHeader(t, input, "Twins.h", collidingHeader)
	writeHeader(t, input, "Player.h", playerHeader)

	g, _ := newTestGenerator(false)
	require.NoError(t, g.Run(Config{InputDir: input, OutputDir: output}))

	assert.NoFileExists(t, filepath.Join(output, "Twins.generated.h"))
	assert.FileExists(t, filepath.Join(output, "Player.generated.h"))
	assert.Equal(t, 1, g.GetSummary().FilesFailed)
}

func TestGenerator_Run_OutputNameCollisionWarns(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()
	writeHeader(t, input, filepath.Join("a", "Shared.h"), "CLASS()\nclass Alpha\n{\n\tGENERATED_BODY()\n};\n")
	writeHeader(t, input, filepath.Join("b", "Shared.h"), "CLASS()\nclass Beta\n{\n\tGENERATED_BODY()\n};\n")

	g, out := newTestGenerator(false)
	require.NoError(t, g.Run(Config{InputDir: input, OutputDir: output}))

	assert.Equal(t, 2, g.GetSummary().FilesGenerated)
	assert.Equal(t, 0, g.GetSummary().FilesSkipped)
	assert.Contains(t, out.String(), "Shared.generated.h")
	assert.Contains(t, out.String(), "[WARN]")

	metadata, err := os.ReadFile(filepath.Join(output, "Shared.gen"))
	require.NoError(t, err)
	assert.Contains(t, string(metadata), "Beta")
}

func TestGenerator_Run_SharedOutputsIgnoreStaleness(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()
	alpha := writeHeader(t, input, filepath.Join("a", "Shared.h"), "CLASS()\nclass Alpha\n{\n\tGENERATED_BODY()\n};\n")
	beta := writeHeader(t, input, filepath.Join("b", "Shared.h"), "CLASS()\nclass Beta\n{\n\tGENERATED_BODY()\n};\n")

	g, _ := newTestGenerator(false)
	require.NoError(t, g.Run(Config{InputDir: input, OutputDir: output}))

	// Both sources are older than the artifacts, yet neither may be skipped
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(alpha, past, past))
	require.NoError(t, os.Chtimes(beta, past, past))

	g, out := newTestGenerator(false)
	require.NoError(t, g.Run(Config{InputDir: input, OutputDir: output}))

	assert.Equal(t, 2, g.GetSummary().FilesGenerated)
	assert.Equal(t, 0, g.GetSummary().FilesSkipped)
	assert.Equal(t, 2, strings.Count(out.String(), "[WARN]"))
}

func TestGenerator_Run_StrictBraces(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()
	writeHeader(t, input, "Sign.h", dedent.Dedent(`
		CLASS()
		class Sign
		{
			GENERATED_BODY()
			const char* Open = "{";
		public:
			PROPERTY()
			int Width;
		};

		CLASS()
		class Post
		{
			GENERATED_BODY()
		};
	`))

	g, _ := newTestGenerator(false)
	require.NoError(t, g.Run(Config{InputDir: input, OutputDir: output, StrictBraces: true}))

	gen, err := os.ReadFile(filepath.Join(output, "Sign.gen"))
	require.NoError(t, err)
	assert.Contains(t, string(gen), "Class Size: 2")
}

func TestGenerator_Run_InvalidConfig(t *testing.T) {
	g, _ := newTestGenerator(false)
	err := g.Run(Config{InputDir: t.TempDir()})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ConfigurationErrorCode))
}

func TestGenerator_Run_NestedHeadersFlattenOutput(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()
	writeHeader(t, input, filepath.Join("game", "actors", "Player.h"), playerHeader)

	g, _ := newTestGenerator(true)
	require.NoError(t, g.Run(Config{InputDir: input, OutputDir: output}))

	glue, err := os.ReadFile(filepath.Join(output, "Player.generated.h"))
	require.NoError(t, err)
	assert.Contains(t, string(glue), "#define CURRENT_FILE_ID GAME_ACTORS_PLAYER_H")
	assert.Contains(t, string(glue), "GAME_ACTORS_PLAYER_H_8_GENERATED_BODY")
}
