package generator

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/headertool/internal/errors"
	"github.com/toyz/headertool/internal/models"
)

func TestFileID(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{path: "Player.h", expected: "PLAYER_H"},
		{path: "Game/Actors/Player.hpp", expected: "GAME_ACTORS_PLAYER_HPP"},
		{path: "my-lib/v2.0/x.h", expected: "MY_LIB_V2_0_X_H"},
		{path: "./A.h", expected: "__A_H"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, FileID(tt.path))
		})
	}
}

func TestExportedNames(t *testing.T) {
	assert.Equal(t, "PLAYER_H_12_GENERATED_BODY", MacroName("PLAYER_H", 12))
	assert.Equal(t, "Internal_Create_Player", FactoryName("Player"))
	assert.Equal(t, "Internal_Get_Player_Health", GetterName("Player", "Health"))
	assert.Equal(t, "Internal_Set_Player_Health", SetterName("Player", "Health"))
	assert.Equal(t, "Internal_Call_Player_Jump", InvokerName("Player", "Jump"))
}

func TestArtifactPaths(t *testing.T) {
	source := filepath.Join("src", "Game", "Player.hpp")
	assert.Equal(t, filepath.Join("gen", "Player.generated.h"), GluePath("gen", source))
	assert.Equal(t, filepath.Join("gen", "Player.gen"), MetadataPath("gen", source))
}

func TestSymbolRegistry_RegisterFile(t *testing.T) {
	registry := NewSymbolRegistry()

	first := &models.FileRecord{
		RelativePath: "A.h",
		Classes: []models.ClassRecord{{
			ClassName:  "Player",
			Properties: []models.PropertyRecord{{Name: "Health"}, {Name: "Health"}},
			Methods:    []models.MethodRecord{{Name: "Jump"}},
		}},
	}
	assert.Empty(t, registry.RegisterFile(first))
	// The same owners registering again is not a collision
	assert.Empty(t, registry.RegisterFile(first))

	second := &models.FileRecord{
		RelativePath: "B.h",
		Classes: []models.ClassRecord{{
			ClassName: "Player",
			Methods:   []models.MethodRecord{{Name: "Jump"}},
		}},
	}
	collisions := registry.RegisterFile(second)
	require.Len(t, collisions, 2)
	assert.Equal(t, errors.CollisionErrorCode, collisions[0].ErrorCode())
	assert.Contains(t, collisions[0].Error(), "Internal_Create_Player")
	assert.Contains(t, collisions[1].Error(), "Internal_Call_Player_Jump")

	registry.Reset()
	assert.Empty(t, registry.RegisterFile(second))
}

func TestSymbolRegistry_RegisterOutput(t *testing.T) {
	registry := NewSymbolRegistry()

	assert.Nil(t, registry.RegisterOutput("gen/A.gen", "src/A.h"))
	assert.Nil(t, registry.RegisterOutput("gen/A.gen", "src/A.h"))

	collision := registry.RegisterOutput("gen/A.gen", "src/other/A.hpp")
	require.NotNil(t, collision)
	assert.Equal(t, errors.CollisionErrorCode, collision.ErrorCode())

	owner, ok := registry.OutputOwner("gen/A.gen")
	assert.True(t, ok)
	assert.Equal(t, "src/A.h", owner)
}
