package utils

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterUnique(t *testing.T) {
	registry := NewRegistry[string, string]()
	require.NoError(t, registry.RegisterUnique("Internal_Create_Door", "a/Door.h"))

	err := registry.RegisterUnique("Internal_Create_Door", "b/Door.h")
	require.Error(t, err)

	var duplicate *DuplicateKeyError[string, string]
	require.True(t, errors.As(err, &duplicate))
	assert.Equal(t, "a/Door.h", duplicate.Existing)
	assert.Equal(t, "key Internal_Create_Door already registered", err.Error())

	value, exists := registry.Get("Internal_Create_Door")
	assert.True(t, exists)
	assert.Equal(t, "a/Door.h", value)

	_, exists = registry.Get("nonexistent")
	assert.False(t, exists)
}

func TestRegistry_Clear(t *testing.T) {
	registry := NewRegistry[int, int]()
	require.NoError(t, registry.RegisterUnique(1, 1))

	registry.Clear()
	_, exists := registry.Get(1)
	assert.False(t, exists)

	assert.NoError(t, registry.RegisterUnique(1, 2))
}

func TestRegistry_ThreadSafety(t *testing.T) {
	registry := NewRegistry[string, int]()

	var wg sync.WaitGroup
	var failures sync.Map
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if err := registry.RegisterUnique("shared", n); err != nil {
				failures.Store(n, err)
			}
			registry.Get(fmt.Sprintf("key%d", n))
		}(i)
	}
	wg.Wait()

	count := 0
	failures.Range(func(any, any) bool { count++; return true })
	assert.Equal(t, 49, count)
}
