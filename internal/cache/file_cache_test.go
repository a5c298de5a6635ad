package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCache(t *testing.T) {
	t.Setenv("ROOT_PATH", t.TempDir())

	fc := NewFileCache[[]int]("cache/test")
	key := fc.GenerateKey("unavailable_years", "penaflor")

	t.Run("miss on empty cache", func(t *testing.T) {
		_, ok := fc.Get(key)
		assert.False(t, ok)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, fc.Set(key, []int{2019, 2022}))

		got, ok := fc.Get(key)
		require.True(t, ok)
		assert.Equal(t, []int{2019, 2022}, got)
	})

	t.Run("keys are stable and distinct", func(t *testing.T) {
		assert.Equal(t, key, fc.GenerateKey("unavailable_years", "penaflor"))
		assert.NotEqual(t, key, fc.GenerateKey("unavailable_years", "other_area"))
	})
}

func TestFileCache_CorruptEntryIsAMiss(t *testing.T) {
	root := t.TempDir()
	t.Setenv("ROOT_PATH", root)

	fc := NewFileCache[[]int]("cache/test")
	key := fc.GenerateKey("unavailable_years", "penaflor")
	require.NoError(t, fc.Set(key, []int{2019}))

	path := filepath.Join(root, "data", "cache", "test", key+".json")
	content, err := os.ReadFile(path)
	require.NoError(t, err)

	// A hand-edited payload no longer matches its checksum.
	tampered := strings.Replace(string(content), "2019", "2024", 1)
	require.NotEqual(t, string(content), tampered)
	require.NoError(t, os.WriteFile(path, []byte(tampered), 0644))

	_, ok := fc.Get(key)
	assert.False(t, ok)

	// Garbage is a miss too, not an error.
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	_, ok = fc.Get(key)
	assert.False(t, ok)
}
