package qr

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Generate(t *testing.T) {
	dir := t.TempDir()
	g, err := NewGenerator(dir, "/qrcodes/")
	require.NoError(t, err)

	token, url, err := g.Generate()
	require.NoError(t, err)

	assert.NotEmpty(t, token)
	assert.Equal(t, "/qrcodes/"+token+".png", url, "trailing slash on the public path must not double up")

	info, err := os.Stat(filepath.Join(dir, token+".png"))
	require.NoError(t, err, "the artifact must exist before Generate returns")
	assert.Greater(t, info.Size(), int64(0))
}

func TestGenerator_Generate_UniqueTokens(t *testing.T) {
	g, err := NewGenerator(t.TempDir(), "/qrcodes")
	require.NoError(t, err)

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		token, _, err := g.Generate()
		require.NoError(t, err)
		assert.False(t, seen[token], "token %s issued twice", token)
		seen[token] = true
	}
}

func TestGenerator_Remove(t *testing.T) {
	dir := t.TempDir()
	g, err := NewGenerator(dir, "/qrcodes")
	require.NoError(t, err)

	token, _, err := g.Generate()
	require.NoError(t, err)

	require.NoError(t, g.Remove(token))
	_, statErr := os.Stat(filepath.Join(dir, token+".png"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerator_Remove_MissingFileIsFine(t *testing.T) {
	g, err := NewGenerator(t.TempDir(), "/qrcodes")
	require.NoError(t, err)

	assert.NoError(t, g.Remove("never-generated"))
}

func TestNewGenerator_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "qrcodes")
	_, err := NewGenerator(dir, "/qrcodes")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestGenerator_TokenIsURLSafe(t *testing.T) {
	g, err := NewGenerator(t.TempDir(), "/qrcodes")
	require.NoError(t, err)

	token, _, err := g.Generate()
	require.NoError(t, err)
	assert.False(t, strings.ContainsAny(token, "/\\ "), "tokens are embedded in URLs and file names")
}
