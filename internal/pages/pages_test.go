package pages

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "home.html"), "<html></html>")
	writeFile(t, filepath.Join(root, "home", "index.js"), "")
	writeFile(t, filepath.Join(root, "about.htm"), "<html></html>")
	writeFile(t, filepath.Join(root, "about", "index.js"), "")
	writeFile(t, filepath.Join(root, "readme.md"), "not a page")
	writeFile(t, filepath.Join(root, "orphan.html"), "<html></html>")

	found, err := Discover(root)
	require.NoError(t, err)
	require.Len(t, found, 3)

	// Lexicographic filename order
	assert.Equal(t, "about", found[0].Name)
	assert.Equal(t, "home", found[1].Name)
	assert.Equal(t, "orphan", found[2].Name)

	assert.Equal(t, filepath.Join(root, "about.htm"), found[0].Template)
	assert.Equal(t, filepath.Join(root, "about", "index.js"), found[0].Script)
	assert.Equal(t, filepath.Join(root, "home", "index.js"), found[1].Script)
	assert.Empty(t, found[2].Script, "page without index.js has no script")
}

func TestDiscover_MissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestDiscover_EmptyRoot(t *testing.T) {
	found, err := Discover(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, found)
}
