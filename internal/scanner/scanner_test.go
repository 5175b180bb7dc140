package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))
}

func TestNew_ValidatesPath(t *testing.T) {
	logger := zerolog.Nop()

	_, err := New(filepath.Join(t.TempDir(), "missing"), logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	file := filepath.Join(t.TempDir(), "file.go")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	_, err = New(file, logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestScan_FiltersExtensionsAndDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go")
	writeFile(t, root, "app.py")
	writeFile(t, root, "notes.txt")
	writeFile(t, root, "README.md")
	writeFile(t, root, "node_modules/dep/index.js")
	writeFile(t, root, ".git/hooks/sample.py")
	writeFile(t, root, "src/handler.ts")
	writeFile(t, root, "build/out.go")

	s, err := New(root, zerolog.Nop())
	require.NoError(t, err)

	files, err := s.Scan()
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		rel, relErr := filepath.Rel(root, f)
		require.NoError(t, relErr)
		names = append(names, filepath.ToSlash(rel))
	}

	assert.ElementsMatch(t, []string{"main.go", "app.py", "src/handler.ts"}, names)
}

func TestScan_EmptyProject(t *testing.T) {
	s, err := New(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	files, err := s.Scan()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestLanguage(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"main.go", "Go"},
		{"app.py", "Python"},
		{"widget.TSX", "TypeScript React"},
		{"lib.rs", "Rust"},
		{"unknown.xyz", "Unknown"},
		{"Makefile", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, Language(tt.path))
		})
	}
}

func TestContent_UTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ok.go")
	require.NoError(t, os.WriteFile(path, []byte("package main // héllo"), 0o644))

	content, err := Content(path)
	require.NoError(t, err)
	assert.Equal(t, "package main // héllo", content)
}

func TestContent_Latin1Fallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.c")
	// 0xE9 is 'é' in Latin-1 and invalid as a standalone UTF-8 byte.
	require.NoError(t, os.WriteFile(path, []byte{'/', '*', ' ', 0xE9, ' ', '*', '/'}, 0o644))

	content, err := Content(path)
	require.NoError(t, err)
	assert.Equal(t, "/* é */", content)
}

func TestContent_MissingFile(t *testing.T) {
	_, err := Content(filepath.Join(t.TempDir(), "missing.go"))
	assert.Error(t, err)
}
