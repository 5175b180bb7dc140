package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPromptTemplate_Builtin(t *testing.T) {
	for name := range GetBuiltinTemplates() {
		tmpl, err := GetPromptTemplate(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, tmpl, name)
	}
}

func TestGetPromptTemplate_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := `name: custom
description: test template
template: "Review {{.FileName}} written in {{.Language}}"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tmpl, err := GetPromptTemplate(path)
	require.NoError(t, err)
	assert.Equal(t, "Review {{.FileName}} written in {{.Language}}", tmpl)
}

func TestGetPromptTemplate_PlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(path, []byte("Just review {{.Code}}"), 0o644))

	tmpl, err := GetPromptTemplate(path)
	require.NoError(t, err)
	assert.Equal(t, "Just review {{.Code}}", tmpl)
}

func TestGetPromptTemplate_Unknown(t *testing.T) {
	_, err := GetPromptTemplate("does-not-exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown prompt template")
}

func TestRenderTemplate(t *testing.T) {
	rendered, err := RenderTemplate("File {{.FileName}} ({{.Language}}): {{.Code}}", TemplateData{
		FileName: "main.go",
		Language: "Go",
		Code:     "package main",
	})
	require.NoError(t, err)
	assert.Equal(t, "File main.go (Go): package main", rendered)
}

func TestRenderTemplate_ParseError(t *testing.T) {
	_, err := RenderTemplate("{{.Broken", TemplateData{})
	assert.Error(t, err)
}
