package reporter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinelhq/sentinel/internal/analyzer"
)

func TestNew_CreatesIssuesDir(t *testing.T) {
	root := t.TempDir()

	r, err := New(root, zerolog.Nop())
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(root, DirName))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, filepath.Join(root, DirName), r.IssuesDir())
}

func TestWriteFileReport(t *testing.T) {
	r, err := New(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	result := analyzer.Result{
		FilePath: "/project/src/app.py",
		FileName: "app.py",
		Language: "Python",
		Status:   analyzer.StatusSuccess,
		Analysis: "No issues found. Good use of parameterized queries.",
	}
	require.NoError(t, r.WriteFileReport(result))

	data, err := os.ReadFile(filepath.Join(r.IssuesDir(), "app_py_report.md"))
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "# Analysis Report: app.py")
	assert.Contains(t, content, "**Language**: Python")
	assert.Contains(t, content, "**Status**: success")
	assert.Contains(t, content, "No issues found. Good use of parameterized queries.")
}

func TestWriteFileReport_NameAvoidsCollisions(t *testing.T) {
	r, err := New(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, r.WriteFileReport(analyzer.Result{FileName: "app.py", Analysis: "python"}))
	require.NoError(t, r.WriteFileReport(analyzer.Result{FileName: "app.js", Analysis: "javascript"}))

	entries, err := os.ReadDir(r.IssuesDir())
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestWriteSummary(t *testing.T) {
	r, err := New(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	summary := analyzer.Summary{
		TotalFiles:  2,
		Succeeded:   1,
		Failed:      1,
		GeneratedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Results: []analyzer.Result{
			{FileName: "a.go", Language: "Go", Status: analyzer.StatusSuccess},
			{FileName: "b.py", Language: "Python", Status: analyzer.StatusError},
		},
	}
	require.NoError(t, r.WriteSummary(summary))

	data, err := os.ReadFile(filepath.Join(r.IssuesDir(), "SUMMARY.md"))
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "# Sentinel Analysis Summary")
	assert.Contains(t, content, "Generated: 2024-01-15 10:30:00")
	assert.Contains(t, content, "**Files Analyzed**: 2")
	assert.Contains(t, content, "| a.go | Go | success |")
	assert.Contains(t, content, "| b.py | Python | error |")
}

func TestReportFileName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"main.go", "main_go_report.md"},
		{"app.py", "app_py_report.md"},
		{"widget.test.tsx", "widget_test_tsx_report.md"},
		{"Makefile", "Makefile_report.md"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, reportFileName(tt.input))
		})
	}
}
