// Package reporter renders analysis results as markdown files under
// the issues/ directory of the project root.
package reporter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sentinelhq/sentinel/internal/analyzer"
)

// DirName is the report directory created under the project root. The
// publisher stages this directory as-is.
const DirName = "issues"

const summaryFileName = "SUMMARY.md"

// Reporter writes per-file and summary reports.
type Reporter struct {
	issuesDir string
	logger    zerolog.Logger
}

// New creates the issues directory under the project root.
func New(projectRoot string, logger zerolog.Logger) (*Reporter, error) {
	issuesDir := filepath.Join(projectRoot, DirName)
	if err := os.MkdirAll(issuesDir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create reports directory: %w", err)
	}
	return &Reporter{issuesDir: issuesDir, logger: logger}, nil
}

// IssuesDir returns the absolute report directory path.
func (r *Reporter) IssuesDir() string {
	return r.issuesDir
}

// WriteFileReport renders one file's findings to
// issues/<name>_report.md.
func (r *Reporter) WriteFileReport(result analyzer.Result) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# Analysis Report: %s\n\n", result.FileName)
	fmt.Fprintf(&b, "- **File**: `%s`\n", result.FilePath)
	fmt.Fprintf(&b, "- **Language**: %s\n", result.Language)
	fmt.Fprintf(&b, "- **Status**: %s\n\n", result.Status)
	b.WriteString("## Findings\n\n")
	b.WriteString(result.Analysis)
	b.WriteString("\n")

	path := filepath.Join(r.issuesDir, reportFileName(result.FileName))
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("unable to write report for %s: %w", result.FileName, err)
	}

	r.logger.Debug().Str("report", path).Msg("wrote file report")
	return nil
}

// WriteSummary renders the batch summary to issues/SUMMARY.md.
func (r *Reporter) WriteSummary(summary analyzer.Summary) error {
	var b strings.Builder
	b.WriteString("# Sentinel Analysis Summary\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", summary.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "- **Files Analyzed**: %d\n", summary.TotalFiles)
	fmt.Fprintf(&b, "- **Successful**: %d\n", summary.Succeeded)
	fmt.Fprintf(&b, "- **Failed**: %d\n\n", summary.Failed)

	b.WriteString("## Files\n\n")
	b.WriteString("| File | Language | Status |\n")
	b.WriteString("|------|----------|--------|\n")
	for _, result := range summary.Results {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", result.FileName, result.Language, result.Status)
	}

	path := filepath.Join(r.issuesDir, summaryFileName)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("unable to write summary report: %w", err)
	}

	r.logger.Debug().Str("report", path).Msg("wrote summary report")
	return nil
}

// reportFileName maps a source file name to its report name, e.g.
// main.go -> main_go_report.md. Keeping the extension in the name
// avoids collisions between files like app.py and app.js.
func reportFileName(fileName string) string {
	sanitized := strings.ReplaceAll(fileName, ".", "_")
	return sanitized + "_report.md"
}
