// Package scanner discovers source files eligible for analysis.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/charmap"
)

// supportedExtensions maps recognized source extensions to language labels.
var supportedExtensions = map[string]string{
	".py":    "Python",
	".java":  "Java",
	".js":    "JavaScript",
	".ts":    "TypeScript",
	".jsx":   "JavaScript React",
	".tsx":   "TypeScript React",
	".go":    "Go",
	".rb":    "Ruby",
	".php":   "PHP",
	".cpp":   "C++",
	".c":     "C",
	".cs":    "C#",
	".swift": "Swift",
	".kt":    "Kotlin",
	".rs":    "Rust",
	".scala": "Scala",
}

// excludedDirs are build and dependency directories skipped during the walk.
var excludedDirs = map[string]struct{}{
	"node_modules": {},
	"__pycache__":  {},
	".git":         {},
	".venv":        {},
	"venv":         {},
	"env":          {},
	"build":        {},
	"dist":         {},
	".adk":         {},
	"target":       {},
	"bin":          {},
	"obj":          {},
	".next":        {},
	".cache":       {},
}

// Scanner walks a project tree and returns candidate source files.
type Scanner struct {
	root   string
	logger zerolog.Logger
}

// New validates the project path and builds a Scanner.
func New(projectPath string, logger zerolog.Logger) (*Scanner, error) {
	abs, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, fmt.Errorf("unable to resolve project path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("project directory not found: %s", projectPath)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", projectPath)
	}

	return &Scanner{root: abs, logger: logger}, nil
}

// Root returns the resolved project root.
func (s *Scanner) Root() string {
	return s.root
}

// Scan walks the project tree and returns paths of recognized source
// files, skipping excluded directories.
func (s *Scanner) Scan() ([]string, error) {
	s.logger.Info().Str("dir", s.root).Msg("scanning directory")

	var files []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if _, skip := excludedDirs[d.Name()]; skip && path != s.root {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := supportedExtensions[strings.ToLower(filepath.Ext(path))]; ok {
			files = append(files, path)
			s.logger.Debug().Str("file", path).Msg("found code file")
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	s.logger.Info().Int("count", len(files)).Msg("found code files")
	return files, nil
}

// Language returns the language label for a file path, or "Unknown".
func Language(path string) string {
	if lang, ok := supportedExtensions[strings.ToLower(filepath.Ext(path))]; ok {
		return lang
	}
	return "Unknown"
}

// Content reads a file as UTF-8, falling back to Latin-1 for files that
// do not decode cleanly.
func Content(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if utf8.Valid(data) {
		return string(data), nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("unable to decode %s: %w", path, err)
	}
	return string(decoded), nil
}
