// Package ui provides terminal progress feedback.
package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
)

// Progress wraps briandowns/spinner with TTY awareness. On a non-TTY
// (CI, pipes) it is a no-op.
type Progress struct {
	s       *spinner.Spinner
	enabled bool
}

// NewProgress creates a progress spinner that only displays on a TTY.
func NewProgress() *Progress {
	enabled := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	if !enabled {
		return &Progress{enabled: false}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	return &Progress{s: s, enabled: true}
}

// Start begins the spinner animation.
func (p *Progress) Start() {
	if p.enabled && p.s != nil {
		p.s.Start()
	}
}

// Stop ends the spinner animation.
func (p *Progress) Stop() {
	if p.enabled && p.s != nil {
		p.s.Stop()
	}
}

// SetFile updates the spinner with the file currently being analyzed.
func (p *Progress) SetFile(index, total int, name string) {
	if p.enabled && p.s != nil {
		p.s.Suffix = fmt.Sprintf(" [%d/%d] %s", index, total, name)
	}
}
