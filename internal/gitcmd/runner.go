// Package gitcmd executes git commands against a single working tree.
package gitcmd

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// Result is the outcome of one git invocation. Command failure is
// represented as data rather than an error so callers can branch on it
// without unwinding control flow.
type Result struct {
	Succeeded bool
	Output    string
}

// Runner runs git commands with Dir as the working directory.
type Runner struct {
	Dir    string
	Logger zerolog.Logger
}

// Run executes `git args...` and captures stdout/stderr. On success
// Output holds trimmed stdout; on a nonzero exit it holds trimmed
// stderr and the failing command is logged at error level. A canceled
// context surfaces as a failed Result like any other failure.
func (r Runner) Run(ctx context.Context, args ...string) Result {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.Logger.Debug().Str("command", "git "+strings.Join(args, " ")).Msg("running git command")

	if err := cmd.Run(); err != nil {
		output := strings.TrimSpace(stderr.String())
		r.Logger.Error().
			Str("command", "git "+strings.Join(args, " ")).
			Str("stderr", output).
			Msg("git command failed")
		return Result{Succeeded: false, Output: output}
	}

	return Result{Succeeded: true, Output: strings.TrimSpace(stdout.String())}
}
