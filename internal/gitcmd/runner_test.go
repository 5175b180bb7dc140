package gitcmd

import (
	"context"
	"os/exec"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
}

func TestRun_Success(t *testing.T) {
	requireGit(t)

	runner := Runner{Dir: t.TempDir(), Logger: zerolog.Nop()}
	result := runner.Run(context.Background(), "--version")

	require.True(t, result.Succeeded)
	assert.Contains(t, result.Output, "git version")
}

func TestRun_FailureCapturesStderr(t *testing.T) {
	requireGit(t)

	runner := Runner{Dir: t.TempDir(), Logger: zerolog.Nop()}
	result := runner.Run(context.Background(), "rev-parse", "--abbrev-ref", "HEAD")

	// The temp dir is not a repository, so the command must fail with
	// a Result, not an error.
	require.False(t, result.Succeeded)
	assert.NotEmpty(t, result.Output)
}

func TestRun_CanceledContext(t *testing.T) {
	requireGit(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := Runner{Dir: t.TempDir(), Logger: zerolog.Nop()}
	result := runner.Run(ctx, "--version")

	assert.False(t, result.Succeeded)
}
