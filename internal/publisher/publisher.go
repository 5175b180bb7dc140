// Package publisher commits and pushes generated reports to a dedicated
// branch on the origin remote.
//
// The checked-out branch of the working tree is a shared resource: one
// publication attempt captures the original branch up front and every
// exit path after the branch switch routes through an explicit restore
// step, so the tree always ends up back where it started.
package publisher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sentinelhq/sentinel/internal/gitcmd"
)

const (
	// BranchName is the fixed branch that holds generated reports.
	BranchName = "sentinel-reports"

	// ReportsDir is the project subdirectory staged for publication.
	ReportsDir = "issues"

	remoteName        = "origin"
	fallbackBranch    = "main"
	githubHTTPSPrefix = "https://github.com/"
	timestampLayout   = "2006-01-02 15:04:05"
)

var (
	// ErrNotGitRepo is returned when the project path is not under git.
	ErrNotGitRepo = errors.New("directory is not a git repository")

	// ErrAuthFailed is returned when the remote rejects the push for
	// missing or invalid credentials.
	ErrAuthFailed = errors.New("github authentication failed")
)

// authFailureMarkers are matched case-insensitively against push stderr
// to distinguish credential problems from generic push failures.
var authFailureMarkers = []string{
	"authentication failed",
	"could not read password",
	"could not read username",
	"invalid username or password",
	"permission denied",
}

// gitRunner abstracts command execution for testability.
type gitRunner interface {
	Run(ctx context.Context, args ...string) gitcmd.Result
}

// Publisher runs one publication attempt against a working tree.
type Publisher struct {
	projectPath string
	token       string
	git         gitRunner
	logger      zerolog.Logger
	now         func() time.Time
}

// New validates the project path and builds a Publisher. The token
// falls back to the GITHUB_TOKEN environment variable when empty.
// Validation failures are configuration errors: no git command has run
// yet and no repository state has been touched.
func New(projectPath, token string, logger zerolog.Logger) (*Publisher, error) {
	info, err := os.Stat(projectPath)
	if err != nil {
		return nil, fmt.Errorf("project directory not found: %s", projectPath)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project path is not a directory: %s", projectPath)
	}

	gitDir, err := os.Stat(filepath.Join(projectPath, ".git"))
	if err != nil || !gitDir.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotGitRepo, projectPath)
	}

	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}

	return &Publisher{
		projectPath: projectPath,
		token:       token,
		git:         gitcmd.Runner{Dir: projectPath, Logger: logger},
		logger:      logger,
		now:         time.Now,
	}, nil
}

// Publish stages, commits, and pushes the reports directory to the
// publication branch, then switches back to the original branch.
//
// Rollback contract: the original branch is captured before any branch
// mutation. A failed checkout aborts without rollback (nothing was
// mutated). Any failure after the publication branch is checked out,
// staging included, restores the original branch before returning. The
// no-changes outcome also restores the original branch and reports
// success. Restore failures are logged but never override the verdict.
func (p *Publisher) Publish(ctx context.Context) error {
	p.logger.Info().Msg("starting github push process")

	p.configureAuth(ctx)

	original := p.currentBranch(ctx)
	p.logger.Info().Str("branch", original).Msg("current branch")

	if p.branchExists(ctx, BranchName) {
		p.logger.Info().Str("branch", BranchName).Msg("switching to existing branch")
		if res := p.git.Run(ctx, "checkout", BranchName); !res.Succeeded {
			return fmt.Errorf("failed to checkout branch %s", BranchName)
		}
	} else {
		p.logger.Info().Str("branch", BranchName).Msg("creating new branch")
		if res := p.git.Run(ctx, "checkout", "-b", BranchName); !res.Succeeded {
			return fmt.Errorf("failed to create branch %s", BranchName)
		}
	}

	// The tree is now on the publication branch; every path below must
	// restore the original branch. An interrupt counts as a failure.
	if err := ctx.Err(); err != nil {
		p.restore(original)
		return err
	}

	p.logger.Info().Msg("staging report files")
	if res := p.git.Run(ctx, "add", ReportsDir+"/"); !res.Succeeded {
		p.restore(original)
		return errors.New("failed to stage report files")
	}

	status := p.git.Run(ctx, "status", "--porcelain")
	if status.Succeeded && status.Output == "" {
		p.logger.Info().Msg("no changes to commit")
		p.restore(original)
		return nil
	}

	message := fmt.Sprintf("Sentinel Analysis Report - %s", p.now().Format(timestampLayout))
	p.logger.Info().Str("message", message).Msg("committing changes")
	if res := p.git.Run(ctx, "commit", "-m", message); !res.Succeeded {
		p.restore(original)
		return errors.New("failed to commit changes")
	}

	p.logger.Info().Str("branch", BranchName).Msg("pushing to remote")
	if res := p.git.Run(ctx, "push", "-u", remoteName, BranchName); !res.Succeeded {
		p.restore(original)
		if isAuthFailure(res.Output) {
			return fmt.Errorf("%w: set the GITHUB_TOKEN environment variable or pass --github-token", ErrAuthFailed)
		}
		return errors.New("failed to push to github")
	}

	p.restore(original)
	p.logger.Info().Str("branch", original).Msg("successfully pushed reports, switched back")
	return nil
}

// configureAuth rewrites the origin remote URL to embed the token as an
// inline credential. Best effort: without a token, or when the remote
// is not the unauthenticated HTTPS github form, nothing happens. The
// rewrite is repository-local config and is intentionally not rolled
// back.
func (p *Publisher) configureAuth(ctx context.Context) {
	if p.token == "" {
		return
	}

	p.logger.Info().Msg("configuring git authentication with github token")

	res := p.git.Run(ctx, "remote", "get-url", remoteName)
	if !res.Succeeded || res.Output == "" {
		return
	}
	if !strings.HasPrefix(res.Output, githubHTTPSPrefix) {
		return
	}

	repoPath := strings.TrimPrefix(res.Output, githubHTTPSPrefix)
	authenticated := fmt.Sprintf("https://%s@github.com/%s", p.token, repoPath)
	p.git.Run(ctx, "remote", "set-url", remoteName, authenticated)
}

// currentBranch returns the checked-out branch, falling back to "main"
// on failure. The value is only used as a rollback target, so any
// reasonable branch beats aborting the attempt.
func (p *Publisher) currentBranch(ctx context.Context) string {
	res := p.git.Run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if !res.Succeeded || res.Output == "" {
		return fallbackBranch
	}
	return res.Output
}

// branchExists reports whether the branch resolves locally. Command
// failure is treated as "does not exist".
func (p *Publisher) branchExists(ctx context.Context, name string) bool {
	return p.git.Run(ctx, "rev-parse", "--verify", name).Succeeded
}

// restore switches back to the original branch. It runs on a fresh
// context so the rollback still happens after the run context is
// canceled.
func (p *Publisher) restore(branch string) {
	if res := p.git.Run(context.Background(), "checkout", branch); !res.Succeeded {
		p.logger.Error().Str("branch", branch).Msg("failed to restore original branch")
	}
}

func isAuthFailure(output string) bool {
	lower := strings.ToLower(output)
	for _, marker := range authFailureMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
