package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sentinelhq/sentinel/internal/analyzer"
	"github.com/sentinelhq/sentinel/internal/config"
	"github.com/sentinelhq/sentinel/internal/logging"
	"github.com/sentinelhq/sentinel/internal/publisher"
	"github.com/sentinelhq/sentinel/internal/reporter"
	"github.com/sentinelhq/sentinel/internal/scanner"
	"github.com/sentinelhq/sentinel/internal/ui"
)

var (
	cfgFile     string
	pushReports bool
	githubToken string
	verbose     bool
	maxFiles    int
	configErr   error
	rootCtx     = context.Background()

	rootCmd = &cobra.Command{
		Use:   "sentinel <project_path>",
		Short: "sentinel - Automated security and code quality analysis",
		Long: `sentinel scans a project directory for source files, reviews each file ` +
			`with an LLM, writes the findings to the issues/ directory, and can ` +
			`publish the reports to a dedicated branch on GitHub.

Examples:
  sentinel /path/to/project
  sentinel /path/to/project --push
  sentinel /path/to/project --push --github-token ghp_xxxxx
  sentinel /path/to/project --verbose --max-files 10`,
		Version: fmt.Sprintf("%s (built at %s)", Version, BuildTime),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if configErr != nil {
				return fmt.Errorf("configuration error: %w", configErr)
			}
			return runAnalysis(args[0])
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}
)

// Execute runs the root command with the process context.
func Execute() error {
	return rootCmd.ExecuteContext(rootCtx)
}

// SetContext sets the context used for command execution. Called from
// main so a SIGINT cancels in-flight work.
func SetContext(ctx context.Context) {
	rootCtx = ctx
}

// RootCmd exposes the root command for documentation generation.
func RootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Configuration file path (default is $HOME/.sentinel/config.yaml)")
	rootCmd.Flags().BoolVar(&pushReports, "push", false, "Push reports to GitHub after analysis")
	rootCmd.Flags().StringVar(&githubToken, "github-token", "",
		"GitHub personal access token (or set GITHUB_TOKEN env var)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose debug logging")
	rootCmd.Flags().IntVar(&maxFiles, "max-files", 0,
		"Maximum number of files to analyze, 0 for no limit (useful for testing)")
}

func initConfig() {
	configErr = config.InitConfig(cfgFile)
}

func runAnalysis(projectPath string) error {
	logger := logging.New(verbose)
	ctx := rootCtx

	scn, err := scanner.New(projectPath, logger)
	if err != nil {
		return err
	}

	files, err := scn.Scan()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		logger.Warn().Msg("no code files found to analyze")
		return nil
	}

	if maxFiles > 0 && len(files) > maxFiles {
		files = files[:maxFiles]
		logger.Info().Int("max_files", maxFiles).Msg("limiting analysis")
	}

	an, err := analyzer.New(config.GetConfig(), logger)
	if err != nil {
		return err
	}

	rep, err := reporter.New(scn.Root(), logger)
	if err != nil {
		return err
	}

	results, err := analyzeFiles(ctx, logger, scn, an, rep, files)
	if err != nil {
		return err
	}

	summary := analyzer.Summarize(results)
	if err := rep.WriteSummary(summary); err != nil {
		return err
	}
	logger.Info().Str("dir", rep.IssuesDir()).Msg("all reports generated")

	if pushReports {
		if err := publishReports(ctx, logger, scn.Root()); err != nil {
			return err
		}
	}

	logger.Info().
		Int("analyzed", summary.TotalFiles).
		Int("succeeded", summary.Succeeded).
		Int("failed", summary.Failed).
		Msg("analysis complete")
	return nil
}

// analyzeFiles runs each file through the analyzer and renderer.
// Per-file failures are recorded as error results and never abort the
// batch; only cancellation stops the loop.
func analyzeFiles(
	ctx context.Context,
	logger zerolog.Logger,
	scn *scanner.Scanner,
	an *analyzer.Analyzer,
	rep *reporter.Reporter,
	files []string,
) ([]analyzer.Result, error) {
	progress := ui.NewProgress()
	progress.Start()
	defer progress.Stop()

	results := make([]analyzer.Result, 0, len(files))
	for i, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := filepath.Base(file)
		progress.SetFile(i+1, len(files), name)
		logger.Info().Int("index", i+1).Int("total", len(files)).Str("file", name).Msg("processing")

		result := analyzeOne(ctx, an, file)
		results = append(results, result)

		if err := rep.WriteFileReport(result); err != nil {
			logger.Error().Err(err).Str("file", name).Msg("failed to write report")
		}
	}
	return results, nil
}

func analyzeOne(ctx context.Context, an *analyzer.Analyzer, file string) analyzer.Result {
	language := scanner.Language(file)

	content, err := scanner.Content(file)
	if err != nil {
		return analyzer.Result{
			FilePath: file,
			FileName: filepath.Base(file),
			Language: language,
			Status:   analyzer.StatusError,
			Analysis: fmt.Sprintf("Processing error: %v", err),
		}
	}

	return an.AnalyzeFile(ctx, file, content, language)
}

// publishReports pushes the issues/ directory to the reports branch.
// Failures leave the locally rendered reports in place.
func publishReports(ctx context.Context, logger zerolog.Logger, projectRoot string) error {
	logger.Info().Msg("pushing reports to github")

	pub, err := publisher.New(projectRoot, resolveGitHubToken(githubToken), logger)
	if err != nil {
		return fmt.Errorf("github push error: %w", err)
	}

	if err := pub.Publish(ctx); err != nil {
		logger.Info().Msg("reports are still available locally in the issues/ directory")
		return fmt.Errorf("failed to push reports to github: %w", err)
	}

	logger.Info().Str("branch", publisher.BranchName).Msg("reports successfully pushed to github")
	return nil
}

// resolveGitHubToken picks the credential token: flag first, then the
// saved configuration. The publisher itself falls back to the
// GITHUB_TOKEN environment variable when both are empty.
func resolveGitHubToken(flagToken string) string {
	if flagToken != "" {
		return flagToken
	}
	return config.GetConfig().GitHubToken
}
