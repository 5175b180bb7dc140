package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sentinelhq/sentinel/internal/config"
)

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage sentinel configuration",
		Long:  `Manage sentinel configuration, including the LLM model, API credentials, and the GitHub token.`,
	}

	configSetCmd = &cobra.Command{
		Use:   "set",
		Short: "Set a configuration value",
	}

	configSetModelCmd = &cobra.Command{
		Use:   "model [model name]",
		Short: "Set the LLM model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model := args[0]
			if !config.IsValidModel(model) {
				return fmt.Errorf("invalid model: %s", model)
			}
			if err := setAndSave("model", model); err != nil {
				return err
			}

			fmt.Printf("Model set to: %s\n", model)
			fmt.Println("Hint: any model name works, suggested models are:")
			for _, m := range config.GetSuggestedModels() {
				fmt.Printf("- %s\n", m)
			}
			return nil
		},
	}

	configSetAPIKeyCmd = &cobra.Command{
		Use:   "apikey [API key]",
		Short: "Set the LLM API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setAndSave("api_key", args[0]); err != nil {
				return err
			}
			fmt.Println("API key set")
			return nil
		},
	}

	configSetAPIBaseCmd = &cobra.Command{
		Use:   "apibase [API base URL]",
		Short: "Set the LLM API base URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setAndSave("api_base", args[0]); err != nil {
				return err
			}
			fmt.Println("API base URL set to:", args[0])
			fmt.Println("Hint: used for API proxies, leave empty if not needed")
			return nil
		},
	}

	configSetGitHubTokenCmd = &cobra.Command{
		Use:   "github-token [token]",
		Short: "Set the GitHub personal access token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setAndSave("github_token", args[0]); err != nil {
				return err
			}
			fmt.Println("GitHub token set")
			return nil
		},
	}

	configSetPromptTemplateCmd = &cobra.Command{
		Use:   "prompt-template [name or path]",
		Short: "Set the analysis prompt template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setAndSave("prompt_template", args[0]); err != nil {
				return err
			}
			fmt.Println("Prompt template set to:", args[0])
			return nil
		},
	}

	configGetCmd = &cobra.Command{
		Use:   "get",
		Short: "Show the current configuration",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.GetConfig()
			fmt.Println("Current configuration:")
			fmt.Printf("Model: %s\n", cfg.Model)
			fmt.Printf("Prompt template: %s\n", cfg.PromptTemplate)
			fmt.Println("API key:", maskSecret(cfg.APIKey))
			if cfg.APIBase != "" {
				fmt.Printf("API base URL: %s\n", cfg.APIBase)
			} else {
				fmt.Println("API base URL: <not set>")
			}
			fmt.Println("GitHub token:", maskSecret(cfg.GitHubToken))
		},
	}
)

func init() {
	configSetCmd.AddCommand(configSetModelCmd)
	configSetCmd.AddCommand(configSetAPIKeyCmd)
	configSetCmd.AddCommand(configSetAPIBaseCmd)
	configSetCmd.AddCommand(configSetGitHubTokenCmd)
	configSetCmd.AddCommand(configSetPromptTemplateCmd)

	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)

	rootCmd.AddCommand(configCmd)
}

func setAndSave(key, value string) error {
	viper.Set(key, value)
	if err := config.SaveConfig(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

func maskSecret(value string) string {
	if value == "" {
		return "<not set>"
	}
	return "********"
}
