// Package config loads and persists the sentinel configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Model          string `mapstructure:"model"`
	APIKey         string `mapstructure:"api_key"`
	APIBase        string `mapstructure:"api_base"`
	GitHubToken    string `mapstructure:"github_token"`
	PromptTemplate string `mapstructure:"prompt_template"`
}

const (
	DefaultModel          = "gpt-4o-mini"
	DefaultConfigDir      = ".sentinel"
	DefaultConfigName     = "config"
	DefaultPromptTemplate = "default"
	EnvPrefix             = "SENTINEL"
)

var suggestedModels = []string{
	"gpt-4o-mini",
	"gpt-4o",
	"gpt-4-turbo",
	"gpt-3.5-turbo",
}

// InitConfig initializes viper with the config file, defaults, and
// environment bindings. A missing config file is not an error.
func InitConfig(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("unable to find home directory: %w", err)
		}

		viper.AddConfigPath(filepath.Join(home, DefaultConfigDir))
		viper.SetConfigName(DefaultConfigName)
		viper.SetConfigType("yaml")
	}

	viper.SetDefault("model", DefaultModel)
	viper.SetDefault("api_key", "")
	viper.SetDefault("api_base", "")
	viper.SetDefault("github_token", "")
	viper.SetDefault("prompt_template", DefaultPromptTemplate)

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok || os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("unable to read config file: %w", err)
	}
	return nil
}

// GetConfig returns the current configuration.
func GetConfig() *Config {
	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return &Config{
			Model:          DefaultModel,
			PromptTemplate: DefaultPromptTemplate,
		}
	}
	return cfg
}

// SaveConfig writes the current configuration back to disk, creating
// the config file on first use.
func SaveConfig() error {
	if err := viper.WriteConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}

		home, herr := os.UserHomeDir()
		if herr != nil {
			return fmt.Errorf("unable to find home directory: %w", herr)
		}
		configDir := filepath.Join(home, DefaultConfigDir)
		if merr := os.MkdirAll(configDir, 0o755); merr != nil {
			return fmt.Errorf("unable to create config directory: %w", merr)
		}
		return viper.WriteConfigAs(filepath.Join(configDir, DefaultConfigName+".yaml"))
	}
	return nil
}

// GetSuggestedModels returns the suggested model list. Any non-empty
// model name is accepted.
func GetSuggestedModels() []string {
	return suggestedModels
}

// IsValidModel reports whether the model name is usable.
func IsValidModel(model string) bool {
	return model != ""
}
