package cmd

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionDefaults(t *testing.T) {
	assert.Equal(t, "dev", Version)
	assert.Equal(t, "unknown", BuildTime)
}

func TestRootCommandFlags(t *testing.T) {
	flags := rootCmd.Flags()

	for _, name := range []string{"push", "github-token", "verbose", "max-files"} {
		assert.NotNil(t, flags.Lookup(name), "missing flag %s", name)
	}
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
}

func TestRootCommand_RequiresProjectPath(t *testing.T) {
	err := rootCmd.Args(rootCmd, []string{})
	require.Error(t, err)

	err = rootCmd.Args(rootCmd, []string{"/some/path"})
	assert.NoError(t, err)

	err = rootCmd.Args(rootCmd, []string{"/a", "/b"})
	assert.Error(t, err)
}

func TestSubcommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, expected := range []string{"config", "completion", "version"} {
		assert.True(t, names[expected], "missing subcommand %s", expected)
	}
}

func TestRootCmdAccessor(t *testing.T) {
	assert.Same(t, rootCmd, RootCmd())
}

func TestResolveGitHubToken(t *testing.T) {
	t.Run("flag wins over config", func(t *testing.T) {
		viper.Reset()
		viper.Set("github_token", "ghp_config")

		assert.Equal(t, "ghp_flag", resolveGitHubToken("ghp_flag"))
	})

	t.Run("saved config token is used without flag", func(t *testing.T) {
		viper.Reset()
		viper.Set("github_token", "ghp_config")

		assert.Equal(t, "ghp_config", resolveGitHubToken(""))
	})

	t.Run("empty when neither is set", func(t *testing.T) {
		viper.Reset()

		assert.Equal(t, "", resolveGitHubToken(""))
	})
}
