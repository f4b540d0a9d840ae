package command

// root.go defines the root command and the global flags

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"skillhub/cmd/cli/authentication"
)

var (
	apiURL string // API server URL
	token  string // overrides the stored token when set
)

var rootCmd = &cobra.Command{
	Use:   "skillhub",
	Short: "skillhub - command line client for the skillhub API",
	Long: `skillhub talks to a skillhub server. Use it to:
- mint an access token for write operations
- browse and edit organizations, products, skills and user stories
- watch realtime updates and send realtime commands

Use "skillhub [command] --help" to see the options of each command.`,
	SilenceUsage: true,
}

// Execute runs the CLI; called once from main
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", envOr("SKILLHUB_API", "http://localhost:8080"), "API server URL")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "bearer token (defaults to the stored one)")
}

// accessToken prefers --token, then the keyring; an empty result is allowed for read commands
func accessToken() string {
	if token != "" {
		return token
	}
	creds, err := authentication.GetTokens()
	if err != nil {
		return ""
	}
	return creds.AccessToken
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
