package command

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"skillhub/cmd/cli/authentication"
	"skillhub/internal/config"
	"skillhub/internal/microservices/http-api/service"
)

// tokens are signed locally with JWT_SECRET, the same secret the server verifies with
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint and store an access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		scopes, _ := cmd.Flags().GetStringSlice("scopes")
		role, _ := cmd.Flags().GetString("role")
		printOnly, _ := cmd.Flags().GetBool("print")

		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		if cfg.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is not set")
		}

		accessToken, err := service.NewAuthService(cfg).IssueToken(subject, role, scopes)
		if err != nil {
			return fmt.Errorf("failed to issue token: %w", err)
		}

		if printOnly {
			fmt.Println(accessToken)
			return nil
		}

		err = authentication.StoreTokens(&authentication.StoredCredentials{
			AccessToken: accessToken,
			Subject:     subject,
			Scopes:      scopes,
			ExpiresAt:   time.Now().Add(cfg.AccessTokenTTL).Unix(),
		})
		if err != nil {
			return fmt.Errorf("failed to store token: %w", err)
		}
		color.Green("✓ Token stored for %s (expires in %s)", subject, cfg.AccessTokenTTL)
		return nil
	},
}

var tokenShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := authentication.GetTokens()
		if err != nil {
			return fmt.Errorf("no token stored, run 'skillhub token'")
		}
		fmt.Printf("Subject: %s\nScopes:  %v\n", creds.Subject, creds.Scopes)
		if creds.Expired(time.Now()) {
			color.Red("Expired at %s", time.Unix(creds.ExpiresAt, 0).Format(time.RFC3339))
		} else {
			fmt.Printf("Expires: %s\n", time.Unix(creds.ExpiresAt, 0).Format(time.RFC3339))
		}
		fmt.Println(creds.AccessToken)
		return nil
	},
}

var tokenClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := authentication.DeleteTokens(); err != nil {
			return err
		}
		fmt.Println("✓ Token removed.")
		return nil
	},
}

func init() {
	tokenCmd.Flags().String("subject", "cli", "token subject")
	tokenCmd.Flags().StringSlice("scopes", []string{"write:*"}, "granted scopes, e.g. write:organizations")
	tokenCmd.Flags().String("role", "", "optional role claim")
	tokenCmd.Flags().Bool("print", false, "print the token instead of storing it")

	tokenCmd.AddCommand(tokenShowCmd, tokenClearCmd)
	rootCmd.AddCommand(tokenCmd)
}
