package command

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"skillhub/cmd/cli/command/client"
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Print realtime messages until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		conn, err := client.Dial(ctx, apiURL, accessToken())
		if err != nil {
			return err
		}
		defer conn.Close()

		color.Green("✓ Connected, press Ctrl+C to stop")
		return client.Listen(ctx, conn)
	},
}

var sendCmd = &cobra.Command{
	Use:   "send [type] [action]",
	Short: "Send one realtime command and print the reply",
	Example: `  skillhub send user create --id 42 --payload '{"name":"Ann"}'
  skillhub send organization delete --id 1f0c...
  skillhub send ping ping`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("id")
		payload, _ := cmd.Flags().GetString("payload")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		if id == "" {
			id = uuid.NewString()
		}
		if payload != "" && !json.Valid([]byte(payload)) {
			return fmt.Errorf("payload is not valid JSON")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()
		conn, err := client.Dial(ctx, apiURL, accessToken())
		if err != nil {
			return err
		}
		defer conn.Close()

		reply, err := client.Request(conn, args[0], id, args[1], json.RawMessage(payload), timeout)
		if err != nil {
			return fmt.Errorf("no reply: %w", err)
		}
		raw, _ := json.Marshal(reply)
		client.PrintMessage(raw)
		return nil
	},
}

func init() {
	sendCmd.Flags().String("id", "", "envelope id (generated when empty)")
	sendCmd.Flags().String("payload", "", "JSON payload")
	sendCmd.Flags().Duration("timeout", 5*time.Second, "how long to wait for the reply")

	rootCmd.AddCommand(listenCmd, sendCmd)
}
