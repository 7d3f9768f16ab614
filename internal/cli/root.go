package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "accounts",
		Short: "CLI tool for the accounts API",
		Long: `accounts is a CLI tool for interacting with the accounts JSON API.

It supports account signup and profile updates, session login and lookup,
and phone record management. Every call carries the gateway token and
application key configured via flags or environment.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load session token from file if not provided via flag/env
			if err := cfg.LoadSession(); err != nil {
				return err
			}

			// Create HTTP client
			client = NewClient(cfg.ServerURL, cfg.GatewayToken, cfg.AppKey, cfg.SessionID)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: ACCOUNTS_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.GatewayToken, "gateway-token", cfg.GatewayToken, "Gateway token (env: ACCOUNTS_GATEWAY_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&cfg.AppKey, "app-key", cfg.AppKey, "Application key (env: ACCOUNTS_APP_KEY)")
	rootCmd.PersistentFlags().StringVar(&cfg.SessionID, "session", cfg.SessionID, "Session token (env: ACCOUNTS_SESSION)")
	rootCmd.PersistentFlags().StringVar(&cfg.SessionFile, "session-file", cfg.SessionFile, "Session file path (env: ACCOUNTS_SESSION_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newSignupCmd())
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newAccountCmd())
	rootCmd.AddCommand(newPhoneCmd())
	rootCmd.AddCommand(newSessionCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
