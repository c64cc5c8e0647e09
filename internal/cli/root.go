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
	var err error
	cfg, err = DefaultConfig()
	if err != nil {
		cfg = &Config{ServerURL: "http://localhost:8080", Output: "text", TokenFile: defaultTokenFile()}
	}

	rootCmd := &cobra.Command{
		Use:   "chit",
		Short: "CLI client for the chit deduction game",
		Long: `chit talks to a chit game server's JSON API.

Create or join a match, start it as host, guess as the seeker, and follow
the match state live over the event stream.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err != nil {
				return err
			}
			if err := cfg.LoadToken(); err != nil {
				return err
			}
			client = NewClient(cfg.ServerURL, cfg.Token)
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: CHIT_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Token, "token", cfg.Token, "Player token (env: CHIT_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "Seat file path (env: CHIT_TOKEN_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json (env: CHIT_OUTPUT)")

	rootCmd.AddCommand(newMatchCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
