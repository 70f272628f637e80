package cli

import (
	"os"

	"github.com/spf13/cobra"
)

const defaultConfigPath = "config.yml"

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "tictactoe",
		Short: "Tic-tac-toe on an N×N board",
		Long: `tictactoe plays hot-seat tic-tac-toe on an N×N board.

"play" runs a game in the terminal, "serve" hosts games over REST and WebSocket.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "Path to config.yml")

	rootCmd.AddCommand(newPlayCmd(&configPath))
	rootCmd.AddCommand(newServeCmd(&configPath))

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
