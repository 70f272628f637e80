package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	application "github.com/rocketscienceinc/tictactoe-board/internal"
	"github.com/rocketscienceinc/tictactoe-board/internal/config"
	"github.com/rocketscienceinc/tictactoe-board/internal/logger"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Host games over REST and WebSocket",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf := config.MustLoad(*configPath)

			if err := application.RunApp(logger.New(os.Stdout, conf.LogLevel), conf); err != nil {
				return fmt.Errorf("app run failed: %w", err)
			}

			return nil
		},
	}
}
