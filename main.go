package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/wfunc/quizserver/config"
	"github.com/wfunc/quizserver/logger"
	"github.com/wfunc/quizserver/monitor"
	"github.com/wfunc/quizserver/server"
)

func main() {
	cobra.CheckErr(newRootCmd().Execute())
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		debug      bool
	)

	cmd := &cobra.Command{
		Use:           "quizserver",
		Short:         "Realtime session server for the connectives quiz game",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Initialize logger
			logger.Init(debug)
			defer logger.Sync()

			// Load configuration
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			// Metrics endpoint on its own listener
			mon := monitor.NewMonitor("quizserver")
			mon.StartServer(cfg.Server.MonitorAddress)

			// Initialize Game Server
			gameServer, err := server.NewGameServer(cfg, mon)
			if err != nil {
				return fmt.Errorf("failed to create game server: %w", err)
			}

			logger.Log.Infof("Starting quiz server on %s", cfg.Server.HTTPAddress)
			return gameServer.Start()
		},
	}

	fs := cmd.Flags()
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})
	fs.StringVarP(&configPath, "config", "c", ".", "directory to search for config.yaml (env: QUIZSERVER_*)")
	fs.BoolVar(&debug, "debug", false, "enable debug logging")

	return cmd
}
