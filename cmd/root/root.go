// Package root contains the root command for the application.
package root

import (
	"github.com/spf13/cobra"

	"finwatch/upi-audit/internal/config"
	"finwatch/upi-audit/internal/logging"
)

var (
	// Cfg is the resolved configuration, available to subcommands after
	// PersistentPreRun.
	Cfg *config.Config

	// Log is the shared logger instance for commands.
	Log = logging.GetLogger()

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "upi-audit",
		Short: "Extract sender identities from bank narrations and flag proxy payments.",
		Long: `upi-audit parses the free-text narration column of bank statement exports
(UPI / NEFT / RTGS / IMPS), derives a stable identifier for the paying party,
and flags identifiers that paid more than one distinct recipient.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to upi-audit!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Configuration error: %v", err)
			}
			Cfg = cfg

			Log = logging.NewLogrusAdapterFromLogger(config.ConfigureLogging(cfg))
			logging.SetDefaultLogger(Log)
		},
	}
)
