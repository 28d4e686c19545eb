// Package ztimerctl implements the CLI commands for ztimerctl.
package ztimerctl

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"ztimer-go/logging"
)

// Version information set at build time.
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// Global flags.
var (
	globalLogFormat string
	globalDebug     bool
	globalBackend   string
)

// rootCmd is the base command for ztimerctl.
var rootCmd = &cobra.Command{
	Use:   "ztimerctl",
	Short: "Inspect and exercise the ztimer hierarchical timer scheduler",
	Long: `ztimerctl drives a ztimer.Device from the command line.

It can replay the scheduler's core scenarios against a mock backend
(simulate), or arm real timers against a live clock backend from
keypresses (watch).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalLogFormat, "log-format", "text", "set the format for log output (text or json)")
	rootCmd.PersistentFlags().BoolVar(&globalDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&globalBackend, "backend", "auto", "clock backend to use for watch: auto, unixhr, softclock")
}

func setupLogging() {
	logLevel := slog.LevelInfo
	if globalDebug {
		logLevel = slog.LevelDebug
	}

	logger := logging.NewLogger(logging.Config{
		Level:  logLevel,
		Format: globalLogFormat,
		Output: os.Stderr,
	})
	logging.SetDefault(logger)
}
