package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// Flags
	debug bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locofilter",
		Short: "Copy a date-range subset of a location-history backup",
		Long: `locofilter creates a filtered copy of a personal-location-history
backup containing only the timeline items, locomotion samples and
referenced places that fall within a date range. The output tree
mirrors the source layout, so the result is itself a valid backup.

Both supported backup layouts are detected automatically.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
	}

	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")

	cmd.AddCommand(
		newFilterCmd(),
		newDetectCmd(),
	)

	return cmd
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}
