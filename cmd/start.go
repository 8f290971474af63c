package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nicholas-fedor/pgbranch/internal/actions"
)

// init registers the start command with the root command.
func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "start [FEATURE]",
		Short: "Start a stopped database container",
		Run:   runStart,
		Args:  cobra.MaximumNArgs(1),
	})
}

// runStart starts the container belonging to the given feature.
func runStart(cmd *cobra.Command, args []string) {
	client, cfg := newClientAndConfig(cmd)

	feature, err := resolveFeature(args)
	if err != nil {
		logrus.WithError(err).Fatal("Cannot determine feature name")
	}

	if _, err := actions.Start(client, cfg, feature); err != nil {
		logrus.WithError(err).Fatal("Failed to start container")
	}
}
