package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nicholas-fedor/pgbranch/internal/actions"
)

// init registers the stop command with the root command.
func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "stop [FEATURE]",
		Short: "Stop a running database container",
		Run:   runStop,
		Args:  cobra.MaximumNArgs(1),
	})
}

// runStop stops the container belonging to the given feature.
func runStop(cmd *cobra.Command, args []string) {
	client, cfg := newClientAndConfig(cmd)

	feature, err := resolveFeature(args)
	if err != nil {
		logrus.WithError(err).Fatal("Cannot determine feature name")
	}

	if _, err := actions.Stop(client, cfg, feature); err != nil {
		logrus.WithError(err).Fatal("Failed to stop container")
	}
}
