package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nicholas-fedor/pgbranch/internal/actions"
)

// init registers the remove command with the root command.
func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "remove [FEATURE]",
		Short: "Remove a database container and its data",
		Long: "Removes the container belonging to the feature, stopping it first when it is\n" +
			"running. The data volume is removed along with it unless --remove-volumes=false.",
		Run:  runRemove,
		Args: cobra.MaximumNArgs(1),
	})
}

// runRemove removes the container belonging to the given feature.
func runRemove(cmd *cobra.Command, args []string) {
	client, cfg := newClientAndConfig(cmd)

	feature, err := resolveFeature(args)
	if err != nil {
		logrus.WithError(err).Fatal("Cannot determine feature name")
	}

	if err := actions.Remove(client, cfg, feature); err != nil {
		logrus.WithError(err).Fatal("Failed to remove container")
	}
}
