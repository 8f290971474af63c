package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nicholas-fedor/pgbranch/internal/actions"
	"github.com/nicholas-fedor/pgbranch/internal/formatting"
)

// init registers the list command with the root command.
func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all pgbranch database containers",
		Run:   runList,
		Args:  cobra.NoArgs,
	})
}

// runList prints a table of all containers managed by pgbranch.
func runList(cmd *cobra.Command, _ []string) {
	client, cfg := newClientAndConfig(cmd)

	instances, err := actions.List(client, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to list containers")
	}

	formatting.WriteInstances(cmd.OutOrStdout(), instances)
}
