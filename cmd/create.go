package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nicholas-fedor/pgbranch/internal/actions"
	"github.com/nicholas-fedor/pgbranch/pkg/types"
)

// init registers the create command with the root command.
func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "create [FEATURE]",
		Short: "Create a database container for a feature, seeded from the dump",
		Long: "Creates a PostgreSQL container named after the feature, waits for it to accept\n" +
			"connections, and restores the configured SQL dump into it.\n" +
			"Without FEATURE, the current git branch name is used.",
		Run:  runCreate,
		Args: cobra.MaximumNArgs(1),
	})
}

// runCreate provisions a database container for the given feature and reports
// the resulting connection details.
func runCreate(cmd *cobra.Command, args []string) {
	client, cfg := newClientAndConfig(cmd)

	feature, err := resolveFeature(args)
	if err != nil {
		logrus.WithError(err).Fatal("Cannot determine feature name")
	}

	result, err := actions.Create(client, cfg, types.CreateOptions{
		Feature:  feature,
		DumpPath: cfg.DumpPath,
		Port:     cfg.Port,
		DBSuffix: cfg.DBSuffix,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
	})
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create database container")
	}

	logrus.WithFields(logrus.Fields{
		"container": result.ContainerName,
		"database":  result.Database,
		"port":      result.Port,
	}).Info("Database container is ready")
}
