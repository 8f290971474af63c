// Package cmd contains the command-line interface definitions and execution logic for pgbranch.
// It defines the root command, its lifecycle subcommands, and the interactive
// menu, wiring flag parsing, logging setup, and runtime client creation.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nicholas-fedor/pgbranch/internal/config"
	"github.com/nicholas-fedor/pgbranch/internal/flags"
	"github.com/nicholas-fedor/pgbranch/internal/meta"
	"github.com/nicholas-fedor/pgbranch/pkg/git"
	"github.com/nicholas-fedor/pgbranch/pkg/runtime"
	"github.com/nicholas-fedor/pgbranch/pkg/types"
)

// errNoFeature indicates that no feature name was given on the command line
// and none could be derived from the current git branch.
var errNoFeature = errors.New("no feature name given and no git branch available")

// rootCmd represents the root command for the pgbranch CLI, serving as the entry point for execution.
var rootCmd = NewRootCommand()

// NewRootCommand creates and configures the root command for the pgbranch CLI.
//
// Running it without a subcommand enters the interactive menu.
//
// Returns:
//   - *cobra.Command: A pointer to the fully configured root command, ready for flag registration and execution.
func NewRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pgbranch",
		Short: "Manages per-feature PostgreSQL development containers",
		Long: "\npgbranch provisions, starts, stops, removes, and lists local PostgreSQL\n" +
			"containers for feature-branch development, each seeded from a SQL dump.\n" +
			"More information available at https://github.com/nicholas-fedor/pgbranch/.",
		Run:              runInteractive,
		PersistentPreRun: preRun,
		Args:             cobra.NoArgs,
		Version:          meta.Version,
	}
}

// init registers command-line flags for the root command during package
// initialization. Subcommands register themselves in their own files.
func init() {
	flags.SetDefaults()
	flags.RegisterDockerFlags(rootCmd)
	flags.RegisterSystemFlags(rootCmd)
	flags.RegisterDatabaseFlags(rootCmd)
}

// Execute runs the root command and manages any errors encountered during its execution.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Fatal("Failed to execute root command")
	}
}

// preRun prepares logging, secrets, and the Docker environment before any
// command logic executes.
//
// Flags live on the root command, so the root's persistent flag set is used
// regardless of which subcommand triggered the hook.
func preRun(cmd *cobra.Command, _ []string) {
	root := cmd.Root()
	flagsSet := root.PersistentFlags()
	flags.ProcessFlagAliases(flagsSet)

	if err := flags.SetupLogging(flagsSet); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize logging")
	}

	flags.GetSecretsFromFiles(root)

	if err := flags.EnvConfig(root); err != nil {
		logrus.WithError(err).Fatal("Failed to configure Docker environment")
	}
}

// newClientAndConfig resolves the effective configuration and connects to the
// container runtime, terminating the process when either step fails.
func newClientAndConfig(cmd *cobra.Command) (types.Client, *config.Config) {
	cfg, err := config.FromCommand(cmd)
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}

	client, err := runtime.NewClient(runtime.ClientOptions{})
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to container runtime")
	}

	return client, cfg
}

// resolveFeature returns the feature name from the positional arguments,
// falling back to the current git branch when no argument was given.
func resolveFeature(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}

	branch, err := git.CurrentBranch(".")
	if err != nil {
		return "", fmt.Errorf("%w: %w", errNoFeature, err)
	}

	logrus.WithField("branch", branch).Info("Using current git branch as feature name")

	return branch, nil
}

// valueSupplied reports whether a flag value was supplied externally, either
// on the command line or through its environment variable.
func valueSupplied(flagsSet *pflag.FlagSet, name string, envKey string) bool {
	if flag := flagsSet.Lookup(name); flag != nil && flag.Changed {
		return true
	}

	return os.Getenv(envKey) != ""
}
