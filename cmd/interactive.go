package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/briandowns/spinner"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nicholas-fedor/pgbranch/internal/actions"
	"github.com/nicholas-fedor/pgbranch/internal/config"
	"github.com/nicholas-fedor/pgbranch/internal/formatting"
	"github.com/nicholas-fedor/pgbranch/internal/logging"
	"github.com/nicholas-fedor/pgbranch/internal/meta"
	"github.com/nicholas-fedor/pgbranch/internal/prompt"
	"github.com/nicholas-fedor/pgbranch/pkg/git"
	"github.com/nicholas-fedor/pgbranch/pkg/types"
)

// maxPort is the highest valid TCP port number.
const maxPort = 65535

// errInvalidPortAnswer indicates a prompt answer that is not a valid TCP port.
var errInvalidPortAnswer = errors.New("not a valid port number")

// menuOptions lists the actions offered by the interactive menu, in display order.
var menuOptions = []string{
	"Create a new database container",
	"Start a container",
	"Stop a container",
	"Remove a container",
	"List containers",
	"Quit",
}

// runInteractive runs the menu loop entered when no subcommand is given.
//
// Errors from dispatched operations are reported and control returns to the
// menu. The loop ends on Quit or when the input stream closes.
func runInteractive(cmd *cobra.Command, _ []string) {
	client, cfg := newClientAndConfig(cmd)

	logging.WriteStartupMessage(cmd, client, meta.Version)

	prompter := prompt.New(cmd.InOrStdin(), cmd.ErrOrStderr())

	for {
		choice, err := prompter.Select("Choose an action", menuOptions, 0)
		if err != nil {
			if errors.Is(err, prompt.ErrInputClosed) {
				return
			}

			logrus.WithError(err).Error("Invalid selection")

			continue
		}

		switch choice {
		case 0:
			interactiveCreate(cmd, prompter, client, cfg)
		case 1:
			interactiveStart(prompter, client, cfg)
		case 2:
			interactiveStop(prompter, client, cfg)
		case 3:
			interactiveRemove(prompter, client, cfg)
		case 4:
			interactiveList(cmd, client, cfg)
		default:
			return
		}
	}
}

// interactiveFeature asks for the feature name, defaulting to the current git
// branch when one is available.
func interactiveFeature(prompter *prompt.Prompter) (string, error) {
	branch, err := git.CurrentBranch(".")
	if err != nil {
		branch = ""
	}

	return prompter.String(prompt.Config{
		Message:  "Feature name",
		Default:  branch,
		Required: true,
	})
}

// interactiveCreate collects provisioning inputs and creates a database
// container with a progress spinner.
//
// Prompts for the database suffix, user, and password are skipped when the
// value was already supplied through a flag or environment variable.
func interactiveCreate(cmd *cobra.Command, prompter *prompt.Prompter, client types.Client, cfg *config.Config) {
	feature, err := interactiveFeature(prompter)
	if err != nil {
		logrus.WithError(err).Error("Cannot determine feature name")

		return
	}

	dumpPath, err := prompter.String(prompt.Config{
		Message:  "Dump file",
		Default:  cfg.DumpPath,
		Required: true,
	})
	if err != nil {
		logrus.WithError(err).Error("Cannot determine dump file")

		return
	}

	portAnswer, err := prompter.String(prompt.Config{
		Message:   "Host port",
		Default:   strconv.Itoa(cfg.Port),
		Validator: validatePort,
	})
	if err != nil {
		logrus.WithError(err).Error("Cannot determine host port")

		return
	}

	port, err := strconv.Atoi(portAnswer)
	if err != nil {
		logrus.WithError(err).Error("Cannot determine host port")

		return
	}

	flagsSet := cmd.Root().PersistentFlags()

	suffix := cfg.DBSuffix
	if !valueSupplied(flagsSet, "db-suffix", "PGBRANCH_DB_SUFFIX") {
		suffix, err = prompter.String(prompt.Config{
			Message: "Database name suffix (empty for none)",
			Default: cfg.DBSuffix,
		})
		if err != nil {
			logrus.WithError(err).Error("Cannot determine database suffix")

			return
		}
	}

	user := cfg.DBUser
	if !valueSupplied(flagsSet, "db-user", "PGBRANCH_DB_USER") {
		user, err = prompter.String(prompt.Config{
			Message:  "Database user",
			Default:  cfg.DBUser,
			Required: true,
		})
		if err != nil {
			logrus.WithError(err).Error("Cannot determine database user")

			return
		}
	}

	password := cfg.DBPassword
	if !valueSupplied(flagsSet, "db-password", "PGBRANCH_DB_PASSWORD") {
		password, err = prompter.String(prompt.Config{
			Message: "Database password",
			Default: cfg.DBPassword,
		})
		if err != nil {
			logrus.WithError(err).Error("Cannot determine database password")

			return
		}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Provisioning database container..."
	s.Start()

	result, err := actions.Create(client, cfg, types.CreateOptions{
		Feature:  feature,
		DumpPath: dumpPath,
		Port:     port,
		DBSuffix: suffix,
		User:     user,
		Password: password,
	})
	s.Stop()

	if err != nil {
		logrus.WithError(err).Error("Failed to create database container")

		return
	}

	logrus.WithFields(logrus.Fields{
		"container": result.ContainerName,
		"database":  result.Database,
		"port":      result.Port,
	}).Info("Database container is ready")
}

// interactiveStart starts the container for a prompted feature name.
func interactiveStart(prompter *prompt.Prompter, client types.Client, cfg *config.Config) {
	feature, err := interactiveFeature(prompter)
	if err != nil {
		logrus.WithError(err).Error("Cannot determine feature name")

		return
	}

	if _, err := actions.Start(client, cfg, feature); err != nil {
		logrus.WithError(err).Error("Failed to start container")
	}
}

// interactiveStop stops the container for a prompted feature name.
func interactiveStop(prompter *prompt.Prompter, client types.Client, cfg *config.Config) {
	feature, err := interactiveFeature(prompter)
	if err != nil {
		logrus.WithError(err).Error("Cannot determine feature name")

		return
	}

	if _, err := actions.Stop(client, cfg, feature); err != nil {
		logrus.WithError(err).Error("Failed to stop container")
	}
}

// interactiveRemove removes the container for a prompted feature name after
// an explicit confirmation.
func interactiveRemove(prompter *prompt.Prompter, client types.Client, cfg *config.Config) {
	feature, err := interactiveFeature(prompter)
	if err != nil {
		logrus.WithError(err).Error("Cannot determine feature name")

		return
	}

	confirmed, err := prompter.Confirm("Remove the container and its data?", false)
	if err != nil {
		logrus.WithError(err).Error("Failed to read confirmation")

		return
	}

	if !confirmed {
		return
	}

	if err := actions.Remove(client, cfg, feature); err != nil {
		logrus.WithError(err).Error("Failed to remove container")
	}
}

// interactiveList prints the table of managed containers.
func interactiveList(cmd *cobra.Command, client types.Client, cfg *config.Config) {
	instances, err := actions.List(client, cfg)
	if err != nil {
		logrus.WithError(err).Error("Failed to list containers")

		return
	}

	formatting.WriteInstances(cmd.OutOrStdout(), instances)
}

// validatePort checks that a prompt answer parses as a TCP port number.
func validatePort(answer string) error {
	port, err := strconv.Atoi(answer)
	if err != nil || port < 1 || port > maxPort {
		return fmt.Errorf("%w: %s", errInvalidPortAnswer, answer)
	}

	return nil
}
