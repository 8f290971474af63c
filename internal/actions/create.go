package actions

import (
	"fmt"
	"path"

	"github.com/sirupsen/logrus"

	"github.com/nicholas-fedor/pgbranch/internal/config"
	"github.com/nicholas-fedor/pgbranch/pkg/dump"
	"github.com/nicholas-fedor/pgbranch/pkg/names"
	"github.com/nicholas-fedor/pgbranch/pkg/ports"
	"github.com/nicholas-fedor/pgbranch/pkg/types"
)

// containerDumpDir is the directory dumps are staged in inside a container.
const containerDumpDir = "/tmp"

// Create provisions a database container for a feature and restores the
// configured dump into it.
//
// The feature name is normalized into the canonical token the container and
// database names derive from. All validation (name collision, dump signature,
// port availability) happens before any runtime state is touched. Once the
// container exists, any failure up to and including the restore rolls it back
// so no orphaned container is left behind.
//
// Parameters:
//   - client: Container runtime client.
//   - cfg: Resolved configuration.
//   - opts: Per-invocation options; empty fields fall back to cfg values.
//
// Returns:
//   - *types.CreateResult: Name, ID, database, and port of the new container.
//   - error: Non-nil if validation, provisioning, or the restore fails.
func Create(
	client types.Client,
	cfg *config.Config,
	opts types.CreateOptions,
) (*types.CreateResult, error) {
	feature := names.Normalize(opts.Feature)
	if feature == "" {
		return nil, fmt.Errorf("%w: %q", errEmptyFeature, opts.Feature)
	}

	containerName := names.ContainerName(cfg.BaseName, feature)
	clog := logrus.WithFields(logrus.Fields{
		"container": containerName,
		"feature":   feature,
	})

	exists, err := client.ContainerExists(containerName)
	if err != nil {
		return nil, err
	}

	if exists {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyExists, containerName)
	}

	dumpPath := opts.DumpPath
	if dumpPath == "" {
		dumpPath = cfg.DumpPath
	}

	if _, err := dump.Detect(dumpPath); err != nil {
		return nil, err
	}

	port, err := ports.Select(opts.Port, cfg.Port)
	if err != nil {
		return nil, err
	}

	database := names.DatabaseName(cfg.BaseDatabase, opts.DBSuffix)

	user := opts.User
	if user == "" {
		user = cfg.DBUser
	}

	password := opts.Password
	if password == "" {
		password = cfg.DBPassword
	}

	clog.WithFields(logrus.Fields{
		"database": database,
		"port":     port,
	}).Debug("Provisioning database container")

	if err := client.EnsureImage(cfg.Image); err != nil {
		return nil, err
	}

	containerID, err := client.CreateAndStartContainer(types.InstanceSpec{
		Name:     containerName,
		Image:    cfg.Image,
		Feature:  feature,
		Database: database,
		User:     user,
		Password: password,
		Port:     port,
	})
	if err != nil {
		// A start failure can leave the container behind in created state.
		rollback(client, cfg, containerName)

		return nil, err
	}

	if err := client.WaitForDatabaseReady(
		containerName, user, database, cfg.StartupTries, cfg.StartupInterval,
	); err != nil {
		rollback(client, cfg, containerName)

		return nil, err
	}

	if err := restoreDump(client, cfg, containerName, dumpPath, database, user, password); err != nil {
		rollback(client, cfg, containerName)

		return nil, fmt.Errorf("%w: %w", ErrRestoreFailed, err)
	}

	clog.WithFields(logrus.Fields{
		"database": database,
		"port":     port,
	}).Info("Created database container")

	return &types.CreateResult{
		ContainerID:   containerID,
		ContainerName: containerName,
		Database:      database,
		Port:          port,
	}, nil
}

// restoreDump copies the dump into the container, executes it against the
// target database, and applies the post-restore metadata fix.
//
// The superuser password travels in the exec environment as PGPASSWORD, never
// on a command line. Deleting the staged dump afterwards is best-effort.
func restoreDump(
	client types.Client,
	cfg *config.Config,
	containerName string,
	dumpPath string,
	database string,
	user string,
	password string,
) error {
	containerPath := path.Join(containerDumpDir, containerName+".sql")
	clog := logrus.WithFields(logrus.Fields{
		"container": containerName,
		"database":  database,
	})

	clog.WithField("dump", dumpPath).Debug("Copying dump into container")

	if err := client.CopyFileToContainer(dumpPath, containerName, containerPath); err != nil {
		return err
	}

	env := []string{"PGPASSWORD=" + password}

	clog.Info("Restoring dump")

	if _, err := client.ExecuteCommand(containerName, []string{
		"psql", "-v", "ON_ERROR_STOP=1", "-U", user, "-d", database, "-f", containerPath,
	}, env); err != nil {
		return err
	}

	if cfg.MetadataTable != "" {
		// Both identifiers are validated against the normalized charset, so
		// assembling the statement from them is safe.
		statement := fmt.Sprintf(
			"UPDATE %s SET database = '%s' WHERE database IS NOT NULL",
			cfg.MetadataTable,
			database,
		)

		clog.WithField("table", cfg.MetadataTable).Debug("Rewriting metadata table")

		if _, err := client.ExecuteCommand(containerName, []string{
			"psql", "-v", "ON_ERROR_STOP=1", "-U", user, "-d", database, "-c", statement,
		}, env); err != nil {
			return err
		}
	}

	if _, err := client.ExecuteCommand(
		containerName, []string{"rm", "-f", containerPath}, nil,
	); err != nil {
		clog.WithError(err).Warn("Failed to delete staged dump from container")
	}

	return nil
}

// rollback stops and removes a partially created container.
//
// Failures are logged, never escalated: the caller's original error is the
// one that must propagate.
func rollback(client types.Client, cfg *config.Config, containerName string) {
	clog := logrus.WithField("container", containerName)

	clog.Info("Rolling back partially created container")

	if err := client.StopContainer(containerName, cfg.StopTimeout); err != nil {
		clog.WithError(err).Debug("Failed to stop container during rollback")
	}

	if err := client.RemoveContainer(containerName, cfg.RemoveVolumes); err != nil {
		clog.WithError(err).Warn("Failed to remove container during rollback")
	}
}
