package actions

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/nicholas-fedor/pgbranch/internal/config"
	"github.com/nicholas-fedor/pgbranch/pkg/names"
	"github.com/nicholas-fedor/pgbranch/pkg/types"
)

// Start starts the container for a feature.
//
// Starting an already running container is a no-op success. Returns whether a
// state change was made, and ErrNotFound when no container exists for the
// feature.
func Start(client types.Client, cfg *config.Config, feature string) (bool, error) {
	containerName, err := containerNameFor(cfg, feature)
	if err != nil {
		return false, err
	}

	clog := logrus.WithField("container", containerName)

	exists, err := client.ContainerExists(containerName)
	if err != nil {
		return false, err
	}

	if !exists {
		return false, fmt.Errorf("%w: %s", ErrNotFound, containerName)
	}

	running, err := client.IsContainerRunning(containerName)
	if err != nil {
		return false, err
	}

	if running {
		clog.Info("Container is already running")

		return false, nil
	}

	if err := client.StartContainer(containerName); err != nil {
		return false, err
	}

	clog.Info("Started container")

	return true, nil
}

// Stop stops the container for a feature.
//
// Stopping an already stopped container is a no-op success. Returns whether a
// state change was made, and ErrNotFound when no container exists for the
// feature.
func Stop(client types.Client, cfg *config.Config, feature string) (bool, error) {
	containerName, err := containerNameFor(cfg, feature)
	if err != nil {
		return false, err
	}

	clog := logrus.WithField("container", containerName)

	exists, err := client.ContainerExists(containerName)
	if err != nil {
		return false, err
	}

	if !exists {
		return false, fmt.Errorf("%w: %s", ErrNotFound, containerName)
	}

	running, err := client.IsContainerRunning(containerName)
	if err != nil {
		return false, err
	}

	if !running {
		clog.Info("Container is already stopped")

		return false, nil
	}

	if err := client.StopContainer(containerName, cfg.StopTimeout); err != nil {
		return false, err
	}

	clog.Info("Stopped container")

	return true, nil
}

// Remove removes the container for a feature, stopping it first when it is
// still running.
//
// The stop is best-effort: removal proceeds regardless, since containers are
// force-removed. Returns ErrNotFound when no container exists for the feature.
func Remove(client types.Client, cfg *config.Config, feature string) error {
	containerName, err := containerNameFor(cfg, feature)
	if err != nil {
		return err
	}

	clog := logrus.WithField("container", containerName)

	exists, err := client.ContainerExists(containerName)
	if err != nil {
		return err
	}

	if !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, containerName)
	}

	running, err := client.IsContainerRunning(containerName)
	if err != nil {
		return err
	}

	if running {
		if err := client.StopContainer(containerName, cfg.StopTimeout); err != nil {
			clog.WithError(err).Warn("Failed to stop container, proceeding with removal")
		}
	}

	if err := client.RemoveContainer(containerName, cfg.RemoveVolumes); err != nil {
		return err
	}

	clog.Info("Removed container")

	return nil
}

// containerNameFor derives the canonical container name from a raw feature
// name, rejecting names that normalize to an empty token.
func containerNameFor(cfg *config.Config, feature string) (string, error) {
	token := names.Normalize(feature)
	if token == "" {
		return "", fmt.Errorf("%w: %q", errEmptyFeature, feature)
	}

	return names.ContainerName(cfg.BaseName, token), nil
}
