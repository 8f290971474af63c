package runtime

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/sirupsen/logrus"

	dockerContainerType "github.com/docker/docker/api/types/container"
	dockerClient "github.com/docker/docker/client"

	"github.com/nicholas-fedor/pgbranch/pkg/types"
)

const (
	// postgresPort is the port PostgreSQL listens on inside the container.
	postgresPort = "5432"
	// stateRunning is the container state reported for running containers.
	stateRunning = "running"
	// statePollInterval is the delay between container state inspections.
	statePollInterval = 500 * time.Millisecond
	// removalTimeout bounds how long to wait for a removed container to disappear.
	removalTimeout = 30 * time.Second
)

// ContainerExists reports whether a container with the given name exists.
//
// Parameters:
//   - name: Container name to check.
//
// Returns:
//   - bool: True if the container exists, running or not.
//   - error: Non-nil if inspection fails for reasons other than absence.
func (c *client) ContainerExists(name string) (bool, error) {
	_, err := c.api.ContainerInspect(context.Background(), name)
	if err != nil {
		if dockerClient.IsErrNotFound(err) {
			return false, nil
		}

		return false, fmt.Errorf("%w: %w", errInspectContainerFailed, err)
	}

	return true, nil
}

// IsContainerRunning reports whether the named container is currently running.
// A missing container is reported as not running.
//
// Parameters:
//   - name: Container name to check.
//
// Returns:
//   - bool: True if the container exists and is running.
//   - error: Non-nil if inspection fails for reasons other than absence.
func (c *client) IsContainerRunning(name string) (bool, error) {
	containerInfo, err := c.api.ContainerInspect(context.Background(), name)
	if err != nil {
		if dockerClient.IsErrNotFound(err) {
			return false, nil
		}

		return false, fmt.Errorf("%w: %w", errInspectContainerFailed, err)
	}

	return containerInfo.State != nil && containerInfo.State.Running, nil
}

// CreateAndStartContainer creates and starts a database container from the
// given spec.
//
// The container publishes the spec's host port to PostgreSQL's port and
// receives its database identity through container environment variables,
// keeping credentials out of host-visible command lines. On a start failure
// the created container is left in place for the caller to roll back.
//
// Parameters:
//   - spec: Description of the container to create.
//
// Returns:
//   - types.ContainerID: ID of the created container.
//   - error: Non-nil if creation or start fails.
func (c *client) CreateAndStartContainer(spec types.InstanceSpec) (types.ContainerID, error) {
	ctx := context.Background()
	clog := logrus.WithFields(logrus.Fields{
		"container": spec.Name,
		"image":     spec.Image,
		"port":      spec.Port,
	})

	natPort, err := nat.NewPort("tcp", postgresPort)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errCreateContainerFailed, err)
	}

	config := &dockerContainerType.Config{
		Image: spec.Image,
		Env: []string{
			"POSTGRES_DB=" + spec.Database,
			"POSTGRES_USER=" + spec.User,
			"POSTGRES_PASSWORD=" + spec.Password,
		},
		ExposedPorts: nat.PortSet{natPort: struct{}{}},
		Labels:       managedLabels(spec),
	}

	hostConfig := &dockerContainerType.HostConfig{
		PortBindings: nat.PortMap{
			natPort: []nat.PortBinding{{HostPort: strconv.Itoa(spec.Port)}},
		},
	}

	clog.Debug("Creating container")

	createdContainer, err := c.api.ContainerCreate(ctx, config, hostConfig, nil, nil, spec.Name)
	if err != nil {
		clog.WithError(err).Debug("Failed to create container")

		return "", fmt.Errorf("%w: %w", errCreateContainerFailed, err)
	}

	createdID := types.ContainerID(createdContainer.ID)
	clog.WithField("id", createdID.ShortID()).Debug("Created container")

	if err := c.api.ContainerStart(ctx, createdContainer.ID, dockerContainerType.StartOptions{}); err != nil {
		clog.WithError(err).Debug("Failed to start container")

		return createdID, fmt.Errorf("%w: %w", errStartContainerFailed, err)
	}

	clog.Debug("Started container")

	return createdID, nil
}

// StartContainer starts an existing, stopped container by name.
//
// Parameters:
//   - name: Container name to start.
//
// Returns:
//   - error: Non-nil if the start fails.
func (c *client) StartContainer(name string) error {
	if err := c.api.ContainerStart(context.Background(), name, dockerContainerType.StartOptions{}); err != nil {
		return fmt.Errorf("%w: %w", errStartContainerFailed, err)
	}

	return nil
}

// StopContainer stops a running container, giving it up to timeout to shut
// down before the daemon kills it.
//
// Parameters:
//   - name: Container name to stop.
//   - timeout: Graceful shutdown window.
//
// Returns:
//   - error: Non-nil if the stop fails, nil when the container is stopped or absent.
func (c *client) StopContainer(name string, timeout time.Duration) error {
	ctx := context.Background()
	clog := logrus.WithField("container", name)

	seconds := int(timeout.Seconds())

	clog.WithField("timeout", timeout).Debug("Stopping container")

	err := c.api.ContainerStop(ctx, name, dockerContainerType.StopOptions{Timeout: &seconds})
	if err != nil {
		if dockerClient.IsErrNotFound(err) {
			return nil
		}

		clog.WithError(err).Debug("Failed to stop container")

		return fmt.Errorf("%w: %w", errStopContainerFailed, err)
	}

	// Wait for the container to stop.
	stopped, err := c.waitForStopOrTimeout(name, timeout)
	if err != nil {
		return err
	}

	if !stopped {
		clog.WithField("timeout", timeout).Warn("Container did not stop within timeout")
	}

	return nil
}

// RemoveContainer force-removes a container by name, optionally deleting its
// anonymous volumes, and waits until it is gone.
//
// Parameters:
//   - name: Container name to remove.
//   - removeVolumes: Whether to remove anonymous volumes.
//
// Returns:
//   - error: Non-nil if removal fails or the container lingers, nil when gone or already absent.
func (c *client) RemoveContainer(name string, removeVolumes bool) error {
	ctx := context.Background()
	clog := logrus.WithField("container", name)

	clog.WithField("remove_volumes", removeVolumes).Debug("Removing container")

	err := c.api.ContainerRemove(ctx, name, dockerContainerType.RemoveOptions{
		Force:         true,
		RemoveVolumes: removeVolumes,
	})
	if err != nil {
		if dockerClient.IsErrNotFound(err) {
			return nil // Container already gone.
		}

		clog.WithError(err).Debug("Failed to remove container")

		return fmt.Errorf("%w: %w", errRemoveContainerFailed, err)
	}

	// Confirm removal completed.
	gone, err := c.waitForGoneOrTimeout(name, removalTimeout)
	if err != nil {
		return err
	}

	if !gone {
		clog.Debug("Container not removed within timeout")

		return fmt.Errorf("%w: %s", errContainerNotRemoved, name)
	}

	clog.Debug("Confirmed container removal")

	return nil
}

// waitForStopOrTimeout polls the container state until it stops or the wait
// time elapses.
//
// Parameters:
//   - name: Container name to watch.
//   - waitTime: Maximum duration to wait.
//
// Returns:
//   - bool: True once the container is stopped or gone, false on timeout.
//   - error: Non-nil if inspection fails.
func (c *client) waitForStopOrTimeout(name string, waitTime time.Duration) (bool, error) {
	ctx := context.Background()
	timeout := time.After(waitTime)

	for {
		select {
		case <-timeout:
			return false, nil // Timeout reached, still running.
		default:
			containerInfo, err := c.api.ContainerInspect(ctx, name)
			if err != nil {
				if dockerClient.IsErrNotFound(err) {
					return true, nil // Container gone, treat as stopped.
				}

				return false, fmt.Errorf("%w: %w", errInspectContainerFailed, err)
			}

			if containerInfo.State == nil || !containerInfo.State.Running {
				return true, nil // Container stopped.
			}
		}
		time.Sleep(statePollInterval)
	}
}

// waitForGoneOrTimeout polls until the container no longer exists or the wait
// time elapses.
//
// Parameters:
//   - name: Container name to watch.
//   - waitTime: Maximum duration to wait.
//
// Returns:
//   - bool: True once the container is gone, false on timeout.
//   - error: Non-nil if inspection fails.
func (c *client) waitForGoneOrTimeout(name string, waitTime time.Duration) (bool, error) {
	ctx := context.Background()
	timeout := time.After(waitTime)

	for {
		select {
		case <-timeout:
			return false, nil
		default:
			if _, err := c.api.ContainerInspect(ctx, name); err != nil {
				if dockerClient.IsErrNotFound(err) {
					return true, nil
				}

				return false, fmt.Errorf("%w: %w", errInspectContainerFailed, err)
			}
		}
		time.Sleep(statePollInterval)
	}
}
