package types

import (
	"time"
)

// Client defines the interface for interacting with the container runtime within pgbranch.
//
// It provides the container, image, and command operations the provisioning
// workflow needs, abstracting the underlying Docker client so actions can be
// tested against mocks.
type Client interface {
	// ContainerExists reports whether a container with the given name exists,
	// running or not.
	ContainerExists(name string) (bool, error)

	// IsContainerRunning reports whether the named container exists and is
	// currently running. A missing container is reported as not running.
	IsContainerRunning(name string) (bool, error)

	// CreateAndStartContainer creates the container described by spec and
	// starts it.
	//
	// Returns the new container's ID. On a start failure the created
	// container is left in place for the caller to roll back.
	CreateAndStartContainer(spec InstanceSpec) (ContainerID, error)

	// StartContainer starts an existing, stopped container by name.
	StartContainer(name string) error

	// StopContainer stops a running container, giving it up to timeout to
	// shut down before it is killed.
	StopContainer(name string, timeout time.Duration) error

	// RemoveContainer force-removes a container by name, optionally deleting
	// its anonymous volumes. Removing an absent container is not an error.
	RemoveContainer(name string, removeVolumes bool) error

	// ExecuteCommand runs a command inside a running container and waits for
	// it to finish.
	//
	// The env entries are added to the command's environment only; they never
	// appear in any host-visible command line. Returns the captured output,
	// and a non-nil error for non-zero exit codes.
	ExecuteCommand(name string, command []string, env []string) (string, error)

	// CopyFileToContainer copies a file from the host into the container at
	// the given absolute path.
	CopyFileToContainer(hostPath, name, containerPath string) error

	// WaitForDatabaseReady polls the database inside the container until it
	// accepts connections, checking at most tries times with the given
	// interval between attempts.
	WaitForDatabaseReady(name, user, database string, tries int, interval time.Duration) error

	// EnsureImage makes the image available locally, pulling it from the
	// registry when missing.
	EnsureImage(imageName string) error

	// ListInstances returns the managed database containers whose names carry
	// the given prefix, sorted by name.
	ListInstances(prefix string) ([]Instance, error)

	// GetVersion returns the client's API version.
	GetVersion() string
}
