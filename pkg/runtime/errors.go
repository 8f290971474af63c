package runtime

import (
	"errors"
)

// Errors for client construction in client.go.
var (
	// ErrRuntimeUnavailable indicates the container runtime could not be reached.
	ErrRuntimeUnavailable = errors.New("container runtime unavailable")
	// errCreateClientFailed indicates a failure to initialize the Docker API client.
	errCreateClientFailed = errors.New("failed to initialize container runtime client")
)

// Errors for container lifecycle operations in lifecycle.go.
var (
	// errInspectContainerFailed indicates a failure to inspect a container's details.
	errInspectContainerFailed = errors.New("failed to inspect container")
	// errCreateContainerFailed indicates a failure to create a new container.
	errCreateContainerFailed = errors.New("failed to create container")
	// errStartContainerFailed indicates a failure to start a container.
	errStartContainerFailed = errors.New("failed to start container")
	// errStopContainerFailed indicates a failure to stop a container.
	errStopContainerFailed = errors.New("failed to stop container")
	// errRemoveContainerFailed indicates a failure to remove a container from the host.
	errRemoveContainerFailed = errors.New("failed to remove container")
	// errContainerNotRemoved indicates a container was still present after the removal timeout.
	errContainerNotRemoved = errors.New("container not removed after timeout")
	// errListContainersFailed indicates a failure to list containers from the host.
	errListContainersFailed = errors.New("failed to list containers")
)

// Errors for command execution and readiness polling in exec.go.
var (
	// ErrStartupTimeout indicates the database did not accept connections within the polling budget.
	ErrStartupTimeout = errors.New("database did not become ready in time")
	// errContainerExited indicates the container stopped while waiting for the database.
	errContainerExited = errors.New("container exited before the database became ready")
	// errCreateExecFailed indicates a failure to create an exec instance in a container.
	errCreateExecFailed = errors.New("failed to create exec instance")
	// errAttachExecFailed indicates a failure to attach to an exec instance for output capture.
	errAttachExecFailed = errors.New("failed to attach to exec instance")
	// errReadExecOutputFailed indicates a failure to read output from an exec instance.
	errReadExecOutputFailed = errors.New("failed to read exec output")
	// errInspectExecFailed indicates a failure to inspect an exec instance's status.
	errInspectExecFailed = errors.New("failed to inspect exec instance")
	// errCommandFailed indicates a command executed in a container failed with a non-zero exit code.
	errCommandFailed = errors.New("command execution failed")
)

// Errors for file transfer operations in copy.go.
var (
	// errOpenSourceFailed indicates a failure to open the host file to copy.
	errOpenSourceFailed = errors.New("failed to open source file")
	// errCopyToContainerFailed indicates a failure to copy a file into a container.
	errCopyToContainerFailed = errors.New("failed to copy file into container")
)

// Errors for image operations in image.go.
var (
	// errInspectImageFailed indicates a failure to inspect an image on the Docker host.
	errInspectImageFailed = errors.New("failed to inspect image")
	// errPullImageFailed indicates a failure to pull an image from the registry.
	errPullImageFailed = errors.New("failed to pull image")
	// errReadPullResponseFailed indicates a failure to read the pull response stream.
	errReadPullResponseFailed = errors.New("failed to read pull response")
)

// Errors for registry authentication operations in registry.go.
var (
	// errUnsetRegAuthVars indicates registry auth environment variables (REPO_USER, REPO_PASS) are not set.
	errUnsetRegAuthVars = errors.New(
		"registry auth environment variables (REPO_USER, REPO_PASS) not set",
	)
	// errFailedGetRegistryAddress indicates a failure to extract the registry address from an image reference.
	errFailedGetRegistryAddress = errors.New("failed to get registry address")
	// errFailedLoadDockerConfig indicates a failure to load the Docker configuration file.
	errFailedLoadDockerConfig = errors.New("failed to load Docker config")
	// errFailedMarshalAuthConfig indicates a failure to marshal the auth config to JSON.
	errFailedMarshalAuthConfig = errors.New("failed to marshal auth config to JSON")
	// errFailedGetAuth indicates a failure to retrieve authentication credentials for an image.
	errFailedGetAuth = errors.New("failed to get authentication credentials")
)
