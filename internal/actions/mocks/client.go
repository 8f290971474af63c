// Package mocks provides mock implementations for testing pgbranch components.
package mocks

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nicholas-fedor/pgbranch/pkg/runtime"
	"github.com/nicholas-fedor/pgbranch/pkg/types"
)

// errMockCommandFailed is a static error indicating a simulated command exited
// with a non-zero code.
var errMockCommandFailed = errors.New("command exited with non-zero code")

// errMockCopyFailed is a static error indicating a simulated file copy failure.
var errMockCopyFailed = errors.New("copy into container failed")

// ContainerState describes one simulated container held by TestData.
type ContainerState struct {
	ID      types.ContainerID // Container ID reported to callers.
	Running bool              // Whether the container is currently running.
	State   string            // Runtime state string, e.g. "running" or "exited".
	Ports   string            // Port bindings reported by ListInstances.
}

// ExecCall records one ExecuteCommand invocation.
type ExecCall struct {
	Container string   // Container the command ran in.
	Command   []string // Argument vector.
	Env       []string // Extra environment entries.
}

// CopyCall records one CopyFileToContainer invocation.
type CopyCall struct {
	HostPath      string // Source file on the host.
	Container     string // Destination container.
	ContainerPath string // Destination path inside the container.
}

// TestData holds configuration data and recorded calls for MockClient's test
// behavior. Containers is keyed by container name.
type TestData struct {
	Containers     map[string]*ContainerState // Simulated containers by name.
	CreateCalls    []types.InstanceSpec       // Recorded CreateAndStartContainer specs.
	StartCalls     []string                   // Recorded StartContainer names.
	StopCalls      []string                   // Recorded StopContainer names.
	RemoveCalls    []string                   // Recorded RemoveContainer names.
	ExecCalls      []ExecCall                 // Recorded ExecuteCommand invocations.
	CopyCalls      []CopyCall                 // Recorded CopyFileToContainer invocations.
	PulledImages   []string                   // Recorded EnsureImage references.
	FailCreate     bool                       // Fail CreateAndStartContainer, leaving the container behind stopped.
	FailReady      bool                       // Fail WaitForDatabaseReady with a startup timeout.
	FailCopy       bool                       // Fail CopyFileToContainer.
	FailingCommand string                     // Command whose execution fails, matched on the first argument.
}

// CreateMockClient constructs a new MockClient instance for testing.
// It initializes the container map so TestData literals can omit it.
func CreateMockClient(data *TestData) MockClient {
	if data.Containers == nil {
		data.Containers = make(map[string]*ContainerState)
	}

	return MockClient{TestData: data}
}

// MockClient is a mock implementation of the runtime client for testing.
// It simulates container operations with configurable behavior defined by
// TestData, recording every mutating call for assertions.
type MockClient struct {
	TestData *TestData
}

// ContainerExists reports whether a simulated container with the given name exists.
func (client MockClient) ContainerExists(name string) (bool, error) {
	_, ok := client.TestData.Containers[name]

	return ok, nil
}

// IsContainerRunning reports whether a simulated container exists and is running.
func (client MockClient) IsContainerRunning(name string) (bool, error) {
	state, ok := client.TestData.Containers[name]

	return ok && state.Running, nil
}

// CreateAndStartContainer records the spec and materializes the simulated
// container. With FailCreate set, the container is left behind in created
// state and an error is returned, mimicking a start failure.
func (client MockClient) CreateAndStartContainer(spec types.InstanceSpec) (types.ContainerID, error) {
	client.TestData.CreateCalls = append(client.TestData.CreateCalls, spec)

	id := types.ContainerID("id_" + spec.Name)

	if client.TestData.FailCreate {
		client.TestData.Containers[spec.Name] = &ContainerState{ID: id, State: "created"}

		return id, errMockCommandFailed
	}

	client.TestData.Containers[spec.Name] = &ContainerState{
		ID:      id,
		Running: true,
		State:   "running",
		Ports:   fmt.Sprintf("0.0.0.0:%d->5432/tcp", spec.Port),
	}

	return id, nil
}

// StartContainer records the call and marks the simulated container running.
func (client MockClient) StartContainer(name string) error {
	client.TestData.StartCalls = append(client.TestData.StartCalls, name)

	if state, ok := client.TestData.Containers[name]; ok {
		state.Running = true
		state.State = "running"
	}

	return nil
}

// StopContainer records the call and marks the simulated container stopped.
func (client MockClient) StopContainer(name string, _ time.Duration) error {
	client.TestData.StopCalls = append(client.TestData.StopCalls, name)

	if state, ok := client.TestData.Containers[name]; ok {
		state.Running = false
		state.State = "exited"
	}

	return nil
}

// RemoveContainer records the call and deletes the simulated container.
// Removing an absent container succeeds, matching the real client.
func (client MockClient) RemoveContainer(name string, _ bool) error {
	client.TestData.RemoveCalls = append(client.TestData.RemoveCalls, name)
	delete(client.TestData.Containers, name)

	return nil
}

// ExecuteCommand records the invocation and fails it when the first argument
// matches FailingCommand.
func (client MockClient) ExecuteCommand(name string, command []string, env []string) (string, error) {
	client.TestData.ExecCalls = append(client.TestData.ExecCalls, ExecCall{
		Container: name,
		Command:   command,
		Env:       env,
	})

	if client.TestData.FailingCommand != "" && command[0] == client.TestData.FailingCommand {
		return "", fmt.Errorf("%w: %s", errMockCommandFailed, strings.Join(command, " "))
	}

	return "", nil
}

// CopyFileToContainer records the invocation, failing it when FailCopy is set.
func (client MockClient) CopyFileToContainer(hostPath, name, containerPath string) error {
	client.TestData.CopyCalls = append(client.TestData.CopyCalls, CopyCall{
		HostPath:      hostPath,
		Container:     name,
		ContainerPath: containerPath,
	})

	if client.TestData.FailCopy {
		return errMockCopyFailed
	}

	return nil
}

// WaitForDatabaseReady succeeds immediately unless FailReady is set, in which
// case it reports the same startup timeout the real client would.
func (client MockClient) WaitForDatabaseReady(
	_ string,
	_ string,
	database string,
	tries int,
	_ time.Duration,
) error {
	if client.TestData.FailReady {
		return fmt.Errorf("%w: %s after %d attempts", runtime.ErrStartupTimeout, database, tries)
	}

	return nil
}

// EnsureImage records the requested image reference and succeeds.
func (client MockClient) EnsureImage(imageName string) error {
	client.TestData.PulledImages = append(client.TestData.PulledImages, imageName)

	return nil
}

// ListInstances returns the simulated containers whose names carry the given
// prefix, sorted by name like the real client.
func (client MockClient) ListInstances(prefix string) ([]types.Instance, error) {
	instances := make([]types.Instance, 0, len(client.TestData.Containers))

	for name, state := range client.TestData.Containers {
		if !strings.HasPrefix(name, prefix) {
			continue
		}

		instances = append(instances, types.Instance{
			ID:      state.ID,
			Name:    name,
			State:   state.State,
			Running: state.Running,
			Ports:   state.Ports,
		})
	}

	sort.Slice(instances, func(i, j int) bool { return instances[i].Name < instances[j].Name })

	return instances, nil
}

// GetVersion returns a mock Docker API client version.
func (client MockClient) GetVersion() string {
	return "1.50"
}
