package runtime

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	dockerContainerType "github.com/docker/docker/api/types/container"
	dockerFiltersType "github.com/docker/docker/api/types/filters"

	"github.com/nicholas-fedor/pgbranch/pkg/types"
)

// ListInstances returns the managed database containers whose names carry
// the given prefix, sorted by name.
//
// The daemon-side name filter matches substrings, so results are re-checked
// against the prefix before they are reported.
//
// Parameters:
//   - prefix: Container name prefix identifying managed containers.
//
// Returns:
//   - []types.Instance: Matching containers, running or not.
//   - error: Non-nil if listing fails.
func (c *client) ListInstances(prefix string) ([]types.Instance, error) {
	ctx := context.Background()
	clog := logrus.WithField("prefix", prefix)

	clog.Debug("Retrieving container list")

	// Build filter arguments for the name prefix.
	filterArgs := dockerFiltersType.NewArgs()
	filterArgs.Add("name", prefix)

	containers, err := c.api.ContainerList(ctx, dockerContainerType.ListOptions{
		All:     true,
		Filters: filterArgs,
	})
	if err != nil {
		clog.WithError(err).Debug("Failed to list containers")

		return nil, fmt.Errorf("%w: %w", errListContainersFailed, err)
	}

	instances := make([]types.Instance, 0, len(containers))

	for _, summary := range containers {
		if len(summary.Names) == 0 {
			continue
		}

		name := strings.TrimPrefix(summary.Names[0], "/")
		if !strings.HasPrefix(name, prefix) {
			continue
		}

		instances = append(instances, types.Instance{
			ID:      types.ContainerID(summary.ID),
			Name:    name,
			State:   summary.State,
			Running: summary.State == stateRunning,
			Ports:   formatPortBindings(summary.Ports),
		})
	}

	sort.Slice(instances, func(i, j int) bool { return instances[i].Name < instances[j].Name })

	clog.WithField("count", len(instances)).Debug("Filtered container list")

	return instances, nil
}

// formatPortBindings renders published ports in the familiar
// "host:public->private/proto" form, skipping unpublished ports.
//
// Parameters:
//   - ports: Port summaries as reported by the container list endpoint.
//
// Returns:
//   - string: Comma-separated bindings, empty when nothing is published.
func formatPortBindings(ports []dockerContainerType.Port) string {
	bindings := make([]string, 0, len(ports))

	for _, port := range ports {
		if port.PublicPort == 0 {
			continue
		}

		hostIP := port.IP
		if hostIP == "" {
			hostIP = "0.0.0.0"
		}

		bindings = append(
			bindings,
			fmt.Sprintf("%s:%d->%d/%s", hostIP, port.PublicPort, port.PrivatePort, port.Type),
		)
	}

	sort.Strings(bindings)

	return strings.Join(bindings, ", ")
}
