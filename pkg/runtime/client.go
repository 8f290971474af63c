package runtime

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	dockerClient "github.com/docker/docker/client"

	"github.com/nicholas-fedor/pgbranch/pkg/types"
)

// client is the concrete implementation of the types.Client interface.
//
// It wraps the Docker API client and applies custom behavior via ClientOptions.
type client struct {
	api dockerClient.APIClient
	ClientOptions
}

// ClientOptions configures the behavior of the dockerClient wrapper around the Docker API.
type ClientOptions struct {
	// Fs is the filesystem used for reading files copied into containers.
	// Defaults to the host filesystem.
	Fs afero.Fs
}

// NewClient initializes a new Client instance for Docker API interactions.
//
// It configures the client using environment variables (e.g., DOCKER_HOST,
// DOCKER_API_VERSION), validates the API version with fallback to
// autonegotiation, and verifies daemon availability with a ping.
//
// Parameters:
//   - opts: Options to customize client behavior.
//
// Returns:
//   - types.Client: Initialized client instance.
//   - error: Non-nil when the client cannot be built or the daemon is unreachable,
//     wrapping ErrRuntimeUnavailable in the latter case.
func NewClient(opts ClientOptions) (types.Client, error) {
	ctx := context.Background()

	// Initialize client with autonegotiation, ignoring DOCKER_API_VERSION initially.
	cli, err := dockerClient.NewClientWithOpts(
		dockerClient.FromEnv,
		dockerClient.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errCreateClientFailed, err)
	}

	// Set default filesystem if not provided
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}

	// Apply forced API version if set and valid.
	if version := strings.Trim(os.Getenv("DOCKER_API_VERSION"), "\""); version != "" {
		pinnedCli, err := dockerClient.NewClientWithOpts(
			dockerClient.WithHost(cli.DaemonHost()),
			dockerClient.WithVersion(version),
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errCreateClientFailed, err)
		}

		if _, err := pinnedCli.Ping(ctx); err != nil &&
			strings.Contains(err.Error(), "page not found") {
			logrus.WithFields(logrus.Fields{
				"version":  version,
				"error":    err,
				"endpoint": "/_ping",
			}).Warn("Invalid API version; falling back to autonegotiation")
			cli.NegotiateAPIVersion(ctx)
		} else {
			cli = pinnedCli
		}
	} else {
		cli.NegotiateAPIVersion(ctx)
	}

	// Verify the daemon is reachable before any operation runs against it.
	if _, err := cli.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRuntimeUnavailable, err)
	}

	// Log client and server API versions.
	selectedVersion := cli.ClientVersion()

	if serverVersion, err := cli.ServerVersion(ctx); err != nil {
		logrus.WithFields(logrus.Fields{
			"error":    err,
			"endpoint": "/version",
		}).Debug("Failed to retrieve server version")
	} else {
		logrus.WithFields(logrus.Fields{
			"client_version": selectedVersion,
			"server_version": serverVersion.APIVersion,
		}).Debug("Initialized Docker client")
	}

	return &client{
		api:           cli,
		ClientOptions: opts,
	}, nil
}

// GetVersion returns the negotiated Docker API version of the client.
//
// Returns:
//   - string: API version, stripped of quotes.
func (c *client) GetVersion() string {
	return strings.Trim(c.api.ClientVersion(), "\"")
}
