// Package runtime implements the container runtime client for pgbranch.
// It wraps the Docker API client with the operations the provisioning
// workflow needs: creating and controlling database containers, copying
// dump files into them, executing commands, and pulling images.
//
// Key components:
//   - NewClient: Initializes the Docker client with environment-based configuration.
//   - client: Implements the types.Client interface for container operations.
//   - WaitForDatabaseReady: Bounded readiness polling via pg_isready.
//   - GetPullOptions/EncodedAuth: Registry authentication for image pulls.
//
// Usage example:
//
//	client, err := runtime.NewClient(runtime.ClientOptions{})
//	if err != nil {
//	    logrus.WithError(err).Fatal("Container runtime unavailable")
//	}
//	if err := client.EnsureImage("postgres:17-alpine"); err != nil {
//	    logrus.WithError(err).Fatal("Image pull failed")
//	}
//
// The package uses the Docker SDK for API interactions, the Docker CLI
// config for registry credentials, and logrus for logging.
package runtime
