// Package actions provides core logic for pgbranch's container lifecycle operations.
// It orchestrates provisioning, start/stop transitions, removal, and listing of
// the managed per-feature database containers.
//
// Key components:
//   - Create: Provisions a container, waits for the database, and restores the dump.
//   - Start: Starts a stopped container, converging on the running state.
//   - Stop: Stops a running container, converging on the stopped state.
//   - Remove: Removes a container, stopping it first when needed.
//   - List: Returns the managed containers with their parsed feature tokens.
//
// Usage example:
//
//	result, err := actions.Create(client, cfg, opts)
//	if err != nil {
//	    logrus.WithError(err).Error("Create failed")
//	}
//	started, err := actions.Start(client, cfg, "feature_login")
//
// Validation always precedes mutation: every operation derives the canonical
// container name from the feature token and checks runtime state before
// touching it. A failed Create rolls its container back so no orphan remains.
// The package integrates with the names, dump, ports, and types packages,
// using logrus for logging operations and errors.
package actions
