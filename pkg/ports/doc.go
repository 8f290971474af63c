// Package ports resolves the host port for a new database container.
// It validates the requested port and probes availability with a single
// TCP bind, failing loudly instead of scanning for alternatives so that
// connection strings in scripts and IDEs stay predictable.
//
// Key components:
//   - Select: Resolves a requested port against the configured default.
//   - ErrInvalidPort/ErrPortInUse: Sentinels for the two rejection cases.
//
// Usage example:
//
//	port, err := ports.Select(0, 5432)
//	if errors.Is(err, ports.ErrPortInUse) {
//	    logrus.WithError(err).Fatal("Pick another port with --port")
//	}
package ports
