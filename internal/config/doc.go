// Package config assembles pgbranch's runtime configuration from command-line flags.
// It resolves flag, environment, and default values into a validated Config.
//
// Key components:
//   - Config: Immutable snapshot of all settings a command run needs.
//   - FromCommand: Reads and validates the root command's persistent flags.
//
// Usage example:
//
//	cfg, err := config.FromCommand(cmd)
//	if err != nil {
//	    logrus.WithError(err).Fatal("Invalid configuration")
//	}
//	client, err := runtime.NewClient(runtime.ClientOptions{})
//
// The package integrates with the names package to enforce that configured
// identifiers survive normalization unchanged, using logrus for logging.
package config
