// Package cmd provides the command-line interface for pgbranch.
// It defines the root command, the container lifecycle subcommands, and the
// interactive menu entered when no subcommand is given.
//
// Key components:
//   - NewRootCommand: Configures the root command with flags and the interactive menu.
//   - Execute: Entry point running the CLI.
//   - create/start/stop/remove/list: Subcommands dispatching to the actions package.
//
// Usage example:
//
//	func main() {
//	    cmd.Execute() // Runs the CLI, e.g., `pgbranch create my-feature`
//	}
//
// The package integrates with the flags package for configuration, the actions
// package for container operations, and the prompt package for interactive
// input, using Cobra for command handling and logrus for logging.
package cmd
