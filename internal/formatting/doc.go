// Package formatting renders pgbranch's terminal output for container listings.
// It draws rounded tables for instance overviews and keeps coloring consistent.
//
// Key components:
//   - WriteInstances: Renders managed containers as a table on the given writer.
//
// Usage example:
//
//	instances, err := actions.List(client, cfg)
//	if err != nil {
//	    logrus.WithError(err).Fatal("Listing containers failed")
//	}
//	formatting.WriteInstances(os.Stdout, instances)
package formatting
