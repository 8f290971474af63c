// Package dump classifies SQL dump files before they are restored.
// It reads a bounded prefix of the file and matches it against the known
// textual signature of a plain-format PostgreSQL dump, so unsupported
// formats are rejected before any container is created.
//
// Key components:
//   - Kind: Closed set of recognized dump formats.
//   - Detect/DetectWithFs: Signature probe over the host or an injected filesystem.
//   - ErrUnsupportedDump: Sentinel wrapped into every rejection.
//
// Usage example:
//
//	kind, err := dump.Detect("./dump.sql")
//	if err != nil {
//	    logrus.WithError(err).Fatal("Dump file rejected")
//	}
//	fmt.Println(kind) // "plain-sql"
//
// The probe never reads more than a few kilobytes, keeping detection cheap
// for multi-gigabyte dumps.
package dump
