package dump

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Kind identifies the format of a SQL dump file.
type Kind string

const (
	// KindUnsupported marks a file that matched no known dump signature.
	KindUnsupported Kind = "unsupported"
	// KindPlainSQL marks a plain-format dump produced by pg_dump.
	KindPlainSQL Kind = "plain-sql"
)

const (
	// plainSQLSignature is the header comment pg_dump writes into plain-format dumps.
	plainSQLSignature = "-- PostgreSQL database dump"
	// maxProbeLines bounds how many lines of the file are inspected.
	maxProbeLines = 20
	// maxProbeBytes bounds how many bytes of the file are inspected.
	maxProbeBytes = 4096
)

// ErrUnsupportedDump indicates a dump file whose format is not recognized.
var ErrUnsupportedDump = errors.New("unsupported dump format")

// Detect classifies the dump file at path using the host filesystem.
//
// Parameters:
//   - path: Path to the dump file.
//
// Returns:
//   - Kind: Detected format, KindUnsupported on rejection.
//   - error: Non-nil when the file is unreadable or unrecognized, wrapping ErrUnsupportedDump.
func Detect(path string) (Kind, error) {
	return DetectWithFs(afero.NewOsFs(), path)
}

// DetectWithFs classifies the dump file at path on the given filesystem.
//
// It scans at most maxProbeLines lines within the first maxProbeBytes bytes
// for a known signature. Unreadable files are reported as unsupported rather
// than distinguished, since neither can be restored.
//
// Parameters:
//   - fs: Filesystem to read from.
//   - path: Path to the dump file.
//
// Returns:
//   - Kind: Detected format, KindUnsupported on rejection.
//   - error: Non-nil when the file is unreadable or unrecognized, wrapping ErrUnsupportedDump.
func DetectWithFs(fs afero.Fs, path string) (Kind, error) {
	file, err := fs.Open(path)
	if err != nil {
		return KindUnsupported, fmt.Errorf("%w: %w", ErrUnsupportedDump, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(io.LimitReader(file, maxProbeBytes))

	for line := 0; line < maxProbeLines && scanner.Scan(); line++ {
		if strings.HasPrefix(strings.TrimSpace(scanner.Text()), plainSQLSignature) {
			logrus.WithFields(logrus.Fields{
				"path": path,
				"kind": KindPlainSQL,
			}).Debug("Detected dump format")

			return KindPlainSQL, nil
		}
	}

	if err := scanner.Err(); err != nil {
		return KindUnsupported, fmt.Errorf("%w: %w", ErrUnsupportedDump, err)
	}

	return KindUnsupported, fmt.Errorf("%w: no recognized signature in %s", ErrUnsupportedDump, path)
}
