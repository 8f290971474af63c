package ports

import (
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/sirupsen/logrus"
)

// maxPort is the highest valid TCP port number.
const maxPort = 65535

// Errors for port selection.
var (
	// ErrInvalidPort indicates a port number outside the valid TCP range.
	ErrInvalidPort = errors.New("port outside the valid range 1-65535")
	// ErrPortInUse indicates the selected host port is already bound.
	ErrPortInUse = errors.New("host port already in use")
)

// Select resolves the host port to publish for a new container.
//
// A requested port of 0 falls back to the configured default. The resolved
// port is validated and probed with a single TCP bind; an occupied port is
// an error, never a trigger to scan for alternatives.
//
// Parameters:
//   - requested: Explicitly requested port, 0 when none was given.
//   - fallback: Configured default port.
//
// Returns:
//   - int: The resolved, currently free port.
//   - error: Non-nil when the port is out of range or already bound.
func Select(requested, fallback int) (int, error) {
	port := requested
	if port == 0 {
		port = fallback

		logrus.WithField("port", port).Debug("No port requested, using configured default")
	}

	if port < 1 || port > maxPort {
		return 0, fmt.Errorf("%w: %d", ErrInvalidPort, port)
	}

	if err := probe(port); err != nil {
		return 0, fmt.Errorf("%w: %d", ErrPortInUse, port)
	}

	return port, nil
}

// probe attempts a TCP bind on all interfaces to verify the port is free.
// The listener is closed immediately; the small race window until the
// container binds the port is accepted.
func probe(port int) error {
	listener, err := net.Listen("tcp", net.JoinHostPort("", strconv.Itoa(port)))
	if err != nil {
		return fmt.Errorf("failed to bind probe listener: %w", err)
	}

	return listener.Close()
}
