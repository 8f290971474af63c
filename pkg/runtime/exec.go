package runtime

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	dockerContainerType "github.com/docker/docker/api/types/container"
)

// execPollInterval is the delay between exec status inspections.
const execPollInterval = 1 * time.Second

// ExecuteCommand runs a command inside a running container and waits for it
// to finish.
//
// The command is passed as an argument vector and the env entries are added
// to the command's environment only, so credentials never appear in a
// host-visible command line. There is no overall deadline: restores of large
// dumps legitimately run for a long time.
//
// Parameters:
//   - name: Container to run the command in.
//   - command: Argument vector, e.g. []string{"psql", "-f", "/tmp/dump.sql"}.
//   - env: Additional environment entries, e.g. []string{"PGPASSWORD=..."}.
//
// Returns:
//   - string: Captured combined output, trimmed.
//   - error: Non-nil if execution fails or the command exits non-zero.
func (c *client) ExecuteCommand(name string, command []string, env []string) (string, error) {
	ctx := context.Background()
	clog := logrus.WithFields(logrus.Fields{
		"container": name,
		"command":   command[0],
	})

	// Set up exec configuration with command and environment.
	clog.Debug("Creating exec instance")

	execConfig := dockerContainerType.ExecOptions{
		Tty:          true,
		AttachStdout: true,
		AttachStderr: true,
		Cmd:          command,
		Env:          env,
	}

	exec, err := c.api.ContainerExecCreate(ctx, name, execConfig)
	if err != nil {
		clog.WithError(err).Debug("Failed to create exec instance")

		return "", fmt.Errorf("%w: %w", errCreateExecFailed, err)
	}

	// Attach to the exec instance, which also starts it.
	output, err := c.captureExecOutput(ctx, exec.ID)
	if err != nil {
		clog.WithError(err).Warn("Failed to capture command output")
	}

	// Wait for completion and evaluate the exit code.
	if err := c.waitForExecOrTimeout(ctx, exec.ID, output); err != nil {
		return output, err
	}

	clog.WithField("output", output).Debug("Executed command")

	return output, nil
}

// captureExecOutput attaches to an exec instance and captures its output.
//
// Parameters:
//   - ctx: Context for lifecycle control.
//   - execID: ID of the exec instance.
//
// Returns:
//   - string: Captured output if successful.
//   - error: Non-nil if attachment or reading fails, nil on success.
func (c *client) captureExecOutput(ctx context.Context, execID string) (string, error) {
	clog := logrus.WithField("exec_id", execID)

	clog.Debug("Attaching to exec instance")

	response, err := c.api.ContainerExecAttach(
		ctx,
		execID,
		dockerContainerType.ExecStartOptions{Tty: true},
	)
	if err != nil {
		clog.WithError(err).Debug("Failed to attach to exec instance")

		return "", fmt.Errorf("%w: %w", errAttachExecFailed, err)
	}

	defer response.Close()

	// Read output into a buffer.
	var writer bytes.Buffer

	written, err := writer.ReadFrom(response.Reader)
	if err != nil {
		clog.WithError(err).Debug("Failed to read exec output")

		return "", fmt.Errorf("%w: %w", errReadExecOutputFailed, err)
	}

	if written > 0 {
		return strings.TrimSpace(writer.String()), nil
	}

	return "", nil
}

// waitForExecOrTimeout polls an exec instance until it completes.
//
// Parameters:
//   - ctx: Parent context.
//   - execID: ID of the exec instance.
//   - execOutput: Captured output for error reporting.
//
// Returns:
//   - error: Non-nil if inspection fails or the command exits non-zero, nil on success.
func (c *client) waitForExecOrTimeout(ctx context.Context, execID string, execOutput string) error {
	clog := logrus.WithField("exec_id", execID)

	// Poll exec status until completion.
	for {
		execInspect, err := c.api.ContainerExecInspect(ctx, execID)
		if err != nil {
			clog.WithError(err).Debug("Failed to inspect exec instance")

			return fmt.Errorf("%w: %w", errInspectExecFailed, err)
		}

		if execInspect.Running {
			time.Sleep(execPollInterval) // Wait before rechecking.

			continue
		}

		if execInspect.ExitCode > 0 {
			err := fmt.Errorf(
				"%w with exit code %d: %s",
				errCommandFailed,
				execInspect.ExitCode,
				execOutput,
			)
			clog.WithError(err).Debug("Command execution failed")

			return err
		}

		return nil
	}
}

// WaitForDatabaseReady polls the database inside the container until it
// accepts connections.
//
// Readiness is probed with pg_isready over the container's local socket, at
// most tries times with the given interval between attempts. A container
// that stops while being polled fails fast instead of burning the budget.
//
// Parameters:
//   - name: Container running the database.
//   - user: Database user to probe with.
//   - database: Database name to probe.
//   - tries: Maximum number of probe attempts.
//   - interval: Delay between attempts.
//
// Returns:
//   - error: Non-nil when the container exits or the budget is exhausted,
//     wrapping ErrStartupTimeout in the latter case.
func (c *client) WaitForDatabaseReady(
	name string,
	user string,
	database string,
	tries int,
	interval time.Duration,
) error {
	clog := logrus.WithFields(logrus.Fields{
		"container": name,
		"database":  database,
	})

	clog.WithFields(logrus.Fields{
		"tries":    tries,
		"interval": interval,
	}).Debug("Waiting for database to accept connections")

	for attempt := 1; attempt <= tries; attempt++ {
		running, err := c.IsContainerRunning(name)
		if err != nil {
			return err
		}

		if !running {
			clog.Debug("Container stopped while waiting for readiness")

			return fmt.Errorf("%w: %s", errContainerExited, name)
		}

		command := []string{"pg_isready", "-q", "-U", user, "-d", database}
		if _, err := c.ExecuteCommand(name, command, nil); err == nil {
			clog.WithField("attempts", attempt).Debug("Database is ready")

			return nil
		}

		time.Sleep(interval)
	}

	return fmt.Errorf("%w: %s after %d attempts", ErrStartupTimeout, database, tries)
}
