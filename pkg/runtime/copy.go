package runtime

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/sirupsen/logrus"

	dockerContainerType "github.com/docker/docker/api/types/container"
)

// copiedFileMode is the permission mode of files copied into containers.
const copiedFileMode = 0o600

// CopyFileToContainer copies a file from the host into the container at the
// given absolute path.
//
// The file is streamed as a single-entry tar archive, so even multi-gigabyte
// dump files are transferred without buffering them in memory.
//
// Parameters:
//   - hostPath: Path of the file on the host.
//   - name: Target container name.
//   - containerPath: Absolute destination path inside the container.
//
// Returns:
//   - error: Non-nil if the file cannot be read or the transfer fails.
func (c *client) CopyFileToContainer(hostPath, name, containerPath string) error {
	ctx := context.Background()
	clog := logrus.WithFields(logrus.Fields{
		"container": name,
		"source":    hostPath,
		"target":    containerPath,
	})

	file, err := c.Fs.Open(hostPath)
	if err != nil {
		clog.WithError(err).Debug("Failed to open source file")

		return fmt.Errorf("%w: %w", errOpenSourceFailed, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		clog.WithError(err).Debug("Failed to stat source file")

		return fmt.Errorf("%w: %w", errOpenSourceFailed, err)
	}

	clog.WithField("size", info.Size()).Debug("Copying file into container")

	archive := tarStream(path.Base(containerPath), info.Size(), info.ModTime(), file)
	defer archive.Close()

	options := dockerContainerType.CopyToContainerOptions{}
	if err := c.api.CopyToContainer(ctx, name, path.Dir(containerPath), archive, options); err != nil {
		clog.WithError(err).Debug("Failed to copy file into container")

		return fmt.Errorf("%w: %w", errCopyToContainerFailed, err)
	}

	clog.Debug("Copied file into container")

	return nil
}

// tarStream wraps a single file in a streaming tar archive.
//
// Parameters:
//   - name: Entry name inside the archive.
//   - size: File size in bytes, required up front by the tar header.
//   - modTime: Modification time recorded in the header.
//   - content: File content reader.
//
// Returns:
//   - io.ReadCloser: Archive stream; closing it aborts the transfer.
func tarStream(name string, size int64, modTime time.Time, content io.Reader) io.ReadCloser {
	reader, writer := io.Pipe()

	go func() {
		tarWriter := tar.NewWriter(writer)

		header := &tar.Header{
			Name:    name,
			Mode:    copiedFileMode,
			Size:    size,
			ModTime: modTime,
		}

		err := tarWriter.WriteHeader(header)
		if err == nil {
			_, err = io.Copy(tarWriter, content)
		}

		if err == nil {
			err = tarWriter.Close()
		}

		writer.CloseWithError(err)
	}()

	return reader
}
