package runtime

import (
	"context"
	"fmt"
	"io"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/sirupsen/logrus"
)

// EnsureImage makes the image available locally, pulling it from the
// registry when missing.
//
// An image already present on the host is never re-pulled; pinning to a
// digest or retagging is the user's mechanism for forcing an update.
//
// Parameters:
//   - imageName: Image reference, e.g. "postgres:17-alpine".
//
// Returns:
//   - error: Non-nil if inspection or the pull fails.
func (c *client) EnsureImage(imageName string) error {
	ctx := context.Background()
	clog := logrus.WithField("image", imageName)

	_, err := c.api.ImageInspect(ctx, imageName)
	if err == nil {
		clog.Debug("Image present locally")

		return nil
	}

	if !cerrdefs.IsNotFound(err) {
		clog.WithError(err).Debug("Failed to inspect image")

		return fmt.Errorf("%w: %w", errInspectImageFailed, err)
	}

	clog.Info("Pulling image")

	// Get pull options with authentication.
	opts, err := GetPullOptions(imageName)
	if err != nil {
		clog.WithError(err).Debug("Failed to load authentication credentials")

		return fmt.Errorf("%w: %s: %w", errPullImageFailed, imageName, err)
	}

	// Log if authentication credentials are successfully loaded.
	if opts.RegistryAuth != "" {
		clog.Debug("Authentication credentials loaded")
	}

	response, err := c.api.ImagePull(ctx, imageName, opts)
	if err != nil {
		clog.WithError(err).Debug("Failed to initiate image pull")

		return fmt.Errorf("%w: %s: %w", errPullImageFailed, imageName, err)
	}
	defer response.Close()

	// Read response to complete the pull.
	if _, err = io.ReadAll(response); err != nil {
		clog.WithError(err).Debug("Failed to read image pull response")

		return fmt.Errorf("%w: %s: %w", errReadPullResponseFailed, imageName, err)
	}

	clog.Debug("Image pull completed")

	return nil
}
