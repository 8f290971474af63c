// Package logging provides startup logging for pgbranch.
// It reports the tool version and the negotiated Docker API version before the
// first operation runs, honoring the flag that suppresses the banner.
package logging

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nicholas-fedor/pgbranch/pkg/types"
)

// WriteStartupMessage logs the pgbranch and Docker API versions at startup.
//
// The message is suppressed when the no-startup-message flag is set. When
// trace logging is enabled, a warning is added because trace output includes
// credentials.
//
// Parameters:
//   - c: Command providing access to the no-startup-message flag.
//   - client: Runtime client reporting the negotiated API version, may be nil.
//   - version: pgbranch version string.
func WriteStartupMessage(c *cobra.Command, client types.Client, version string) {
	noStartupMessage, _ := c.PersistentFlags().GetBool("no-startup-message")
	if noStartupMessage {
		return
	}

	startupLog := logrus.NewEntry(logrus.StandardLogger())

	var apiVersion string
	if client != nil {
		apiVersion = client.GetVersion()
	}

	startupLog.Info("pgbranch ", version, " using Docker API v", apiVersion)

	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		startupLog.Warn("Trace level enabled: log will include sensitive information as credentials and tokens")
	}
}
