package logging_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nicholas-fedor/pgbranch/internal/actions/mocks"
	"github.com/nicholas-fedor/pgbranch/internal/logging"
)

// TestLogging runs the Ginkgo test suite for the logging package.
func TestLogging(t *testing.T) {
	t.Parallel()
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Logging Suite")
}

var _ = ginkgo.Describe("WriteStartupMessage", func() {
	var (
		cmd    *cobra.Command
		client mocks.MockClient
		buffer *bytes.Buffer
	)

	ginkgo.BeforeEach(func() {
		cmd = &cobra.Command{}
		cmd.PersistentFlags().Bool("no-startup-message", false, "")
		client = mocks.CreateMockClient(&mocks.TestData{})
		buffer = &bytes.Buffer{}
		logrus.SetOutput(buffer)
	})

	ginkgo.AfterEach(func() {
		logrus.SetOutput(os.Stderr)
	})

	ginkgo.When("the startup message is enabled", func() {
		ginkgo.It("logs the tool and API versions", func() {
			logging.WriteStartupMessage(cmd, client, "v1.0.0")

			gomega.Expect(buffer.String()).To(gomega.ContainSubstring("pgbranch v1.0.0"))
			gomega.Expect(buffer.String()).To(gomega.ContainSubstring("using Docker API v1.50"))
		})

		ginkgo.It("tolerates a nil client", func() {
			logging.WriteStartupMessage(cmd, nil, "v1.0.0")

			gomega.Expect(buffer.String()).To(gomega.ContainSubstring("pgbranch v1.0.0"))
		})

		ginkgo.It("warns about credential exposure at trace level", func() {
			logrus.SetLevel(logrus.TraceLevel)
			ginkgo.DeferCleanup(logrus.SetLevel, logrus.InfoLevel)

			logging.WriteStartupMessage(cmd, client, "v1.0.0")

			gomega.Expect(buffer.String()).To(gomega.ContainSubstring("Trace level enabled"))
		})
	})

	ginkgo.When("the startup message is suppressed", func() {
		ginkgo.It("logs nothing", func() {
			gomega.Expect(cmd.PersistentFlags().Set("no-startup-message", "true")).To(gomega.Succeed())

			logging.WriteStartupMessage(cmd, client, "v1.0.0")

			gomega.Expect(buffer.String()).To(gomega.BeEmpty())
		})
	})
})
