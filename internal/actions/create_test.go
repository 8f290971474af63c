package actions_test

import (
	"net"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/nicholas-fedor/pgbranch/internal/actions"
	"github.com/nicholas-fedor/pgbranch/internal/actions/mocks"
	"github.com/nicholas-fedor/pgbranch/pkg/dump"
	"github.com/nicholas-fedor/pgbranch/pkg/ports"
	"github.com/nicholas-fedor/pgbranch/pkg/runtime"
	"github.com/nicholas-fedor/pgbranch/pkg/types"
)

var _ = ginkgo.Describe("Create", func() {
	ginkgo.When("given a recognized dump and a free port", func() {
		ginkgo.It("should provision, restore, and report the new container", func() {
			dumpPath := writeDump(recognizedDump)
			port := freePort()
			cfg := testConfig(dumpPath, port)
			client := mocks.CreateMockClient(&mocks.TestData{})

			result, err := actions.Create(client, cfg, types.CreateOptions{
				Feature:  "Feature Login!!",
				DBSuffix: "orders",
			})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(result.ContainerName).To(gomega.Equal("pgbranch_feature_login"))
			gomega.Expect(result.ContainerID).
				To(gomega.Equal(types.ContainerID("id_pgbranch_feature_login")))
			gomega.Expect(result.Database).To(gomega.Equal("appdb_orders"))
			gomega.Expect(result.Port).To(gomega.Equal(port))

			gomega.Expect(client.TestData.PulledImages).To(gomega.ConsistOf("postgres:17-alpine"))

			gomega.Expect(client.TestData.CreateCalls).To(gomega.HaveLen(1))
			spec := client.TestData.CreateCalls[0]
			gomega.Expect(spec.Name).To(gomega.Equal("pgbranch_feature_login"))
			gomega.Expect(spec.Feature).To(gomega.Equal("feature_login"))
			gomega.Expect(spec.Database).To(gomega.Equal("appdb_orders"))
			gomega.Expect(spec.User).To(gomega.Equal("postgres"))
			gomega.Expect(spec.Password).To(gomega.Equal("postgres"))
			gomega.Expect(spec.Port).To(gomega.Equal(port))

			gomega.Expect(client.TestData.CopyCalls).To(gomega.HaveLen(1))
			gomega.Expect(client.TestData.CopyCalls[0].HostPath).To(gomega.Equal(dumpPath))
			gomega.Expect(client.TestData.CopyCalls[0].ContainerPath).
				To(gomega.Equal("/tmp/pgbranch_feature_login.sql"))

			gomega.Expect(client.TestData.ExecCalls).To(gomega.HaveLen(3))
			gomega.Expect(client.TestData.ExecCalls[0].Command).To(gomega.Equal([]string{
				"psql", "-v", "ON_ERROR_STOP=1", "-U", "postgres", "-d", "appdb_orders",
				"-f", "/tmp/pgbranch_feature_login.sql",
			}))
			gomega.Expect(client.TestData.ExecCalls[0].Env).
				To(gomega.ConsistOf("PGPASSWORD=postgres"))
			gomega.Expect(client.TestData.ExecCalls[1].Command).To(gomega.ContainElement(
				"UPDATE app_settings SET database = 'appdb_orders' WHERE database IS NOT NULL",
			))
			gomega.Expect(client.TestData.ExecCalls[2].Command).To(gomega.Equal([]string{
				"rm", "-f", "/tmp/pgbranch_feature_login.sql",
			}))

			running, err := client.IsContainerRunning("pgbranch_feature_login")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(running).To(gomega.BeTrue())
		})

		ginkgo.It("should fail with AlreadyExists on a second create for the same feature", func() {
			dumpPath := writeDump(recognizedDump)
			cfg := testConfig(dumpPath, freePort())
			client := mocks.CreateMockClient(&mocks.TestData{})

			_, err := actions.Create(client, cfg, types.CreateOptions{Feature: "Feature Login!!"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			// A different raw spelling of the same token collides.
			_, err = actions.Create(client, cfg, types.CreateOptions{Feature: "feature login"})
			gomega.Expect(err).To(gomega.MatchError(actions.ErrAlreadyExists))
			gomega.Expect(client.TestData.CreateCalls).To(gomega.HaveLen(1))
		})

		ginkgo.It("should use the configured default port when none is requested", func() {
			port := freePort()
			cfg := testConfig(writeDump(recognizedDump), port)
			client := mocks.CreateMockClient(&mocks.TestData{})

			result, err := actions.Create(client, cfg, types.CreateOptions{Feature: "checkout"})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(result.Port).To(gomega.Equal(port))
		})

		ginkgo.It("should fall back to the base database name for a degenerate suffix", func() {
			cfg := testConfig(writeDump(recognizedDump), freePort())
			client := mocks.CreateMockClient(&mocks.TestData{})

			result, err := actions.Create(client, cfg, types.CreateOptions{
				Feature:  "checkout",
				DBSuffix: "appdb",
			})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(result.Database).To(gomega.Equal("appdb"))
		})

		ginkgo.It("should skip the metadata rewrite when no table is configured", func() {
			cfg := testConfig(writeDump(recognizedDump), freePort())
			cfg.MetadataTable = ""
			client := mocks.CreateMockClient(&mocks.TestData{})

			_, err := actions.Create(client, cfg, types.CreateOptions{Feature: "checkout"})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(client.TestData.ExecCalls).To(gomega.HaveLen(2))
			gomega.Expect(client.TestData.ExecCalls[0].Command[0]).To(gomega.Equal("psql"))
			gomega.Expect(client.TestData.ExecCalls[1].Command[0]).To(gomega.Equal("rm"))
		})
	})

	ginkgo.When("the feature name has no usable characters", func() {
		ginkgo.It("should fail validation without touching the runtime", func() {
			cfg := testConfig(writeDump(recognizedDump), freePort())
			client := mocks.CreateMockClient(&mocks.TestData{})

			_, err := actions.Create(client, cfg, types.CreateOptions{Feature: "!!!"})

			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(client.TestData.CreateCalls).To(gomega.BeEmpty())
			gomega.Expect(client.TestData.PulledImages).To(gomega.BeEmpty())
		})
	})

	ginkgo.When("a container for the feature already exists", func() {
		ginkgo.It("should fail with AlreadyExists and not mutate anything", func() {
			cfg := testConfig(writeDump(recognizedDump), freePort())
			client := mocks.CreateMockClient(&mocks.TestData{
				Containers: map[string]*mocks.ContainerState{
					"pgbranch_feature_login": {ID: "id_existing", Running: true, State: "running"},
				},
			})

			_, err := actions.Create(client, cfg, types.CreateOptions{Feature: "Feature Login!!"})

			gomega.Expect(err).To(gomega.MatchError(actions.ErrAlreadyExists))
			gomega.Expect(client.TestData.CreateCalls).To(gomega.BeEmpty())
			gomega.Expect(client.TestData.StopCalls).To(gomega.BeEmpty())
			gomega.Expect(client.TestData.RemoveCalls).To(gomega.BeEmpty())
			gomega.Expect(client.TestData.Containers).To(gomega.HaveKey("pgbranch_feature_login"))
		})
	})

	ginkgo.When("the dump file is not recognized", func() {
		ginkgo.It("should fail with UnsupportedDump before any runtime call", func() {
			cfg := testConfig(writeDump("INSERT INTO users VALUES (1);\n"), freePort())
			client := mocks.CreateMockClient(&mocks.TestData{})

			_, err := actions.Create(client, cfg, types.CreateOptions{Feature: "checkout"})

			gomega.Expect(err).To(gomega.MatchError(dump.ErrUnsupportedDump))
			gomega.Expect(client.TestData.CreateCalls).To(gomega.BeEmpty())
			gomega.Expect(client.TestData.PulledImages).To(gomega.BeEmpty())
		})
	})

	ginkgo.When("the requested port is occupied", func() {
		ginkgo.It("should fail with PortInUse and create nothing", func() {
			listener, err := net.Listen("tcp", "127.0.0.1:0")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			ginkgo.DeferCleanup(func() { listener.Close() })

			tcpAddr, ok := listener.Addr().(*net.TCPAddr)
			gomega.Expect(ok).To(gomega.BeTrue())

			cfg := testConfig(writeDump(recognizedDump), freePort())
			client := mocks.CreateMockClient(&mocks.TestData{})

			_, err = actions.Create(client, cfg, types.CreateOptions{
				Feature: "checkout",
				Port:    tcpAddr.Port,
			})

			gomega.Expect(err).To(gomega.MatchError(ports.ErrPortInUse))
			gomega.Expect(client.TestData.CreateCalls).To(gomega.BeEmpty())
		})
	})

	ginkgo.When("the container cannot be started", func() {
		ginkgo.It("should roll back so no container is left behind", func() {
			cfg := testConfig(writeDump(recognizedDump), freePort())
			client := mocks.CreateMockClient(&mocks.TestData{FailCreate: true})

			_, err := actions.Create(client, cfg, types.CreateOptions{Feature: "checkout"})

			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(client.TestData.RemoveCalls).To(gomega.ConsistOf("pgbranch_checkout"))
			gomega.Expect(client.TestData.Containers).NotTo(gomega.HaveKey("pgbranch_checkout"))
		})
	})

	ginkgo.When("the database never becomes ready", func() {
		ginkgo.It("should fail with StartupTimeout and roll back", func() {
			cfg := testConfig(writeDump(recognizedDump), freePort())
			client := mocks.CreateMockClient(&mocks.TestData{FailReady: true})

			_, err := actions.Create(client, cfg, types.CreateOptions{Feature: "checkout"})

			gomega.Expect(err).To(gomega.MatchError(runtime.ErrStartupTimeout))
			gomega.Expect(client.TestData.StopCalls).To(gomega.ConsistOf("pgbranch_checkout"))
			gomega.Expect(client.TestData.RemoveCalls).To(gomega.ConsistOf("pgbranch_checkout"))
			gomega.Expect(client.TestData.Containers).NotTo(gomega.HaveKey("pgbranch_checkout"))
		})
	})

	ginkgo.When("the restore fails", func() {
		ginkgo.It("should fail with RestoreFailed and roll back", func() {
			cfg := testConfig(writeDump(recognizedDump), freePort())
			client := mocks.CreateMockClient(&mocks.TestData{FailingCommand: "psql"})

			_, err := actions.Create(client, cfg, types.CreateOptions{Feature: "checkout"})

			gomega.Expect(err).To(gomega.MatchError(actions.ErrRestoreFailed))
			gomega.Expect(client.TestData.RemoveCalls).To(gomega.ConsistOf("pgbranch_checkout"))
			gomega.Expect(client.TestData.Containers).NotTo(gomega.HaveKey("pgbranch_checkout"))
		})

		ginkgo.It("should treat a copy failure as a restore failure", func() {
			cfg := testConfig(writeDump(recognizedDump), freePort())
			client := mocks.CreateMockClient(&mocks.TestData{FailCopy: true})

			_, err := actions.Create(client, cfg, types.CreateOptions{Feature: "checkout"})

			gomega.Expect(err).To(gomega.MatchError(actions.ErrRestoreFailed))
			gomega.Expect(client.TestData.ExecCalls).To(gomega.BeEmpty())
			gomega.Expect(client.TestData.Containers).NotTo(gomega.HaveKey("pgbranch_checkout"))
		})
	})

	ginkgo.When("the staged dump cannot be deleted", func() {
		ginkgo.It("should still succeed", func() {
			cfg := testConfig(writeDump(recognizedDump), freePort())
			client := mocks.CreateMockClient(&mocks.TestData{FailingCommand: "rm"})

			result, err := actions.Create(client, cfg, types.CreateOptions{Feature: "checkout"})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(result.ContainerName).To(gomega.Equal("pgbranch_checkout"))
			gomega.Expect(client.TestData.Containers).To(gomega.HaveKey("pgbranch_checkout"))
		})
	})

	ginkgo.When("per-invocation overrides are supplied", func() {
		ginkgo.It("should prefer them over the configured values", func() {
			cfg := testConfig(writeDump("not a dump\n"), freePort())
			dumpPath := writeDump(recognizedDump)
			client := mocks.CreateMockClient(&mocks.TestData{})

			_, err := actions.Create(client, cfg, types.CreateOptions{
				Feature:  "checkout",
				DumpPath: dumpPath,
				User:     "admin",
				Password: "hunter2",
			})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(client.TestData.CopyCalls[0].HostPath).To(gomega.Equal(dumpPath))

			spec := client.TestData.CreateCalls[0]
			gomega.Expect(spec.User).To(gomega.Equal("admin"))
			gomega.Expect(spec.Password).To(gomega.Equal("hunter2"))
			gomega.Expect(client.TestData.ExecCalls[0].Env).
				To(gomega.ConsistOf("PGPASSWORD=hunter2"))
			gomega.Expect(client.TestData.ExecCalls[0].Command).To(gomega.ContainElement("admin"))
		})
	})
})
