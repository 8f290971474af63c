package actions_test

import (
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/nicholas-fedor/pgbranch/internal/actions"
	"github.com/nicholas-fedor/pgbranch/internal/actions/mocks"
	"github.com/nicholas-fedor/pgbranch/internal/config"
)

// lifecycleConfig returns a configuration for start/stop/remove specs, which
// never read the dump or port settings.
func lifecycleConfig() *config.Config {
	return testConfig("./dump.sql", 5432)
}

var _ = ginkgo.Describe("Start", func() {
	ginkgo.When("no container exists for the feature", func() {
		ginkgo.It("should fail with NotFound", func() {
			client := mocks.CreateMockClient(&mocks.TestData{})

			_, err := actions.Start(client, lifecycleConfig(), "checkout")

			gomega.Expect(err).To(gomega.MatchError(actions.ErrNotFound))
			gomega.Expect(client.TestData.StartCalls).To(gomega.BeEmpty())
		})
	})

	ginkgo.When("the container is already running", func() {
		ginkgo.It("should succeed without a state change", func() {
			client := mocks.CreateMockClient(&mocks.TestData{
				Containers: map[string]*mocks.ContainerState{
					"pgbranch_checkout": {ID: "id_1", Running: true, State: "running"},
				},
			})

			changed, err := actions.Start(client, lifecycleConfig(), "checkout")

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(changed).To(gomega.BeFalse())
			gomega.Expect(client.TestData.StartCalls).To(gomega.BeEmpty())
		})
	})

	ginkgo.When("the container is stopped", func() {
		ginkgo.It("should start it", func() {
			client := mocks.CreateMockClient(&mocks.TestData{
				Containers: map[string]*mocks.ContainerState{
					"pgbranch_checkout": {ID: "id_1", State: "exited"},
				},
			})

			changed, err := actions.Start(client, lifecycleConfig(), "checkout")

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(changed).To(gomega.BeTrue())
			gomega.Expect(client.TestData.StartCalls).To(gomega.ConsistOf("pgbranch_checkout"))

			running, err := client.IsContainerRunning("pgbranch_checkout")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(running).To(gomega.BeTrue())
		})
	})

	ginkgo.When("the feature normalizes to the same token as an existing container", func() {
		ginkgo.It("should address that container", func() {
			client := mocks.CreateMockClient(&mocks.TestData{
				Containers: map[string]*mocks.ContainerState{
					"pgbranch_feature_login": {ID: "id_1", State: "exited"},
				},
			})

			changed, err := actions.Start(client, lifecycleConfig(), "Feature Login!!")

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(changed).To(gomega.BeTrue())
		})
	})

	ginkgo.When("the feature name has no usable characters", func() {
		ginkgo.It("should fail validation", func() {
			client := mocks.CreateMockClient(&mocks.TestData{})

			_, err := actions.Start(client, lifecycleConfig(), "??")

			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})
})

var _ = ginkgo.Describe("Stop", func() {
	ginkgo.When("no container exists for the feature", func() {
		ginkgo.It("should fail with NotFound", func() {
			client := mocks.CreateMockClient(&mocks.TestData{})

			_, err := actions.Stop(client, lifecycleConfig(), "checkout")

			gomega.Expect(err).To(gomega.MatchError(actions.ErrNotFound))
		})
	})

	ginkgo.When("the container is already stopped", func() {
		ginkgo.It("should succeed without a state change", func() {
			client := mocks.CreateMockClient(&mocks.TestData{
				Containers: map[string]*mocks.ContainerState{
					"pgbranch_checkout": {ID: "id_1", State: "exited"},
				},
			})

			changed, err := actions.Stop(client, lifecycleConfig(), "checkout")

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(changed).To(gomega.BeFalse())
			gomega.Expect(client.TestData.StopCalls).To(gomega.BeEmpty())
		})
	})

	ginkgo.When("the container is running", func() {
		ginkgo.It("should stop it", func() {
			client := mocks.CreateMockClient(&mocks.TestData{
				Containers: map[string]*mocks.ContainerState{
					"pgbranch_checkout": {ID: "id_1", Running: true, State: "running"},
				},
			})

			changed, err := actions.Stop(client, lifecycleConfig(), "checkout")

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(changed).To(gomega.BeTrue())
			gomega.Expect(client.TestData.StopCalls).To(gomega.ConsistOf("pgbranch_checkout"))

			running, err := client.IsContainerRunning("pgbranch_checkout")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(running).To(gomega.BeFalse())
		})
	})
})

var _ = ginkgo.Describe("Remove", func() {
	ginkgo.When("no container exists for the feature", func() {
		ginkgo.It("should fail with NotFound", func() {
			client := mocks.CreateMockClient(&mocks.TestData{})

			err := actions.Remove(client, lifecycleConfig(), "checkout")

			gomega.Expect(err).To(gomega.MatchError(actions.ErrNotFound))
			gomega.Expect(client.TestData.RemoveCalls).To(gomega.BeEmpty())
		})
	})

	ginkgo.When("the container is running", func() {
		ginkgo.It("should stop it before removing it", func() {
			client := mocks.CreateMockClient(&mocks.TestData{
				Containers: map[string]*mocks.ContainerState{
					"pgbranch_checkout": {ID: "id_1", Running: true, State: "running"},
				},
			})

			err := actions.Remove(client, lifecycleConfig(), "checkout")

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(client.TestData.StopCalls).To(gomega.ConsistOf("pgbranch_checkout"))
			gomega.Expect(client.TestData.RemoveCalls).To(gomega.ConsistOf("pgbranch_checkout"))
			gomega.Expect(client.TestData.Containers).NotTo(gomega.HaveKey("pgbranch_checkout"))
		})
	})

	ginkgo.When("the container is stopped", func() {
		ginkgo.It("should remove it without a stop call", func() {
			client := mocks.CreateMockClient(&mocks.TestData{
				Containers: map[string]*mocks.ContainerState{
					"pgbranch_checkout": {ID: "id_1", State: "exited"},
				},
			})

			err := actions.Remove(client, lifecycleConfig(), "checkout")

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(client.TestData.StopCalls).To(gomega.BeEmpty())
			gomega.Expect(client.TestData.RemoveCalls).To(gomega.ConsistOf("pgbranch_checkout"))
			gomega.Expect(client.TestData.Containers).NotTo(gomega.HaveKey("pgbranch_checkout"))
		})
	})
})
