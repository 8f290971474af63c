package actions_test

import (
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/nicholas-fedor/pgbranch/internal/actions"
	"github.com/nicholas-fedor/pgbranch/internal/actions/mocks"
)

var _ = ginkgo.Describe("List", func() {
	ginkgo.When("no managed containers exist", func() {
		ginkgo.It("should return an empty listing", func() {
			client := mocks.CreateMockClient(&mocks.TestData{
				Containers: map[string]*mocks.ContainerState{
					"other_tool_container": {ID: "id_other", Running: true, State: "running"},
				},
			})

			instances, err := actions.List(client, lifecycleConfig())

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(instances).To(gomega.BeEmpty())
		})
	})

	ginkgo.When("managed and foreign containers coexist", func() {
		ginkgo.It("should list only managed ones, sorted, with parsed features", func() {
			client := mocks.CreateMockClient(&mocks.TestData{
				Containers: map[string]*mocks.ContainerState{
					"pgbranch_hotfix_2024": {
						ID:    "id_2",
						State: "exited",
					},
					"pgbranch_feature_login": {
						ID:      "id_1",
						Running: true,
						State:   "running",
						Ports:   "0.0.0.0:5433->5432/tcp",
					},
					"other_tool_container": {ID: "id_other", Running: true, State: "running"},
				},
			})

			instances, err := actions.List(client, lifecycleConfig())

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(instances).To(gomega.HaveLen(2))

			gomega.Expect(instances[0].Name).To(gomega.Equal("pgbranch_feature_login"))
			gomega.Expect(instances[0].Feature).To(gomega.Equal("feature_login"))
			gomega.Expect(instances[0].Running).To(gomega.BeTrue())
			gomega.Expect(instances[0].Ports).To(gomega.Equal("0.0.0.0:5433->5432/tcp"))

			gomega.Expect(instances[1].Name).To(gomega.Equal("pgbranch_hotfix_2024"))
			gomega.Expect(instances[1].Feature).To(gomega.Equal("hotfix_2024"))
			gomega.Expect(instances[1].Running).To(gomega.BeFalse())
		})
	})

	ginkgo.When("a prefixed name does not follow the naming scheme", func() {
		ginkgo.It("should list it without a feature token", func() {
			client := mocks.CreateMockClient(&mocks.TestData{
				Containers: map[string]*mocks.ContainerState{
					"pgbranch_WEIRD": {ID: "id_1", Running: true, State: "running"},
				},
			})

			instances, err := actions.List(client, lifecycleConfig())

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(instances).To(gomega.HaveLen(1))
			gomega.Expect(instances[0].Name).To(gomega.Equal("pgbranch_WEIRD"))
			gomega.Expect(instances[0].Feature).To(gomega.BeEmpty())
		})
	})
})
