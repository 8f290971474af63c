// Package types defines the shared data model for pgbranch.
// It provides the identifiers, instance descriptions, and operation
// parameter structs passed between the CLI, the actions, and the
// container runtime client.
//
// Key components:
//   - ContainerID: Hash identifier for a container instance.
//   - InstanceSpec: Description of a database container to provision.
//   - Instance: A managed database container as reported by the runtime.
//   - CreateOptions/CreateResult: Inputs and outcome of the create operation.
//
// Usage example:
//
//	spec := types.InstanceSpec{Name: "pgbranch_login", Image: "postgres:17-alpine"}
//	id, err := client.CreateAndStartContainer(spec)
//	fmt.Println(id.ShortID())
//
// The package has no dependencies on the runtime implementation, keeping
// the data model reusable from tests and mocks.
package types
