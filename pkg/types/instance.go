package types

// InstanceSpec describes a database container to provision.
// It carries everything the runtime needs to create and start the
// container: the resolved name, image reference, database identity,
// superuser credentials, and the host port to publish.
type InstanceSpec struct {
	Name     string // Container name, including the base-name prefix.
	Image    string // Image reference, e.g. "postgres:17-alpine".
	Feature  string // Normalized feature token the container belongs to.
	Database string // Database name created on first start.
	User     string // Database superuser name.
	Password string // Database superuser password, passed via container env.
	Port     int    // Host TCP port published to the container's PostgreSQL port.
}

// Instance is one managed database container as reported by the runtime.
type Instance struct {
	ID      ContainerID // Container ID hash.
	Name    string      // Container name without the leading slash.
	Feature string      // Feature token parsed from the name, empty if unparsable.
	State   string      // Runtime state, e.g. "running" or "exited".
	Running bool        // Whether the container is currently running.
	Ports   string      // Human-readable port bindings, e.g. "0.0.0.0:5433->5432/tcp".
}
