package types

// CreateOptions defines per-invocation options for the Create operation.
type CreateOptions struct {
	Feature  string // Raw feature name, normalized before use.
	DumpPath string // Path to the SQL dump file on the host.
	Port     int    // Explicitly requested host port, 0 to use the configured default.
	DBSuffix string // Optional database name suffix, normalized before use.
	User     string // Database superuser name.
	Password string // Database superuser password.
}

// CreateResult reports the outcome of a successful Create operation.
type CreateResult struct {
	ContainerID   ContainerID // ID of the created container.
	ContainerName string      // Name of the created container.
	Database      string      // Name of the restored database.
	Port          int         // Host port the database listens on.
}
