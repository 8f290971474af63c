// Package names derives container and database identifiers for pgbranch.
// It implements the normalization rules that turn free-form feature names
// into tokens safe for container names and PostgreSQL identifiers.
//
// Key components:
//   - Normalize: Lowercases input and maps it onto the [a-z0-9_] charset.
//   - ContainerName/Prefix/ParseContainerName: Naming scheme for managed containers.
//   - DatabaseName: Database identifier built from a base name and optional suffix.
//
// Usage example:
//
//	name := names.ContainerName("pgbranch", "Feature Login!!") // "pgbranch_feature_login"
//	feature, ok := names.ParseContainerName("pgbranch", name)  // "feature_login", true
//
// Normalization is idempotent: applying it to an already-normalized token
// returns the token unchanged.
package names
