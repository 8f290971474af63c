package names

import (
	"strings"
)

// separator joins the base name, feature tokens, and database suffixes.
const separator = "_"

// Normalize converts a free-form name into a token safe for container names
// and PostgreSQL identifiers.
//
// It lowercases the input, maps every character outside [a-z0-9_] to an
// underscore, collapses underscore runs, and strips trailing underscores.
// The result may be empty when the input contains no usable characters.
//
// Parameters:
//   - input: Raw name, e.g. a git branch or user-supplied feature name.
//
// Returns:
//   - string: Normalized token, e.g. "feature_login" for "Feature Login!!".
func Normalize(input string) string {
	var builder strings.Builder

	builder.Grow(len(input))

	pendingSeparator := false

	for _, r := range strings.ToLower(input) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			builder.WriteRune(r)

			pendingSeparator = false

			continue
		}

		// Collapse runs of disallowed characters (and literal underscores)
		// into a single separator.
		if !pendingSeparator {
			builder.WriteString(separator)

			pendingSeparator = true
		}
	}

	return strings.TrimRight(builder.String(), separator)
}

// ContainerName builds the container name for a feature under the given base
// name, normalizing the feature first.
//
// Parameters:
//   - base: Base name shared by all managed containers.
//   - feature: Raw or normalized feature name.
//
// Returns:
//   - string: Container name, e.g. "pgbranch_feature_login".
func ContainerName(base, feature string) string {
	return base + separator + Normalize(feature)
}

// Prefix returns the name prefix identifying containers managed under the
// given base name.
//
// Parameters:
//   - base: Base name shared by all managed containers.
//
// Returns:
//   - string: Name prefix, e.g. "pgbranch_".
func Prefix(base string) string {
	return base + separator
}

// ParseContainerName extracts the feature token from a managed container
// name, tolerating the leading slash the Docker API reports.
//
// Parameters:
//   - base: Base name shared by all managed containers.
//   - name: Container name as reported by the runtime.
//
// Returns:
//   - string: Feature token, empty when the name does not match.
//   - bool: Whether the name belongs to the naming scheme.
func ParseContainerName(base, name string) (string, bool) {
	name = strings.TrimPrefix(name, "/")

	feature, found := strings.CutPrefix(name, Prefix(base))
	if !found || feature == "" {
		return "", false
	}

	// Generated names carry normalized tokens only, so anything else was
	// not created by this tool.
	if Normalize(feature) != feature {
		return "", false
	}

	return feature, true
}

// DatabaseName builds the database identifier from the base database name
// and an optional suffix.
//
// The suffix is normalized before use. An empty suffix, or one whose
// normalized form collapses into the base name itself, yields the bare base
// name to avoid degenerate identifiers such as "appdb_appdb".
//
// Parameters:
//   - base: Base database name, e.g. "appdb".
//   - suffix: Raw suffix, may be empty.
//
// Returns:
//   - string: Database identifier, e.g. "appdb_orders".
func DatabaseName(base, suffix string) string {
	token := Normalize(suffix)
	if token == "" || token == Normalize(base) {
		return base
	}

	return base + separator + token
}
