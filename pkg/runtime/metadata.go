package runtime

import (
	"github.com/nicholas-fedor/pgbranch/pkg/types"
)

// Labels applied to every container created by pgbranch.
const (
	// LabelManaged marks a container as owned by pgbranch.
	LabelManaged = "com.github.nicholas-fedor.pgbranch.managed"
	// LabelFeature records the normalized feature token the container serves.
	LabelFeature = "com.github.nicholas-fedor.pgbranch.feature"
	// LabelDatabase records the database name restored into the container.
	LabelDatabase = "com.github.nicholas-fedor.pgbranch.database"
)

// managedLabels builds the ownership labels for a new container.
//
// Parameters:
//   - spec: Instance description the labels are derived from.
//
// Returns:
//   - map[string]string: Labels to apply at container creation.
func managedLabels(spec types.InstanceSpec) map[string]string {
	return map[string]string{
		LabelManaged:  "true",
		LabelFeature:  spec.Feature,
		LabelDatabase: spec.Database,
	}
}
