package actions

import (
	"github.com/sirupsen/logrus"

	"github.com/nicholas-fedor/pgbranch/internal/config"
	"github.com/nicholas-fedor/pgbranch/pkg/names"
	"github.com/nicholas-fedor/pgbranch/pkg/types"
)

// List returns the managed database containers under the configured base
// name, sorted by name, with the feature token parsed out of each name for
// display.
func List(client types.Client, cfg *config.Config) ([]types.Instance, error) {
	instances, err := client.ListInstances(names.Prefix(cfg.BaseName))
	if err != nil {
		return nil, err
	}

	for i := range instances {
		if feature, ok := names.ParseContainerName(cfg.BaseName, instances[i].Name); ok {
			instances[i].Feature = feature
		}
	}

	logrus.WithField("count", len(instances)).Debug("Listed managed containers")

	return instances, nil
}
