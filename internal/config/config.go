package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/distribution/reference"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nicholas-fedor/pgbranch/pkg/names"
)

// maxPort is the highest valid TCP port number.
const maxPort = 65535

// Errors for configuration resolution and validation.
var (
	// errReadFlagFailed indicates a flag value could not be read from the command.
	errReadFlagFailed = errors.New("failed to read flag value")
	// errInvalidImage indicates the image value is not a valid image reference.
	errInvalidImage = errors.New("invalid image reference")
	// errInvalidBaseName indicates the base name is empty or not in normalized form.
	errInvalidBaseName = errors.New("invalid base name")
	// errInvalidDatabase indicates the base database name is empty or not in normalized form.
	errInvalidDatabase = errors.New("invalid database name")
	// errInvalidMetadataTable indicates the metadata table name is not in normalized form.
	errInvalidMetadataTable = errors.New("invalid metadata table name")
	// errInvalidPort indicates the configured port is outside the valid range.
	errInvalidPort = errors.New("invalid port")
	// errInvalidStartupTries indicates the readiness probe count is below one.
	errInvalidStartupTries = errors.New("invalid startup tries")
	// errInvalidStartupInterval indicates the readiness probe interval is not positive.
	errInvalidStartupInterval = errors.New("invalid startup interval")
	// errInvalidStopTimeout indicates the stop timeout is negative.
	errInvalidStopTimeout = errors.New("invalid stop timeout")
	// errEmptyDumpPath indicates no dump file path was configured.
	errEmptyDumpPath = errors.New("dump path must not be empty")
	// errEmptyDBUser indicates no database user was configured.
	errEmptyDBUser = errors.New("database user must not be empty")
)

// Config holds the resolved settings for a pgbranch run.
type Config struct {
	Image           string        // PostgreSQL image containers are created from
	BaseName        string        // Name prefix shared by all managed containers
	BaseDatabase    string        // Base database name restored into new containers
	Port            int           // Default host port published for new containers
	MetadataTable   string        // Settings table rewritten after a restore, empty to skip
	DumpPath        string        // Path to the SQL dump restored into new containers
	DBUser          string        // Database superuser name
	DBPassword      string        // Database superuser password
	DBSuffix        string        // Optional suffix appended to the base database name
	StartupTries    int           // Maximum number of readiness probes
	StartupInterval time.Duration // Delay between readiness probes
	StopTimeout     time.Duration // Timeout before a container is forcefully stopped
	RemoveVolumes   bool          // Remove anonymous volumes together with containers
}

// FromCommand builds a Config from the root command's persistent flags and
// validates it, returning an error when any value is missing or malformed.
func FromCommand(cmd *cobra.Command) (*Config, error) {
	flags := cmd.Root().PersistentFlags()

	cfg := &Config{}

	var err error

	if cfg.Image, err = flags.GetString("image"); err != nil {
		return nil, fmt.Errorf("%w: %w", errReadFlagFailed, err)
	}

	if cfg.BaseName, err = flags.GetString("base-name"); err != nil {
		return nil, fmt.Errorf("%w: %w", errReadFlagFailed, err)
	}

	if cfg.BaseDatabase, err = flags.GetString("database"); err != nil {
		return nil, fmt.Errorf("%w: %w", errReadFlagFailed, err)
	}

	if cfg.Port, err = flags.GetInt("port"); err != nil {
		return nil, fmt.Errorf("%w: %w", errReadFlagFailed, err)
	}

	if cfg.MetadataTable, err = flags.GetString("metadata-table"); err != nil {
		return nil, fmt.Errorf("%w: %w", errReadFlagFailed, err)
	}

	if cfg.DumpPath, err = flags.GetString("dump"); err != nil {
		return nil, fmt.Errorf("%w: %w", errReadFlagFailed, err)
	}

	if cfg.DBUser, err = flags.GetString("db-user"); err != nil {
		return nil, fmt.Errorf("%w: %w", errReadFlagFailed, err)
	}

	if cfg.DBPassword, err = flags.GetString("db-password"); err != nil {
		return nil, fmt.Errorf("%w: %w", errReadFlagFailed, err)
	}

	if cfg.DBSuffix, err = flags.GetString("db-suffix"); err != nil {
		return nil, fmt.Errorf("%w: %w", errReadFlagFailed, err)
	}

	if cfg.StartupTries, err = flags.GetInt("startup-tries"); err != nil {
		return nil, fmt.Errorf("%w: %w", errReadFlagFailed, err)
	}

	if cfg.StartupInterval, err = flags.GetDuration("startup-interval"); err != nil {
		return nil, fmt.Errorf("%w: %w", errReadFlagFailed, err)
	}

	if cfg.StopTimeout, err = flags.GetDuration("stop-timeout"); err != nil {
		return nil, fmt.Errorf("%w: %w", errReadFlagFailed, err)
	}

	if cfg.RemoveVolumes, err = flags.GetBool("remove-volumes"); err != nil {
		return nil, fmt.Errorf("%w: %w", errReadFlagFailed, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"image":     cfg.Image,
		"base_name": cfg.BaseName,
		"database":  cfg.BaseDatabase,
		"port":      cfg.Port,
	}).Debug("Resolved configuration")

	return cfg, nil
}

// validate checks every Config field against its allowed range.
// Identifier fields must already be in normalized form, since the base name is
// embedded in container names and the database and table names are embedded in
// SQL statements.
func (c *Config) validate() error {
	if _, err := reference.ParseNormalizedNamed(c.Image); err != nil {
		return fmt.Errorf("%w: %q: %w", errInvalidImage, c.Image, err)
	}

	if c.BaseName == "" || names.Normalize(c.BaseName) != c.BaseName {
		return fmt.Errorf(
			"%w: %q must contain only lowercase letters, digits, and underscores",
			errInvalidBaseName,
			c.BaseName,
		)
	}

	if c.BaseDatabase == "" || names.Normalize(c.BaseDatabase) != c.BaseDatabase {
		return fmt.Errorf(
			"%w: %q must contain only lowercase letters, digits, and underscores",
			errInvalidDatabase,
			c.BaseDatabase,
		)
	}

	if c.MetadataTable != "" && names.Normalize(c.MetadataTable) != c.MetadataTable {
		return fmt.Errorf(
			"%w: %q must contain only lowercase letters, digits, and underscores",
			errInvalidMetadataTable,
			c.MetadataTable,
		)
	}

	if c.Port < 1 || c.Port > maxPort {
		return fmt.Errorf("%w: %d is outside 1-%d", errInvalidPort, c.Port, maxPort)
	}

	if c.StartupTries < 1 {
		return fmt.Errorf("%w: %d must be at least 1", errInvalidStartupTries, c.StartupTries)
	}

	if c.StartupInterval <= 0 {
		return fmt.Errorf("%w: %s must be positive", errInvalidStartupInterval, c.StartupInterval)
	}

	if c.StopTimeout < 0 {
		return fmt.Errorf("%w: %s must not be negative", errInvalidStopTimeout, c.StopTimeout)
	}

	if c.DumpPath == "" {
		return errEmptyDumpPath
	}

	if c.DBUser == "" {
		return errEmptyDBUser
	}

	return nil
}
