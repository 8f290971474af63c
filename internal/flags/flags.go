// Package flags manages command-line flags and environment variables for pgbranch configuration.
package flags

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DockerAPIMinVersion specifies the minimum Docker API version required by pgbranch.
// It ensures compatibility with the Docker client.
const DockerAPIMinVersion string = "1.44"

// Defaults for the database container configuration.
const (
	// defaultImage is the PostgreSQL image used when none is configured.
	defaultImage = "postgres:17-alpine"
	// defaultBaseName prefixes every managed container name.
	defaultBaseName = "pgbranch"
	// defaultDatabase is the base database name restored into new containers.
	defaultDatabase = "appdb"
	// defaultPort is the host port tried when none is requested.
	defaultPort = 5432
	// defaultMetadataTable is the table whose database column is rewritten after a restore.
	defaultMetadataTable = "app_settings"
	// defaultDumpPath is the dump file looked for when none is configured.
	defaultDumpPath = "./dump.sql"
	// defaultDBUser is the database superuser created in new containers.
	defaultDBUser = "postgres"
	// defaultDBPassword is the database superuser password when none is configured.
	defaultDBPassword = "postgres"
	// defaultStartupTries defines how many readiness probes are attempted.
	defaultStartupTries = 60
	// defaultStartupIntervalSeconds defines the delay between readiness probes (2 seconds).
	defaultStartupIntervalSeconds = 2
	// defaultStopTimeoutSeconds defines the default timeout for stopping containers (30 seconds).
	defaultStopTimeoutSeconds = 30
)

// errInvalidLogFormat indicates an invalid log format was specified.
// It is used in SetupLogging to report configuration errors.
var errInvalidLogFormat = errors.New("invalid log format specified")

// errInvalidLogLevel indicates an invalid log level was specified.
// It is used in SetupLogging to report configuration errors.
var errInvalidLogLevel = errors.New("invalid log level specified")

// errSetEnvFailed indicates a failure to set an environment variable.
// It is used in setEnvOptStr to wrap os.Setenv errors.
var errSetEnvFailed = errors.New("failed to set environment variable")

// errReadFileFailed indicates a failure to read a file's contents.
// It is used in getSecretFromFile to wrap os.ReadFile errors.
var errReadFileFailed = errors.New("failed to read secret file")

// errSetFlagFailed indicates a failure to set a flag's value.
// It is used in getSecretFromFile and EnvConfig to wrap flag errors.
var errSetFlagFailed = errors.New("failed to set flag value")

// RegisterDockerFlags adds flags used directly by the Docker API client to the root command.
// These flags configure the Docker connection settings.
func RegisterDockerFlags(rootCmd *cobra.Command) {
	flags := rootCmd.PersistentFlags()
	flags.StringP("host", "H", envString("DOCKER_HOST"), "daemon socket to connect to")
	flags.BoolP("tlsverify", "v", envBool("DOCKER_TLS_VERIFY"), "use TLS and verify the remote")
	flags.StringP(
		"api-version",
		"a",
		envString("DOCKER_API_VERSION"),
		"api version to use by docker client",
	)
}

// RegisterSystemFlags adds flags that modify pgbranch's program flow to the root command.
// These flags control logging, startup polling, and container shutdown behavior.
func RegisterSystemFlags(rootCmd *cobra.Command) {
	flags := rootCmd.PersistentFlags()

	flags.DurationP(
		"stop-timeout",
		"t",
		envDuration("PGBRANCH_STOP_TIMEOUT"),
		"Timeout before a container is forcefully stopped")

	flags.IntP(
		"startup-tries",
		"",
		envInt("PGBRANCH_STARTUP_TRIES"),
		"Maximum number of readiness probes after starting a container")

	flags.DurationP(
		"startup-interval",
		"",
		envDuration("PGBRANCH_STARTUP_INTERVAL"),
		"Delay between readiness probes")

	flags.BoolP(
		"remove-volumes",
		"",
		envBool("PGBRANCH_REMOVE_VOLUMES"),
		"Remove anonymous volumes together with containers")

	flags.BoolP(
		"no-startup-message",
		"",
		envBool("PGBRANCH_NO_STARTUP_MESSAGE"),
		"Do not print the startup banner in interactive mode")

	flags.BoolP(
		"debug",
		"d",
		envBool("PGBRANCH_DEBUG"),
		"Enable debug mode with verbose logging")

	flags.BoolP(
		"trace",
		"",
		envBool("PGBRANCH_TRACE"),
		"Enable trace mode with very verbose logging")

	flags.StringP(
		"log-level",
		"",
		envString("PGBRANCH_LOG_LEVEL"),
		"The maximum log level that will be written to STDERR. Possible values: panic, fatal, error, warn, info, debug or trace")

	flags.StringP(
		"log-format",
		"l",
		envString("PGBRANCH_LOG_FORMAT"),
		"Sets what logging format to use for console output. Possible values: Auto, LogFmt, Pretty or JSON")

	flags.BoolP(
		"no-color",
		"",
		envBool("NO_COLOR"),
		"Disable ANSI color escape codes in log output")
}

// RegisterDatabaseFlags adds flags that describe the database containers to the root command.
// These flags configure the image, naming, credentials, and restore inputs.
func RegisterDatabaseFlags(rootCmd *cobra.Command) {
	flags := rootCmd.PersistentFlags()

	flags.StringP(
		"image",
		"i",
		envString("PGBRANCH_IMAGE"),
		"PostgreSQL image to run database containers from")

	flags.StringP(
		"base-name",
		"",
		envString("PGBRANCH_BASE_NAME"),
		"Base name prefixed to every managed container")

	flags.StringP(
		"database",
		"b",
		envString("PGBRANCH_DATABASE"),
		"Base database name restored into new containers")

	flags.IntP(
		"port",
		"p",
		envInt("PGBRANCH_PORT"),
		"Host port to publish the database on")

	flags.StringP(
		"dump",
		"f",
		envString("PGBRANCH_DUMP"),
		"Path to the SQL dump file restored into new containers")

	flags.StringP(
		"db-suffix",
		"",
		envString("PGBRANCH_DB_SUFFIX"),
		"Optional suffix appended to the base database name")

	flags.StringP(
		"db-user",
		"u",
		envString("PGBRANCH_DB_USER"),
		"Database superuser name")

	flags.StringP(
		"db-password",
		"",
		envString("PGBRANCH_DB_PASSWORD"),
		"Database superuser password, or a path to a file containing it")

	flags.StringP(
		"metadata-table",
		"",
		envString("PGBRANCH_METADATA_TABLE"),
		"Application settings table whose database column is rewritten after a restore, empty to skip")
}

// envString retrieves a string value from an environment variable via Viper.
// It binds the key to the environment and returns its value.
func envString(key string) string {
	viper.MustBindEnv(key)

	return viper.GetString(key)
}

// envInt retrieves an integer value from an environment variable via Viper.
// It binds the key to the environment and returns its value.
func envInt(key string) int {
	viper.MustBindEnv(key)

	return viper.GetInt(key)
}

// envBool retrieves a boolean value from an environment variable via Viper.
// It binds the key to the environment and returns its value.
func envBool(key string) bool {
	viper.MustBindEnv(key)

	return viper.GetBool(key)
}

// envDuration retrieves a duration value from an environment variable via Viper.
// It binds the key to the environment and returns its value.
func envDuration(key string) time.Duration {
	viper.MustBindEnv(key)

	return viper.GetDuration(key)
}

// SetDefaults configures default values for environment variables.
// It ensures consistent fallback behavior when flags or environment variables are unset.
func SetDefaults() {
	viper.AutomaticEnv()
	viper.SetDefault("DOCKER_HOST", "unix:///var/run/docker.sock")
	viper.SetDefault("DOCKER_API_VERSION", DockerAPIMinVersion)
	viper.SetDefault("PGBRANCH_IMAGE", defaultImage)
	viper.SetDefault("PGBRANCH_BASE_NAME", defaultBaseName)
	viper.SetDefault("PGBRANCH_DATABASE", defaultDatabase)
	viper.SetDefault("PGBRANCH_PORT", defaultPort)
	viper.SetDefault("PGBRANCH_DUMP", defaultDumpPath)
	viper.SetDefault("PGBRANCH_DB_USER", defaultDBUser)
	viper.SetDefault("PGBRANCH_DB_PASSWORD", defaultDBPassword)
	viper.SetDefault("PGBRANCH_METADATA_TABLE", defaultMetadataTable)
	viper.SetDefault("PGBRANCH_STARTUP_TRIES", defaultStartupTries)
	viper.SetDefault("PGBRANCH_STARTUP_INTERVAL", time.Second*defaultStartupIntervalSeconds)
	viper.SetDefault("PGBRANCH_STOP_TIMEOUT", time.Second*defaultStopTimeoutSeconds)
	viper.SetDefault("PGBRANCH_REMOVE_VOLUMES", true)
	viper.SetDefault("PGBRANCH_LOG_LEVEL", "info")
	viper.SetDefault("PGBRANCH_LOG_FORMAT", "auto")
}

// EnvConfig sets environment variables based on Docker-related flags.
// It configures the Docker client's environment, returning an error if flag retrieval fails.
func EnvConfig(cmd *cobra.Command) error {
	var err error

	var host string

	var tls bool

	var version string

	flags := cmd.PersistentFlags()

	if host, err = flags.GetString("host"); err != nil {
		return fmt.Errorf("%w: %w", errSetFlagFailed, err)
	}

	if tls, err = flags.GetBool("tlsverify"); err != nil {
		return fmt.Errorf("%w: %w", errSetFlagFailed, err)
	}

	if version, err = flags.GetString("api-version"); err != nil {
		return fmt.Errorf("%w: %w", errSetFlagFailed, err)
	}

	if err = setEnvOptStr("DOCKER_HOST", host); err != nil {
		return err
	}

	if err = setEnvOptBool("DOCKER_TLS_VERIFY", tls); err != nil {
		return err
	}

	if err = setEnvOptStr("DOCKER_API_VERSION", version); err != nil {
		return err
	}

	return nil
}

// setEnvOptStr sets an environment variable to a specified string value if needed.
// It skips setting if the value is empty or matches the current environment, returning an error if the set fails.
func setEnvOptStr(env string, opt string) error {
	if opt == "" || opt == os.Getenv(env) {
		return nil
	}

	if err := os.Setenv(env, opt); err != nil {
		return fmt.Errorf("%w: %s: %w", errSetEnvFailed, env, err)
	}

	return nil
}

// setEnvOptBool sets an environment variable to "1" if the boolean is true.
// It returns an error if the set operation fails, otherwise nil.
func setEnvOptBool(env string, opt bool) error {
	if opt {
		return setEnvOptStr(env, "1")
	}

	return nil
}

// GetSecretsFromFiles replaces flag values with file contents if they reference files.
// It processes a predefined list of secret-related flags, updating their values accordingly.
func GetSecretsFromFiles(rootCmd *cobra.Command) {
	flags := rootCmd.PersistentFlags()

	secrets := []string{
		"db-password",
	}
	for _, secret := range secrets {
		if err := getSecretFromFile(flags, secret); err != nil {
			logrus.Fatalf("failed to get secret from flag %v: %s", secret, err)
		}
	}
}

// getSecretFromFile updates a flag's value with file contents if it references a file.
// It returns an error if file operations fail.
func getSecretFromFile(flags *pflag.FlagSet, secret string) error {
	flag := flags.Lookup(secret)

	value := flag.Value.String()
	if value != "" && isFilePath(value) {
		content, err := os.ReadFile(value)
		if err != nil {
			return fmt.Errorf("%w: %w", errReadFileFailed, err)
		}

		if err := flags.Set(secret, strings.TrimSpace(string(content))); err != nil {
			return fmt.Errorf("%w: %w", errSetFlagFailed, err)
		}
	}

	return nil
}

// isFilePath determines if a string likely represents a file path.
// It checks for file existence, avoiding false positives from URLs or invalid Windows paths.
func isFilePath(path string) bool {
	firstColon := strings.IndexRune(path, ':')
	if firstColon != 1 && firstColon != -1 {
		// If ':' exists but isn't the second character, it's likely not a file path (e.g., URLs).
		return false
	}

	_, err := os.Stat(path)

	return !errors.Is(err, os.ErrNotExist)
}

// ProcessFlagAliases synchronizes flag values based on helper flags.
// It maps the debug and trace shorthands onto the log-level flag.
func ProcessFlagAliases(flags *pflag.FlagSet) {
	if flagIsEnabled(flags, "debug") {
		if err := flags.Set("log-level", "debug"); err != nil {
			logrus.Errorf("Failed to set log-level flag: %v", err)
		}
	}

	if flagIsEnabled(flags, "trace") {
		if err := flags.Set("log-level", "trace"); err != nil {
			logrus.Errorf("Failed to set log-level flag: %v", err)
		}
	}
}

// SetupLogging configures the global logger based on log-related flags.
// It sets the log format and level, returning an error for invalid configurations.
func SetupLogging(flags *pflag.FlagSet) error {
	logFormat, err := flags.GetString("log-format")
	if err != nil {
		return fmt.Errorf("%w: %w", errSetFlagFailed, err)
	}

	noColor, err := flags.GetBool("no-color")
	if err != nil {
		return fmt.Errorf("%w: %w", errSetFlagFailed, err)
	}

	if err := configureLogFormat(logFormat, noColor); err != nil {
		return err
	}

	rawLogLevel, err := flags.GetString("log-level")
	if err != nil {
		return fmt.Errorf("%w: %w", errSetFlagFailed, err)
	}

	logLevel, err := logrus.ParseLevel(rawLogLevel)
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidLogLevel, err)
	}

	logrus.SetLevel(logLevel)

	return nil
}

// configureLogFormat sets the logrus formatter based on the specified format and color preference.
// It returns an error if the format is invalid.
func configureLogFormat(logFormat string, noColor bool) error {
	switch strings.ToLower(logFormat) {
	case "auto":
		logrus.SetFormatter(&logrus.TextFormatter{
			DisableColors:             noColor,
			EnvironmentOverrideColors: true,
		})
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "logfmt":
		logrus.SetFormatter(&logrus.TextFormatter{
			DisableColors: true,
			FullTimestamp: true,
		})
	case "pretty":
		logrus.SetFormatter(&logrus.TextFormatter{
			ForceColors:   !noColor,
			FullTimestamp: false,
		})
	default:
		return fmt.Errorf("%w: %s", errInvalidLogFormat, logFormat)
	}

	return nil
}

// flagIsEnabled checks if a boolean flag is set to true.
// It exits with a fatal error if the flag is not defined.
func flagIsEnabled(flags *pflag.FlagSet, name string) bool {
	value, err := flags.GetBool(name)
	if err != nil {
		logrus.Fatalf("The flag %q is not defined", name)
	}

	return value
}
