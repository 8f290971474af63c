package runtime

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/distribution/reference"
	"github.com/sirupsen/logrus"

	dockerCliConfig "github.com/docker/cli/cli/config"
	dockerConfigConfigfile "github.com/docker/cli/cli/config/configfile"
	dockerConfigCredentials "github.com/docker/cli/cli/config/credentials"
	dockerConfigTypes "github.com/docker/cli/cli/config/types"
	dockerImageType "github.com/docker/docker/api/types/image"
)

// Domains for Docker Hub, the default registry.
const (
	// DefaultRegistryDomain is the canonical domain of Docker Hub image references.
	DefaultRegistryDomain = "docker.io"
	// DefaultRegistryHost is the credential host Docker Hub credentials are stored under.
	DefaultRegistryHost = "index.docker.io"
)

// GetPullOptions creates a struct with all options needed for pulling images from a registry.
// It retrieves encoded authentication credentials for the specified image and configures
// pull options, including a privilege function for handling authentication retries.
func GetPullOptions(imageName string) (dockerImageType.PullOptions, error) {
	fields := logrus.Fields{
		"image": imageName,
	}

	logrus.WithFields(fields).Debug("Retrieving pull options")

	auth, err := EncodedAuth(imageName)
	if err != nil {
		logrus.WithError(err).WithFields(fields).Debug("Failed to get authentication credentials")

		return dockerImageType.PullOptions{}, fmt.Errorf("%w: %w", errFailedGetAuth, err)
	}

	if auth == "" {
		logrus.WithFields(fields).Debug("No authentication credentials found")

		return dockerImageType.PullOptions{}, nil
	}

	pullOptions := dockerImageType.PullOptions{
		RegistryAuth:  auth,
		PrivilegeFunc: DefaultAuthHandler,
	}

	logrus.WithFields(fields).Debug("Configured pull options")

	return pullOptions, nil
}

// DefaultAuthHandler is a privilege function called when initial authentication fails.
// It logs the rejection and returns an empty string to retry the request without authentication,
// as retrying with the same credentials used in AuthConfig is unlikely to succeed.
func DefaultAuthHandler(_ context.Context) (string, error) {
	logrus.Debug("Authentication rejected, retrying without credentials")

	return "", nil
}

// EncodedAuth attempts to retrieve encoded authentication credentials for a given image reference,
// first checking environment variables and then falling back to the Docker config file if necessary.
// It returns the encoded auth string or an error if both methods fail.
func EncodedAuth(ref string) (string, error) {
	fields := logrus.Fields{
		"image_ref": ref,
	}

	logrus.WithFields(fields).Debug("Attempting to retrieve auth credentials")

	auth, err := EncodedEnvAuth()
	if err != nil {
		logrus.WithError(err).
			WithFields(fields).
			Debug("Environment auth not available, trying config file")

		auth, err = EncodedConfigAuth(ref)
	}

	return auth, err
}

// EncodedEnvAuth checks for REPO_USER and REPO_PASS environment variables and encodes them into
// a base64 string if present. It returns an error if these variables are not set.
func EncodedEnvAuth() (string, error) {
	username := os.Getenv("REPO_USER")
	password := os.Getenv("REPO_PASS")

	if username != "" && password != "" {
		auth := dockerConfigTypes.AuthConfig{
			Username: username,
			Password: password,
		}

		logrus.WithField("username", username).Debug("Loaded auth credentials from environment")

		return EncodeAuth(auth)
	}

	return "", errUnsetRegAuthVars
}

// EncodedConfigAuth retrieves authentication credentials from the Docker CLI config for the given
// image reference. The DOCKER_CONFIG environment variable overrides the default config directory.
// It returns an encoded auth string, an empty string when no credentials are stored for the
// registry, or an error if the config cannot be loaded.
func EncodedConfigAuth(imageRef string) (string, error) {
	fields := logrus.Fields{
		"image_ref": imageRef,
	}

	server, err := registryAddress(imageRef)
	if err != nil {
		logrus.WithError(err).WithFields(fields).Debug("Failed to get registry address")

		return "", fmt.Errorf("%w: %w", errFailedGetRegistryAddress, err)
	}

	// An empty directory makes the Docker CLI fall back to its default
	// config location (~/.docker).
	configDir := os.Getenv("DOCKER_CONFIG")

	configFile, err := dockerCliConfig.Load(configDir)
	if err != nil {
		logrus.WithError(err).
			WithFields(fields).
			WithField("config_dir", configDir).
			Debug("Failed to load Docker config")

		return "", fmt.Errorf("%w: %w", errFailedLoadDockerConfig, err)
	}

	credStore := CredentialsStore(*configFile)
	auth, _ := credStore.Get(server)

	if auth == (dockerConfigTypes.AuthConfig{}) {
		logrus.WithFields(fields).WithFields(logrus.Fields{
			"server":      server,
			"config_file": configFile.Filename,
		}).Debug("No credentials found in config")

		return "", nil
	}

	logrus.WithFields(fields).WithFields(logrus.Fields{
		"username": auth.Username,
		"server":   server,
	}).Debug("Loaded auth credentials from config")

	return EncodeAuth(auth)
}

// CredentialsStore returns a new credentials store based on the settings provided in the configuration file.
// It determines whether to use a native or file-based store depending on the config.
func CredentialsStore(configFile dockerConfigConfigfile.ConfigFile) dockerConfigCredentials.Store {
	if configFile.CredentialsStore != "" {
		return dockerConfigCredentials.NewNativeStore(&configFile, configFile.CredentialsStore)
	}

	return dockerConfigCredentials.NewFileStore(&configFile)
}

// EncodeAuth Base64 encodes an AuthConfig struct for transmission over HTTP.
// It marshals the struct to JSON and applies URL-safe base64 encoding.
func EncodeAuth(authConfig dockerConfigTypes.AuthConfig) (string, error) {
	buf, err := json.Marshal(authConfig)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errFailedMarshalAuthConfig, err)
	}

	return base64.URLEncoding.EncodeToString(buf), nil
}

// registryAddress extracts the registry address from an image reference.
// It returns the domain part of the reference, mapping Docker Hub's default
// domain to its canonical credential host.
func registryAddress(imageRef string) (string, error) {
	normalizedRef, err := reference.ParseNormalizedNamed(imageRef)
	if err != nil {
		return "", fmt.Errorf("failed to parse image reference: %w", err)
	}

	address := reference.Domain(normalizedRef)
	if address == DefaultRegistryDomain {
		address = DefaultRegistryHost
	}

	return address, nil
}
