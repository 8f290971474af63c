package actions

import "errors"

// Errors for container lifecycle operations.
var (
	// ErrAlreadyExists indicates a container for the feature already exists.
	ErrAlreadyExists = errors.New("container already exists")
	// ErrNotFound indicates no container exists for the feature.
	ErrNotFound = errors.New("container not found")
	// ErrRestoreFailed indicates the SQL dump could not be restored into a freshly created container.
	ErrRestoreFailed = errors.New("dump restore failed")
	// errEmptyFeature indicates a feature name with no usable characters.
	errEmptyFeature = errors.New("feature name is empty after normalization")
)
