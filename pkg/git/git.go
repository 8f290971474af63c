package git

import (
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/sirupsen/logrus"
)

// Errors for branch derivation.
var (
	// ErrNotRepository indicates the directory is not inside a git repository.
	ErrNotRepository = errors.New("not a git repository")
	// ErrDetachedHead indicates HEAD does not point at a branch.
	ErrDetachedHead = errors.New("repository HEAD is detached")
)

// CurrentBranch returns the short name of the branch HEAD points at for the
// repository containing dir.
//
// Parameters:
//   - dir: Directory inside the repository, typically ".".
//
// Returns:
//   - string: Short branch name, e.g. "feature/login".
//   - error: Non-nil when no repository is found, HEAD is unresolvable, or detached.
func CurrentBranch(dir string) (string, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return "", fmt.Errorf("%w: %s", ErrNotRepository, dir)
		}

		return "", fmt.Errorf("failed to open repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	if head.Name() == plumbing.HEAD {
		return "", ErrDetachedHead
	}

	branch := head.Name().Short()

	logrus.WithFields(logrus.Fields{
		"dir":    dir,
		"branch": branch,
	}).Debug("Resolved current git branch")

	return branch, nil
}
