// Package git derives default feature names from the local git checkout.
// When no feature name is given on the command line, the current branch of
// the repository containing the working directory is used instead.
//
// Key components:
//   - CurrentBranch: Short branch name of HEAD for a repository found from a directory.
//   - ErrNotRepository/ErrDetachedHead: Sentinels for the unusable checkouts.
//
// Usage example:
//
//	branch, err := git.CurrentBranch(".")
//	if err != nil {
//	    logrus.WithError(err).Debug("No branch to derive a feature name from")
//	}
//
// Repository discovery walks up parent directories the same way the git CLI
// does, so the tool works from any subdirectory of a checkout.
package git
