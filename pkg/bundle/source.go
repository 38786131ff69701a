package bundle

import (
	"os"
	"path/filepath"

	"github.com/mharbulous/storysync/pkg/errors"
)

// EnvSourceRoot overrides the bundle source root location
const EnvSourceRoot = "STORYTREE_ROOT"

// ResolveSourceRoot determines the bundle source root: the explicit value
// when given, then STORYTREE_ROOT, then the current directory. The result
// is always absolute.
func ResolveSourceRoot(explicit string) (string, error) {
	root := explicit
	if root == "" {
		root = os.Getenv(EnvSourceRoot)
	}
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrFileAccess, "failed to determine working directory")
		}
		root = cwd
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to resolve source root %s", root)
	}
	return abs, nil
}
