package health

import (
	"os"
	"strings"

	"github.com/mharbulous/storysync/pkg/types"
)

// placeholderMaxSize is the size ceiling for the placeholder heuristic.
// Git-materialized symlink text files hold a single relative path and are
// well under this.
const placeholderMaxSize = 200

// placeholderMarkers are substrings whose presence in a small file's
// trimmed content marks it as a materialized symlink target.
var placeholderMarkers = []string{".StoryTree/", "../"}

// IsPlaceholder reports whether path is a text file standing in for a
// symlink. Git writes these when a repository is cloned with
// core.symlinks=false: the file's content is the link's intended target.
//
// The heuristic is necessarily approximate (a genuinely small text file
// containing "../" would match); it is kept behind this single predicate
// so it can be tightened without touching callers.
func IsPlaceholder(fsys types.FS, path string) bool {
	info, err := fsys.Lstat(path)
	if err != nil {
		return false
	}

	// Real symlinks and directories are never placeholders
	if info.Mode()&os.ModeSymlink != 0 || info.IsDir() {
		return false
	}
	if info.Size() > placeholderMaxSize {
		return false
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return false
	}

	content := strings.TrimSpace(string(data))
	for _, marker := range placeholderMarkers {
		if strings.Contains(content, marker) {
			return true
		}
	}
	return false
}
