// Package bundle defines the fixed set of content categories that make up
// the StoryTree bundle and the preconditions on the bundle source tree.
package bundle

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/mharbulous/storysync/pkg/config"
	"github.com/mharbulous/storysync/pkg/errors"
	"github.com/mharbulous/storysync/pkg/types"
)

// Destination namespaces under the target project root
const (
	// ClaudeDir holds the symlink-eligible categories
	ClaudeDir = ".claude"

	// GithubDir holds the copy-only categories. GitHub only honors
	// workflow and action files that exist as literal files in the work
	// tree, so these are never symlinked.
	GithubDir = ".github"
)

// Categories returns the ordered category registry. The order is the
// install order and is fixed so that runs are reproducible.
func Categories(cfg config.Config) []types.Category {
	return []types.Category{
		{
			Name:            "skills",
			SourceDir:       filepath.Join("claude", "skills"),
			DestDir:         filepath.Join(ClaudeDir, "skills"),
			Match:           isDir,
			SymlinkEligible: true,
		},
		{
			Name:            "commands",
			SourceDir:       filepath.Join("claude", "commands"),
			DestDir:         filepath.Join(ClaudeDir, "commands"),
			Match:           fileWithExt(cfg.CommandExts),
			SymlinkEligible: true,
		},
		{
			Name:            "scripts",
			SourceDir:       filepath.Join("claude", "scripts"),
			DestDir:         filepath.Join(ClaudeDir, "scripts"),
			Match:           fileWithExt(cfg.ScriptExts),
			SymlinkEligible: true,
		},
		{
			Name:            "data",
			SourceDir:       filepath.Join("claude", "data"),
			DestDir:         filepath.Join(ClaudeDir, "data"),
			Match:           fileWithExt(cfg.ScriptExts),
			SymlinkEligible: true,
		},
		{
			Name:            "workflows",
			SourceDir:       filepath.Join("github", "workflows"),
			DestDir:         filepath.Join(GithubDir, "workflows"),
			Match:           fileWithExt(cfg.WorkflowExts),
			SymlinkEligible: false,
		},
		{
			Name:            "actions",
			SourceDir:       filepath.Join("github", "actions"),
			DestDir:         filepath.Join(GithubDir, "actions"),
			Match:           isDir,
			SymlinkEligible: false,
		},
	}
}

// AlwaysCopy returns the categories that are copied in every mode. These
// are what fan-out sync pushes to registered dependents.
func AlwaysCopy(cats []types.Category) []types.Category {
	var out []types.Category
	for _, c := range cats {
		if !c.SymlinkEligible {
			out = append(out, c)
		}
	}
	return out
}

// SymlinkEligible returns the categories that may be symlinked
func SymlinkEligible(cats []types.Category) []types.Category {
	var out []types.Category
	for _, c := range cats {
		if c.SymlinkEligible {
			out = append(out, c)
		}
	}
	return out
}

// CheckSourceDirs verifies that every category source directory exists
// under the source root. Missing directories usually mean the bundle
// submodule has not been initialized.
func CheckSourceDirs(fsys types.FS, sourceRoot string, cats []types.Category) error {
	var missing []string
	for _, cat := range cats {
		dir := filepath.Join(sourceRoot, cat.SourceDir)
		if _, err := fsys.Stat(dir); err != nil {
			missing = append(missing, dir)
		}
	}

	if len(missing) > 0 {
		return errors.Newf(errors.ErrSourceMissing,
			"bundle source directories not found (run: git submodule update --init --recursive)").
			WithDetail("missing", missing)
	}
	return nil
}

func isDir(entry fs.DirEntry) bool {
	return entry.IsDir()
}

// fileWithExt matches regular files carrying one of the given extensions
func fileWithExt(exts []string) func(fs.DirEntry) bool {
	return func(entry fs.DirEntry) bool {
		if entry.IsDir() {
			return false
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		for _, want := range exts {
			if ext == want {
				return true
			}
		}
		return false
	}
}
