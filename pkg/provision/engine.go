// Package provision installs bundle categories into a target project. The
// engine is deliberately dumb: per item it removes whatever occupies the
// destination name and recreates it, which makes a re-run idempotent and
// keeps a partially-interrupted install recoverable.
package provision

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/mharbulous/storysync/pkg/errors"
	"github.com/mharbulous/storysync/pkg/logging"
	"github.com/mharbulous/storysync/pkg/types"
)

// Engine installs bundle categories
type Engine struct {
	fs types.FS
}

// NewEngine creates an Engine using the given filesystem
func NewEngine(fsys types.FS) *Engine {
	return &Engine{fs: fsys}
}

// Install places every source item of one category at the target using the
// given mode. Categories that are not symlink-eligible are copied in every
// mode. Items are processed in name order so runs are reproducible.
func (e *Engine) Install(cat types.Category, sourceRoot, target string, mode types.Mode) (types.InstallResult, error) {
	logger := logging.GetLogger("provision")
	result := types.InstallResult{Category: cat.Name}

	srcDir := filepath.Join(sourceRoot, cat.SourceDir)
	entries, err := e.fs.ReadDir(srcDir)
	if err != nil {
		return result, errors.Wrapf(err, errors.ErrSourceMissing,
			"source directory for category %q not found", cat.Name)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	destDir := filepath.Join(target, cat.DestDir)
	if err := e.fs.MkdirAll(destDir, 0755); err != nil {
		return result, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", destDir)
	}

	useSymlinks := mode == types.ModeSymlink && cat.SymlinkEligible

	for _, entry := range entries {
		if !cat.Match(entry) {
			continue
		}

		src := filepath.Join(srcDir, entry.Name())
		dest := filepath.Join(destDir, entry.Name())

		// Installation is remove-then-recreate: stale files, directories
		// and links of the same name are cleared first
		if err := e.removeExisting(dest); err != nil {
			return result, err
		}

		var action types.ItemAction
		if useSymlinks {
			if err := e.createSymlink(src, dest); err != nil {
				return result, err
			}
			action = types.ActionSymlinked
		} else {
			if err := e.copyItem(src, dest); err != nil {
				return result, err
			}
			action = types.ActionCopied
		}

		logger.Debug().
			Str("category", cat.Name).
			Str("item", entry.Name()).
			Str("action", string(action)).
			Msg("Item installed")
		result.Items = append(result.Items, types.InstalledItem{Name: entry.Name(), Action: action})
	}

	logger.Info().Str("category", cat.Name).Int("items", len(result.Items)).Msg("Category installed")
	return result, nil
}

// removeExisting clears whatever holds the destination name. Directories
// are removed recursively unless they are symlinks to directories.
func (e *Engine) removeExisting(dest string) error {
	info, err := e.fs.Lstat(dest)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to inspect %s", dest)
	}

	if info.IsDir() && info.Mode()&fs.ModeSymlink == 0 {
		err = e.fs.RemoveAll(dest)
	} else {
		err = e.fs.Remove(dest)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to remove existing %s", dest)
	}
	return nil
}

// createSymlink links dest to the absolute source path
func (e *Engine) createSymlink(src, dest string) error {
	absSrc, err := filepath.Abs(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to resolve %s", src)
	}
	if err := e.fs.Symlink(absSrc, dest); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to link %s", dest)
	}
	return nil
}

// copyItem copies a file or directory tree from src to dest
func (e *Engine) copyItem(src, dest string) error {
	info, err := e.fs.Stat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", src)
	}
	if info.IsDir() {
		return e.copyDir(src, dest)
	}
	return e.copyFile(src, dest, info.Mode())
}

func (e *Engine) copyDir(src, dest string) error {
	srcInfo, err := e.fs.Stat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", src)
	}
	if err := e.fs.MkdirAll(dest, srcInfo.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dest)
	}

	entries, err := e.fs.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", src)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		destPath := filepath.Join(dest, entry.Name())
		if entry.IsDir() {
			if err := e.copyDir(srcPath, destPath); err != nil {
				return err
			}
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", srcPath)
		}
		if err := e.copyFile(srcPath, destPath, info.Mode()); err != nil {
			return err
		}
	}
	return nil
}

// copyFile copies file content preserving the source mode bits
func (e *Engine) copyFile(src, dest string, mode fs.FileMode) error {
	data, err := e.fs.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to read %s", src)
	}
	if err := e.fs.WriteFile(dest, data, mode.Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to write %s", dest)
	}
	return nil
}
