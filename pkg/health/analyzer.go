// Package health classifies installed bundle items. Every expected item
// name, and every name the bundle defines that is present at the target,
// lands in exactly one of the five states in pkg/types.
//
// The classification feeds two consumers: the terse post-install
// verification (counts only) and the diagnose report (full per-category
// breakdown).
package health

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/mharbulous/storysync/pkg/logging"
	"github.com/mharbulous/storysync/pkg/types"
)

// Analyzer inspects a target's installed categories
type Analyzer struct {
	fs types.FS
}

// NewAnalyzer creates an Analyzer using the given filesystem
func NewAnalyzer(fsys types.FS) *Analyzer {
	return &Analyzer{fs: fsys}
}

// Analyze classifies every item of every given category at the target.
// The mode decides what counts as valid for an item that is a real file
// or directory: in copy mode that is the expected shape, in symlink mode
// it is an Extra standing where a link should be.
func (a *Analyzer) Analyze(target, sourceRoot string, cats []types.Category, mode types.Mode) (map[string]types.CategoryReport, error) {
	logger := logging.GetLogger("health")

	reports := make(map[string]types.CategoryReport, len(cats))
	for _, cat := range cats {
		report, err := a.analyzeCategory(target, sourceRoot, cat, mode)
		if err != nil {
			return nil, err
		}
		reports[cat.Name] = report
		logger.Debug().
			Str("category", cat.Name).
			Int("valid", len(report.Valid)).
			Int("issues", report.Issues()).
			Msg("Category analyzed")
	}
	return reports, nil
}

// Verify returns only the valid and broken counts across the given
// categories; used for the terse post-install check.
func (a *Analyzer) Verify(target, sourceRoot string, cats []types.Category, mode types.Mode) (valid, broken int, err error) {
	reports, err := a.Analyze(target, sourceRoot, cats, mode)
	if err != nil {
		return 0, 0, err
	}
	for _, report := range reports {
		valid += len(report.Valid)
		broken += len(report.Broken)
	}
	return valid, broken, nil
}

func (a *Analyzer) analyzeCategory(target, sourceRoot string, cat types.Category, mode types.Mode) (types.CategoryReport, error) {
	report := types.CategoryReport{}

	expected, err := a.expectedNames(sourceRoot, cat)
	if err != nil {
		return report, err
	}
	expectedSet := make(map[string]bool, len(expected))
	for _, name := range expected {
		expectedSet[name] = true
	}

	destDir := filepath.Join(target, cat.DestDir)
	entries, err := a.fs.ReadDir(destDir)
	if err != nil {
		// No destination directory: everything expected is missing
		report.Missing = expected
		return report, nil
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	seen := make(map[string]bool)
	for _, entry := range entries {
		name := entry.Name()
		itemPath := filepath.Join(destDir, name)

		switch {
		case a.isSymlink(itemPath):
			if a.resolves(itemPath) {
				report.Valid = append(report.Valid, name)
			} else {
				report.Broken = append(report.Broken, name)
			}
		case IsPlaceholder(a.fs, itemPath):
			// Placeholder wins over Extra even for names the source does
			// not define
			report.Placeholder = append(report.Placeholder, name)
		case expectedSet[name]:
			if mode == types.ModeCopy {
				report.Valid = append(report.Valid, name)
			} else {
				report.Extra = append(report.Extra, name)
			}
		default:
			// Not bundle-owned; ignore
			continue
		}
		seen[name] = true
	}

	for _, name := range expected {
		if !seen[name] {
			report.Missing = append(report.Missing, name)
		}
	}
	return report, nil
}

// expectedNames lists the source entries matching the category predicate,
// sorted by name
func (a *Analyzer) expectedNames(sourceRoot string, cat types.Category) ([]string, error) {
	srcDir := filepath.Join(sourceRoot, cat.SourceDir)
	entries, err := a.fs.ReadDir(srcDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if cat.Match(entry) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (a *Analyzer) isSymlink(path string) bool {
	info, err := a.fs.Lstat(path)
	if err != nil {
		return false
	}
	return info.Mode()&fs.ModeSymlink != 0
}

// resolves reports whether a symlink's target exists. Stat follows links,
// so an error here means the chain is dangling.
func (a *Analyzer) resolves(path string) bool {
	_, err := a.fs.Stat(path)
	return err == nil
}
