// Package workflow sanity-checks CI workflow files before they are copied
// to a target. A file that fails to parse is still installed (the CI
// platform is the authority on validity); the lint only surfaces warnings
// so a broken workflow is noticed before it is pushed.
package workflow

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mharbulous/storysync/pkg/logging"
	"github.com/mharbulous/storysync/pkg/types"
)

// Warning describes one workflow file that failed to parse
type Warning struct {
	File   string
	Detail string
}

// Lint parses every file in dir carrying one of the given extensions as
// YAML and returns a warning per unparseable file. A missing directory
// yields no warnings.
func Lint(fsys types.FS, dir string, exts []string) []Warning {
	logger := logging.GetLogger("workflow")

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var warnings []Warning
	for _, entry := range entries {
		if entry.IsDir() || !hasExt(entry, exts) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := fsys.ReadFile(path)
		if err != nil {
			warnings = append(warnings, Warning{File: entry.Name(), Detail: err.Error()})
			continue
		}

		var doc interface{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			logger.Warn().Str("file", entry.Name()).Err(err).Msg("Workflow file is not valid YAML")
			warnings = append(warnings, Warning{File: entry.Name(), Detail: err.Error()})
		}
	}
	return warnings
}

func hasExt(entry fs.DirEntry, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(entry.Name()))
	for _, want := range exts {
		if ext == want {
			return true
		}
	}
	return false
}
