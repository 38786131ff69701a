// Package registry persists the set of dependent project checkouts that
// receive copy-only bundle updates. The registry is a JSON array rewritten
// in full on every mutation; concurrent invocations against the same file
// are a documented hazard, not a handled case.
package registry

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/mharbulous/storysync/pkg/errors"
	"github.com/mharbulous/storysync/pkg/logging"
	"github.com/mharbulous/storysync/pkg/types"
)

// Registry manages the dependents file
type Registry struct {
	path string
	fs   types.FS
}

// New creates a Registry persisted at path
func New(path string, fsys types.FS) *Registry {
	return &Registry{path: path, fs: fsys}
}

// Path returns the registry file location
func (r *Registry) Path() string {
	return r.path
}

// Load reads all registered dependents. A missing file is an empty registry.
func (r *Registry) Load() ([]types.Dependent, error) {
	data, err := r.fs.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrRegistryLoad, "failed to read %s", r.path)
	}

	var deps []types.Dependent
	if err := json.Unmarshal(data, &deps); err != nil {
		return nil, errors.Wrapf(err, errors.ErrRegistryLoad, "failed to parse %s", r.path)
	}
	return deps, nil
}

// Save rewrites the registry file in full, pretty-printed
func (r *Registry) Save(deps []types.Dependent) error {
	data, err := json.MarshalIndent(deps, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrRegistrySave, "failed to encode registry")
	}
	data = append(data, '\n')

	if err := r.fs.WriteFile(r.path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrRegistrySave, "failed to write %s", r.path)
	}

	logger := logging.GetLogger("registry")
	logger.Debug().
		Str("path", r.path).
		Int("entries", len(deps)).
		Msg("Registry saved")
	return nil
}

// Register adds a dependent. The path acts as the primary key: registering
// an already-present path returns ErrAlreadyRegistered and changes nothing.
// An empty name defaults to the path's base name.
func (r *Registry) Register(path, name string) (types.Dependent, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return types.Dependent{}, errors.Wrapf(err, errors.ErrInvalidInput, "invalid path %s", path)
	}

	deps, err := r.Load()
	if err != nil {
		return types.Dependent{}, err
	}

	for _, dep := range deps {
		if dep.Path == abs {
			return dep, errors.Newf(errors.ErrAlreadyRegistered, "already registered: %s", abs)
		}
	}

	if name == "" {
		name = filepath.Base(abs)
	}
	entry := types.Dependent{Name: name, Path: abs}
	deps = append(deps, entry)

	if err := r.Save(deps); err != nil {
		return types.Dependent{}, err
	}
	return entry, nil
}

// Unregister removes the dependent with the given path, or returns
// ErrNotRegistered when no entry matches.
func (r *Registry) Unregister(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, "invalid path %s", path)
	}

	deps, err := r.Load()
	if err != nil {
		return err
	}

	kept := deps[:0]
	for _, dep := range deps {
		if dep.Path != abs {
			kept = append(kept, dep)
		}
	}
	if len(kept) == len(deps) {
		return errors.Newf(errors.ErrNotRegistered, "not found in registry: %s", abs)
	}

	return r.Save(kept)
}

// List returns every dependent with a liveness flag (does the registered
// path still exist on disk)
func (r *Registry) List() ([]types.DependentInfo, error) {
	deps, err := r.Load()
	if err != nil {
		return nil, err
	}

	infos := make([]types.DependentInfo, 0, len(deps))
	for _, dep := range deps {
		_, statErr := r.fs.Stat(dep.Path)
		infos = append(infos, types.DependentInfo{Dependent: dep, Exists: statErr == nil})
	}
	return infos, nil
}

// UpdateAll runs sync against every registered dependent with per-entry
// isolation: a missing path or a failure for one dependent never stops
// the rest. The fan-out is not transactional; a partial run leaves
// already-updated dependents updated.
func (r *Registry) UpdateAll(sync func(dep types.Dependent) error) ([]types.UpdateOutcome, error) {
	logger := logging.GetLogger("registry")

	deps, err := r.Load()
	if err != nil {
		return nil, err
	}

	outcomes := make([]types.UpdateOutcome, 0, len(deps))
	for _, dep := range deps {
		outcome := types.UpdateOutcome{Dependent: dep}

		if _, statErr := r.fs.Stat(dep.Path); statErr != nil {
			outcome.Status = types.UpdateSkippedNotFound
			logger.Warn().Str("name", dep.Name).Str("path", dep.Path).Msg("Dependent path not found, skipping")
		} else if syncErr := sync(dep); syncErr != nil {
			outcome.Status = types.UpdateError
			outcome.Err = syncErr
			logger.Error().Err(syncErr).Str("name", dep.Name).Msg("Dependent update failed")
		} else {
			outcome.Status = types.UpdateOK
			logger.Info().Str("name", dep.Name).Msg("Dependent updated")
		}

		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}
