package commands

import (
	"path/filepath"

	"github.com/mharbulous/storysync/pkg/config"
	"github.com/mharbulous/storysync/pkg/errors"
	"github.com/mharbulous/storysync/pkg/filesystem"
	"github.com/mharbulous/storysync/pkg/logging"
	"github.com/mharbulous/storysync/pkg/registry"
	"github.com/mharbulous/storysync/pkg/types"
)

// RegisterOptions defines the options for the Register command
type RegisterOptions struct {
	SourceRoot string
	Target     string
	// Name is the friendly name; defaults to the target's base name
	Name string

	FS types.FS
}

// RegisterResult reports the registered entry
type RegisterResult struct {
	Dependent types.Dependent
	// AlreadyRegistered is set when the path was present; nothing changed
	AlreadyRegistered bool
	// SubmoduleMissing warns that the target has no bundle submodule
	SubmoduleMissing bool
}

// Register adds the target to the dependents registry
func Register(opts RegisterOptions) (*RegisterResult, error) {
	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	if _, err := fsys.Stat(opts.Target); err != nil {
		return nil, errors.Newf(errors.ErrTargetNotFound, "directory does not exist: %s", opts.Target)
	}

	result := &RegisterResult{}
	if _, err := fsys.Stat(filepath.Join(opts.Target, ".StoryTree")); err != nil {
		result.SubmoduleMissing = true
	}

	reg, err := openRegistry(opts.SourceRoot, fsys)
	if err != nil {
		return nil, err
	}

	entry, err := reg.Register(opts.Target, opts.Name)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrAlreadyRegistered) {
			result.Dependent = entry
			result.AlreadyRegistered = true
			return result, nil
		}
		return nil, err
	}

	result.Dependent = entry
	return result, nil
}

// UnregisterOptions defines the options for the Unregister command
type UnregisterOptions struct {
	SourceRoot string
	Target     string

	FS types.FS
}

// Unregister removes the target from the dependents registry. Returns
// ErrNotRegistered when the target was never registered.
func Unregister(opts UnregisterOptions) error {
	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	reg, err := openRegistry(opts.SourceRoot, fsys)
	if err != nil {
		return err
	}
	return reg.Unregister(opts.Target)
}

// ListDependentsOptions defines the options for the ListDependents command
type ListDependentsOptions struct {
	SourceRoot string

	FS types.FS
}

// ListDependents returns every registered dependent with liveness
func ListDependents(opts ListDependentsOptions) ([]types.DependentInfo, error) {
	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	reg, err := openRegistry(opts.SourceRoot, fsys)
	if err != nil {
		return nil, err
	}
	return reg.List()
}

// UpdateAllOptions defines the options for the UpdateAll command
type UpdateAllOptions struct {
	SourceRoot string

	FS types.FS
}

// UpdateAll re-syncs the copy-only categories to every registered
// dependent. Failures are isolated per dependent.
func UpdateAll(opts UpdateAllOptions) ([]types.UpdateOutcome, error) {
	log := logging.GetLogger("commands")
	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	reg, err := openRegistry(opts.SourceRoot, fsys)
	if err != nil {
		return nil, err
	}

	outcomes, err := reg.UpdateAll(func(dep types.Dependent) error {
		_, syncErr := SyncWorkflows(SyncWorkflowsOptions{
			SourceRoot: opts.SourceRoot,
			Target:     dep.Path,
			FS:         fsys,
		})
		return syncErr
	})
	if err != nil {
		return nil, err
	}

	log.Info().Int("dependents", len(outcomes)).Msg("Fan-out sync finished")
	return outcomes, nil
}

// openRegistry resolves the registry file location from config
func openRegistry(sourceRoot string, fsys types.FS) (*registry.Registry, error) {
	cfg, err := config.Load(fsys, sourceRoot)
	if err != nil {
		return nil, err
	}
	return registry.New(filepath.Join(sourceRoot, cfg.Registry), fsys), nil
}
