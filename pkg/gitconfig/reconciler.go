// Package gitconfig reconciles the repository-local git settings a symlink
// install depends on: core.symlinks (so git records real symlinks instead
// of text placeholders) and submodule.recurse (so git pull keeps the bundle
// submodule current).
package gitconfig

import (
	"path/filepath"

	"github.com/mharbulous/storysync/pkg/logging"
	"github.com/mharbulous/storysync/pkg/types"
)

// Keys reconciled in the target repository's local config
const (
	KeySymlinks         = "core.symlinks"
	KeySubmoduleRecurse = "submodule.recurse"

	// wantValue is the literal both keys must hold
	wantValue = "true"
)

// Reconciler drives the idempotent read-modify cycle over the two keys
type Reconciler struct {
	port Port
	fs   types.FS
}

// NewReconciler creates a Reconciler using the given port and filesystem
func NewReconciler(port Port, fsys types.FS) *Reconciler {
	return &Reconciler{port: port, fs: fsys}
}

// Reconcile ensures both keys are "true" in the target's local config.
// A target that is not a git repository, or a host without git, yields a
// skipped result rather than an error: neither blocks a copy-mode install.
func (r *Reconciler) Reconcile(target string) types.GitConfigResult {
	logger := logging.GetLogger("gitconfig")

	if skip, reason := r.skipReason(target); skip {
		logger.Warn().Str("target", target).Str("reason", reason).Msg("Skipping git configuration")
		return types.GitConfigResult{Skipped: true, SkipReason: reason}
	}

	result := types.GitConfigResult{}
	result.SymlinksChanged = r.reconcileKey(target, KeySymlinks)
	result.RecurseChanged = r.reconcileKey(target, KeySubmoduleRecurse)
	return result
}

// reconcileKey sets key to "true" unless it already is. Returns whether a
// change was made.
func (r *Reconciler) reconcileKey(target, key string) bool {
	logger := logging.GetLogger("gitconfig")

	current, ok, err := r.port.GetLocal(target, key)
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Failed to read git config")
		return false
	}
	if ok && current == wantValue {
		return false
	}

	if err := r.port.SetLocal(target, key, wantValue); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Failed to set git config")
		return false
	}

	logger.Info().Str("key", key).Str("value", wantValue).Msg("Git config updated")
	return true
}

// Status inspects both keys without modifying anything; used by diagnose
func (r *Reconciler) Status(target string) ([]types.GitSetting, bool) {
	if skip, _ := r.skipReason(target); skip {
		return nil, false
	}

	keys := []string{KeySymlinks, KeySubmoduleRecurse}
	settings := make([]types.GitSetting, 0, len(keys))
	for _, key := range keys {
		setting := types.GitSetting{Key: key}
		current, ok, err := r.port.GetLocal(target, key)
		switch {
		case err != nil:
			setting.Status = types.SettingError
		case ok && current == wantValue:
			setting.Value = current
			setting.Status = types.SettingOK
		default:
			setting.Value = current
			setting.Status = types.SettingWarning
		}
		settings = append(settings, setting)
	}
	return settings, true
}

// skipReason reports why reconciliation cannot run against this target
func (r *Reconciler) skipReason(target string) (bool, string) {
	if _, err := r.fs.Lstat(filepath.Join(target, ".git")); err != nil {
		return true, "target is not a git repository"
	}
	if !r.port.Available() {
		return true, "git not found in PATH"
	}
	return false, ""
}
