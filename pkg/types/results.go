package types

// ItemAction says how one item was installed
type ItemAction string

const (
	// ActionSymlinked means a symlink to the source was created
	ActionSymlinked ItemAction = "symlinked"

	// ActionCopied means the item was copied from the source
	ActionCopied ItemAction = "copied"
)

// InstalledItem records one item placed at the target
type InstalledItem struct {
	Name   string
	Action ItemAction
}

// InstallResult is the per-category outcome of an install
type InstallResult struct {
	Category string
	Items    []InstalledItem
}

// GitConfigResult reports what the git configuration reconciler did.
// Skipped is set when the target is not a git repository or git cannot be
// found; neither is fatal since copy-mode installs work without git.
type GitConfigResult struct {
	SymlinksChanged bool
	RecurseChanged  bool
	Skipped         bool
	SkipReason      string
}

// SettingStatus is the health of one git config key as seen by diagnose
type SettingStatus string

const (
	SettingOK      SettingStatus = "ok"
	SettingWarning SettingStatus = "warning"
	SettingError   SettingStatus = "error"
)

// GitSetting is one inspected git config key/value
type GitSetting struct {
	Key    string
	Value  string
	Status SettingStatus
}
