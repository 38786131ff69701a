package types

// Mode is the provisioning mode for an install run. It is decided once per
// invocation and does not change while categories are being installed.
type Mode int

const (
	// ModeSymlink links installed items back to the bundle source so that
	// edits to the source are visible immediately.
	ModeSymlink Mode = iota

	// ModeCopy materializes installed items as real files. Used in CI and
	// on hosts where symlinks cannot be created.
	ModeCopy
)

// String returns the human-readable mode name
func (m Mode) String() string {
	switch m {
	case ModeSymlink:
		return "symlink"
	case ModeCopy:
		return "copy"
	default:
		return "unknown"
	}
}
