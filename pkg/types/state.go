package types

// ItemState classifies one installed item relative to the bundle source.
// The five states are mutually exclusive: every expected name and every
// bundle-owned name present at the target falls into exactly one of them.
type ItemState string

const (
	// StateValid is a resolvable symlink, or in copy mode a real file or
	// directory
	StateValid ItemState = "valid"

	// StateBroken is a real symlink whose target does not resolve
	StateBroken ItemState = "broken"

	// StatePlaceholder is a small text file holding a symlink's intended
	// target as plain text. Git writes these when a repository is cloned
	// with core.symlinks=false.
	StatePlaceholder ItemState = "placeholder"

	// StateMissing is an expected item absent from the target
	StateMissing ItemState = "missing"

	// StateExtra is a regular file or directory occupying an expected
	// name where a symlink or copy should be
	StateExtra ItemState = "extra"
)

// CategoryReport holds the per-state item names for one category, as
// produced by the health analyzer.
type CategoryReport struct {
	Valid       []string `json:"valid"`
	Broken      []string `json:"broken"`
	Placeholder []string `json:"placeholder"`
	Missing     []string `json:"missing"`
	Extra       []string `json:"extra"`
}

// Issues returns the number of items in a degraded state
func (r CategoryReport) Issues() int {
	return len(r.Broken) + len(r.Placeholder) + len(r.Missing) + len(r.Extra)
}
