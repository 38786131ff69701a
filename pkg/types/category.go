package types

import "io/fs"

// Category describes one class of bundle content (skills, commands, ...).
// The set of categories is fixed at compile time; see pkg/bundle.
type Category struct {
	// Name is the category identifier, also the destination directory name
	Name string

	// SourceDir is the directory holding this category's items, relative
	// to the bundle source root (e.g. "claude/skills")
	SourceDir string

	// DestDir is the directory items are installed into, relative to the
	// target project root (e.g. ".claude/skills")
	DestDir string

	// Match reports whether a source directory entry belongs to this
	// category
	Match func(entry fs.DirEntry) bool

	// SymlinkEligible is false for categories the consuming host requires
	// as literal files (GitHub reads workflows and actions from the work
	// tree, never through links). Those are copied in every mode.
	SymlinkEligible bool
}
