package commands

import (
	"github.com/mharbulous/storysync/pkg/config"
	"github.com/mharbulous/storysync/pkg/database"
	"github.com/mharbulous/storysync/pkg/errors"
	"github.com/mharbulous/storysync/pkg/filesystem"
	"github.com/mharbulous/storysync/pkg/types"
)

// InitDBOptions defines the options for the InitDB command
type InitDBOptions struct {
	SourceRoot string
	Target     string
	// Force overwrites an existing database
	Force bool

	FS types.FS
}

// InitDB creates the story-tree database in the target project
func InitDB(opts InitDBOptions) (string, error) {
	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	if _, err := fsys.Stat(opts.Target); err != nil {
		return "", errors.Newf(errors.ErrTargetNotFound, "target directory does not exist: %s", opts.Target)
	}

	cfg, err := config.Load(fsys, opts.SourceRoot)
	if err != nil {
		return "", err
	}

	init := database.NewInitializer(fsys, cfg.Database)
	return init.Init(opts.SourceRoot, opts.Target, opts.Force)
}
