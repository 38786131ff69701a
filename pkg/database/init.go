// Package database initializes the story-tree database in a target
// project. The preferred path copies a pre-built empty database template;
// when only a SQL schema ships with the bundle, the sqlite3 executable is
// invoked to build the database from it (the same shell-out capability
// pattern pkg/gitconfig uses for git).
package database

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/mharbulous/storysync/pkg/config"
	"github.com/mharbulous/storysync/pkg/errors"
	"github.com/mharbulous/storysync/pkg/logging"
	"github.com/mharbulous/storysync/pkg/types"
)

// Initializer creates the target database
type Initializer struct {
	fs  types.FS
	cfg config.DatabaseConfig
}

// NewInitializer creates an Initializer with the given database settings
func NewInitializer(fsys types.FS, cfg config.DatabaseConfig) *Initializer {
	return &Initializer{fs: fsys, cfg: cfg}
}

// Init creates the database at the target. An existing database is left
// alone unless force is set; that case is reported via ErrDBExists so the
// caller can hint at --force.
func (i *Initializer) Init(sourceRoot, target string, force bool) (string, error) {
	logger := logging.GetLogger("database")

	dest := filepath.Join(target, i.cfg.Dest)
	if _, err := i.fs.Stat(dest); err == nil && !force {
		return dest, errors.Newf(errors.ErrDBExists, "database already exists: %s", dest)
	}

	if err := i.fs.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return dest, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(dest))
	}

	template := filepath.Join(sourceRoot, i.cfg.Template)
	if data, err := i.fs.ReadFile(template); err == nil {
		if err := i.fs.WriteFile(dest, data, 0644); err != nil {
			return dest, errors.Wrapf(err, errors.ErrDBInit, "failed to write %s", dest)
		}
		logger.Info().Str("template", template).Str("dest", dest).Msg("Database initialized from template")
		return dest, nil
	}

	schema := filepath.Join(sourceRoot, i.cfg.Schema)
	if _, err := i.fs.Stat(schema); err != nil {
		return dest, errors.Newf(errors.ErrDBInit, "no template or schema found to initialize database")
	}
	if err := i.execSchema(schema, dest); err != nil {
		return dest, err
	}

	logger.Info().Str("schema", schema).Str("dest", dest).Msg("Database initialized from schema")
	return dest, nil
}

// execSchema builds the database by feeding the schema to the sqlite3 CLI
func (i *Initializer) execSchema(schema, dest string) error {
	if _, err := exec.LookPath("sqlite3"); err != nil {
		return errors.Wrap(err, errors.ErrDBInit, "sqlite3 not found in PATH")
	}

	schemaFile, err := os.Open(schema)
	if err != nil {
		return errors.Wrapf(err, errors.ErrDBInit, "failed to open %s", schema)
	}
	defer func() { _ = schemaFile.Close() }()

	cmd := exec.Command("sqlite3", dest)
	cmd.Stdin = schemaFile
	if out, err := cmd.CombinedOutput(); err != nil {
		// Don't leave a half-built database behind
		_ = i.fs.Remove(dest)
		return errors.Wrapf(err, errors.ErrDBInit, "sqlite3 failed: %s", string(out))
	}
	return nil
}
