// Package config loads the optional storysync.toml file from the bundle
// source root. All settings have compiled-in defaults; the file only needs
// to exist when a bundle diverges from the standard layout.
package config

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/mharbulous/storysync/pkg/errors"
	"github.com/mharbulous/storysync/pkg/logging"
	"github.com/mharbulous/storysync/pkg/types"
)

// ConfigFileName is the name of the tool configuration file at the source root
const ConfigFileName = "storysync.toml"

// Config holds tool-level settings loaded from storysync.toml
type Config struct {
	// Registry is the dependents registry file name, relative to the
	// source root
	Registry string `toml:"registry"`

	// CommandExts are the file extensions installed from the commands
	// category
	CommandExts []string `toml:"command_exts"`

	// ScriptExts are the file extensions installed from the scripts and
	// data categories
	ScriptExts []string `toml:"script_exts"`

	// WorkflowExts are the file extensions installed from the workflows
	// category
	WorkflowExts []string `toml:"workflow_exts"`

	// Database holds init-db settings
	Database DatabaseConfig `toml:"database"`
}

// DatabaseConfig configures the init-db operation
type DatabaseConfig struct {
	// Template is the pre-built empty database, relative to the source root
	Template string `toml:"template"`

	// Schema is the SQL schema used when no template exists, relative to
	// the source root
	Schema string `toml:"schema"`

	// Dest is the database destination, relative to the target root
	Dest string `toml:"dest"`
}

// Default returns the compiled-in configuration
func Default() Config {
	return Config{
		Registry:     "dependents.json",
		CommandExts:  []string{".md"},
		ScriptExts:   []string{".py"},
		WorkflowExts: []string{".yml", ".yaml"},
		Database: DatabaseConfig{
			Template: filepath.Join("templates", "story-tree.db.empty"),
			Schema:   filepath.Join("claude", "skills", "story-tree", "references", "schema.sql"),
			Dest:     filepath.Join(".claude", "data", "story-tree.db"),
		},
	}
}

// Load reads storysync.toml from the source root, merged over defaults.
// A missing file is not an error.
func Load(fsys types.FS, sourceRoot string) (Config, error) {
	logger := logging.GetLogger("config")

	cfg := Default()
	configPath := filepath.Join(sourceRoot, ConfigFileName)

	data, err := fsys.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", configPath).Msg("No config file, using defaults")
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read %s", ConfigFileName)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", ConfigFileName)
	}

	logger.Debug().Str("path", configPath).Msg("Config loaded")
	return cfg, nil
}
