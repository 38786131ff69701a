// Package commands implements the storysync operations behind the CLI.
// Each operation takes an options struct and returns a result struct; the
// CLI layer in internal/cli only parses flags and renders results.
package commands

import (
	"path/filepath"
	"runtime"

	"github.com/mharbulous/storysync/pkg/bundle"
	"github.com/mharbulous/storysync/pkg/config"
	"github.com/mharbulous/storysync/pkg/database"
	"github.com/mharbulous/storysync/pkg/envmode"
	"github.com/mharbulous/storysync/pkg/errors"
	"github.com/mharbulous/storysync/pkg/filesystem"
	"github.com/mharbulous/storysync/pkg/gitconfig"
	"github.com/mharbulous/storysync/pkg/health"
	"github.com/mharbulous/storysync/pkg/logging"
	"github.com/mharbulous/storysync/pkg/provision"
	"github.com/mharbulous/storysync/pkg/types"
	"github.com/mharbulous/storysync/pkg/workflow"
)

// InstallOptions defines the options for the Install command
type InstallOptions struct {
	// SourceRoot is the bundle source checkout
	SourceRoot string
	// Target is the consuming project root
	Target string
	// ExplicitCI forces copy mode
	ExplicitCI bool
	// InitDB additionally initializes the story-tree database
	InitDB bool
	// ForceDB overwrites an existing database during InitDB
	ForceDB bool

	// FS defaults to the OS filesystem
	FS types.FS
	// GitPort defaults to the git executable
	GitPort gitconfig.Port
}

// InstallResult is the aggregate outcome of an install run
type InstallResult struct {
	Mode       types.Mode
	GitConfig  types.GitConfigResult
	Cleaned    int
	Categories []types.InstallResult
	Warnings   []workflow.Warning

	// Post-install verification (symlink mode only)
	Verified    bool
	ValidLinks  int
	BrokenLinks int

	DatabasePath string
}

// Install provisions every bundle category into the target
func Install(opts InstallOptions) (*InstallResult, error) {
	log := logging.GetLogger("commands")
	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	gitPort := opts.GitPort
	if gitPort == nil {
		gitPort = gitconfig.NewExecPort()
	}

	cfg, err := config.Load(fsys, opts.SourceRoot)
	if err != nil {
		return nil, err
	}
	cats := bundle.Categories(cfg)

	// Preconditions: nothing is mutated until these pass
	if _, err := fsys.Stat(opts.Target); err != nil {
		return nil, errors.Newf(errors.ErrTargetNotFound, "target directory does not exist: %s", opts.Target)
	}
	if err := bundle.CheckSourceDirs(fsys, opts.SourceRoot, cats); err != nil {
		return nil, err
	}

	mode := envmode.DetectDefault(opts.ExplicitCI)
	if mode == types.ModeSymlink && runtime.GOOS == "windows" && !envmode.CheckSymlinkSupport() {
		return nil, errors.New(errors.ErrSymlinkUnsupported,
			"cannot create symlinks on this host; enable Developer Mode or re-run with --ci")
	}

	result := &InstallResult{Mode: mode}
	engine := provision.NewEngine(fsys)

	// Symlink installs need git to record links faithfully and old
	// placeholders cleared before fresh links go in
	if mode == types.ModeSymlink {
		reconciler := gitconfig.NewReconciler(gitPort, fsys)
		result.GitConfig = reconciler.Reconcile(opts.Target)
		result.Cleaned = engine.CleanPlaceholders(opts.Target, cats)
	}

	result.Warnings = workflow.Lint(fsys, workflowDir(opts.SourceRoot, cats), cfg.WorkflowExts)

	for _, cat := range cats {
		catResult, err := engine.Install(cat, opts.SourceRoot, opts.Target, mode)
		if err != nil {
			return result, err
		}
		result.Categories = append(result.Categories, catResult)
	}

	if opts.InitDB {
		init := database.NewInitializer(fsys, cfg.Database)
		dest, err := init.Init(opts.SourceRoot, opts.Target, opts.ForceDB)
		if err != nil {
			return result, err
		}
		result.DatabasePath = dest
	}

	if mode == types.ModeSymlink {
		analyzer := health.NewAnalyzer(fsys)
		valid, broken, err := analyzer.Verify(opts.Target, opts.SourceRoot,
			bundle.SymlinkEligible(cats), mode)
		if err != nil {
			log.Warn().Err(err).Msg("Post-install verification failed")
		} else {
			result.Verified = true
			result.ValidLinks = valid
			result.BrokenLinks = broken
		}
	}

	log.Info().
		Stringer("mode", mode).
		Str("target", opts.Target).
		Int("categories", len(result.Categories)).
		Msg("Install finished")
	return result, nil
}

// workflowDir finds the workflows category source directory
func workflowDir(sourceRoot string, cats []types.Category) string {
	for _, cat := range cats {
		if cat.Name == "workflows" {
			return filepath.Join(sourceRoot, cat.SourceDir)
		}
	}
	return ""
}
