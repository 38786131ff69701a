package commands

import (
	"github.com/mharbulous/storysync/pkg/bundle"
	"github.com/mharbulous/storysync/pkg/config"
	"github.com/mharbulous/storysync/pkg/errors"
	"github.com/mharbulous/storysync/pkg/filesystem"
	"github.com/mharbulous/storysync/pkg/gitconfig"
	"github.com/mharbulous/storysync/pkg/health"
	"github.com/mharbulous/storysync/pkg/logging"
	"github.com/mharbulous/storysync/pkg/types"
)

// DiagnoseOptions defines the options for the Diagnose command
type DiagnoseOptions struct {
	SourceRoot string
	Target     string

	FS      types.FS
	GitPort gitconfig.Port
}

// DiagnoseResult aggregates everything diagnose inspects. Diagnose never
// fails the process on discovered problems; it reports them.
type DiagnoseResult struct {
	// Reports is the per-category health breakdown
	Reports map[string]types.CategoryReport `json:"reports"`

	// GitSettings is the state of the reconciled git keys; empty when the
	// target is not a git repository or git is unavailable
	GitSettings []types.GitSetting `json:"git_settings"`
	GitChecked  bool               `json:"git_checked"`

	// SourceReachable reports whether the bundle source directories exist
	SourceReachable bool `json:"source_reachable"`

	// Issues is the total number of degraded items plus non-ok settings
	Issues int `json:"issues"`
}

// Diagnose inspects the target's installed bundle and reports every
// degraded item, the git configuration state, and source reachability.
func Diagnose(opts DiagnoseOptions) (*DiagnoseResult, error) {
	log := logging.GetLogger("commands")
	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	gitPort := opts.GitPort
	if gitPort == nil {
		gitPort = gitconfig.NewExecPort()
	}

	if _, err := fsys.Stat(opts.Target); err != nil {
		return nil, errors.Newf(errors.ErrTargetNotFound, "target directory does not exist: %s", opts.Target)
	}

	cfg, err := config.Load(fsys, opts.SourceRoot)
	if err != nil {
		return nil, err
	}
	cats := bundle.Categories(cfg)

	result := &DiagnoseResult{
		SourceReachable: bundle.CheckSourceDirs(fsys, opts.SourceRoot, cats) == nil,
	}

	// Diagnosis reads symlink-mode semantics: a real file where a link
	// belongs is reported, not blessed
	analyzer := health.NewAnalyzer(fsys)
	reports, err := analyzer.Analyze(opts.Target, opts.SourceRoot,
		bundle.SymlinkEligible(cats), types.ModeSymlink)
	if err != nil {
		return nil, err
	}
	result.Reports = reports

	reconciler := gitconfig.NewReconciler(gitPort, fsys)
	result.GitSettings, result.GitChecked = reconciler.Status(opts.Target)

	for _, report := range reports {
		result.Issues += report.Issues()
	}
	for _, setting := range result.GitSettings {
		if setting.Status != types.SettingOK {
			result.Issues++
		}
	}
	if !result.SourceReachable {
		result.Issues++
	}

	log.Info().Int("issues", result.Issues).Str("target", opts.Target).Msg("Diagnosis finished")
	return result, nil
}
