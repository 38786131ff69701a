package commands

import (
	"github.com/mharbulous/storysync/pkg/bundle"
	"github.com/mharbulous/storysync/pkg/config"
	"github.com/mharbulous/storysync/pkg/errors"
	"github.com/mharbulous/storysync/pkg/filesystem"
	"github.com/mharbulous/storysync/pkg/logging"
	"github.com/mharbulous/storysync/pkg/provision"
	"github.com/mharbulous/storysync/pkg/types"
	"github.com/mharbulous/storysync/pkg/workflow"
)

// SyncWorkflowsOptions defines the options for the SyncWorkflows command
type SyncWorkflowsOptions struct {
	SourceRoot string
	Target     string

	FS types.FS
}

// SyncWorkflowsResult is the outcome of one workflow sync
type SyncWorkflowsResult struct {
	Categories []types.InstallResult
	Warnings   []workflow.Warning
}

// SyncWorkflows re-copies the always-copy categories (workflows, actions)
// into the target. Used after bundle updates and by the update-all fan-out.
func SyncWorkflows(opts SyncWorkflowsOptions) (*SyncWorkflowsResult, error) {
	log := logging.GetLogger("commands")
	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	cfg, err := config.Load(fsys, opts.SourceRoot)
	if err != nil {
		return nil, err
	}
	cats := bundle.AlwaysCopy(bundle.Categories(cfg))

	if _, err := fsys.Stat(opts.Target); err != nil {
		return nil, errors.Newf(errors.ErrTargetNotFound, "target directory does not exist: %s", opts.Target)
	}
	if err := bundle.CheckSourceDirs(fsys, opts.SourceRoot, cats); err != nil {
		return nil, err
	}

	result := &SyncWorkflowsResult{
		Warnings: workflow.Lint(fsys, workflowDir(opts.SourceRoot, cats), cfg.WorkflowExts),
	}

	engine := provision.NewEngine(fsys)
	for _, cat := range cats {
		catResult, err := engine.Install(cat, opts.SourceRoot, opts.Target, types.ModeCopy)
		if err != nil {
			return result, err
		}
		result.Categories = append(result.Categories, catResult)
	}

	log.Info().Str("target", opts.Target).Msg("Workflow sync finished")
	return result, nil
}
