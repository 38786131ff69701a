// Package cli wires the storysync command tree. All real work happens in
// pkg/commands; this layer parses flags and renders results.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mharbulous/storysync/internal/version"
	"github.com/mharbulous/storysync/pkg/bundle"
	"github.com/mharbulous/storysync/pkg/commands"
	"github.com/mharbulous/storysync/pkg/logging"
	"github.com/mharbulous/storysync/pkg/style"
	"github.com/mharbulous/storysync/pkg/types"
	"github.com/mharbulous/storysync/pkg/ui"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity  int
		sourceRoot string
		format     string
	)

	rootCmd := &cobra.Command{
		Use:   "storysync",
		Short: "Provision the StoryTree content bundle into consuming projects",
		Long: `storysync keeps consuming project checkouts in sync with the canonical
StoryTree content bundle. Locally it symlinks skills, commands, scripts and
data so edits to the bundle are live; workflows and actions are always
copied because GitHub requires literal files. In CI everything is copied.`,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			if resolved, _ := ui.ParseFormat(format); ui.Resolve(resolved, os.Stdout) != ui.FormatTerminal {
				pterm.DisableColor()
			}
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&sourceRoot, "source", "", "Bundle source root (default: $STORYTREE_ROOT or current directory)")
	rootCmd.PersistentFlags().StringVar(&format, "format", "auto", "Output format: auto, term, text, json")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newInstallCmd(&sourceRoot))
	rootCmd.AddCommand(newSyncWorkflowsCmd(&sourceRoot))
	rootCmd.AddCommand(newInitDBCmd(&sourceRoot))
	rootCmd.AddCommand(newDiagnoseCmd(&sourceRoot, &format))
	rootCmd.AddCommand(newRegisterCmd(&sourceRoot))
	rootCmd.AddCommand(newUnregisterCmd(&sourceRoot))
	rootCmd.AddCommand(newListDependentsCmd(&sourceRoot, &format))
	rootCmd.AddCommand(newUpdateAllCmd(&sourceRoot))

	return rootCmd
}

// resolveSource resolves the bundle source root, failing the command when
// it cannot be determined
func resolveSource(explicit string) (string, error) {
	root, err := bundle.ResolveSourceRoot(explicit)
	if err != nil {
		return "", fmt.Errorf("failed to resolve source root: %w", err)
	}
	return root, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including commit hash and build date`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("storysync version %s\n", version.Version)
			if version.Commit != "" {
				fmt.Printf("Commit: %s\n", version.Commit)
			}
			if version.Date != "" {
				fmt.Printf("Built:  %s\n", version.Date)
			}
		},
	}
}

func newInstallCmd(sourceRoot *string) *cobra.Command {
	var (
		target  string
		ci      bool
		initDB  bool
		forceDB bool
	)

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the bundle into a target project",
		Long: `Install provisions every bundle category into the target project.

Locally, skills, commands, scripts and data are symlinked so bundle edits
are visible immediately; workflows and actions are copied (GitHub
requirement). With --ci, or when CI=true, everything is copied.`,
		Example: `  # Local development install (symlinks)
  storysync install --target ~/projects/myapp

  # CI install (copies)
  storysync install --target ~/projects/myapp --ci

  # Install and initialize the story-tree database
  storysync install --target ~/projects/myapp --init-db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := resolveSource(*sourceRoot)
			if err != nil {
				return err
			}

			result, err := commands.Install(commands.InstallOptions{
				SourceRoot: source,
				Target:     target,
				ExplicitCI: ci,
				InitDB:     initDB,
				ForceDB:    forceDB,
			})
			if err != nil {
				return err
			}

			renderInstall(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "", "Target project directory")
	cmd.Flags().BoolVar(&ci, "ci", false, "Force CI mode (copy instead of symlink)")
	cmd.Flags().BoolVar(&initDB, "init-db", false, "Also initialize the story-tree database")
	cmd.Flags().BoolVar(&forceDB, "force-db", false, "Overwrite an existing database during --init-db")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func renderInstall(result *commands.InstallResult) {
	if result.GitConfig.Skipped && result.GitConfig.SkipReason != "" {
		pterm.Warning.Printf("Skipping git configuration: %s\n", result.GitConfig.SkipReason)
	}
	if result.GitConfig.SymlinksChanged {
		fmt.Println("Set core.symlinks = true")
	}
	if result.GitConfig.RecurseChanged {
		fmt.Println("Set submodule.recurse = true (git pull will auto-update submodules)")
	}
	if result.Cleaned > 0 {
		fmt.Printf("Cleaned %d symlink placeholder(s) from a previous installation\n", result.Cleaned)
	}
	for _, warning := range result.Warnings {
		pterm.Warning.Printf("Workflow %s is not valid YAML: %s\n", warning.File, warning.Detail)
	}

	fmt.Println(style.RenderInstallSummary(result.Mode, result.Categories))

	if result.DatabasePath != "" {
		fmt.Printf("Initialized database: %s\n", result.DatabasePath)
	}

	if result.Verified {
		if result.BrokenLinks > 0 {
			pterm.Warning.Printf("%d broken symlink(s) detected\n", result.BrokenLinks)
		} else {
			fmt.Printf("All %d symlink(s) verified successfully\n", result.ValidLinks)
		}
	}

	if result.Mode == types.ModeSymlink {
		fmt.Println(style.Muted("Symlinks created. Bundle changes will reflect immediately."))
	} else {
		fmt.Println(style.Muted("Files copied. Run 'storysync sync-workflows' after bundle updates."))
	}
}

func newSyncWorkflowsCmd(sourceRoot *string) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "sync-workflows",
		Short: "Re-copy workflows and actions into a target",
		Long: `Sync-workflows re-copies the always-copy categories (workflows and
actions) into the target. Run it after the bundle updates; symlinked
categories never need this.`,
		Example: `  storysync sync-workflows --target ~/projects/myapp`,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := resolveSource(*sourceRoot)
			if err != nil {
				return err
			}

			result, err := commands.SyncWorkflows(commands.SyncWorkflowsOptions{
				SourceRoot: source,
				Target:     target,
			})
			if err != nil {
				return err
			}

			for _, warning := range result.Warnings {
				pterm.Warning.Printf("Workflow %s is not valid YAML: %s\n", warning.File, warning.Detail)
			}
			fmt.Println(style.RenderInstallSummary(types.ModeCopy, result.Categories))
			fmt.Println("Workflow sync complete.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "", "Target project directory")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func newInitDBCmd(sourceRoot *string) *cobra.Command {
	var (
		target string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init-db",
		Short: "Initialize the story-tree database in a target project",
		Example: `  storysync init-db --target ~/projects/myapp

  # Replace an existing database
  storysync init-db --target ~/projects/myapp --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := resolveSource(*sourceRoot)
			if err != nil {
				return err
			}

			dest, err := commands.InitDB(commands.InitDBOptions{
				SourceRoot: source,
				Target:     target,
				Force:      force,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Initialized database: %s\n", dest)
			return nil
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "", "Target project directory")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing database")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func newDiagnoseCmd(sourceRoot *string, format *string) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "diagnose",
		Short: "Report the health of an installed bundle",
		Long: `Diagnose classifies every installed item (valid, broken, placeholder,
missing, extra), checks the reconciled git settings, and verifies the
bundle source is reachable. It reports problems without failing; re-run
'storysync install' to remediate.`,
		Example: `  storysync diagnose --target ~/projects/myapp

  # Machine-readable report
  storysync diagnose --target ~/projects/myapp --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := resolveSource(*sourceRoot)
			if err != nil {
				return err
			}

			result, err := commands.Diagnose(commands.DiagnoseOptions{
				SourceRoot: source,
				Target:     target,
			})
			if err != nil {
				return err
			}

			if resolved, _ := ui.ParseFormat(*format); resolved == ui.FormatJSON {
				return printJSON(result)
			}

			fmt.Println(style.RenderReports(result.Reports))
			if result.GitChecked {
				fmt.Println(style.RenderGitSettings(result.GitSettings))
			} else {
				fmt.Println(style.Muted("git configuration not checked (not a repository or git unavailable)"))
			}
			if !result.SourceReachable {
				pterm.Warning.Println("Bundle source directories are unreachable (run: git submodule update --init --recursive)")
			}

			if result.Issues == 0 {
				fmt.Println("No issues found.")
			} else {
				fmt.Printf("%d issue(s) found. Re-run 'storysync install' to remediate.\n", result.Issues)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "", "Target project directory")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func newRegisterCmd(sourceRoot *string) *cobra.Command {
	var (
		target string
		name   string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a project as a bundle dependent",
		Long: `Register records the target in the dependents registry so update-all
pushes workflow and action updates to it.`,
		Example: `  storysync register --target ~/projects/myapp --name MyApp`,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := resolveSource(*sourceRoot)
			if err != nil {
				return err
			}

			result, err := commands.Register(commands.RegisterOptions{
				SourceRoot: source,
				Target:     target,
				Name:       name,
			})
			if err != nil {
				return err
			}

			if result.SubmoduleMissing {
				pterm.Warning.Printf("No .StoryTree submodule found in %s\n", target)
			}
			if result.AlreadyRegistered {
				fmt.Printf("Already registered: %s\n", result.Dependent.Path)
				return nil
			}
			fmt.Printf("Registered: %s (%s)\n", result.Dependent.Name, result.Dependent.Path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "", "Project directory to register")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Friendly name (defaults to directory name)")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func newUnregisterCmd(sourceRoot *string) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:     "unregister",
		Short:   "Remove a project from the dependents registry",
		Example: `  storysync unregister --target ~/projects/myapp`,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := resolveSource(*sourceRoot)
			if err != nil {
				return err
			}

			if err := commands.Unregister(commands.UnregisterOptions{
				SourceRoot: source,
				Target:     target,
			}); err != nil {
				return err
			}

			fmt.Printf("Unregistered: %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "", "Project directory to unregister")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func newListDependentsCmd(sourceRoot *string, format *string) *cobra.Command {
	return &cobra.Command{
		Use:     "list-dependents",
		Short:   "List registered dependent projects",
		Example: `  storysync list-dependents`,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := resolveSource(*sourceRoot)
			if err != nil {
				return err
			}

			infos, err := commands.ListDependents(commands.ListDependentsOptions{
				SourceRoot: source,
			})
			if err != nil {
				return err
			}

			if resolved, _ := ui.ParseFormat(*format); resolved == ui.FormatJSON {
				return printJSON(infos)
			}

			fmt.Println(style.RenderDependents(infos))
			return nil
		},
	}
}

func newUpdateAllCmd(sourceRoot *string) *cobra.Command {
	return &cobra.Command{
		Use:   "update-all",
		Short: "Sync workflows to every registered dependent",
		Long: `Update-all re-copies workflows and actions to every registered
dependent. Each dependent is processed independently: a missing path or a
failure for one never blocks the rest.`,
		Example: `  storysync update-all`,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := resolveSource(*sourceRoot)
			if err != nil {
				return err
			}

			outcomes, err := commands.UpdateAll(commands.UpdateAllOptions{
				SourceRoot: source,
			})
			if err != nil {
				return err
			}

			if len(outcomes) == 0 {
				fmt.Println("No dependent projects registered.")
				fmt.Println("Register one with: storysync register --target /path/to/project")
				return nil
			}

			fmt.Println(style.RenderUpdateOutcomes(outcomes))
			return nil
		},
	}
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
