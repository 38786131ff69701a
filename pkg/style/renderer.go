package style

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mharbulous/storysync/pkg/types"
)

// RenderInstallSummary renders the per-category install results
func RenderInstallSummary(mode types.Mode, results []types.InstallResult) string {
	var b strings.Builder
	b.WriteString(Title(fmt.Sprintf("Installed (%s mode)", mode)) + "\n")

	for _, res := range results {
		b.WriteString(fmt.Sprintf("  %-10s %d item(s)\n", res.Category, len(res.Items)))
		for _, item := range res.Items {
			b.WriteString(Muted(fmt.Sprintf("    %s %s\n", item.Action, item.Name)))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderReports renders the full per-category health breakdown
func RenderReports(reports map[string]types.CategoryReport) string {
	names := make([]string, 0, len(reports))
	for name := range reports {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		report := reports[name]
		b.WriteString(Title(name) + "\n")
		b.WriteString(renderStateLine(types.StateValid, report.Valid))
		b.WriteString(renderStateLine(types.StateBroken, report.Broken))
		b.WriteString(renderStateLine(types.StatePlaceholder, report.Placeholder))
		b.WriteString(renderStateLine(types.StateMissing, report.Missing))
		b.WriteString(renderStateLine(types.StateExtra, report.Extra))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderStateLine(state types.ItemState, names []string) string {
	if len(names) == 0 {
		return ""
	}
	label := StateStyle(state).Sprintf("%-12s", string(state))
	return fmt.Sprintf("  %s %s\n", label, strings.Join(names, ", "))
}

// RenderGitSettings renders the diagnose view of the reconciled git keys
func RenderGitSettings(settings []types.GitSetting) string {
	var b strings.Builder
	b.WriteString(Title("git configuration") + "\n")
	for _, s := range settings {
		value := s.Value
		if value == "" {
			value = "(unset)"
		}
		b.WriteString(fmt.Sprintf("  %s %-18s %s\n",
			SettingStyle(s.Status).Sprintf("%-8s", string(s.Status)), s.Key, value))
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderDependents renders the registered dependents with liveness
func RenderDependents(infos []types.DependentInfo) string {
	if len(infos) == 0 {
		return Muted("No dependent projects registered.")
	}

	var b strings.Builder
	b.WriteString(Title(fmt.Sprintf("Registered dependents (%d)", len(infos))) + "\n")
	for _, info := range infos {
		marker := ""
		if !info.Exists {
			marker = " " + StateStyle(types.StateMissing).Sprint("[NOT FOUND]")
		}
		b.WriteString(fmt.Sprintf("  %s: %s%s\n", info.Name, info.Path, marker))
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderUpdateOutcomes renders the per-dependent fan-out results
func RenderUpdateOutcomes(outcomes []types.UpdateOutcome) string {
	var b strings.Builder
	ok := 0
	for _, outcome := range outcomes {
		label := UpdateStyle(outcome.Status).Sprintf("%-18s", string(outcome.Status))
		line := fmt.Sprintf("  %s [%s] %s", label, outcome.Dependent.Name, outcome.Dependent.Path)
		if outcome.Err != nil {
			line += Muted(": " + outcome.Err.Error())
		}
		b.WriteString(line + "\n")
		if outcome.Status == types.UpdateOK {
			ok++
		}
	}
	b.WriteString(fmt.Sprintf("Updated %d/%d project(s)", ok, len(outcomes)))
	return b.String()
}
