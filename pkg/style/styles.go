// Package style renders storysync results for the terminal using pterm.
// Color is stripped globally (pterm.DisableColor) when output is piped;
// see pkg/ui.
package style

import (
	"github.com/pterm/pterm"

	"github.com/mharbulous/storysync/pkg/types"
)

// StateStyle returns the pterm style for an item health state
func StateStyle(state types.ItemState) *pterm.Style {
	switch state {
	case types.StateValid:
		return pterm.NewStyle(pterm.FgGreen)
	case types.StateBroken:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	case types.StatePlaceholder:
		return pterm.NewStyle(pterm.FgYellow)
	case types.StateMissing:
		return pterm.NewStyle(pterm.FgRed)
	case types.StateExtra:
		return pterm.NewStyle(pterm.FgMagenta)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// SettingStyle returns the pterm style for a git setting status
func SettingStyle(status types.SettingStatus) *pterm.Style {
	switch status {
	case types.SettingOK:
		return pterm.NewStyle(pterm.FgGreen)
	case types.SettingWarning:
		return pterm.NewStyle(pterm.FgYellow)
	default:
		return pterm.NewStyle(pterm.FgRed)
	}
}

// UpdateStyle returns the pterm style for a fan-out outcome
func UpdateStyle(status types.UpdateStatus) *pterm.Style {
	switch status {
	case types.UpdateOK:
		return pterm.NewStyle(pterm.FgGreen)
	case types.UpdateSkippedNotFound:
		return pterm.NewStyle(pterm.FgYellow)
	default:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	}
}

// Title renders a section heading
func Title(s string) string {
	return pterm.NewStyle(pterm.Bold).Sprint(s)
}

// Muted renders de-emphasized text
func Muted(s string) string {
	return pterm.NewStyle(pterm.FgGray).Sprint(s)
}
