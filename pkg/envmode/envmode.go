// Package envmode decides the provisioning mode for an install run from
// the explicit --ci flag, the process environment, and the host platform.
package envmode

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mharbulous/storysync/pkg/logging"
	"github.com/mharbulous/storysync/pkg/types"
)

// Environment variables consulted by Detect
const (
	// EnvCI marks a continuous-integration context ("true" forces copy mode)
	EnvCI = "CI"

	// EnvForceSymlinks opts back into symlink mode on Linux, where copy
	// mode is otherwise the default (Linux is treated as a proxy for CI)
	EnvForceSymlinks = "FORCE_SYMLINKS"
)

// Detect resolves the provisioning mode. It is a pure function of the
// explicit flag, the environment lookup, and the platform string; first
// match wins:
//
//  1. explicitCI              -> copy
//  2. CI=true                 -> copy
//  3. linux, no FORCE_SYMLINKS -> copy
//  4. otherwise               -> symlink
func Detect(explicitCI bool, getenv func(string) string, goos string) types.Mode {
	if explicitCI {
		return types.ModeCopy
	}
	if strings.EqualFold(strings.TrimSpace(getenv(EnvCI)), "true") {
		return types.ModeCopy
	}
	if goos == "linux" && getenv(EnvForceSymlinks) == "" {
		return types.ModeCopy
	}
	return types.ModeSymlink
}

// DetectDefault runs Detect against the real process environment and
// platform.
func DetectDefault(explicitCI bool) types.Mode {
	mode := Detect(explicitCI, os.Getenv, runtime.GOOS)
	logger := logging.GetLogger("envmode")
	logger.Debug().
		Bool("explicitCI", explicitCI).
		Str("goos", runtime.GOOS).
		Stringer("mode", mode).
		Msg("Provisioning mode detected")
	return mode
}

// CheckSymlinkSupport probes whether the host can create symlinks in its
// current configuration. On Windows this fails unless Developer Mode is
// enabled; elsewhere it only fails on unusual filesystems.
func CheckSymlinkSupport() bool {
	tmpDir, err := os.MkdirTemp("", "storysync-symlink-probe")
	if err != nil {
		return false
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	target := filepath.Join(tmpDir, "probe_target")
	link := filepath.Join(tmpDir, "probe_link")
	if err := os.Mkdir(target, 0755); err != nil {
		return false
	}
	return os.Symlink(target, link) == nil
}
