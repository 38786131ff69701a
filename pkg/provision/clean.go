package provision

import (
	"path/filepath"

	"github.com/mharbulous/storysync/pkg/health"
	"github.com/mharbulous/storysync/pkg/logging"
	"github.com/mharbulous/storysync/pkg/types"
)

// CleanPlaceholders removes symlink placeholder text files left behind by
// an earlier checkout with core.symlinks=false. Run before a symlink-mode
// install so the placeholders don't shadow fresh links. Returns the number
// of files removed.
func (e *Engine) CleanPlaceholders(target string, cats []types.Category) int {
	logger := logging.GetLogger("provision")

	cleaned := 0
	for _, cat := range cats {
		if !cat.SymlinkEligible {
			continue
		}

		destDir := filepath.Join(target, cat.DestDir)
		entries, err := e.fs.ReadDir(destDir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			itemPath := filepath.Join(destDir, entry.Name())
			if !health.IsPlaceholder(e.fs, itemPath) {
				continue
			}
			if err := e.fs.Remove(itemPath); err != nil {
				logger.Warn().Err(err).Str("path", itemPath).Msg("Failed to remove placeholder")
				continue
			}
			logger.Info().Str("path", itemPath).Msg("Removed symlink placeholder")
			cleaned++
		}
	}
	return cleaned
}
