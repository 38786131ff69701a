package testutil

import (
	"github.com/spf13/afero"

	"github.com/mharbulous/storysync/pkg/filesystem"
	"github.com/mharbulous/storysync/pkg/types"
)

// NewMemoryFS creates an in-memory filesystem for tests that only need
// file reads and writes, not real symlinks.
func NewMemoryFS() types.FS {
	return filesystem.NewAferoFS(afero.NewMemMapFs())
}
