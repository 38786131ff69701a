package envmode

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mharbulous/storysync/pkg/types"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name       string
		explicitCI bool
		env        map[string]string
		goos       string
		want       types.Mode
	}{
		{
			name:       "explicit flag wins",
			explicitCI: true,
			env:        map[string]string{"FORCE_SYMLINKS": "1"},
			goos:       "darwin",
			want:       types.ModeCopy,
		},
		{
			name: "CI env true",
			env:  map[string]string{"CI": "true"},
			goos: "darwin",
			want: types.ModeCopy,
		},
		{
			name: "CI env case insensitive",
			env:  map[string]string{"CI": "True"},
			goos: "darwin",
			want: types.ModeCopy,
		},
		{
			name: "CI env false is not CI",
			env:  map[string]string{"CI": "false"},
			goos: "darwin",
			want: types.ModeSymlink,
		},
		{
			name: "linux defaults to copy",
			goos: "linux",
			want: types.ModeCopy,
		},
		{
			name: "linux with FORCE_SYMLINKS",
			env:  map[string]string{"FORCE_SYMLINKS": "1"},
			goos: "linux",
			want: types.ModeSymlink,
		},
		{
			name: "darwin defaults to symlink",
			goos: "darwin",
			want: types.ModeSymlink,
		},
		{
			name: "windows defaults to symlink",
			goos: "windows",
			want: types.ModeSymlink,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getenv := func(key string) string { return tt.env[key] }
			assert.Equal(t, tt.want, Detect(tt.explicitCI, getenv, tt.goos))
		})
	}
}

func TestDetectIsPure(t *testing.T) {
	getenv := func(string) string { return "" }

	first := Detect(false, getenv, "darwin")
	second := Detect(false, getenv, "darwin")
	assert.Equal(t, first, second)
}

func TestCheckSymlinkSupport(t *testing.T) {
	// On Unix test hosts symlink creation always works
	assert.True(t, CheckSymlinkSupport())
}
