package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAndError(t *testing.T) {
	err := New(ErrTargetNotFound, "target directory does not exist")
	assert.Equal(t, "[TARGET_NOT_FOUND] target directory does not exist", err.Error())
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := Wrap(cause, ErrFileAccess, "failed to read registry")

	assert.Contains(t, err.Error(), "FILE_ACCESS")
	assert.Contains(t, err.Error(), "permission denied")
	assert.ErrorIs(t, err, cause)
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrInternal, "nothing"))
	assert.Nil(t, Wrapf(nil, ErrInternal, "nothing %d", 1))
}

func TestIsErrorCode(t *testing.T) {
	err := Newf(ErrAlreadyRegistered, "already registered: %s", "/p")
	assert.True(t, IsErrorCode(err, ErrAlreadyRegistered))
	assert.False(t, IsErrorCode(err, ErrNotRegistered))
	assert.False(t, IsErrorCode(stderrors.New("plain"), ErrAlreadyRegistered))
}

func TestIsErrorCodeThroughWrapping(t *testing.T) {
	inner := New(ErrSourceMissing, "source gone")
	outer := fmt.Errorf("install failed: %w", inner)

	assert.True(t, IsErrorCode(outer, ErrSourceMissing))
	assert.Equal(t, ErrSourceMissing, GetErrorCode(outer))
}

func TestGetErrorCodeUnknown(t *testing.T) {
	assert.Equal(t, ErrUnknown, GetErrorCode(stderrors.New("plain")))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrSourceMissing, "missing").WithDetail("missing", []string{"a", "b"})
	require.NotNil(t, err.Details)
	assert.Equal(t, []string{"a", "b"}, err.Details["missing"])
}
