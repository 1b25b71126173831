package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNotFound, "recipe not found")
	require.NotNil(t, err)
	assert.Equal(t, ErrCodeNotFound, err.Code)
	assert.Equal(t, "recipe not found", err.Message)
	assert.Nil(t, err.Cause)
}

func TestWrap(t *testing.T) {
	cause := errors.New("unexpected end of stream")
	err := Wrap(ErrCodeInvalidRecipe, "failed to parse recipe", cause)

	assert.Equal(t, ErrCodeInvalidRecipe, err.Code)
	assert.ErrorIs(t, err, cause)
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("missing field")
	err := WrapWithContext(ErrCodeInvalidRecipe, "invalid header entry", cause, map[string]any{
		"source": "a.deid",
		"index":  2,
	})

	assert.Equal(t, ErrCodeInvalidRecipe, err.Code)
	require.NotNil(t, err.Context)
	assert.Equal(t, "a.deid", err.Context["source"])
	assert.Equal(t, 2, err.Context["index"])
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeNotFound, "not found"),
			expected: "[NOT_FOUND] not found",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeInternal, "failed", errors.New("root cause")),
			expected: "[INTERNAL] failed: root cause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"structured", New(ErrCodeInvalidRecipe, "bad"), ErrCodeInvalidRecipe},
		{"wrapped by fmt", fmt.Errorf("loading: %w", New(ErrCodeTimeout, "slow")), ErrCodeTimeout},
		{"plain error", errors.New("plain"), ErrCodeInternal},
		{"nil", nil, ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestErrorCodes(t *testing.T) {
	codes := []ErrorCode{
		ErrCodeNotFound,
		ErrCodeInvalidRecipe,
		ErrCodeInvalidRequest,
		ErrCodeTimeout,
		ErrCodeInternal,
		ErrCodeUnavailable,
	}

	for _, code := range codes {
		assert.NotEmpty(t, string(code))
	}
}
