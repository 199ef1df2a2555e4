package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResponderError(t *testing.T) {
	inner := errors.New("underlying")
	e := NewResponderError(ErrBadParameter, "invalid input", inner)
	require.NotNil(t, e)
	assert.Equal(t, ErrBadParameter, e.Code)
	assert.Equal(t, "invalid input", e.Message)
	assert.Same(t, inner, e.Inner)
	assert.Equal(t, "bad_parameter invalid input: underlying", e.Error())
	assert.ErrorIs(t, e, inner)
}

func TestResponderError_ErrorWithoutInner(t *testing.T) {
	e := NewInternalServerError("db failed", nil)
	assert.Equal(t, "internal_server_error db failed", e.Error())
}

func TestConstructors_KeepInnerCode(t *testing.T) {
	notFound := NewEntityNotFoundError("gone", nil)
	wrapped := fmt.Errorf("lookup failed: %w", notFound)

	e := NewInternalServerError("storage error", wrapped)
	assert.Same(t, notFound, e)
	assert.True(t, IsEntityNotFoundError(e))
}

func TestToResponderError(t *testing.T) {
	t.Run("with ResponderError", func(t *testing.T) {
		e := NewBadParameterError("bad", nil)
		got := ToResponderError(fmt.Errorf("wrap: %w", e))
		require.NotNil(t, got)
		assert.Same(t, e, got)
	})

	t.Run("with ordinary error", func(t *testing.T) {
		assert.Nil(t, ToResponderError(errors.New("plain")))
	})

	t.Run("with nil", func(t *testing.T) {
		assert.Nil(t, ToResponderError(nil))
	})
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		internal bool
		notFound bool
		badParam bool
	}{
		{name: "internal", err: NewInternalServerError("x", nil), internal: true},
		{name: "not found", err: NewEntityNotFoundError("x", nil), notFound: true},
		{name: "bad parameter", err: NewBadParameterError("x", nil), badParam: true},
		{name: "plain", err: errors.New("x")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.internal, IsInternalServerError(tt.err))
			assert.Equal(t, tt.notFound, IsEntityNotFoundError(tt.err))
			assert.Equal(t, tt.badParam, IsBadParameterError(tt.err))
		})
	}
	assert.Equal(t, "", ErrorCode(errors.New("plain")))
}
