package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_IsMatchesByType(t *testing.T) {
	err := NewConflict("plugin", "HelloPlugin")
	assert.True(t, stderrors.Is(err, ErrConflict))
	assert.False(t, stderrors.Is(err, ErrNotFound))

	wrapped := fmt.Errorf("register: %w", err)
	assert.True(t, stderrors.Is(wrapped, ErrConflict))
	assert.True(t, IsType(wrapped, ErrorTypeConflict))
}

func TestAppError_ErrorIncludesInner(t *testing.T) {
	inner := stderrors.New("disk full")
	err := WrapWithType(inner, ErrorTypeInternal, "copy failed")
	assert.Equal(t, "copy failed: disk full", err.Error())
	assert.ErrorIs(t, err, inner)
}

func TestWrap_KeepsType(t *testing.T) {
	err := Wrap(NewNotFound("plugin", "x"), "lookup")
	assert.Equal(t, ErrorTypeNotFound, err.Type)
	assert.Equal(t, http.StatusNotFound, HTTPStatusOf(err))
	assert.Nil(t, Wrap(nil, "noop"))
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))

	plain := FromError(stderrors.New("boom"))
	assert.Equal(t, ErrorTypeUnknown, plain.Type)
	assert.Equal(t, http.StatusInternalServerError, HTTPStatusOf(plain))

	app := NewNotReady("HelloTool", "uninitialized")
	assert.Same(t, app, FromError(fmt.Errorf("ctx: %w", app)))
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, ErrorType(""), TypeOf(nil))
	assert.Equal(t, ErrorTypeInitialization, TypeOf(NewInitialization("p")))
	assert.Equal(t, ErrorTypeUnsupported, TypeOf(NewUnsupported("p", "tool")))
}

func TestToResponse(t *testing.T) {
	resp := ToResponse(NewUnsupported("HelloPlugin", "tool"))
	assert.Equal(t, "unsupported", resp.Type)
	assert.Equal(t, CodeCapabilityMissing, resp.Code)
	assert.Equal(t, "tool", resp.Details["capability"])
}

func TestRecoverWithHandler(t *testing.T) {
	var got *AppError
	func() {
		defer RecoverWithHandler(func(e *AppError) { got = e })
		panic("tool exploded")
	}()

	require.NotNil(t, got)
	assert.Equal(t, ErrorTypeInternal, got.Type)
	assert.Equal(t, "tool exploded", got.Message)
	assert.NotEmpty(t, got.Stack)
}

func TestRecoverWithHandler_ErrorValue(t *testing.T) {
	sentinel := stderrors.New("sentinel")
	var got *AppError
	func() {
		defer RecoverWithHandler(func(e *AppError) { got = e })
		panic(sentinel)
	}()

	require.NotNil(t, got)
	assert.ErrorIs(t, got, sentinel)
}

func TestErrorChain(t *testing.T) {
	c := NewErrorChain()
	assert.NoError(t, c.Err())

	c.Add(nil)
	c.Add(NewNotFound("plugin", "a"))
	c.Add(stderrors.New("plain"))

	require.Error(t, c.Err())
	assert.Len(t, c.Errors(), 2)
	assert.Contains(t, c.Error(), " | ")
	assert.ErrorIs(t, c.Err(), ErrNotFound)
	assert.False(t, stderrors.Is(c.Err(), ErrConflict))
}
