package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	base := New(CodeNotFound, "session not found")
	wrapped := fmt.Errorf("load: %w", base)

	assert.True(t, HasCode(base, CodeNotFound))
	assert.True(t, HasCode(wrapped, CodeNotFound))
	assert.False(t, HasCode(wrapped, CodeValidation))
	assert.False(t, HasCode(errors.New("plain"), CodeNotFound))
	assert.False(t, HasCode(nil, CodeNotFound))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeInternal, "failed to save session")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to save session: connection refused", err.Error())
	assert.Equal(t, CodeInternal, CodeOf(err))
}

func TestIsMatchesByCode(t *testing.T) {
	err := New(CodeValidation, "street is required")

	assert.True(t, Is(err, New(CodeValidation, "other message")))
	assert.False(t, Is(err, New(CodeNotFound, "street is required")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
}
