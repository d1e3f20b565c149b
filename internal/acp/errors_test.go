// ABOUTME: Tests for the categorized error type
// ABOUTME: Covers wrapping, unwrapping, and kind extraction

package acp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Message(t *testing.T) {
	err := NewError(KindSpawn, "starting kiro-cli", errors.New("no such file"))
	assert.Equal(t, "spawn: starting kiro-cli: no such file", err.Error())

	bare := Errorf(KindProtocol, "empty response")
	assert.Equal(t, "protocol: empty response", bare.Error())
}

func TestError_Unwrap(t *testing.T) {
	inner := errors.New("broken pipe")
	err := NewError(KindConnection, "sending prompt", inner)
	assert.True(t, errors.Is(err, inner))

	wrapped := fmt.Errorf("request failed: %w", err)
	var ae *Error
	assert.True(t, errors.As(wrapped, &ae))
	assert.Equal(t, KindConnection, ae.Kind)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindTimeout, KindOf(Errorf(KindTimeout, "deadline")))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestIsTimeout(t *testing.T) {
	assert.True(t, IsTimeout(Errorf(KindTimeout, "deadline")))
	assert.True(t, IsTimeout(fmt.Errorf("outer: %w", Errorf(KindTimeout, "deadline"))))
	assert.False(t, IsTimeout(Errorf(KindSpawn, "nope")))
	assert.False(t, IsTimeout(nil))
}
