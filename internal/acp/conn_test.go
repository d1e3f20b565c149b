// ABOUTME: Tests for orchestrator error classification
// ABOUTME: Covers the timeout-vs-kind decision for wrapped failures

package acp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapCtxErr_KeepsKindWithoutDeadline(t *testing.T) {
	err := wrapCtxErr(context.Background(), KindProtocol, "sending prompt", errors.New("agent rejected prompt"))
	assert.Equal(t, KindProtocol, KindOf(err))
}

func TestWrapCtxErr_DeadlineBecomesTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()
	require.ErrorIs(t, ctx.Err(), context.DeadlineExceeded)

	err := wrapCtxErr(ctx, KindProtocol, "sending prompt", ctx.Err())
	assert.Equal(t, KindTimeout, KindOf(err))
}
