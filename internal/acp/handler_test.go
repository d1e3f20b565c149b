// ABOUTME: Tests for the client-side protocol handler
// ABOUTME: Covers chunk accumulation, thought discard, and capability denial

package acp

import (
	"context"
	"log/slog"
	"testing"

	sdk "github.com/coder/acp-go-sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler() (*clientHandler, *Collector) {
	collector := NewCollector()
	return newClientHandler(collector, slog.Default()), collector
}

func TestHandler_AccumulatesMessageChunks(t *testing.T) {
	h, collector := newTestHandler()

	for _, text := range []string{"The answer ", "is ", "42."} {
		err := h.SessionUpdate(context.Background(), sdk.SessionNotification{
			SessionId: "sess-1",
			Update:    sdk.UpdateAgentMessageText(text),
		})
		require.NoError(t, err)
	}

	assert.Equal(t, "The answer is 42.", collector.String())
}

func TestHandler_IgnoresNonMessageUpdates(t *testing.T) {
	h, collector := newTestHandler()

	err := h.SessionUpdate(context.Background(), sdk.SessionNotification{
		SessionId: "sess-1",
		Update:    sdk.UpdateUserMessage(sdk.TextBlock("echoed input")),
	})
	require.NoError(t, err)

	err = h.SessionUpdate(context.Background(), sdk.SessionNotification{
		SessionId: "sess-1",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, collector.Len())
}

func TestHandler_DeniesPermission(t *testing.T) {
	h, _ := newTestHandler()

	resp, err := h.RequestPermission(context.Background(), sdk.RequestPermissionRequest{
		SessionId: "sess-1",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Outcome.Cancelled)
}

func TestHandler_DeclinesFsAndTerminal(t *testing.T) {
	h, _ := newTestHandler()
	ctx := context.Background()

	_, err := h.ReadTextFile(ctx, sdk.ReadTextFileRequest{})
	assert.ErrorIs(t, err, errNotSupported)

	_, err = h.WriteTextFile(ctx, sdk.WriteTextFileRequest{})
	assert.ErrorIs(t, err, errNotSupported)

	_, err = h.CreateTerminal(ctx, sdk.CreateTerminalRequest{})
	assert.ErrorIs(t, err, errNotSupported)

	_, err = h.TerminalOutput(ctx, sdk.TerminalOutputRequest{})
	assert.ErrorIs(t, err, errNotSupported)

	_, err = h.KillTerminalCommand(ctx, sdk.KillTerminalCommandRequest{})
	assert.ErrorIs(t, err, errNotSupported)

	_, err = h.ReleaseTerminal(ctx, sdk.ReleaseTerminalRequest{})
	assert.ErrorIs(t, err, errNotSupported)

	_, err = h.WaitForTerminalExit(ctx, sdk.WaitForTerminalExitRequest{})
	assert.ErrorIs(t, err, errNotSupported)
}
