// ABOUTME: Client-side protocol handler for agent connections
// ABOUTME: Collects streamed text, denies permissions, declines fs and terminal

package acp

import (
	"context"
	"errors"
	"log/slog"

	sdk "github.com/coder/acp-go-sdk"
)

// errNotSupported is returned for capabilities the gateway does not
// advertise. Agents should never call these given the capabilities we
// send during initialize.
var errNotSupported = errors.New("not supported")

// clientHandler implements the client side of the agent protocol for
// one connection. Streamed assistant text lands in the collector;
// everything an autonomous gateway cannot answer is declined.
type clientHandler struct {
	collector *Collector
	logger    *slog.Logger
}

func newClientHandler(collector *Collector, logger *slog.Logger) *clientHandler {
	return &clientHandler{collector: collector, logger: logger}
}

// SessionUpdate receives streamed notifications. Assistant message
// chunks are accumulated; everything else, thought chunks and tool
// call updates included, is discarded.
func (h *clientHandler) SessionUpdate(ctx context.Context, params sdk.SessionNotification) error {
	if params.Update.AgentMessageChunk != nil {
		if text := params.Update.AgentMessageChunk.Content.Text; text != nil {
			h.collector.Add(text.Text)
		}
		return nil
	}
	h.logger.Debug("ignoring session update", "session_id", params.SessionId)
	return nil
}

// RequestPermission denies everything. There is no human behind the
// gateway to approve tool use, so the safe answer is always no.
func (h *clientHandler) RequestPermission(ctx context.Context, params sdk.RequestPermissionRequest) (sdk.RequestPermissionResponse, error) {
	h.logger.Warn("denying agent permission request", "session_id", params.SessionId)
	return sdk.RequestPermissionResponse{
		Outcome: sdk.NewRequestPermissionOutcomeCancelled(),
	}, nil
}

func (h *clientHandler) ReadTextFile(ctx context.Context, params sdk.ReadTextFileRequest) (sdk.ReadTextFileResponse, error) {
	return sdk.ReadTextFileResponse{}, errNotSupported
}

func (h *clientHandler) WriteTextFile(ctx context.Context, params sdk.WriteTextFileRequest) (sdk.WriteTextFileResponse, error) {
	return sdk.WriteTextFileResponse{}, errNotSupported
}

func (h *clientHandler) CreateTerminal(ctx context.Context, params sdk.CreateTerminalRequest) (sdk.CreateTerminalResponse, error) {
	return sdk.CreateTerminalResponse{}, errNotSupported
}

func (h *clientHandler) KillTerminalCommand(ctx context.Context, params sdk.KillTerminalCommandRequest) (sdk.KillTerminalCommandResponse, error) {
	return sdk.KillTerminalCommandResponse{}, errNotSupported
}

func (h *clientHandler) TerminalOutput(ctx context.Context, params sdk.TerminalOutputRequest) (sdk.TerminalOutputResponse, error) {
	return sdk.TerminalOutputResponse{}, errNotSupported
}

func (h *clientHandler) ReleaseTerminal(ctx context.Context, params sdk.ReleaseTerminalRequest) (sdk.ReleaseTerminalResponse, error) {
	return sdk.ReleaseTerminalResponse{}, errNotSupported
}

func (h *clientHandler) WaitForTerminalExit(ctx context.Context, params sdk.WaitForTerminalExitRequest) (sdk.WaitForTerminalExitResponse, error) {
	return sdk.WaitForTerminalExitResponse{}, errNotSupported
}
