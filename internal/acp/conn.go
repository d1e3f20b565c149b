// ABOUTME: Connection orchestrator for one interactive prompt turn
// ABOUTME: Spawns the agent, handshakes, prompts, drains, and tears down

package acp

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	sdk "github.com/coder/acp-go-sdk"

	"github.com/acp-tools/acp-gateway/internal/agent"
)

// RunOptions control one session run.
type RunOptions struct {
	// WorkingDir is the session cwd. Empty means the gateway's own
	// working directory.
	WorkingDir string

	// Timeout bounds the prompt turn. Zero disables the bound and
	// leaves only ctx governing cancellation.
	Timeout time.Duration

	// Logger receives lifecycle and stderr output. Nil uses the
	// default logger.
	Logger *slog.Logger
}

// RunSession performs one full interactive turn against an agent:
// spawn the process in protocol mode, initialize, create a session,
// send the prompt, wait out the drain delay, and tear the process
// down. The returned text is the agent's raw streamed output; callers
// decide whether an empty result warrants the fallback path before
// post-processing.
//
// Each call owns its process and connection exclusively; nothing is
// shared between concurrent runs.
func RunSession(ctx context.Context, desc agent.Descriptor, prompt string, opts RunOptions) (string, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("agent", desc.Name())

	cwd := opts.WorkingDir
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", NewError(KindSpawn, "resolving working directory", err)
		}
		cwd = wd
	}

	cmd := exec.CommandContext(ctx, desc.CLIPath(), desc.ACPArgs()...)
	cmd.Dir = cwd
	cmd.Env = append(os.Environ(), desc.Environment()...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return "", NewError(KindSpawn, "opening stdin pipe", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", NewError(KindSpawn, "opening stdout pipe", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return "", NewError(KindSpawn, "opening stderr pipe", err)
	}

	if err := cmd.Start(); err != nil {
		return "", NewError(KindSpawn, "starting "+desc.CLIPath(), err)
	}
	logger.Debug("agent process started", "pid", cmd.Process.Pid)

	go logStderr(stderr, logger)

	defer func() {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		logger.Debug("agent process reaped")
	}()

	collector := NewCollector()
	handler := newClientHandler(collector, logger)
	conn := sdk.NewClientSideConnection(handler, stdin, stdout)

	initResp, err := conn.Initialize(ctx, sdk.InitializeRequest{
		ProtocolVersion: sdk.ProtocolVersionNumber,
		ClientCapabilities: sdk.ClientCapabilities{
			Fs: sdk.FileSystemCapability{
				ReadTextFile:  false,
				WriteTextFile: false,
			},
			Terminal: false,
		},
	})
	if err != nil {
		return "", wrapCtxErr(ctx, KindProtocol, "initialize handshake", err)
	}
	logger.Debug("handshake complete", "load_session", initResp.AgentCapabilities.LoadSession)

	sessResp, err := conn.NewSession(ctx, sdk.NewSessionRequest{
		Cwd:        cwd,
		McpServers: []sdk.McpServer{},
	})
	if err != nil {
		return "", wrapCtxErr(ctx, KindSession, "creating session", err)
	}
	logger.Debug("session created", "session_id", sessResp.SessionId)

	if err := pace(ctx, desc.SessionInitDelay()); err != nil {
		return "", err
	}

	promptCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		promptCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	promptResp, err := conn.Prompt(promptCtx, sdk.PromptRequest{
		SessionId: sessResp.SessionId,
		Prompt:    []sdk.ContentBlock{sdk.TextBlock(prompt)},
	})
	if err != nil {
		if errors.Is(promptCtx.Err(), context.DeadlineExceeded) {
			return "", NewError(KindTimeout, "prompt turn exceeded deadline", err)
		}
		return "", wrapCtxErr(ctx, KindProtocol, "sending prompt", err)
	}
	logger.Debug("prompt complete", "stop_reason", promptResp.StopReason)

	if err := pace(ctx, desc.PostPromptDelay()); err != nil {
		return "", err
	}

	return collector.String(), nil
}

// pace sleeps for d unless the context ends first.
func pace(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return wrapCtxErr(ctx, KindConnection, "waiting on agent", ctx.Err())
	}
}

// wrapCtxErr prefers the timeout category when the surrounding
// context deadline was the real cause.
func wrapCtxErr(ctx context.Context, kind Kind, msg string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return NewError(KindTimeout, msg, err)
	}
	return NewError(kind, msg, err)
}

func logStderr(r io.Reader, logger *slog.Logger) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		logger.Debug("agent stderr", "line", scanner.Text())
	}
}
