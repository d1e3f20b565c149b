// ABOUTME: One-shot fallback invocation of agents in non-interactive mode
// ABOUTME: Pipes the prompt over stdin and captures the full output under a deadline

package acp

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/acp-tools/acp-gateway/internal/agent"
)

// RunFallback invokes the agent once in non-interactive chat mode.
// The prompt is written to the process's stdin, stdin is closed, and
// the process runs to completion under the timeout. Used when the
// interactive protocol path yields no text.
//
// A run that completes but produces only whitespace is a protocol
// failure; there is nothing further to fall back to.
func RunFallback(ctx context.Context, desc agent.Descriptor, prompt string, opts RunOptions) (string, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("agent", desc.Name(), "mode", "fallback")

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, desc.CLIPath(), desc.ChatArgs()...)
	if opts.WorkingDir != "" {
		cmd.Dir = opts.WorkingDir
	}
	cmd.Env = append(os.Environ(), desc.Environment()...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return "", NewError(KindSpawn, "opening stdin pipe", err)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return "", NewError(KindSpawn, "starting "+desc.CLIPath(), err)
	}
	logger.Debug("fallback process started", "pid", cmd.Process.Pid)

	if _, err := io.WriteString(stdin, prompt); err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return "", NewError(KindConnection, "writing prompt to stdin", err)
	}
	if err := stdin.Close(); err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return "", NewError(KindConnection, "closing stdin", err)
	}

	start := time.Now()
	err = cmd.Wait()
	elapsed := time.Since(start)

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", Errorf(KindTimeout, "fallback run exceeded deadline after %s", elapsed.Round(time.Millisecond))
	}
	if err != nil {
		// A nonzero exit still counts if the agent wrote something
		// usable; only the empty-output check below rejects the run.
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return "", NewError(KindConnection, "waiting for fallback process", err)
		}
		logger.Warn("fallback process exited nonzero",
			"error", err,
			"stderr", strings.TrimSpace(stderr.String()))
	}

	out := desc.ProcessResponse(stdout.String())
	if strings.TrimSpace(out) == "" {
		return "", Errorf(KindProtocol, "fallback produced empty response")
	}
	logger.Debug("fallback complete", "elapsed", elapsed.Round(time.Millisecond), "bytes", len(out))
	return out, nil
}
