// ABOUTME: Supervisor for the persistent agent helper process
// ABOUTME: Singleton lifecycle with settle delay and health checks

package acp

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"
)

const (
	// settleDelay gives the helper time to bind its sockets before
	// sessions are attempted.
	settleDelay = 500 * time.Millisecond
	// restartGap separates stop from start during a restart.
	restartGap = 100 * time.Millisecond
)

// Supervisor manages a single long-lived helper process that some
// agents require before sessions can be created. All operations are
// serialized; at most one helper runs at a time.
type Supervisor struct {
	mu      sync.Mutex
	cliPath string
	args    []string
	logger  *slog.Logger
	cmd     *exec.Cmd
}

// NewSupervisor creates a supervisor for the given binary. Nothing is
// started until EnsureRunning or Start is called.
func NewSupervisor(cliPath string, args []string, logger *slog.Logger) *Supervisor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Supervisor{
		cliPath: cliPath,
		args:    append([]string{}, args...),
		logger:  logger.With("component", "supervisor"),
	}
}

// EnsureRunning starts the helper if it is not already alive.
func (s *Supervisor) EnsureRunning(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.alive() {
		return nil
	}
	return s.start(ctx)
}

// Start launches the helper, replacing any process this supervisor
// already owns. Only the tracked process is ever touched; processes
// the supervisor did not start are left alone.
func (s *Supervisor) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.start(ctx)
}

func (s *Supervisor) start(ctx context.Context) error {
	s.stopLocked()

	cmd := exec.Command(s.cliPath, s.args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		return NewError(KindSpawn, "starting helper "+s.cliPath, err)
	}
	s.cmd = cmd
	s.logger.Info("helper process started", "pid", cmd.Process.Pid, "path", s.cliPath)

	// Reap in the background so the process never zombies.
	go func() {
		_ = cmd.Wait()
	}()

	select {
	case <-time.After(settleDelay):
	case <-ctx.Done():
		return wrapCtxErr(ctx, KindSpawn, "waiting for helper to settle", ctx.Err())
	}

	if !s.alive() {
		s.cmd = nil
		return Errorf(KindSpawn, "helper %s exited during startup", s.cliPath)
	}
	return nil
}

// Stop terminates the helper if it is running.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Supervisor) stopLocked() {
	if s.cmd == nil || s.cmd.Process == nil {
		return
	}
	pid := s.cmd.Process.Pid
	if err := s.cmd.Process.Kill(); err == nil {
		s.logger.Info("helper process stopped", "pid", pid)
	}
	s.cmd = nil
}

// Restart stops the helper, waits briefly, and starts it again.
func (s *Supervisor) Restart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	select {
	case <-time.After(restartGap):
	case <-ctx.Done():
		return wrapCtxErr(ctx, KindSpawn, "waiting to restart helper", ctx.Err())
	}
	return s.start(ctx)
}

// HealthCheck reports whether the helper process is alive.
func (s *Supervisor) HealthCheck() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alive()
}

func (s *Supervisor) alive() bool {
	if s.cmd == nil || s.cmd.Process == nil {
		return false
	}
	// Signal 0 probes the pid without delivering anything.
	return s.cmd.Process.Signal(syscall.Signal(0)) == nil
}

var (
	defaultSupervisor     *Supervisor
	defaultSupervisorOnce sync.Once
)

// Default returns the process-wide supervisor, built lazily from the
// ACP_CLI_PATH environment variable with the standard helper
// arguments. It exists for callers that have no config plumbing.
func Default() *Supervisor {
	defaultSupervisorOnce.Do(func() {
		path := os.Getenv("ACP_CLI_PATH")
		if path == "" {
			path = "kiro-cli"
		}
		defaultSupervisor = NewSupervisor(path, []string{"acp"}, slog.Default())
	})
	return defaultSupervisor
}
