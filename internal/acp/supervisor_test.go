// ABOUTME: Tests for the helper process supervisor
// ABOUTME: Uses throwaway shell scripts as stand-in helper binaries

package acp

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeHelperScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "helper.sh")
	script := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestSupervisor_StartStop(t *testing.T) {
	path := writeHelperScript(t, "sleep 60")
	sup := NewSupervisor(path, nil, slog.Default())
	t.Cleanup(sup.Stop)

	require.NoError(t, sup.Start(context.Background()))
	assert.True(t, sup.HealthCheck())

	sup.Stop()
	// Kill delivery is asynchronous.
	assert.Eventually(t, func() bool { return !sup.HealthCheck() },
		2*time.Second, 50*time.Millisecond)
}

func TestSupervisor_EnsureRunningIsIdempotent(t *testing.T) {
	path := writeHelperScript(t, "sleep 60")
	sup := NewSupervisor(path, nil, slog.Default())
	t.Cleanup(sup.Stop)

	require.NoError(t, sup.EnsureRunning(context.Background()))
	firstPid := sup.cmd.Process.Pid

	require.NoError(t, sup.EnsureRunning(context.Background()))
	assert.Equal(t, firstPid, sup.cmd.Process.Pid)
}

func TestSupervisor_Restart(t *testing.T) {
	path := writeHelperScript(t, "sleep 60")
	sup := NewSupervisor(path, nil, slog.Default())
	t.Cleanup(sup.Stop)

	require.NoError(t, sup.Start(context.Background()))
	firstPid := sup.cmd.Process.Pid

	require.NoError(t, sup.Restart(context.Background()))
	assert.True(t, sup.HealthCheck())
	assert.NotEqual(t, firstPid, sup.cmd.Process.Pid)
}

func TestSupervisor_StartLeavesOtherProcessesAlone(t *testing.T) {
	path := writeHelperScript(t, "sleep 60")

	// A process running the same binary that the supervisor does not
	// own, like a transient per-prompt agent process.
	foreign := exec.Command(path)
	require.NoError(t, foreign.Start())
	t.Cleanup(func() {
		_ = foreign.Process.Kill()
		_ = foreign.Wait()
	})

	sup := NewSupervisor(path, nil, slog.Default())
	t.Cleanup(sup.Stop)
	require.NoError(t, sup.Start(context.Background()))

	assert.NoError(t, foreign.Process.Signal(syscall.Signal(0)),
		"process not owned by the supervisor must survive Start")
}

func TestSupervisor_StartFailsWhenHelperExitsImmediately(t *testing.T) {
	path := writeHelperScript(t, "exit 0")
	sup := NewSupervisor(path, nil, slog.Default())

	err := sup.Start(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindSpawn, KindOf(err))
	assert.False(t, sup.HealthCheck())
}

func TestSupervisor_StartMissingBinary(t *testing.T) {
	sup := NewSupervisor("/nonexistent/helper-binary", nil, slog.Default())

	err := sup.Start(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindSpawn, KindOf(err))
}

func TestSupervisor_HealthCheckBeforeStart(t *testing.T) {
	sup := NewSupervisor("/bin/true", nil, slog.Default())
	assert.False(t, sup.HealthCheck())
}
