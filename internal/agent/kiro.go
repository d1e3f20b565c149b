// ABOUTME: Kiro CLI adapter
// ABOUTME: Speaks protocol mode via "acp" and one-shot mode via "chat --no-interactive"

package agent

import (
	"os"
	"time"
)

// Kiro adapts the Kiro CLI. It is the only bundled agent that needs
// the persistent helper process before sessions can be created, and
// its output arrives with terminal escape codes that must be stripped.
type Kiro struct {
	Defaults
	cfg Config
}

// NewKiro builds a Kiro adapter. An empty CLIPath falls back to the
// KIRO_CLI_PATH environment variable, then "kiro-cli" on PATH; an
// empty Mode falls back to KIRO_AGENT.
func NewKiro(cfg Config) *Kiro {
	cfg = cfg.Clone()
	if cfg.CLIPath == "" {
		cfg.CLIPath = os.Getenv("KIRO_CLI_PATH")
	}
	if cfg.CLIPath == "" {
		cfg.CLIPath = "kiro-cli"
	}
	if cfg.Mode == "" {
		cfg.Mode = os.Getenv("KIRO_AGENT")
	}
	return &Kiro{cfg: cfg}
}

func (k *Kiro) Name() string    { return "kiro" }
func (k *Kiro) CLIPath() string { return k.cfg.CLIPath }

func (k *Kiro) ACPArgs() []string {
	args := []string{"acp"}
	if k.cfg.Mode != "" {
		args = append(args, "--agent", k.cfg.Mode)
	}
	args = append(args, k.cfg.ExtraArgs...)
	return args
}

func (k *Kiro) ChatArgs() []string {
	args := []string{"chat", "--no-interactive"}
	if k.cfg.Mode != "" {
		args = append(args, "--agent", k.cfg.Mode)
	}
	args = append(args, k.cfg.ExtraArgs...)
	return args
}

func (k *Kiro) RequiresMCPServers() bool { return true }

func (k *Kiro) SessionInitDelay() time.Duration { return 2 * time.Second }
func (k *Kiro) PostPromptDelay() time.Duration  { return 500 * time.Millisecond }

func (k *Kiro) ProcessResponse(raw string) string {
	return StripANSI(raw)
}
