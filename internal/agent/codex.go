// ABOUTME: Codex CLI adapter
// ABOUTME: Maps approval modes to flags and forces quiet JSON output

package agent

import (
	"os"
	"time"
)

// CodexApprovalMode selects how much autonomy Codex gets.
type CodexApprovalMode string

const (
	CodexSuggest  CodexApprovalMode = "suggest"
	CodexAutoEdit CodexApprovalMode = "auto-edit"
	CodexFullAuto CodexApprovalMode = "full-auto"
)

// Codex adapts the Codex CLI. It starts quickly, so session pacing is
// much tighter than the defaults.
type Codex struct {
	Defaults
	cfg  Config
	mode CodexApprovalMode
}

// NewCodex builds a Codex adapter. An empty CLIPath falls back to
// CODEX_CLI_PATH, then "codex"; an empty Model falls back to
// CODEX_MODEL. Unrecognized modes fall back to suggest, the most
// conservative option.
func NewCodex(cfg Config) *Codex {
	cfg = cfg.Clone()
	if cfg.CLIPath == "" {
		cfg.CLIPath = os.Getenv("CODEX_CLI_PATH")
	}
	if cfg.CLIPath == "" {
		cfg.CLIPath = "codex"
	}
	if cfg.Model == "" {
		cfg.Model = os.Getenv("CODEX_MODEL")
	}
	mode := CodexApprovalMode(cfg.Mode)
	switch mode {
	case CodexSuggest, CodexAutoEdit, CodexFullAuto:
	default:
		mode = CodexSuggest
	}
	return &Codex{cfg: cfg, mode: mode}
}

func (c *Codex) Name() string    { return "codex" }
func (c *Codex) CLIPath() string { return c.cfg.CLIPath }

func (c *Codex) ACPArgs() []string {
	args := []string{"-q", "--approval-mode", string(c.mode)}
	if c.cfg.Model != "" {
		args = append(args, "-m", c.cfg.Model)
	}
	args = append(args, c.cfg.ExtraArgs...)
	return args
}

func (c *Codex) ChatArgs() []string {
	args := []string{"-q", "--approval-mode", string(c.mode), "--json"}
	if c.cfg.Model != "" {
		args = append(args, "-m", c.cfg.Model)
	}
	args = append(args, c.cfg.ExtraArgs...)
	return args
}

func (c *Codex) SessionInitDelay() time.Duration { return 0 }
func (c *Codex) PostPromptDelay() time.Duration  { return 100 * time.Millisecond }

func (c *Codex) Environment() []string {
	return []string{"CODEX_QUIET_MODE=1"}
}
