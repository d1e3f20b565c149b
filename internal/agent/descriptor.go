// ABOUTME: Descriptor interface and shared defaults for CLI agent adapters
// ABOUTME: Each adapter describes how to spawn and talk to one agent binary

package agent

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// Default pacing used by adapters that do not override it.
const (
	DefaultSessionInitDelay = 2 * time.Second
	DefaultPostPromptDelay  = 500 * time.Millisecond
)

// ErrUnknownAgent is returned by New when no adapter matches the name.
var ErrUnknownAgent = errors.New("unknown agent")

// Descriptor describes one CLI agent: where its binary lives, how to
// start it in protocol mode or one-shot chat mode, and how to pace and
// post-process its output. Implementations are immutable value types.
type Descriptor interface {
	// Name identifies the adapter ("kiro", "codex", ...).
	Name() string

	// CLIPath is the binary to spawn.
	CLIPath() string

	// ACPArgs are the arguments for interactive protocol mode.
	ACPArgs() []string

	// ChatArgs are the arguments for a single non-interactive
	// invocation. The prompt itself arrives on stdin, never in argv.
	ChatArgs() []string

	// RequiresMCPServers reports whether the agent needs a
	// persistent helper process running before sessions work.
	RequiresMCPServers() bool

	// SessionInitDelay is the settle time after session creation
	// before the first prompt is sent.
	SessionInitDelay() time.Duration

	// PostPromptDelay is the drain time after a prompt completes,
	// letting late update notifications arrive.
	PostPromptDelay() time.Duration

	// ProcessResponse normalizes raw agent output for callers.
	ProcessResponse(raw string) string

	// Environment returns extra environment variables for spawned
	// processes, as KEY=VALUE strings.
	Environment() []string
}

// Config carries the per-request knobs adapters are built from.
type Config struct {
	CLIPath    string
	Mode       string
	Model      string
	ExtraArgs  []string
	WorkingDir string
}

// Clone returns a deep copy so adapters can hold the config without
// sharing slices with the caller.
func (c Config) Clone() Config {
	out := c
	if c.ExtraArgs != nil {
		out.ExtraArgs = make([]string, len(c.ExtraArgs))
		copy(out.ExtraArgs, c.ExtraArgs)
	}
	return out
}

// Defaults provides the common pacing and passthrough behavior.
// Adapters embed it and override what differs.
type Defaults struct{}

func (Defaults) RequiresMCPServers() bool          { return false }
func (Defaults) SessionInitDelay() time.Duration   { return DefaultSessionInitDelay }
func (Defaults) PostPromptDelay() time.Duration    { return DefaultPostPromptDelay }
func (Defaults) ProcessResponse(raw string) string { return raw }
func (Defaults) Environment() []string             { return nil }

// CSI and OSC escape sequences plus bare carriage returns, as emitted
// by agents that assume a terminal.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]|\x1b\].*?\x07|\r`)

// StripANSI removes terminal control sequences from agent output.
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// New builds the adapter named by name from cfg.
func New(name string, cfg Config) (Descriptor, error) {
	switch name {
	case "kiro":
		return NewKiro(cfg), nil
	case "codex":
		return NewCodex(cfg), nil
	case "gemini":
		return NewGemini(cfg), nil
	case "mock":
		return NewMock(cfg), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAgent, name)
	}
}

// Names lists the adapters New accepts.
func Names() []string {
	return []string{"kiro", "codex", "gemini", "mock"}
}
