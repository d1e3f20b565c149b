// ABOUTME: Mock agent adapter for tests
// ABOUTME: Echoes prompts with zero pacing delays

package agent

import "time"

// Mock is a test adapter. It points at whatever binary the config
// names (typically a fake agent script) and runs with zero delays so
// tests do not wait on pacing.
type Mock struct {
	Defaults
	cfg Config
}

// NewMock builds a Mock adapter.
func NewMock(cfg Config) *Mock {
	cfg = cfg.Clone()
	if cfg.CLIPath == "" {
		cfg.CLIPath = "mock-agent"
	}
	return &Mock{cfg: cfg}
}

func (m *Mock) Name() string    { return "mock" }
func (m *Mock) CLIPath() string { return m.cfg.CLIPath }

func (m *Mock) ACPArgs() []string {
	return append([]string{}, m.cfg.ExtraArgs...)
}

func (m *Mock) ChatArgs() []string {
	return append([]string{}, m.cfg.ExtraArgs...)
}

func (m *Mock) SessionInitDelay() time.Duration { return 0 }
func (m *Mock) PostPromptDelay() time.Duration  { return 0 }
