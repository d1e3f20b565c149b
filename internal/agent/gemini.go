// ABOUTME: Gemini CLI adapter
// ABOUTME: Supports output format selection and extra include directories

package agent

import (
	"os"
	"strings"
	"time"
)

// GeminiOutputFormat selects how the Gemini CLI renders responses.
type GeminiOutputFormat string

const (
	GeminiText       GeminiOutputFormat = "text"
	GeminiJSON       GeminiOutputFormat = "json"
	GeminiStreamJSON GeminiOutputFormat = "stream-json"
)

// Gemini adapts the Gemini CLI.
type Gemini struct {
	Defaults
	cfg         Config
	format      GeminiOutputFormat
	includeDirs []string
}

// GeminiOption customizes a Gemini adapter.
type GeminiOption func(*Gemini)

// WithOutputFormat sets the CLI output format. Unrecognized values
// are ignored and the default text format is kept.
func WithOutputFormat(f GeminiOutputFormat) GeminiOption {
	return func(g *Gemini) {
		switch f {
		case GeminiText, GeminiJSON, GeminiStreamJSON:
			g.format = f
		}
	}
}

// WithIncludeDirs adds directories the agent may read beyond the
// working directory.
func WithIncludeDirs(dirs ...string) GeminiOption {
	return func(g *Gemini) {
		g.includeDirs = append(g.includeDirs, dirs...)
	}
}

// NewGemini builds a Gemini adapter. An empty CLIPath falls back to
// GEMINI_CLI_PATH, then "gemini"; an empty Model falls back to
// GEMINI_MODEL.
func NewGemini(cfg Config, opts ...GeminiOption) *Gemini {
	cfg = cfg.Clone()
	if cfg.CLIPath == "" {
		cfg.CLIPath = os.Getenv("GEMINI_CLI_PATH")
	}
	if cfg.CLIPath == "" {
		cfg.CLIPath = "gemini"
	}
	if cfg.Model == "" {
		cfg.Model = os.Getenv("GEMINI_MODEL")
	}
	g := &Gemini{cfg: cfg, format: GeminiText}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gemini) Name() string    { return "gemini" }
func (g *Gemini) CLIPath() string { return g.cfg.CLIPath }

func (g *Gemini) ACPArgs() []string {
	var args []string
	if g.cfg.Model != "" {
		args = append(args, "-m", g.cfg.Model)
	}
	if len(g.includeDirs) > 0 {
		args = append(args, "--include-directories", strings.Join(g.includeDirs, ","))
	}
	args = append(args, g.cfg.ExtraArgs...)
	return args
}

func (g *Gemini) ChatArgs() []string {
	args := []string{"--output-format", string(g.format)}
	if g.cfg.Model != "" {
		args = append(args, "-m", g.cfg.Model)
	}
	if len(g.includeDirs) > 0 {
		args = append(args, "--include-directories", strings.Join(g.includeDirs, ","))
	}
	args = append(args, g.cfg.ExtraArgs...)
	return args
}

func (g *Gemini) SessionInitDelay() time.Duration { return 0 }
func (g *Gemini) PostPromptDelay() time.Duration  { return 100 * time.Millisecond }
