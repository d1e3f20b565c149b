// ABOUTME: Tests for agent adapters
// ABOUTME: Covers arg construction, pacing, registry lookup, and ANSI stripping

package agent

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Registry(t *testing.T) {
	for _, name := range Names() {
		desc, err := New(name, Config{})
		require.NoError(t, err, "agent %s", name)
		assert.Equal(t, name, desc.Name())
	}
}

func TestNew_Unknown(t *testing.T) {
	_, err := New("claude", Config{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownAgent))
}

func TestKiro_Args(t *testing.T) {
	k := NewKiro(Config{CLIPath: "/opt/kiro-cli", Mode: "amzn-builder"})

	assert.Equal(t, "/opt/kiro-cli", k.CLIPath())
	assert.Equal(t, []string{"acp", "--agent", "amzn-builder"}, k.ACPArgs())
	assert.Equal(t,
		[]string{"chat", "--no-interactive", "--agent", "amzn-builder"},
		k.ChatArgs())
	assert.True(t, k.RequiresMCPServers())
	assert.Equal(t, 2*time.Second, k.SessionInitDelay())
	assert.Equal(t, 500*time.Millisecond, k.PostPromptDelay())
}

func TestKiro_DefaultPath(t *testing.T) {
	t.Setenv("KIRO_CLI_PATH", "")
	t.Setenv("KIRO_AGENT", "")
	k := NewKiro(Config{})
	assert.Equal(t, "kiro-cli", k.CLIPath())
	assert.Equal(t, []string{"acp"}, k.ACPArgs())
}

func TestKiro_EnvDefaults(t *testing.T) {
	t.Setenv("KIRO_CLI_PATH", "/env/kiro-cli")
	t.Setenv("KIRO_AGENT", "builder")
	k := NewKiro(Config{})
	assert.Equal(t, "/env/kiro-cli", k.CLIPath())
	assert.Equal(t, []string{"acp", "--agent", "builder"}, k.ACPArgs())
}

func TestKiro_StripsANSI(t *testing.T) {
	raw := "\x1b[32mhello\x1b[0m\r\nworld\x1b]0;title\x07"
	assert.Equal(t, "hello\nworld", NewKiro(Config{}).ProcessResponse(raw))
}

func TestCodex_Args(t *testing.T) {
	c := NewCodex(Config{Mode: "full-auto", Model: "o3"})

	assert.Equal(t, []string{"-q", "--approval-mode", "full-auto", "-m", "o3"}, c.ACPArgs())
	assert.Equal(t,
		[]string{"-q", "--approval-mode", "full-auto", "--json", "-m", "o3"},
		c.ChatArgs())
	assert.Equal(t, []string{"CODEX_QUIET_MODE=1"}, c.Environment())
	assert.Equal(t, time.Duration(0), c.SessionInitDelay())
	assert.Equal(t, 100*time.Millisecond, c.PostPromptDelay())
	assert.False(t, c.RequiresMCPServers())
}

func TestCodex_InvalidModeFallsBack(t *testing.T) {
	c := NewCodex(Config{Mode: "yolo"})
	assert.Equal(t, []string{"-q", "--approval-mode", "suggest"}, c.ACPArgs())
}

func TestCodex_EnvDefaults(t *testing.T) {
	t.Setenv("CODEX_CLI_PATH", "/env/codex")
	t.Setenv("CODEX_MODEL", "o3-mini")
	c := NewCodex(Config{})
	assert.Equal(t, "/env/codex", c.CLIPath())
	assert.Equal(t, []string{"-q", "--approval-mode", "suggest", "-m", "o3-mini"}, c.ACPArgs())
}

func TestGemini_Args(t *testing.T) {
	g := NewGemini(Config{Model: "gemini-2.5-pro"},
		WithOutputFormat(GeminiJSON),
		WithIncludeDirs("/a", "/b"))

	assert.Equal(t,
		[]string{"-m", "gemini-2.5-pro", "--include-directories", "/a,/b"},
		g.ACPArgs())
	assert.Equal(t,
		[]string{"--output-format", "json", "-m", "gemini-2.5-pro", "--include-directories", "/a,/b"},
		g.ChatArgs())
}

func TestGemini_InvalidFormatIgnored(t *testing.T) {
	t.Setenv("GEMINI_MODEL", "")
	g := NewGemini(Config{}, WithOutputFormat("xml"))
	assert.Equal(t, []string{"--output-format", "text"}, g.ChatArgs())
}

func TestGemini_EnvDefaults(t *testing.T) {
	t.Setenv("GEMINI_CLI_PATH", "/env/gemini")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-flash")
	g := NewGemini(Config{})
	assert.Equal(t, "/env/gemini", g.CLIPath())
	assert.Equal(t, []string{"-m", "gemini-2.5-flash"}, g.ACPArgs())
}

func TestMock_ZeroDelays(t *testing.T) {
	m := NewMock(Config{CLIPath: "/tmp/fake", ExtraArgs: []string{"--echo"}})
	assert.Equal(t, time.Duration(0), m.SessionInitDelay())
	assert.Equal(t, time.Duration(0), m.PostPromptDelay())
	assert.Equal(t, []string{"--echo"}, m.ACPArgs())
	assert.Equal(t, []string{"--echo"}, m.ChatArgs())
}

func TestConfig_CloneIsolatesSlices(t *testing.T) {
	orig := Config{ExtraArgs: []string{"--a"}}
	clone := orig.Clone()
	clone.ExtraArgs[0] = "--b"
	assert.Equal(t, "--a", orig.ExtraArgs[0])
}

func TestStripANSI(t *testing.T) {
	cases := map[string]string{
		"plain text":                  "plain text",
		"\x1b[1;31mred\x1b[0m":        "red",
		"line1\r\nline2":              "line1\nline2",
		"\x1b]0;window title\x07rest": "rest",
	}
	for in, want := range cases {
		assert.Equal(t, want, StripANSI(in))
	}
}
