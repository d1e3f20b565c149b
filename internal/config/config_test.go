// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers YAML loading, env var expansion, overrides, and duration parsing

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	configPath := writeConfig(t, `
server:
  http_addr: "0.0.0.0:9090"

agent:
  name: "codex"
  cli_path: "/usr/local/bin/codex"
  mode: "full-auto"
  timeout: "90s"
  extra_args:
    - "--json"

supervisor:
  enabled: true
  cli_path: "/usr/local/bin/codex"
  args: ["acp"]

logging:
  level: "debug"
  format: "json"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.HTTPAddr != "0.0.0.0:9090" {
		t.Errorf("unexpected http_addr: %s", cfg.Server.HTTPAddr)
	}
	if cfg.Agent.Name != "codex" {
		t.Errorf("unexpected agent name: %s", cfg.Agent.Name)
	}
	if cfg.Agent.Timeout != 90*time.Second {
		t.Errorf("unexpected timeout: %v", cfg.Agent.Timeout)
	}
	if len(cfg.Agent.ExtraArgs) != 1 || cfg.Agent.ExtraArgs[0] != "--json" {
		t.Errorf("unexpected extra args: %v", cfg.Agent.ExtraArgs)
	}
	if !cfg.Supervisor.Enabled {
		t.Error("expected supervisor enabled")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging format: %s", cfg.Logging.Format)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "reading config file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("TEST_ACP_BIN", "/opt/kiro/bin/kiro-cli")

	configPath := writeConfig(t, `
server:
  http_addr: "0.0.0.0:8080"

agent:
  name: "kiro"
  cli_path: "${TEST_ACP_BIN}"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Agent.CLIPath != "/opt/kiro/bin/kiro-cli" {
		t.Errorf("env var not expanded: %s", cfg.Agent.CLIPath)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	configPath := writeConfig(t, `
server:
  http_addr: "0.0.0.0:8080"

agent:
  name: "kiro"
  timeout: "not-a-duration"
`)

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("expected error for invalid duration")
	}
	if !strings.Contains(err.Error(), "parsing durations") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_DefaultTimeout(t *testing.T) {
	configPath := writeConfig(t, `
server:
  http_addr: "0.0.0.0:8080"

agent:
  name: "gemini"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Agent.Timeout != DefaultTimeout {
		t.Errorf("expected default timeout, got %v", cfg.Agent.Timeout)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("ACP_CLI_PATH", "/bin/fake-agent")
	t.Setenv("ACP_AGENT_MODE", "amzn-builder")
	t.Setenv("TIMEOUT_SECS", "45")

	configPath := writeConfig(t, `
server:
  http_addr: "0.0.0.0:8080"

agent:
  name: "kiro"
  cli_path: "kiro-cli"
  timeout: "120s"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.HTTPAddr != "0.0.0.0:3000" {
		t.Errorf("PORT override not applied: %s", cfg.Server.HTTPAddr)
	}
	if cfg.Agent.CLIPath != "/bin/fake-agent" {
		t.Errorf("ACP_CLI_PATH override not applied: %s", cfg.Agent.CLIPath)
	}
	if cfg.Agent.Mode != "amzn-builder" {
		t.Errorf("ACP_AGENT_MODE override not applied: %s", cfg.Agent.Mode)
	}
	if cfg.Agent.Timeout != 45*time.Second {
		t.Errorf("TIMEOUT_SECS override not applied: %v", cfg.Agent.Timeout)
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if cfg.Server.HTTPAddr != "0.0.0.0:8080" {
		t.Errorf("unexpected default addr: %s", cfg.Server.HTTPAddr)
	}
	if cfg.Agent.Name != "kiro" {
		t.Errorf("unexpected default agent: %s", cfg.Agent.Name)
	}
	if cfg.Agent.Timeout != DefaultTimeout {
		t.Errorf("unexpected default timeout: %v", cfg.Agent.Timeout)
	}
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{
			name:   "missing http addr",
			mutate: func(c *Config) { c.Server.HTTPAddr = "" },
			want:   "server.http_addr",
		},
		{
			name:   "missing agent name",
			mutate: func(c *Config) { c.Agent.Name = "" },
			want:   "agent.name",
		},
		{
			name:   "non-positive timeout",
			mutate: func(c *Config) { c.Agent.Timeout = 0 },
			want:   "agent.timeout",
		},
		{
			name: "supervisor without cli path",
			mutate: func(c *Config) {
				c.Supervisor.Enabled = true
				c.Supervisor.CLIPath = ""
				c.Agent.CLIPath = ""
			},
			want: "supervisor.cli_path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}
