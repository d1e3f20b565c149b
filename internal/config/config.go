// ABOUTME: Configuration loading and parsing for acp-gateway
// ABOUTME: Supports YAML files with environment variable expansion plus env overrides

package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultTimeout bounds a full prompt exchange when no timeout is configured.
const DefaultTimeout = 120 * time.Second

// Config represents the complete acp-gateway configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Agent      AgentConfig      `yaml:"agent"`
	Supervisor SupervisorConfig `yaml:"supervisor"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServerConfig holds the HTTP listen address
type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr"`
}

// AgentConfig selects and parameterizes the CLI agent driven by the gateway
type AgentConfig struct {
	Name       string        `yaml:"name"`     // agent selector: kiro, codex, gemini, mock
	CLIPath    string        `yaml:"cli_path"` // overrides the descriptor's default executable
	Mode       string        `yaml:"mode"`
	Model      string        `yaml:"model"`
	ExtraArgs  []string      `yaml:"extra_args"`
	WorkingDir string        `yaml:"working_dir"`
	Timeout    time.Duration `yaml:"-"`

	// Raw string value for YAML unmarshaling
	TimeoutRaw string `yaml:"timeout"`
}

// SupervisorConfig controls the long-lived warm agent process
type SupervisorConfig struct {
	Enabled bool     `yaml:"enabled"`
	CLIPath string   `yaml:"cli_path"`
	Args    []string `yaml:"args"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads a configuration file from the given path and returns a parsed Config.
// Environment variables in the format ${VAR_NAME} are expanded. Duration strings
// are parsed into time.Duration values. Environment overrides (PORT, ACP_CLI_PATH,
// ACP_AGENT_MODE, TIMEOUT_SECS) are applied after the file is parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw YAML content
	expandedData := expandEnvVars(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expandedData), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := parseDurations(cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// FromEnv builds a configuration purely from defaults and environment
// overrides, for running without a config file.
func FromEnv() (*Config, error) {
	cfg := Default()
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Default returns a configuration with working defaults for every section.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr: "0.0.0.0:8080",
		},
		Agent: AgentConfig{
			Name:    "kiro",
			Timeout: DefaultTimeout,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// applyEnvOverrides applies the environment-derived settings read once at
// process start: listening port, executable path, default mode, and timeout.
func applyEnvOverrides(cfg *Config) {
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.HTTPAddr = "0.0.0.0:" + port
	}
	if cliPath := os.Getenv("ACP_CLI_PATH"); cliPath != "" {
		cfg.Agent.CLIPath = cliPath
	}
	if mode := os.Getenv("ACP_AGENT_MODE"); mode != "" {
		cfg.Agent.Mode = mode
	}
	if secs := os.Getenv("TIMEOUT_SECS"); secs != "" {
		if n, err := strconv.Atoi(secs); err == nil && n > 0 {
			cfg.Agent.Timeout = time.Duration(n) * time.Second
		}
	}
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return fmt.Errorf("server.http_addr is required")
	}
	if c.Agent.Name == "" {
		return fmt.Errorf("agent.name is required")
	}
	if c.Agent.Timeout <= 0 {
		return fmt.Errorf("agent.timeout must be positive")
	}
	if c.Supervisor.Enabled && c.Supervisor.CLIPath == "" && c.Agent.CLIPath == "" {
		return fmt.Errorf("supervisor.cli_path is required when the supervisor is enabled without agent.cli_path")
	}
	return nil
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	if cfg.Agent.TimeoutRaw != "" {
		d, err := time.ParseDuration(cfg.Agent.TimeoutRaw)
		if err != nil {
			return fmt.Errorf("parsing agent.timeout %q: %w", cfg.Agent.TimeoutRaw, err)
		}
		cfg.Agent.Timeout = d
	}
	return nil
}
