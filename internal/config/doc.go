// Package config handles configuration loading for acp-gateway.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable expansion.
// The package provides validation and sensible defaults, and the gateway can
// also run without a file at all, configured purely from the environment.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	agent:
//	  cli_path: "${ACP_CLI_PATH}"
//
// Syntax: ${VAR_NAME}
//
// # Environment Overrides
//
// A handful of settings are read from the environment after the file is
// parsed, matching the knobs of the original single-binary deployment:
//
//	PORT           listening port (rewrites server.http_addr)
//	ACP_CLI_PATH   agent executable override
//	ACP_AGENT_MODE default agent mode
//	TIMEOUT_SECS   overall exchange timeout in seconds
//
// These are read once at process start and are not hot-reloadable.
//
// # Duration Parsing
//
// Duration values use Go's time.ParseDuration syntax:
//
//	agent:
//	  timeout: "120s"
//
// # Configuration Sections
//
// Server settings:
//
//	server:
//	  http_addr: "0.0.0.0:8080"
//
// Agent selection and tuning:
//
//	agent:
//	  name: "kiro"          # kiro, codex, gemini, mock
//	  cli_path: "kiro-cli"
//	  mode: "kiro_default"
//	  timeout: "120s"
//	  extra_args: []
//	  working_dir: ""
//
// Warm process supervisor:
//
//	supervisor:
//	  enabled: false
//	  cli_path: "kiro-cli"
//	  args: ["acp"]
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
package config
