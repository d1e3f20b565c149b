// ABOUTME: Package documentation for agent
// ABOUTME: Describes the adapter model for external CLI agents

// Package agent describes the external CLI agents the gateway can
// drive. Each adapter implements Descriptor: the binary path, the
// argument sets for interactive protocol mode and one-shot chat mode,
// pacing delays around session setup and prompt drain, and any output
// post-processing the agent needs.
//
// Adapters are selected by name through New:
//
//	desc, err := agent.New("kiro", agent.Config{CLIPath: "/usr/bin/kiro-cli"})
//
// Bundled adapters are kiro, codex, gemini, and mock. The mock
// adapter exists for tests and carries zero delays.
//
// Descriptors are immutable once built. The connection orchestrator
// consults them when spawning processes; it never mutates them, so a
// single descriptor is safe to share across concurrent requests.
package agent
