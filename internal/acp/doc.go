// ABOUTME: Package documentation for acp
// ABOUTME: Describes the agent process lifecycle and protocol plumbing

// Package acp drives external agent processes over their stdio
// protocol. It owns the full lifecycle of an interactive turn:
// RunSession spawns the agent in protocol mode, performs the
// initialize handshake, creates a session, sends one prompt, drains
// streamed output into a Collector, and tears the process down.
//
// RunFallback covers agents whose interactive mode returns nothing
// useful: it runs the binary once in non-interactive chat mode with
// the prompt piped over stdin and captures everything it prints.
//
// Supervisor manages the single persistent helper process some
// agents need before sessions work; it only ever touches the process
// it started itself, and restarts come with a settle delay.
//
// Failures carry a Kind (spawn, connection, session, protocol,
// timeout, not_connected) so HTTP handlers can map them to status
// codes without string matching.
package acp
