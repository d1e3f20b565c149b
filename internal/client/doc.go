// ABOUTME: Package documentation for client
// ABOUTME: Describes the facade combining sessions, agents, and runners

// Package client is the facade the HTTP layer talks to. A Client
// binds one agent descriptor to the session store and the process
// runners, and implements the gateway's prompt policy: try the
// interactive protocol path first, and when it completes with no
// text, run the agent once in non-interactive fallback mode. The
// fallback's answer is final.
//
// The runners are plain function fields, so tests swap them for
// stubs instead of spawning processes.
package client
