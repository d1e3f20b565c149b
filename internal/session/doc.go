// ABOUTME: Package documentation for session
// ABOUTME: Describes in-memory conversation storage and prompt rendering

// Package session provides in-memory conversation storage for the
// gateway. A Session is an ordered list of role-tagged messages; the
// Store keeps sessions in a mutex-guarded map and hands out copies,
// so concurrent HTTP handlers never share mutable state.
//
// Nothing here persists. Restarting the gateway loses all sessions,
// which is acceptable because the agents themselves hold no
// server-side state between processes either.
//
// BuildPrompt flattens a conversation into the single text prompt
// format that one-shot agent invocations expect.
package session
