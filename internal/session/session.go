// ABOUTME: Session and message types for multi-turn conversations
// ABOUTME: Includes the prompt rendering used when forwarding history to agents

package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ParseRole parses a role string case-insensitively.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(s) {
	case "system":
		return RoleSystem, nil
	case "user":
		return RoleUser, nil
	case "assistant":
		return RoleAssistant, nil
	default:
		return "", fmt.Errorf("unknown role: %q", s)
	}
}

// promptPrefix is the capitalized form used when rendering prompts.
func (r Role) promptPrefix() string {
	s := string(r)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Message is one turn in a conversation.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Name      string    `json:"name,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage creates a message stamped with the current time.
func NewMessage(role Role, content string) Message {
	return Message{Role: role, Content: content, Timestamp: time.Now().UTC()}
}

// SystemMessage creates a system message.
func SystemMessage(content string) Message { return NewMessage(RoleSystem, content) }

// UserMessage creates a user message.
func UserMessage(content string) Message { return NewMessage(RoleUser, content) }

// AssistantMessage creates an assistant message.
func AssistantMessage(content string) Message { return NewMessage(RoleAssistant, content) }

// WithName returns a copy of the message with the sender name set.
func (m Message) WithName(name string) Message {
	m.Name = name
	return m
}

// Session is a conversation with an agent. The gateway keeps sessions
// in memory only; they do not survive a restart.
type Session struct {
	ID           string         `json:"id"`
	ACPSessionID string         `json:"acp_session_id,omitempty"`
	Title        string         `json:"title,omitempty"`
	SystemPrompt string         `json:"system_prompt,omitempty"`
	Messages     []Message      `json:"messages"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// New creates an empty session with a fresh id.
func New() *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewWithSystemPrompt creates a session seeded with a system message.
func NewWithSystemPrompt(prompt string) *Session {
	s := New()
	s.SystemPrompt = prompt
	s.Messages = append(s.Messages, SystemMessage(prompt))
	return s
}

// AddMessage appends a turn and bumps UpdatedAt.
func (s *Session) AddMessage(msg Message) {
	s.Messages = append(s.Messages, msg)
	s.UpdatedAt = time.Now().UTC()
}

// AddUserMessage appends a user turn.
func (s *Session) AddUserMessage(content string) {
	s.AddMessage(UserMessage(content))
}

// AddAssistantMessage appends an assistant turn.
func (s *Session) AddAssistantMessage(content string) {
	s.AddMessage(AssistantMessage(content))
}

// LastMessages returns the trailing n messages, fewer when the
// history is shorter.
func (s *Session) LastMessages(n int) []Message {
	start := len(s.Messages) - n
	if start < 0 {
		start = 0
	}
	return s.Messages[start:]
}

// MessageCount returns the number of turns.
func (s *Session) MessageCount() int {
	return len(s.Messages)
}

// SetMetadata stores an arbitrary key and bumps UpdatedAt.
func (s *Session) SetMetadata(key string, value any) {
	if s.Metadata == nil {
		s.Metadata = make(map[string]any)
	}
	s.Metadata[key] = value
	s.UpdatedAt = time.Now().UTC()
}

// GetMetadata looks up a metadata key.
func (s *Session) GetMetadata(key string) (any, bool) {
	v, ok := s.Metadata[key]
	return v, ok
}

// BuildPrompt renders the conversation as a single prompt string.
func (s *Session) BuildPrompt() string {
	return BuildPrompt(s.Messages)
}

// BuildPrompt renders messages as a single prompt string for agents
// that take one flat text input. Each turn becomes "Role: content"
// with a capitalized role, joined by blank lines.
func BuildPrompt(messages []Message) string {
	parts := make([]string, 0, len(messages))
	for _, m := range messages {
		parts = append(parts, fmt.Sprintf("%s: %s", m.Role.promptPrefix(), m.Content))
	}
	return strings.Join(parts, "\n\n")
}
