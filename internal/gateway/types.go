// ABOUTME: JSON request and response types for the HTTP API
// ABOUTME: Chat completion shapes follow the common OpenAI-style contract

package gateway

// ChatMessage is one turn in a chat completion request or response.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionRequest is the JSON request body for POST /v1/chat/completions.
type ChatCompletionRequest struct {
	Model    string        `json:"model,omitempty"`
	Messages []ChatMessage `json:"messages"`
}

// ChatCompletionChoice is one candidate answer. The gateway always
// returns exactly one.
type ChatCompletionChoice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// ChatCompletionUsage carries token accounting when available.
type ChatCompletionUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatCompletionResponse is the JSON response for POST /v1/chat/completions.
// Usage is omitted: agents do not report token counts.
type ChatCompletionResponse struct {
	ID      string                 `json:"id"`
	Object  string                 `json:"object"`
	Created int64                  `json:"created"`
	Model   string                 `json:"model"`
	Choices []ChatCompletionChoice `json:"choices"`
	Usage   *ChatCompletionUsage   `json:"usage,omitempty"`
}

// ModelInfo is one entry in GET /v1/models.
type ModelInfo struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	OwnedBy string `json:"owned_by"`
}

// ModelListResponse is the JSON response for GET /v1/models.
type ModelListResponse struct {
	Object string      `json:"object"`
	Data   []ModelInfo `json:"data"`
}

// CreateSessionRequest is the JSON request body for POST /v1/sessions.
type CreateSessionRequest struct {
	Title        string `json:"title,omitempty"`
	SystemPrompt string `json:"system_prompt,omitempty"`
}

// SessionInfo summarizes one session in GET /v1/sessions.
type SessionInfo struct {
	ID           string `json:"id"`
	Title        string `json:"title,omitempty"`
	MessageCount int    `json:"message_count"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// SessionListResponse is the JSON response for GET /v1/sessions.
type SessionListResponse struct {
	Sessions []SessionInfo `json:"sessions"`
}

// ErrorDetail describes a single API error.
type ErrorDetail struct {
	Message string  `json:"message"`
	Type    string  `json:"type"`
	Param   *string `json:"param"`
	Code    *string `json:"code"`
}

// ErrorResponse is the JSON envelope for all API errors.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// SendMessageRequest is the JSON request body for
// POST /v1/sessions/{id}/messages.
type SendMessageRequest struct {
	Content string `json:"content"`
}

// SendMessageResponse is the JSON response for a session message.
type SendMessageResponse struct {
	SessionID string `json:"session_id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
}
