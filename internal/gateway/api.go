// ABOUTME: HTTP API handlers for chat completions, models, and sessions
// ABOUTME: Maps categorized agent errors to JSON error responses

package gateway

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/acp-tools/acp-gateway/internal/acp"
	"github.com/acp-tools/acp-gateway/internal/session"
)

// handleChatCompletions handles POST /v1/chat/completions. Requests
// are stateless: the full message history arrives in the body and
// nothing is stored.
func (g *Gateway) handleChatCompletions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		g.sendJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	req, err := parseChatCompletionRequest(r.Body)
	if err != nil {
		g.sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	messages := make([]session.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, session.Message{
			Role:    session.Role(m.Role),
			Content: m.Content,
		})
	}

	reply, err := g.client.ChatCompletion(r.Context(), messages)
	if err != nil {
		g.sendAgentError(w, err)
		return
	}

	model := req.Model
	if model == "" {
		model = g.client.Agent().Name()
	}
	resp := ChatCompletionResponse{
		ID:      "chatcmpl-" + uuid.New().String(),
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   model,
		Choices: []ChatCompletionChoice{{
			Index:        0,
			Message:      ChatMessage{Role: "assistant", Content: reply},
			FinishReason: "stop",
		}},
	}
	g.sendJSON(w, http.StatusOK, resp)
}

// handleModels handles GET /v1/models and GET /v1/models/{id}. The
// gateway advertises a single "default" model; any requested id is
// echoed back so clients hard-wired to a model name still work.
func (g *Gateway) handleModels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		g.sendJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/models"), "/")
	if id == "" {
		g.sendJSON(w, http.StatusOK, ModelListResponse{
			Object: "list",
			Data:   []ModelInfo{g.modelInfo("default")},
		})
		return
	}
	g.sendJSON(w, http.StatusOK, g.modelInfo(id))
}

func (g *Gateway) modelInfo(id string) ModelInfo {
	return ModelInfo{
		ID:      id,
		Object:  "model",
		Created: g.startedAt.Unix(),
		OwnedBy: "acp-gateway",
	}
}

// handleSessions handles POST and GET on /v1/sessions.
func (g *Gateway) handleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req CreateSessionRequest
		if r.Body != nil {
			// An empty body is a session without a title.
			_ = json.NewDecoder(r.Body).Decode(&req)
		}
		sess := g.client.CreateSession(req.Title, req.SystemPrompt)
		g.sendJSON(w, http.StatusCreated, sess)
	case http.MethodGet:
		sessions := g.client.Store().List()
		infos := make([]SessionInfo, 0, len(sessions))
		for _, s := range sessions {
			infos = append(infos, SessionInfo{
				ID:           s.ID,
				Title:        s.Title,
				MessageCount: s.MessageCount(),
				CreatedAt:    s.CreatedAt.Format(time.RFC3339),
				UpdatedAt:    s.UpdatedAt.Format(time.RFC3339),
			})
		}
		g.sendJSON(w, http.StatusOK, SessionListResponse{Sessions: infos})
	default:
		g.sendJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleSessionRoutes handles /v1/sessions/{id} and
// /v1/sessions/{id}/messages.
func (g *Gateway) handleSessionRoutes(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/sessions/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")

	switch {
	case len(parts) == 1 && parts[0] != "":
		g.handleSessionByID(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "messages":
		g.handleSessionMessages(w, r, parts[0])
	default:
		g.sendJSONError(w, http.StatusNotFound, "not found")
	}
}

func (g *Gateway) handleSessionByID(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		sess, err := g.client.Store().Get(id)
		if err != nil {
			g.sendAgentError(w, err)
			return
		}
		g.sendJSON(w, http.StatusOK, sess)
	case http.MethodDelete:
		if _, err := g.client.Store().Delete(id); err != nil {
			g.sendAgentError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		g.sendJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (g *Gateway) handleSessionMessages(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodPost:
		var req SendMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			g.sendJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if strings.TrimSpace(req.Content) == "" {
			g.sendJSONError(w, http.StatusBadRequest, "content is required")
			return
		}

		reply, err := g.client.Chat(r.Context(), id, req.Content)
		if err != nil {
			g.sendAgentError(w, err)
			return
		}
		g.sendJSON(w, http.StatusOK, SendMessageResponse{
			SessionID: id,
			Role:      string(session.RoleAssistant),
			Content:   reply,
		})
	case http.MethodGet:
		sess, err := g.client.Store().Get(id)
		if err != nil {
			g.sendAgentError(w, err)
			return
		}
		g.sendJSON(w, http.StatusOK, sess.Messages)
	default:
		g.sendJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// parseChatCompletionRequest parses and validates a chat completion
// body. The messages list must be present and non-empty.
func parseChatCompletionRequest(r io.Reader) (*ChatCompletionRequest, error) {
	var req ChatCompletionRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return nil, errors.New("invalid JSON body")
	}
	if len(req.Messages) == 0 {
		return nil, errors.New("messages is required")
	}
	for _, m := range req.Messages {
		if m.Role == "" {
			return nil, errors.New("message role is required")
		}
	}
	return &req, nil
}

// sendAgentError maps internal failures to HTTP responses. Unknown
// sessions are 404, timeouts are 504, everything else is a 500 whose
// error code carries the failure category.
func (g *Gateway) sendAgentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		g.sendJSONError(w, http.StatusNotFound, "session not found")
	case acp.IsTimeout(err):
		g.sendJSONErrorWithCode(w, http.StatusGatewayTimeout, "agent timed out", string(acp.KindTimeout))
	default:
		g.logger.Error("agent request failed", "error", err)
		code := string(acp.KindOf(err))
		if code == "" {
			code = "internal"
		}
		g.sendJSONErrorWithCode(w, http.StatusInternalServerError, "agent request failed", code)
	}
}

func (g *Gateway) sendJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		g.logger.Error("failed to encode response", "error", err)
	}
}

func (g *Gateway) sendJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: ErrorDetail{
		Message: message,
		Type:    errorTypeFor(status),
	}})
}

func (g *Gateway) sendJSONErrorWithCode(w http.ResponseWriter, status int, message, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: ErrorDetail{
		Message: message,
		Type:    errorTypeFor(status),
		Code:    &code,
	}})
}

func errorTypeFor(status int) string {
	switch {
	case status == http.StatusNotFound:
		return "not_found"
	case status >= http.StatusInternalServerError:
		return "internal_error"
	default:
		return "api_error"
	}
}
