// ABOUTME: High-level client facade over agent sessions and fallback invocation
// ABOUTME: Implements the interactive-first, fallback-on-empty prompt policy

package client

import (
	"context"
	"log/slog"
	"time"

	"github.com/acp-tools/acp-gateway/internal/acp"
	"github.com/acp-tools/acp-gateway/internal/agent"
	"github.com/acp-tools/acp-gateway/internal/session"
)

// RunFunc is the signature shared by the interactive and fallback
// runners. Kept injectable so tests substitute stubs for real
// process spawns.
type RunFunc func(ctx context.Context, desc agent.Descriptor, prompt string, opts acp.RunOptions) (string, error)

// Client ties the session store, an agent descriptor, and the
// process runners into the operations the HTTP layer needs.
type Client struct {
	store      *session.Store
	desc       agent.Descriptor
	supervisor *acp.Supervisor
	timeout    time.Duration
	workingDir string
	logger     *slog.Logger

	runSession  RunFunc
	runFallback RunFunc
}

// Options configure a Client.
type Options struct {
	// Supervisor, when set, is ensured running before each prompt
	// for agents that need the persistent helper.
	Supervisor *acp.Supervisor

	// Timeout bounds each prompt turn.
	Timeout time.Duration

	// WorkingDir is the cwd for spawned agent processes.
	WorkingDir string

	Logger *slog.Logger

	// RunSession and RunFallback override the default process
	// runners. Nil means the real ones.
	RunSession  RunFunc
	RunFallback RunFunc
}

// New creates a Client for the given agent.
func New(store *session.Store, desc agent.Descriptor, opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	runSession := opts.RunSession
	if runSession == nil {
		runSession = acp.RunSession
	}
	runFallback := opts.RunFallback
	if runFallback == nil {
		runFallback = acp.RunFallback
	}
	return &Client{
		store:       store,
		desc:        desc,
		supervisor:  opts.Supervisor,
		timeout:     opts.Timeout,
		workingDir:  opts.WorkingDir,
		logger:      logger.With("agent", desc.Name()),
		runSession:  runSession,
		runFallback: runFallback,
	}
}

// Store exposes the underlying session store for the HTTP session
// endpoints.
func (c *Client) Store() *session.Store {
	return c.store
}

// Agent returns the descriptor this client drives.
func (c *Client) Agent() agent.Descriptor {
	return c.desc
}

// CreateSession starts a new conversation, optionally titled and
// seeded with a system prompt.
func (c *Client) CreateSession(title, systemPrompt string) *session.Session {
	return c.store.CreateWithTitle(title, systemPrompt)
}

// SendPrompt runs one prompt against the agent. The interactive
// protocol path goes first; when it succeeds but streams no text at
// all, the one-shot fallback runs instead. A stream of whitespace or
// control sequences counts as text and never falls back. Fallback
// output is final: an empty fallback response is an error, not
// another retry.
//
// The runner executes in its own goroutine; only the finished text or
// error crosses back, so the connection never outlives the call.
func (c *Client) SendPrompt(ctx context.Context, prompt string) (string, error) {
	if c.supervisor != nil && c.desc.RequiresMCPServers() {
		if err := c.supervisor.EnsureRunning(ctx); err != nil {
			return "", err
		}
	}

	opts := acp.RunOptions{
		WorkingDir: c.workingDir,
		Timeout:    c.timeout,
		Logger:     c.logger,
	}

	out, err := c.runIsolated(ctx, c.runSession, prompt, opts)
	if err != nil {
		return "", err
	}
	if out != "" {
		return c.desc.ProcessResponse(out), nil
	}

	c.logger.Info("interactive run returned no text, using fallback")
	return c.runIsolated(ctx, c.runFallback, prompt, opts)
}

type runResult struct {
	text string
	err  error
}

func (c *Client) runIsolated(ctx context.Context, run RunFunc, prompt string, opts acp.RunOptions) (string, error) {
	ch := make(chan runResult, 1)
	go func() {
		text, err := run(ctx, c.desc, prompt, opts)
		ch <- runResult{text: text, err: err}
	}()
	res := <-ch
	return res.text, res.err
}

// Chat sends the conversation plus the new user message to the agent
// and records both turns. Nothing is persisted when the exchange
// fails: a session never holds a user message without its reply.
func (c *Client) Chat(ctx context.Context, sessionID, userMessage string) (string, error) {
	sess, err := c.store.Get(sessionID)
	if err != nil {
		return "", err
	}
	sess.AddUserMessage(userMessage)

	reply, err := c.SendPrompt(ctx, sess.BuildPrompt())
	if err != nil {
		return "", err
	}

	sess.AddAssistantMessage(reply)
	if err := c.store.Update(sess); err != nil {
		return "", err
	}
	return reply, nil
}

// ChatCompletion serves a stateless request: the full message list
// arrives with the call, is flattened into one prompt, and nothing is
// stored.
func (c *Client) ChatCompletion(ctx context.Context, messages []session.Message) (string, error) {
	return c.SendPrompt(ctx, session.BuildPrompt(messages))
}
