// ABOUTME: Gateway server wiring config, client facade, and HTTP routes
// ABOUTME: Owns startup, the supervisor warm-up, and graceful shutdown

package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/acp-tools/acp-gateway/internal/acp"
	"github.com/acp-tools/acp-gateway/internal/agent"
	"github.com/acp-tools/acp-gateway/internal/client"
	"github.com/acp-tools/acp-gateway/internal/config"
	"github.com/acp-tools/acp-gateway/internal/session"
)

const shutdownTimeout = 10 * time.Second

// Gateway is the HTTP server fronting one agent.
type Gateway struct {
	cfg        *config.Config
	logger     *slog.Logger
	client     *client.Client
	supervisor *acp.Supervisor
	httpServer *http.Server
	startedAt  time.Time
}

// New creates a Gateway from config. The agent adapter is resolved
// here; an unknown agent name is a startup error, not a request
// error.
func New(cfg *config.Config, logger *slog.Logger) (*Gateway, error) {
	desc, err := agent.New(cfg.Agent.Name, agent.Config{
		CLIPath:    cfg.Agent.CLIPath,
		Mode:       cfg.Agent.Mode,
		Model:      cfg.Agent.Model,
		ExtraArgs:  cfg.Agent.ExtraArgs,
		WorkingDir: cfg.Agent.WorkingDir,
	})
	if err != nil {
		return nil, fmt.Errorf("resolving agent: %w", err)
	}

	var supervisor *acp.Supervisor
	switch {
	case cfg.Supervisor.Enabled:
		path := cfg.Supervisor.CLIPath
		if path == "" {
			path = cfg.Agent.CLIPath
		}
		supervisor = acp.NewSupervisor(path, cfg.Supervisor.Args, logger)
	case desc.RequiresMCPServers():
		// Agents that cannot run without the helper get the
		// process-wide env-configured supervisor even when config
		// leaves the section off.
		supervisor = acp.Default()
	}

	cl := client.New(session.NewStore(), desc, client.Options{
		Supervisor: supervisor,
		Timeout:    cfg.Agent.Timeout,
		WorkingDir: cfg.Agent.WorkingDir,
		Logger:     logger,
	})

	gw := &Gateway{
		cfg:        cfg,
		logger:     logger,
		client:     cl,
		supervisor: supervisor,
		startedAt:  time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/chat/completions", gw.handleChatCompletions)
	mux.HandleFunc("/v1/models", gw.handleModels)
	mux.HandleFunc("/v1/models/", gw.handleModels)
	mux.HandleFunc("/v1/sessions", gw.handleSessions)
	mux.HandleFunc("/v1/sessions/", gw.handleSessionRoutes)
	mux.HandleFunc("/health", gw.handleHealth)

	gw.httpServer = &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: withCORS(mux),
	}
	return gw, nil
}

// withCORS applies permissive CORS headers so browser clients can call
// the API directly. Preflight requests are answered without reaching
// the handlers.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Run starts the server and blocks until ctx is cancelled or the
// server fails, then shuts down gracefully.
func (g *Gateway) Run(ctx context.Context) error {
	if g.supervisor != nil && g.client.Agent().RequiresMCPServers() {
		if err := g.supervisor.EnsureRunning(ctx); err != nil {
			g.logger.Warn("helper process warm-up failed, will retry per request", "error", err)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		g.logger.Info("HTTP server listening",
			"addr", g.cfg.Server.HTTPAddr,
			"agent", g.client.Agent().Name())
		if err := g.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var serverErr error
	select {
	case <-ctx.Done():
		g.logger.Info("shutdown signal received")
	case serverErr = <-errCh:
		g.logger.Error("HTTP server failed", "error", serverErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := g.Shutdown(shutdownCtx); err != nil {
		if serverErr != nil {
			return serverErr
		}
		return err
	}
	return serverErr
}

// Shutdown stops the HTTP server and the helper process.
func (g *Gateway) Shutdown(ctx context.Context) error {
	err := g.httpServer.Shutdown(ctx)
	if g.supervisor != nil {
		g.supervisor.Stop()
	}
	g.logger.Info("gateway stopped")
	return err
}

// Handler exposes the route table for tests.
func (g *Gateway) Handler() http.Handler {
	return g.httpServer.Handler
}

// Client exposes the facade for tests.
func (g *Gateway) Client() *client.Client {
	return g.client
}

// handleHealth returns 200 OK if the server is alive.
func (g *Gateway) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
