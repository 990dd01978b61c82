package mcp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/navbind"
	"github.com/aretw0/navbind/internal/logging"
	"github.com/aretw0/navbind/pkg/domain"
	"github.com/aretw0/navbind/pkg/navigation"
	"github.com/aretw0/navbind/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// PageURI is the resource under which the bound page is exposed.
const PageURI = "navbind://page"

// Page is the document activated by the MCP tools.
type Page interface {
	ports.Dispatcher
	Render(w io.Writer) error
}

// Binder is the read side of a bound navbind.Binder.
type Binder interface {
	Phase() domain.Phase
	Bindings() []domain.Binding
	EventType() string
}

// BindingsResponse is the structured result of list_bindings.
type BindingsResponse struct {
	Phase    domain.Phase     `json:"phase" jsonschema_description:"Whether the binder has been initialized"`
	Event    string           `json:"event" jsonschema_description:"Activation event type listened to"`
	Bindings []domain.Binding `json:"bindings" jsonschema_description:"Triggers wired to a navigation target"`
}

// ActivateArgs are the arguments of activate_trigger.
type ActivateArgs struct {
	TriggerID string `json:"trigger_id"`
}

// ActivateResponse is the structured result of activate_trigger.
type ActivateResponse struct {
	TriggerID string `json:"trigger_id" jsonschema_description:"The activated trigger"`
	Navigated bool   `json:"navigated" jsonschema_description:"Whether the activation requested a navigation"`
	Target    string `json:"target,omitempty" jsonschema_description:"The navigation target, when navigated"`
}

// Server exposes a bound page as an MCP server.
// The binder must navigate through a navigation.Navigator so activations can
// report their target.
type Server struct {
	page      Page
	binder    Binder
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(page Page, binder Binder, opts ...Option) *Server {
	s := &Server{
		page:      page,
		binder:    binder,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("navbind-mcp", strings.TrimSpace(navbind.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: list_bindings
	listTool := mcp.NewTool("list_bindings",
		mcp.WithDescription("List the triggers wired to a navigation target."),
		mcp.WithOutputSchema[BindingsResponse](),
	)
	s.mcpServer.AddTool(listTool, mcp.NewStructuredToolHandler(s.handleListBindings))

	// TOOL: activate_trigger
	activateTool := mcp.NewTool("activate_trigger",
		mcp.WithDescription("Activate a trigger as a user would and report the resulting navigation."),
		mcp.WithString("trigger_id", mcp.Required(), mcp.Description("The id of the element to activate")),
		mcp.WithOutputSchema[ActivateResponse](),
	)
	s.mcpServer.AddTool(activateTool, mcp.NewStructuredToolHandler(s.handleActivate))
}

func (s *Server) handleListBindings(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (BindingsResponse, error) {
	return BindingsResponse{
		Phase:    s.binder.Phase(),
		Event:    s.binder.EventType(),
		Bindings: s.binder.Bindings(),
	}, nil
}

func (s *Server) handleActivate(ctx context.Context, request mcp.CallToolRequest, args ActivateArgs) (ActivateResponse, error) {
	if args.TriggerID == "" {
		return ActivateResponse{}, errors.New("trigger_id is required")
	}

	ctx, capture := navigation.WithCapture(ctx)
	if _, err := s.page.Dispatch(ctx, args.TriggerID, s.binder.EventType()); err != nil {
		s.logger.Warn("MCP Activate: dispatch failed", "trigger", args.TriggerID, "error", err)
		return ActivateResponse{}, fmt.Errorf("activate %q: %w", args.TriggerID, err)
	}

	resp := ActivateResponse{TriggerID: args.TriggerID}
	if target, ok := capture.Target(); ok {
		resp.Navigated = true
		resp.Target = target
	}
	s.logger.Info("MCP Activate", "trigger", args.TriggerID, "navigated", resp.Navigated, "target", resp.Target)
	return resp, nil
}

func (s *Server) registerResources() {
	// EXPOSE: navbind://page
	s.mcpServer.AddResource(mcp.NewResource(PageURI, "Bound Page",
		mcp.WithMIMEType("text/html"),
	), s.handleReadPage)
}

func (s *Server) handleReadPage(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	buf := new(bytes.Buffer)
	if err := s.page.Render(buf); err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      PageURI,
			MIMEType: "text/html",
			Text:     buf.String(),
		},
	}, nil
}
