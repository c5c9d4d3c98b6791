package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/spacetask"
	"github.com/aretw0/spacetask/internal/logging"
	"github.com/aretw0/spacetask/pkg/assignment"
	"github.com/aretw0/spacetask/pkg/domain"
	"github.com/aretw0/spacetask/pkg/environment"
	"github.com/aretw0/spacetask/pkg/workspace"
)

// EnvironmentURI is the resource exposing the catalog summary.
const EnvironmentURI = "spacetask://environment"

// Server exposes role tagging and the environment catalog as an MCP Server.
type Server struct {
	engine    *spacetask.Engine
	workspace *workspace.Manager
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures a logger for the Server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(eng *spacetask.Engine, ws *workspace.Manager, opts ...Option) *Server {
	s := &Server{
		engine:    eng,
		workspace: ws,
		mcpServer: server.NewMCPServer("spacetask-mcp", strings.TrimSpace(spacetask.Version)),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx ends.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

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

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// NodeArgs address one node of a stored diagram.
type NodeArgs struct {
	DiagramID string `json:"diagram_id"`
	NodeID    string `json:"node_id"`
}

// RoleArgs carry a role name.
type RoleArgs struct {
	DiagramID string `json:"diagram_id"`
	NodeID    string `json:"node_id"`
	Role      string `json:"role"`
}

// SuggestArgs query destination names.
type SuggestArgs struct {
	Partial string `json:"partial"`
	Limit   int    `json:"limit"`
}

// RoleResponse is the role data of one node.
type RoleResponse struct {
	NodeID      string `json:"node_id" jsonschema_description:"The node ID"`
	Role        string `json:"role" jsonschema_description:"movement, binding, unbinding or unassigned"`
	Destination string `json:"destination,omitempty" jsonschema_description:"Movement destination"`
	Binding     string `json:"binding,omitempty" jsonschema_description:"Bound participant"`
}

// SuggestResponse lists destination names.
type SuggestResponse struct {
	Suggestions []string `json:"suggestions" jsonschema_description:"Matching place names in catalog order"`
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("get_role",
		mcp.WithDescription("Get the role, destination and binding of a task node."),
		mcp.WithString("diagram_id", mcp.Required(), mcp.Description("Stored diagram ID")),
		mcp.WithString("node_id", mcp.Required(), mcp.Description("Task node ID")),
		mcp.WithOutputSchema[RoleResponse](),
	), mcp.NewStructuredToolHandler(s.handleGetRole))

	s.mcpServer.AddTool(mcp.NewTool("set_role",
		mcp.WithDescription("Assign a role to a task node. Validation warnings are returned but never block the change. An empty role clears it."),
		mcp.WithString("diagram_id", mcp.Required(), mcp.Description("Stored diagram ID")),
		mcp.WithString("node_id", mcp.Required(), mcp.Description("Task node ID")),
		mcp.WithString("role", mcp.Description("movement, binding or unbinding")),
		mcp.WithOutputSchema[domain.RoleChange](),
	), mcp.NewStructuredToolHandler(s.handleSetRole))

	s.mcpServer.AddTool(mcp.NewTool("check_role",
		mcp.WithDescription("Preview the warnings that assigning a role would produce, without changing anything."),
		mcp.WithString("diagram_id", mcp.Required(), mcp.Description("Stored diagram ID")),
		mcp.WithString("node_id", mcp.Required(), mcp.Description("Task node ID")),
		mcp.WithString("role", mcp.Required(), mcp.Description("movement, binding or unbinding")),
		mcp.WithOutputSchema[domain.CheckResult](),
	), mcp.NewStructuredToolHandler(s.handleCheckRole))

	s.mcpServer.AddTool(mcp.NewTool("suggest_destinations",
		mcp.WithDescription("Suggest place names of the loaded environment containing a text, case-insensitively."),
		mcp.WithString("partial", mcp.Description("Text to look for")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of suggestions (default 5)")),
		mcp.WithOutputSchema[SuggestResponse](),
	), mcp.NewStructuredToolHandler(s.handleSuggest))

	s.mcpServer.AddTool(mcp.NewTool("environment_summary",
		mcp.WithDescription("Summarize the loaded environment: counts, zones and purposes."),
		mcp.WithOutputSchema[environment.Summary](),
	), mcp.NewStructuredToolHandler(s.handleSummary))

	s.mcpServer.AddTool(mcp.NewTool("validate_assignment",
		mcp.WithDescription("Validate a conditional assignment written as place.attribute operator value."),
		mcp.WithString("condition", mcp.Description("When clause")),
		mcp.WithString("value", mcp.Description("Set clause")),
		mcp.WithOutputSchema[assignment.Validation](),
	), mcp.NewStructuredToolHandler(s.handleValidateAssignment))

	s.mcpServer.AddTool(mcp.NewTool("audit_diagram",
		mcp.WithDescription("List every warning of a stored diagram: role sequencing, unknown destinations and invalid assignments."),
		mcp.WithString("diagram_id", mcp.Required(), mcp.Description("Stored diagram ID")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		d, err := s.workspace.Load(ctx, request.GetString("diagram_id", ""))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("audit failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(s.engine.Editor(d).Audit())
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleGetRole(ctx context.Context, _ mcp.CallToolRequest, args NodeArgs) (RoleResponse, error) {
	d, err := s.workspace.Load(ctx, args.DiagramID)
	if err != nil {
		return RoleResponse{}, err
	}
	ed := s.engine.Editor(d)
	role, err := ed.Role(args.NodeID)
	if err != nil {
		return RoleResponse{}, err
	}
	dest, _ := ed.Destination(args.NodeID)
	binding, _ := ed.Binding(args.NodeID)
	return RoleResponse{NodeID: args.NodeID, Role: role.String(), Destination: dest, Binding: binding}, nil
}

func (s *Server) handleSetRole(ctx context.Context, _ mcp.CallToolRequest, args RoleArgs) (domain.RoleChange, error) {
	var change domain.RoleChange
	_, err := s.workspace.Update(ctx, args.DiagramID, func(ctx context.Context, d *domain.Diagram) error {
		var err error
		change, err = s.engine.Editor(d).SetRole(ctx, args.NodeID, domain.Role(args.Role))
		return err
	})
	if err != nil {
		s.logger.Warn("MCP set_role failed", "diagram_id", args.DiagramID, "node_id", args.NodeID, "err", err)
		return domain.RoleChange{}, fmt.Errorf("set_role failed: %w", err)
	}
	return change, nil
}

func (s *Server) handleCheckRole(ctx context.Context, _ mcp.CallToolRequest, args RoleArgs) (domain.CheckResult, error) {
	role, err := domain.ParseRole(args.Role)
	if err != nil {
		return domain.CheckResult{}, err
	}
	d, err := s.workspace.Load(ctx, args.DiagramID)
	if err != nil {
		return domain.CheckResult{}, err
	}
	return s.engine.Editor(d).QuickCheck(args.NodeID, role)
}

func (s *Server) handleSuggest(_ context.Context, _ mcp.CallToolRequest, args SuggestArgs) (SuggestResponse, error) {
	return SuggestResponse{Suggestions: s.engine.Catalog().Suggest(args.Partial, args.Limit)}, nil
}

func (s *Server) handleSummary(_ context.Context, _ mcp.CallToolRequest, _ map[string]any) (environment.Summary, error) {
	return s.engine.Catalog().Summary(), nil
}

func (s *Server) handleValidateAssignment(_ context.Context, _ mcp.CallToolRequest, args domain.Assignment) (assignment.Validation, error) {
	return assignment.Validate(args.Condition, args.Value, s.engine.Catalog()), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(EnvironmentURI, "Environment Summary",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.engine.Catalog().Summary())
		if err != nil {
			return nil, fmt.Errorf("failed to encode summary: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      EnvironmentURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
