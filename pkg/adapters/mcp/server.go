package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/bpmnflow"
	"github.com/aretw0/bpmnflow/internal/presentation/graph"
	"github.com/aretw0/bpmnflow/pkg/definition"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DefinitionsResponse is the structured result of list_definitions.
type DefinitionsResponse struct {
	Definitions []string `json:"definitions" jsonschema_description:"Ids of the known process definitions"`
}

// Engine defines the interface required by the MCP server to interact with bpmnflow.
type Engine interface {
	Definitions(ctx context.Context) ([]string, error)
	Definition(ctx context.Context, id string) (*definition.ProcessDefinition, error)
	Validate(ctx context.Context, id string) (*bpmnflow.Report, error)
	ValidateRaw(ctx context.Context, raw []byte) (*bpmnflow.Report, error)
}

// Server wraps the Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("bpmnflow-mcp", strings.TrimSpace(bpmnflow.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP endpoints over SSE on port until ctx is done.
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
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: list_definitions
	listTool := mcp.NewTool("list_definitions",
		mcp.WithDescription("List the ids of every process definition the server can load."),
		mcp.WithOutputSchema[DefinitionsResponse](),
	)
	s.mcpServer.AddTool(listTool, mcp.NewStructuredToolHandler(s.handleListDefinitions))

	// TOOL: validate_definition
	validateTool := mcp.NewTool("validate_definition",
		mcp.WithDescription("Validate a stored process definition and return its structural findings (codes FO1-FO5)."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Process definition id")),
		mcp.WithOutputSchema[bpmnflow.Report](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidateDefinition))

	// TOOL: validate_description
	rawTool := mcp.NewTool("validate_description",
		mcp.WithDescription("Validate a YAML or JSON process description without storing it."),
		mcp.WithString("description", mcp.Required(), mcp.Description("The process description document")),
		mcp.WithOutputSchema[bpmnflow.Report](),
	)
	s.mcpServer.AddTool(rawTool, mcp.NewStructuredToolHandler(s.handleValidateDescription))

	// TOOL: get_graph
	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Render a process definition as a Mermaid flowchart."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Process definition id")),
	), s.handleGetGraph)
}

func (s *Server) handleListDefinitions(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (DefinitionsResponse, error) {
	ids, err := s.engine.Definitions(ctx)
	if err != nil {
		return DefinitionsResponse{}, fmt.Errorf("list failed: %w", err)
	}
	return DefinitionsResponse{Definitions: ids}, nil
}

func (s *Server) handleValidateDefinition(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (bpmnflow.Report, error) {
	id, _ := args["id"].(string)
	if id == "" {
		return bpmnflow.Report{}, fmt.Errorf("id is required")
	}
	report, err := s.engine.Validate(ctx, id)
	if report == nil {
		return bpmnflow.Report{}, fmt.Errorf("validate failed: %w", err)
	}
	return *report, nil
}

func (s *Server) handleValidateDescription(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (bpmnflow.Report, error) {
	raw, _ := args["description"].(string)
	report, err := s.engine.ValidateRaw(ctx, []byte(raw))
	if err != nil {
		slog.Warn("MCP validate_description: Rejected description", "error", err, "size", len(raw))
	}
	if report == nil {
		return bpmnflow.Report{}, fmt.Errorf("validate failed: %w", err)
	}
	return *report, nil
}

func (s *Server) handleGetGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	def, err := s.engine.Definition(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
	}
	return mcp.NewToolResultText(graph.GenerateMermaid(def, nil)), nil
}

func (s *Server) registerResources() {
	// EXPOSE: bpmnflow://definitions
	s.mcpServer.AddResource(mcp.NewResource("bpmnflow://definitions", "Process Definitions",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := s.engine.Definitions(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list definitions: %w", err)
		}
		jsonBytes, _ := json.Marshal(DefinitionsResponse{Definitions: ids})

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "bpmnflow://definitions",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
