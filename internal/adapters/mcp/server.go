package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/mockcoach"
	"github.com/aretw0/mockcoach/internal/logging"
	"github.com/aretw0/mockcoach/internal/presentation/graph"
	"github.com/aretw0/mockcoach/pkg/plan"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// OperationsURI names the resource listing every coach operation.
const OperationsURI = "mockcoach://operations"

// Operation describes one coach operation for agents composing plans.
type Operation struct {
	Name             plan.Op `json:"name"`
	Track            string  `json:"track"`
	TakesParticipant bool    `json:"takes_participant"`
}

// Server exposes plan validation and simulation as MCP tools, so an agent can check a chain
// layout before writing the test that uses it.
type Server struct {
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		logger:    logger,
		mcpServer: server.NewMCPServer("mockcoach-mcp", strings.TrimSpace(mockcoach.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
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
	// TOOL: validate_plan
	validateTool := mcp.NewTool("validate_plan",
		mcp.WithDescription("Check a plan document and build its chain without running any step."),
		mcp.WithString("plan", mcp.Required(), mcp.Description("The plan document")),
		mcp.WithString("format", mcp.Description("yaml (default) or json")),
		mcp.WithOutputSchema[plan.Report](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidate))

	// TOOL: simulate_plan
	simulateTool := mcp.NewTool("simulate_plan",
		mcp.WithDescription("Run the steps of a plan against recording callbacks and return the call trace."),
		mcp.WithString("plan", mcp.Required(), mcp.Description("The plan document")),
		mcp.WithString("format", mcp.Description("yaml (default) or json")),
		mcp.WithOutputSchema[plan.Result](),
	)
	s.mcpServer.AddTool(simulateTool, mcp.NewStructuredToolHandler(s.handleSimulate))

	// TOOL: graph_plan
	s.mcpServer.AddTool(mcp.NewTool("graph_plan",
		mcp.WithDescription("Render the chain of a plan as a Mermaid flowchart."),
		mcp.WithString("plan", mcp.Required(), mcp.Description("The plan document")),
		mcp.WithString("format", mcp.Description("yaml (default) or json")),
		mcp.WithBoolean("overlay", mcp.Description("Highlight the positions a simulation visits")),
	), s.handleGraph)
}

func (s *Server) registerResources() {
	// EXPOSE: mockcoach://operations
	s.mcpServer.AddResource(mcp.NewResource(OperationsURI, "Coach Operations",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(Operations())
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      OperationsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

// Operations lists every coach operation.
func Operations() []Operation {
	ops := plan.Ops()
	out := make([]Operation, len(ops))
	for i, op := range ops {
		out[i] = Operation{Name: op, Track: string(op.Track()), TakesParticipant: op.TakesParticipant()}
	}
	return out
}

// Handler methods for structured tools

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (plan.Report, error) {
	doc, err := parseArgs(args)
	if err != nil {
		return plan.Report{}, err
	}
	return plan.Check(doc), nil
}

func (s *Server) handleSimulate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (plan.Result, error) {
	doc, err := parseArgs(args)
	if err != nil {
		return plan.Result{}, err
	}
	res, err := plan.Simulate(doc, mockcoach.WithLogger(s.logger))
	if err != nil {
		return plan.Result{}, fmt.Errorf("simulate failed: %w", err)
	}
	s.logger.Info("MCP plan simulated", "plan", doc.Name, "steps", len(res.Steps), "failed", res.Failed())
	return *res, nil
}

func (s *Server) handleGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := parse(request.GetString("plan", ""), request.GetString("format", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := plan.Simulate(doc, mockcoach.WithLogger(s.logger))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("simulate failed: %v", err)), nil
	}

	var overlay *graph.Overlay
	if request.GetBool("overlay", false) {
		overlay = graph.OverlayFromResult(res)
	}
	return mcp.NewToolResultText(graph.GenerateMermaid(doc.Participants, res.Topology, overlay)), nil
}

func parseArgs(args map[string]interface{}) (*plan.Document, error) {
	src, _ := args["plan"].(string)
	format, _ := args["format"].(string)
	return parse(src, format)
}

func parse(src, format string) (*plan.Document, error) {
	if strings.TrimSpace(src) == "" {
		return nil, fmt.Errorf("plan is required")
	}
	doc, err := plan.Parse([]byte(src), format)
	if err != nil {
		return nil, err
	}
	if doc.Name == "" {
		doc.Name = "anonymous"
	}
	return doc, nil
}
