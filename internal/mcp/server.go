package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is set at build time.
var Version = "dev"

// Server wraps the application service with MCP protocol handling.
type Server struct {
	svc    Service
	config Config
}

// New creates a new MCP server wrapping the given service.
func New(svc Service, cfg Config) *Server {
	if cfg.ConfigPath == "" {
		cfg.ConfigPath = DefaultConfig().ConfigPath
	}

	return &Server{
		svc:    svc,
		config: cfg,
	}
}

// Run starts the MCP server and blocks until the context is canceled.
func (s *Server) Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "testctl",
			Version: Version,
		},
		&mcp.ServerOptions{
			HasTools:     true,
			HasResources: true,
		},
	)

	s.registerTools(server)
	s.registerResources(server)

	transport := &mcp.StdioTransport{}
	if err := server.Run(ctx, transport); err != nil {
		return fmt.Errorf("mcp server error: %w", err)
	}

	return nil
}

// registerTools adds all tool handlers to the server.
func (s *Server) registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "run-tests",
		Description: "Run a test suite with coverage instrumentation. Executes pytest for the given test type and writes a per-type coverage database.",
	}, s.handleRunTests)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "coverage-report",
		Description: "Combine per-type coverage databases, render the HTML report, and return per-type and total coverage percentages.",
	}, s.handleCoverageReport)
}

// registerResources adds all resource handlers to the server.
func (s *Server) registerResources(server *mcp.Server) {
	server.AddResource(&mcp.Resource{
		URI:         "testctl://config",
		Name:        "Current Configuration",
		Description: "Returns current or auto-detected testctl configuration",
		MIMEType:    "application/json",
	}, s.handleConfigResource)
}
