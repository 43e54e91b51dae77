// Package mcpserver exposes augur's analyzers as MCP tools over stdio.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/augur-dev/augur/internal/scanner"
	"github.com/augur-dev/augur/pkg/analyzer/complexity"
	"github.com/augur-dev/augur/pkg/analyzer/semantic"
	"github.com/augur-dev/augur/pkg/analyzer/validate"
	"github.com/augur-dev/augur/pkg/config"
)

// Server wraps the MCP server and registers all augur analysis tools.
type Server struct {
	server     *mcp.Server
	cfg        *config.Config
	complexity *complexity.Analyzer
	semantic   *semantic.Analyzer
	pipeline   *validate.Pipeline
}

// NewServer creates an MCP server with all augur tools registered. A nil
// config uses the defaults.
func NewServer(version string, cfg *config.Config) *Server {
	if version == "" {
		version = "dev"
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	scan := scanner.New(cfg)

	validateCfg := validate.DefaultConfig()
	applyValidationConfig(&validateCfg, cfg)

	s := &Server{
		server: mcp.NewServer(
			&mcp.Implementation{
				Name:    "augur",
				Version: version,
			},
			nil,
		),
		cfg:        cfg,
		complexity: complexity.New(complexity.WithScanner(scan)),
		semantic:   semantic.New(),
		pipeline: validate.New(
			validate.WithScanner(scan),
			validate.WithConfig(validateCfg),
		),
	}
	s.registerTools()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Pipeline returns the validation pipeline so embedders can register real
// tooling executors before Run.
func (s *Server) Pipeline() *validate.Pipeline {
	return s.pipeline
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_complexity",
		Description: describeComplexity(),
	}, s.handleAnalyzeComplexity)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_code",
		Description: describeSemantic(),
	}, s.handleAnalyzeCode)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "detect_patterns",
		Description: describePatterns(),
	}, s.handleDetectPatterns)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "suggest_breakdown",
		Description: describeBreakdown(),
	}, s.handleSuggestBreakdown)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "validate_file",
		Description: describeValidateFile(),
	}, s.handleValidateFile)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "validate_project",
		Description: describeValidateProject(),
	}, s.handleValidateProject)
}
