// Package mcp exposes the portfolio catalog, and optionally the submission
// audit log, as Model Context Protocol tools over stdio.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/somtogreat69/portfolio/internal/audit"
	"github.com/somtogreat69/portfolio/internal/catalog"
	"github.com/somtogreat69/portfolio/internal/content"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes catalog tools.
type Server struct {
	catalog *catalog.Catalog
	audit   *audit.Store
	md      *content.Markdown
	mcp     *server.MCPServer
}

// NewServer creates a new MCP server over cat. store may be nil, in which
// case the submission tools are not registered.
func NewServer(cat *catalog.Catalog, store *audit.Store) *Server {
	s := &Server{
		catalog: cat,
		audit:   store,
		md:      content.NewMarkdown(),
	}

	s.mcp = server.NewMCPServer(
		"portfolio",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listCaseStudiesTool, s.handleListCaseStudies)
	s.mcp.AddTool(getCaseStudyTool, s.handleGetCaseStudy)
	s.mcp.AddTool(searchCaseStudiesTool, s.handleSearchCaseStudies)
	s.mcp.AddTool(listAppsTool, s.handleListApps)
	if s.audit != nil {
		s.mcp.AddTool(recentSubmissionsTool, s.handleRecentSubmissions)
	}
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
