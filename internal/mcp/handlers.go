package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/somtogreat69/portfolio/internal/audit"
	"github.com/somtogreat69/portfolio/internal/catalog"
)

// handleListCaseStudies lists case studies in display order.
func (s *Server) handleListCaseStudies(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	color := catalog.Color(request.GetString("color", ""))
	if color != "" && !color.Valid() {
		return mcp.NewToolResultError(fmt.Sprintf("unknown color %q: use blue or green", color)), nil
	}

	var studies []catalog.CaseStudy
	for _, cs := range s.catalog.CaseStudies() {
		if color != "" && cs.Color != color {
			continue
		}
		studies = append(studies, cs)
	}

	if len(studies) == 0 {
		return mcp.NewToolResultText("No case studies found."), nil
	}
	return mcp.NewToolResultText(formatCaseStudyList(studies)), nil
}

// handleGetCaseStudy returns a single case study with its workflow.
func (s *Server) handleGetCaseStudy(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}

	cs, err := s.catalog.CaseStudy(id)
	if errors.Is(err, catalog.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf(
			"No case study %q. Use list_case_studies to see the available ids.", id,
		)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("lookup failed: %v", err)), nil
	}

	switch request.GetString("format", "markdown") {
	case "html":
		solution, err := s.md.Render(cs.Solution)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("rendering solution: %v", err)), nil
		}
		return mcp.NewToolResultText(string(solution)), nil
	case "markdown":
		return mcp.NewToolResultText(formatCaseStudy(cs)), nil
	default:
		return mcp.NewToolResultError("format must be markdown or html"), nil
	}
}

// handleSearchCaseStudies matches the query against case study text and tools.
func (s *Server) handleSearchCaseStudies(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return mcp.NewToolResultError("query must not be empty"), nil
	}

	var matches []catalog.CaseStudy
	for _, cs := range s.catalog.CaseStudies() {
		if matchesCaseStudy(cs, query) {
			matches = append(matches, cs)
		}
	}

	if len(matches) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No case studies mention %q.", query)), nil
	}
	return mcp.NewToolResultText(formatCaseStudyList(matches)), nil
}

// handleListApps lists the mobile app showcases.
func (s *Server) handleListApps(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	apps := s.catalog.Apps()
	if len(apps) == 0 {
		return mcp.NewToolResultText("No apps found."), nil
	}

	var b strings.Builder
	for i, app := range apps {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "## %s (%s)\n", app.Name, app.ID)
		fmt.Fprintf(&b, "%s\n\n", app.Tagline)
		fmt.Fprintf(&b, "%s\n\n", app.Overview)
		b.WriteString("Features:\n")
		for n, f := range app.Features {
			fmt.Fprintf(&b, "%02d. %s\n", n+1, f)
		}
		fmt.Fprintf(&b, "Tech: %s\n", strings.Join(app.TechStack, ", "))
	}
	return mcp.NewToolResultText(b.String()), nil
}

// handleRecentSubmissions lists audit log entries.
func (s *Server) handleRecentSubmissions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := audit.QueryFilter{Limit: request.GetInt("limit", 20)}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if o := request.GetString("outcome", ""); o != "" {
		filter.Outcome = audit.Outcome(o)
		if !filter.Outcome.Valid() {
			return mcp.NewToolResultError(fmt.Sprintf("unknown outcome %q: use resolved or rejected", o)), nil
		}
	}

	attempts, err := s.audit.Query(ctx, filter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("query failed: %v", err)), nil
	}
	if len(attempts) == 0 {
		return mcp.NewToolResultText("No submissions recorded."), nil
	}
	return mcp.NewToolResultText(formatAttempts(attempts)), nil
}

func matchesCaseStudy(cs catalog.CaseStudy, query string) bool {
	for _, field := range []string{cs.ID, cs.Title, cs.Role, cs.Challenge, cs.Solution} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	for _, tool := range cs.Tools {
		if strings.Contains(strings.ToLower(tool), query) {
			return true
		}
	}
	return false
}

// formatCaseStudyList renders one summary line per case study.
func formatCaseStudyList(studies []catalog.CaseStudy) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d case stud", len(studies))
	if len(studies) == 1 {
		b.WriteString("y:\n\n")
	} else {
		b.WriteString("ies:\n\n")
	}
	for i, cs := range studies {
		fmt.Fprintf(&b, "%d. **%s** (%s) [%s]\n", i+1, cs.Title, cs.ID, cs.Role)
		fmt.Fprintf(&b, "   %s\n", cs.Challenge)
		fmt.Fprintf(&b, "   Tools: %s\n", strings.Join(cs.Tools, ", "))
	}
	return b.String()
}

func formatCaseStudy(cs catalog.CaseStudy) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", cs.Title)
	fmt.Fprintf(&b, "Role: %s\n", cs.Role)
	fmt.Fprintf(&b, "Tools: %s\n\n", strings.Join(cs.Tools, ", "))
	fmt.Fprintf(&b, "## The Challenge\n\n%s\n\n", cs.Challenge)
	fmt.Fprintf(&b, "## The Solution\n\n%s\n\n", cs.Solution)
	b.WriteString("## Workflow\n\n")
	for i, step := range cs.Workflow {
		fmt.Fprintf(&b, "%d. **%s**: %s\n", i+1, step.Label, step.Description)
	}
	if cs.HasVideo() {
		fmt.Fprintf(&b, "\nDemo video: %s\n", cs.VideoURL)
	}
	return b.String()
}

func formatAttempts(attempts []audit.Attempt) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d attempt(s):\n\n", len(attempts))
	for _, a := range attempts {
		fmt.Fprintf(&b, "- %s %s %s <%s> %s in %s",
			a.Timestamp.UTC().Format(time.DateTime), a.Outcome, a.ServiceDomain,
			a.SenderEmail, a.SessionID, a.Duration.Round(time.Millisecond))
		if a.Error != "" {
			fmt.Fprintf(&b, ": %s", a.Error)
		}
		b.WriteString("\n")
	}
	return b.String()
}
