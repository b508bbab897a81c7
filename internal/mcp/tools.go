package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listCaseStudiesTool defines the list_case_studies MCP tool.
var listCaseStudiesTool = mcp.NewTool("list_case_studies",
	mcp.WithDescription("List the automation case studies in display order with their role, challenge and tools."),
	mcp.WithString("color",
		mcp.Description("Only list case studies with this accent color"),
		mcp.Enum("blue", "green"),
	),
)

// getCaseStudyTool defines the get_case_study MCP tool.
var getCaseStudyTool = mcp.NewTool("get_case_study",
	mcp.WithDescription("Get one case study in full, including the numbered build steps and demo video link."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Case study identifier, e.g. lead-qual"),
	),
	mcp.WithString("format",
		mcp.Description("Output format (default markdown)"),
		mcp.Enum("markdown", "html"),
	),
)

// searchCaseStudiesTool defines the search_case_studies MCP tool.
var searchCaseStudiesTool = mcp.NewTool("search_case_studies",
	mcp.WithDescription("Find case studies whose title, role, challenge, solution or tools mention the query."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Case-insensitive text to look for, e.g. Slack"),
	),
)

// listAppsTool defines the list_apps MCP tool.
var listAppsTool = mcp.NewTool("list_apps",
	mcp.WithDescription("List the mobile app showcases with features and tech stack."),
)

// recentSubmissionsTool defines the recent_submissions MCP tool.
var recentSubmissionsTool = mcp.NewTool("recent_submissions",
	mcp.WithDescription("List recent contact form relay attempts from the audit log, newest first."),
	mcp.WithString("outcome",
		mcp.Description("Only list attempts with this outcome"),
		mcp.Enum("resolved", "rejected"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of attempts to return (default 20)"),
	),
)
