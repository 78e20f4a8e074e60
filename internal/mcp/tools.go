package mcp

import "github.com/mark3labs/mcp-go/mcp"

var generateToolDef = mcp.NewTool("newsletter_generate",
	mcp.WithDescription("Run the assembly pipeline and persist a new draft edition. Content reads and intro generation degrade rather than fail; the result reports any degradations."),
	mcp.WithString("edition_type",
		mcp.Required(),
		mcp.Description("Edition type: weekly or monthly"),
		mcp.Enum("weekly", "monthly"),
	),
	mcp.WithString("editor_note",
		mcp.Description("Optional markdown note spliced into the edition after the intro"),
	),
)

var fetchToolDef = mcp.NewTool("edition_fetch",
	mcp.WithDescription("Fetch a full edition record including the rendered HTML and section contents."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Edition ULID"),
	),
)

var listToolDef = mcp.NewTool("edition_list",
	mcp.WithDescription("List edition summaries newest-first with pagination."),
	mcp.WithNumber("limit",
		mcp.Description("Page size (default 20, max 100)"),
	),
	mcp.WithNumber("offset",
		mcp.Description("Number of editions to skip"),
	),
)

var approveToolDef = mcp.NewTool("edition_approve",
	mcp.WithDescription("Approve a draft edition for sending and record the target mailing list. Fails with EMPTY_CONTENT if the edition has no rendered HTML and CONFLICT if it is already approved."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Edition ULID"),
	),
	mcp.WithString("list_id",
		mcp.Required(),
		mcp.Description("Mailing platform list the edition targets"),
	),
)

var exportToolDef = mcp.NewTool("edition_export",
	mcp.WithDescription("Export a stored edition as email HTML, plain text, or the full JSON record."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Edition ULID"),
	),
	mcp.WithString("format",
		mcp.Description("Export format (default html)"),
		mcp.Enum("html", "text", "json"),
	),
)

var importToolDef = mcp.NewTool("content_import",
	mcp.WithDescription("Import content items and intelligence rows from a JSONL file. Malformed lines are reported and skipped."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Path to the JSONL import file"),
	),
)
