package docs_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/docsmith/workspace-mcp/internal/docs"
	"github.com/docsmith/workspace-mcp/internal/server"
	"github.com/docsmith/workspace-mcp/internal/tools/common"
)

// RegisterFormatTools registers the text and paragraph styling tools with the MCP server
func RegisterFormatTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	formatTextTool := mcp.NewTool("docs_format_text",
		mcp.WithDescription("Apply character formatting to a range in a Google Doc. Target the range either by startIndex/endIndex or by textToFind with an optional matchInstance. Only the style fields you pass are changed."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
		mcp.WithNumber("startIndex",
			mcp.Description("Start of the range in UTF-16 code units (use with endIndex)"),
		),
		mcp.WithNumber("endIndex",
			mcp.Description("End of the range in UTF-16 code units (exclusive)"),
		),
		mcp.WithString("textToFind",
			mcp.Description("Text to locate and format, as an alternative to an explicit range"),
		),
		mcp.WithNumber("matchInstance",
			mcp.Description("Which occurrence of textToFind to format, 1-based; negative counts from the end, so -1 is the last occurrence (default: 1)"),
		),
		mcp.WithString("tab",
			mcp.Description("Tab ID or title to edit. Defaults to the first tab."),
		),
		mcp.WithBoolean("bold", mcp.Description("Set or clear bold")),
		mcp.WithBoolean("italic", mcp.Description("Set or clear italic")),
		mcp.WithBoolean("underline", mcp.Description("Set or clear underline")),
		mcp.WithBoolean("strikethrough", mcp.Description("Set or clear strikethrough")),
		mcp.WithNumber("fontSize", mcp.Description("Font size in points")),
		mcp.WithString("fontFamily", mcp.Description("Font family name, e.g. 'Arial'")),
		mcp.WithString("foregroundColor", mcp.Description("Text color as a hex string, e.g. '#FF0000'")),
		mcp.WithString("backgroundColor", mcp.Description("Highlight color as a hex string, e.g. '#FFFF00'")),
		mcp.WithString("linkUrl", mcp.Description("Turn the range into a link to this URL")),
	)

	s.AddTool(formatTextTool, common.InstrumentedToolHandlerWithService(
		"docs_format_text", "docs", "format_text",
		sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleFormatText(ctx, request, sc)
		}))

	formatParagraphTool := mcp.NewTool("docs_format_paragraph",
		mcp.WithDescription("Apply paragraph formatting to the paragraphs overlapping a range in a Google Doc. Target the range either by startIndex/endIndex or by textToFind with an optional matchInstance."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
		mcp.WithNumber("startIndex",
			mcp.Description("Start of the range in UTF-16 code units (use with endIndex)"),
		),
		mcp.WithNumber("endIndex",
			mcp.Description("End of the range in UTF-16 code units (exclusive)"),
		),
		mcp.WithString("textToFind",
			mcp.Description("Text to locate, as an alternative to an explicit range"),
		),
		mcp.WithNumber("matchInstance",
			mcp.Description("Which occurrence of textToFind to target, 1-based; negative counts from the end, so -1 is the last occurrence (default: 1)"),
		),
		mcp.WithString("tab",
			mcp.Description("Tab ID or title to edit. Defaults to the first tab."),
		),
		mcp.WithString("namedStyleType",
			mcp.Description("Named style, e.g. 'HEADING_1', 'NORMAL_TEXT', 'TITLE'"),
		),
		mcp.WithString("alignment",
			mcp.Description("Paragraph alignment: 'START', 'CENTER', 'END', or 'JUSTIFIED'"),
		),
		mcp.WithNumber("lineSpacing",
			mcp.Description("Line spacing as a percentage of normal (100 = single spaced)"),
		),
		mcp.WithNumber("spaceAbove", mcp.Description("Space above the paragraph in points")),
		mcp.WithNumber("spaceBelow", mcp.Description("Space below the paragraph in points")),
		mcp.WithNumber("indentStart", mcp.Description("Indentation from the start edge in points")),
		mcp.WithNumber("indentEnd", mcp.Description("Indentation from the end edge in points")),
		mcp.WithBoolean("keepWithNext",
			mcp.Description("Keep the paragraph on the same page as the next one"),
		),
	)

	s.AddTool(formatParagraphTool, common.InstrumentedToolHandlerWithService(
		"docs_format_paragraph", "docs", "format_paragraph",
		sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleFormatParagraph(ctx, request, sc)
		}))

	return nil
}

// targetFromArgs builds the range target shared by the formatting tools
func targetFromArgs(args map[string]interface{}) docs.TargetSpec {
	target := docs.TargetSpec{
		Start: optInt64(args, "startIndex"),
		End:   optInt64(args, "endIndex"),
		Text:  optString(args, "textToFind"),
	}
	if instance := optInt64(args, "matchInstance"); instance != nil {
		target.MatchInstance = int(*instance)
	}
	return target
}

func handleFormatText(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	documentID, err := requireString(args, "documentId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tab := optString(args, "tab")
	target := targetFromArgs(args)

	style := docs.TextStyleInput{
		Bold:            optBoolPtr(args, "bold"),
		Italic:          optBoolPtr(args, "italic"),
		Underline:       optBoolPtr(args, "underline"),
		Strikethrough:   optBoolPtr(args, "strikethrough"),
		FontSize:        optFloat(args, "fontSize"),
		FontFamily:      optStringPtr(args, "fontFamily"),
		ForegroundColor: optStringPtr(args, "foregroundColor"),
		BackgroundColor: optStringPtr(args, "backgroundColor"),
		LinkURL:         optStringPtr(args, "linkUrl"),
	}

	client, err := getDocsClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := client.FormatText(ctx, documentID, tab, target, style)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format text: %v", err)), nil
	}

	return formatResultText("text", res), nil
}

func handleFormatParagraph(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	documentID, err := requireString(args, "documentId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tab := optString(args, "tab")
	target := targetFromArgs(args)

	style := docs.ParagraphStyleInput{
		NamedStyleType: optStringPtr(args, "namedStyleType"),
		Alignment:      optStringPtr(args, "alignment"),
		LineSpacing:    optFloat(args, "lineSpacing"),
		SpaceAbove:     optFloat(args, "spaceAbove"),
		SpaceBelow:     optFloat(args, "spaceBelow"),
		IndentStart:    optFloat(args, "indentStart"),
		IndentEnd:      optFloat(args, "indentEnd"),
		KeepWithNext:   optBoolPtr(args, "keepWithNext"),
	}

	client, err := getDocsClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := client.FormatParagraph(ctx, documentID, tab, target, style)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format paragraph: %v", err)), nil
	}

	return formatResultText("paragraph", res), nil
}

func formatResultText(kind string, res *docs.FormatResult) *mcp.CallToolResult {
	msg := fmt.Sprintf("Applied %s formatting to range [%d, %d) in document %s (fields: %s)",
		kind, res.StartIndex, res.EndIndex, res.DocumentID, res.Fields)
	if res.TabID != "" {
		msg += fmt.Sprintf(" (tab %s)", res.TabID)
	}
	return mcp.NewToolResultText(msg)
}
