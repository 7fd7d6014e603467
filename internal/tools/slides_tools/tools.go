package slides_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/docsmith/workspace-mcp/internal/google"
	"github.com/docsmith/workspace-mcp/internal/server"
	"github.com/docsmith/workspace-mcp/internal/slides"
	"github.com/docsmith/workspace-mcp/internal/tools/common"
)

// getSlidesClient retrieves or creates a slides client for the specified account
func getSlidesClient(ctx context.Context, account string, sc *server.ServerContext) (*slides.Client, error) {
	client := sc.SlidesClientForAccount(account)
	if client == nil {
		// Check if token exists before trying to create client
		if !slides.HasTokenForAccount(account) {
			errorMsg := google.GetAuthenticationErrorMessage(account)
			return nil, fmt.Errorf("%s", errorMsg)
		}

		var err error
		client, err = slides.NewClientForAccount(ctx, account)
		if err != nil {
			return nil, fmt.Errorf("failed to create Slides client for account %s: %w", account, err)
		}
		sc.SetSlidesClientForAccount(account, client)
	}
	return client, nil
}

// RegisterSlidesTools registers all Google Slides-related tools with the MCP server.
// Mutating tools are skipped when readOnly is true.
func RegisterSlidesTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	getPresentationTool := mcp.NewTool("slides_get_presentation",
		mcp.WithDescription("Get a Google Slides presentation, including each slide's text content"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("presentationId",
			mcp.Required(),
			mcp.Description("The ID of the presentation"),
		),
	)

	s.AddTool(getPresentationTool, common.InstrumentedToolHandlerWithService(
		"slides_get_presentation", "slides", "get",
		sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetPresentation(ctx, request, sc)
		}))

	if readOnly {
		return nil
	}

	createPresentationTool := mcp.NewTool("slides_create_presentation",
		mcp.WithDescription("Create a new Google Slides presentation with the given title"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Title for the new presentation"),
		),
	)

	s.AddTool(createPresentationTool, common.InstrumentedToolHandlerWithService(
		"slides_create_presentation", "slides", "create",
		sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreatePresentation(ctx, request, sc)
		}))

	addSlideTool := mcp.NewTool("slides_add_slide",
		mcp.WithDescription("Add a slide to a Google Slides presentation using a predefined layout"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("presentationId",
			mcp.Required(),
			mcp.Description("The ID of the presentation"),
		),
		mcp.WithString("layout",
			mcp.Description("Predefined layout, e.g. 'BLANK', 'TITLE', 'TITLE_AND_BODY', 'SECTION_HEADER' (default: 'BLANK')"),
		),
	)

	s.AddTool(addSlideTool, common.InstrumentedToolHandlerWithService(
		"slides_add_slide", "slides", "add_slide",
		sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleAddSlide(ctx, request, sc)
		}))

	replaceTextTool := mcp.NewTool("slides_replace_text",
		mcp.WithDescription("Replace all occurrences of a string across a Google Slides presentation. Useful for filling template placeholders."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("presentationId",
			mcp.Required(),
			mcp.Description("The ID of the presentation"),
		),
		mcp.WithString("findText",
			mcp.Required(),
			mcp.Description("The text to find, e.g. '{{customer}}'"),
		),
		mcp.WithString("replaceText",
			mcp.Description("The replacement text. Empty deletes the matches."),
		),
		mcp.WithBoolean("matchCase",
			mcp.Description("Match case exactly (default: false)"),
		),
	)

	s.AddTool(replaceTextTool, common.InstrumentedToolHandlerWithService(
		"slides_replace_text", "slides", "replace_text",
		sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleReplaceText(ctx, request, sc)
		}))

	return nil
}

func handleGetPresentation(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	presentationID, ok := args["presentationId"].(string)
	if !ok || presentationID == "" {
		return mcp.NewToolResultError("presentationId is required"), nil
	}

	client, err := getSlidesClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	info, err := client.GetPresentation(ctx, presentationID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get presentation: %v", err)), nil
	}

	result, _ := json.MarshalIndent(info, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleCreatePresentation(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	title, ok := args["title"].(string)
	if !ok || title == "" {
		return mcp.NewToolResultError("title is required"), nil
	}

	client, err := getSlidesClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	info, err := client.CreatePresentation(ctx, title)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create presentation: %v", err)), nil
	}

	result, _ := json.MarshalIndent(info, "", "  ")
	return mcp.NewToolResultText(fmt.Sprintf("Presentation created successfully:\n%s", string(result))), nil
}

func handleAddSlide(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	presentationID, ok := args["presentationId"].(string)
	if !ok || presentationID == "" {
		return mcp.NewToolResultError("presentationId is required"), nil
	}

	layout := ""
	if l, ok := args["layout"].(string); ok {
		layout = l
	}

	client, err := getSlidesClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	slideID, err := client.AddSlide(ctx, presentationID, layout)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to add slide: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Added slide %s to presentation %s", slideID, presentationID)), nil
}

func handleReplaceText(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	presentationID, ok := args["presentationId"].(string)
	if !ok || presentationID == "" {
		return mcp.NewToolResultError("presentationId is required"), nil
	}

	find, ok := args["findText"].(string)
	if !ok || find == "" {
		return mcp.NewToolResultError("findText is required"), nil
	}

	replace := ""
	if r, ok := args["replaceText"].(string); ok {
		replace = r
	}

	matchCase := false
	if mc, ok := args["matchCase"].(bool); ok {
		matchCase = mc
	}

	client, err := getSlidesClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := client.ReplaceAllText(ctx, presentationID, find, replace, matchCase)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to replace text: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Replaced %d occurrence(s) of %q in presentation %s",
		res.Occurrences, find, res.PresentationID)), nil
}
