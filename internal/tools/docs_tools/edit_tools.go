package docs_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	gdocs "google.golang.org/api/docs/v1"

	"github.com/docsmith/workspace-mcp/internal/docs"
	"github.com/docsmith/workspace-mcp/internal/server"
	"github.com/docsmith/workspace-mcp/internal/tools/batch"
	"github.com/docsmith/workspace-mcp/internal/tools/common"
)

// RegisterEditTools registers the mutating document tools with the MCP server
func RegisterEditTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	createDocumentTool := mcp.NewTool("docs_create_document",
		mcp.WithDescription("Create a new Google Doc with the given title"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Title for the new document"),
		),
	)

	s.AddTool(createDocumentTool, common.InstrumentedToolHandlerWithService(
		"docs_create_document", "docs", "create",
		sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateDocument(ctx, request, sc)
		}))

	insertTextTool := mcp.NewTool("docs_insert_text",
		mcp.WithDescription("Insert text at a specific index in a Google Doc. Indexes are UTF-16 code units; use docs_inspect_structure to discover them."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The text to insert"),
		),
		mcp.WithNumber("index",
			mcp.Required(),
			mcp.Description("Insertion index in UTF-16 code units (must be >= 1)"),
		),
		mcp.WithString("tab",
			mcp.Description("Tab ID or title to edit. Defaults to the first tab."),
		),
	)

	s.AddTool(insertTextTool, common.InstrumentedToolHandlerWithService(
		"docs_insert_text", "docs", "insert_text",
		sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleInsertText(ctx, request, sc)
		}))

	appendTextTool := mcp.NewTool("docs_append_text",
		mcp.WithDescription("Append text to the end of a Google Doc body or tab"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The text to append"),
		),
		mcp.WithString("tab",
			mcp.Description("Tab ID or title to edit. Defaults to the first tab."),
		),
	)

	s.AddTool(appendTextTool, common.InstrumentedToolHandlerWithService(
		"docs_append_text", "docs", "append_text",
		sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleAppendText(ctx, request, sc)
		}))

	deleteRangeTool := mcp.NewTool("docs_delete_range",
		mcp.WithDescription("Delete the content between two indexes in a Google Doc"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
		mcp.WithNumber("startIndex",
			mcp.Required(),
			mcp.Description("Start of the range in UTF-16 code units (inclusive)"),
		),
		mcp.WithNumber("endIndex",
			mcp.Required(),
			mcp.Description("End of the range in UTF-16 code units (exclusive)"),
		),
		mcp.WithString("tab",
			mcp.Description("Tab ID or title to edit. Defaults to the first tab."),
		),
	)

	s.AddTool(deleteRangeTool, common.InstrumentedToolHandlerWithService(
		"docs_delete_range", "docs", "delete_range",
		sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDeleteRange(ctx, request, sc)
		}))

	replaceRangeTool := mcp.NewTool("docs_replace_range",
		mcp.WithDescription("Replace the content between two indexes with new text, atomically"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
		mcp.WithNumber("startIndex",
			mcp.Required(),
			mcp.Description("Start of the range in UTF-16 code units (inclusive)"),
		),
		mcp.WithNumber("endIndex",
			mcp.Required(),
			mcp.Description("End of the range in UTF-16 code units (exclusive)"),
		),
		mcp.WithString("text",
			mcp.Description("Replacement text. Empty text deletes the range."),
		),
		mcp.WithString("tab",
			mcp.Description("Tab ID or title to edit. Defaults to the first tab."),
		),
	)

	s.AddTool(replaceRangeTool, common.InstrumentedToolHandlerWithService(
		"docs_replace_range", "docs", "replace_range",
		sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleReplaceRange(ctx, request, sc)
		}))

	findAndReplaceTool := mcp.NewTool("docs_find_and_replace",
		mcp.WithDescription("Replace all occurrences of a string in one or more Google Docs. Supports a dry run that only counts occurrences."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc, or an array of IDs to process in batch"),
		),
		mcp.WithString("findText",
			mcp.Required(),
			mcp.Description("The text to find"),
		),
		mcp.WithString("replaceText",
			mcp.Description("The replacement text. Empty deletes the matches."),
		),
		mcp.WithBoolean("matchCase",
			mcp.Description("Match case exactly (default: false)"),
		),
		mcp.WithBoolean("dryRun",
			mcp.Description("Only count occurrences without changing the document (default: false)"),
		),
		mcp.WithString("tab",
			mcp.Description("Tab ID or title to scope the replacement to. Defaults to all tabs."),
		),
	)

	s.AddTool(findAndReplaceTool, common.InstrumentedToolHandlerWithService(
		"docs_find_and_replace", "docs", "find_and_replace",
		sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleFindAndReplace(ctx, request, sc)
		}))

	insertTableTool := mcp.NewTool("docs_insert_table",
		mcp.WithDescription("Insert a table at a specific index in a Google Doc"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
		mcp.WithNumber("index",
			mcp.Required(),
			mcp.Description("Insertion index in UTF-16 code units (must be >= 1)"),
		),
		mcp.WithNumber("rows",
			mcp.Required(),
			mcp.Description("Number of table rows"),
		),
		mcp.WithNumber("columns",
			mcp.Required(),
			mcp.Description("Number of table columns"),
		),
		mcp.WithString("tab",
			mcp.Description("Tab ID or title to edit. Defaults to the first tab."),
		),
	)

	s.AddTool(insertTableTool, common.InstrumentedToolHandlerWithService(
		"docs_insert_table", "docs", "insert_table",
		sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleInsertTable(ctx, request, sc)
		}))

	insertImageTool := mcp.NewTool("docs_insert_image",
		mcp.WithDescription("Insert an image from a publicly accessible URL at a specific index in a Google Doc"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
		mcp.WithString("imageUrl",
			mcp.Required(),
			mcp.Description("Publicly accessible URL of the image"),
		),
		mcp.WithNumber("index",
			mcp.Required(),
			mcp.Description("Insertion index in UTF-16 code units (must be >= 1)"),
		),
		mcp.WithNumber("width",
			mcp.Description("Optional image width in points"),
		),
		mcp.WithNumber("height",
			mcp.Description("Optional image height in points"),
		),
		mcp.WithString("tab",
			mcp.Description("Tab ID or title to edit. Defaults to the first tab."),
		),
	)

	s.AddTool(insertImageTool, common.InstrumentedToolHandlerWithService(
		"docs_insert_image", "docs", "insert_image",
		sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleInsertImage(ctx, request, sc)
		}))

	batchUpdateTool := mcp.NewTool("docs_batch_update",
		mcp.WithDescription("Apply a JSON array of raw Google Docs batchUpdate requests atomically. For advanced operations not covered by the other tools."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
		mcp.WithString("requests",
			mcp.Required(),
			mcp.Description("JSON array of Docs API request objects, e.g. [{\"insertText\": {...}}]"),
		),
	)

	s.AddTool(batchUpdateTool, common.InstrumentedToolHandlerWithService(
		"docs_batch_update", "docs", "batch_update",
		sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleBatchUpdate(ctx, request, sc)
		}))

	return nil
}

func handleCreateDocument(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	title, err := requireString(args, "title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := getDocsClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	doc, err := client.CreateDocument(ctx, title)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create document: %v", err)), nil
	}

	result := fmt.Sprintf("Created document %q\nDocument ID: %s\nURL: https://docs.google.com/document/d/%s/edit",
		doc.Title, doc.DocumentId, doc.DocumentId)
	return mcp.NewToolResultText(result), nil
}

func handleInsertText(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	documentID, err := requireString(args, "documentId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := requireString(args, "text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	index := optInt64(args, "index")
	if index == nil {
		return mcp.NewToolResultError("index is required"), nil
	}
	tab := optString(args, "tab")

	client, err := getDocsClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := client.InsertText(ctx, documentID, tab, *index, text)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to insert text: %v", err)), nil
	}

	return editResultText("Inserted text", res), nil
}

func handleAppendText(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	documentID, err := requireString(args, "documentId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := requireString(args, "text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tab := optString(args, "tab")

	client, err := getDocsClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := client.AppendText(ctx, documentID, tab, text)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to append text: %v", err)), nil
	}

	return editResultText("Appended text", res), nil
}

func handleDeleteRange(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	documentID, err := requireString(args, "documentId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	start := optInt64(args, "startIndex")
	end := optInt64(args, "endIndex")
	if start == nil || end == nil {
		return mcp.NewToolResultError("startIndex and endIndex are required"), nil
	}
	tab := optString(args, "tab")

	client, err := getDocsClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := client.DeleteRange(ctx, documentID, tab, *start, *end)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to delete range: %v", err)), nil
	}

	return editResultText(fmt.Sprintf("Deleted range [%d, %d)", *start, *end), res), nil
}

func handleReplaceRange(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	documentID, err := requireString(args, "documentId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	start := optInt64(args, "startIndex")
	end := optInt64(args, "endIndex")
	if start == nil || end == nil {
		return mcp.NewToolResultError("startIndex and endIndex are required"), nil
	}
	text := optString(args, "text")
	tab := optString(args, "tab")

	client, err := getDocsClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := client.ReplaceRange(ctx, documentID, tab, *start, *end, text)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to replace range: %v", err)), nil
	}

	return editResultText(fmt.Sprintf("Replaced range [%d, %d)", *start, *end), res), nil
}

func handleFindAndReplace(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	documentIDs, err := batch.ParseStringOrArray(args["documentId"], "documentId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	find, err := requireString(args, "findText")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	replace := optString(args, "replaceText")
	matchCase := optBool(args, "matchCase")
	dryRun := optBool(args, "dryRun")
	tab := optString(args, "tab")

	client, err := getDocsClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(documentIDs) == 1 {
		res, err := client.FindAndReplace(ctx, documentIDs[0], tab, find, replace, matchCase, dryRun)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to replace text: %v", err)), nil
		}
		if res.DryRun {
			return mcp.NewToolResultText(fmt.Sprintf("Dry run: %d occurrence(s) of %q found in document %s",
				res.Occurrences, find, res.DocumentID)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Replaced %d occurrence(s) of %q in document %s",
			res.Occurrences, find, res.DocumentID)), nil
	}

	results := batch.ProcessBatch(documentIDs, func(id string) (string, error) {
		res, err := client.FindAndReplace(ctx, id, tab, find, replace, matchCase, dryRun)
		if err != nil {
			return "", err
		}
		if res.DryRun {
			return fmt.Sprintf("%d occurrence(s) found", res.Occurrences), nil
		}
		return fmt.Sprintf("%d occurrence(s) replaced", res.Occurrences), nil
	})

	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}

func handleInsertTable(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	documentID, err := requireString(args, "documentId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	index := optInt64(args, "index")
	rows := optInt64(args, "rows")
	columns := optInt64(args, "columns")
	if index == nil || rows == nil || columns == nil {
		return mcp.NewToolResultError("index, rows, and columns are required"), nil
	}
	tab := optString(args, "tab")

	client, err := getDocsClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := client.InsertTable(ctx, documentID, tab, *index, *rows, *columns)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to insert table: %v", err)), nil
	}

	return editResultText(fmt.Sprintf("Inserted %dx%d table", *rows, *columns), res), nil
}

func handleInsertImage(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	documentID, err := requireString(args, "documentId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	imageURL, err := requireString(args, "imageUrl")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	index := optInt64(args, "index")
	if index == nil {
		return mcp.NewToolResultError("index is required"), nil
	}
	tab := optString(args, "tab")

	var width, height float64
	if w := optFloat(args, "width"); w != nil {
		width = *w
	}
	if h := optFloat(args, "height"); h != nil {
		height = *h
	}

	client, err := getDocsClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := client.InsertImage(ctx, documentID, tab, imageURL, *index, width, height)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to insert image: %v", err)), nil
	}

	return editResultText("Inserted image", res), nil
}

func handleBatchUpdate(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	documentID, err := requireString(args, "documentId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	requestsJSON, err := requireString(args, "requests")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	requests, err := parseBatchRequests(requestsJSON)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := getDocsClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resp, err := client.BatchUpdate(ctx, documentID, requests)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to apply batch update: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Applied %d request(s) to document %s (%d replies)",
		len(requests), documentID, len(resp.Replies))), nil
}

// parseBatchRequests decodes a JSON array of Docs API requests, rejecting
// empty arrays and entries that are not request objects
func parseBatchRequests(raw string) ([]*gdocs.Request, error) {
	var shapes []map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &shapes); err != nil {
		return nil, fmt.Errorf("requests must be a JSON array of request objects: %v", err)
	}
	if len(shapes) == 0 {
		return nil, fmt.Errorf("requests array cannot be empty")
	}
	for i, shape := range shapes {
		if len(shape) == 0 {
			return nil, fmt.Errorf("requests[%d] must contain a request type (e.g. insertText)", i)
		}
	}

	var requests []*gdocs.Request
	if err := json.Unmarshal([]byte(raw), &requests); err != nil {
		return nil, fmt.Errorf("failed to decode requests: %v", err)
	}
	return requests, nil
}

// editResultText formats a successful edit for the tool response
func editResultText(action string, res *docs.EditResult) *mcp.CallToolResult {
	msg := fmt.Sprintf("%s in document %s", action, res.DocumentID)
	if res.TabID != "" {
		msg += fmt.Sprintf(" (tab %s)", res.TabID)
	}
	return mcp.NewToolResultText(msg)
}
