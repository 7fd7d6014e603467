package sheets_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/docsmith/workspace-mcp/internal/server"
	"github.com/docsmith/workspace-mcp/internal/sheets"
	"github.com/docsmith/workspace-mcp/internal/tools/common"
)

// registerWriteTools registers the mutating spreadsheet tools
func registerWriteTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	createTool := mcp.NewTool("sheets_create_spreadsheet",
		mcp.WithDescription("Create a new Google Spreadsheet with the given title"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Title for the new spreadsheet"),
		),
	)

	s.AddTool(createTool, common.InstrumentedToolHandlerWithService(
		"sheets_create_spreadsheet", "sheets", "create",
		sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			account := common.GetAccountFromArgs(ctx, args)

			title, ok := args["title"].(string)
			if !ok || title == "" {
				return mcp.NewToolResultError("title is required"), nil
			}

			client, err := getSheetsClient(ctx, account, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			info, err := client.CreateSpreadsheet(ctx, title)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to create spreadsheet: %v", err)), nil
			}

			result, _ := json.MarshalIndent(info, "", "  ")
			return mcp.NewToolResultText(fmt.Sprintf("Spreadsheet created successfully:\n%s", string(result))), nil
		}))

	writeRangeTool := mcp.NewTool("sheets_write_range",
		mcp.WithDescription("Write cell values to a range in a Google Spreadsheet, overwriting existing values"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithString("range",
			mcp.Required(),
			mcp.Description("The A1-notation range to write, e.g. 'Sheet1!A1:C10'"),
		),
		mcp.WithString("values",
			mcp.Required(),
			mcp.Description("JSON array of rows, each an array of cell values, e.g. [[\"Name\", \"Score\"], [\"Ada\", 42]]"),
		),
		mcp.WithString("valueInputOption",
			mcp.Description("How values are interpreted: 'USER_ENTERED' parses formulas and formats (default), 'RAW' stores values as-is"),
		),
	)

	s.AddTool(writeRangeTool, common.InstrumentedToolHandlerWithService(
		"sheets_write_range", "sheets", "write_range",
		sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleWriteValues(ctx, request, sc, false)
		}))

	appendValuesTool := mcp.NewTool("sheets_append_values",
		mcp.WithDescription("Append rows of values after the last row of data in a range of a Google Spreadsheet"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithString("range",
			mcp.Required(),
			mcp.Description("The A1-notation range that locates the table to append to, e.g. 'Sheet1!A:C'"),
		),
		mcp.WithString("values",
			mcp.Required(),
			mcp.Description("JSON array of rows, each an array of cell values"),
		),
		mcp.WithString("valueInputOption",
			mcp.Description("How values are interpreted: 'USER_ENTERED' parses formulas and formats (default), 'RAW' stores values as-is"),
		),
	)

	s.AddTool(appendValuesTool, common.InstrumentedToolHandlerWithService(
		"sheets_append_values", "sheets", "append_values",
		sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleWriteValues(ctx, request, sc, true)
		}))

	clearRangeTool := mcp.NewTool("sheets_clear_range",
		mcp.WithDescription("Clear cell values from a range in a Google Spreadsheet. Formatting is preserved."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithString("range",
			mcp.Required(),
			mcp.Description("The A1-notation range to clear"),
		),
	)

	s.AddTool(clearRangeTool, common.InstrumentedToolHandlerWithService(
		"sheets_clear_range", "sheets", "clear_range",
		sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			account := common.GetAccountFromArgs(ctx, args)

			spreadsheetID, ok := args["spreadsheetId"].(string)
			if !ok || spreadsheetID == "" {
				return mcp.NewToolResultError("spreadsheetId is required"), nil
			}

			rangeA1, ok := args["range"].(string)
			if !ok || rangeA1 == "" {
				return mcp.NewToolResultError("range is required"), nil
			}

			client, err := getSheetsClient(ctx, account, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			clearedRange, err := client.ClearRange(ctx, spreadsheetID, rangeA1)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to clear range: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Cleared range %s in spreadsheet %s", clearedRange, spreadsheetID)), nil
		}))

	return nil
}

// handleWriteValues covers both write and append, which share the same argument shape
func handleWriteValues(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext, sheetAppend bool) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	spreadsheetID, ok := args["spreadsheetId"].(string)
	if !ok || spreadsheetID == "" {
		return mcp.NewToolResultError("spreadsheetId is required"), nil
	}

	rangeA1, ok := args["range"].(string)
	if !ok || rangeA1 == "" {
		return mcp.NewToolResultError("range is required"), nil
	}

	valuesJSON, ok := args["values"].(string)
	if !ok || valuesJSON == "" {
		return mcp.NewToolResultError("values is required"), nil
	}

	values, err := parseValues(valuesJSON)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	valueInputOption := ""
	if vio, ok := args["valueInputOption"].(string); ok {
		valueInputOption = vio
	}

	client, err := getSheetsClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var action string
	var result *sheets.UpdateResult
	if sheetAppend {
		action = "Appended"
		result, err = client.AppendValues(ctx, spreadsheetID, rangeA1, values, valueInputOption)
	} else {
		action = "Updated"
		result, err = client.WriteRange(ctx, spreadsheetID, rangeA1, values, valueInputOption)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to write values: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s %d cell(s) in range %s of spreadsheet %s",
		action, result.UpdatedCells, result.UpdatedRange, result.SpreadsheetID)), nil
}

// parseValues decodes a JSON array of rows into the shape the Sheets API expects
func parseValues(raw string) ([][]interface{}, error) {
	var values [][]interface{}
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("values must be a JSON array of rows: %v", err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("values cannot be empty")
	}
	return values, nil
}
