package sheets_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/docsmith/workspace-mcp/internal/server"
	"github.com/docsmith/workspace-mcp/internal/tools/common"
)

// registerReadTools registers the read-only spreadsheet tools
func registerReadTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	getInfoTool := mcp.NewTool("sheets_get_spreadsheet_info",
		mcp.WithDescription("Get metadata for a Google Spreadsheet, including its sheets and their dimensions"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
	)

	s.AddTool(getInfoTool, common.InstrumentedToolHandlerWithService(
		"sheets_get_spreadsheet_info", "sheets", "get_info",
		sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			account := common.GetAccountFromArgs(ctx, args)

			spreadsheetID, ok := args["spreadsheetId"].(string)
			if !ok || spreadsheetID == "" {
				return mcp.NewToolResultError("spreadsheetId is required"), nil
			}

			client, err := getSheetsClient(ctx, account, sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			info, err := client.GetSpreadsheetInfo(ctx, spreadsheetID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get spreadsheet info: %v", err)), nil
			}

			result, _ := json.MarshalIndent(info, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}))

	readRangeTool := mcp.NewTool("sheets_read_range",
		mcp.WithDescription("Read cell values from a range in a Google Spreadsheet"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("The ID of the spreadsheet"),
		),
		mcp.WithString("range",
			mcp.Required(),
			mcp.Description("The A1-notation range to read, e.g. 'Sheet1!A1:C10'"),
		),
	)

	s.AddTool(readRangeTool, common.InstrumentedToolHandlerWithService(
		"sheets_read_range", "sheets", "read_range",
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

			values, err := client.ReadRange(ctx, spreadsheetID, rangeA1)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to read range: %v", err)), nil
			}

			result, _ := json.MarshalIndent(values, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}))

	return nil
}
