// Package sheets_tools provides MCP tools for working with Google Sheets.
//
// Read tools fetch spreadsheet metadata and read cell values from A1
// ranges. Write tools create spreadsheets, overwrite and append values,
// and clear ranges. Values are passed as JSON arrays of rows; the
// valueInputOption parameter controls whether Google parses formulas
// and formats (USER_ENTERED, the default) or stores values verbatim
// (RAW). A1 ranges are passed to the API unaltered.
//
// Write tools are only registered when the server is not in read-only
// mode.
package sheets_tools
