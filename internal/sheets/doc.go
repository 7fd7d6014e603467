// Package sheets provides a client for interacting with the Google Sheets API.
//
// This package supports spreadsheet creation, metadata inspection, and
// value-level operations on ranges:
//   - Creating spreadsheets
//   - Getting spreadsheet metadata including the sheet inventory
//   - Reading cell values from a range
//   - Writing and appending values (USER_ENTERED or RAW input)
//   - Clearing values from a range
//
// Ranges are passed through to the API verbatim in A1 notation
// (e.g. "Sheet1!A1:C10"). The package does not parse or validate A1
// notation itself.
//
// The client supports multi-account functionality. Each client instance is
// bound to a specific account, and OAuth tokens come from the unified
// google package token storage.
package sheets
