package sheets

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/docsmith/workspace-mcp/internal/google"
)

// Value input options accepted by write and append operations.
// USER_ENTERED parses values as if typed into the Sheets UI (formulas,
// dates, numbers); RAW stores them verbatim.
const (
	ValueInputUserEntered = "USER_ENTERED"
	ValueInputRaw         = "RAW"
)

// Client wraps the Google Sheets API service
type Client struct {
	service *sheets.Service
	account string // The account this client is associated with
}

// Account returns the account name this client is associated with
func (c *Client) Account() string {
	return c.account
}

// HasTokenForAccount checks if a valid OAuth token exists for the specified account
func HasTokenForAccount(account string) bool {
	return google.HasTokenForAccount(account)
}

// HasToken checks if a valid OAuth token exists for the default account
func HasToken() bool {
	return google.HasToken()
}

// NewClientForAccountWithProvider creates a new Google Sheets client with OAuth2
// authentication for a specific account, retrieving the token from the given provider
func NewClientForAccountWithProvider(ctx context.Context, account string, tokenProvider google.TokenProvider) (*Client, error) {
	if tokenProvider == nil {
		return nil, fmt.Errorf("token provider cannot be nil")
	}

	token, err := tokenProvider.GetTokenForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to get Google OAuth token for account %s: %w", account, err)
	}

	// Create OAuth2 config and token source
	conf := google.GetOAuthConfig()
	tokenSource := conf.TokenSource(ctx, token)

	// Create HTTP client with the token
	client := oauth2.NewClient(ctx, tokenSource)

	// Force HTTP/1.1 by disabling HTTP/2
	transport := client.Transport.(*oauth2.Transport)
	baseTransport := &http.Transport{
		ForceAttemptHTTP2: false,
	}
	transport.Base = baseTransport

	sheetsService, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}

	return &Client{
		service: sheetsService,
		account: account,
	}, nil
}

// NewClientForAccount creates a new Google Sheets client with OAuth2 authentication for a specific account
// Returns an error if no valid token exists - use HasTokenForAccount() to check first
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	provider := google.NewFileTokenProvider()
	return NewClientForAccountWithProvider(ctx, account, provider)
}

// NewClient creates a new Google Sheets client with OAuth2 authentication for the default account
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// CreateSpreadsheet creates a new spreadsheet with the given title
func (c *Client) CreateSpreadsheet(ctx context.Context, title string) (*SpreadsheetInfo, error) {
	if title == "" {
		return nil, fmt.Errorf("spreadsheet title is required")
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title: title,
		},
	}

	created, err := c.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create spreadsheet: %w", err)
	}

	return convertToSpreadsheetInfo(created), nil
}

// GetSpreadsheetInfo retrieves metadata for a spreadsheet, including its sheet inventory
func (c *Client) GetSpreadsheetInfo(ctx context.Context, spreadsheetID string) (*SpreadsheetInfo, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheetID is required")
	}

	spreadsheet, err := c.service.Spreadsheets.Get(spreadsheetID).
		Context(ctx).
		Fields("spreadsheetId, spreadsheetUrl, properties(title, locale, timeZone), sheets(properties(sheetId, title, index, gridProperties(rowCount, columnCount)))").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get spreadsheet %s: %w", spreadsheetID, err)
	}

	return convertToSpreadsheetInfo(spreadsheet), nil
}

// ReadRange reads cell values from a range in A1 notation (e.g. "Sheet1!A1:C10")
func (c *Client) ReadRange(ctx context.Context, spreadsheetID, readRange string) (*RangeValues, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheetID is required")
	}
	if readRange == "" {
		return nil, fmt.Errorf("range is required")
	}

	resp, err := c.service.Spreadsheets.Values.Get(spreadsheetID, readRange).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read range %s: %w", readRange, err)
	}

	return &RangeValues{
		Range:  resp.Range,
		Values: resp.Values,
	}, nil
}

// WriteRange writes cell values to a range in A1 notation, overwriting existing data.
// valueInputOption must be USER_ENTERED or RAW; empty defaults to USER_ENTERED.
func (c *Client) WriteRange(ctx context.Context, spreadsheetID, writeRange string, values [][]interface{}, valueInputOption string) (*UpdateResult, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheetID is required")
	}
	if writeRange == "" {
		return nil, fmt.Errorf("range is required")
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("values are required")
	}

	vio, err := normalizeValueInputOption(valueInputOption)
	if err != nil {
		return nil, err
	}

	valueRange := &sheets.ValueRange{
		Values: values,
	}

	resp, err := c.service.Spreadsheets.Values.Update(spreadsheetID, writeRange, valueRange).
		Context(ctx).
		ValueInputOption(vio).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to write range %s: %w", writeRange, err)
	}

	return &UpdateResult{
		SpreadsheetID:  resp.SpreadsheetId,
		UpdatedRange:   resp.UpdatedRange,
		UpdatedRows:    resp.UpdatedRows,
		UpdatedColumns: resp.UpdatedColumns,
		UpdatedCells:   resp.UpdatedCells,
	}, nil
}

// AppendValues appends rows after the last row of the table that overlaps the given range
func (c *Client) AppendValues(ctx context.Context, spreadsheetID, appendRange string, values [][]interface{}, valueInputOption string) (*UpdateResult, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheetID is required")
	}
	if appendRange == "" {
		return nil, fmt.Errorf("range is required")
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("values are required")
	}

	vio, err := normalizeValueInputOption(valueInputOption)
	if err != nil {
		return nil, err
	}

	valueRange := &sheets.ValueRange{
		Values: values,
	}

	resp, err := c.service.Spreadsheets.Values.Append(spreadsheetID, appendRange, valueRange).
		Context(ctx).
		ValueInputOption(vio).
		InsertDataOption("INSERT_ROWS").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to append to range %s: %w", appendRange, err)
	}

	result := &UpdateResult{
		SpreadsheetID: resp.SpreadsheetId,
	}
	if resp.Updates != nil {
		result.UpdatedRange = resp.Updates.UpdatedRange
		result.UpdatedRows = resp.Updates.UpdatedRows
		result.UpdatedColumns = resp.Updates.UpdatedColumns
		result.UpdatedCells = resp.Updates.UpdatedCells
	}

	return result, nil
}

// ClearRange clears cell values from a range in A1 notation. Formatting is preserved.
func (c *Client) ClearRange(ctx context.Context, spreadsheetID, clearRange string) (string, error) {
	if spreadsheetID == "" {
		return "", fmt.Errorf("spreadsheetID is required")
	}
	if clearRange == "" {
		return "", fmt.Errorf("range is required")
	}

	resp, err := c.service.Spreadsheets.Values.Clear(spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to clear range %s: %w", clearRange, err)
	}

	return resp.ClearedRange, nil
}

// normalizeValueInputOption validates and canonicalizes a value input option.
// An empty option defaults to USER_ENTERED.
func normalizeValueInputOption(option string) (string, error) {
	if option == "" {
		return ValueInputUserEntered, nil
	}
	switch strings.ToUpper(option) {
	case ValueInputUserEntered:
		return ValueInputUserEntered, nil
	case ValueInputRaw:
		return ValueInputRaw, nil
	default:
		return "", fmt.Errorf("invalid valueInputOption %q: must be USER_ENTERED or RAW", option)
	}
}

// convertToSpreadsheetInfo converts a Sheets API Spreadsheet to our SpreadsheetInfo type
func convertToSpreadsheetInfo(s *sheets.Spreadsheet) *SpreadsheetInfo {
	info := &SpreadsheetInfo{
		ID:  s.SpreadsheetId,
		URL: s.SpreadsheetUrl,
	}

	if s.Properties != nil {
		info.Title = s.Properties.Title
		info.Locale = s.Properties.Locale
		info.TimeZone = s.Properties.TimeZone
	}

	for _, sheet := range s.Sheets {
		if sheet.Properties == nil {
			continue
		}
		si := SheetInfo{
			ID:    sheet.Properties.SheetId,
			Title: sheet.Properties.Title,
			Index: sheet.Properties.Index,
		}
		if sheet.Properties.GridProperties != nil {
			si.RowCount = sheet.Properties.GridProperties.RowCount
			si.ColumnCount = sheet.Properties.GridProperties.ColumnCount
		}
		info.Sheets = append(info.Sheets, si)
	}

	return info
}
