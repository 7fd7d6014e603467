package sheets

import (
	"testing"

	sheets "google.golang.org/api/sheets/v4"
)

func TestNormalizeValueInputOption(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{"empty defaults to user entered", "", "USER_ENTERED", false},
		{"user entered", "USER_ENTERED", "USER_ENTERED", false},
		{"raw", "RAW", "RAW", false},
		{"lowercase raw", "raw", "RAW", false},
		{"mixed case user entered", "User_Entered", "USER_ENTERED", false},
		{"invalid option", "FORMATTED", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeValueInputOption(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("normalizeValueInputOption(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("normalizeValueInputOption(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("normalizeValueInputOption(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestConvertToSpreadsheetInfo(t *testing.T) {
	spreadsheet := &sheets.Spreadsheet{
		SpreadsheetId:  "sheet123",
		SpreadsheetUrl: "https://docs.google.com/spreadsheets/d/sheet123/edit",
		Properties: &sheets.SpreadsheetProperties{
			Title:    "Budget",
			Locale:   "en_US",
			TimeZone: "America/New_York",
		},
		Sheets: []*sheets.Sheet{
			{
				Properties: &sheets.SheetProperties{
					SheetId: 0,
					Title:   "Q1",
					Index:   0,
					GridProperties: &sheets.GridProperties{
						RowCount:    1000,
						ColumnCount: 26,
					},
				},
			},
			{
				Properties: &sheets.SheetProperties{
					SheetId: 812345,
					Title:   "Q2",
					Index:   1,
				},
			},
		},
	}

	info := convertToSpreadsheetInfo(spreadsheet)

	if info.ID != "sheet123" {
		t.Errorf("Expected ID sheet123, got %s", info.ID)
	}
	if info.Title != "Budget" {
		t.Errorf("Expected Title Budget, got %s", info.Title)
	}
	if info.URL != "https://docs.google.com/spreadsheets/d/sheet123/edit" {
		t.Errorf("Expected URL, got %s", info.URL)
	}
	if info.Locale != "en_US" {
		t.Errorf("Expected Locale en_US, got %s", info.Locale)
	}
	if info.TimeZone != "America/New_York" {
		t.Errorf("Expected TimeZone America/New_York, got %s", info.TimeZone)
	}

	if len(info.Sheets) != 2 {
		t.Fatalf("Expected 2 sheets, got %d", len(info.Sheets))
	}

	first := info.Sheets[0]
	if first.ID != 0 || first.Title != "Q1" || first.Index != 0 {
		t.Errorf("Unexpected first sheet: %+v", first)
	}
	if first.RowCount != 1000 || first.ColumnCount != 26 {
		t.Errorf("Expected grid 1000x26, got %dx%d", first.RowCount, first.ColumnCount)
	}

	second := info.Sheets[1]
	if second.ID != 812345 || second.Title != "Q2" || second.Index != 1 {
		t.Errorf("Unexpected second sheet: %+v", second)
	}
	if second.RowCount != 0 || second.ColumnCount != 0 {
		t.Errorf("Expected zero grid counts when gridProperties absent, got %dx%d", second.RowCount, second.ColumnCount)
	}
}

func TestConvertToSpreadsheetInfo_MinimalData(t *testing.T) {
	info := convertToSpreadsheetInfo(&sheets.Spreadsheet{
		SpreadsheetId: "sheet456",
	})

	if info.ID != "sheet456" {
		t.Errorf("Expected ID sheet456, got %s", info.ID)
	}
	if info.Title != "" {
		t.Errorf("Expected empty Title, got %s", info.Title)
	}
	if len(info.Sheets) != 0 {
		t.Errorf("Expected 0 sheets, got %d", len(info.Sheets))
	}
}

func TestAccount(t *testing.T) {
	client := &Client{
		account: "test-account",
	}

	if client.Account() != "test-account" {
		t.Errorf("Expected account 'test-account', got %s", client.Account())
	}
}
