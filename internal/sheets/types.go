package sheets

// SpreadsheetInfo represents metadata about a Google Spreadsheet
type SpreadsheetInfo struct {
	// ID is the unique identifier for the spreadsheet
	ID string `json:"spreadsheetId"`

	// Title is the title of the spreadsheet
	Title string `json:"title"`

	// URL is a link for opening the spreadsheet in the Sheets editor
	URL string `json:"url,omitempty"`

	// Locale is the locale of the spreadsheet (e.g. "en_US")
	Locale string `json:"locale,omitempty"`

	// TimeZone is the time zone of the spreadsheet (e.g. "America/New_York")
	TimeZone string `json:"timeZone,omitempty"`

	// Sheets are the individual sheets within the spreadsheet
	Sheets []SheetInfo `json:"sheets,omitempty"`
}

// SheetInfo represents a single sheet within a spreadsheet
type SheetInfo struct {
	// ID is the numeric sheet ID used in batch update requests
	ID int64 `json:"sheetId"`

	// Title is the name of the sheet
	Title string `json:"title"`

	// Index is the zero-based position of the sheet within the spreadsheet
	Index int64 `json:"index"`

	// RowCount is the number of rows in the sheet's grid
	RowCount int64 `json:"rowCount,omitempty"`

	// ColumnCount is the number of columns in the sheet's grid
	ColumnCount int64 `json:"columnCount,omitempty"`
}

// RangeValues holds the values read from a spreadsheet range
type RangeValues struct {
	// Range is the range the values cover, in A1 notation
	Range string `json:"range"`

	// Values is the row-major cell data. Trailing empty rows and cells
	// are omitted by the API.
	Values [][]interface{} `json:"values"`
}

// UpdateResult describes the outcome of a write or append operation
type UpdateResult struct {
	// SpreadsheetID is the spreadsheet that was updated
	SpreadsheetID string `json:"spreadsheetId"`

	// UpdatedRange is the range that was affected, in A1 notation
	UpdatedRange string `json:"updatedRange,omitempty"`

	// UpdatedRows is the number of rows affected
	UpdatedRows int64 `json:"updatedRows"`

	// UpdatedColumns is the number of columns affected
	UpdatedColumns int64 `json:"updatedColumns"`

	// UpdatedCells is the number of cells affected
	UpdatedCells int64 `json:"updatedCells"`
}
