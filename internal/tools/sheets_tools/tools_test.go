package sheets_tools

import (
	"testing"
)

func TestParseValues(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantErr  bool
		wantRows int
	}{
		{
			name:     "single row",
			raw:      `[["Name", "Score"]]`,
			wantRows: 1,
		},
		{
			name:     "mixed types",
			raw:      `[["Ada", 42, true], ["Grace", 3.14, false]]`,
			wantRows: 2,
		},
		{
			name:    "empty array",
			raw:     `[]`,
			wantErr: true,
		},
		{
			name:    "flat array",
			raw:     `["Name", "Score"]`,
			wantErr: true,
		},
		{
			name:    "invalid json",
			raw:     `[["Name"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := parseValues(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(values) != tt.wantRows {
				t.Errorf("got %d rows, want %d", len(values), tt.wantRows)
			}
		})
	}
}

func TestParseValuesPreservesTypes(t *testing.T) {
	values, err := parseValues(`[["Ada", 42, true]]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	row := values[0]
	if s, ok := row[0].(string); !ok || s != "Ada" {
		t.Errorf("row[0] = %v, want string Ada", row[0])
	}
	if n, ok := row[1].(float64); !ok || n != 42 {
		t.Errorf("row[1] = %v, want number 42", row[1])
	}
	if b, ok := row[2].(bool); !ok || !b {
		t.Errorf("row[2] = %v, want true", row[2])
	}
}
