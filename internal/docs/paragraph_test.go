package docs

import (
	"testing"

	docs "google.golang.org/api/docs/v1"
)

func multiParagraphContent() []*docs.StructuralElement {
	first := paragraphContent(1, "Hello World\n")  // [1, 13)
	second := paragraphContent(13, "Second one\n") // [13, 24)
	return append(first, second...)
}

func TestResolveParagraph(t *testing.T) {
	content := multiParagraphContent()

	tests := []struct {
		name      string
		offset    int64
		wantStart int64
		wantEnd   int64
	}{
		{"start of first", 1, 1, 13},
		{"middle of first", 5, 1, 13},
		{"last offset of first", 12, 1, 13},
		{"start of second", 13, 13, 24},
		{"middle of second", 20, 13, 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ResolveParagraph(content, tt.offset)
			if err != nil {
				t.Fatalf("ResolveParagraph(%d) unexpected error: %v", tt.offset, err)
			}
			if r.Start != tt.wantStart || r.End != tt.wantEnd {
				t.Errorf("ResolveParagraph(%d) = [%d, %d), want [%d, %d)",
					tt.offset, r.Start, r.End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestResolveParagraphErrors(t *testing.T) {
	content := multiParagraphContent()

	if _, err := ResolveParagraph(content, -1); !IsValidation(err) {
		t.Errorf("expected validation error for negative offset, got %v", err)
	}
	if _, err := ResolveParagraph(content, 24); !IsNotFound(err) {
		t.Errorf("expected not-found error past document end, got %v", err)
	}
	if _, err := ResolveParagraph(content, 0); !IsNotFound(err) {
		t.Errorf("expected not-found error before first paragraph, got %v", err)
	}
}

func TestResolveParagraphInTableCell(t *testing.T) {
	cell := paragraphContent(5, "cell text\n") // [5, 15)
	content := []*docs.StructuralElement{
		{
			StartIndex: 4,
			EndIndex:   16,
			Table: &docs.Table{
				Rows:    1,
				Columns: 1,
				TableRows: []*docs.TableRow{
					{TableCells: []*docs.TableCell{{Content: cell}}},
				},
			},
		},
	}

	r, err := ResolveParagraph(content, 8)
	if err != nil {
		t.Fatalf("ResolveParagraph() unexpected error: %v", err)
	}
	if r.Start != 5 || r.End != 15 {
		t.Errorf("ResolveParagraph() = [%d, %d), want [5, 15)", r.Start, r.End)
	}

	// the paragraph boundary is the cell paragraph, never the whole table
	if r.End-r.Start != 10 {
		t.Errorf("resolved range covers %d offsets, want 10", r.End-r.Start)
	}
}
