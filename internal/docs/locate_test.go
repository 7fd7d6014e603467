package docs

import (
	"testing"

	docs "google.golang.org/api/docs/v1"
)

// paragraphContent builds a single-paragraph body whose text runs start at
// the given offset, computing run boundaries in UTF-16 units the way the
// service does.
func paragraphContent(start int64, runs ...string) []*docs.StructuralElement {
	var elements []*docs.ParagraphElement
	offset := start
	for _, text := range runs {
		end := offset + utf16Len(text)
		elements = append(elements, &docs.ParagraphElement{
			StartIndex: offset,
			EndIndex:   end,
			TextRun:    &docs.TextRun{Content: text},
		})
		offset = end
	}
	return []*docs.StructuralElement{
		{
			StartIndex: start,
			EndIndex:   offset,
			Paragraph:  &docs.Paragraph{Elements: elements},
		},
	}
}

func TestLocateTextInstances(t *testing.T) {
	// offsets: a=1 b=3 a=5 b=7 a=9, trailing newline at 10
	content := paragraphContent(1, "a b a b a\n")

	tests := []struct {
		name      string
		pattern   string
		instance  int
		wantStart int64
		wantEnd   int64
	}{
		{"first instance", "a", 1, 1, 2},
		{"second instance", "a", 2, 5, 6},
		{"third instance", "a", 3, 9, 10},
		{"multi char first", "b a", 1, 3, 6},
		{"multi char second", "b a", 2, 7, 10},
		{"whole text", "a b a b a", 1, 1, 10},
		{"last instance", "a", -1, 9, 10},
		{"second from last", "a", -2, 5, 6},
		{"negative spanning all", "a", -3, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := LocateText(content, tt.pattern, tt.instance)
			if err != nil {
				t.Fatalf("LocateText() unexpected error: %v", err)
			}
			if r.Start != tt.wantStart || r.End != tt.wantEnd {
				t.Errorf("LocateText(%q, %d) = [%d, %d), want [%d, %d)",
					tt.pattern, tt.instance, r.Start, r.End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestLocateTextErrors(t *testing.T) {
	content := paragraphContent(1, "a b a b a\n")

	tests := []struct {
		name           string
		pattern        string
		instance       int
		wantValidation bool
		wantNotFound   bool
	}{
		{"empty pattern", "", 1, true, false},
		{"zero instance", "a", 0, true, false},
		{"absent text", "z", 1, false, true},
		{"instance beyond count", "a", 4, false, true},
		{"negative instance beyond count", "a", -4, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LocateText(content, tt.pattern, tt.instance)
			if err == nil {
				t.Fatal("LocateText() expected error but got none")
			}
			if IsValidation(err) != tt.wantValidation {
				t.Errorf("IsValidation(%v) = %v, want %v", err, IsValidation(err), tt.wantValidation)
			}
			if IsNotFound(err) != tt.wantNotFound {
				t.Errorf("IsNotFound(%v) = %v, want %v", err, IsNotFound(err), tt.wantNotFound)
			}
		})
	}
}

func TestLocateTextAcrossRuns(t *testing.T) {
	// formatting splits "Hello World" into two runs; a match may span them
	content := paragraphContent(1, "Hello ", "World\n")

	r, err := LocateText(content, "lo Wo", 1)
	if err != nil {
		t.Fatalf("LocateText() unexpected error: %v", err)
	}
	if r.Start != 4 || r.End != 9 {
		t.Errorf("LocateText() = [%d, %d), want [4, 9)", r.Start, r.End)
	}

	// end boundary exactly at the run join
	r, err = LocateText(content, "Hello ", 1)
	if err != nil {
		t.Fatalf("LocateText() unexpected error: %v", err)
	}
	if r.Start != 1 || r.End != 7 {
		t.Errorf("LocateText() = [%d, %d), want [1, 7)", r.Start, r.End)
	}
}

func TestLocateTextUTF16Offsets(t *testing.T) {
	// the emoji occupies two UTF-16 code units, so offsets past it are
	// shifted relative to rune counts
	content := paragraphContent(1, "\U0001F600a\U0001F600a\n")

	r, err := LocateText(content, "a", 2)
	if err != nil {
		t.Fatalf("LocateText() unexpected error: %v", err)
	}
	if r.Start != 6 || r.End != 7 {
		t.Errorf("LocateText() = [%d, %d), want [6, 7)", r.Start, r.End)
	}

	r, err = LocateText(content, "\U0001F600", 2)
	if err != nil {
		t.Fatalf("LocateText() unexpected error: %v", err)
	}
	if r.Start != 4 || r.End != 6 {
		t.Errorf("LocateText() = [%d, %d), want [4, 6)", r.Start, r.End)
	}
}

func TestLocateTextInTable(t *testing.T) {
	cell := paragraphContent(5, "needle\n")
	content := []*docs.StructuralElement{
		{
			StartIndex: 4,
			EndIndex:   20,
			Table: &docs.Table{
				Rows:    1,
				Columns: 1,
				TableRows: []*docs.TableRow{
					{TableCells: []*docs.TableCell{{Content: cell}}},
				},
			},
		},
	}

	r, err := LocateText(content, "needle", 1)
	if err != nil {
		t.Fatalf("LocateText() unexpected error: %v", err)
	}
	if r.Start != 5 || r.End != 11 {
		t.Errorf("LocateText() = [%d, %d), want [5, 11)", r.Start, r.End)
	}
}

func TestLocateTextEmptyDocument(t *testing.T) {
	_, err := LocateText(nil, "anything", 1)
	if !IsNotFound(err) {
		t.Errorf("expected not-found error for empty document, got %v", err)
	}
}

func TestUTF16Len(t *testing.T) {
	tests := []struct {
		s    string
		want int64
	}{
		{"", 0},
		{"abc", 3},
		{"héllo", 5},
		{"\U0001F600", 2},
		{"a\U0001F600b", 4},
	}
	for _, tt := range tests {
		if got := utf16Len(tt.s); got != tt.want {
			t.Errorf("utf16Len(%q) = %d, want %d", tt.s, got, tt.want)
		}
	}
}

func TestLocateThenResolveRepeatable(t *testing.T) {
	// locate and paragraph resolution are pure reads: repeating them
	// against the same snapshot must yield the same ranges
	cell := paragraphContent(22, "cell \n")
	content := []*docs.StructuralElement{
		{
			StartIndex: 1,
			EndIndex:   20,
			Paragraph:  paragraphContent(1, "before the table\n")[0].Paragraph,
		},
		{
			StartIndex: 21,
			EndIndex:   30,
			Table: &docs.Table{
				Rows:    1,
				Columns: 1,
				TableRows: []*docs.TableRow{
					{TableCells: []*docs.TableCell{{Content: cell}}},
				},
			},
		},
	}

	first, err := LocateText(content, "cell", 1)
	if err != nil {
		t.Fatalf("LocateText() unexpected error: %v", err)
	}
	second, err := LocateText(content, "cell", 1)
	if err != nil {
		t.Fatalf("LocateText() unexpected error on repeat: %v", err)
	}
	if first != second {
		t.Errorf("repeated LocateText() = [%d, %d), first gave [%d, %d)",
			second.Start, second.End, first.Start, first.End)
	}

	p1, err := ResolveParagraph(content, first.Start)
	if err != nil {
		t.Fatalf("ResolveParagraph() unexpected error: %v", err)
	}
	p2, err := ResolveParagraph(content, first.Start)
	if err != nil {
		t.Fatalf("ResolveParagraph() unexpected error on repeat: %v", err)
	}
	if p1 != p2 {
		t.Errorf("repeated ResolveParagraph() = [%d, %d), first gave [%d, %d)",
			p2.Start, p2.End, p1.Start, p1.End)
	}
	if !p1.Contains(first.Start) || !p1.Contains(first.End-1) {
		t.Errorf("paragraph [%d, %d) does not enclose match [%d, %d)",
			p1.Start, p1.End, first.Start, first.End)
	}
}

func TestFlattenSegmentsNesting(t *testing.T) {
	// Segments collected from a nested tree must be well formed: each
	// non-empty, in document order, and contained in its enclosing
	// structural element's range.
	cellA := paragraphContent(5, "alpha\n")
	cellB := paragraphContent(12, "beta\n")
	content := []*docs.StructuralElement{
		{
			StartIndex: 1,
			EndIndex:   4,
			Paragraph:  paragraphContent(1, "hi\n")[0].Paragraph,
		},
		{
			StartIndex: 4,
			EndIndex:   18,
			Table: &docs.Table{
				Rows:    1,
				Columns: 2,
				TableRows: []*docs.TableRow{
					{TableCells: []*docs.TableCell{
						{Content: cellA},
						{Content: cellB},
					}},
				},
			},
		},
		{
			StartIndex: 18,
			EndIndex:   24,
			Paragraph:  paragraphContent(18, "after\n")[0].Paragraph,
		},
	}

	segments := flattenSegments(content)
	if len(segments) != 4 {
		t.Fatalf("flattenSegments() returned %d segments, want 4", len(segments))
	}
	for i, seg := range segments {
		if seg.Start >= seg.End {
			t.Errorf("segment %d has degenerate range [%d, %d)", i, seg.Start, seg.End)
		}
		if utf16Len(seg.Text) != seg.End-seg.Start {
			t.Errorf("segment %d text width %d does not match range [%d, %d)",
				i, utf16Len(seg.Text), seg.Start, seg.End)
		}
		if i > 0 && seg.Start < segments[i-1].End {
			t.Errorf("segment %d starts at %d before previous segment ends at %d",
				i, seg.Start, segments[i-1].End)
		}
	}
	// table cell segments stay inside the table element's range
	for _, seg := range segments[1:3] {
		if seg.Start < 4 || seg.End > 18 {
			t.Errorf("cell segment [%d, %d) escapes table range [4, 18)", seg.Start, seg.End)
		}
	}
}
