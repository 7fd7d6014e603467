package docs

import (
	"strings"
	"unicode/utf16"

	docs "google.golang.org/api/docs/v1"
)

// Segment is the client-side flat view of one text run: its raw text plus
// the [start, end) offsets the service assigned to it. Segments are built
// fresh for every read and discarded afterwards; they are never cached
// across edits.
type Segment struct {
	Text  string
	Start int64
	End   int64
}

// flattenSegments walks structural elements depth-first and collects one
// Segment per text run, recursing into table cells in row-major order.
// Inline objects and other non-text paragraph elements are skipped; their
// offsets are simply absent from the flat view.
func flattenSegments(content []*docs.StructuralElement) []Segment {
	var segments []Segment
	for _, element := range content {
		if element == nil {
			continue
		}
		switch {
		case element.Paragraph != nil:
			for _, pe := range element.Paragraph.Elements {
				if pe.TextRun == nil || pe.TextRun.Content == "" {
					continue
				}
				segments = append(segments, Segment{
					Text:  pe.TextRun.Content,
					Start: pe.StartIndex,
					End:   pe.EndIndex,
				})
			}
		case element.Table != nil:
			for _, row := range element.Table.TableRows {
				for _, cell := range row.TableCells {
					segments = append(segments, flattenSegments(cell.Content)...)
				}
			}
		case element.TableOfContents != nil:
			segments = append(segments, flattenSegments(element.TableOfContents.Content)...)
		}
	}
	return segments
}

// utf16Len returns the length of s in UTF-16 code units, which is the unit
// the Docs API uses for all indexes.
func utf16Len(s string) int64 {
	n := int64(0)
	for _, r := range s {
		n += int64(len(utf16.Encode([]rune{r})))
	}
	return n
}

// LocateText finds the instance-th occurrence of pattern in the flattened
// text of content and returns its offset range. Instances are 1-based;
// negative instances count backwards from the last match, so -1 selects
// the final occurrence.
//
// The search is an exact, case-sensitive substring match over the
// concatenation of all segments, so a match may begin and end in different
// text runs (text split across runs by formatting). Both boundaries are
// translated back to real offsets through the segment that contains them.
func LocateText(content []*docs.StructuralElement, pattern string, instance int) (Range, error) {
	if pattern == "" {
		return Range{}, validationErrorf("search text must not be empty")
	}
	if instance == 0 {
		return Range{}, validationErrorf("matchInstance must not be 0 (use 1 for the first match, -1 for the last)")
	}

	segments := flattenSegments(content)
	if len(segments) == 0 {
		return Range{}, notFoundErrorf("text %q not found (document is empty)", pattern)
	}

	var flat strings.Builder
	// byte offset of each segment within the flat string
	flatStarts := make([]int, len(segments))
	for i, seg := range segments {
		flatStarts[i] = flat.Len()
		flat.WriteString(seg.Text)
	}
	text := flat.String()

	// Collect every non-overlapping match, then pick the requested one.
	var starts []int
	from := 0
	for {
		idx := strings.Index(text[from:], pattern)
		if idx < 0 {
			break
		}
		starts = append(starts, from+idx)
		from = from + idx + len(pattern)
	}
	if len(starts) == 0 {
		return Range{}, notFoundErrorf("text %q not found", pattern)
	}

	nth := instance
	if nth < 0 {
		nth = len(starts) + 1 + nth
	}
	if nth < 1 || nth > len(starts) {
		return Range{}, notFoundErrorf("text %q found only %d time(s), wanted instance %d", pattern, len(starts), instance)
	}
	matchStart := starts[nth-1]

	start, ok := flatToOffset(segments, flatStarts, matchStart)
	if !ok {
		return Range{}, notFoundErrorf("text %q not found", pattern)
	}
	// The end boundary is exclusive: map the last byte of the match and add
	// the width of the final code point.
	lastByte := matchStart + len(pattern)
	end, ok := flatEndToOffset(segments, flatStarts, lastByte)
	if !ok {
		return Range{}, notFoundErrorf("text %q not found", pattern)
	}

	return Range{Start: start, End: end}, nil
}

// flatToOffset maps a byte position in the flat string to the real document
// offset of the code point starting there.
func flatToOffset(segments []Segment, flatStarts []int, pos int) (int64, bool) {
	for i := len(segments) - 1; i >= 0; i-- {
		if pos >= flatStarts[i] {
			seg := segments[i]
			within := pos - flatStarts[i]
			if within > len(seg.Text) {
				return 0, false
			}
			return seg.Start + utf16Len(seg.Text[:within]), true
		}
	}
	return 0, false
}

// flatEndToOffset maps an exclusive byte position (the byte just past a
// match) to the corresponding exclusive document offset. An end boundary
// exactly at a segment join belongs to the earlier segment.
func flatEndToOffset(segments []Segment, flatStarts []int, pos int) (int64, bool) {
	for i := len(segments) - 1; i >= 0; i-- {
		if pos > flatStarts[i] {
			seg := segments[i]
			within := pos - flatStarts[i]
			if within > len(seg.Text) {
				return 0, false
			}
			return seg.Start + utf16Len(seg.Text[:within]), true
		}
	}
	return 0, false
}
