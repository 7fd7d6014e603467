package docs

import (
	"strings"

	docs "google.golang.org/api/docs/v1"
)

// FlatText renders structural content as plain text. Paragraph runs are
// concatenated as-is (their trailing newlines come from the document
// itself); table cells are joined with tabs and rows end with a newline so
// tabular content stays line-oriented.
func FlatText(content []*docs.StructuralElement) string {
	var b strings.Builder
	writeFlatText(&b, content)
	return b.String()
}

func writeFlatText(b *strings.Builder, content []*docs.StructuralElement) {
	for _, element := range content {
		if element == nil {
			continue
		}
		switch {
		case element.Paragraph != nil:
			for _, pe := range element.Paragraph.Elements {
				if pe.TextRun != nil {
					b.WriteString(pe.TextRun.Content)
				}
			}
		case element.Table != nil:
			for _, row := range element.Table.TableRows {
				for i, cell := range row.TableCells {
					if i > 0 {
						b.WriteByte('\t')
					}
					cellText := FlatText(cell.Content)
					// cell paragraphs carry their own trailing newline;
					// strip it so the row reads as one line
					b.WriteString(strings.TrimRight(cellText, "\n"))
				}
				b.WriteByte('\n')
			}
		case element.TableOfContents != nil:
			writeFlatText(b, element.TableOfContents.Content)
		}
	}
}

// CountOccurrences counts non-overlapping occurrences of pattern in the
// paragraph text of content. The count covers body paragraphs only, not
// table cells, so a dry run can undercount relative to what a full
// replaceAllText would touch.
func CountOccurrences(content []*docs.StructuralElement, pattern string, matchCase bool) int {
	if pattern == "" {
		return 0
	}
	var b strings.Builder
	for _, element := range content {
		if element == nil || element.Paragraph == nil {
			continue
		}
		for _, pe := range element.Paragraph.Elements {
			if pe.TextRun != nil {
				b.WriteString(pe.TextRun.Content)
			}
		}
	}
	text := b.String()
	if !matchCase {
		text = strings.ToLower(text)
		pattern = strings.ToLower(pattern)
	}
	return strings.Count(text, pattern)
}
