package docs

import (
	docs "google.golang.org/api/docs/v1"
)

// ResolveParagraph returns the offset range of the paragraph enclosing the
// given offset, recursing into table cells. By the nesting invariant there
// is at most one such paragraph, so the first match wins.
func ResolveParagraph(content []*docs.StructuralElement, offset int64) (Range, error) {
	if offset < 0 {
		return Range{}, validationErrorf("offset must be >= 0, got %d", offset)
	}
	if r, ok := findParagraph(content, offset); ok {
		return r, nil
	}
	return Range{}, notFoundErrorf("no paragraph contains offset %d", offset)
}

func findParagraph(content []*docs.StructuralElement, offset int64) (Range, bool) {
	for _, element := range content {
		if element == nil {
			continue
		}
		if offset < element.StartIndex || offset >= element.EndIndex {
			continue
		}
		switch {
		case element.Paragraph != nil:
			return Range{Start: element.StartIndex, End: element.EndIndex}, true
		case element.Table != nil:
			for _, row := range element.Table.TableRows {
				for _, cell := range row.TableCells {
					if r, ok := findParagraph(cell.Content, offset); ok {
						return r, true
					}
				}
			}
		case element.TableOfContents != nil:
			if r, ok := findParagraph(element.TableOfContents.Content, offset); ok {
				return r, true
			}
		}
	}
	return Range{}, false
}
