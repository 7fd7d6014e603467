package docs

import (
	"context"
	"strings"
	"unicode/utf8"

	docs "google.golang.org/api/docs/v1"
)

// StructureNode is one entry in the structural outline returned by
// InspectStructure: the element kind, its offset range, and a short text
// preview so a caller can pick offsets for follow-up edits without reading
// the whole document.
type StructureNode struct {
	Type       string          `json:"type"`
	StartIndex int64           `json:"startIndex"`
	EndIndex   int64           `json:"endIndex"`
	Preview    string          `json:"preview,omitempty"`
	NamedStyle string          `json:"namedStyle,omitempty"`
	Rows       int64           `json:"rows,omitempty"`
	Columns    int64           `json:"columns,omitempty"`
	Children   []StructureNode `json:"children,omitempty"`
}

// DocumentStructure is the outline of one tab.
type DocumentStructure struct {
	DocumentID string          `json:"documentId"`
	Title      string          `json:"title"`
	TabID      string          `json:"tabId,omitempty"`
	Elements   []StructureNode `json:"elements"`
}

const previewLimit = 80

// InspectStructure returns the structural outline of a document tab with
// the offsets of every element.
func (c *Client) InspectStructure(ctx context.Context, documentID, tabSelector string) (*DocumentStructure, error) {
	doc, err := c.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	content, tabID, err := resolveBody(doc, tabSelector)
	if err != nil {
		return nil, err
	}
	return &DocumentStructure{
		DocumentID: doc.DocumentId,
		Title:      doc.Title,
		TabID:      tabID,
		Elements:   outlineContent(content),
	}, nil
}

func outlineContent(content []*docs.StructuralElement) []StructureNode {
	var nodes []StructureNode
	for _, element := range content {
		if element == nil {
			continue
		}
		node := StructureNode{
			StartIndex: element.StartIndex,
			EndIndex:   element.EndIndex,
		}
		switch {
		case element.Paragraph != nil:
			node.Type = "paragraph"
			if element.Paragraph.ParagraphStyle != nil {
				node.NamedStyle = element.Paragraph.ParagraphStyle.NamedStyleType
			}
			var text strings.Builder
			for _, pe := range element.Paragraph.Elements {
				if pe.TextRun != nil {
					text.WriteString(pe.TextRun.Content)
				}
			}
			node.Preview = truncatePreview(text.String())
		case element.Table != nil:
			node.Type = "table"
			node.Rows = element.Table.Rows
			node.Columns = element.Table.Columns
			for _, row := range element.Table.TableRows {
				for _, cell := range row.TableCells {
					node.Children = append(node.Children, outlineContent(cell.Content)...)
				}
			}
		case element.TableOfContents != nil:
			node.Type = "tableOfContents"
			node.Children = outlineContent(element.TableOfContents.Content)
		case element.SectionBreak != nil:
			node.Type = "sectionBreak"
		default:
			continue
		}
		nodes = append(nodes, node)
	}
	return nodes
}

func truncatePreview(s string) string {
	s = strings.TrimRight(s, "\n")
	if utf8.RuneCountInString(s) <= previewLimit {
		return s
	}
	runes := []rune(s)
	return string(runes[:previewLimit]) + "..."
}
