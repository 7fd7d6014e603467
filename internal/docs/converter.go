package docs

import (
	"fmt"
	"strings"

	docs "google.golang.org/api/docs/v1"
)

// DocumentToMarkdown converts a Google Doc to Markdown format.
// Supports both legacy documents (with doc.Body) and tabbed documents: each
// tab becomes a section whose heading depth follows its nesting level.
func DocumentToMarkdown(doc *docs.Document) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("document is nil")
	}

	var md strings.Builder

	if doc.Title != "" {
		md.WriteString("# ")
		md.WriteString(doc.Title)
		md.WriteString("\n\n")
	}

	if len(doc.Tabs) > 0 {
		writeTabsMarkdown(&md, doc.Tabs, 2)
	} else if doc.Body != nil {
		writeContentMarkdown(&md, doc.Body.Content)
	}

	return md.String(), nil
}

func writeTabsMarkdown(md *strings.Builder, tabs []*docs.Tab, headingLevel int) {
	if headingLevel > 6 {
		headingLevel = 6
	}
	for i, tab := range tabs {
		if tab == nil {
			continue
		}
		title := ""
		if tab.TabProperties != nil {
			title = tab.TabProperties.Title
		}
		if title == "" {
			title = fmt.Sprintf("Tab %d", i+1)
		}
		// a lone untitled root tab needs no heading of its own
		if len(tabs) > 1 || headingLevel > 2 || (tab.TabProperties != nil && tab.TabProperties.Title != "") {
			md.WriteString(strings.Repeat("#", headingLevel))
			md.WriteString(" ")
			md.WriteString(title)
			md.WriteString("\n\n")
		}
		writeContentMarkdown(md, TabBody(tab))
		writeTabsMarkdown(md, tab.ChildTabs, headingLevel+1)
	}
}

func writeContentMarkdown(md *strings.Builder, content []*docs.StructuralElement) {
	for _, element := range content {
		if element == nil {
			continue
		}
		switch {
		case element.Paragraph != nil:
			writeParagraphMarkdown(md, element.Paragraph)
		case element.Table != nil:
			writeTableMarkdown(md, element.Table)
		case element.TableOfContents != nil:
			writeContentMarkdown(md, element.TableOfContents.Content)
		case element.SectionBreak != nil:
			// section breaks carry no visible content
		}
	}
}

var headingDepth = map[string]int{
	"HEADING_1": 1, "HEADING_2": 2, "HEADING_3": 3,
	"HEADING_4": 4, "HEADING_5": 5, "HEADING_6": 6,
}

func writeParagraphMarkdown(md *strings.Builder, para *docs.Paragraph) {
	if para == nil {
		return
	}

	heading := 0
	if para.ParagraphStyle != nil {
		heading = headingDepth[para.ParagraphStyle.NamedStyleType]
	}
	if heading > 0 {
		md.WriteString(strings.Repeat("#", heading))
		md.WriteString(" ")
	} else if para.Bullet != nil {
		// list nesting depth comes from the bullet itself
		md.WriteString(strings.Repeat("  ", int(para.Bullet.NestingLevel)))
		md.WriteString("- ")
	}

	for _, elem := range para.Elements {
		switch {
		case elem.TextRun != nil:
			writeTextRunMarkdown(md, elem.TextRun)
		case elem.InlineObjectElement != nil:
			md.WriteString("[inline object]")
		}
	}

	md.WriteString("\n")
	if heading > 0 || para.Bullet == nil {
		md.WriteString("\n")
	}
}

func writeTextRunMarkdown(md *strings.Builder, run *docs.TextRun) {
	content := run.Content
	if content == "" {
		return
	}
	style := run.TextStyle
	if style == nil {
		md.WriteString(content)
		return
	}

	if style.Link != nil && style.Link.Url != "" {
		md.WriteString("[")
		md.WriteString(strings.TrimSpace(content))
		md.WriteString("](")
		md.WriteString(style.Link.Url)
		md.WriteString(")")
		return
	}

	if style.WeightedFontFamily != nil && strings.Contains(style.WeightedFontFamily.FontFamily, "Courier") {
		md.WriteString("`")
		md.WriteString(strings.TrimSpace(content))
		md.WriteString("`")
		return
	}

	// markers apply to the text only, trailing newlines stay outside
	trailing := ""
	if idx := strings.IndexByte(content, '\n'); idx >= 0 {
		trailing = content[idx:]
		content = content[:idx]
	}

	marker := ""
	switch {
	case style.Bold && style.Italic:
		marker = "***"
	case style.Bold:
		marker = "**"
	case style.Italic:
		marker = "*"
	}
	if style.Strikethrough {
		marker = "~~" + marker
	}

	if marker == "" || content == "" {
		md.WriteString(content)
	} else {
		md.WriteString(marker)
		md.WriteString(content)
		md.WriteString(reverseMarker(marker))
	}
	md.WriteString(trailing)
}

func reverseMarker(marker string) string {
	if strings.HasPrefix(marker, "~~") {
		return marker[2:] + "~~"
	}
	return marker
}

func writeTableMarkdown(md *strings.Builder, table *docs.Table) {
	if table == nil || len(table.TableRows) == 0 {
		return
	}

	for rowIndex, row := range table.TableRows {
		md.WriteString("|")
		for _, cell := range row.TableCells {
			text := FlatText(cell.Content)
			text = strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))
			md.WriteString(" ")
			md.WriteString(text)
			md.WriteString(" |")
		}
		md.WriteString("\n")

		if rowIndex == 0 {
			md.WriteString("|")
			for range row.TableCells {
				md.WriteString(" --- |")
			}
			md.WriteString("\n")
		}
	}

	md.WriteString("\n")
}

// DocumentToPlainText extracts plain text from a Google Doc.
// Supports both legacy documents (with doc.Body) and tabbed documents; tab
// titles become separator lines.
func DocumentToPlainText(doc *docs.Document) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("document is nil")
	}

	var text strings.Builder

	if doc.Title != "" {
		text.WriteString(doc.Title)
		text.WriteString("\n\n")
	}

	if len(doc.Tabs) > 0 {
		writeTabsPlainText(&text, doc.Tabs)
	} else if doc.Body != nil {
		text.WriteString(FlatText(doc.Body.Content))
	}

	return text.String(), nil
}

func writeTabsPlainText(text *strings.Builder, tabs []*docs.Tab) {
	flat := FlattenTabs(tabs)
	for i, tab := range flat {
		if len(flat) > 1 {
			title := ""
			if tab.TabProperties != nil {
				title = tab.TabProperties.Title
			}
			if title == "" {
				title = fmt.Sprintf("Tab %d", i+1)
			}
			text.WriteString("=== ")
			text.WriteString(title)
			text.WriteString(" ===\n\n")
		}
		text.WriteString(FlatText(TabBody(tab)))
		text.WriteString("\n")
	}
}
