package docs

import (
	"strings"
	"testing"

	docs "google.golang.org/api/docs/v1"
)

func tabbedDocument() *docs.Document {
	return &docs.Document{
		DocumentId: "doc1",
		Title:      "Tabbed",
		Tabs: []*docs.Tab{
			{
				TabProperties: &docs.TabProperties{TabId: "t.0", Title: "Overview", Index: 0},
				DocumentTab: &docs.DocumentTab{
					Body: &docs.Body{Content: paragraphContent(1, "overview text\n")},
				},
				ChildTabs: []*docs.Tab{
					{
						TabProperties: &docs.TabProperties{TabId: "t.0.0", Title: "Details", Index: 0, ParentTabId: "t.0"},
						DocumentTab: &docs.DocumentTab{
							Body: &docs.Body{Content: paragraphContent(1, "details text\n")},
						},
					},
				},
			},
			{
				TabProperties: &docs.TabProperties{TabId: "t.1", Title: "Appendix", Index: 1},
				DocumentTab: &docs.DocumentTab{
					Body: &docs.Body{Content: paragraphContent(1, "appendix text\n")},
				},
			},
		},
	}
}

func TestListTabs(t *testing.T) {
	infos := ListTabs(tabbedDocument())

	if len(infos) != 3 {
		t.Fatalf("ListTabs() returned %d tabs, want 3", len(infos))
	}
	// depth-first, parents before children
	if infos[0].ID != "t.0" || infos[1].ID != "t.0.0" || infos[2].ID != "t.1" {
		t.Errorf("tab order = %s, %s, %s", infos[0].ID, infos[1].ID, infos[2].ID)
	}
	if infos[0].Level != 0 || infos[1].Level != 1 || infos[2].Level != 0 {
		t.Errorf("tab levels = %d, %d, %d", infos[0].Level, infos[1].Level, infos[2].Level)
	}
	if infos[1].ParentID != "t.0" {
		t.Errorf("child tab ParentID = %q, want t.0", infos[1].ParentID)
	}
}

func TestListTabsLegacyDocument(t *testing.T) {
	doc := &docs.Document{
		DocumentId: "doc1",
		Body:       &docs.Body{Content: paragraphContent(1, "legacy\n")},
	}
	if infos := ListTabs(doc); len(infos) != 0 {
		t.Errorf("ListTabs() on legacy document = %v, want empty", infos)
	}
}

func TestFindTab(t *testing.T) {
	doc := tabbedDocument()

	tests := []struct {
		name     string
		selector string
		wantID   string
	}{
		{"empty selector picks first", "", "t.0"},
		{"by id", "t.0.0", "t.0.0"},
		{"by title", "Appendix", "t.1"},
		{"by title case insensitive", "appendix", "t.1"},
		{"nested by title", "details", "t.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tab, err := FindTab(doc, tt.selector)
			if err != nil {
				t.Fatalf("FindTab(%q) unexpected error: %v", tt.selector, err)
			}
			if tab.TabProperties.TabId != tt.wantID {
				t.Errorf("FindTab(%q) = %s, want %s", tt.selector, tab.TabProperties.TabId, tt.wantID)
			}
		})
	}

	if _, err := FindTab(doc, "missing"); !IsNotFound(err) {
		t.Errorf("FindTab(missing) expected not-found error, got %v", err)
	}
}

func TestFindTabAmbiguousTitle(t *testing.T) {
	doc := tabbedDocument()
	doc.Tabs = append(doc.Tabs, &docs.Tab{
		TabProperties: &docs.TabProperties{TabId: "t.2", Title: "Appendix", Index: 2},
		DocumentTab: &docs.DocumentTab{
			Body: &docs.Body{Content: paragraphContent(1, "second appendix\n")},
		},
	})

	_, err := FindTab(doc, "appendix")
	if !IsValidation(err) {
		t.Fatalf("FindTab() with duplicate title expected validation error, got %v", err)
	}
	// the error names the candidate tab IDs so the caller can retry by ID
	for _, id := range []string{"t.1", "t.2"} {
		if !strings.Contains(err.Error(), id) {
			t.Errorf("error %q does not mention candidate tab %s", err, id)
		}
	}

	// an exact ID still resolves even when its title is duplicated
	tab, err := FindTab(doc, "t.2")
	if err != nil {
		t.Fatalf("FindTab(t.2) unexpected error: %v", err)
	}
	if tab.TabProperties.TabId != "t.2" {
		t.Errorf("FindTab(t.2) = %s", tab.TabProperties.TabId)
	}
}

func TestResolveBody(t *testing.T) {
	t.Run("tabbed document resolves selected tab", func(t *testing.T) {
		content, tabID, err := resolveBody(tabbedDocument(), "Appendix")
		if err != nil {
			t.Fatal(err)
		}
		if tabID != "t.1" {
			t.Errorf("tabID = %q, want t.1", tabID)
		}
		if FlatText(content) != "appendix text\n" {
			t.Errorf("content = %q", FlatText(content))
		}
	})

	t.Run("tabbed document defaults to first tab", func(t *testing.T) {
		content, tabID, err := resolveBody(tabbedDocument(), "")
		if err != nil {
			t.Fatal(err)
		}
		if tabID != "t.0" {
			t.Errorf("tabID = %q, want t.0", tabID)
		}
		if FlatText(content) != "overview text\n" {
			t.Errorf("content = %q", FlatText(content))
		}
	})

	t.Run("legacy document has no tab id", func(t *testing.T) {
		doc := &docs.Document{Body: &docs.Body{Content: paragraphContent(1, "legacy\n")}}
		content, tabID, err := resolveBody(doc, "")
		if err != nil {
			t.Fatal(err)
		}
		if tabID != "" {
			t.Errorf("tabID = %q, want empty", tabID)
		}
		if FlatText(content) != "legacy\n" {
			t.Errorf("content = %q", FlatText(content))
		}
	})

	t.Run("tab selector on legacy document fails", func(t *testing.T) {
		doc := &docs.Document{Body: &docs.Body{Content: paragraphContent(1, "legacy\n")}}
		if _, _, err := resolveBody(doc, "Overview"); !IsNotFound(err) {
			t.Errorf("expected not-found error, got %v", err)
		}
	})
}
