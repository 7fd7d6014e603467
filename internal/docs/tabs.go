package docs

import (
	"strings"

	docs "google.golang.org/api/docs/v1"
)

// TabInfo is the summary view of one tab returned by docs_list_tabs.
type TabInfo struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Index    int64  `json:"index"`
	ParentID string `json:"parentId,omitempty"`
	Level    int    `json:"level"`
}

// FlattenTabs walks the tab tree depth-first and returns all tabs in
// reading order, parents before children.
func FlattenTabs(tabs []*docs.Tab) []*docs.Tab {
	var flat []*docs.Tab
	for _, tab := range tabs {
		if tab == nil {
			continue
		}
		flat = append(flat, tab)
		flat = append(flat, FlattenTabs(tab.ChildTabs)...)
	}
	return flat
}

// ListTabs summarizes the tab tree of doc. Documents created before tabs
// existed report no tabs at all; those return an empty list.
func ListTabs(doc *docs.Document) []TabInfo {
	var infos []TabInfo
	var walk func(tabs []*docs.Tab, level int)
	walk = func(tabs []*docs.Tab, level int) {
		for _, tab := range tabs {
			if tab == nil || tab.TabProperties == nil {
				continue
			}
			infos = append(infos, TabInfo{
				ID:       tab.TabProperties.TabId,
				Title:    tab.TabProperties.Title,
				Index:    tab.TabProperties.Index,
				ParentID: tab.TabProperties.ParentTabId,
				Level:    level,
			})
			walk(tab.ChildTabs, level+1)
		}
	}
	walk(doc.Tabs, 0)
	return infos
}

// FindTab locates a tab by ID (exact) or title (case-insensitive), in that
// order. An empty selector matches the first tab. Tab IDs are unique but
// titles are not, so a title shared by several tabs is rejected rather
// than silently resolved to one of them.
func FindTab(doc *docs.Document, selector string) (*docs.Tab, error) {
	flat := FlattenTabs(doc.Tabs)
	if len(flat) == 0 {
		return nil, notFoundErrorf("document has no tabs")
	}
	if selector == "" {
		return flat[0], nil
	}
	for _, tab := range flat {
		if tab.TabProperties != nil && tab.TabProperties.TabId == selector {
			return tab, nil
		}
	}
	var titleMatches []*docs.Tab
	for _, tab := range flat {
		if tab.TabProperties != nil && strings.EqualFold(tab.TabProperties.Title, selector) {
			titleMatches = append(titleMatches, tab)
		}
	}
	switch len(titleMatches) {
	case 0:
		return nil, notFoundErrorf("tab %q not found", selector)
	case 1:
		return titleMatches[0], nil
	}
	ids := make([]string, len(titleMatches))
	for i, tab := range titleMatches {
		ids[i] = tab.TabProperties.TabId
	}
	return nil, validationErrorf("tab title %q matches %d tabs (%s), select one by ID",
		selector, len(ids), strings.Join(ids, ", "))
}

// TabBody returns the body content of a tab, or nil when the tab has no
// document content (not a DocumentTab).
func TabBody(tab *docs.Tab) []*docs.StructuralElement {
	if tab == nil || tab.DocumentTab == nil || tab.DocumentTab.Body == nil {
		return nil
	}
	return tab.DocumentTab.Body.Content
}

// resolveBody picks the structural content edits and reads operate on: the
// selected tab when the document has tabs, the legacy top-level body
// otherwise. It returns the tab ID to stamp on ranges, which is empty for
// legacy documents.
func resolveBody(doc *docs.Document, tabSelector string) ([]*docs.StructuralElement, string, error) {
	if len(doc.Tabs) > 0 {
		tab, err := FindTab(doc, tabSelector)
		if err != nil {
			return nil, "", err
		}
		id := ""
		if tab.TabProperties != nil {
			id = tab.TabProperties.TabId
		}
		return TabBody(tab), id, nil
	}
	if tabSelector != "" {
		return nil, "", notFoundErrorf("tab %q not found (document has no tabs)", tabSelector)
	}
	if doc.Body == nil {
		return nil, "", nil
	}
	return doc.Body.Content, "", nil
}
