package docs

import (
	"context"

	docs "google.golang.org/api/docs/v1"
)

// TargetSpec selects the text an operation applies to, either by an
// explicit offset range or by searching for a literal string. Exactly one
// addressing mode must be used.
type TargetSpec struct {
	Start *int64
	End   *int64

	Text          string
	MatchInstance int // 1-based; negative counts from the last match; 0 means first
}

func (t TargetSpec) byRange() bool {
	return t.Start != nil || t.End != nil
}

// resolve turns the target into a concrete range against the given content
// snapshot.
func (t TargetSpec) resolve(content []*docs.StructuralElement) (Range, error) {
	if t.byRange() {
		if t.Text != "" {
			return Range{}, validationErrorf("specify either startIndex/endIndex or textToFind, not both")
		}
		if t.Start == nil || t.End == nil {
			return Range{}, validationErrorf("startIndex and endIndex must be provided together")
		}
		return NewRange(*t.Start, *t.End)
	}
	if t.Text == "" {
		return Range{}, validationErrorf("either startIndex/endIndex or textToFind is required")
	}
	instance := t.MatchInstance
	if instance == 0 {
		instance = 1
	}
	return LocateText(content, t.Text, instance)
}

// EditResult summarizes a successful write against a document.
type EditResult struct {
	DocumentID string `json:"documentId"`
	TabID      string `json:"tabId,omitempty"`
	Requests   int    `json:"requests"`
}

// FormatResult reports the range a formatting operation resolved to and
// the attributes it updated.
type FormatResult struct {
	DocumentID string   `json:"documentId"`
	TabID      string   `json:"tabId,omitempty"`
	StartIndex int64    `json:"startIndex"`
	EndIndex   int64    `json:"endIndex"`
	Fields     []string `json:"updatedFields"`
}

// ReplaceResult reports the outcome of a find-and-replace.
type ReplaceResult struct {
	DocumentID  string `json:"documentId"`
	DryRun      bool   `json:"dryRun"`
	Occurrences int64  `json:"occurrences"`
}

// tabContext fetches the document only when the operation actually needs
// it: tab selection, text location, or range validation all require the
// current snapshot.
func (c *Client) tabContext(ctx context.Context, documentID, tabSelector string) ([]*docs.StructuralElement, string, error) {
	doc, err := c.GetDocument(ctx, documentID)
	if err != nil {
		return nil, "", err
	}
	return resolveBody(doc, tabSelector)
}

// InsertText inserts text at a fixed offset.
func (c *Client) InsertText(ctx context.Context, documentID, tabSelector string, offset int64, text string) (*EditResult, error) {
	tabID := ""
	if tabSelector != "" {
		_, id, err := c.tabContext(ctx, documentID, tabSelector)
		if err != nil {
			return nil, err
		}
		tabID = id
	}
	req, err := InsertTextRequest(offset, tabID, text)
	if err != nil {
		return nil, err
	}
	if _, err := c.BatchUpdate(ctx, documentID, []*docs.Request{req}); err != nil {
		return nil, err
	}
	return &EditResult{DocumentID: documentID, TabID: tabID, Requests: 1}, nil
}

// AppendText inserts text at the end of the body without the caller having
// to know the document's final offset.
func (c *Client) AppendText(ctx context.Context, documentID, tabSelector, text string) (*EditResult, error) {
	tabID := ""
	if tabSelector != "" {
		_, id, err := c.tabContext(ctx, documentID, tabSelector)
		if err != nil {
			return nil, err
		}
		tabID = id
	}
	req, err := AppendTextRequest(tabID, text)
	if err != nil {
		return nil, err
	}
	if _, err := c.BatchUpdate(ctx, documentID, []*docs.Request{req}); err != nil {
		return nil, err
	}
	return &EditResult{DocumentID: documentID, TabID: tabID, Requests: 1}, nil
}

// DeleteRange deletes the content in [start, end). The range is validated
// locally so a degenerate or inverted range never reaches the service.
func (c *Client) DeleteRange(ctx context.Context, documentID, tabSelector string, start, end int64) (*EditResult, error) {
	r, err := NewRange(start, end)
	if err != nil {
		return nil, err
	}
	tabID := ""
	if tabSelector != "" {
		_, id, err := c.tabContext(ctx, documentID, tabSelector)
		if err != nil {
			return nil, err
		}
		tabID = id
	}
	if _, err := c.BatchUpdate(ctx, documentID, []*docs.Request{DeleteRangeRequest(r, tabID)}); err != nil {
		return nil, err
	}
	return &EditResult{DocumentID: documentID, TabID: tabID, Requests: 1}, nil
}

// ReplaceRange atomically replaces the content of [start, end) with text.
// The delete and the insert go in one batch: the service applies them in
// order against the same revision, and inserting back at start is valid
// because the deletion has already shifted everything after it.
func (c *Client) ReplaceRange(ctx context.Context, documentID, tabSelector string, start, end int64, text string) (*EditResult, error) {
	r, err := NewRange(start, end)
	if err != nil {
		return nil, err
	}
	tabID := ""
	if tabSelector != "" {
		_, id, err := c.tabContext(ctx, documentID, tabSelector)
		if err != nil {
			return nil, err
		}
		tabID = id
	}
	requests := []*docs.Request{DeleteRangeRequest(r, tabID)}
	if text != "" {
		insert, err := InsertTextRequest(r.Start, tabID, text)
		if err != nil {
			return nil, err
		}
		requests = append(requests, insert)
	}
	if _, err := c.BatchUpdate(ctx, documentID, requests); err != nil {
		return nil, err
	}
	return &EditResult{DocumentID: documentID, TabID: tabID, Requests: len(requests)}, nil
}

// FormatText applies character formatting to a target range or located
// string.
func (c *Client) FormatText(ctx context.Context, documentID, tabSelector string, target TargetSpec, style TextStyleInput) (*FormatResult, error) {
	if style.IsZero() {
		return nil, validationErrorf("at least one style attribute is required")
	}
	content, tabID, err := c.tabContext(ctx, documentID, tabSelector)
	if err != nil {
		return nil, err
	}
	r, err := target.resolve(content)
	if err != nil {
		return nil, err
	}
	req, fields, err := BuildTextStyleRequest(r, tabID, style)
	if err != nil {
		return nil, err
	}
	if _, err := c.BatchUpdate(ctx, documentID, []*docs.Request{req}); err != nil {
		return nil, err
	}
	return &FormatResult{
		DocumentID: documentID,
		TabID:      tabID,
		StartIndex: r.Start,
		EndIndex:   r.End,
		Fields:     fields,
	}, nil
}

// FormatParagraph applies paragraph formatting to the paragraph enclosing
// the target. The target is resolved to a position first (the start of a
// located string, or the given offset), then widened to the enclosing
// paragraph's full range.
func (c *Client) FormatParagraph(ctx context.Context, documentID, tabSelector string, target TargetSpec, style ParagraphStyleInput) (*FormatResult, error) {
	if style.IsZero() {
		return nil, validationErrorf("at least one style attribute is required")
	}
	content, tabID, err := c.tabContext(ctx, documentID, tabSelector)
	if err != nil {
		return nil, err
	}

	var anchor int64
	if target.byRange() {
		if target.Start == nil {
			return nil, validationErrorf("startIndex is required")
		}
		anchor = *target.Start
	} else {
		r, err := target.resolve(content)
		if err != nil {
			return nil, err
		}
		anchor = r.Start
	}

	paragraph, err := ResolveParagraph(content, anchor)
	if err != nil {
		return nil, err
	}
	req, fields, err := BuildParagraphStyleRequest(paragraph, tabID, style)
	if err != nil {
		return nil, err
	}
	if _, err := c.BatchUpdate(ctx, documentID, []*docs.Request{req}); err != nil {
		return nil, err
	}
	return &FormatResult{
		DocumentID: documentID,
		TabID:      tabID,
		StartIndex: paragraph.Start,
		EndIndex:   paragraph.End,
		Fields:     fields,
	}, nil
}

// FindAndReplace replaces every occurrence of find with replace. With
// dryRun set it only counts, over the same tabs the live replace would
// touch: the selected tab, or every tab when no selector is given. The
// count covers paragraph text, while the actual replacement is done
// service-side across all segments, so the two can differ for documents
// with tables, headers, or footers.
func (c *Client) FindAndReplace(ctx context.Context, documentID, tabSelector, find, replace string, matchCase, dryRun bool) (*ReplaceResult, error) {
	if find == "" {
		return nil, validationErrorf("findText must not be empty")
	}

	if dryRun {
		doc, err := c.GetDocument(ctx, documentID)
		if err != nil {
			return nil, err
		}
		count, err := dryRunOccurrences(doc, tabSelector, find, matchCase)
		if err != nil {
			return nil, err
		}
		return &ReplaceResult{
			DocumentID:  documentID,
			DryRun:      true,
			Occurrences: int64(count),
		}, nil
	}

	var tabIDs []string
	if tabSelector != "" {
		_, tabID, err := c.tabContext(ctx, documentID, tabSelector)
		if err != nil {
			return nil, err
		}
		if tabID != "" {
			tabIDs = []string{tabID}
		}
	}
	req, err := ReplaceAllTextRequest(find, replace, matchCase, tabIDs)
	if err != nil {
		return nil, err
	}
	resp, err := c.BatchUpdate(ctx, documentID, []*docs.Request{req})
	if err != nil {
		return nil, err
	}

	var occurrences int64
	for _, reply := range resp.Replies {
		if reply != nil && reply.ReplaceAllText != nil {
			occurrences += reply.ReplaceAllText.OccurrencesChanged
		}
	}
	return &ReplaceResult{DocumentID: documentID, Occurrences: occurrences}, nil
}

// dryRunOccurrences counts matches over the tabs a replace with the same
// selector would send requests for. A live replace without a selector
// carries no tab criteria and the service applies it to every tab, so the
// dry run must sum across all of them.
func dryRunOccurrences(doc *docs.Document, tabSelector, find string, matchCase bool) (int, error) {
	if tabSelector == "" && len(doc.Tabs) > 0 {
		count := 0
		for _, tab := range FlattenTabs(doc.Tabs) {
			count += CountOccurrences(TabBody(tab), find, matchCase)
		}
		return count, nil
	}
	content, _, err := resolveBody(doc, tabSelector)
	if err != nil {
		return 0, err
	}
	return CountOccurrences(content, find, matchCase), nil
}

// InsertTable inserts an empty rows x columns table at the given offset.
func (c *Client) InsertTable(ctx context.Context, documentID, tabSelector string, offset, rows, columns int64) (*EditResult, error) {
	tabID := ""
	if tabSelector != "" {
		_, id, err := c.tabContext(ctx, documentID, tabSelector)
		if err != nil {
			return nil, err
		}
		tabID = id
	}
	req, err := InsertTableRequest(offset, tabID, rows, columns)
	if err != nil {
		return nil, err
	}
	if _, err := c.BatchUpdate(ctx, documentID, []*docs.Request{req}); err != nil {
		return nil, err
	}
	return &EditResult{DocumentID: documentID, TabID: tabID, Requests: 1}, nil
}

// InsertImage inserts an inline image at the given offset from a publicly
// fetchable URL.
func (c *Client) InsertImage(ctx context.Context, documentID, tabSelector, imageURL string, offset int64, widthPt, heightPt float64) (*EditResult, error) {
	tabID := ""
	if tabSelector != "" {
		_, id, err := c.tabContext(ctx, documentID, tabSelector)
		if err != nil {
			return nil, err
		}
		tabID = id
	}
	req, err := InsertImageRequest(offset, tabID, imageURL, widthPt, heightPt)
	if err != nil {
		return nil, err
	}
	if _, err := c.BatchUpdate(ctx, documentID, []*docs.Request{req}); err != nil {
		return nil, err
	}
	return &EditResult{DocumentID: documentID, TabID: tabID, Requests: 1}, nil
}
