package docs

import (
	docs "google.golang.org/api/docs/v1"
)

// InsertTextRequest builds an insertion of text at a fixed offset.
func InsertTextRequest(offset int64, tabID, text string) (*docs.Request, error) {
	if text == "" {
		return nil, validationErrorf("text must not be empty")
	}
	if offset < 1 {
		return nil, validationErrorf("insertion offset must be >= 1, got %d", offset)
	}
	location := &docs.Location{Index: offset}
	if tabID != "" {
		location.TabId = tabID
	}
	return &docs.Request{
		InsertText: &docs.InsertTextRequest{
			Location: location,
			Text:     text,
		},
	}, nil
}

// AppendTextRequest builds an insertion at the end of the body segment, so
// the caller never has to compute the final offset.
func AppendTextRequest(tabID, text string) (*docs.Request, error) {
	if text == "" {
		return nil, validationErrorf("text must not be empty")
	}
	eos := &docs.EndOfSegmentLocation{}
	if tabID != "" {
		eos.TabId = tabID
	}
	return &docs.Request{
		InsertText: &docs.InsertTextRequest{
			EndOfSegmentLocation: eos,
			Text:                 text,
		},
	}, nil
}

// DeleteRangeRequest builds a deletion of the given range.
func DeleteRangeRequest(r Range, tabID string) *docs.Request {
	return &docs.Request{
		DeleteContentRange: &docs.DeleteContentRangeRequest{
			Range: r.apiRange(tabID),
		},
	}
}

// ReplaceAllTextRequest builds a whole-document find-and-replace. The
// service applies it to every segment, including tables, headers, and
// footers, in a single pass.
func ReplaceAllTextRequest(find, replace string, matchCase bool, tabIDs []string) (*docs.Request, error) {
	if find == "" {
		return nil, validationErrorf("findText must not be empty")
	}
	criteria := &docs.SubstringMatchCriteria{
		Text:      find,
		MatchCase: matchCase,
	}
	if !matchCase {
		criteria.ForceSendFields = []string{"MatchCase"}
	}
	req := &docs.ReplaceAllTextRequest{
		ContainsText: criteria,
		ReplaceText:  replace,
	}
	if replace == "" {
		req.ForceSendFields = []string{"ReplaceText"}
	}
	if len(tabIDs) > 0 {
		req.TabsCriteria = &docs.TabsCriteria{TabIds: tabIDs}
	}
	return &docs.Request{ReplaceAllText: req}, nil
}

// InsertTableRequest builds a table insertion at a fixed offset.
func InsertTableRequest(offset int64, tabID string, rows, columns int64) (*docs.Request, error) {
	if rows < 1 || columns < 1 {
		return nil, validationErrorf("table dimensions must be >= 1, got %dx%d", rows, columns)
	}
	if offset < 1 {
		return nil, validationErrorf("insertion offset must be >= 1, got %d", offset)
	}
	location := &docs.Location{Index: offset}
	if tabID != "" {
		location.TabId = tabID
	}
	return &docs.Request{
		InsertTable: &docs.InsertTableRequest{
			Location: location,
			Rows:     rows,
			Columns:  columns,
		},
	}, nil
}

// InsertImageRequest builds an inline image insertion from a publicly
// fetchable URL. Width and height are optional; zero means let the service
// pick the native size.
func InsertImageRequest(offset int64, tabID, uri string, widthPt, heightPt float64) (*docs.Request, error) {
	if uri == "" {
		return nil, validationErrorf("imageUrl must not be empty")
	}
	if offset < 1 {
		return nil, validationErrorf("insertion offset must be >= 1, got %d", offset)
	}
	location := &docs.Location{Index: offset}
	if tabID != "" {
		location.TabId = tabID
	}
	req := &docs.InsertInlineImageRequest{
		Location: location,
		Uri:      uri,
	}
	if widthPt > 0 || heightPt > 0 {
		req.ObjectSize = &docs.Size{}
		if widthPt > 0 {
			req.ObjectSize.Width = &docs.Dimension{Magnitude: widthPt, Unit: "PT"}
		}
		if heightPt > 0 {
			req.ObjectSize.Height = &docs.Dimension{Magnitude: heightPt, Unit: "PT"}
		}
	}
	return &docs.Request{InsertInlineImage: req}, nil
}
