package docs

import (
	docs "google.golang.org/api/docs/v1"
)

// Range is a half-open interval [Start, End) of document offsets.
//
// Offsets are assigned by the Docs API and measured in UTF-16 code units.
// A Range is only meaningful against the document snapshot it was derived
// from: any insertion or deletion invalidates all offsets after the edit
// point, so a Range must never be reused across a BatchUpdate call.
type Range struct {
	Start int64
	End   int64
}

// NewRange validates and constructs a Range. End must be strictly greater
// than Start and Start must be non-negative; anything else is rejected here
// so an invalid range never reaches the remote service.
func NewRange(start, end int64) (Range, error) {
	if start < 0 {
		return Range{}, validationErrorf("startIndex must be >= 0, got %d", start)
	}
	if end <= start {
		return Range{}, validationErrorf("endIndex (%d) must be greater than startIndex (%d)", end, start)
	}
	return Range{Start: start, End: end}, nil
}

// Contains reports whether offset falls within the range.
func (r Range) Contains(offset int64) bool {
	return offset >= r.Start && offset < r.End
}

// Len returns the number of offsets covered by the range.
func (r Range) Len() int64 {
	return r.End - r.Start
}

// apiRange converts to the Docs API representation, carrying the tab the
// range was resolved against. StartIndex 0 is a legal value, so it is
// force-sent.
func (r Range) apiRange(tabID string) *docs.Range {
	ar := &docs.Range{
		StartIndex: r.Start,
		EndIndex:   r.End,
		ForceSendFields: []string{"StartIndex"},
	}
	if tabID != "" {
		ar.TabId = tabID
	}
	return ar
}
