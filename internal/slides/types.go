package slides

// PresentationInfo represents metadata about a Google Slides presentation
type PresentationInfo struct {
	// ID is the unique identifier for the presentation
	ID string `json:"presentationId"`

	// Title is the title of the presentation
	Title string `json:"title"`

	// Locale is the locale of the presentation (e.g. "en")
	Locale string `json:"locale,omitempty"`

	// RevisionID identifies the current revision of the presentation
	RevisionID string `json:"revisionId,omitempty"`

	// Slides are the slides in presentation order
	Slides []SlideInfo `json:"slides,omitempty"`
}

// SlideInfo represents a single slide within a presentation
type SlideInfo struct {
	// ObjectID is the slide's object ID, used to address the slide in requests
	ObjectID string `json:"objectId"`

	// Index is the zero-based position of the slide within the presentation
	Index int `json:"index"`

	// LayoutObjectID is the object ID of the layout the slide is based on
	LayoutObjectID string `json:"layoutObjectId,omitempty"`

	// Text is the concatenated text content of the slide's shapes
	Text string `json:"text,omitempty"`
}

// ReplaceTextResult describes the outcome of a deck-wide text replacement
type ReplaceTextResult struct {
	// PresentationID is the presentation that was updated
	PresentationID string `json:"presentationId"`

	// Occurrences is the number of text occurrences replaced
	Occurrences int64 `json:"occurrences"`
}
