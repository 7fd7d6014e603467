package slides

import (
	"testing"

	slides "google.golang.org/api/slides/v1"
)

func TestConvertToPresentationInfo(t *testing.T) {
	presentation := &slides.Presentation{
		PresentationId: "pres123",
		Title:          "Quarterly Review",
		Locale:         "en",
		RevisionId:     "rev7",
		Slides: []*slides.Page{
			{
				ObjectId: "slide_a",
				SlideProperties: &slides.SlideProperties{
					LayoutObjectId: "layout_title",
				},
				PageElements: []*slides.PageElement{
					{
						Shape: &slides.Shape{
							Text: &slides.TextContent{
								TextElements: []*slides.TextElement{
									{TextRun: &slides.TextRun{Content: "Quarterly Review\n"}},
								},
							},
						},
					},
				},
			},
			{
				ObjectId: "slide_b",
				PageElements: []*slides.PageElement{
					{
						Shape: &slides.Shape{
							Text: &slides.TextContent{
								TextElements: []*slides.TextElement{
									{TextRun: &slides.TextRun{Content: "Revenue "}},
									{TextRun: &slides.TextRun{Content: "grew.\n"}},
								},
							},
						},
					},
					{
						// Element without text content, e.g. an image
						Shape: &slides.Shape{},
					},
				},
			},
		},
	}

	info := convertToPresentationInfo(presentation)

	if info.ID != "pres123" {
		t.Errorf("Expected ID pres123, got %s", info.ID)
	}
	if info.Title != "Quarterly Review" {
		t.Errorf("Expected Title 'Quarterly Review', got %s", info.Title)
	}
	if info.RevisionID != "rev7" {
		t.Errorf("Expected RevisionID rev7, got %s", info.RevisionID)
	}

	if len(info.Slides) != 2 {
		t.Fatalf("Expected 2 slides, got %d", len(info.Slides))
	}

	first := info.Slides[0]
	if first.ObjectID != "slide_a" || first.Index != 0 {
		t.Errorf("Unexpected first slide: %+v", first)
	}
	if first.LayoutObjectID != "layout_title" {
		t.Errorf("Expected layout layout_title, got %s", first.LayoutObjectID)
	}
	if first.Text != "Quarterly Review\n" {
		t.Errorf("Expected first slide text %q, got %q", "Quarterly Review\n", first.Text)
	}

	second := info.Slides[1]
	if second.ObjectID != "slide_b" || second.Index != 1 {
		t.Errorf("Unexpected second slide: %+v", second)
	}
	if second.Text != "Revenue grew.\n" {
		t.Errorf("Expected second slide text %q, got %q", "Revenue grew.\n", second.Text)
	}
}

func TestConvertToPresentationInfo_MinimalData(t *testing.T) {
	info := convertToPresentationInfo(&slides.Presentation{
		PresentationId: "pres456",
	})

	if info.ID != "pres456" {
		t.Errorf("Expected ID pres456, got %s", info.ID)
	}
	if len(info.Slides) != 0 {
		t.Errorf("Expected 0 slides, got %d", len(info.Slides))
	}
}

func TestValidLayouts(t *testing.T) {
	for _, layout := range []string{"BLANK", "TITLE", "TITLE_AND_BODY", "SECTION_HEADER"} {
		if !validLayouts[layout] {
			t.Errorf("Expected layout %s to be valid", layout)
		}
	}
	if validLayouts["FANCY"] {
		t.Error("Expected layout FANCY to be invalid")
	}
}

func TestAccount(t *testing.T) {
	client := &Client{
		account: "test-account",
	}

	if client.Account() != "test-account" {
		t.Errorf("Expected account 'test-account', got %s", client.Account())
	}
}
