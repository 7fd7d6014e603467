package docs

import (
	"strings"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		value   string
		wantR   float64
		wantG   float64
		wantB   float64
		wantErr bool
	}{
		{value: "#AABBCC", wantR: 170.0 / 255, wantG: 187.0 / 255, wantB: 204.0 / 255},
		{value: "#ABC", wantR: 170.0 / 255, wantG: 187.0 / 255, wantB: 204.0 / 255},
		{value: "#000000", wantR: 0, wantG: 0, wantB: 0},
		{value: "#FFFFFF", wantR: 1, wantG: 1, wantB: 1},
		{value: "#ff0000", wantR: 1, wantG: 0, wantB: 0},
		{value: "#12", wantErr: true},
		{value: "#12345", wantErr: true},
		{value: "red", wantErr: true},
		{value: "#GGGGGG", wantErr: true},
		{value: "AABBCC", wantErr: true},
		{value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			color, err := ParseHexColor(tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseHexColor(%q) expected error but got none", tt.value)
				}
				if !IsValidation(err) {
					t.Errorf("ParseHexColor(%q) error should be a validation error, got %v", tt.value, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHexColor(%q) unexpected error: %v", tt.value, err)
			}
			rgb := color.Color.RgbColor
			if rgb.Red != tt.wantR || rgb.Green != tt.wantG || rgb.Blue != tt.wantB {
				t.Errorf("ParseHexColor(%q) = (%v, %v, %v), want (%v, %v, %v)",
					tt.value, rgb.Red, rgb.Green, rgb.Blue, tt.wantR, tt.wantG, tt.wantB)
			}
		})
	}
}

func TestParseHexColorShortFormEquivalence(t *testing.T) {
	short, err := ParseHexColor("#ABC")
	if err != nil {
		t.Fatal(err)
	}
	long, err := ParseHexColor("#AABBCC")
	if err != nil {
		t.Fatal(err)
	}
	s, l := short.Color.RgbColor, long.Color.RgbColor
	if s.Red != l.Red || s.Green != l.Green || s.Blue != l.Blue {
		t.Errorf("#ABC and #AABBCC must parse identically: got (%v,%v,%v) vs (%v,%v,%v)",
			s.Red, s.Green, s.Blue, l.Red, l.Green, l.Blue)
	}
}

func TestBuildTextStyleRequest(t *testing.T) {
	r := Range{Start: 1, End: 10}

	t.Run("empty input yields no request", func(t *testing.T) {
		req, fields, err := BuildTextStyleRequest(r, "", TextStyleInput{})
		if err != nil || req != nil || fields != nil {
			t.Errorf("got (%v, %v, %v), want (nil, nil, nil)", req, fields, err)
		}
	})

	t.Run("field mask lists exactly the set attributes", func(t *testing.T) {
		req, fields, err := BuildTextStyleRequest(r, "", TextStyleInput{
			Bold:     BoolPtr(true),
			FontSize: Float64Ptr(12),
		})
		if err != nil {
			t.Fatal(err)
		}
		update := req.UpdateTextStyle
		if update.Fields != "bold,fontSize" {
			t.Errorf("Fields = %q, want %q", update.Fields, "bold,fontSize")
		}
		if len(fields) != 2 {
			t.Errorf("fields = %v, want two entries", fields)
		}
		if !update.TextStyle.Bold {
			t.Error("Bold not set on style")
		}
		if update.TextStyle.FontSize.Magnitude != 12 || update.TextStyle.FontSize.Unit != "PT" {
			t.Errorf("FontSize = %+v, want 12 PT", update.TextStyle.FontSize)
		}
		if update.Range.StartIndex != 1 || update.Range.EndIndex != 10 {
			t.Errorf("Range = [%d, %d), want [1, 10)", update.Range.StartIndex, update.Range.EndIndex)
		}
	})

	t.Run("explicit false is masked and force-sent", func(t *testing.T) {
		req, _, err := BuildTextStyleRequest(r, "", TextStyleInput{
			Bold:   BoolPtr(false),
			Italic: BoolPtr(true),
		})
		if err != nil {
			t.Fatal(err)
		}
		update := req.UpdateTextStyle
		if update.Fields != "bold,italic" {
			t.Errorf("Fields = %q, want %q", update.Fields, "bold,italic")
		}
		forced := strings.Join(update.TextStyle.ForceSendFields, ",")
		if !strings.Contains(forced, "Bold") {
			t.Errorf("explicit false Bold must be force-sent, got %q", forced)
		}
		if strings.Contains(forced, "Italic") {
			t.Errorf("true Italic needs no force-send, got %q", forced)
		}
	})

	t.Run("all attributes", func(t *testing.T) {
		req, fields, err := BuildTextStyleRequest(r, "tab1", TextStyleInput{
			Bold:            BoolPtr(true),
			Italic:          BoolPtr(true),
			Underline:       BoolPtr(true),
			Strikethrough:   BoolPtr(false),
			FontSize:        Float64Ptr(10.5),
			FontFamily:      StringPtr("Roboto"),
			ForegroundColor: StringPtr("#FF0000"),
			BackgroundColor: StringPtr("#00FF00"),
			LinkURL:         StringPtr("https://example.com"),
		})
		if err != nil {
			t.Fatal(err)
		}
		want := []string{
			"bold", "italic", "underline", "strikethrough", "fontSize",
			"weightedFontFamily", "foregroundColor", "backgroundColor", "link",
		}
		if strings.Join(fields, ",") != strings.Join(want, ",") {
			t.Errorf("fields = %v, want %v", fields, want)
		}
		if req.UpdateTextStyle.Range.TabId != "tab1" {
			t.Errorf("TabId = %q, want tab1", req.UpdateTextStyle.Range.TabId)
		}
		if req.UpdateTextStyle.TextStyle.WeightedFontFamily.FontFamily != "Roboto" {
			t.Error("font family not carried")
		}
		if req.UpdateTextStyle.TextStyle.Link.Url != "https://example.com" {
			t.Error("link not carried")
		}
	})

	t.Run("invalid attributes rejected", func(t *testing.T) {
		cases := []TextStyleInput{
			{FontSize: Float64Ptr(0)},
			{FontSize: Float64Ptr(-3)},
			{FontFamily: StringPtr("")},
			{ForegroundColor: StringPtr("red")},
			{BackgroundColor: StringPtr("#12")},
			{LinkURL: StringPtr("")},
		}
		for _, in := range cases {
			if _, _, err := BuildTextStyleRequest(r, "", in); !IsValidation(err) {
				t.Errorf("BuildTextStyleRequest(%+v) expected validation error, got %v", in, err)
			}
		}
	})
}

func TestBuildParagraphStyleRequest(t *testing.T) {
	r := Range{Start: 1, End: 13}

	t.Run("empty input yields no request", func(t *testing.T) {
		req, fields, err := BuildParagraphStyleRequest(r, "", ParagraphStyleInput{})
		if err != nil || req != nil || fields != nil {
			t.Errorf("got (%v, %v, %v), want (nil, nil, nil)", req, fields, err)
		}
	})

	t.Run("named style and alignment normalized", func(t *testing.T) {
		req, _, err := BuildParagraphStyleRequest(r, "", ParagraphStyleInput{
			NamedStyleType: StringPtr("heading_2"),
			Alignment:      StringPtr("center"),
		})
		if err != nil {
			t.Fatal(err)
		}
		update := req.UpdateParagraphStyle
		if update.ParagraphStyle.NamedStyleType != "HEADING_2" {
			t.Errorf("NamedStyleType = %q", update.ParagraphStyle.NamedStyleType)
		}
		if update.ParagraphStyle.Alignment != "CENTER" {
			t.Errorf("Alignment = %q", update.ParagraphStyle.Alignment)
		}
		if update.Fields != "namedStyleType,alignment" {
			t.Errorf("Fields = %q", update.Fields)
		}
	})

	t.Run("spacing and indents", func(t *testing.T) {
		req, fields, err := BuildParagraphStyleRequest(r, "", ParagraphStyleInput{
			LineSpacing: Float64Ptr(150),
			SpaceAbove:  Float64Ptr(0),
			IndentStart: Float64Ptr(36),
		})
		if err != nil {
			t.Fatal(err)
		}
		update := req.UpdateParagraphStyle
		if update.ParagraphStyle.LineSpacing != 150 {
			t.Errorf("LineSpacing = %v", update.ParagraphStyle.LineSpacing)
		}
		// zero spacing is an explicit value, not an omission
		if update.ParagraphStyle.SpaceAbove == nil ||
			len(update.ParagraphStyle.SpaceAbove.ForceSendFields) == 0 {
			t.Error("zero SpaceAbove must be force-sent")
		}
		if strings.Join(fields, ",") != "lineSpacing,spaceAbove,indentStart" {
			t.Errorf("fields = %v", fields)
		}
	})

	t.Run("invalid values rejected", func(t *testing.T) {
		cases := []ParagraphStyleInput{
			{NamedStyleType: StringPtr("HEADING_7")},
			{NamedStyleType: StringPtr("fancy")},
			{Alignment: StringPtr("LEFT")},
			{LineSpacing: Float64Ptr(0)},
		}
		for _, in := range cases {
			if _, _, err := BuildParagraphStyleRequest(r, "", in); !IsValidation(err) {
				t.Errorf("BuildParagraphStyleRequest(%+v) expected validation error, got %v", in, err)
			}
		}
	})

	t.Run("keepWithNext false force-sent", func(t *testing.T) {
		req, _, err := BuildParagraphStyleRequest(r, "", ParagraphStyleInput{
			KeepWithNext: BoolPtr(false),
		})
		if err != nil {
			t.Fatal(err)
		}
		style := req.UpdateParagraphStyle.ParagraphStyle
		if len(style.ForceSendFields) == 0 || style.ForceSendFields[0] != "KeepWithNext" {
			t.Errorf("ForceSendFields = %v, want KeepWithNext", style.ForceSendFields)
		}
	})
}
