package docs

import (
	"strconv"
	"strings"

	docs "google.golang.org/api/docs/v1"
)

// TextStyleInput is a sparse set of requested character-style attributes.
// A nil field means "leave unchanged"; a non-nil field is applied and its
// name is added to the update's field mask, including explicit false for
// the boolean toggles.
type TextStyleInput struct {
	Bold            *bool
	Italic          *bool
	Underline       *bool
	Strikethrough   *bool
	FontSize        *float64 // points
	FontFamily      *string
	ForegroundColor *string // #RGB or #RRGGBB
	BackgroundColor *string // #RGB or #RRGGBB
	LinkURL         *string
}

// IsZero reports whether no attribute is set.
func (in TextStyleInput) IsZero() bool {
	return in.Bold == nil && in.Italic == nil && in.Underline == nil &&
		in.Strikethrough == nil && in.FontSize == nil && in.FontFamily == nil &&
		in.ForegroundColor == nil && in.BackgroundColor == nil && in.LinkURL == nil
}

// ParagraphStyleInput is a sparse set of requested paragraph-style
// attributes. Spacing and indents are in points.
type ParagraphStyleInput struct {
	NamedStyleType *string
	Alignment      *string
	LineSpacing    *float64 // 100 = single spacing
	SpaceAbove     *float64
	SpaceBelow     *float64
	IndentStart    *float64
	IndentEnd      *float64
	KeepWithNext   *bool
}

// IsZero reports whether no attribute is set.
func (in ParagraphStyleInput) IsZero() bool {
	return in.NamedStyleType == nil && in.Alignment == nil && in.LineSpacing == nil &&
		in.SpaceAbove == nil && in.SpaceBelow == nil && in.IndentStart == nil &&
		in.IndentEnd == nil && in.KeepWithNext == nil
}

var validNamedStyles = map[string]bool{
	"NORMAL_TEXT": true, "TITLE": true, "SUBTITLE": true,
	"HEADING_1": true, "HEADING_2": true, "HEADING_3": true,
	"HEADING_4": true, "HEADING_5": true, "HEADING_6": true,
}

var validAlignments = map[string]bool{
	"START": true, "CENTER": true, "END": true, "JUSTIFIED": true,
}

// ParseHexColor parses a #RRGGBB or #RGB hex color into the Docs API
// representation (RGB components as floats in [0, 1]).
func ParseHexColor(value string) (*docs.OptionalColor, error) {
	hex := strings.TrimPrefix(value, "#")
	if len(hex) != len(value)-1 {
		// no leading '#'
		return nil, validationErrorf("invalid color %q: must be #RGB or #RRGGBB", value)
	}
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
		// already full form
	default:
		return nil, validationErrorf("invalid color %q: must be #RGB or #RRGGBB", value)
	}

	channels := make([]float64, 3)
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return nil, validationErrorf("invalid color %q: must be #RGB or #RRGGBB", value)
		}
		channels[i] = float64(v) / 255.0
	}

	return &docs.OptionalColor{
		Color: &docs.Color{
			RgbColor: &docs.RgbColor{
				Red:   channels[0],
				Green: channels[1],
				Blue:  channels[2],
				// zero channels are meaningful and must be sent
				ForceSendFields: []string{"Red", "Green", "Blue"},
			},
		},
	}, nil
}

// BuildTextStyleRequest translates a sparse text-style input into an
// UpdateTextStyle request for the given range, together with the list of
// field names actually set. The field mask is accumulated attribute by
// attribute while the request is built: it can never be reconstructed from
// the final object, because an explicit false is indistinguishable from
// unset once flattened.
//
// Returns (nil, nil, nil) when no attribute is set.
func BuildTextStyleRequest(r Range, tabID string, in TextStyleInput) (*docs.Request, []string, error) {
	if in.IsZero() {
		return nil, nil, nil
	}

	style := &docs.TextStyle{}
	var fields []string

	setBool := func(field string, value bool, assign func(bool)) {
		assign(value)
		if !value {
			style.ForceSendFields = append(style.ForceSendFields, exportedFieldName(field))
		}
		fields = append(fields, field)
	}

	if in.Bold != nil {
		setBool("bold", *in.Bold, func(v bool) { style.Bold = v })
	}
	if in.Italic != nil {
		setBool("italic", *in.Italic, func(v bool) { style.Italic = v })
	}
	if in.Underline != nil {
		setBool("underline", *in.Underline, func(v bool) { style.Underline = v })
	}
	if in.Strikethrough != nil {
		setBool("strikethrough", *in.Strikethrough, func(v bool) { style.Strikethrough = v })
	}
	if in.FontSize != nil {
		if *in.FontSize <= 0 {
			return nil, nil, validationErrorf("fontSize must be positive, got %v", *in.FontSize)
		}
		style.FontSize = &docs.Dimension{Magnitude: *in.FontSize, Unit: "PT"}
		fields = append(fields, "fontSize")
	}
	if in.FontFamily != nil {
		if *in.FontFamily == "" {
			return nil, nil, validationErrorf("fontFamily must not be empty")
		}
		style.WeightedFontFamily = &docs.WeightedFontFamily{FontFamily: *in.FontFamily}
		fields = append(fields, "weightedFontFamily")
	}
	if in.ForegroundColor != nil {
		color, err := ParseHexColor(*in.ForegroundColor)
		if err != nil {
			return nil, nil, err
		}
		style.ForegroundColor = color
		fields = append(fields, "foregroundColor")
	}
	if in.BackgroundColor != nil {
		color, err := ParseHexColor(*in.BackgroundColor)
		if err != nil {
			return nil, nil, err
		}
		style.BackgroundColor = color
		fields = append(fields, "backgroundColor")
	}
	if in.LinkURL != nil {
		if *in.LinkURL == "" {
			return nil, nil, validationErrorf("linkUrl must not be empty")
		}
		style.Link = &docs.Link{Url: *in.LinkURL}
		fields = append(fields, "link")
	}

	req := &docs.Request{
		UpdateTextStyle: &docs.UpdateTextStyleRequest{
			Range:     r.apiRange(tabID),
			TextStyle: style,
			Fields:    strings.Join(fields, ","),
		},
	}
	return req, fields, nil
}

// BuildParagraphStyleRequest translates a sparse paragraph-style input into
// an UpdateParagraphStyle request plus its field mask, with the same
// accumulate-as-you-go contract as BuildTextStyleRequest.
func BuildParagraphStyleRequest(r Range, tabID string, in ParagraphStyleInput) (*docs.Request, []string, error) {
	if in.IsZero() {
		return nil, nil, nil
	}

	style := &docs.ParagraphStyle{}
	var fields []string

	if in.NamedStyleType != nil {
		name := strings.ToUpper(*in.NamedStyleType)
		if !validNamedStyles[name] {
			return nil, nil, validationErrorf("invalid namedStyleType %q", *in.NamedStyleType)
		}
		style.NamedStyleType = name
		fields = append(fields, "namedStyleType")
	}
	if in.Alignment != nil {
		alignment := strings.ToUpper(*in.Alignment)
		if !validAlignments[alignment] {
			return nil, nil, validationErrorf("invalid alignment %q (must be START, CENTER, END, or JUSTIFIED)", *in.Alignment)
		}
		style.Alignment = alignment
		fields = append(fields, "alignment")
	}
	if in.LineSpacing != nil {
		if *in.LineSpacing <= 0 {
			return nil, nil, validationErrorf("lineSpacing must be positive, got %v", *in.LineSpacing)
		}
		style.LineSpacing = *in.LineSpacing
		fields = append(fields, "lineSpacing")
	}
	if in.SpaceAbove != nil {
		style.SpaceAbove = pointsDimension(*in.SpaceAbove)
		fields = append(fields, "spaceAbove")
	}
	if in.SpaceBelow != nil {
		style.SpaceBelow = pointsDimension(*in.SpaceBelow)
		fields = append(fields, "spaceBelow")
	}
	if in.IndentStart != nil {
		style.IndentStart = pointsDimension(*in.IndentStart)
		fields = append(fields, "indentStart")
	}
	if in.IndentEnd != nil {
		style.IndentEnd = pointsDimension(*in.IndentEnd)
		fields = append(fields, "indentEnd")
	}
	if in.KeepWithNext != nil {
		style.KeepWithNext = *in.KeepWithNext
		if !*in.KeepWithNext {
			style.ForceSendFields = append(style.ForceSendFields, "KeepWithNext")
		}
		fields = append(fields, "keepWithNext")
	}

	req := &docs.Request{
		UpdateParagraphStyle: &docs.UpdateParagraphStyleRequest{
			Range:          r.apiRange(tabID),
			ParagraphStyle: style,
			Fields:         strings.Join(fields, ","),
		},
	}
	return req, fields, nil
}

func pointsDimension(magnitude float64) *docs.Dimension {
	d := &docs.Dimension{Magnitude: magnitude, Unit: "PT"}
	if magnitude == 0 {
		d.ForceSendFields = []string{"Magnitude"}
	}
	return d
}

// exportedFieldName maps a camelCase API field name to the Go struct field
// name used in ForceSendFields.
func exportedFieldName(field string) string {
	if field == "" {
		return ""
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
