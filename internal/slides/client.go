package slides

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	slides "google.golang.org/api/slides/v1"

	"github.com/docsmith/workspace-mcp/internal/google"
)

// Predefined layouts accepted by AddSlide. These mirror the Slides API
// PredefinedLayout enum.
var validLayouts = map[string]bool{
	"BLANK":                         true,
	"CAPTION_ONLY":                  true,
	"TITLE":                         true,
	"TITLE_AND_BODY":                true,
	"TITLE_AND_TWO_COLUMNS":         true,
	"TITLE_ONLY":                    true,
	"SECTION_HEADER":                true,
	"SECTION_TITLE_AND_DESCRIPTION": true,
	"ONE_COLUMN_TEXT":               true,
	"MAIN_POINT":                    true,
	"BIG_NUMBER":                    true,
}

// Client wraps the Google Slides API service
type Client struct {
	service *slides.Service
	account string // The account this client is associated with
}

// Account returns the account name this client is associated with
func (c *Client) Account() string {
	return c.account
}

// HasTokenForAccount checks if a valid OAuth token exists for the specified account
func HasTokenForAccount(account string) bool {
	return google.HasTokenForAccount(account)
}

// HasToken checks if a valid OAuth token exists for the default account
func HasToken() bool {
	return google.HasToken()
}

// NewClientForAccountWithProvider creates a new Google Slides client with OAuth2
// authentication for a specific account, retrieving the token from the given provider
func NewClientForAccountWithProvider(ctx context.Context, account string, tokenProvider google.TokenProvider) (*Client, error) {
	if tokenProvider == nil {
		return nil, fmt.Errorf("token provider cannot be nil")
	}

	token, err := tokenProvider.GetTokenForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to get Google OAuth token for account %s: %w", account, err)
	}

	// Create OAuth2 config and token source
	conf := google.GetOAuthConfig()
	tokenSource := conf.TokenSource(ctx, token)

	// Create HTTP client with the token
	client := oauth2.NewClient(ctx, tokenSource)

	// Force HTTP/1.1 by disabling HTTP/2
	transport := client.Transport.(*oauth2.Transport)
	baseTransport := &http.Transport{
		ForceAttemptHTTP2: false,
	}
	transport.Base = baseTransport

	slidesService, err := slides.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Slides service: %w", err)
	}

	return &Client{
		service: slidesService,
		account: account,
	}, nil
}

// NewClientForAccount creates a new Google Slides client with OAuth2 authentication for a specific account
// Returns an error if no valid token exists - use HasTokenForAccount() to check first
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	provider := google.NewFileTokenProvider()
	return NewClientForAccountWithProvider(ctx, account, provider)
}

// NewClient creates a new Google Slides client with OAuth2 authentication for the default account
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// CreatePresentation creates a new presentation with the given title
func (c *Client) CreatePresentation(ctx context.Context, title string) (*PresentationInfo, error) {
	if title == "" {
		return nil, fmt.Errorf("presentation title is required")
	}

	presentation := &slides.Presentation{
		Title: title,
	}

	created, err := c.service.Presentations.Create(presentation).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create presentation: %w", err)
	}

	return convertToPresentationInfo(created), nil
}

// GetPresentation retrieves a presentation's metadata and slide inventory,
// including the text content of each slide
func (c *Client) GetPresentation(ctx context.Context, presentationID string) (*PresentationInfo, error) {
	if presentationID == "" {
		return nil, fmt.Errorf("presentationID is required")
	}

	presentation, err := c.service.Presentations.Get(presentationID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get presentation %s: %w", presentationID, err)
	}

	return convertToPresentationInfo(presentation), nil
}

// AddSlide appends a new slide to the presentation using a predefined layout.
// An empty layout defaults to BLANK. Returns the new slide's object ID.
func (c *Client) AddSlide(ctx context.Context, presentationID, layout string) (string, error) {
	if presentationID == "" {
		return "", fmt.Errorf("presentationID is required")
	}

	if layout == "" {
		layout = "BLANK"
	}
	layout = strings.ToUpper(layout)
	if !validLayouts[layout] {
		return "", fmt.Errorf("invalid slide layout %q", layout)
	}

	req := &slides.BatchUpdatePresentationRequest{
		Requests: []*slides.Request{
			{
				CreateSlide: &slides.CreateSlideRequest{
					SlideLayoutReference: &slides.LayoutReference{
						PredefinedLayout: layout,
					},
				},
			},
		},
	}

	resp, err := c.service.Presentations.BatchUpdate(presentationID, req).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to add slide: %w", err)
	}

	for _, reply := range resp.Replies {
		if reply.CreateSlide != nil {
			return reply.CreateSlide.ObjectId, nil
		}
	}

	return "", nil
}

// ReplaceAllText replaces every occurrence of find with replace across the
// whole presentation
func (c *Client) ReplaceAllText(ctx context.Context, presentationID, find, replace string, matchCase bool) (*ReplaceTextResult, error) {
	if presentationID == "" {
		return nil, fmt.Errorf("presentationID is required")
	}
	if find == "" {
		return nil, fmt.Errorf("find text is required")
	}

	criteria := &slides.SubstringMatchCriteria{
		Text:      find,
		MatchCase: matchCase,
	}
	if !matchCase {
		criteria.ForceSendFields = append(criteria.ForceSendFields, "MatchCase")
	}

	req := &slides.BatchUpdatePresentationRequest{
		Requests: []*slides.Request{
			{
				ReplaceAllText: &slides.ReplaceAllTextRequest{
					ContainsText: criteria,
					ReplaceText:  replace,
				},
			},
		},
	}

	resp, err := c.service.Presentations.BatchUpdate(presentationID, req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to replace text: %w", err)
	}

	result := &ReplaceTextResult{
		PresentationID: presentationID,
	}
	for _, reply := range resp.Replies {
		if reply.ReplaceAllText != nil {
			result.Occurrences += reply.ReplaceAllText.OccurrencesChanged
		}
	}

	return result, nil
}

// convertToPresentationInfo converts a Slides API Presentation to our PresentationInfo type
func convertToPresentationInfo(p *slides.Presentation) *PresentationInfo {
	info := &PresentationInfo{
		ID:         p.PresentationId,
		Title:      p.Title,
		Locale:     p.Locale,
		RevisionID: p.RevisionId,
	}

	for i, slide := range p.Slides {
		si := SlideInfo{
			ObjectID: slide.ObjectId,
			Index:    i,
			Text:     slideText(slide),
		}
		if slide.SlideProperties != nil {
			si.LayoutObjectID = slide.SlideProperties.LayoutObjectId
		}
		info.Slides = append(info.Slides, si)
	}

	return info
}

// slideText concatenates the text runs of all shapes on a slide
func slideText(page *slides.Page) string {
	var sb strings.Builder
	for _, element := range page.PageElements {
		if element.Shape == nil || element.Shape.Text == nil {
			continue
		}
		for _, te := range element.Shape.Text.TextElements {
			if te.TextRun != nil {
				sb.WriteString(te.TextRun.Content)
			}
		}
	}
	return sb.String()
}
