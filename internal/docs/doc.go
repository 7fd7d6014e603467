// Package docs provides functionality for reading and editing Google Docs.
//
// This package includes a client for authenticating with the Google Docs API
// using OAuth2, retrieving document content (including multi-tab documents),
// and converting documents to Markdown and plain text.
//
// On top of the client it implements offset-based editing: all document
// positions are UTF-16 code unit offsets as assigned by the Docs API.
// Content can be addressed either by an explicit [start, end) range or by
// locating a literal string (with instance selection for repeated text),
// and located ranges are widened to enclosing paragraphs for paragraph-level
// formatting. Edits are validated locally and dispatched as atomic
// batchUpdate calls; offsets resolved from one document revision must not
// be reused after any edit.
//
// Example usage:
//
//	client, err := docs.NewClient(context.Background())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := client.FormatText(ctx, "1ABC123xyz", "", docs.TargetSpec{
//	    Text:          "quarterly revenue",
//	    MatchInstance: 2,
//	}, docs.TextStyleInput{Bold: docs.BoolPtr(true)})
package docs
