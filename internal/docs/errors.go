package docs

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

// ValidationError reports a caller-supplied value that was rejected locally,
// before any API call was made (bad range, bad instance number, bad color).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError is a normal negative result: the pattern, tab, or offset is
// not present in the document. It is not a remote failure.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string {
	return e.Msg
}

func notFoundErrorf(format string, args ...interface{}) error {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

// DocumentNotFoundError indicates the remote service reported that the
// document does not exist (or is not a Google Doc).
type DocumentNotFoundError struct {
	DocumentID string
}

func (e *DocumentNotFoundError) Error() string {
	return fmt.Sprintf("document not found: %s", e.DocumentID)
}

// PermissionError indicates the remote service denied access to the document.
type PermissionError struct {
	DocumentID string
	Message    string
}

func (e *PermissionError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("permission denied for document %s: %s", e.DocumentID, e.Message)
	}
	return fmt.Sprintf("permission denied for document %s", e.DocumentID)
}

// RemoteError wraps any other remote API failure, preserving the raw message
// for diagnosability.
type RemoteError struct {
	DocumentID string
	Err        error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("docs API error for document %s: %v", e.DocumentID, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is a local negative result (pattern, tab, or
// offset not present). Remote 404s are DocumentNotFoundError instead.
func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}

// mapAPIError translates a googleapi error into the domain taxonomy.
// 404 and 403 get dedicated types; everything else is passed through as a
// RemoteError with the original message intact.
func mapAPIError(documentID string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusNotFound:
			return &DocumentNotFoundError{DocumentID: documentID}
		case http.StatusForbidden:
			return &PermissionError{DocumentID: documentID, Message: apiErr.Message}
		}
	}
	return &RemoteError{DocumentID: documentID, Err: err}
}
