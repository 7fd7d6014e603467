package docs

// DocumentMetadata represents metadata about a Google Drive file
type DocumentMetadata struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MimeType     string `json:"mimeType"`
	CreatedTime  string `json:"createdTime"`
	ModifiedTime string `json:"modifiedTime"`
	Size         int64  `json:"size,omitempty"`
	Owners       []User `json:"owners,omitempty"`
}

// User represents a Google Drive user
type User struct {
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
}

// BoolPtr returns a pointer to v, for building sparse style inputs.
func BoolPtr(v bool) *bool { return &v }

// Float64Ptr returns a pointer to v, for building sparse style inputs.
func Float64Ptr(v float64) *float64 { return &v }

// StringPtr returns a pointer to v, for building sparse style inputs.
func StringPtr(v string) *string { return &v }

// Int64Ptr returns a pointer to v, for explicit range targets.
func Int64Ptr(v int64) *int64 { return &v }
