package domain

import (
	"encoding/json"
	"mime/multipart"
)

// SubmissionForm carries the raw values posted by the intake form.
// File is nil when no attachment was sent.
type SubmissionForm struct {
	Product  string
	DocType  string
	Supplier string
	Filename string
	File     multipart.File
	Header   *multipart.FileHeader
}

// SubmissionRequest is a SubmissionForm that passed validation.
type SubmissionRequest struct {
	Product      string
	DocType      string
	Supplier     string
	Filename     string
	OriginalName string
	Size         int64
	Pages        int
	File         multipart.File
}

// SubmissionResult identifies the record created for a submission and the attachment on it.
type SubmissionResult struct {
	RecordID string          `json:"record_id"`
	FileInfo json.RawMessage `json:"file_info,omitempty"`
}

// Notification is a message for the user with its severity.
type Notification struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}
