package port

import (
	"context"
	"encoding/json"

	"docintake/internal/domain"
)

// RecordInput holds the metadata written to a new documents-table record.
type RecordInput struct {
	Product  string
	DocType  string
	Supplier string
	Filename string
}

// SubmitInput is a RecordInput plus the local path of the PDF to attach.
type SubmitInput struct {
	RecordInput
	FilePath string
}

// RecordClient abstracts the remote record-table service.
type RecordClient interface {
	// ValidateConfig returns the names of missing required settings.
	ValidateConfig() []string
	CreateRecord(ctx context.Context, input RecordInput) (string, error)
	UploadFile(ctx context.Context, recordID, filePath, fileName string) (json.RawMessage, error)
	// SubmitDocument creates the record and then attaches the file to it.
	SubmitDocument(ctx context.Context, input SubmitInput) (*domain.SubmissionResult, error)
}
