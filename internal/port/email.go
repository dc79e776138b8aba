package port

import "context"

// SubmissionReceipt describes a successfully submitted document.
type SubmissionReceipt struct {
	RecordID string
	Product  string
	DocType  string
	Supplier string
	Filename string
}

// EmailSender defines the contract for sending submission receipts.
type EmailSender interface {
	SendSubmissionReceipt(ctx context.Context, receipt SubmissionReceipt) error
}
