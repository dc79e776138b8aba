package noop

import (
	"context"
	"log"

	"docintake/internal/email"
	"docintake/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs receipts to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendSubmissionReceipt(_ context.Context, receipt port.SubmissionReceipt) error {
	log.Printf("[NOOP EMAIL] %s (record %s)", email.ReceiptSubject(receipt), receipt.RecordID)
	return nil
}
