package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrFileTooLarge     = errors.New("file exceeds maximum allowed size")
	ErrSubmissionFailed = errors.New("document submission failed")
)

// Validation messages shown to the user.
const (
	MsgInvalidProduct  = "Please select a valid Product."
	MsgInvalidDocType  = "Please select a valid Document Type."
	MsgInvalidSupplier = "Please select a valid Supplier."
	MsgMissingFilename = "Please enter a Filename."
	MsgMissingFile     = "Please attach a PDF document."
	MsgNotPDF          = "Only PDF files are accepted."
	MsgUnreadablePDF   = "The attached file is not a readable PDF."
	MsgMalformedForm   = "The submitted form could not be read."
)

// MsgFileTooLarge formats the size-limit message for a ceiling in megabytes.
func MsgFileTooLarge(maxMB int64) string {
	return fmt.Sprintf("The attached file exceeds the %d MB limit.", maxMB)
}

// ValidationError lists every check a submission failed, in form order.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, " ")
}

// ConfigError lists the names of required settings that are not configured.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("SmartSuite configuration incomplete. Missing: %s. Please check your .env file.",
		strings.Join(e.Missing, ", "))
}

// SubmissionError wraps a failure from the remote record service. RecordID is set when the
// record was created before the failure, leaving it without its attachment.
type SubmissionError struct {
	RecordID string
	Err      error
}

func (e *SubmissionError) Error() string {
	return e.Err.Error()
}

func (e *SubmissionError) Unwrap() []error {
	return []error{ErrSubmissionFailed, e.Err}
}
