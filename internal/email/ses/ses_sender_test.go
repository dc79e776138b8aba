package ses_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docintake/internal/email/ses"
)

func TestNewSESSender_RequiresRecipients(t *testing.T) {
	sender, err := ses.NewSESSender("us-east-1", "noreply@example.com", "Document Intake", nil)

	assert.Error(t, err)
	assert.Nil(t, sender)
}
