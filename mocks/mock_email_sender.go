package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docintake/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendSubmissionReceipt(ctx context.Context, receipt port.SubmissionReceipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}
