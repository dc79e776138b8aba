package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"docintake/internal/domain"
	"docintake/internal/port"
)

// MockRecordClient is a mock implementation of port.RecordClient.
type MockRecordClient struct {
	mock.Mock
}

func (m *MockRecordClient) ValidateConfig() []string {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func (m *MockRecordClient) CreateRecord(ctx context.Context, input port.RecordInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *MockRecordClient) UploadFile(ctx context.Context, recordID, filePath, fileName string) (json.RawMessage, error) {
	args := m.Called(ctx, recordID, filePath, fileName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockRecordClient) SubmitDocument(ctx context.Context, input port.SubmitInput) (*domain.SubmissionResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubmissionResult), args.Error(1)
}
