package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docintake/internal/domain"
)

// MockIntakeService is a mock implementation of service.IntakeService.
type MockIntakeService struct {
	mock.Mock
}

func (m *MockIntakeService) Options() domain.Options {
	args := m.Called()
	return args.Get(0).(domain.Options)
}

func (m *MockIntakeService) MissingConfig() []string {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func (m *MockIntakeService) Validate(form domain.SubmissionForm) (*domain.SubmissionRequest, error) {
	args := m.Called(form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubmissionRequest), args.Error(1)
}

func (m *MockIntakeService) Submit(ctx context.Context, form domain.SubmissionForm) (*domain.SubmissionResult, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubmissionResult), args.Error(1)
}
