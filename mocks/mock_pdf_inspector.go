package mocks

import (
	"io"

	"github.com/stretchr/testify/mock"
)

// MockPDFInspector is a mock implementation of port.PDFInspector.
type MockPDFInspector struct {
	mock.Mock
}

func (m *MockPDFInspector) PageCount(rs io.ReadSeeker) (int, error) {
	args := m.Called(rs)
	return args.Int(0), args.Error(1)
}
