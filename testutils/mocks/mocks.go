// Package mocks provides mock implementations for testing
package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockSender is a mock implementation of digest.Sender
type MockSender struct {
	mock.Mock
}

// Send records the call and returns the configured status and error
func (m *MockSender) Send(subject, body, toEmail, toName string) (string, error) {
	args := m.Called(subject, body, toEmail, toName)
	return args.String(0), args.Error(1)
}
