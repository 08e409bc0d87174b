package remote

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockSession is a mock implementation of the Session interface for testing.
type MockSession struct {
	mock.Mock
}

// NewMockSession creates a new MockSession instance.
func NewMockSession() *MockSession {
	return &MockSession{}
}

// Run mocks running a remote command.
func (m *MockSession) Run(ctx context.Context, command string) ([]byte, error) {
	args := m.Called(ctx, command)

	output, ok := args.Get(0).([]byte)
	if !ok {
		return nil, args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
	}

	return output, args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
}

// Close mocks closing the session.
func (m *MockSession) Close() error {
	args := m.Called()

	return args.Error(0) //nolint:wrapcheck // Mock function, wrapping not needed
}

// MockDialer is a mock implementation of the Dialer interface for testing.
type MockDialer struct {
	mock.Mock
}

// NewMockDialer creates a new MockDialer instance.
func NewMockDialer() *MockDialer {
	return &MockDialer{}
}

// Dial mocks opening a session.
func (m *MockDialer) Dial(ctx context.Context, target Target, password string) (Session, error) {
	args := m.Called(ctx, target, password)

	session, ok := args.Get(0).(Session)
	if !ok {
		return nil, args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
	}

	return session, args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
}
