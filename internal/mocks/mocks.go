package mocks

import (
	"context"
	"time"

	"github.com/brettbedarf/webcli"
	"github.com/stretchr/testify/mock"
)

// MockContentSource implements webcli.ContentSource for testing across packages
type MockContentSource struct {
	mock.Mock
}

func (m *MockContentSource) Content(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)

	// Handle function return types (for complex tests)
	if fn, ok := args.Get(0).(func(context.Context) []byte); ok {
		return fn(ctx), args.Error(1)
	}

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

var _ webcli.ContentSource = (*MockContentSource)(nil)

// MockSourceProvider implements webcli.SourceProvider for testing across packages
type MockSourceProvider struct {
	mock.Mock
}

func (m *MockSourceProvider) Source(raw []byte) (webcli.ContentSource, error) {
	args := m.Called(raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(webcli.ContentSource), args.Error(1)
}

var _ webcli.SourceProvider = (*MockSourceProvider)(nil)

// MockClock implements webcli.Clock
type MockClock struct {
	mock.Mock
}

func (m *MockClock) Now() time.Time {
	args := m.Called()
	return args.Get(0).(time.Time)
}

var _ webcli.Clock = (*MockClock)(nil)

// MockCommandObserver implements webcli.CommandObserver
type MockCommandObserver struct {
	mock.Mock
}

func (m *MockCommandObserver) ObserveCommand(command string, isError bool, elapsed time.Duration) {
	m.Called(command, isError, elapsed)
}

var _ webcli.CommandObserver = (*MockCommandObserver)(nil)
