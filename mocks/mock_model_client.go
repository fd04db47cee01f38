package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockModelClient is a mock implementation of analyzer.ModelClient.
type MockModelClient struct {
	mock.Mock
}

func (m *MockModelClient) Complete(ctx context.Context, model, system, user string) (string, error) {
	args := m.Called(ctx, model, system, user)
	return args.String(0), args.Error(1)
}
