package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"claimcheck/internal/domain"
	"claimcheck/internal/service"
)

// MockBatchService is a mock implementation of service.BatchService.
type MockBatchService struct {
	mock.Mock
}

func (m *MockBatchService) Process(ctx context.Context, files []service.BatchFile) (*domain.Batch, error) {
	args := m.Called(ctx, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Batch), args.Error(1)
}

func (m *MockBatchService) Get(id uuid.UUID) (*domain.Batch, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Batch), args.Error(1)
}

func (m *MockBatchService) Processing() bool {
	args := m.Called()
	return args.Bool(0)
}
