package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"claimcheck/internal/domain"
)

// MockDocumentAnalyzer is a mock implementation of port.DocumentAnalyzer.
type MockDocumentAnalyzer struct {
	mock.Mock
}

func (m *MockDocumentAnalyzer) Analyze(ctx context.Context, text string) (*domain.AnalysisResult, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisResult), args.Error(1)
}
