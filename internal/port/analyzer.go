package port

import (
	"context"

	"claimcheck/internal/domain"
)

// DocumentAnalyzer abstracts LLM-based auditing of extracted document text.
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, text string) (*domain.AnalysisResult, error)
}
