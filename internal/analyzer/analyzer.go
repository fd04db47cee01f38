// Package analyzer audits extracted document text against the CHAMPVA coding
// rubric through a language-model provider, trying an ordered chain of model
// identifiers until one yields a parseable verdict.
package analyzer

import (
	"context"
	"encoding/json"
	"log"

	"claimcheck/internal/domain"
)

// ModelClient performs a single JSON-mode completion against one model
// identifier and returns the raw response content.
type ModelClient interface {
	Complete(ctx context.Context, model, system, user string) (string, error)
}

// Analyzer implements port.DocumentAnalyzer over a ModelClient with an
// ordered model fallback chain.
type Analyzer struct {
	client ModelClient
	models []string
}

// DefaultModels is the fallback chain used when none is configured.
var DefaultModels = []string{"gpt-4.1", "gpt-4.1-mini", "gpt-4"}

// New creates an Analyzer. models are tried in order; an empty list falls back
// to DefaultModels.
func New(client ModelClient, models []string) *Analyzer {
	if len(models) == 0 {
		models = DefaultModels
	}
	return &Analyzer{client: client, models: models}
}

// Analyze sends the audit rubric plus the extracted text to each configured
// model in order. A model-unavailable signal or malformed JSON output advances
// the chain; any other error propagates immediately. When every model is
// exhausted, Analyze returns a synthetic Unknown/has-issues result instead of
// an error so the caller can still render a panel for the document.
func (a *Analyzer) Analyze(ctx context.Context, text string) (*domain.AnalysisResult, error) {
	for _, model := range a.models {
		content, err := a.client.Complete(ctx, model, AuditPrompt, text)
		if err != nil {
			if IsModelUnavailable(err) {
				log.Printf("analyzer.Analyze: model %s unavailable, trying next: %v", model, err)
				continue
			}
			return nil, err
		}

		var result domain.AnalysisResult
		if err := json.Unmarshal([]byte(content), &result); err != nil {
			log.Printf("analyzer.Analyze: model %s returned unparseable JSON, trying next: %v", model, err)
			continue
		}
		if result.DocumentType == "" {
			result.DocumentType = domain.DocTypeUnknown
		}
		return &result, nil
	}

	log.Printf("analyzer.Analyze: all %d models exhausted without a parseable result", len(a.models))
	return &domain.AnalysisResult{
		DocumentType: domain.DocTypeUnknown,
		HasIssues:    true,
		Errors:       []string{"Failed to analyze document with all available models."},
	}, nil
}
