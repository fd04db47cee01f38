package domain

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisResult is the structured verdict returned by the content analyzer.
// It is decoded from untrusted LLM output, so every field is optional and the
// zero value is the default.
type AnalysisResult struct {
	DocumentType      DocumentType `json:"document_type"`
	HasIssues         bool         `json:"has_issues"`
	MissingCodes      []string     `json:"missing_codes"`
	InvalidCodes      []string     `json:"invalid_codes"`
	WrongDocumentType bool         `json:"wrong_document_type"`
	ExpectedType      string       `json:"expected_type"`
	Errors            []string     `json:"errors"`
	Notes             string       `json:"notes"`
}

// ProcessingRecord pairs an uploaded file with its analysis outcome.
type ProcessingRecord struct {
	FileName     string          `json:"file_name"`
	DocumentType DocumentType    `json:"document_type"`
	Status       RecordStatus    `json:"status"`
	Error        string          `json:"error,omitempty"`
	Analysis     *AnalysisResult `json:"analysis,omitempty"`
	Display      string          `json:"display,omitempty"`
}

// Batch is one processing run over up to MaxFiles uploads. Batches live only
// in the in-memory session store and are never persisted.
type Batch struct {
	ID        uuid.UUID          `json:"id"`
	State     BatchState         `json:"state"`
	Records   []ProcessingRecord `json:"records"`
	Warnings  []string           `json:"warnings,omitempty"`
	HasIssues bool               `json:"has_issues"`
	CreatedAt time.Time          `json:"created_at"`
}
