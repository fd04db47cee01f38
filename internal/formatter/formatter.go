// Package formatter renders analysis results as display text for the results
// panels. Format is a pure function; every field it touches has a defensive
// default so it never fails on a partial record.
package formatter

import (
	"fmt"
	"strings"

	"claimcheck/internal/domain"
)

// Format renders a processing record as markdown in a fixed order: document
// type, pass/fail status, missing codes, invalid codes, wrong-document-type
// callout, notes. Sections with nothing to say are omitted.
func Format(record *domain.ProcessingRecord) string {
	var b strings.Builder

	docType := domain.DocTypeUnknown
	if record != nil && record.DocumentType != "" {
		docType = record.DocumentType
	}
	fmt.Fprintf(&b, "**Document Type**: %s\n\n", docType)

	// A record without an analysis counts as having issues.
	analysis := &domain.AnalysisResult{HasIssues: true}
	if record != nil && record.Analysis != nil {
		analysis = record.Analysis
	}

	if !analysis.HasIssues {
		b.WriteString("✅ **Status**: This document appears to be valid with proper medical codes.\n\n")
	} else {
		b.WriteString("❌ **Status**: Issues found in this document.\n\n")
	}

	if len(analysis.MissingCodes) > 0 {
		b.WriteString("**Missing Codes**:\n")
		for _, code := range analysis.MissingCodes {
			fmt.Fprintf(&b, "- %s\n", code)
		}
		b.WriteString("\n")
	}

	if len(analysis.InvalidCodes) > 0 {
		b.WriteString("**Invalid Codes**:\n")
		for _, code := range analysis.InvalidCodes {
			fmt.Fprintf(&b, "- %s\n", code)
		}
		b.WriteString("\n")
	}

	if analysis.WrongDocumentType {
		expected := analysis.ExpectedType
		if expected == "" {
			expected = string(domain.DocTypeUnknown)
		}
		fmt.Fprintf(&b, "**Wrong Document Type**: This does not appear to be a %s document.\n\n", expected)
	}

	if analysis.Notes != "" {
		fmt.Fprintf(&b, "**Notes**: %s\n\n", analysis.Notes)
	}

	return b.String()
}
