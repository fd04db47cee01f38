// Package validator checks uploaded files against the claim-document
// allow-list before any provider call is made.
package validator

import (
	"strings"

	"claimcheck/internal/domain"
)

// Validate reports whether an upload with the given declared content type and
// filename is acceptable. The declared type must be one of the allowed PDF or
// image types; a filename ending in .pdf is accepted regardless, because some
// clients report a missing or generic content type for PDFs.
func Validate(contentType, filename string) bool {
	if _, ok := domain.AllowedContentTypes[strings.ToLower(contentType)]; ok {
		return true
	}
	return strings.HasSuffix(strings.ToLower(filename), ".pdf")
}
