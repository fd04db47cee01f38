package port

import "context"

// TextExtractor abstracts the external OCR provider. ExtractText reads the
// document at filePath, sends it to the provider, and returns the extracted
// text with pages joined by blank lines.
type TextExtractor interface {
	ExtractText(ctx context.Context, filePath string) (string, error)
}
