package domain

import "errors"

var (
	ErrUnsupportedFileType   = errors.New("unsupported file type")
	ErrFileTooLarge          = errors.New("file exceeds maximum allowed size")
	ErrPayloadTooLarge       = errors.New("encoded payload exceeds provider size limit")
	ErrOCRNotConfigured      = errors.New("OCR API key not found in environment")
	ErrAnalyzerNotConfigured = errors.New("analyzer API key not found in environment")
	ErrNoFiles               = errors.New("no files provided")
	ErrBatchInProgress       = errors.New("a batch is already being processed")
	ErrBatchNotFound         = errors.New("batch not found")
)
