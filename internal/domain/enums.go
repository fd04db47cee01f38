package domain

// DocumentType classifies a claim-support document.
type DocumentType string

const (
	DocTypeSuperbill       DocumentType = "Superbill"
	DocTypeEOB             DocumentType = "EOB"
	DocTypePharmacyReceipt DocumentType = "Pharmacy Receipt"
	DocTypeUnknown         DocumentType = "Unknown"
)

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedContentTypes maps declared MIME content types to FileType.
// image/jpg is not a registered MIME type but browsers still send it.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/jpg":       FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// RecordStatus represents the outcome of processing a single uploaded file.
type RecordStatus string

const (
	RecordStatusCompleted RecordStatus = "completed"
	RecordStatusSkipped   RecordStatus = "skipped"
	RecordStatusFailed    RecordStatus = "failed"
)

// BatchState represents the lifecycle of a processing batch.
type BatchState string

const (
	BatchStateProcessing BatchState = "processing"
	BatchStateCompleted  BatchState = "completed"
)
