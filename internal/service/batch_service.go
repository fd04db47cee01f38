package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"claimcheck/internal/config"
	"claimcheck/internal/domain"
	"claimcheck/internal/formatter"
	"claimcheck/internal/port"
	"claimcheck/internal/validator"
)

// BatchFile is the DTO for one uploaded file in a processing run.
type BatchFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// BatchService defines the document-processing contract.
type BatchService interface {
	Process(ctx context.Context, files []BatchFile) (*domain.Batch, error)
	Get(id uuid.UUID) (*domain.Batch, error)
	Processing() bool
}

type batchService struct {
	extractor    port.TextExtractor
	analyzer     port.DocumentAnalyzer
	store        port.BatchStore
	maxFiles     int
	maxFileBytes int64
	running      atomic.Bool
}

// NewBatchService creates a new BatchService implementation.
func NewBatchService(
	extractor port.TextExtractor,
	analyzer port.DocumentAnalyzer,
	store port.BatchStore,
	cfg *config.UploadConfig,
) BatchService {
	maxFiles := cfg.MaxFiles
	if maxFiles <= 0 {
		maxFiles = 3
	}
	return &batchService{
		extractor:    extractor,
		analyzer:     analyzer,
		store:        store,
		maxFiles:     maxFiles,
		maxFileBytes: cfg.MaxFileSizeMB * 1024 * 1024,
	}
}

// Process runs one batch: validate, OCR, and analyze each file in upload
// order. A failure in one file never aborts the others; its record carries the
// error instead. Only one batch may run at a time.
func (s *batchService) Process(ctx context.Context, files []BatchFile) (*domain.Batch, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, domain.ErrBatchInProgress
	}
	defer s.running.Store(false)

	if len(files) == 0 {
		return nil, domain.ErrNoFiles
	}

	batch := &domain.Batch{
		ID:        uuid.New(),
		State:     domain.BatchStateProcessing,
		CreatedAt: time.Now().UTC(),
	}

	if len(files) > s.maxFiles {
		batch.Warnings = append(batch.Warnings,
			fmt.Sprintf("more than %d files uploaded; only the first %d were processed", s.maxFiles, s.maxFiles))
		files = files[:s.maxFiles]
	}

	s.store.Put(batch)
	log.Printf("batchService.Process: batch %s started with %d files", batch.ID, len(files))

	for _, f := range files {
		record := s.processFile(ctx, f)
		record.Display = formatter.Format(&record)
		batch.Records = append(batch.Records, record)
		log.Printf("batchService.Process: batch %s file %s -> %s", batch.ID, f.Name, record.Status)
	}

	// A record without a clean analysis counts toward the batch summary.
	for i := range batch.Records {
		if batch.Records[i].Analysis == nil || batch.Records[i].Analysis.HasIssues {
			batch.HasIssues = true
			break
		}
	}

	batch.State = domain.BatchStateCompleted
	s.store.Put(batch)
	log.Printf("batchService.Process: batch %s completed (has_issues=%t)", batch.ID, batch.HasIssues)
	return batch, nil
}

// processFile handles a single upload end to end. Every failure is folded into
// the returned record; nothing escapes to abort the batch.
func (s *batchService) processFile(ctx context.Context, f BatchFile) domain.ProcessingRecord {
	record := domain.ProcessingRecord{
		FileName:     f.Name,
		DocumentType: domain.DocTypeUnknown,
	}

	if !validator.Validate(f.ContentType, f.Name) {
		record.Status = domain.RecordStatusSkipped
		record.Error = fmt.Sprintf("%v: only PDF and image formats are supported", domain.ErrUnsupportedFileType)
		return record
	}

	if s.maxFileBytes > 0 && int64(len(f.Data)) > s.maxFileBytes {
		record.Status = domain.RecordStatusSkipped
		record.Error = fmt.Sprintf("%v (%d bytes)", domain.ErrFileTooLarge, len(f.Data))
		return record
	}

	text, err := s.extractAtTempPath(ctx, f)
	if err != nil {
		record.Status = domain.RecordStatusFailed
		record.Error = err.Error()
		return record
	}
	if text == "" {
		record.Status = domain.RecordStatusFailed
		record.Error = "no text could be extracted from the document"
		return record
	}

	analysis, err := s.analyzer.Analyze(ctx, text)
	if err != nil {
		record.Status = domain.RecordStatusFailed
		record.Error = err.Error()
		return record
	}

	record.Status = domain.RecordStatusCompleted
	record.Analysis = analysis
	if analysis.DocumentType != "" {
		record.DocumentType = analysis.DocumentType
	}
	return record
}

// extractAtTempPath writes the upload to a scoped temp file for the OCR call
// and removes it on every exit path.
func (s *batchService) extractAtTempPath(ctx context.Context, f BatchFile) (string, error) {
	ext := filepath.Ext(f.Name)
	tmp, err := os.CreateTemp("", "claimcheck-*"+sanitizeExt(ext))
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if removeErr := os.Remove(tmpPath); removeErr != nil {
			log.Printf("batchService.extractAtTempPath: failed to remove temp file %s: %v", tmpPath, removeErr)
		}
	}()

	if _, err := tmp.Write(f.Data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing temp file: %w", err)
	}

	return s.extractor.ExtractText(ctx, tmpPath)
}

// sanitizeExt keeps only a plain dotted extension for the temp file pattern.
func sanitizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext == "" || strings.ContainsAny(ext, `/\*?`) {
		return ""
	}
	return ext
}

func (s *batchService) Get(id uuid.UUID) (*domain.Batch, error) {
	batch, ok := s.store.Get(id)
	if !ok {
		return nil, domain.ErrBatchNotFound
	}
	return batch, nil
}

// Processing reports whether a batch is currently running. The UI uses it to
// keep the submit action disabled.
func (s *batchService) Processing() bool {
	return s.running.Load()
}
