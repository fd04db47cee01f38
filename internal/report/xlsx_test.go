package report

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"claimcheck/internal/domain"
)

func TestWrite_RowsPerRecord(t *testing.T) {
	batch := &domain.Batch{
		ID: uuid.New(),
		Records: []domain.ProcessingRecord{
			{
				FileName:     "superbill.pdf",
				DocumentType: domain.DocTypeSuperbill,
				Status:       domain.RecordStatusCompleted,
				Analysis: &domain.AnalysisResult{
					DocumentType: domain.DocTypeSuperbill,
					HasIssues:    true,
					MissingCodes: []string{"CPT", "ICD-10"},
					Errors:       []string{"no CPT codes present"},
				},
			},
			{
				FileName: "broken.pdf",
				Status:   domain.RecordStatusFailed,
				Error:    "OCR API error (status 500): boom",
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, batch))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus one row per record")

	assert.Equal(t, "File Name", rows[0][0])
	assert.Equal(t, "superbill.pdf", rows[1][0])
	assert.Equal(t, "Superbill", rows[1][1])
	assert.Equal(t, "CPT; ICD-10", rows[1][4])
	assert.Equal(t, "no CPT codes present", rows[1][9])
	assert.Equal(t, "broken.pdf", rows[2][0])
	assert.Equal(t, "failed", rows[2][2])
	assert.Equal(t, "OCR API error (status 500): boom", rows[2][9])
}

func TestWrite_EmptyBatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &domain.Batch{ID: uuid.New()}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
