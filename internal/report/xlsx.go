// Package report exports batch findings as an Excel workbook for download.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"claimcheck/internal/domain"
)

const sheetName = "Findings"

// columns defines the report header row.
var columns = []string{
	"File Name",
	"Document Type",
	"Status",
	"Has Issues",
	"Missing Codes",
	"Invalid Codes",
	"Wrong Document Type",
	"Expected Type",
	"Notes",
	"Errors",
}

// Write renders one row per processing record and writes the workbook to w.
func Write(w io.Writer, batch *domain.Batch) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i := range batch.Records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("computing cell: %w", err)
		}
		row := recordToRow(&batch.Records[i])
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// recordToRow converts a record to one report row. Records without an
// analysis (skipped or failed files) fill the metadata columns and leave the
// verdict columns empty except for the error.
func recordToRow(rec *domain.ProcessingRecord) []interface{} {
	row := make([]interface{}, len(columns))
	row[0] = rec.FileName
	row[1] = string(rec.DocumentType)
	row[2] = string(rec.Status)

	errs := rec.Error
	if rec.Analysis != nil {
		a := rec.Analysis
		row[3] = a.HasIssues
		row[4] = strings.Join(a.MissingCodes, "; ")
		row[5] = strings.Join(a.InvalidCodes, "; ")
		row[6] = a.WrongDocumentType
		row[7] = a.ExpectedType
		row[8] = a.Notes
		if len(a.Errors) > 0 {
			errs = strings.Join(a.Errors, "; ")
		}
	}
	row[9] = errs
	return row
}
