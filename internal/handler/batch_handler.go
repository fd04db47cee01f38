package handler

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"claimcheck/internal/report"
	"claimcheck/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BatchHandler handles document batch processing endpoints.
type BatchHandler struct {
	batchService service.BatchService
}

// NewBatchHandler creates a new BatchHandler.
func NewBatchHandler(batchService service.BatchService) *BatchHandler {
	return &BatchHandler{batchService: batchService}
}

// Process handles POST /api/v1/batches
// @Summary Process claim documents
// @Description Validate, OCR, and analyze up to 3 claim-support documents (PDF, JPG, PNG). Extra files are truncated with a warning. Processing is synchronous; the full batch result is returned.
// @Tags batches
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Documents to process (repeat the field, max 3)"
// @Success 201 {object} APIResponse "Batch result with one record per file"
// @Failure 400 {object} APIResponse "No files provided"
// @Failure 409 {object} APIResponse "A batch is already running"
// @Router /batches [post]
func (h *BatchHandler) Process(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_FORM", "expected multipart form data")
		return
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "files field is required")
		return
	}

	files := make([]service.BatchFile, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE",
				fmt.Sprintf("could not read uploaded file %s", header.Filename))
			return
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE",
				fmt.Sprintf("could not read uploaded file %s", header.Filename))
			return
		}
		files = append(files, service.BatchFile{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	batch, err := h.batchService.Process(c.Request.Context(), files)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, batch)
}

// GetByID handles GET /api/v1/batches/:id
// @Summary Get a batch
// @Description Get a previously processed batch by ID
// @Tags batches
// @Produce json
// @Param id path string true "Batch ID (UUID)"
// @Success 200 {object} APIResponse "Batch result"
// @Failure 400 {object} APIResponse "Invalid ID"
// @Failure 404 {object} APIResponse "Batch not found"
// @Router /batches/{id} [get]
func (h *BatchHandler) GetByID(c *gin.Context) {
	batchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid batch ID")
		return
	}

	batch, err := h.batchService.Get(batchID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, batch)
}

// Report handles GET /api/v1/batches/:id/report
// @Summary Download a batch findings report
// @Description Download the batch findings as an .xlsx workbook, one row per document
// @Tags batches
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Batch ID (UUID)"
// @Success 200 {file} binary "Findings workbook"
// @Failure 400 {object} APIResponse "Invalid ID"
// @Failure 404 {object} APIResponse "Batch not found"
// @Router /batches/{id}/report [get]
func (h *BatchHandler) Report(c *gin.Context) {
	batchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid batch ID")
		return
	}

	batch, err := h.batchService.Get(batchID)
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, batch); err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="claimcheck-%s.xlsx"`, batch.ID))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Status handles GET /api/v1/batches/status
// @Summary Processing status
// @Description Reports whether a batch is currently being processed. The UI disables submission while true.
// @Tags batches
// @Produce json
// @Success 200 {object} APIResponse "Processing flag"
// @Router /batches/status [get]
func (h *BatchHandler) Status(c *gin.Context) {
	RespondOK(c, gin.H{"processing": h.batchService.Processing()})
}
