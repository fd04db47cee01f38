package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"claimcheck/internal/config"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	cfg *config.Config
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
// Reports missing provider credentials, the one configuration problem that is
// detectable before any document is processed.
func (h *HealthHandler) Readiness(c *gin.Context) {
	var missing []string
	if h.cfg.OCR.APIKey == "" {
		missing = append(missing, "ocr.api_key")
	}
	if h.cfg.Analyzer.APIKey == "" {
		missing = append(missing, "analyzer.api_key")
	}
	if len(missing) > 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "missing": missing})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
