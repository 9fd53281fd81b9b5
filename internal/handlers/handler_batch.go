package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/entrybatch/journal_entry_app/internal/apperrors"
	"github.com/entrybatch/journal_entry_app/internal/core/domain"
	portssvc "github.com/entrybatch/journal_entry_app/internal/core/ports/services"
	"github.com/entrybatch/journal_entry_app/internal/middleware"
)

// batchHandler handles batch journal entry uploads.
type batchHandler struct {
	batchSvc    portssvc.BatchSvcFacade
	maxFileSize int64
}

func newBatchHandler(batchSvc portssvc.BatchSvcFacade, maxFileSize int64) *batchHandler {
	return &batchHandler{batchSvc: batchSvc, maxFileSize: maxFileSize}
}

// ingestBatch godoc
// @Summary Upload and validate a batch of journal entries
// @Description Parses a CSV/XLSX file, groups rows by reference into journal entries and validates every group. The report always covers the whole file; a single bad row or group never aborts the upload.
// @Tags batches
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Batch file"
// @Param format formData string false "File format (csv or xlsx); derived from the filename when omitted"
// @Success 200 {object} domain.BatchReport
// @Failure 400 {object} map[string]string "Missing or unreadable file"
// @Failure 413 {object} map[string]string "File too large"
// @Failure 415 {object} map[string]string "Unsupported format"
// @Router /batches [post]
func (h *batchHandler) ingestBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file upload"})
		return
	}
	if h.maxFileSize > 0 && fileHeader.Size > h.maxFileSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File exceeds the maximum upload size"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable file upload"})
		return
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		logger.Error("Failed to read uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable file upload"})
		return
	}

	format := batchFormat(c.PostForm("format"), fileHeader.Filename)
	logger.Info("Batch upload received",
		slog.String("filename", fileHeader.Filename),
		slog.String("format", string(format)),
		slog.Int64("size", fileHeader.Size),
	)

	report, err := h.batchSvc.Ingest(c.Request.Context(), fileBytes, format)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnsupportedFormat) {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Batch ingestion failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to ingest batch"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// batchFormat resolves the declared format, falling back to the filename
// extension. Unknown values pass through so the pipeline can reject them
// with a proper UnsupportedFormat error.
func batchFormat(declared, filename string) domain.BatchFormat {
	if declared != "" {
		return domain.BatchFormat(strings.ToLower(declared))
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	return domain.BatchFormat(ext)
}

// registerBatchRoutes registers the batch upload route.
func registerBatchRoutes(group *gin.RouterGroup, batchSvc portssvc.BatchSvcFacade, maxFileSize int64, rateLimit gin.HandlerFunc) {
	handler := newBatchHandler(batchSvc, maxFileSize)

	batches := group.Group("/batches")
	if rateLimit != nil {
		batches.Use(rateLimit)
	}
	batches.POST("", handler.ingestBatch)
}
