package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/entrybatch/journal_entry_app/internal/apperrors"
	portssvc "github.com/entrybatch/journal_entry_app/internal/core/ports/services"
	"github.com/entrybatch/journal_entry_app/internal/dto"
	"github.com/entrybatch/journal_entry_app/internal/middleware"
)

// entryHandler handles HTTP requests for journal entries: on-demand
// validation, draft creation and workflow transitions.
type entryHandler struct {
	entrySvc      portssvc.EntrySvcFacade
	validationSvc portssvc.ValidationSvcFacade
	workflowSvc   portssvc.WorkflowSvcFacade
}

func newEntryHandler(entrySvc portssvc.EntrySvcFacade, validationSvc portssvc.ValidationSvcFacade, workflowSvc portssvc.WorkflowSvcFacade) *entryHandler {
	return &entryHandler{
		entrySvc:      entrySvc,
		validationSvc: validationSvc,
		workflowSvc:   workflowSvc,
	}
}

// actorID extracts the acting user for audit fields. Authentication lives in
// front of this service; the header is whatever identity the gateway passed.
func actorID(c *gin.Context) string {
	if actor := c.GetHeader("X-Actor-ID"); actor != "" {
		return actor
	}
	return "system"
}

// validateEntry godoc
// @Summary Validate a journal entry
// @Description Runs header, line and balance validation without storing anything. Always returns 200 with the structured result; an invalid entry is a result, not an HTTP error.
// @Tags entries
// @Accept json
// @Produce json
// @Param entry body dto.ValidateEntryRequest true "Entry to validate"
// @Success 200 {object} domain.ValidationResult
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /entries/validate [post]
func (h *entryHandler) validateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ValidateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for validateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.validationSvc.ValidateEntryLive(c.Request.Context(), req.ToDomainEntry())
	if err != nil {
		logger.Error("Failed to validate entry", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate entry"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// createEntry godoc
// @Summary Create a journal entry draft
// @Description Stores a new entry in DRAFT status along with its validation verdict
// @Tags entries
// @Accept json
// @Produce json
// @Param entry body dto.CreateEntryRequest true "Entry draft"
// @Success 201 {object} dto.CreateEntryResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 409 {object} map[string]string "Reference already exists"
// @Router /entries [post]
func (h *entryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entry, result, err := h.entrySvc.CreateDraft(c.Request.Context(), req, actorID(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create entry draft", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry"})
		return
	}

	c.JSON(http.StatusCreated, dto.CreateEntryResponse{
		Entry:  dto.ToEntryResponse(entry),
		Result: result,
	})
}

// getEntry godoc
// @Summary Get a journal entry
// @Description Retrieves an entry and its lines by ID
// @Tags entries
// @Produce json
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /entries/{entryID} [get]
func (h *entryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	entry, err := h.entrySvc.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		logger.Error("Failed to get entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve entry"})
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Tags entries
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.EntryResponse
// @Router /entries [get]
func (h *entryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	entries, err := h.entrySvc.ListEntries(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}

	responses := make([]dto.EntryResponse, len(entries))
	for i := range entries {
		responses[i] = dto.ToEntryResponse(&entries[i])
	}
	c.JSON(http.StatusOK, responses)
}

// transitionEntry godoc
// @Summary Move an entry through the approval workflow
// @Description Applies a workflow transition. Transitions into PENDING_APPROVAL or POSTED re-validate the entry at the moment of transition.
// @Tags entries
// @Accept json
// @Produce json
// @Param entryID path string true "Entry ID"
// @Param transition body dto.TransitionRequest true "Target status"
// @Success 200 {object} dto.TransitionResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Illegal transition"
// @Router /entries/{entryID}/transitions [post]
func (h *entryHandler) transitionEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for transitionEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entry, err := h.entrySvc.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		logger.Error("Failed to load entry for transition", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve entry"})
		return
	}

	updated, err := h.workflowSvc.Transition(c.Request.Context(), entry, req.TargetStatus, actorID(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrIllegalTransition) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to apply transition", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply transition"})
		return
	}

	c.JSON(http.StatusOK, dto.TransitionResponse{Entry: dto.ToEntryResponse(updated)})
}

// registerEntryRoutes registers journal entry routes.
func registerEntryRoutes(group *gin.RouterGroup, entrySvc portssvc.EntrySvcFacade, validationSvc portssvc.ValidationSvcFacade, workflowSvc portssvc.WorkflowSvcFacade) {
	handler := newEntryHandler(entrySvc, validationSvc, workflowSvc)

	entries := group.Group("/entries")
	{
		entries.POST("", handler.createEntry)
		entries.GET("", handler.listEntries)
		entries.POST("/validate", handler.validateEntry)
		entries.GET("/:entryID", handler.getEntry)
		entries.POST("/:entryID/transitions", handler.transitionEntry)
	}
}
