package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/modulerp/ledgercore/internal/apperrors"
	"github.com/modulerp/ledgercore/internal/core/domain"
	portssvc "github.com/modulerp/ledgercore/internal/core/ports/services"
	"github.com/modulerp/ledgercore/internal/dto"
	"github.com/modulerp/ledgercore/internal/middleware"
)

// journalEntryHandler handles HTTP requests for the journal entry lifecycle.
type journalEntryHandler struct {
	entryService portssvc.JournalEntrySvcFacade
}

// newJournalEntryHandler creates a new journalEntryHandler.
func newJournalEntryHandler(entryService portssvc.JournalEntrySvcFacade) *journalEntryHandler {
	return &journalEntryHandler{
		entryService: entryService,
	}
}

// callerIdentity extracts the authenticated user and tenant from the request
// context. It aborts with 401 when either is missing.
func callerIdentity(c *gin.Context) (userID, tenantID string, ok bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok = middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", "", false
	}
	tenantID, ok = middleware.GetTenantIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Tenant ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", "", false
	}
	return userID, tenantID, true
}

// respondEntryError translates service errors into HTTP responses shared by the
// lifecycle endpoints.
func respondEntryError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var balanceErr *domain.BalanceError
	var ledgerBalanceErr *domain.LedgerBalanceError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Journal entry not found"})
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, domain.ErrEmptyLines):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &balanceErr), errors.As(err, &ledgerBalanceErr):
		logger.Warn("Balance check failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrAlreadyPosted),
		errors.Is(err, domain.ErrNotPosted):
		logger.Warn("Illegal lifecycle transition", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// createJournalEntry godoc
// @Summary Create a journal entry draft
// @Description Creates a new journal entry in Draft status with its line items
// @Tags journal-entries
// @Accept json
// @Produce json
// @Param entry body dto.CreateJournalEntryRequest true "Journal entry"
// @Success 201 {object} dto.JournalEntryResponse
// @Router /journal-entries [post]
func (h *journalEntryHandler) createJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createJournalEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	entry, err := h.entryService.CreateJournalEntry(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondEntryError(c, err, "Failed to create journal entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// getJournalEntry godoc
// @Summary Get a journal entry
// @Description Retrieves a journal entry and its line items by ID
// @Tags journal-entries
// @Produce json
// @Param journalEntryID path string true "Journal entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Router /journal-entries/{journalEntryID} [get]
func (h *journalEntryHandler) getJournalEntry(c *gin.Context) {
	_, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	entry, err := h.entryService.GetJournalEntryByID(c.Request.Context(), tenantID, c.Param("journalEntryID"))
	if err != nil {
		respondEntryError(c, err, "Failed to retrieve journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listJournalEntries godoc
// @Summary List journal entries
// @Description Retrieves a token-paginated list of entries for a company code
// @Tags journal-entries
// @Produce json
// @Param companyCode query string true "Company code"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Continuation token"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Router /journal-entries [get]
func (h *journalEntryHandler) listJournalEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for listJournalEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	_, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	resp, err := h.entryService.ListJournalEntries(c.Request.Context(), tenantID, params)
	if err != nil {
		respondEntryError(c, err, "Failed to list journal entries")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// parkJournalEntry godoc
// @Summary Park a journal entry
// @Description Moves a balanced draft entry to Parked status
// @Tags journal-entries
// @Produce json
// @Param journalEntryID path string true "Journal entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Router /journal-entries/{journalEntryID}/park [post]
func (h *journalEntryHandler) parkJournalEntry(c *gin.Context) {
	userID, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	entry, err := h.entryService.ParkJournalEntry(c.Request.Context(), tenantID, c.Param("journalEntryID"), userID)
	if err != nil {
		respondEntryError(c, err, "Failed to park journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// postJournalEntry godoc
// @Summary Post a journal entry
// @Description Posts a balanced entry, assigning its document number
// @Tags journal-entries
// @Accept json
// @Produce json
// @Param journalEntryID path string true "Journal entry ID"
// @Param body body dto.PostJournalEntryRequest false "Optional explicit document number"
// @Success 200 {object} dto.JournalEntryResponse
// @Router /journal-entries/{journalEntryID}/post [post]
func (h *journalEntryHandler) postJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostJournalEntryRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Error("Failed to bind JSON for postJournalEntry", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
	}

	userID, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	entry, err := h.entryService.PostJournalEntry(c.Request.Context(), tenantID, c.Param("journalEntryID"), req.DocumentNumber, userID)
	if err != nil {
		respondEntryError(c, err, "Failed to post journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// reverseJournalEntry godoc
// @Summary Reverse a posted journal entry
// @Description Creates and posts a mirrored reversal entry and marks the original Reversed
// @Tags journal-entries
// @Accept json
// @Produce json
// @Param journalEntryID path string true "Journal entry ID"
// @Param body body dto.ReverseJournalEntryRequest true "Reversal date"
// @Success 201 {object} dto.JournalEntryResponse "The reversal entry"
// @Router /journal-entries/{journalEntryID}/reverse [post]
func (h *journalEntryHandler) reverseJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ReverseJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for reverseJournalEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	reversal, err := h.entryService.ReverseJournalEntry(c.Request.Context(), tenantID, c.Param("journalEntryID"), req, userID)
	if err != nil {
		respondEntryError(c, err, "Failed to reverse journal entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(reversal))
}

// updateJournalEntry godoc
// @Summary Update a journal entry
// @Description Updates header fields and/or replaces the line set of a Draft or Parked entry
// @Tags journal-entries
// @Accept json
// @Produce json
// @Param journalEntryID path string true "Journal entry ID"
// @Param body body dto.UpdateJournalEntryRequest true "Fields to update"
// @Success 200 {object} dto.JournalEntryResponse
// @Router /journal-entries/{journalEntryID} [put]
func (h *journalEntryHandler) updateJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updateJournalEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, tenantID, ok := callerIdentity(c)
	if !ok {
		return
	}

	entry, err := h.entryService.UpdateJournalEntry(c.Request.Context(), tenantID, c.Param("journalEntryID"), req, userID)
	if err != nil {
		respondEntryError(c, err, "Failed to update journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// registerJournalEntryRoutes registers journal entry specific routes
func registerJournalEntryRoutes(group *gin.RouterGroup, entryService portssvc.JournalEntrySvcFacade) {
	handler := newJournalEntryHandler(entryService)

	entries := group.Group("/journal-entries")
	{
		entries.POST("", handler.createJournalEntry)
		entries.GET("", handler.listJournalEntries)
		entries.GET("/:journalEntryID", handler.getJournalEntry)
		entries.PUT("/:journalEntryID", handler.updateJournalEntry)
		entries.POST("/:journalEntryID/park", handler.parkJournalEntry)
		entries.POST("/:journalEntryID/post", handler.postJournalEntry)
		entries.POST("/:journalEntryID/reverse", handler.reverseJournalEntry)
	}
}
