package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/modulerp/ledgercore/internal/apperrors"
	"github.com/modulerp/ledgercore/internal/core/domain"
	portssvc "github.com/modulerp/ledgercore/internal/core/ports/services"
	"github.com/modulerp/ledgercore/internal/dto"
	"github.com/modulerp/ledgercore/internal/middleware"
)

// universalJournalHandler handles HTTP requests against the federated
// universal journal.
type universalJournalHandler struct {
	journalService  portssvc.UniversalJournalSvcFacade
	exportBatchSize int
}

// newUniversalJournalHandler creates a new universalJournalHandler.
func newUniversalJournalHandler(journalService portssvc.UniversalJournalSvcFacade, exportBatchSize int) *universalJournalHandler {
	return &universalJournalHandler{
		journalService:  journalService,
		exportBatchSize: exportBatchSize,
	}
}

// queryUniversalJournal godoc
// @Summary Query the universal journal
// @Description Runs a federated query across the native store and the subledger sources, returning one page of the globally ordered result set
// @Tags universal-journal
// @Accept json
// @Produce json
// @Param body body dto.UniversalJournalQueryRequest true "Filter, page and ordering"
// @Success 200 {object} dto.UniversalJournalQueryResponse
// @Router /universal-journal/query [post]
func (h *universalJournalHandler) queryUniversalJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UniversalJournalQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for queryUniversalJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entries, page, err := h.journalService.Query(c.Request.Context(), req.Filter, req.Page, req.OrderBy)
	if err != nil {
		logger.Error("Federated query failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query universal journal"})
		return
	}

	c.JSON(http.StatusOK, dto.UniversalJournalQueryResponse{Entries: entries, Page: page})
}

// aggregateUniversalJournal godoc
// @Summary Aggregate the universal journal
// @Description Computes a group-by-sum over the filtered federated entries
// @Tags universal-journal
// @Accept json
// @Produce json
// @Param body body dto.AggregateRequest true "Filter, dimensions and measure"
// @Success 200 {object} dto.AggregateResponse
// @Router /universal-journal/aggregate [post]
func (h *universalJournalHandler) aggregateUniversalJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AggregateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for aggregateUniversalJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	rows, err := h.journalService.Aggregate(c.Request.Context(), req.Filter, req.Dimensions, req.MeasureField)
	if err != nil {
		logger.Error("Federated aggregation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate universal journal"})
		return
	}

	c.JSON(http.StatusOK, dto.AggregateResponse{Rows: rows})
}

// getUniversalJournalEntry godoc
// @Summary Look up one universal journal entry
// @Description Point lookup by the composite natural key; the native store is consulted first, then the federated sources
// @Tags universal-journal
// @Produce json
// @Param companyCode path string true "Company code"
// @Param fiscalYear path int true "Fiscal year"
// @Param documentNumber path string true "Document number"
// @Param documentLine path int true "Document line"
// @Param ledger query string false "Ledger, defaults to the leading ledger"
// @Success 200 {object} domain.UniversalJournalEntry
// @Router /universal-journal/entries/{companyCode}/{fiscalYear}/{documentNumber}/{documentLine} [get]
func (h *universalJournalHandler) getUniversalJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fiscalYear, err := strconv.Atoi(c.Param("fiscalYear"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fiscal year"})
		return
	}
	documentLine, err := strconv.Atoi(c.Param("documentLine"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document line"})
		return
	}
	ledger := c.DefaultQuery("ledger", domain.DefaultLedger)

	key := domain.UniversalJournalKey{
		Ledger:         ledger,
		CompanyCode:    c.Param("companyCode"),
		FiscalYear:     fiscalYear,
		DocumentNumber: c.Param("documentNumber"),
		DocumentLine:   documentLine,
	}
	entry, err := h.journalService.GetByKey(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Universal journal entry not found"})
			return
		}
		logger.Error("Key lookup failed", slog.String("error", err.Error()), slog.String("document_number", key.DocumentNumber))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve universal journal entry"})
		return
	}

	c.JSON(http.StatusOK, entry)
}

// exportUniversalJournal godoc
// @Summary Export the universal journal
// @Description Streams the complete filtered result set as newline-delimited JSON
// @Tags universal-journal
// @Accept json
// @Produce application/x-ndjson
// @Param body body dto.UniversalJournalQueryRequest true "Filter and ordering; the page window is ignored"
// @Success 200 {string} string "NDJSON stream"
// @Router /universal-journal/export [post]
func (h *universalJournalHandler) exportUniversalJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UniversalJournalQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for exportUniversalJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	batches, errc := h.journalService.StreamBatched(c.Request.Context(), req.Filter, req.OrderBy, h.exportBatchSize)

	c.Header("Content-Type", "application/x-ndjson")
	c.Status(http.StatusOK)

	encoder := json.NewEncoder(c.Writer)
	for batch := range batches {
		for i := range batch {
			if err := encoder.Encode(&batch[i]); err != nil {
				// Client went away mid-stream; nothing sensible left to send.
				logger.Warn("Export stream write failed", slog.String("error", err.Error()))
				return
			}
		}
		c.Writer.Flush()
	}
	if err := <-errc; err != nil {
		// Headers are already out; all we can do is log and cut the stream.
		logger.Error("Export stream aborted", slog.String("error", err.Error()))
	}
}

// registerUniversalJournalRoutes registers federated query routes
func registerUniversalJournalRoutes(group *gin.RouterGroup, journalService portssvc.UniversalJournalSvcFacade, exportBatchSize int) {
	handler := newUniversalJournalHandler(journalService, exportBatchSize)

	uj := group.Group("/universal-journal")
	{
		uj.POST("/query", handler.queryUniversalJournal)
		uj.POST("/aggregate", handler.aggregateUniversalJournal)
		uj.POST("/export", handler.exportUniversalJournal)
		uj.GET("/entries/:companyCode/:fiscalYear/:documentNumber/:documentLine", handler.getUniversalJournalEntry)
	}
}
