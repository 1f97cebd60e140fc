package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/txledger/internal/core/ports/services"
	"github.com/SscSPs/txledger/internal/dto"
	"github.com/SscSPs/txledger/internal/middleware"
)

// entryHandler serves the entry listings of accounts and journals.
type entryHandler struct {
	transactionService portssvc.TransactionReaderSvc
}

func newEntryHandler(ts portssvc.TransactionReaderSvc) *entryHandler {
	return &entryHandler{transactionService: ts}
}

// registerEntryRoutes nests the listings under the account and journal resources.
func registerEntryRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionReaderSvc) {
	h := newEntryHandler(transactionService)

	rg.GET("/accounts/:accountID/entries", h.listAccountEntries)
	rg.GET("/journals/:journalID/entries", h.listJournalEntries)
}

type listEntriesFunc func(ctx context.Context, id string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)

// listAccountEntries godoc
// @Summary List the entries posted to an account
// @Tags entries
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   first query int false "Page size" default(20)
// @Param   after query string false "Cursor returned as pageInfo.endCursor"
// @Param   direction query string false "ASC (oldest first, default) or DESC"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{accountID}/entries [get]
func (h *entryHandler) listAccountEntries(c *gin.Context) {
	h.list(c, "accountID", "account_id", h.transactionService.ListEntriesForAccount)
}

// listJournalEntries godoc
// @Summary List the entries posted into a journal
// @Tags entries
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Param   first query int false "Page size" default(20)
// @Param   after query string false "Cursor returned as pageInfo.endCursor"
// @Param   direction query string false "ASC (oldest first, default) or DESC"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 404 {object} map[string]string "Journal not found"
// @Router /journals/{journalID}/entries [get]
func (h *entryHandler) listJournalEntries(c *gin.Context) {
	h.list(c, "journalID", "journal_id", h.transactionService.ListEntriesForJournal)
}

func (h *entryHandler) list(c *gin.Context, param, logKey string, fetch listEntriesFunc) {
	id := c.Param(param)
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String(logKey, id))

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for entry listing", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	res, err := fetch(c.Request.Context(), id, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list entries")
		return
	}
	c.JSON(http.StatusOK, res)
}
