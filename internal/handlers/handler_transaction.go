package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/txledger/internal/core/ports/services"
	"github.com/SscSPs/txledger/internal/dto"
	"github.com/SscSPs/txledger/internal/middleware"
)

// transactionHandler exposes the posting engine over HTTP.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: ts}
}

// registerTransactionRoutes registers routes related to transactions and their entries.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.postTransaction)
		transactions.GET("/:transactionID", h.getTransaction)
		transactions.GET("/:transactionID/entries", h.listEntries)
		transactions.POST("/:transactionID/void", h.voidTransaction)
		transactions.GET("/external/:externalID", h.getTransactionByExternalID)
	}
}

// postTransaction godoc
// @Summary Post a transaction from a template
// @Description Instantiates the template with the given params and commits the balanced result atomically.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   request body dto.PostTransactionRequest true "Template code and parameters"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Parameter errors"
// @Failure 404 {object} map[string]string "Template not found"
// @Failure 409 {object} map[string]string "External id already committed"
// @Failure 422 {object} map[string]string "Unbalanced or referencing unknown accounts/journals"
// @Router /transactions [post]
func (h *transactionHandler) postTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PostTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("tx_template_code", req.TemplateCode))
	tx, err := h.transactionService.PostTransaction(c.Request.Context(), req.TemplateCode, req.Params)
	if err != nil {
		respondError(c, logger, err, "Failed to post transaction")
		return
	}

	logger.Info("Transaction posted", slog.String("transaction_id", tx.TransactionID), slog.Int("entries", len(tx.Entries)))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(tx))
}

// voidTransaction godoc
// @Summary Void a transaction
// @Description Commits the mirror image of the transaction. A transaction can be voided once.
// @Tags transactions
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 201 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Already voided"
// @Router /transactions/{transactionID}/void [post]
func (h *transactionHandler) voidTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")
	logger = logger.With(slog.String("transaction_id", transactionID))

	tx, err := h.transactionService.VoidTransaction(c.Request.Context(), transactionID)
	if err != nil {
		respondError(c, logger, err, "Failed to void transaction")
		return
	}

	logger.Info("Transaction voided", slog.String("void_transaction_id", tx.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(tx))
}

// getTransaction godoc
// @Summary Get a transaction with its entries
// @Tags transactions
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	tx, err := h.transactionService.FindTransactionByID(c.Request.Context(), transactionID)
	if err != nil {
		respondError(c, logger.With(slog.String("transaction_id", transactionID)), err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(tx))
}

// getTransactionByExternalID godoc
// @Summary Get a transaction by its external id
// @Tags transactions
// @Produce  json
// @Param   externalID path string true "External id"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Router /transactions/external/{externalID} [get]
func (h *transactionHandler) getTransactionByExternalID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	externalID := c.Param("externalID")

	tx, err := h.transactionService.FindTransactionByExternalID(c.Request.Context(), externalID)
	if err != nil {
		respondError(c, logger.With(slog.String("external_id", externalID)), err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(tx))
}

// listEntries godoc
// @Summary List the entries of a transaction
// @Tags transactions
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {array} dto.EntryResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Router /transactions/{transactionID}/entries [get]
func (h *transactionHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	entries, err := h.transactionService.ListEntriesByTransaction(c.Request.Context(), transactionID)
	if err != nil {
		respondError(c, logger.With(slog.String("transaction_id", transactionID)), err, "Failed to list entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponses(entries))
}
