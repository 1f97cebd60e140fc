package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/txledger/internal/core/domain"
	portssvc "github.com/SscSPs/txledger/internal/core/ports/services"
	"github.com/SscSPs/txledger/internal/dto"
	"github.com/SscSPs/txledger/internal/middleware"
)

// balanceHandler serves the balance ledger.
type balanceHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

func newBalanceHandler(bs portssvc.BalanceSvcFacade) *balanceHandler {
	return &balanceHandler{balanceService: bs}
}

// registerBalanceRoutes registers balance lookups keyed by account, journal and currency.
func registerBalanceRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade) {
	h := newBalanceHandler(balanceService)

	rg.GET("/balances/:accountID", h.listAccountBalances)

	balances := rg.Group("/balances/:accountID/:journalID/:currency")
	{
		balances.GET("", h.getBalance)
		balances.GET("/layers", h.getLayeredBalance)
		balances.GET("/recompute", h.recomputeBalance)
	}
}

// bindBalanceKey binds the path and layer query into a key, writing a 400 on failure.
func bindBalanceKey(c *gin.Context, logger *slog.Logger) (domain.BalanceKey, bool) {
	var uri dto.BalanceURI
	if err := c.ShouldBindUri(&uri); err != nil {
		logger.Warn("Failed to bind balance path", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid balance path: " + err.Error()})
		return domain.BalanceKey{}, false
	}
	var query dto.BalanceQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Failed to bind balance query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return domain.BalanceKey{}, false
	}
	layer := domain.Settled
	if query.Layer != "" {
		// Already constrained by the oneof binding.
		layer, _ = domain.ParseLayer(query.Layer)
	}
	return domain.BalanceKey{AccountID: uri.AccountID, JournalID: uri.JournalID, Currency: uri.Currency, Layer: layer}, true
}

// getBalance godoc
// @Summary Get one balance
// @Description Returns the running balance for one layer (SETTLED by default). Untouched keys report zero.
// @Tags balances
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   journalID path string true "Journal ID"
// @Param   currency path string true "Currency code"
// @Param   layer query string false "SETTLED, PENDING or ENCUMBRANCE"
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} map[string]string "Invalid key"
// @Router /balances/{accountID}/{journalID}/{currency} [get]
func (h *balanceHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	key, ok := bindBalanceKey(c, logger)
	if !ok {
		return
	}

	b, err := h.balanceService.FindBalance(c.Request.Context(), key.AccountID, key.JournalID, key.Currency, key.Layer)
	if err != nil {
		respondError(c, logger.With(slog.String("balance_key", key.String())), err, "Failed to retrieve balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceResponse(b))
}

// getLayeredBalance godoc
// @Summary Get every layer of a balance
// @Tags balances
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   journalID path string true "Journal ID"
// @Param   currency path string true "Currency code"
// @Success 200 {object} dto.LayeredBalanceResponse
// @Router /balances/{accountID}/{journalID}/{currency}/layers [get]
func (h *balanceHandler) getLayeredBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	key, ok := bindBalanceKey(c, logger)
	if !ok {
		return
	}

	lb, err := h.balanceService.FindBalances(c.Request.Context(), key.AccountID, key.JournalID, key.Currency)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve balances")
		return
	}
	c.JSON(http.StatusOK, dto.ToLayeredBalanceResponse(lb))
}

// listAccountBalances godoc
// @Summary List every balance of an account
// @Description One entry per (journal, currency) the account has been posted to, each with all layers.
// @Tags balances
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {array} dto.LayeredBalanceResponse
// @Failure 400 {object} map[string]string "Invalid account ID"
// @Router /balances/{accountID} [get]
func (h *balanceHandler) listAccountBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var uri dto.AccountBalancesURI
	if err := c.ShouldBindUri(&uri); err != nil {
		logger.Warn("Failed to bind balance path", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid balance path: " + err.Error()})
		return
	}

	lbs, err := h.balanceService.FindBalancesByAccount(c.Request.Context(), uri.AccountID)
	if err != nil {
		respondError(c, logger.With(slog.String("account_id", uri.AccountID)), err, "Failed to retrieve balances")
		return
	}
	c.JSON(http.StatusOK, dto.ToLayeredBalanceResponses(lbs))
}

// recomputeBalance godoc
// @Summary Recompute a balance from its entries
// @Description Folds every committed entry for the key from scratch. Use it to audit the running balance.
// @Tags balances
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   journalID path string true "Journal ID"
// @Param   currency path string true "Currency code"
// @Param   layer query string false "SETTLED, PENDING or ENCUMBRANCE"
// @Success 200 {object} dto.BalanceResponse
// @Router /balances/{accountID}/{journalID}/{currency}/recompute [get]
func (h *balanceHandler) recomputeBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	key, ok := bindBalanceKey(c, logger)
	if !ok {
		return
	}

	b, err := h.balanceService.RecomputeBalance(c.Request.Context(), key)
	if err != nil {
		respondError(c, logger.With(slog.String("balance_key", key.String())), err, "Failed to recompute balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceResponse(b))
}
