package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/txledger/internal/core/ports/services"
	"github.com/SscSPs/txledger/internal/dto"
	"github.com/SscSPs/txledger/internal/middleware"
)

// txTemplateHandler handles HTTP requests against the template registry.
type txTemplateHandler struct {
	txTemplateService portssvc.TxTemplateSvcFacade
}

func newTxTemplateHandler(ts portssvc.TxTemplateSvcFacade) *txTemplateHandler {
	return &txTemplateHandler{txTemplateService: ts}
}

// registerTxTemplateRoutes registers routes related to transaction templates.
func registerTxTemplateRoutes(rg *gin.RouterGroup, txTemplateService portssvc.TxTemplateSvcFacade) {
	h := newTxTemplateHandler(txTemplateService)

	templates := rg.Group("/tx-templates")
	{
		templates.POST("", h.createTxTemplate)
		templates.GET("", h.listTxTemplates)
		templates.GET("/:code", h.getTxTemplateByCode)
		templates.GET("/external/:externalID", h.getTxTemplateByExternalID)
	}
}

// createTxTemplate godoc
// @Summary Register a transaction template
// @Description Parses and validates the template, then stores it. Templates are immutable.
// @Tags tx-templates
// @Accept  json
// @Produce  json
// @Param   template body dto.CreateTxTemplateRequest true "Template definition"
// @Success 201 {object} dto.TxTemplateResponse
// @Failure 400 {object} map[string]string "Invalid template"
// @Failure 409 {object} map[string]string "Code or external id already exists"
// @Router /tx-templates [post]
func (h *txTemplateHandler) createTxTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTxTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTxTemplate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("tx_template_code", req.Code))
	tpl, err := h.txTemplateService.CreateTxTemplate(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to create transaction template")
		return
	}

	logger.Info("Transaction template created", slog.String("tx_template_id", tpl.TxTemplateID))
	c.JSON(http.StatusCreated, dto.ToTxTemplateResponse(tpl))
}

// listTxTemplates godoc
// @Summary List transaction templates
// @Tags tx-templates
// @Produce  json
// @Param   first query int false "Page size" default(20)
// @Param   after query string false "Cursor returned as pageInfo.endCursor"
// @Success 200 {object} dto.ListTxTemplatesResponse
// @Router /tx-templates [get]
func (h *txTemplateHandler) listTxTemplates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListTxTemplatesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListTxTemplates", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	res, err := h.txTemplateService.ListTxTemplates(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list transaction templates")
		return
	}
	c.JSON(http.StatusOK, res)
}

// getTxTemplateByCode godoc
// @Summary Get a transaction template by code
// @Tags tx-templates
// @Produce  json
// @Param   code path string true "Template code"
// @Success 200 {object} dto.TxTemplateResponse
// @Failure 404 {object} map[string]string "Template not found"
// @Router /tx-templates/{code} [get]
func (h *txTemplateHandler) getTxTemplateByCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	tpl, err := h.txTemplateService.FindTxTemplateByCode(c.Request.Context(), code)
	if err != nil {
		respondError(c, logger.With(slog.String("tx_template_code", code)), err, "Failed to retrieve transaction template")
		return
	}
	c.JSON(http.StatusOK, dto.ToTxTemplateResponse(tpl))
}

// getTxTemplateByExternalID godoc
// @Summary Get a transaction template by external id
// @Tags tx-templates
// @Produce  json
// @Param   externalID path string true "Template external id"
// @Success 200 {object} dto.TxTemplateResponse
// @Failure 404 {object} map[string]string "Template not found"
// @Router /tx-templates/external/{externalID} [get]
func (h *txTemplateHandler) getTxTemplateByExternalID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	externalID := c.Param("externalID")

	tpl, err := h.txTemplateService.FindTxTemplateByExternalID(c.Request.Context(), externalID)
	if err != nil {
		respondError(c, logger.With(slog.String("external_id", externalID)), err, "Failed to retrieve transaction template")
		return
	}
	c.JSON(http.StatusOK, dto.ToTxTemplateResponse(tpl))
}
