package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/txledger/internal/core/ports/services"
	"github.com/SscSPs/txledger/internal/dto"
	"github.com/SscSPs/txledger/internal/middleware"
)

type outboxHandler struct {
	outboxService portssvc.OutboxSvc
}

// registerOutboxRoutes exposes the change log to polling consumers.
func registerOutboxRoutes(rg *gin.RouterGroup, outboxService portssvc.OutboxSvc) {
	h := &outboxHandler{outboxService: outboxService}
	rg.GET("/outbox", h.pollEvents)
}

// pollEvents godoc
// @Summary Poll outbox events
// @Tags outbox
// @Produce  json
// @Param   after query int false "Return events with seq greater than this" default(0)
// @Param   limit query int false "Maximum events" default(100)
// @Success 200 {object} dto.PollOutboxResponse
// @Router /outbox [get]
func (h *outboxHandler) pollEvents(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.PollOutboxParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for PollEvents", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	events, err := h.outboxService.PollEvents(c.Request.Context(), params.After, params.Limit)
	if err != nil {
		respondError(c, logger, err, "Failed to poll outbox")
		return
	}
	c.JSON(http.StatusOK, dto.ToPollOutboxResponse(events, params.After))
}
