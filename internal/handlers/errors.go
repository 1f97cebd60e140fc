package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/txledger/internal/apperrors"
)

// respondError writes the status mapped from err. Client errors echo the error text;
// server errors are logged and replaced with publicMsg.
func respondError(c *gin.Context, logger *slog.Logger, err error, publicMsg string) {
	status := apperrors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		logger.Error(publicMsg, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": publicMsg})
		return
	}
	logger.Warn(publicMsg, slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, gin.H{"error": err.Error()})
}
