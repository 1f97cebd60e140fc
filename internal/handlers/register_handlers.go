package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	portssvc "github.com/SscSPs/txledger/internal/core/ports/services"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// Extra middleware (rate limiting, CORS) is applied to the /api/v1 group by the caller.
func RegisterRoutes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
	v1Middleware ...gin.HandlerFunc,
) {
	RegisterValidators()
	// Keep template parameters exact: numbers in request bodies decode as json.Number.
	binding.EnableDecoderUseNumber = true

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	v1 := r.Group("/api/v1", v1Middleware...)

	registerAccountRoutes(v1, services.Account)
	registerJournalRoutes(v1, services.Journal)
	registerTxTemplateRoutes(v1, services.TxTemplate)
	registerTransactionRoutes(v1, services.Transaction)
	registerEntryRoutes(v1, services.Transaction)
	registerBalanceRoutes(v1, services.Balance)
	if services.Outbox != nil {
		registerOutboxRoutes(v1, services.Outbox)
	}
}
