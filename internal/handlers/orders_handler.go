package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/go-order-ingestor/internal/ingest"
	"github.com/imrishuroy/go-order-ingestor/internal/validation"
)

// Ingester stores a single direct-form order payload. *ingest.Processor implements it.
type Ingester interface {
	Ingest(ctx context.Context, payload validation.OrderPayload) error
	Reject(ctx context.Context, cause error) error
}

// RegisterOrdersRoutes registers routes for the order API.
func RegisterOrdersRoutes(r *gin.Engine, ingester Ingester) {
	r.POST("/orders", func(c *gin.Context) {
		ctx := c.Request.Context()

		// Validation happens in Ingest so every failure is logged and counted once.
		var req validation.OrderPayload
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, ingester.Reject(ctx, err))
			return
		}

		if err := ingester.Ingest(ctx, req); err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": ingest.SuccessMessage, "order_id": *req.OrderID})
	})
}

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, ingest.ErrMissingField) || errors.Is(err, ingest.ErrEnvelopeDecode) {
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": ingest.Kind(err), "detail": err.Error()})
}
