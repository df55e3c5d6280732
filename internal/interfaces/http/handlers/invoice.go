// internal/interfaces/http/handlers/invoice.go
package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/commerce-api/internal/domain/order"
)

// OrderReader loads a single order with its lines
type OrderReader interface {
	GetOrder(ctx context.Context, id uint) (*order.OrderDetail, error)
}

// InvoiceRenderer turns an order into an invoice document
type InvoiceRenderer interface {
	RenderHTML(o *order.OrderDetail) (string, error)
	GenerateInvoice(o *order.OrderDetail) (*bytes.Buffer, error)
}

// InvoiceHandler handles invoice-related endpoints
type InvoiceHandler struct {
	orders   OrderReader
	renderer InvoiceRenderer
	logger   *logrus.Logger
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(orders OrderReader, renderer InvoiceRenderer, logger *logrus.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		orders:   orders,
		renderer: renderer,
		logger:   logger,
	}
}

// GenerateInvoice handles GET /orders/:id/invoice. format=html returns the
// markup instead of the PDF.
func (h *InvoiceHandler) GenerateInvoice(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	detail, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if c.Query("format") == "html" {
		html, err := h.renderer.RenderHTML(detail)
		if err != nil {
			h.logger.WithError(err).WithField("order_id", id).Error("Failed to render invoice")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to generate invoice",
			})
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
		return
	}

	pdfBuffer, err := h.renderer.GenerateInvoice(detail)
	if err != nil {
		h.logger.WithError(err).WithField("order_id", id).Error("Failed to generate invoice")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate invoice",
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%s.pdf", detail.OrderNumber))
	c.Header("Content-Length", strconv.Itoa(pdfBuffer.Len()))
	c.Data(http.StatusOK, "application/pdf", pdfBuffer.Bytes())
}
