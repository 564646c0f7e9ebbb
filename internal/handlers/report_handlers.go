package handlers

import (
	"net/http"

	"stocktrade_backend/internal/models"
	"stocktrade_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// ReportHandler holds the report service.
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

func (h *ReportHandler) respondAggregates(c *gin.Context, aggregates []models.PurchaseAggregate, err error, logContext string) {
	if err != nil {
		handleServiceError(c, err, logContext)
		return
	}
	if aggregates == nil {
		aggregates = []models.PurchaseAggregate{}
	}
	c.JSON(http.StatusOK, gin.H{"data": aggregates})
}

// GetPurchasesByCategory returns the number of purchases per category.
func (h *ReportHandler) GetPurchasesByCategory(c *gin.Context) {
	aggregates, err := h.reportService.PurchasesByCategory()
	h.respondAggregates(c, aggregates, err, "GetPurchasesByCategory: Error from reportService.PurchasesByCategory")
}

// GetQuantityBySupplier returns the total quantity bought per supplier.
func (h *ReportHandler) GetQuantityBySupplier(c *gin.Context) {
	aggregates, err := h.reportService.QuantityBySupplier()
	h.respondAggregates(c, aggregates, err, "GetQuantityBySupplier: Error from reportService.QuantityBySupplier")
}

// GetQuantityByProduct returns the total quantity bought per product.
func (h *ReportHandler) GetQuantityByProduct(c *gin.Context) {
	aggregates, err := h.reportService.QuantityByProduct()
	h.respondAggregates(c, aggregates, err, "GetQuantityByProduct: Error from reportService.QuantityByProduct")
}
