package handlers

import (
	"net/http"

	"stocktrade_backend/internal/models"
	"stocktrade_backend/internal/services"
	"stocktrade_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PurchaseHandler holds the purchase service.
type PurchaseHandler struct {
	purchaseService services.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler.
func NewPurchaseHandler(ps services.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: ps}
}

// CreatePurchase records an incoming delivery: the purchase header, its line
// items and the stock increments for every listed product.
func (h *PurchaseHandler) CreatePurchase(c *gin.Context) {
	var req services.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreatePurchase: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	purchase, err := h.purchaseService.Create(req)
	if err != nil {
		handleServiceError(c, err, "CreatePurchase: Error from purchaseService.Create")
		return
	}
	c.JSON(http.StatusCreated, purchase)
}

// GetPurchases handles fetching purchases with optional supplier and date
// filters plus pagination.
func (h *PurchaseHandler) GetPurchases(c *gin.Context) {
	var filters models.PurchaseFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid query parameters: "+err.Error(), err.Error()))
		return
	}
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = 10
	}

	purchases, totalCount, err := h.purchaseService.GetAll(filters)
	if err != nil {
		handleServiceError(c, err, "GetPurchases: Error from purchaseService.GetAll")
		return
	}
	if purchases == nil {
		purchases = []models.Purchase{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      purchases,
		"total":     totalCount,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

// GetPurchaseByID handles fetching a single purchase with its line items.
func (h *PurchaseHandler) GetPurchaseByID(c *gin.Context) {
	idStr := c.Param("id")
	purchaseID, err := utils.StrToInt64(idStr)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid purchase ID format.", err.Error()))
		return
	}

	purchase, err := h.purchaseService.GetByID(purchaseID)
	if err != nil {
		handleServiceError(c, err, "GetPurchaseByID: Error from purchaseService.GetByID for ID "+idStr)
		return
	}
	c.JSON(http.StatusOK, purchase)
}

// DeletePurchase handles deleting a purchase record and its items. Stock
// levels are not adjusted.
func (h *PurchaseHandler) DeletePurchase(c *gin.Context) {
	idStr := c.Param("id")
	purchaseID, err := utils.StrToInt64(idStr)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid purchase ID format.", err.Error()))
		return
	}

	if err := h.purchaseService.Delete(purchaseID); err != nil {
		handleServiceError(c, err, "DeletePurchase: Error from purchaseService.Delete for ID "+idStr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Purchase deleted successfully"})
}
