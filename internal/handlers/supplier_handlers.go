package handlers

import (
	"net/http"
	"strconv"

	"stocktrade_backend/internal/models"
	"stocktrade_backend/internal/services"
	"stocktrade_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SupplierHandler holds the supplier service.
type SupplierHandler struct {
	supplierService services.SupplierService
}

// NewSupplierHandler creates a new SupplierHandler.
func NewSupplierHandler(ss services.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: ss}
}

// CreateSupplier handles the creation of a new supplier.
func (h *SupplierHandler) CreateSupplier(c *gin.Context) {
	var req services.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateSupplier: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	supplier, err := h.supplierService.Create(req)
	if err != nil {
		handleServiceError(c, err, "CreateSupplier: Error from supplierService.Create")
		return
	}
	c.JSON(http.StatusCreated, supplier)
}

// GetSuppliers handles fetching all suppliers with pagination.
func (h *SupplierHandler) GetSuppliers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	suppliers, totalCount, err := h.supplierService.GetAll(page, pageSize)
	if err != nil {
		handleServiceError(c, err, "GetSuppliers: Error from supplierService.GetAll")
		return
	}
	if suppliers == nil {
		suppliers = []models.Supplier{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      suppliers,
		"total":     totalCount,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetSupplierByID handles fetching a single supplier by ID.
func (h *SupplierHandler) GetSupplierByID(c *gin.Context) {
	idStr := c.Param("id")
	supplierID, err := utils.StrToInt64(idStr)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid supplier ID format.", err.Error()))
		return
	}

	supplier, err := h.supplierService.GetByID(supplierID)
	if err != nil {
		handleServiceError(c, err, "GetSupplierByID: Error from supplierService.GetByID for ID "+idStr)
		return
	}
	c.JSON(http.StatusOK, supplier)
}

// UpdateSupplier handles updating a supplier.
func (h *SupplierHandler) UpdateSupplier(c *gin.Context) {
	idStr := c.Param("id")
	supplierID, err := utils.StrToInt64(idStr)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid supplier ID format.", err.Error()))
		return
	}

	var req services.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateSupplier: Failed to bind JSON for ID "+idStr)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	supplier, err := h.supplierService.Update(supplierID, req)
	if err != nil {
		handleServiceError(c, err, "UpdateSupplier: Error from supplierService.Update for ID "+idStr)
		return
	}
	c.JSON(http.StatusOK, supplier)
}

// DeleteSupplier handles deleting a supplier. The delete is refused while
// products still reference the supplier.
func (h *SupplierHandler) DeleteSupplier(c *gin.Context) {
	idStr := c.Param("id")
	supplierID, err := utils.StrToInt64(idStr)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid supplier ID format.", err.Error()))
		return
	}

	if err := h.supplierService.Delete(supplierID); err != nil {
		handleServiceError(c, err, "DeleteSupplier: Error from supplierService.Delete for ID "+idStr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Supplier deleted successfully"})
}
