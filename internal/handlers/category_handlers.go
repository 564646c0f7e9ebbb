package handlers

import (
	"net/http"
	"strconv"

	"stocktrade_backend/internal/models"
	"stocktrade_backend/internal/services"
	"stocktrade_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CategoryHandler holds the category service.
type CategoryHandler struct {
	categoryService services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(cs services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: cs}
}

// CreateCategory handles the creation of a new category.
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req services.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateCategory: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	category, err := h.categoryService.Create(req)
	if err != nil {
		handleServiceError(c, err, "CreateCategory: Error from categoryService.Create")
		return
	}
	c.JSON(http.StatusCreated, category)
}

// GetCategories handles fetching all categories with pagination.
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	categories, totalCount, err := h.categoryService.GetAll(page, pageSize)
	if err != nil {
		handleServiceError(c, err, "GetCategories: Error from categoryService.GetAll")
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      categories,
		"total":     totalCount,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetCategoryByID handles fetching a single category by ID.
func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	idStr := c.Param("id")
	categoryID, err := utils.StrToInt64(idStr)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid category ID format.", err.Error()))
		return
	}

	category, err := h.categoryService.GetByID(categoryID)
	if err != nil {
		handleServiceError(c, err, "GetCategoryByID: Error from categoryService.GetByID for ID "+idStr)
		return
	}
	c.JSON(http.StatusOK, category)
}

// UpdateCategory handles updating a category.
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	idStr := c.Param("id")
	categoryID, err := utils.StrToInt64(idStr)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid category ID format.", err.Error()))
		return
	}

	var req services.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateCategory: Failed to bind JSON for ID "+idStr)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	category, err := h.categoryService.Update(categoryID, req)
	if err != nil {
		handleServiceError(c, err, "UpdateCategory: Error from categoryService.Update for ID "+idStr)
		return
	}
	c.JSON(http.StatusOK, category)
}

// DeleteCategory handles deleting a category. The delete is refused while
// products still reference the category.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	idStr := c.Param("id")
	categoryID, err := utils.StrToInt64(idStr)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid category ID format.", err.Error()))
		return
	}

	if err := h.categoryService.Delete(categoryID); err != nil {
		handleServiceError(c, err, "DeleteCategory: Error from categoryService.Delete for ID "+idStr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
