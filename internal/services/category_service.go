package services

import (
	"errors"
	"fmt"
	"strings"

	"stocktrade_backend/internal/models"
	"stocktrade_backend/internal/repositories"
	"stocktrade_backend/pkg/metrics"
	"stocktrade_backend/pkg/utils"
)

// Recovery routes carried by category failures.
const (
	categoryListRoute = "/category-page"
	categoryAddRoute  = "/add-category-page"
	categoryEditRoute = "/edit-category-page/%d"
)

// --- Category DTOs ---

type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
}

// --- CategoryService Interface ---
type CategoryService interface {
	Create(req CreateCategoryRequest) (*models.Category, error)
	GetByID(categoryID int64) (*models.Category, error)
	GetAll(page, pageSize int) ([]models.Category, int, error)
	Update(categoryID int64, req UpdateCategoryRequest) (*models.Category, error)
	Delete(categoryID int64) error
}

// --- categoryService Implementation ---
type categoryService struct {
	categoryRepo repositories.CategoryRepository
	productRepo  repositories.ProductRepository
	files        FileService
	db           repositories.SQLExecutor
	txm          repositories.TxManager
}

// NewCategoryService creates a new instance of CategoryService.
func NewCategoryService(
	categoryRepo repositories.CategoryRepository,
	productRepo repositories.ProductRepository,
	files FileService,
	db repositories.SQLExecutor,
	txm repositories.TxManager,
) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		files:        files,
		db:           db,
		txm:          txm,
	}
}

func (s *categoryService) Create(req CreateCategoryRequest) (*models.Category, error) {
	if err := validateEntityName(req.Name, categoryAddRoute); err != nil {
		return nil, err
	}

	exists, err := s.categoryRepo.ExistsByName(req.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name uniqueness: %w", err)
	}
	if exists {
		return nil, NewNameConflictFailure("A category with this name already exists. Please choose a different name.", categoryAddRoute)
	}

	category := &models.Category{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Icon:        req.Icon,
	}
	if _, err := s.categoryRepo.Create(s.db, category); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, NewNameConflictFailure("A category with this name already exists. Please choose a different name.", categoryAddRoute)
		}
		return nil, fmt.Errorf("failed to create category in repository: %w", err)
	}
	return category, nil
}

func (s *categoryService) GetByID(categoryID int64) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(categoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewNotFoundFailure(fmt.Sprintf("Could not find any category with ID %d.", categoryID), categoryListRoute)
		}
		return nil, fmt.Errorf("failed to get category by ID from repository: %w", err)
	}
	return category, nil
}

func (s *categoryService) GetAll(page, pageSize int) ([]models.Category, int, error) {
	categories, totalCount, err := s.categoryRepo.GetAll(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, totalCount, nil
}

func (s *categoryService) Update(categoryID int64, req UpdateCategoryRequest) (*models.Category, error) {
	editRoute := fmt.Sprintf(categoryEditRoute, categoryID)

	category, err := s.categoryRepo.GetByID(categoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewNotFoundFailure(fmt.Sprintf("Could not find any category with ID %d.", categoryID), editRoute)
		}
		return nil, fmt.Errorf("failed to fetch category for update: %w", err)
	}

	if req.Name != nil && *req.Name != "" {
		if err := validateEntityName(*req.Name, editRoute); err != nil {
			return nil, err
		}
		newName := strings.TrimSpace(*req.Name)
		// Conflict iff the name actually changed and the new name is taken
		// by another row.
		if newName != category.Name {
			exists, err := s.categoryRepo.ExistsByName(newName)
			if err != nil {
				return nil, fmt.Errorf("failed to check category name uniqueness: %w", err)
			}
			if exists {
				return nil, NewNameConflictFailure("A category with this name already exists. Please choose a different name.", editRoute)
			}
		}
		category.Name = newName
	}
	if req.Description != nil {
		category.Description = req.Description
	}

	var replacedIcon string
	if req.Icon != nil && *req.Icon != "" {
		if category.Icon != nil && *category.Icon != "" && *category.Icon != *req.Icon {
			replacedIcon = *category.Icon
		}
		category.Icon = req.Icon
	}

	if err := s.categoryRepo.Update(s.db, category); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, NewNameConflictFailure("A category with this name already exists. Please choose a different name.", editRoute)
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewNotFoundFailure(fmt.Sprintf("Could not find any category with ID %d.", categoryID), editRoute)
		}
		return nil, fmt.Errorf("failed to update category in repository: %w", err)
	}

	if replacedIcon != "" {
		if err := s.files.Delete(replacedIcon); err != nil {
			utils.LogError(err, "failed to remove replaced category icon")
		}
	}
	return category, nil
}

// Delete removes a category unless products still reference it. The
// existence check runs first, then the reference check, then the delete;
// the latter two share a transaction so a product created concurrently
// cannot slip between check and delete. The icon file is released only
// after the row is gone, and a cleanup error does not undo the delete.
func (s *categoryService) Delete(categoryID int64) error {
	category, err := s.categoryRepo.GetByID(categoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return NewNotFoundFailure(fmt.Sprintf("Could not find any category with ID %d.", categoryID), categoryListRoute)
		}
		return fmt.Errorf("failed to fetch category for deletion: %w", err)
	}

	err = s.txm.WithinTx(func(executor repositories.SQLExecutor) error {
		inUse, err := s.productRepo.ExistsByCategoryID(executor, categoryID)
		if err != nil {
			return fmt.Errorf("failed to check products for category: %w", err)
		}
		if inUse {
			metrics.RecordBlockedDelete("category")
			return NewForeignKeyConflictFailure("The category cannot be deleted because it has associated products.", categoryListRoute)
		}
		if err := s.categoryRepo.Delete(executor, categoryID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return NewNotFoundFailure(fmt.Sprintf("Could not find any category with ID %d.", categoryID), categoryListRoute)
			}
			return fmt.Errorf("failed to delete category: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if category.Icon != nil && *category.Icon != "" {
		if err := s.files.Delete(*category.Icon); err != nil {
			utils.LogError(err, "failed to remove icon for deleted category")
		}
	}
	return nil
}

// validateEntityName enforces the shared naming rule for catalog entities.
func validateEntityName(name, route string) error {
	if len(strings.TrimSpace(name)) < 3 {
		return NewValidationFailure("Name must be at least 3 characters long and cannot be just spaces.", route)
	}
	return nil
}
