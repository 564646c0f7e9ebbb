package services

import (
	"errors"
	"fmt"
	"strings"

	"stocktrade_backend/internal/models"
	"stocktrade_backend/internal/repositories"
)

const (
	productListRoute = "/product-page"
	productAddRoute  = "/add-product-page"
	productEditRoute = "/edit-product-page/%d"
)

// --- Product DTOs ---

type CreateProductRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   *string `json:"description"`
	Price         float64 `json:"price" binding:"required,gte=0"`
	StockQuantity int     `json:"stock_quantity" binding:"gte=0"`
	CategoryID    int64   `json:"category_id" binding:"required"`
	SupplierID    int64   `json:"supplier_id" binding:"required"`
}

type UpdateProductRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price"`
	StockQuantity *int     `json:"stock_quantity"`
	CategoryID    *int64   `json:"category_id"`
	SupplierID    *int64   `json:"supplier_id"`
}

// --- ProductService Interface ---
type ProductService interface {
	Create(req CreateProductRequest) (*models.Product, error)
	GetByID(productID int64) (*models.Product, error)
	GetAll(categoryID *int64, page, pageSize int) ([]models.Product, int, error)
	Update(productID int64, req UpdateProductRequest) (*models.Product, error)
	Delete(productID int64) error
}

type productService struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
	supplierRepo repositories.SupplierRepository
	db           repositories.SQLExecutor
}

// NewProductService creates a new instance of ProductService.
func NewProductService(
	productRepo repositories.ProductRepository,
	categoryRepo repositories.CategoryRepository,
	supplierRepo repositories.SupplierRepository,
	db repositories.SQLExecutor,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
		db:           db,
	}
}

// checkProductReferences verifies that the category and supplier a product
// points at actually exist, so a bad ID surfaces as a routable failure
// instead of a raw foreign key violation from the database.
func (s *productService) checkProductReferences(categoryID, supplierID int64, route string) error {
	if _, err := s.categoryRepo.GetByID(categoryID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return NewNotFoundFailure(fmt.Sprintf("Could not find any category with ID %d.", categoryID), route)
		}
		return fmt.Errorf("failed to check category reference: %w", err)
	}
	if _, err := s.supplierRepo.GetByID(supplierID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return NewNotFoundFailure(fmt.Sprintf("Could not find any supplier with ID %d.", supplierID), route)
		}
		return fmt.Errorf("failed to check supplier reference: %w", err)
	}
	return nil
}

func (s *productService) Create(req CreateProductRequest) (*models.Product, error) {
	if err := validateEntityName(req.Name, productAddRoute); err != nil {
		return nil, err
	}
	if req.Price < 0 {
		return nil, NewValidationFailure("Price must not be negative.", productAddRoute)
	}
	if req.StockQuantity < 0 {
		return nil, NewValidationFailure("Stock quantity must not be negative.", productAddRoute)
	}
	if err := s.checkProductReferences(req.CategoryID, req.SupplierID, productAddRoute); err != nil {
		return nil, err
	}

	exists, err := s.productRepo.ExistsByName(req.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check product name uniqueness: %w", err)
	}
	if exists {
		return nil, NewNameConflictFailure("A product with this name already exists. Please choose a different name.", productAddRoute)
	}

	product := &models.Product{
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		CategoryID:    req.CategoryID,
		SupplierID:    req.SupplierID,
	}
	if _, err := s.productRepo.Create(s.db, product); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, NewNameConflictFailure("A product with this name already exists. Please choose a different name.", productAddRoute)
		}
		return nil, fmt.Errorf("failed to create product in repository: %w", err)
	}
	return product, nil
}

func (s *productService) GetByID(productID int64) (*models.Product, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewNotFoundFailure(fmt.Sprintf("Could not find any product with ID %d.", productID), productListRoute)
		}
		return nil, fmt.Errorf("failed to get product by ID from repository: %w", err)
	}
	return product, nil
}

func (s *productService) GetAll(categoryID *int64, page, pageSize int) ([]models.Product, int, error) {
	products, totalCount, err := s.productRepo.GetAll(categoryID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get products: %w", err)
	}
	return products, totalCount, nil
}

func (s *productService) Update(productID int64, req UpdateProductRequest) (*models.Product, error) {
	editRoute := fmt.Sprintf(productEditRoute, productID)

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewNotFoundFailure(fmt.Sprintf("Could not find any product with ID %d.", productID), editRoute)
		}
		return nil, fmt.Errorf("failed to fetch product for update: %w", err)
	}

	if req.Name != nil && *req.Name != "" {
		if err := validateEntityName(*req.Name, editRoute); err != nil {
			return nil, err
		}
		newName := strings.TrimSpace(*req.Name)
		if newName != product.Name {
			exists, err := s.productRepo.ExistsByName(newName)
			if err != nil {
				return nil, fmt.Errorf("failed to check product name uniqueness: %w", err)
			}
			if exists {
				return nil, NewNameConflictFailure("A product with this name already exists. Please choose a different name.", editRoute)
			}
		}
		product.Name = newName
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, NewValidationFailure("Price must not be negative.", editRoute)
		}
		product.Price = *req.Price
	}
	if req.StockQuantity != nil {
		if *req.StockQuantity < 0 {
			return nil, NewValidationFailure("Stock quantity must not be negative.", editRoute)
		}
		product.StockQuantity = *req.StockQuantity
	}
	if req.CategoryID != nil {
		product.CategoryID = *req.CategoryID
	}
	if req.SupplierID != nil {
		product.SupplierID = *req.SupplierID
	}
	if req.CategoryID != nil || req.SupplierID != nil {
		if err := s.checkProductReferences(product.CategoryID, product.SupplierID, editRoute); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Update(s.db, product); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, NewNameConflictFailure("A product with this name already exists. Please choose a different name.", editRoute)
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewNotFoundFailure(fmt.Sprintf("Could not find any product with ID %d.", productID), editRoute)
		}
		return nil, fmt.Errorf("failed to update product in repository: %w", err)
	}
	return product, nil
}

func (s *productService) Delete(productID int64) error {
	if err := s.productRepo.Delete(s.db, productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return NewNotFoundFailure(fmt.Sprintf("Could not find any product with ID %d.", productID), productListRoute)
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}
