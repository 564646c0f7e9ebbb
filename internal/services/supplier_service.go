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

const (
	supplierListRoute = "/supplier-page"
	supplierAddRoute  = "/add-supplier-page"
	supplierEditRoute = "/edit-supplier-page/%d"
)

// --- Supplier DTOs ---

type CreateSupplierRequest struct {
	Name    string  `json:"name" binding:"required"`
	Address *string `json:"address"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
}

type UpdateSupplierRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
}

// --- SupplierService Interface ---
type SupplierService interface {
	Create(req CreateSupplierRequest) (*models.Supplier, error)
	GetByID(supplierID int64) (*models.Supplier, error)
	GetAll(page, pageSize int) ([]models.Supplier, int, error)
	Update(supplierID int64, req UpdateSupplierRequest) (*models.Supplier, error)
	Delete(supplierID int64) error
}

// --- supplierService Implementation ---
type supplierService struct {
	supplierRepo repositories.SupplierRepository
	productRepo  repositories.ProductRepository
	db           repositories.SQLExecutor
	txm          repositories.TxManager
}

// NewSupplierService creates a new instance of SupplierService.
func NewSupplierService(
	supplierRepo repositories.SupplierRepository,
	productRepo repositories.ProductRepository,
	db repositories.SQLExecutor,
	txm repositories.TxManager,
) SupplierService {
	return &supplierService{
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		db:           db,
		txm:          txm,
	}
}

func validateSupplierEmail(email *string, route string) error {
	if email == nil || *email == "" {
		return nil
	}
	if !utils.IsValidEmail(strings.TrimSpace(*email)) {
		return NewValidationFailure("Email format is invalid.", route)
	}
	return nil
}

func (s *supplierService) Create(req CreateSupplierRequest) (*models.Supplier, error) {
	if err := validateEntityName(req.Name, supplierAddRoute); err != nil {
		return nil, err
	}
	if err := validateSupplierEmail(req.Email, supplierAddRoute); err != nil {
		return nil, err
	}

	exists, err := s.supplierRepo.ExistsByName(req.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check supplier name uniqueness: %w", err)
	}
	if exists {
		return nil, NewNameConflictFailure("A supplier with this name already exists. Please choose a different name.", supplierAddRoute)
	}

	supplier := &models.Supplier{
		Name:    strings.TrimSpace(req.Name),
		Address: req.Address,
		Email:   req.Email,
		Phone:   req.Phone,
	}
	if _, err := s.supplierRepo.Create(s.db, supplier); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, NewNameConflictFailure("A supplier with this name already exists. Please choose a different name.", supplierAddRoute)
		}
		return nil, fmt.Errorf("failed to create supplier in repository: %w", err)
	}
	return supplier, nil
}

func (s *supplierService) GetByID(supplierID int64) (*models.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(supplierID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewNotFoundFailure(fmt.Sprintf("Could not find any supplier with ID %d.", supplierID), supplierListRoute)
		}
		return nil, fmt.Errorf("failed to get supplier by ID from repository: %w", err)
	}
	return supplier, nil
}

func (s *supplierService) GetAll(page, pageSize int) ([]models.Supplier, int, error) {
	suppliers, totalCount, err := s.supplierRepo.GetAll(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get suppliers: %w", err)
	}
	return suppliers, totalCount, nil
}

func (s *supplierService) Update(supplierID int64, req UpdateSupplierRequest) (*models.Supplier, error) {
	editRoute := fmt.Sprintf(supplierEditRoute, supplierID)

	supplier, err := s.supplierRepo.GetByID(supplierID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewNotFoundFailure(fmt.Sprintf("Could not find any supplier with ID %d.", supplierID), editRoute)
		}
		return nil, fmt.Errorf("failed to fetch supplier for update: %w", err)
	}

	if req.Name != nil && *req.Name != "" {
		if err := validateEntityName(*req.Name, editRoute); err != nil {
			return nil, err
		}
		newName := strings.TrimSpace(*req.Name)
		if newName != supplier.Name {
			exists, err := s.supplierRepo.ExistsByName(newName)
			if err != nil {
				return nil, fmt.Errorf("failed to check supplier name uniqueness: %w", err)
			}
			if exists {
				return nil, NewNameConflictFailure("A supplier with this name already exists. Please choose a different name.", editRoute)
			}
		}
		supplier.Name = newName
	}
	if err := validateSupplierEmail(req.Email, editRoute); err != nil {
		return nil, err
	}
	if req.Address != nil {
		supplier.Address = req.Address
	}
	if req.Email != nil {
		supplier.Email = req.Email
	}
	if req.Phone != nil {
		supplier.Phone = req.Phone
	}

	if err := s.supplierRepo.Update(s.db, supplier); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, NewNameConflictFailure("A supplier with this name already exists. Please choose a different name.", editRoute)
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewNotFoundFailure(fmt.Sprintf("Could not find any supplier with ID %d.", supplierID), editRoute)
		}
		return nil, fmt.Errorf("failed to update supplier in repository: %w", err)
	}
	return supplier, nil
}

// Delete removes a supplier unless products still reference it. Existence
// first, reference check second, delete last; the check and delete share a
// transaction.
func (s *supplierService) Delete(supplierID int64) error {
	if _, err := s.supplierRepo.GetByID(supplierID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return NewNotFoundFailure(fmt.Sprintf("Could not find any supplier with ID %d.", supplierID), supplierListRoute)
		}
		return fmt.Errorf("failed to fetch supplier for deletion: %w", err)
	}

	return s.txm.WithinTx(func(executor repositories.SQLExecutor) error {
		inUse, err := s.productRepo.ExistsBySupplierID(executor, supplierID)
		if err != nil {
			return fmt.Errorf("failed to check products for supplier: %w", err)
		}
		if inUse {
			metrics.RecordBlockedDelete("supplier")
			return NewForeignKeyConflictFailure("The supplier cannot be deleted because it has associated products.", supplierListRoute)
		}
		if err := s.supplierRepo.Delete(executor, supplierID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return NewNotFoundFailure(fmt.Sprintf("Could not find any supplier with ID %d.", supplierID), supplierListRoute)
			}
			return fmt.Errorf("failed to delete supplier: %w", err)
		}
		return nil
	})
}
