package services

import (
	"errors"
	"fmt"
	"strings"

	"stocktrade_backend/internal/models"
	"stocktrade_backend/internal/repositories"
)

const (
	customerListRoute = "/customer-page"
	customerAddRoute  = "/add-customer-page"
	customerEditRoute = "/edit-customer-page/%d"
)

// --- Customer DTOs ---

type CreateCustomerRequest struct {
	Name    string  `json:"name" binding:"required"`
	Address *string `json:"address"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
}

type UpdateCustomerRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
}

// --- CustomerService Interface ---
type CustomerService interface {
	Create(req CreateCustomerRequest) (*models.Customer, error)
	GetByID(customerID int64) (*models.Customer, error)
	GetAll(page, pageSize int) ([]models.Customer, int, error)
	Update(customerID int64, req UpdateCustomerRequest) (*models.Customer, error)
	Delete(customerID int64) error
}

type customerService struct {
	customerRepo repositories.CustomerRepository
	db           repositories.SQLExecutor
}

// NewCustomerService creates a new instance of CustomerService.
func NewCustomerService(customerRepo repositories.CustomerRepository, db repositories.SQLExecutor) CustomerService {
	return &customerService{customerRepo: customerRepo, db: db}
}

func (s *customerService) Create(req CreateCustomerRequest) (*models.Customer, error) {
	if err := validateEntityName(req.Name, customerAddRoute); err != nil {
		return nil, err
	}
	if err := validateSupplierEmail(req.Email, customerAddRoute); err != nil {
		return nil, err
	}

	exists, err := s.customerRepo.ExistsByName(req.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check customer name uniqueness: %w", err)
	}
	if exists {
		return nil, NewNameConflictFailure("A customer with this name already exists. Please choose a different name.", customerAddRoute)
	}

	customer := &models.Customer{
		Name:    strings.TrimSpace(req.Name),
		Address: req.Address,
		Email:   req.Email,
		Phone:   req.Phone,
	}
	if _, err := s.customerRepo.Create(s.db, customer); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, NewNameConflictFailure("A customer with this name already exists. Please choose a different name.", customerAddRoute)
		}
		return nil, fmt.Errorf("failed to create customer in repository: %w", err)
	}
	return customer, nil
}

func (s *customerService) GetByID(customerID int64) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(customerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewNotFoundFailure(fmt.Sprintf("Could not find any customer with ID %d.", customerID), customerListRoute)
		}
		return nil, fmt.Errorf("failed to get customer by ID from repository: %w", err)
	}
	return customer, nil
}

func (s *customerService) GetAll(page, pageSize int) ([]models.Customer, int, error) {
	customers, totalCount, err := s.customerRepo.GetAll(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get customers: %w", err)
	}
	return customers, totalCount, nil
}

func (s *customerService) Update(customerID int64, req UpdateCustomerRequest) (*models.Customer, error) {
	editRoute := fmt.Sprintf(customerEditRoute, customerID)

	customer, err := s.customerRepo.GetByID(customerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewNotFoundFailure(fmt.Sprintf("Could not find any customer with ID %d.", customerID), editRoute)
		}
		return nil, fmt.Errorf("failed to fetch customer for update: %w", err)
	}

	if req.Name != nil && *req.Name != "" {
		if err := validateEntityName(*req.Name, editRoute); err != nil {
			return nil, err
		}
		newName := strings.TrimSpace(*req.Name)
		if newName != customer.Name {
			exists, err := s.customerRepo.ExistsByName(newName)
			if err != nil {
				return nil, fmt.Errorf("failed to check customer name uniqueness: %w", err)
			}
			if exists {
				return nil, NewNameConflictFailure("A customer with this name already exists. Please choose a different name.", editRoute)
			}
		}
		customer.Name = newName
	}
	if err := validateSupplierEmail(req.Email, editRoute); err != nil {
		return nil, err
	}
	if req.Address != nil {
		customer.Address = req.Address
	}
	if req.Email != nil {
		customer.Email = req.Email
	}
	if req.Phone != nil {
		customer.Phone = req.Phone
	}

	if err := s.customerRepo.Update(s.db, customer); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, NewNameConflictFailure("A customer with this name already exists. Please choose a different name.", editRoute)
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewNotFoundFailure(fmt.Sprintf("Could not find any customer with ID %d.", customerID), editRoute)
		}
		return nil, fmt.Errorf("failed to update customer in repository: %w", err)
	}
	return customer, nil
}

func (s *customerService) Delete(customerID int64) error {
	if err := s.customerRepo.Delete(s.db, customerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return NewNotFoundFailure(fmt.Sprintf("Could not find any customer with ID %d.", customerID), customerListRoute)
		}
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}
