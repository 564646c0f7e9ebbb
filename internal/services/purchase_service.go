package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"stocktrade_backend/internal/models"
	"stocktrade_backend/internal/repositories"
	"stocktrade_backend/pkg/metrics"
	"stocktrade_backend/pkg/utils"
)

const (
	purchaseListRoute = "/purchase-page"
	purchaseAddRoute  = "/add-purchase-page"
)

// --- Purchase DTOs ---

type PurchaseLineRequest struct {
	ProductName string  `json:"product_name" binding:"required"`
	Quantity    int     `json:"quantity" binding:"required,min=1"`
	UnitPrice   float64 `json:"unit_price" binding:"gte=0"`
}

type CreatePurchaseRequest struct {
	SupplierName string                `json:"supplier_name" binding:"required"`
	Date         string                `json:"date" binding:"required"` // YYYY-MM-DD
	TotalAmount  float64               `json:"total_amount"`
	Items        []PurchaseLineRequest `json:"items" binding:"required"`
}

// --- PurchaseService Interface ---
type PurchaseService interface {
	Create(req CreatePurchaseRequest) (*models.Purchase, error)
	GetByID(purchaseID int64) (*models.Purchase, error)
	GetAll(filters models.PurchaseFilters) ([]models.Purchase, int, error)
	Delete(purchaseID int64) error
}

type purchaseService struct {
	purchaseRepo repositories.PurchaseRepository
	productRepo  repositories.ProductRepository
	txm          repositories.TxManager
}

// NewPurchaseService creates a new instance of PurchaseService.
func NewPurchaseService(
	purchaseRepo repositories.PurchaseRepository,
	productRepo repositories.ProductRepository,
	txm repositories.TxManager,
) PurchaseService {
	return &purchaseService{
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		txm:          txm,
	}
}

// Create records a purchase and restocks every product it lists. The header,
// its line items and the stock increments are committed in one transaction:
// if any line names an unknown product, nothing is persisted.
func (s *purchaseService) Create(req CreatePurchaseRequest) (*models.Purchase, error) {
	if strings.TrimSpace(req.SupplierName) == "" {
		return nil, NewValidationFailure("Supplier name must not be blank.", purchaseAddRoute)
	}

	purchaseDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, NewValidationFailure("Purchase date must be in YYYY-MM-DD format.", purchaseAddRoute)
	}
	// purchaseDate is midnight UTC of the submitted calendar date, so build
	// today the same way from the local calendar date before comparing.
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if !purchaseDate.After(today) {
		return nil, NewValidationFailure("Purchase date must be in the future.", purchaseAddRoute)
	}

	if len(req.Items) == 0 {
		return nil, NewValidationFailure("A purchase must contain at least one item.", purchaseAddRoute)
	}
	totalAmount := 0.0
	for i, item := range req.Items {
		if strings.TrimSpace(item.ProductName) == "" {
			return nil, NewValidationFailure(fmt.Sprintf("Item %d: product name must not be blank.", i+1), purchaseAddRoute)
		}
		if item.Quantity < 1 {
			return nil, NewValidationFailure(fmt.Sprintf("Item %d: quantity must be at least 1.", i+1), purchaseAddRoute)
		}
		if item.UnitPrice < 0 {
			return nil, NewValidationFailure(fmt.Sprintf("Item %d: unit price must not be negative.", i+1), purchaseAddRoute)
		}
		totalAmount += float64(item.Quantity) * item.UnitPrice
	}
	// The total is always recomputed from the lines; a stale client value is
	// logged and ignored rather than stored.
	if req.TotalAmount != 0 && math.Abs(req.TotalAmount-totalAmount) > 0.005 {
		utils.LogWarn("purchase total from client differs from recomputed total", map[string]interface{}{
			"client_total":     req.TotalAmount,
			"recomputed_total": totalAmount,
			"supplier":         req.SupplierName,
		})
	}

	purchase := &models.Purchase{
		SupplierName: strings.TrimSpace(req.SupplierName),
		Date:         purchaseDate,
		TotalAmount:  totalAmount,
	}

	err = s.txm.WithinTx(func(executor repositories.SQLExecutor) error {
		if _, err := s.purchaseRepo.CreatePurchase(executor, purchase); err != nil {
			return fmt.Errorf("failed to create purchase header: %w", err)
		}
		for _, line := range req.Items {
			productName := strings.TrimSpace(line.ProductName)
			product, err := s.productRepo.GetByName(executor, productName)
			if err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					return NewNotFoundFailure(fmt.Sprintf("Could not find any product with name '%s'.", productName), purchaseAddRoute)
				}
				return fmt.Errorf("failed to resolve product '%s': %w", productName, err)
			}
			if product.Category == nil || product.Category.Name == "" {
				return NewNotFoundFailure(fmt.Sprintf("Could not resolve the category of product '%s'.", productName), purchaseAddRoute)
			}

			item := &models.PurchaseItem{
				PurchaseID:      purchase.ID,
				ProductName:     product.Name,
				ProductCategory: product.Category.Name,
				Quantity:        line.Quantity,
				UnitPrice:       line.UnitPrice,
			}
			if _, err := s.purchaseRepo.CreatePurchaseItem(executor, item); err != nil {
				return fmt.Errorf("failed to create purchase item for '%s': %w", productName, err)
			}
			purchase.Items = append(purchase.Items, *item)

			if _, err := s.productRepo.IncrementStock(executor, product.ID, line.Quantity); err != nil {
				return fmt.Errorf("failed to increment stock for product '%s': %w", productName, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordPurchase(len(purchase.Items))
	utils.LogInfo("purchase recorded", map[string]interface{}{
		"purchase_id": purchase.ID,
		"supplier":    purchase.SupplierName,
		"items":       len(purchase.Items),
		"total":       purchase.TotalAmount,
	})
	return purchase, nil
}

func (s *purchaseService) GetByID(purchaseID int64) (*models.Purchase, error) {
	purchase, err := s.purchaseRepo.GetPurchaseByID(purchaseID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewNotFoundFailure(fmt.Sprintf("Could not find any purchase with ID %d.", purchaseID), purchaseListRoute)
		}
		return nil, fmt.Errorf("failed to get purchase by ID from repository: %w", err)
	}
	items, err := s.purchaseRepo.GetPurchaseItemsByPurchaseID(purchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase items: %w", err)
	}
	purchase.Items = items
	return purchase, nil
}

func (s *purchaseService) GetAll(filters models.PurchaseFilters) ([]models.Purchase, int, error) {
	if filters.Date != nil && *filters.Date != "" {
		if _, err := time.Parse("2006-01-02", *filters.Date); err != nil {
			return nil, 0, NewValidationFailure("Purchase date filter must be in YYYY-MM-DD format.", purchaseListRoute)
		}
	}
	purchases, totalCount, err := s.purchaseRepo.GetPurchases(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get purchases: %w", err)
	}
	return purchases, totalCount, nil
}

// Delete removes a purchase and its line items. Stock levels are left as they
// are: deleting the record does not undo the goods having arrived.
func (s *purchaseService) Delete(purchaseID int64) error {
	return s.txm.WithinTx(func(executor repositories.SQLExecutor) error {
		if _, err := s.purchaseRepo.DeletePurchaseItemsByPurchaseID(executor, purchaseID); err != nil {
			return fmt.Errorf("failed to delete purchase items: %w", err)
		}
		if _, err := s.purchaseRepo.DeletePurchase(executor, purchaseID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return NewNotFoundFailure(fmt.Sprintf("Could not find any purchase with ID %d.", purchaseID), purchaseListRoute)
			}
			return fmt.Errorf("failed to delete purchase: %w", err)
		}
		return nil
	})
}
