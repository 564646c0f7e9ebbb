package services

import (
	"fmt"

	"stocktrade_backend/internal/models"
	"stocktrade_backend/internal/repositories"
)

// ReportService exposes purchase aggregates for the dashboard charts. The
// numbers are computed over the snapshot columns on purchase items, so they
// stay stable even after products or categories are renamed or removed.
type ReportService interface {
	PurchasesByCategory() ([]models.PurchaseAggregate, error)
	QuantityBySupplier() ([]models.PurchaseAggregate, error)
	QuantityByProduct() ([]models.PurchaseAggregate, error)
}

type reportService struct {
	purchaseRepo repositories.PurchaseRepository
}

// NewReportService creates a new instance of ReportService.
func NewReportService(purchaseRepo repositories.PurchaseRepository) ReportService {
	return &reportService{purchaseRepo: purchaseRepo}
}

func (s *reportService) PurchasesByCategory() ([]models.PurchaseAggregate, error) {
	aggregates, err := s.purchaseRepo.CountPurchasesByCategory()
	if err != nil {
		return nil, fmt.Errorf("failed to count purchases by category: %w", err)
	}
	return aggregates, nil
}

func (s *reportService) QuantityBySupplier() ([]models.PurchaseAggregate, error) {
	aggregates, err := s.purchaseRepo.SumQuantityBySupplier()
	if err != nil {
		return nil, fmt.Errorf("failed to sum quantities by supplier: %w", err)
	}
	return aggregates, nil
}

func (s *reportService) QuantityByProduct() ([]models.PurchaseAggregate, error) {
	aggregates, err := s.purchaseRepo.SumQuantityByProduct()
	if err != nil {
		return nil, fmt.Errorf("failed to sum quantities by product: %w", err)
	}
	return aggregates, nil
}
