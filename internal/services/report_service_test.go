package services

import (
	"testing"

	"stocktrade_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedReportPurchases(t *testing.T) (*purchaseFixture, ReportService) {
	t.Helper()
	f := newPurchaseFixture()
	f.seedProduct("Widget", "Tools", 0)
	f.seedProduct("Gadget", "Hardware", 0)

	purchases := []CreatePurchaseRequest{
		{
			SupplierName: "Acme Corp",
			Date:         futureDate(),
			Items: []PurchaseLineRequest{
				{ProductName: "Widget", Quantity: 5, UnitPrice: 2.00},
				{ProductName: "Gadget", Quantity: 2, UnitPrice: 10.00},
			},
		},
		{
			SupplierName: "Globex",
			Date:         futureDate(),
			Items: []PurchaseLineRequest{
				{ProductName: "Widget", Quantity: 3, UnitPrice: 2.00},
			},
		},
	}
	for _, req := range purchases {
		_, err := f.service.Create(req)
		require.NoError(t, err)
	}

	return f, NewReportService(&fakePurchaseRepo{store: f.store})
}

func TestPurchasesByCategoryCountsLines(t *testing.T) {
	_, reports := seedReportPurchases(t)

	aggregates, err := reports.PurchasesByCategory()
	require.NoError(t, err)
	assert.Equal(t, []models.PurchaseAggregate{
		{Label: "Hardware", Total: 1},
		{Label: "Tools", Total: 2},
	}, aggregates)
}

func TestQuantityBySupplierSumsAcrossPurchases(t *testing.T) {
	_, reports := seedReportPurchases(t)

	aggregates, err := reports.QuantityBySupplier()
	require.NoError(t, err)
	assert.Equal(t, []models.PurchaseAggregate{
		{Label: "Acme Corp", Total: 7},
		{Label: "Globex", Total: 3},
	}, aggregates)
}

func TestQuantityByProductSumsAcrossPurchases(t *testing.T) {
	_, reports := seedReportPurchases(t)

	aggregates, err := reports.QuantityByProduct()
	require.NoError(t, err)
	assert.Equal(t, []models.PurchaseAggregate{
		{Label: "Gadget", Total: 2},
		{Label: "Widget", Total: 8},
	}, aggregates)
}
