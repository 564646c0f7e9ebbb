package services

import (
	"testing"
	"time"

	"stocktrade_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type purchaseFixture struct {
	store       *fakeStore
	service     PurchaseService
	productRepo *fakeProductRepo
}

func newPurchaseFixture() *purchaseFixture {
	store := newFakeStore()
	productRepo := &fakeProductRepo{store: store}
	purchaseRepo := &fakePurchaseRepo{store: store}
	txm := &fakeTxManager{store: store}
	return &purchaseFixture{
		store:       store,
		service:     NewPurchaseService(purchaseRepo, productRepo, txm),
		productRepo: productRepo,
	}
}

func (f *purchaseFixture) seedProduct(name, categoryName string, stock int) int64 {
	categoryID := int64(0)
	for _, c := range f.store.categories {
		if c.Name == categoryName {
			categoryID = c.ID
		}
	}
	if categoryID == 0 {
		category := models.Category{ID: f.store.id(), Name: categoryName}
		f.store.categories[category.ID] = category
		categoryID = category.ID
	}
	product := models.Product{
		ID:            f.store.id(),
		Name:          name,
		Price:         9.99,
		StockQuantity: stock,
		CategoryID:    categoryID,
		SupplierID:    1,
	}
	f.store.products[product.ID] = product
	return product.ID
}

func futureDate() string {
	return time.Now().AddDate(0, 0, 7).Format("2006-01-02")
}

func TestCreatePurchasePersistsHeaderItemsAndStock(t *testing.T) {
	f := newPurchaseFixture()
	widgetID := f.seedProduct("Widget", "Tools", 10)
	gadgetID := f.seedProduct("Gadget", "Hardware", 3)

	purchase, err := f.service.Create(CreatePurchaseRequest{
		SupplierName: "Acme Corp",
		Date:         futureDate(),
		Items: []PurchaseLineRequest{
			{ProductName: "Widget", Quantity: 5, UnitPrice: 2.50},
			{ProductName: "Gadget", Quantity: 2, UnitPrice: 10.00},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, purchase)

	assert.Equal(t, "Acme Corp", purchase.SupplierName)
	assert.InDelta(t, 32.50, purchase.TotalAmount, 0.001)
	require.Len(t, purchase.Items, 2)
	assert.Equal(t, "Widget", purchase.Items[0].ProductName)
	assert.Equal(t, "Tools", purchase.Items[0].ProductCategory)
	assert.Equal(t, "Gadget", purchase.Items[1].ProductName)
	assert.Equal(t, "Hardware", purchase.Items[1].ProductCategory)

	assert.Equal(t, 15, f.store.products[widgetID].StockQuantity)
	assert.Equal(t, 5, f.store.products[gadgetID].StockQuantity)
	assert.Len(t, f.store.purchases, 1)
	assert.Len(t, f.store.purchaseItems, 2)
}

func TestCreatePurchaseRecomputesTotalFromLines(t *testing.T) {
	f := newPurchaseFixture()
	f.seedProduct("Widget", "Tools", 0)

	purchase, err := f.service.Create(CreatePurchaseRequest{
		SupplierName: "Acme Corp",
		Date:         futureDate(),
		TotalAmount:  999.99, // stale client total must be ignored
		Items: []PurchaseLineRequest{
			{ProductName: "Widget", Quantity: 4, UnitPrice: 1.25},
		},
	})
	require.NoError(t, err)
	assert.InDelta(t, 5.00, purchase.TotalAmount, 0.001)
}

func TestCreatePurchaseUnknownProductRollsBackEverything(t *testing.T) {
	f := newPurchaseFixture()
	widgetID := f.seedProduct("Widget", "Tools", 10)

	_, err := f.service.Create(CreatePurchaseRequest{
		SupplierName: "Acme Corp",
		Date:         futureDate(),
		Items: []PurchaseLineRequest{
			{ProductName: "Widget", Quantity: 5, UnitPrice: 2.50},
			{ProductName: "DoesNotExist", Quantity: 1, UnitPrice: 1.00},
		},
	})
	require.Error(t, err)

	failure, ok := AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, FailureNotFound, failure.Kind)
	assert.Equal(t, "/add-purchase-page", failure.Route)

	// The first line must not survive the failed second line.
	assert.Empty(t, f.store.purchases)
	assert.Empty(t, f.store.purchaseItems)
	assert.Equal(t, 10, f.store.products[widgetID].StockQuantity)
}

func TestCreatePurchaseValidation(t *testing.T) {
	f := newPurchaseFixture()
	f.seedProduct("Widget", "Tools", 0)

	validLine := []PurchaseLineRequest{{ProductName: "Widget", Quantity: 1, UnitPrice: 1.00}}
	pastDate := time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	tests := []struct {
		name string
		req  CreatePurchaseRequest
	}{
		{"blank supplier", CreatePurchaseRequest{SupplierName: "   ", Date: futureDate(), Items: validLine}},
		{"malformed date", CreatePurchaseRequest{SupplierName: "Acme", Date: "07-09-2026", Items: validLine}},
		{"past date", CreatePurchaseRequest{SupplierName: "Acme", Date: pastDate, Items: validLine}},
		{"no items", CreatePurchaseRequest{SupplierName: "Acme", Date: futureDate()}},
		{"zero quantity", CreatePurchaseRequest{SupplierName: "Acme", Date: futureDate(), Items: []PurchaseLineRequest{{ProductName: "Widget", Quantity: 0, UnitPrice: 1.00}}}},
		{"negative price", CreatePurchaseRequest{SupplierName: "Acme", Date: futureDate(), Items: []PurchaseLineRequest{{ProductName: "Widget", Quantity: 1, UnitPrice: -0.01}}}},
		{"blank product name", CreatePurchaseRequest{SupplierName: "Acme", Date: futureDate(), Items: []PurchaseLineRequest{{ProductName: " ", Quantity: 1, UnitPrice: 1.00}}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.Create(tc.req)
			require.Error(t, err)
			failure, ok := AsFailure(err)
			require.True(t, ok)
			assert.Equal(t, FailureValidation, failure.Kind)
			assert.Equal(t, "/add-purchase-page", failure.Route)
		})
	}
	assert.Empty(t, f.store.purchases)
}

func TestCreatePurchaseRejectsTodaysDate(t *testing.T) {
	f := newPurchaseFixture()
	f.seedProduct("Widget", "Tools", 0)

	_, err := f.service.Create(CreatePurchaseRequest{
		SupplierName: "Acme Corp",
		Date:         time.Now().Format("2006-01-02"),
		Items:        []PurchaseLineRequest{{ProductName: "Widget", Quantity: 1, UnitPrice: 1.00}},
	})
	require.Error(t, err)
	failure, ok := AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, FailureValidation, failure.Kind)
	assert.Equal(t, "/add-purchase-page", failure.Route)
}

func TestCreatePurchaseAcceptsTomorrowsDate(t *testing.T) {
	f := newPurchaseFixture()
	f.seedProduct("Widget", "Tools", 0)

	// Tomorrow in the server's local calendar is the earliest valid date,
	// whatever offset the local zone has from UTC.
	_, err := f.service.Create(CreatePurchaseRequest{
		SupplierName: "Acme Corp",
		Date:         time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
		Items:        []PurchaseLineRequest{{ProductName: "Widget", Quantity: 1, UnitPrice: 1.00}},
	})
	require.NoError(t, err)
}

func TestCreatePurchaseResubmissionRecordsTwice(t *testing.T) {
	f := newPurchaseFixture()
	widgetID := f.seedProduct("Widget", "Tools", 0)

	req := CreatePurchaseRequest{
		SupplierName: "Acme Corp",
		Date:         futureDate(),
		Items:        []PurchaseLineRequest{{ProductName: "Widget", Quantity: 3, UnitPrice: 2.00}},
	}

	_, err := f.service.Create(req)
	require.NoError(t, err)
	_, err = f.service.Create(req)
	require.NoError(t, err)

	// Identical submissions are two distinct purchases; stock moves twice.
	assert.Len(t, f.store.purchases, 2)
	assert.Equal(t, 6, f.store.products[widgetID].StockQuantity)
}

func TestGetPurchaseByIDAttachesItems(t *testing.T) {
	f := newPurchaseFixture()
	f.seedProduct("Widget", "Tools", 0)

	created, err := f.service.Create(CreatePurchaseRequest{
		SupplierName: "Acme Corp",
		Date:         futureDate(),
		Items:        []PurchaseLineRequest{{ProductName: "Widget", Quantity: 2, UnitPrice: 3.00}},
	})
	require.NoError(t, err)

	fetched, err := f.service.GetByID(created.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, "Widget", fetched.Items[0].ProductName)
	assert.Equal(t, 2, fetched.Items[0].Quantity)
}

func TestGetPurchaseByIDNotFound(t *testing.T) {
	f := newPurchaseFixture()

	_, err := f.service.GetByID(404)
	require.Error(t, err)
	failure, ok := AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, FailureNotFound, failure.Kind)
	assert.Equal(t, "/purchase-page", failure.Route)
}

func TestGetPurchasesFiltersBySupplier(t *testing.T) {
	f := newPurchaseFixture()
	f.seedProduct("Widget", "Tools", 0)

	for _, supplier := range []string{"Acme Corp", "Globex", "Acme Corp"} {
		_, err := f.service.Create(CreatePurchaseRequest{
			SupplierName: supplier,
			Date:         futureDate(),
			Items:        []PurchaseLineRequest{{ProductName: "Widget", Quantity: 1, UnitPrice: 1.00}},
		})
		require.NoError(t, err)
	}

	supplier := "Acme Corp"
	purchases, total, err := f.service.GetAll(models.PurchaseFilters{Supplier: &supplier, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, purchases, 2)
}

func TestGetPurchasesRejectsMalformedDateFilter(t *testing.T) {
	f := newPurchaseFixture()

	badDate := "next tuesday"
	_, _, err := f.service.GetAll(models.PurchaseFilters{Date: &badDate, Page: 1, PageSize: 10})
	require.Error(t, err)
	failure, ok := AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, FailureValidation, failure.Kind)
}

func TestDeletePurchaseLeavesStockAlone(t *testing.T) {
	f := newPurchaseFixture()
	widgetID := f.seedProduct("Widget", "Tools", 0)

	created, err := f.service.Create(CreatePurchaseRequest{
		SupplierName: "Acme Corp",
		Date:         futureDate(),
		Items:        []PurchaseLineRequest{{ProductName: "Widget", Quantity: 4, UnitPrice: 1.00}},
	})
	require.NoError(t, err)
	require.Equal(t, 4, f.store.products[widgetID].StockQuantity)

	require.NoError(t, f.service.Delete(created.ID))

	assert.Empty(t, f.store.purchases)
	assert.Empty(t, f.store.purchaseItems)
	// Deleting the record does not take the goods back off the shelf.
	assert.Equal(t, 4, f.store.products[widgetID].StockQuantity)
}

func TestDeletePurchaseNotFound(t *testing.T) {
	f := newPurchaseFixture()

	err := f.service.Delete(42)
	require.Error(t, err)
	failure, ok := AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, FailureNotFound, failure.Kind)
	assert.Equal(t, "/purchase-page", failure.Route)
}
