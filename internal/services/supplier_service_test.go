package services

import (
	"testing"

	"stocktrade_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type supplierFixture struct {
	store   *fakeStore
	service SupplierService
}

func newSupplierFixture() *supplierFixture {
	store := newFakeStore()
	supplierRepo := &fakeSupplierRepo{store: store}
	productRepo := &fakeProductRepo{store: store}
	txm := &fakeTxManager{store: store}
	return &supplierFixture{
		store:   store,
		service: NewSupplierService(supplierRepo, productRepo, nil, txm),
	}
}

func (f *supplierFixture) seedSupplier(name string) int64 {
	supplier := models.Supplier{ID: f.store.id(), Name: name}
	f.store.suppliers[supplier.ID] = supplier
	return supplier.ID
}

func TestCreateSupplier(t *testing.T) {
	f := newSupplierFixture()

	email := "orders@acme.example.com"
	supplier, err := f.service.Create(CreateSupplierRequest{Name: "Acme Corp", Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", supplier.Name)
	assert.NotZero(t, supplier.ID)
}

func TestCreateSupplierRejectsBadEmail(t *testing.T) {
	f := newSupplierFixture()

	email := "not-an-email"
	_, err := f.service.Create(CreateSupplierRequest{Name: "Acme Corp", Email: &email})
	require.Error(t, err)
	failure, ok := AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, FailureValidation, failure.Kind)
	assert.Equal(t, "/add-supplier-page", failure.Route)
}

func TestCreateSupplierNameConflict(t *testing.T) {
	f := newSupplierFixture()
	f.seedSupplier("Acme Corp")

	_, err := f.service.Create(CreateSupplierRequest{Name: "Acme Corp"})
	require.Error(t, err)
	failure, ok := AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, FailureNameConflict, failure.Kind)
}

func TestUpdateSupplierKeepingOwnNameIsNotAConflict(t *testing.T) {
	f := newSupplierFixture()
	id := f.seedSupplier("Acme Corp")

	phone := "+1-555-0100"
	supplier, err := f.service.Update(id, UpdateSupplierRequest{Name: strPtr("Acme Corp"), Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", supplier.Name)
	assert.Equal(t, "+1-555-0100", *supplier.Phone)
}

func TestDeleteSupplierBlockedWhileProductsReferenceIt(t *testing.T) {
	f := newSupplierFixture()
	id := f.seedSupplier("Acme Corp")
	product := models.Product{ID: f.store.id(), Name: "Widget", CategoryID: 1, SupplierID: id}
	f.store.products[product.ID] = product

	err := f.service.Delete(id)
	require.Error(t, err)
	failure, ok := AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, FailureForeignKeyConflict, failure.Kind)
	assert.Equal(t, "/supplier-page", failure.Route)
	assert.Contains(t, f.store.suppliers, id)
}

func TestDeleteSupplierWithoutProducts(t *testing.T) {
	f := newSupplierFixture()
	id := f.seedSupplier("Acme Corp")

	require.NoError(t, f.service.Delete(id))
	assert.NotContains(t, f.store.suppliers, id)
}

func TestDeleteSupplierNotFound(t *testing.T) {
	f := newSupplierFixture()

	err := f.service.Delete(123)
	require.Error(t, err)
	failure, ok := AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, FailureNotFound, failure.Kind)
	assert.Equal(t, "/supplier-page", failure.Route)
}
