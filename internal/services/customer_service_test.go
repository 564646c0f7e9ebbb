package services

import (
	"testing"

	"stocktrade_backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCustomerService() (CustomerService, *fakeStore) {
	store := newFakeStore()
	return NewCustomerService(&fakeCustomerRepo{store: store}, nil), store
}

func TestCreateCustomer(t *testing.T) {
	service, _ := newCustomerService()

	customer, err := service.Create(CreateCustomerRequest{
		Name:    "Initech",
		Address: utils.NewNullString("123 Main St"),
		Email:   utils.NewNullString("buyer@initech.example.com"),
		Phone:   utils.NewNullString(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "Initech", customer.Name)
	assert.Nil(t, customer.Phone)
}

func TestCreateCustomerNameConflict(t *testing.T) {
	service, _ := newCustomerService()

	_, err := service.Create(CreateCustomerRequest{Name: "Initech"})
	require.NoError(t, err)

	_, err = service.Create(CreateCustomerRequest{Name: "Initech"})
	require.Error(t, err)
	failure, ok := AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, FailureNameConflict, failure.Kind)
	assert.Equal(t, "/add-customer-page", failure.Route)
}

func TestUpdateCustomerNotFound(t *testing.T) {
	service, _ := newCustomerService()

	_, err := service.Update(31, UpdateCustomerRequest{Name: strPtr("Initech")})
	require.Error(t, err)
	failure, ok := AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, FailureNotFound, failure.Kind)
	assert.Equal(t, "/edit-customer-page/31", failure.Route)
}

func TestDeleteCustomer(t *testing.T) {
	service, store := newCustomerService()

	customer, err := service.Create(CreateCustomerRequest{Name: "Initech"})
	require.NoError(t, err)

	require.NoError(t, service.Delete(customer.ID))
	assert.Empty(t, store.customers)
}
