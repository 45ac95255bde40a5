package service

import (
	"testing"

	"go-inventory-ledger/internal/repository"
	"go-inventory-ledger/internal/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductService(t *testing.T) ProductService {
	t.Helper()
	return NewProductService(repository.NewProductRepo(testutil.NewDB(t)), nil)
}

func TestCreateProductNormalizesSKU(t *testing.T) {
	svc := newProductService(t)

	p, err := svc.CreateProduct(&ProductRequest{
		SKU:   " kb-01 ",
		Name:  "Keyboard",
		Stock: 12,
		Price: decimal.NewNullDecimal(decimal.RequireFromString("19.999")),
	}, testActor)
	require.NoError(t, err)
	assert.Equal(t, "KB-01", p.SKU)
	assert.Equal(t, "20.00", p.Price.Decimal.StringFixed(2))
	assert.Equal(t, testActor.ID, p.CreatedBy)

	_, err = svc.CreateProduct(&ProductRequest{SKU: "KB-01", Name: "Other"}, testActor)
	assert.ErrorIs(t, err, ErrSKUExists)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestCreateProductValidation(t *testing.T) {
	svc := newProductService(t)

	_, err := svc.CreateProduct(&ProductRequest{SKU: "X-1", Name: "Neg", Stock: -1}, testActor)
	assert.Equal(t, KindInvalidInput, KindOf(err))

	_, err = svc.CreateProduct(&ProductRequest{SKU: "X-2", Name: "Neg price", Price: decimal.NewNullDecimal(decimal.NewFromInt(-3))}, testActor)
	assert.Equal(t, KindInvalidInput, KindOf(err))

	p, err := svc.CreateProduct(&ProductRequest{SKU: "X-3", Name: "No price"}, testActor)
	require.NoError(t, err)
	assert.False(t, p.Price.Valid)
}

func TestUpdateProductNeverTouchesStock(t *testing.T) {
	svc := newProductService(t)
	p, err := svc.CreateProduct(&ProductRequest{SKU: "MS-1", Name: "Mouse", Stock: 8}, testActor)
	require.NoError(t, err)
	other, err := svc.CreateProduct(&ProductRequest{SKU: "MS-2", Name: "Mouse 2"}, testActor)
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(p.ID, &ProductUpdate{SKU: "ms-1", Name: "Wireless Mouse", Unit: "pcs"}, testActor)
	require.NoError(t, err)
	assert.Equal(t, "Wireless Mouse", updated.Name)
	assert.Equal(t, 8, updated.Stock)

	_, err = svc.UpdateProduct(other.ID, &ProductUpdate{SKU: "MS-1", Name: "Clash"}, testActor)
	assert.ErrorIs(t, err, ErrSKUExists)

	_, err = svc.UpdateProduct(uuid.New(), &ProductUpdate{SKU: "MS-9", Name: "Ghost"}, testActor)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDeleteProduct(t *testing.T) {
	svc := newProductService(t)
	p, err := svc.CreateProduct(&ProductRequest{SKU: "DEL-1", Name: "Doomed"}, testActor)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(p.ID, testActor))
	_, err = svc.GetProduct(p.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.ErrorIs(t, svc.DeleteProduct(p.ID, testActor), ErrProductNotFound)

	products, err := svc.ListProducts()
	require.NoError(t, err)
	assert.Empty(t, products)
}
