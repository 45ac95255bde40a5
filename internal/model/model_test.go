package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeSKU(t *testing.T) {
	assert.Equal(t, "ABC-001", NormalizeSKU("  abc-001 "))
}

func TestLineTotal(t *testing.T) {
	assert.Equal(t, "199.98", LineTotal(2, decimal.RequireFromString("99.99")).String())
	assert.Equal(t, "0", LineTotal(5, decimal.Zero).String())
}

func TestProductValuation(t *testing.T) {
	p := Product{Stock: 4}
	assert.True(t, p.Valuation().IsZero())

	p.Price = decimal.NewNullDecimal(decimal.RequireFromString("2.50"))
	assert.Equal(t, "10", p.Valuation().String())
}

func TestPurchaseReceipt(t *testing.T) {
	id := uuid.MustParse("0b5e7c1a-1111-2222-3333-444455556666")
	p := Purchase{
		BaseModel:    BaseModel{ID: id},
		Quantity:     10,
		UnitPrice:    decimal.NewFromInt(5),
		TotalAmount:  decimal.NewFromInt(50),
		PurchaseDate: time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC),
		Product:      &Product{Name: "Widget"},
		Supplier:     &Supplier{Name: "Acme"},
	}

	r := p.Receipt()
	assert.Equal(t, "INV-20260304-0B5E7C1A", r.InvoiceNumber)
	assert.Equal(t, "50", r.Amount.String())
	assert.Equal(t, ReceiptStatusCompleted, r.Status)
	assert.Equal(t, "Widget", r.ProductName)
	assert.Equal(t, "Acme", r.SupplierName)
}

func TestPrivilegeIsUserManagement(t *testing.T) {
	assert.True(t, Privilege{Code: "user:create"}.IsUserManagement())
	assert.False(t, Privilege{Code: "user:view"}.IsUserManagement())
	assert.False(t, Privilege{Code: "sale:create"}.IsUserManagement())
}

func TestHistoryDelta(t *testing.T) {
	h := ProductHistory{OldValue: 45, NewValue: 43}
	assert.Equal(t, -2, h.Delta())
}

func TestUserPassword(t *testing.T) {
	u := User{}
	assert.NoError(t, u.SetPassword("secret1"))
	assert.True(t, u.CheckPassword("secret1"))
	assert.False(t, u.CheckPassword("nope"))
}
