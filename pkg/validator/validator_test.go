package validator

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type saleInput struct {
	ProductID uuid.UUID           `validate:"uuid_required"`
	Quantity  int                 `validate:"gte=1"`
	Price     decimal.Decimal     `validate:"gte=0"`
	Discount  decimal.NullDecimal `validate:"omitempty,gte=0"`
}

func TestStructAcceptsValidInput(t *testing.T) {
	in := saleInput{ProductID: uuid.New(), Quantity: 1, Price: decimal.Zero}
	assert.NoError(t, Struct(&in))
}

func TestStructRejectsNilUUID(t *testing.T) {
	errs := ValidateStruct(&saleInput{Quantity: 1})
	require.Len(t, errs, 1)
	assert.Equal(t, "saleInput.ProductID", errs[0].FailedField)
	assert.Equal(t, "uuid_required", errs[0].Tag)
}

func TestStructRejectsNegativeMoney(t *testing.T) {
	in := saleInput{ProductID: uuid.New(), Quantity: 1, Price: decimal.RequireFromString("-0.01")}
	err := Struct(&in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Price")

	in.Price = decimal.NewFromInt(1)
	in.Discount = decimal.NewNullDecimal(decimal.NewFromInt(-3))
	require.Error(t, Struct(&in))
}

func TestStructRejectsZeroQuantity(t *testing.T) {
	in := saleInput{ProductID: uuid.New(), Quantity: 0, Price: decimal.NewFromInt(1)}
	err := Struct(&in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gte")
}
