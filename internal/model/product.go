package model

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	BaseModel
	SKU   string              `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required,max=50"`
	Name  string              `gorm:"type:varchar(255);not null" json:"name" validate:"required,max=255"`
	Stock int                 `gorm:"not null;default:0;check:chk_products_stock_nonnegative,stock >= 0" json:"stock" validate:"gte=0"`
	Unit  string              `gorm:"type:varchar(20)" json:"unit" validate:"max=20"`
	Price decimal.NullDecimal `gorm:"type:numeric(14,2)" json:"price" validate:"omitempty,gte=0"`
}

// NormalizeSKU trims and upper-cases a SKU so lookups are case-insensitive.
func NormalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}

func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.SKU = NormalizeSKU(p.SKU)
	return nil
}

// Valuation is stock × price, zero when the product has no price.
func (p *Product) Valuation() decimal.Decimal {
	if !p.Price.Valid {
		return decimal.Zero
	}
	return p.Price.Decimal.Mul(decimal.NewFromInt(int64(p.Stock)))
}

// LineTotal computes quantity × price rounded to cents.
func LineTotal(quantity int, price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}
