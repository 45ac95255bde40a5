package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is a stock-out record. ProductName and SKU are snapshots taken when the product reference is set.
type Sale struct {
	BaseModel
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Product       *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	ProductName   string          `gorm:"type:varchar(255)" json:"product_name"`
	SKU           string          `gorm:"type:varchar(50)" json:"sku"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	SalePrice     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"sale_price"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"total_amount"`
	Customer      string          `gorm:"type:varchar(255)" json:"customer"`
	PaymentMethod string          `gorm:"type:varchar(20)" json:"payment_method"` // CASH, TRANSFER, CARD
	SaleDate      time.Time       `gorm:"not null;index" json:"sale_date"`
	Note          string          `gorm:"type:text" json:"note"`
}
