package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase is a stock-in record. TotalAmount is always derived from Quantity and UnitPrice.
type Purchase struct {
	BaseModel
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Product      *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	SupplierID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"supplier_id"`
	Supplier     *Supplier       `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	UnitPrice    decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"unit_price"`
	TotalAmount  decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"total_amount"`
	PurchaseDate time.Time       `gorm:"not null;index" json:"purchase_date"`
	Note         string          `gorm:"type:text" json:"note"`
}

const ReceiptStatusCompleted = "completed"

// PurchaseReceipt is the invoice-like view of a purchase handed to clients.
type PurchaseReceipt struct {
	InvoiceNumber string          `json:"invoice_number"`
	PurchaseID    uuid.UUID       `json:"purchase_id"`
	Date          time.Time       `json:"date"`
	ProductName   string          `json:"product_name,omitempty"`
	SupplierName  string          `json:"supplier_name,omitempty"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
}

func (p *Purchase) Receipt() PurchaseReceipt {
	receipt := PurchaseReceipt{
		InvoiceNumber: fmt.Sprintf("INV-%s-%s", p.PurchaseDate.Format("20060102"), strings.ToUpper(p.ID.String()[:8])),
		PurchaseID:    p.ID,
		Date:          p.PurchaseDate,
		Quantity:      p.Quantity,
		UnitPrice:     p.UnitPrice,
		Amount:        p.TotalAmount,
		Status:        ReceiptStatusCompleted,
	}
	if p.Product != nil {
		receipt.ProductName = p.Product.Name
	}
	if p.Supplier != nil {
		receipt.SupplierName = p.Supplier.Name
	}
	return receipt
}
