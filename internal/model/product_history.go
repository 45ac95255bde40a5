package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const HistoryActionStockChanged = "stock_changed"

// ProductHistory is an append-only audit entry describing one stock change.
type ProductHistory struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Action    string    `gorm:"type:varchar(50);not null" json:"action"`
	ActorID   string    `gorm:"type:varchar(255);not null" json:"actor_id"`
	ActorName string    `gorm:"type:varchar(255)" json:"actor_name"`
	OldValue  int       `json:"old_value"`
	NewValue  int       `json:"new_value"`
	Details   string    `gorm:"type:text" json:"details"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (ProductHistory) TableName() string {
	return "product_histories"
}

func (h *ProductHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// Delta is the signed stock change the entry records.
func (h *ProductHistory) Delta() int {
	return h.NewValue - h.OldValue
}
