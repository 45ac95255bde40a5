package repository

import (
	"errors"

	"go-inventory-ledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrIncompleteHistory = errors.New("history entry requires product, action and actor")

// HistoryRepository is the append-only audit log of stock changes.
type HistoryRepository interface {
	Append(entry *model.ProductHistory) error
	FindByProduct(productID uuid.UUID) ([]model.ProductHistory, error)
}

type historyRepo struct {
	db *gorm.DB
}

func NewHistoryRepo(db *gorm.DB) HistoryRepository {
	return &historyRepo{db}
}

func (r *historyRepo) Append(entry *model.ProductHistory) error {
	if entry.ProductID == uuid.Nil || entry.Action == "" || entry.ActorID == "" {
		return ErrIncompleteHistory
	}
	return r.db.Create(entry).Error
}

// FindByProduct returns the product's history oldest first.
func (r *historyRepo) FindByProduct(productID uuid.UUID) ([]model.ProductHistory, error) {
	var entries []model.ProductHistory
	err := r.db.Where("product_id = ?", productID).Order("created_at ASC").Find(&entries).Error
	return entries, err
}
