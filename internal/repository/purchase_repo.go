package repository

import (
	"go-inventory-ledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PurchaseRepository interface {
	Create(purchase *model.Purchase) error
	FindAll() ([]model.Purchase, error)
	FindByID(id uuid.UUID) (*model.Purchase, error)
	Update(purchase *model.Purchase) error
	Delete(id uuid.UUID, deletedBy string) error
}

type purchaseRepo struct {
	db *gorm.DB
}

func NewPurchaseRepo(db *gorm.DB) PurchaseRepository {
	return &purchaseRepo{db}
}

func (r *purchaseRepo) Create(purchase *model.Purchase) error {
	return r.db.Omit(clause.Associations).Create(purchase).Error
}

func (r *purchaseRepo) FindAll() ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.Preload("Product").Preload("Supplier").
		Order("purchase_date DESC").Order("created_at DESC").
		Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepo) FindByID(id uuid.UUID) (*model.Purchase, error) {
	var purchase model.Purchase
	if err := r.db.Preload("Product").Preload("Supplier").First(&purchase, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *purchaseRepo) Update(purchase *model.Purchase) error {
	return r.db.Omit(clause.Associations).Save(purchase).Error
}

func (r *purchaseRepo) Delete(id uuid.UUID, deletedBy string) error {
	if err := r.db.Model(&model.Purchase{}).Where("id = ?", id).Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.Delete(&model.Purchase{}, "id = ?", id).Error
}
