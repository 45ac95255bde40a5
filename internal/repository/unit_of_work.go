package repository

import "gorm.io/gorm"

// Repositories groups the stores a ledger operation touches, all bound to the same connection.
type Repositories struct {
	Products  ProductRepository
	Suppliers SupplierRepository
	Purchases PurchaseRepository
	Sales     SaleRepository
	History   HistoryRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Products:  NewProductRepo(db),
		Suppliers: NewSupplierRepo(db),
		Purchases: NewPurchaseRepo(db),
		Sales:     NewSaleRepo(db),
		History:   NewHistoryRepo(db),
	}
}

// UnitOfWork runs fn against transaction-bound repositories. Returning an error rolls everything back.
type UnitOfWork interface {
	Do(fn func(repos Repositories) error) error
}

type gormUnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{db}
}

func (u *gormUnitOfWork) Do(fn func(repos Repositories) error) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
