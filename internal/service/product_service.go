package service

import (
	"errors"

	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProductService interface {
	CreateProduct(req *ProductRequest, actor model.Actor) (*model.Product, error)
	UpdateProduct(id uuid.UUID, req *ProductUpdate, actor model.Actor) (*model.Product, error)
	DeleteProduct(id uuid.UUID, actor model.Actor) error
	GetProduct(id uuid.UUID) (*model.Product, error)
	ListProducts() ([]model.Product, error)
}

type ProductRequest struct {
	SKU   string              `json:"sku" validate:"required,max=50"`
	Name  string              `json:"name" validate:"required,max=255"`
	Stock int                 `json:"stock" validate:"gte=0"`
	Unit  string              `json:"unit" validate:"max=20"`
	Price decimal.NullDecimal `json:"price" validate:"omitempty,gte=0"`
}

// ProductUpdate has no stock field: stock only moves through purchases and sales.
type ProductUpdate struct {
	SKU   string              `json:"sku" validate:"required,max=50"`
	Name  string              `json:"name" validate:"required,max=255"`
	Unit  string              `json:"unit" validate:"max=20"`
	Price decimal.NullDecimal `json:"price" validate:"omitempty,gte=0"`
}

type productService struct {
	productRepo repository.ProductRepository
	log         *zap.Logger
}

func NewProductService(productRepo repository.ProductRepository, log *zap.Logger) ProductService {
	if log == nil {
		log = zap.NewNop()
	}
	return &productService{productRepo: productRepo, log: log.Named("product")}
}

func (s *productService) CreateProduct(req *ProductRequest, actor model.Actor) (*model.Product, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if err := s.ensureSKUAvailable(req.SKU, uuid.Nil); err != nil {
		return nil, err
	}

	product := &model.Product{
		SKU:   req.SKU,
		Name:  req.Name,
		Stock: req.Stock,
		Unit:  req.Unit,
		Price: roundPrice(req.Price),
	}
	product.CreatedBy = actor.ID
	product.UpdatedBy = actor.ID

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	s.log.Info("product created", zap.String("product_id", product.ID.String()), zap.String("sku", product.SKU), zap.Int("stock", product.Stock))
	return product, nil
}

func (s *productService) UpdateProduct(id uuid.UUID, req *ProductUpdate, actor model.Actor) (*model.Product, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrProductNotFound)
	}
	if err := s.ensureSKUAvailable(req.SKU, id); err != nil {
		return nil, err
	}

	product.SKU = req.SKU
	product.Name = req.Name
	product.Unit = req.Unit
	product.Price = roundPrice(req.Price)
	product.UpdatedBy = actor.ID
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return s.productRepo.FindByID(id)
}

func (s *productService) DeleteProduct(id uuid.UUID, actor model.Actor) error {
	if err := s.productRepo.Delete(id, actor.ID); err != nil {
		return notFound(err, ErrProductNotFound)
	}
	s.log.Info("product deleted", zap.String("product_id", id.String()))
	return nil
}

func (s *productService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrProductNotFound)
	}
	return product, nil
}

func (s *productService) ListProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

// ensureSKUAvailable fails with ErrSKUExists when another product already uses sku.
func (s *productService) ensureSKUAvailable(sku string, self uuid.UUID) error {
	existing, err := s.productRepo.FindBySKU(sku)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != self {
		return ErrSKUExists
	}
	return nil
}

func roundPrice(p decimal.NullDecimal) decimal.NullDecimal {
	if !p.Valid {
		return p
	}
	return decimal.NewNullDecimal(p.Decimal.Round(2))
}
