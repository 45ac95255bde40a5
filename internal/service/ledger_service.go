package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go-inventory-ledger/internal/cache"
	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"
	"go-inventory-ledger/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Audit detail templates: quantity, old stock, new stock.
const (
	auditSaleCreate            = "Stock decreased by %d units via sale (%d → %d)"
	auditSaleUpdateRestore     = "Stock restored by %d units due to sale update (%d → %d)"
	auditSaleUpdateApply       = "Stock decreased by %d units via sale update (%d → %d)"
	auditSaleDelete            = "Stock restored by %d units due to sale deletion (%d → %d)"
	auditPurchaseCreate        = "Stock increased by %d units via purchase (%d → %d)"
	auditPurchaseUpdateReverse = "Stock reversed by %d units due to purchase update (%d → %d)"
	auditPurchaseUpdateApply   = "Stock increased by %d units via purchase update (%d → %d)"
	auditPurchaseDelete        = "Stock reversed by %d units due to purchase deletion (%d → %d)"
)

const cacheInvalidateTimeout = 2 * time.Second

type LedgerService interface {
	RecordPurchase(req *PurchaseRequest, actor model.Actor) (*model.Purchase, error)
	UpdatePurchase(id uuid.UUID, req *PurchaseUpdate, actor model.Actor) (*model.Purchase, error)
	DeletePurchase(id uuid.UUID, actor model.Actor) error
	RecordSale(req *SaleRequest, actor model.Actor) (*model.Sale, error)
	UpdateSale(id uuid.UUID, req *SaleUpdate, actor model.Actor) (*model.Sale, error)
	DeleteSale(id uuid.UUID, actor model.Actor) error

	GetPurchase(id uuid.UUID) (*model.Purchase, error)
	ListPurchases() ([]model.Purchase, error)
	PurchaseReceipt(id uuid.UUID) (*model.PurchaseReceipt, error)
	GetSale(id uuid.UUID) (*model.Sale, error)
	ListSales() ([]model.Sale, error)
	ProductHistory(productID uuid.UUID) ([]model.ProductHistory, error)
}

type PurchaseRequest struct {
	ProductID    uuid.UUID       `json:"product_id" validate:"uuid_required"`
	SupplierID   uuid.UUID       `json:"supplier_id" validate:"uuid_required"`
	Quantity     int             `json:"quantity" validate:"gte=1"`
	UnitPrice    decimal.Decimal `json:"unit_price" validate:"gte=0"`
	PurchaseDate *time.Time      `json:"purchase_date"`
	Note         string          `json:"note"`
}

// PurchaseUpdate holds the fields to change; nil keeps the current value.
type PurchaseUpdate struct {
	ProductID    *uuid.UUID       `json:"product_id" validate:"omitempty,uuid_required"`
	SupplierID   *uuid.UUID       `json:"supplier_id" validate:"omitempty,uuid_required"`
	Quantity     *int             `json:"quantity" validate:"omitempty,gte=1"`
	UnitPrice    *decimal.Decimal `json:"unit_price" validate:"omitempty,gte=0"`
	PurchaseDate *time.Time       `json:"purchase_date"`
	Note         *string          `json:"note"`
}

type SaleRequest struct {
	ProductID     uuid.UUID       `json:"product_id" validate:"uuid_required"`
	Quantity      int             `json:"quantity" validate:"gte=1"`
	SalePrice     decimal.Decimal `json:"sale_price" validate:"gte=0"`
	Customer      string          `json:"customer" validate:"max=255"`
	PaymentMethod string          `json:"payment_method" validate:"omitempty,oneof=CASH TRANSFER CARD"`
	SaleDate      *time.Time      `json:"sale_date"`
	Note          string          `json:"note"`
}

// SaleUpdate holds the fields to change; nil keeps the current value.
type SaleUpdate struct {
	ProductID     *uuid.UUID       `json:"product_id" validate:"omitempty,uuid_required"`
	Quantity      *int             `json:"quantity" validate:"omitempty,gte=1"`
	SalePrice     *decimal.Decimal `json:"sale_price" validate:"omitempty,gte=0"`
	Customer      *string          `json:"customer" validate:"omitempty,max=255"`
	PaymentMethod *string          `json:"payment_method" validate:"omitempty,oneof=CASH TRANSFER CARD"`
	SaleDate      *time.Time       `json:"sale_date"`
	Note          *string          `json:"note"`
}

type LedgerOptions struct {
	// AuditPurchases makes purchases write history entries like sales do.
	AuditPurchases bool
}

// stockMove is one committed stock adjustment, published to websocket clients.
type stockMove struct {
	productID uuid.UUID
	sku       string
	oldStock  int
	newStock  int
}

type ledgerService struct {
	uow   repository.UnitOfWork
	repos repository.Repositories
	hub   *ws.Hub
	cache cache.Cache
	log   *zap.Logger
	opts  LedgerOptions
	now   func() time.Time
}

func NewLedgerService(uow repository.UnitOfWork, repos repository.Repositories, hub *ws.Hub, c cache.Cache, log *zap.Logger, opts LedgerOptions) LedgerService {
	if c == nil {
		c = cache.NoopCache{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ledgerService{
		uow:   uow,
		repos: repos,
		hub:   hub,
		cache: c,
		log:   log.Named("ledger"),
		opts:  opts,
		now:   time.Now,
	}
}

func (s *ledgerService) RecordPurchase(req *PurchaseRequest, actor model.Actor) (*model.Purchase, error) {
	if err := validateLedgerInput(req, actor); err != nil {
		return nil, err
	}

	unitPrice := req.UnitPrice.Round(2)
	purchase := &model.Purchase{
		ProductID:    req.ProductID,
		SupplierID:   req.SupplierID,
		Quantity:     req.Quantity,
		UnitPrice:    unitPrice,
		TotalAmount:  model.LineTotal(req.Quantity, unitPrice),
		PurchaseDate: s.dateOrNow(req.PurchaseDate),
		Note:         req.Note,
	}
	purchase.CreatedBy = actor.ID
	purchase.UpdatedBy = actor.ID

	var moves []stockMove
	err := s.uow.Do(func(repos repository.Repositories) error {
		products, err := lockProducts(repos, req.ProductID)
		if err != nil {
			return err
		}
		if products[req.ProductID] == nil {
			return ErrProductNotFound
		}
		if err := requireActiveSupplier(repos, req.SupplierID); err != nil {
			return err
		}

		if err := repos.Purchases.Create(purchase); err != nil {
			return err
		}
		move, err := s.adjust(repos, req.ProductID, req.Quantity, actor, auditPurchaseCreate, s.opts.AuditPurchases)
		if err != nil {
			return err
		}
		moves = append(moves, move)
		return nil
	})
	if err != nil {
		s.log.Warn("record purchase failed", zap.String("product_id", req.ProductID.String()), zap.Error(err))
		return nil, err
	}

	s.committed(ws.ActionPurchaseRecorded, actor, moves)
	s.log.Info("purchase recorded",
		zap.String("purchase_id", purchase.ID.String()),
		zap.String("product_id", purchase.ProductID.String()),
		zap.Int("quantity", purchase.Quantity),
		zap.String("total", purchase.TotalAmount.StringFixed(2)))

	return s.reloadPurchase(purchase), nil
}

func (s *ledgerService) UpdatePurchase(id uuid.UUID, req *PurchaseUpdate, actor model.Actor) (*model.Purchase, error) {
	if err := validateLedgerInput(req, actor); err != nil {
		return nil, err
	}

	var purchase *model.Purchase
	var moves []stockMove
	err := s.uow.Do(func(repos repository.Repositories) error {
		existing, err := repos.Purchases.FindByID(id)
		if err != nil {
			return notFound(err, ErrPurchaseNotFound)
		}

		oldProductID, oldQuantity := existing.ProductID, existing.Quantity
		newProductID := existing.ProductID
		if req.ProductID != nil {
			newProductID = *req.ProductID
		}
		newSupplierID := existing.SupplierID
		if req.SupplierID != nil {
			newSupplierID = *req.SupplierID
		}
		newQuantity := existing.Quantity
		if req.Quantity != nil {
			newQuantity = *req.Quantity
		}
		newPrice := existing.UnitPrice
		if req.UnitPrice != nil {
			newPrice = req.UnitPrice.Round(2)
		}

		products, err := lockProducts(repos, oldProductID, newProductID)
		if err != nil {
			return err
		}
		if products[newProductID] == nil {
			return ErrProductNotFound
		}
		if err := requireActiveSupplier(repos, newSupplierID); err != nil {
			return err
		}
		// The original product may have been deleted since; its reversal is skipped then.
		original := products[oldProductID]
		if original != nil && original.Stock < oldQuantity {
			return &InsufficientStockError{ProductID: oldProductID.String(), Available: original.Stock, Requested: oldQuantity}
		}

		if original != nil {
			move, err := s.adjust(repos, oldProductID, -oldQuantity, actor, auditPurchaseUpdateReverse, s.opts.AuditPurchases)
			if err != nil {
				return err
			}
			moves = append(moves, move)
		}

		existing.Product, existing.Supplier = nil, nil
		existing.ProductID = newProductID
		existing.SupplierID = newSupplierID
		existing.Quantity = newQuantity
		existing.UnitPrice = newPrice
		existing.TotalAmount = model.LineTotal(newQuantity, newPrice)
		if req.PurchaseDate != nil {
			existing.PurchaseDate = *req.PurchaseDate
		}
		if req.Note != nil {
			existing.Note = *req.Note
		}
		existing.UpdatedBy = actor.ID
		if err := repos.Purchases.Update(existing); err != nil {
			return err
		}

		move, err := s.adjust(repos, newProductID, newQuantity, actor, auditPurchaseUpdateApply, s.opts.AuditPurchases)
		if err != nil {
			return err
		}
		moves = append(moves, move)
		purchase = existing
		return nil
	})
	if err != nil {
		s.log.Warn("update purchase failed", zap.String("purchase_id", id.String()), zap.Error(err))
		return nil, err
	}

	s.committed(ws.ActionPurchaseUpdated, actor, moves)
	s.log.Info("purchase updated",
		zap.String("purchase_id", id.String()),
		zap.String("product_id", purchase.ProductID.String()),
		zap.Int("quantity", purchase.Quantity))

	return s.reloadPurchase(purchase), nil
}

func (s *ledgerService) DeletePurchase(id uuid.UUID, actor model.Actor) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	var moves []stockMove
	err := s.uow.Do(func(repos repository.Repositories) error {
		existing, err := repos.Purchases.FindByID(id)
		if err != nil {
			return notFound(err, ErrPurchaseNotFound)
		}
		products, err := lockProducts(repos, existing.ProductID)
		if err != nil {
			return err
		}
		if product := products[existing.ProductID]; product != nil {
			if product.Stock < existing.Quantity {
				return &InsufficientStockError{ProductID: product.ID.String(), Available: product.Stock, Requested: existing.Quantity}
			}
			move, err := s.adjust(repos, product.ID, -existing.Quantity, actor, auditPurchaseDelete, s.opts.AuditPurchases)
			if err != nil {
				return err
			}
			moves = append(moves, move)
		}
		return repos.Purchases.Delete(id, actor.ID)
	})
	if err != nil {
		s.log.Warn("delete purchase failed", zap.String("purchase_id", id.String()), zap.Error(err))
		return err
	}

	s.committed(ws.ActionPurchaseDeleted, actor, moves)
	s.log.Info("purchase deleted", zap.String("purchase_id", id.String()), zap.Bool("stock_reversed", len(moves) > 0))
	return nil
}

func (s *ledgerService) RecordSale(req *SaleRequest, actor model.Actor) (*model.Sale, error) {
	if err := validateLedgerInput(req, actor); err != nil {
		return nil, err
	}

	salePrice := req.SalePrice.Round(2)
	sale := &model.Sale{
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		SalePrice:     salePrice,
		TotalAmount:   model.LineTotal(req.Quantity, salePrice),
		Customer:      req.Customer,
		PaymentMethod: req.PaymentMethod,
		SaleDate:      s.dateOrNow(req.SaleDate),
		Note:          req.Note,
	}
	sale.CreatedBy = actor.ID
	sale.UpdatedBy = actor.ID

	var moves []stockMove
	err := s.uow.Do(func(repos repository.Repositories) error {
		products, err := lockProducts(repos, req.ProductID)
		if err != nil {
			return err
		}
		product := products[req.ProductID]
		if product == nil {
			return ErrProductNotFound
		}
		if product.Stock < req.Quantity {
			return &InsufficientStockError{ProductID: product.ID.String(), Available: product.Stock, Requested: req.Quantity}
		}

		sale.ProductName = product.Name
		sale.SKU = product.SKU
		if err := repos.Sales.Create(sale); err != nil {
			return err
		}
		move, err := s.adjust(repos, product.ID, -req.Quantity, actor, auditSaleCreate, true)
		if err != nil {
			return err
		}
		moves = append(moves, move)
		return nil
	})
	if err != nil {
		s.log.Warn("record sale failed", zap.String("product_id", req.ProductID.String()), zap.Error(err))
		return nil, err
	}

	s.committed(ws.ActionSaleRecorded, actor, moves)
	s.log.Info("sale recorded",
		zap.String("sale_id", sale.ID.String()),
		zap.String("product_id", sale.ProductID.String()),
		zap.Int("quantity", sale.Quantity),
		zap.Int("stock", moves[0].newStock))

	return s.reloadSale(sale), nil
}

func (s *ledgerService) UpdateSale(id uuid.UUID, req *SaleUpdate, actor model.Actor) (*model.Sale, error) {
	if err := validateLedgerInput(req, actor); err != nil {
		return nil, err
	}

	var sale *model.Sale
	var moves []stockMove
	err := s.uow.Do(func(repos repository.Repositories) error {
		existing, err := repos.Sales.FindByID(id)
		if err != nil {
			return notFound(err, ErrSaleNotFound)
		}

		oldProductID, oldQuantity := existing.ProductID, existing.Quantity
		targetID := existing.ProductID
		if req.ProductID != nil {
			targetID = *req.ProductID
		}
		newQuantity := existing.Quantity
		if req.Quantity != nil {
			newQuantity = *req.Quantity
		}

		products, err := lockProducts(repos, oldProductID, targetID)
		if err != nil {
			return err
		}
		original, target := products[oldProductID], products[targetID]
		if target == nil {
			return ErrProductNotFound
		}
		available := target.Stock
		if targetID == oldProductID {
			available += oldQuantity
		}
		if available < newQuantity {
			return &InsufficientStockError{ProductID: targetID.String(), Available: available, Requested: newQuantity}
		}

		if original != nil {
			move, err := s.adjust(repos, oldProductID, oldQuantity, actor, auditSaleUpdateRestore, true)
			if err != nil {
				return err
			}
			moves = append(moves, move)
		}

		existing.Product = nil
		if targetID != oldProductID {
			existing.ProductID = targetID
			existing.ProductName = target.Name
			existing.SKU = target.SKU
		}
		existing.Quantity = newQuantity
		if req.SalePrice != nil {
			existing.SalePrice = req.SalePrice.Round(2)
		}
		existing.TotalAmount = model.LineTotal(newQuantity, existing.SalePrice)
		if req.Customer != nil {
			existing.Customer = *req.Customer
		}
		if req.PaymentMethod != nil {
			existing.PaymentMethod = *req.PaymentMethod
		}
		if req.SaleDate != nil {
			existing.SaleDate = *req.SaleDate
		}
		if req.Note != nil {
			existing.Note = *req.Note
		}
		existing.UpdatedBy = actor.ID
		if err := repos.Sales.Update(existing); err != nil {
			return err
		}

		move, err := s.adjust(repos, targetID, -newQuantity, actor, auditSaleUpdateApply, true)
		if err != nil {
			return err
		}
		moves = append(moves, move)
		sale = existing
		return nil
	})
	if err != nil {
		s.log.Warn("update sale failed", zap.String("sale_id", id.String()), zap.Error(err))
		return nil, err
	}

	s.committed(ws.ActionSaleUpdated, actor, moves)
	s.log.Info("sale updated",
		zap.String("sale_id", id.String()),
		zap.String("product_id", sale.ProductID.String()),
		zap.Int("quantity", sale.Quantity))

	return s.reloadSale(sale), nil
}

func (s *ledgerService) DeleteSale(id uuid.UUID, actor model.Actor) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	var moves []stockMove
	err := s.uow.Do(func(repos repository.Repositories) error {
		existing, err := repos.Sales.FindByID(id)
		if err != nil {
			return notFound(err, ErrSaleNotFound)
		}
		products, err := lockProducts(repos, existing.ProductID)
		if err != nil {
			return err
		}
		if products[existing.ProductID] != nil {
			move, err := s.adjust(repos, existing.ProductID, existing.Quantity, actor, auditSaleDelete, true)
			if err != nil {
				return err
			}
			moves = append(moves, move)
		}
		return repos.Sales.Delete(id, actor.ID)
	})
	if err != nil {
		s.log.Warn("delete sale failed", zap.String("sale_id", id.String()), zap.Error(err))
		return err
	}

	s.committed(ws.ActionSaleDeleted, actor, moves)
	s.log.Info("sale deleted", zap.String("sale_id", id.String()), zap.Bool("stock_restored", len(moves) > 0))
	return nil
}

func (s *ledgerService) GetPurchase(id uuid.UUID) (*model.Purchase, error) {
	purchase, err := s.repos.Purchases.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrPurchaseNotFound)
	}
	return purchase, nil
}

func (s *ledgerService) ListPurchases() ([]model.Purchase, error) {
	return s.repos.Purchases.FindAll()
}

func (s *ledgerService) PurchaseReceipt(id uuid.UUID) (*model.PurchaseReceipt, error) {
	purchase, err := s.GetPurchase(id)
	if err != nil {
		return nil, err
	}
	receipt := purchase.Receipt()
	return &receipt, nil
}

func (s *ledgerService) GetSale(id uuid.UUID) (*model.Sale, error) {
	sale, err := s.repos.Sales.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrSaleNotFound)
	}
	return sale, nil
}

func (s *ledgerService) ListSales() ([]model.Sale, error) {
	return s.repos.Sales.FindAll()
}

func (s *ledgerService) ProductHistory(productID uuid.UUID) ([]model.ProductHistory, error) {
	if _, err := s.repos.Products.FindByID(productID); err != nil {
		return nil, notFound(err, ErrProductNotFound)
	}
	return s.repos.History.FindByProduct(productID)
}

// adjust applies delta to the product's stock and, when audit is set, appends the
// history entry describing it. Callers have already checked sufficiency; the
// conditional update still guards against writers outside this transaction.
func (s *ledgerService) adjust(repos repository.Repositories, productID uuid.UUID, delta int, actor model.Actor, details string, audit bool) (stockMove, error) {
	product, err := repos.Products.AdjustStock(productID, delta, actor.ID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientStock):
			available := 0
			if current, findErr := repos.Products.FindByID(productID); findErr == nil {
				available = current.Stock
			}
			return stockMove{}, &InsufficientStockError{ProductID: productID.String(), Available: available, Requested: -delta}
		case errors.Is(err, gorm.ErrRecordNotFound):
			return stockMove{}, ErrProductNotFound
		}
		return stockMove{}, fmt.Errorf("adjust stock: %w", err)
	}

	move := stockMove{
		productID: productID,
		sku:       product.SKU,
		oldStock:  product.Stock - delta,
		newStock:  product.Stock,
	}
	if !audit {
		return move, nil
	}

	quantity := delta
	if quantity < 0 {
		quantity = -quantity
	}
	entry := &model.ProductHistory{
		ProductID: productID,
		Action:    model.HistoryActionStockChanged,
		ActorID:   actor.ID,
		ActorName: actor.Name,
		OldValue:  move.oldStock,
		NewValue:  move.newStock,
		Details:   fmt.Sprintf(details, quantity, move.oldStock, move.newStock),
	}
	if err := repos.History.Append(entry); err != nil {
		return stockMove{}, fmt.Errorf("append history: %w", err)
	}
	return move, nil
}

// committed runs the post-commit side effects: dashboard cache invalidation and websocket events.
func (s *ledgerService) committed(action string, actor model.Actor, moves []stockMove) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheInvalidateTimeout)
	defer cancel()
	if err := s.cache.DeletePrefix(ctx, cache.DashboardPrefix); err != nil {
		s.log.Warn("dashboard cache invalidation failed", zap.Error(err))
	}

	for _, m := range moves {
		s.hub.Publish(ws.StockEvent{
			Type:      ws.TypeStockUpdate,
			Action:    action,
			ProductID: m.productID.String(),
			SKU:       m.sku,
			OldStock:  m.oldStock,
			NewStock:  m.newStock,
			User:      ws.EventUser{ID: actor.ID, Name: actor.Name, Email: actor.Email},
			Message:   fmt.Sprintf("%s changed stock of %s (%d → %d)", actor.Name, m.sku, m.oldStock, m.newStock),
		})
	}
}

func (s *ledgerService) reloadPurchase(p *model.Purchase) *model.Purchase {
	if fresh, err := s.repos.Purchases.FindByID(p.ID); err == nil {
		return fresh
	}
	return p
}

func (s *ledgerService) reloadSale(sale *model.Sale) *model.Sale {
	if fresh, err := s.repos.Sales.FindByID(sale.ID); err == nil {
		return fresh
	}
	return sale
}

func (s *ledgerService) dateOrNow(t *time.Time) time.Time {
	if t == nil || t.IsZero() {
		return s.now()
	}
	return *t
}

// lockProducts row-locks the given products in id order so two ledger operations
// touching the same pair cannot deadlock. Missing products are absent from the map.
func lockProducts(repos repository.Repositories, ids ...uuid.UUID) (map[uuid.UUID]*model.Product, error) {
	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	sort.Slice(unique, func(i, j int) bool { return unique[i].String() < unique[j].String() })

	products := make(map[uuid.UUID]*model.Product, len(unique))
	for _, id := range unique {
		product, err := repos.Products.FindByIDForUpdate(id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		products[id] = product
	}
	return products, nil
}

// requireActiveSupplier reads the supplier inside the transaction; status is never cached.
func requireActiveSupplier(repos repository.Repositories, id uuid.UUID) error {
	supplier, err := repos.Suppliers.FindByID(id)
	if err != nil {
		return notFound(err, ErrSupplierNotFound)
	}
	if !supplier.IsActive() {
		return fmt.Errorf("%w: %s", ErrInactiveSupplier, supplier.Name)
	}
	return nil
}

func requireActor(actor model.Actor) error {
	if actor.ID == "" {
		return invalidInput("actor is required")
	}
	return nil
}

func validateLedgerInput(req interface{}, actor model.Actor) error {
	if err := validate(req); err != nil {
		return err
	}
	return requireActor(actor)
}

// notFound swaps gorm's record-not-found for the given sentinel and passes other errors through.
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
