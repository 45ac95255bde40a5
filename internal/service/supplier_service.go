package service

import (
	"errors"
	"strings"

	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SupplierService interface {
	CreateSupplier(req *SupplierRequest, actor model.Actor) (*model.Supplier, error)
	UpdateSupplier(id uuid.UUID, req *SupplierRequest, actor model.Actor) (*model.Supplier, error)
	SetSupplierStatus(id uuid.UUID, status model.SupplierStatus, actor model.Actor) (*model.Supplier, error)
	DeleteSupplier(id uuid.UUID, actor model.Actor) error
	GetSupplier(id uuid.UUID) (*model.Supplier, error)
	ListSuppliers(status model.SupplierStatus) ([]model.Supplier, error)
}

type SupplierRequest struct {
	Name          string               `json:"name" validate:"required,max=255"`
	ContactPerson string               `json:"contact_person" validate:"max=255"`
	Email         string               `json:"email" validate:"omitempty,email"`
	Phone         string               `json:"phone" validate:"max=30"`
	Address       string               `json:"address"`
	Status        model.SupplierStatus `json:"status" validate:"omitempty,oneof=Active Inactive"`
}

type supplierService struct {
	supplierRepo repository.SupplierRepository
	log          *zap.Logger
}

func NewSupplierService(supplierRepo repository.SupplierRepository, log *zap.Logger) SupplierService {
	if log == nil {
		log = zap.NewNop()
	}
	return &supplierService{supplierRepo: supplierRepo, log: log.Named("supplier")}
}

func (s *supplierService) CreateSupplier(req *SupplierRequest, actor model.Actor) (*model.Supplier, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if err := s.ensureEmailAvailable(req.Email, uuid.Nil); err != nil {
		return nil, err
	}

	supplier := &model.Supplier{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         strings.TrimSpace(req.Email),
		Phone:         req.Phone,
		Address:       req.Address,
		Status:        req.Status,
	}
	if supplier.Status == "" {
		supplier.Status = model.SupplierActive
	}
	supplier.CreatedBy = actor.ID
	supplier.UpdatedBy = actor.ID

	if err := s.supplierRepo.Create(supplier); err != nil {
		return nil, err
	}
	s.log.Info("supplier created", zap.String("supplier_id", supplier.ID.String()), zap.String("status", string(supplier.Status)))
	return supplier, nil
}

func (s *supplierService) UpdateSupplier(id uuid.UUID, req *SupplierRequest, actor model.Actor) (*model.Supplier, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	supplier, err := s.supplierRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrSupplierNotFound)
	}
	if err := s.ensureEmailAvailable(req.Email, id); err != nil {
		return nil, err
	}

	supplier.Name = req.Name
	supplier.ContactPerson = req.ContactPerson
	supplier.Email = strings.TrimSpace(req.Email)
	supplier.Phone = req.Phone
	supplier.Address = req.Address
	if req.Status != "" {
		supplier.Status = req.Status
	}
	supplier.UpdatedBy = actor.ID
	if err := s.supplierRepo.Update(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *supplierService) SetSupplierStatus(id uuid.UUID, status model.SupplierStatus, actor model.Actor) (*model.Supplier, error) {
	if status != model.SupplierActive && status != model.SupplierInactive {
		return nil, invalidInput("status must be %s or %s", model.SupplierActive, model.SupplierInactive)
	}
	supplier, err := s.supplierRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrSupplierNotFound)
	}
	supplier.Status = status
	supplier.UpdatedBy = actor.ID
	if err := s.supplierRepo.Update(supplier); err != nil {
		return nil, err
	}
	s.log.Info("supplier status changed", zap.String("supplier_id", id.String()), zap.String("status", string(status)))
	return supplier, nil
}

func (s *supplierService) DeleteSupplier(id uuid.UUID, actor model.Actor) error {
	if err := s.supplierRepo.Delete(id, actor.ID); err != nil {
		return notFound(err, ErrSupplierNotFound)
	}
	return nil
}

func (s *supplierService) GetSupplier(id uuid.UUID) (*model.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrSupplierNotFound)
	}
	return supplier, nil
}

func (s *supplierService) ListSuppliers(status model.SupplierStatus) ([]model.Supplier, error) {
	if status != "" && status != model.SupplierActive && status != model.SupplierInactive {
		return nil, invalidInput("unknown supplier status %q", status)
	}
	return s.supplierRepo.FindAll(status)
}

func (s *supplierService) ensureEmailAvailable(email string, self uuid.UUID) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	existing, err := s.supplierRepo.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != self {
		return ErrEmailExists
	}
	return nil
}
