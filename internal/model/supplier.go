package model

type SupplierStatus string

const (
	SupplierActive   SupplierStatus = "Active"
	SupplierInactive SupplierStatus = "Inactive"
)

type Supplier struct {
	BaseModel
	Name          string         `gorm:"type:varchar(255);not null" json:"name" validate:"required,max=255"`
	ContactPerson string         `gorm:"type:varchar(255)" json:"contact_person"`
	Email         string         `gorm:"type:varchar(255);index" json:"email" validate:"omitempty,email"`
	Phone         string         `gorm:"type:varchar(30)" json:"phone" validate:"max=30"`
	Address       string         `gorm:"type:text" json:"address"`
	Status        SupplierStatus `gorm:"type:varchar(10);not null;default:Active" json:"status" validate:"required,oneof=Active Inactive"`
}

func (s *Supplier) IsActive() bool {
	return s.Status == SupplierActive
}
