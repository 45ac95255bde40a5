package model

// Role represents user roles in the system
type Role struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Code        string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // SUPER_ADMIN, ADMIN
	Name        string      `gorm:"type:varchar(100)" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Privileges  []Privilege `gorm:"many2many:role_privileges;" json:"privileges,omitempty"`
}

const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleAdmin      = "ADMIN"
)

var DefaultRoles = []Role{
	{
		Code:        RoleSuperAdmin,
		Name:        "Super Administrator",
		Description: "Full system access including user management",
	},
	{
		Code:        RoleAdmin,
		Name:        "Administrator",
		Description: "Inventory, purchasing and sales access",
	},
}
