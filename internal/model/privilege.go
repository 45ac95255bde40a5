package model

import "strings"

// Privilege represents a permission that can be assigned to users
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "sale:create"
	Name string `gorm:"type:varchar(100)" json:"name"`
}

var DefaultPrivileges = []Privilege{
	// User management
	{Code: "user:view", Name: "View User"},
	{Code: "user:create", Name: "Create User"},
	{Code: "user:update", Name: "Update User"},
	{Code: "user:delete", Name: "Delete User"},
	{Code: "user:update_privilege", Name: "Update User Privileges"},
	// Products
	{Code: "product:view", Name: "View Product"},
	{Code: "product:create", Name: "Create Product"},
	{Code: "product:update", Name: "Update Product"},
	{Code: "product:delete", Name: "Delete Product"},
	// Suppliers
	{Code: "supplier:view", Name: "View Supplier"},
	{Code: "supplier:create", Name: "Create Supplier"},
	{Code: "supplier:update", Name: "Update Supplier"},
	{Code: "supplier:delete", Name: "Delete Supplier"},
	// Purchases (stock in)
	{Code: "purchase:view", Name: "View Purchase"},
	{Code: "purchase:create", Name: "Create Purchase"},
	{Code: "purchase:update", Name: "Update Purchase"},
	{Code: "purchase:delete", Name: "Delete Purchase"},
	// Sales (stock out)
	{Code: "sale:view", Name: "View Sale"},
	{Code: "sale:create", Name: "Create Sale"},
	{Code: "sale:update", Name: "Update Sale"},
	{Code: "sale:delete", Name: "Delete Sale"},
	// Dashboard
	{Code: "dashboard:view", Name: "View Dashboard"},
}

// IsUserManagement reports whether a privilege is reserved for super admins.
func (p Privilege) IsUserManagement() bool {
	return strings.HasPrefix(p.Code, "user:") && p.Code != "user:view"
}
