package service

import (
	"errors"
	"fmt"

	"go-inventory-ledger/pkg/jwt"
	"go-inventory-ledger/pkg/validator"
)

// ErrorKind classifies service errors for the transport layer.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindNotFound
	KindInactiveSupplier
	KindInsufficientStock
	KindInvalidInput
	KindConflict
	KindUnauthorized
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInactiveSupplier:
		return "inactive_supplier"
	case KindInsufficientStock:
		return "insufficient_stock"
	case KindInvalidInput:
		return "invalid_input"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	}
	return "internal"
}

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrSupplierNotFound  = errors.New("supplier not found")
	ErrPurchaseNotFound  = errors.New("purchase not found")
	ErrSaleNotFound      = errors.New("sale not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrRoleNotFound      = errors.New("role not found")
	ErrInactiveSupplier  = errors.New("supplier is inactive")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidInput      = errors.New("invalid input")
	ErrSKUExists         = errors.New("SKU already exists")
	ErrEmailExists       = errors.New("email already exists")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrSessionTimeout     = errors.New("session expired due to inactivity")
	ErrSessionReplaced    = errors.New("session expired (logged in on another device)")
)

// InsufficientStockError reports how much stock was available when a request asked for more.
type InsufficientStockError struct {
	ProductID string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s (available=%d, requested=%d)", e.ProductID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// ValidationError carries the first failed field of a request.
type ValidationError struct {
	Field string
	Tag   string
	msg   string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalidInput(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// validate runs struct validation and converts the first failure into a ValidationError.
func validate(req interface{}) error {
	errs := validator.ValidateStruct(req)
	if len(errs) == 0 {
		return nil
	}
	first := errs[0]
	return &ValidationError{Field: first.FailedField, Tag: first.Tag, msg: first.Error()}
}

// KindOf maps an error returned by any service to its kind. Unknown errors are internal.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrSupplierNotFound),
		errors.Is(err, ErrPurchaseNotFound),
		errors.Is(err, ErrSaleNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrRoleNotFound):
		return KindNotFound
	case errors.Is(err, ErrInactiveSupplier):
		return KindInactiveSupplier
	case errors.Is(err, ErrInsufficientStock):
		return KindInsufficientStock
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrSKUExists), errors.Is(err, ErrEmailExists):
		return KindConflict
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrUserInactive),
		errors.Is(err, ErrWrongPassword),
		errors.Is(err, ErrSessionTimeout),
		errors.Is(err, ErrSessionReplaced),
		errors.Is(err, jwt.ErrInvalidToken),
		errors.Is(err, jwt.ErrMissingToken):
		return KindUnauthorized
	}
	return KindInternal
}
