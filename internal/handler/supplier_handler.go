package handler

import (
	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SupplierHandler struct {
	suppliers service.SupplierService
}

func NewSupplierHandler(suppliers service.SupplierService) *SupplierHandler {
	return &SupplierHandler{suppliers: suppliers}
}

// GET /api/v1/suppliers?status=Active
func (h *SupplierHandler) GetSuppliers(c *fiber.Ctx) error {
	suppliers, err := h.suppliers.ListSuppliers(model.SupplierStatus(c.Query("status")))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Suppliers fetched", "data", suppliers)
}

func (h *SupplierHandler) GetSupplier(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid supplier ID")
	}
	supplier, err := h.suppliers.GetSupplier(id)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Supplier fetched", "data", supplier)
}

func (h *SupplierHandler) CreateSupplier(c *fiber.Ctx) error {
	var req service.SupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}
	supplier, err := h.suppliers.CreateSupplier(&req, actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusCreated, "Supplier created", "data", supplier)
}

func (h *SupplierHandler) UpdateSupplier(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid supplier ID")
	}
	var req service.SupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}
	supplier, err := h.suppliers.UpdateSupplier(id, &req, actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Supplier updated", "data", supplier)
}

// PATCH /api/v1/suppliers/:id/status
func (h *SupplierHandler) SetSupplierStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid supplier ID")
	}
	var req struct {
		Status model.SupplierStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}
	supplier, err := h.suppliers.SetSupplierStatus(id, req.Status, actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Supplier status updated", "data", supplier)
}

func (h *SupplierHandler) DeleteSupplier(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid supplier ID")
	}
	if err := h.suppliers.DeleteSupplier(id, actorFrom(c)); err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Supplier deleted", "", nil)
}
