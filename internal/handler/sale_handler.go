package handler

import (
	"go-inventory-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SaleHandler struct {
	ledger service.LedgerService
}

func NewSaleHandler(ledger service.LedgerService) *SaleHandler {
	return &SaleHandler{ledger: ledger}
}

func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	sales, err := h.ledger.ListSales()
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Sales fetched", "data", sales)
}

func (h *SaleHandler) GetSale(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid sale ID")
	}
	sale, err := h.ledger.GetSale(id)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Sale fetched", "sale", sale)
}

func (h *SaleHandler) CreateSale(c *fiber.Ctx) error {
	var req service.SaleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}
	sale, err := h.ledger.RecordSale(&req, actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusCreated, "Sale recorded", "sale", sale)
}

func (h *SaleHandler) UpdateSale(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid sale ID")
	}
	var req service.SaleUpdate
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}
	sale, err := h.ledger.UpdateSale(id, &req, actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Sale updated", "sale", sale)
}

func (h *SaleHandler) DeleteSale(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid sale ID")
	}
	if err := h.ledger.DeleteSale(id, actorFrom(c)); err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Sale deleted", "", nil)
}
