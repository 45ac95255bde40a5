package handler

import (
	"go-inventory-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PurchaseHandler struct {
	ledger service.LedgerService
}

func NewPurchaseHandler(ledger service.LedgerService) *PurchaseHandler {
	return &PurchaseHandler{ledger: ledger}
}

// GET /api/v1/purchases
func (h *PurchaseHandler) GetPurchases(c *fiber.Ctx) error {
	purchases, err := h.ledger.ListPurchases()
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Purchases fetched", "data", purchases)
}

// GET /api/v1/purchases/:id
func (h *PurchaseHandler) GetPurchase(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid purchase ID")
	}
	purchase, err := h.ledger.GetPurchase(id)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Purchase fetched", "purchase", purchase)
}

// GET /api/v1/purchases/:id/invoice
func (h *PurchaseHandler) GetPurchaseInvoice(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid purchase ID")
	}
	receipt, err := h.ledger.PurchaseReceipt(id)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Purchase invoice generated", "data", receipt)
}

// POST /api/v1/purchases
// total_amount in the body is ignored; the ledger computes it.
func (h *PurchaseHandler) CreatePurchase(c *fiber.Ctx) error {
	var req service.PurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}
	purchase, err := h.ledger.RecordPurchase(&req, actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusCreated, "Purchase recorded", "purchase", purchase)
}

// PUT /api/v1/purchases/:id
func (h *PurchaseHandler) UpdatePurchase(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid purchase ID")
	}
	var req service.PurchaseUpdate
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}
	purchase, err := h.ledger.UpdatePurchase(id, &req, actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Purchase updated", "purchase", purchase)
}

// DELETE /api/v1/purchases/:id
func (h *PurchaseHandler) DeletePurchase(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid purchase ID")
	}
	if err := h.ledger.DeletePurchase(id, actorFrom(c)); err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Purchase deleted", "", nil)
}
