package handler

import (
	"go-inventory-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	products service.ProductService
	ledger   service.LedgerService
}

func NewProductHandler(products service.ProductService, ledger service.LedgerService) *ProductHandler {
	return &ProductHandler{products: products, ledger: ledger}
}

// GET /api/v1/products
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.products.ListProducts()
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Products fetched", "data", products)
}

// GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}
	product, err := h.products.GetProduct(id)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Product fetched", "data", product)
}

// POST /api/v1/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}
	product, err := h.products.CreateProduct(&req, actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusCreated, "Product created", "data", product)
}

// PUT /api/v1/products/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}
	var req service.ProductUpdate
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}
	product, err := h.products.UpdateProduct(id, &req, actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Product updated", "data", product)
}

// DELETE /api/v1/products/:id
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}
	if err := h.products.DeleteProduct(id, actorFrom(c)); err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Product deleted", "", nil)
}

// GET /api/v1/products/:id/history
func (h *ProductHandler) GetProductHistory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}
	entries, err := h.ledger.ProductHistory(id)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Product history fetched", "data", entries)
}
