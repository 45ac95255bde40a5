package handler

import (
	"strconv"
	"time"

	"go-inventory-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetStockMovement returns stock movement data for charts
// Query params: days (default 7)
func (h *DashboardHandler) GetStockMovement(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", "7"))
	if err != nil {
		days = 7
	}

	data, err := h.service.GetStockMovement(c.UserContext(), days)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"period":  days,
		"data":    data,
	})
}

// GetDashboardStats returns overview statistics
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.GetDashboardStats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Dashboard stats fetched", "data", stats)
}

// GetFinancialSummary compares revenue and purchase spend.
// Query params: from, to (YYYY-MM-DD, default the last 30 days)
func (h *DashboardHandler) GetFinancialSummary(c *fiber.Ctx) error {
	now := time.Now()
	to := now
	from := now.AddDate(0, 0, -30)

	if v := c.Query("from"); v != "" {
		t, err := time.ParseInLocation(dateLayout, v, time.Local)
		if err != nil {
			return badRequest(c, "Invalid 'from' date, expected YYYY-MM-DD")
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.ParseInLocation(dateLayout, v, time.Local)
		if err != nil {
			return badRequest(c, "Invalid 'to' date, expected YYYY-MM-DD")
		}
		// whole day inclusive
		to = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	summary, err := h.service.GetFinancialSummary(c.UserContext(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Financial summary fetched", "data", summary)
}
