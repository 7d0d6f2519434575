package handler

import (
	"time"

	"stockflow-api/internal/model"
	"stockflow-api/internal/repository"
	"stockflow-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StockHandler struct {
	service service.StockService
}

func NewStockHandler(s service.StockService) *StockHandler {
	return &StockHandler{service: s}
}

func (h *StockHandler) AddStock(c *fiber.Ctx) error {
	var req service.StockMovementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	entry, err := h.service.AddStock(&req, getUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(entry)
}

func (h *StockHandler) RemoveStock(c *fiber.Ctx) error {
	var req service.StockMovementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	entry, err := h.service.RemoveStock(&req, getUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(entry)
}

// StockHistory lists ledger entries for one item, newest first, with optional
// inclusive date bounds, a kind filter and limit/offset pagination
func (h *StockHandler) StockHistory(c *fiber.Ctx) error {
	itemID, err := parseUUID(c.Params("itemId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid variant item ID"})
	}

	filter := repository.HistoryFilter{
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}
	if raw := c.Query("start_date"); raw != "" {
		start, err := parseDate(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid start_date"})
		}
		filter.StartDate = &start
	}
	if raw := c.Query("end_date"); raw != "" {
		end, err := parseDate(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid end_date"})
		}
		filter.EndDate = &end
	}
	if raw := c.Query("transaction_type"); raw != "" {
		filter.TransactionType = model.TransactionType(raw)
	}

	transactions, count, err := h.service.StockHistory(itemID, filter)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"count":   count,
		"results": transactions,
	})
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func (h *StockHandler) GetTransaction(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}
	entry, err := h.service.GetTransaction(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(entry)
}

// ---------- Low-stock alerts ----------

func (h *StockHandler) CurrentAlerts(c *fiber.Ctx) error {
	alerts, err := h.service.CurrentAlerts()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(alerts)
}

func (h *StockHandler) GetAlerts(c *fiber.Ctx) error {
	alerts, err := h.service.GetAlerts()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(alerts)
}

func (h *StockHandler) CreateAlert(c *fiber.Ctx) error {
	var alert model.LowStockAlert
	if err := c.BodyParser(&alert); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := h.service.CreateAlert(&alert); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(alert)
}

func (h *StockHandler) GetAlert(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid alert ID"})
	}
	alert, err := h.service.GetAlert(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(alert)
}

func (h *StockHandler) UpdateAlert(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid alert ID"})
	}
	var alert model.LowStockAlert
	if err := c.BodyParser(&alert); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	updated, err := h.service.UpdateAlert(id, &alert)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(updated)
}

func (h *StockHandler) DeleteAlert(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid alert ID"})
	}
	if err := h.service.DeleteAlert(id); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(204)
}
