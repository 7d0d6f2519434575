package handler

import (
	"stockflow-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type VariantItemHandler struct {
	service service.ProductService
}

func NewVariantItemHandler(s service.ProductService) *VariantItemHandler {
	return &VariantItemHandler{service: s}
}

// GetItems lists all items, or looks up a single one by SKU when the
// product_code query parameter is present
func (h *VariantItemHandler) GetItems(c *fiber.Ctx) error {
	if code := c.Query("product_code"); code != "" {
		item, err := h.service.GetItemByCode(code)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(item)
	}

	items, err := h.service.GetItems()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(items)
}

func (h *VariantItemHandler) CreateItem(c *fiber.Ctx) error {
	var req service.VariantItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	item, err := h.service.CreateItem(&req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(item)
}

func (h *VariantItemHandler) GetItem(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid variant item ID"})
	}
	item, err := h.service.GetItem(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(item)
}

func (h *VariantItemHandler) UpdateItem(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid variant item ID"})
	}
	var req service.VariantItemUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	item, err := h.service.UpdateItem(id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(item)
}

func (h *VariantItemHandler) DeleteItem(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid variant item ID"})
	}
	if err := h.service.DeleteItem(id); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(204)
}

type bulkCreateRequest struct {
	Items []service.VariantItemRequest `json:"items"`
}

// BulkCreate applies the single-item create pipeline to each spec in order;
// the first failure aborts the whole batch
func (h *VariantItemHandler) BulkCreate(c *fiber.Ctx) error {
	var req bulkCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	items, err := h.service.BulkCreateItems(req.Items)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(items)
}

func (h *VariantItemHandler) AddToProduct(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("productId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}
	var req bulkCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	items, err := h.service.AddItemsToProduct(productID, req.Items)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(items)
}

func (h *VariantItemHandler) ByProduct(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("productId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}
	items, err := h.service.GetItemsByProduct(productID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(items)
}

type adjustStockRequest struct {
	QuantityChange *int `json:"quantity_change"`
}

// AdjustStock applies a signed correction to one item's quantity and returns
// the fresh per-item and per-product figures
func (h *VariantItemHandler) AdjustStock(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid variant item ID"})
	}
	var req adjustStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.QuantityChange == nil {
		return c.Status(400).JSON(fiber.Map{"error": "quantity_change is required"})
	}

	result, err := h.service.AdjustStock(id, *req.QuantityChange, getUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(result)
}
