package handler

import (
	"stockflow-api/internal/model"
	"stockflow-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler serves the reference-data hierarchy endpoints.
type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(s service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

// ---------- Categories ----------

func (h *CatalogHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetCategories()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(categories)
}

func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var category model.Category
	if err := c.BodyParser(&category); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := h.service.CreateCategory(&category); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(category)
}

func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
	}
	category, err := h.service.GetCategory(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(category)
}

func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
	}
	var category model.Category
	if err := c.BodyParser(&category); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	updated, err := h.service.UpdateCategory(id, &category)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(updated)
}

func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
	}
	if err := h.service.DeleteCategory(id); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(204)
}

// ---------- SubCategories ----------

func (h *CatalogHandler) GetSubCategories(c *fiber.Ctx) error {
	categoryID, err := queryUUID(c, "category")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category filter"})
	}
	subcategories, err := h.service.GetSubCategories(categoryID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(subcategories)
}

func (h *CatalogHandler) CreateSubCategory(c *fiber.Ctx) error {
	var subcategory model.SubCategory
	if err := c.BodyParser(&subcategory); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := h.service.CreateSubCategory(&subcategory); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(subcategory)
}

func (h *CatalogHandler) GetSubCategory(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid subcategory ID"})
	}
	subcategory, err := h.service.GetSubCategory(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(subcategory)
}

func (h *CatalogHandler) UpdateSubCategory(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid subcategory ID"})
	}
	var subcategory model.SubCategory
	if err := c.BodyParser(&subcategory); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	updated, err := h.service.UpdateSubCategory(id, &subcategory)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(updated)
}

func (h *CatalogHandler) DeleteSubCategory(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid subcategory ID"})
	}
	if err := h.service.DeleteSubCategory(id); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(204)
}

// ---------- Variants ----------

func (h *CatalogHandler) GetVariants(c *fiber.Ctx) error {
	subcategoryID, err := queryUUID(c, "subcategory")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid subcategory filter"})
	}
	variants, err := h.service.GetVariants(subcategoryID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(variants)
}

func (h *CatalogHandler) CreateVariant(c *fiber.Ctx) error {
	var variant model.Variant
	if err := c.BodyParser(&variant); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := h.service.CreateVariant(&variant); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(variant)
}

func (h *CatalogHandler) GetVariant(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid variant ID"})
	}
	variant, err := h.service.GetVariant(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(variant)
}

func (h *CatalogHandler) UpdateVariant(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid variant ID"})
	}
	var variant model.Variant
	if err := c.BodyParser(&variant); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	updated, err := h.service.UpdateVariant(id, &variant)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(updated)
}

func (h *CatalogHandler) DeleteVariant(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid variant ID"})
	}
	if err := h.service.DeleteVariant(id); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(204)
}

// ---------- Variant options ----------

func (h *CatalogHandler) GetVariantOptions(c *fiber.Ctx) error {
	variantID, err := queryUUID(c, "variant")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid variant filter"})
	}
	options, err := h.service.GetVariantOptions(variantID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(options)
}

func (h *CatalogHandler) CreateVariantOption(c *fiber.Ctx) error {
	var option model.VariantOption
	if err := c.BodyParser(&option); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := h.service.CreateVariantOption(&option); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(option)
}

func (h *CatalogHandler) GetVariantOption(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid option ID"})
	}
	option, err := h.service.GetVariantOption(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(option)
}

func (h *CatalogHandler) UpdateVariantOption(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid option ID"})
	}
	var option model.VariantOption
	if err := c.BodyParser(&option); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	updated, err := h.service.UpdateVariantOption(id, &option)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(updated)
}

func (h *CatalogHandler) DeleteVariantOption(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid option ID"})
	}
	if err := h.service.DeleteVariantOption(id); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(204)
}
