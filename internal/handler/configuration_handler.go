package handler

import (
	"stockflow-api/internal/model"
	"stockflow-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ConfigurationHandler struct {
	service service.ConfigurationService
}

func NewConfigurationHandler(s service.ConfigurationService) *ConfigurationHandler {
	return &ConfigurationHandler{service: s}
}

func (h *ConfigurationHandler) GetConfigurations(c *fiber.Ctx) error {
	configs, err := h.service.GetConfigurations()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(configs)
}

func (h *ConfigurationHandler) CreateConfiguration(c *fiber.Ctx) error {
	var config model.ProductConfiguration
	if err := c.BodyParser(&config); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := h.service.CreateConfiguration(&config); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(config)
}

func (h *ConfigurationHandler) GetConfiguration(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid configuration ID"})
	}
	config, err := h.service.GetConfiguration(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(config)
}

func (h *ConfigurationHandler) UpdateConfiguration(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid configuration ID"})
	}
	var config model.ProductConfiguration
	if err := c.BodyParser(&config); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	updated, err := h.service.UpdateConfiguration(id, &config)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(updated)
}

func (h *ConfigurationHandler) DeleteConfiguration(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid configuration ID"})
	}
	if err := h.service.DeleteConfiguration(id); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(204)
}

func (h *ConfigurationHandler) ByVariantItem(c *fiber.Ctx) error {
	itemID, err := parseUUID(c.Params("itemId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid variant item ID"})
	}
	configs, err := h.service.GetConfigurationsByItem(itemID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(configs)
}
