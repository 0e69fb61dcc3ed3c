package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/gbpflow/internal/service"
	"github.com/maheshrc27/gbpflow/internal/transfer"
)

type LocationHandler struct {
	s service.LocationService
}

func NewLocationHandler(service service.LocationService) *LocationHandler {
	return &LocationHandler{s: service}
}

func (h *LocationHandler) ListLocations(c *fiber.Ctx) error {
	userID := GetUserID(c)
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	locations, err := h.s.ListLocations(c.Context(), userID, page, limit)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list locations",
		})
	}

	return c.Status(fiber.StatusOK).JSON(locations)
}

func (h *LocationHandler) GetLocation(c *fiber.Ctx) error {
	userID := GetUserID(c)
	locationID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid location id",
		})
	}

	location, err := h.s.GetLocation(c.Context(), userID, int64(locationID))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(location)
}

func (h *LocationHandler) CreateLocation(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var t transfer.LocationCreation
	if err := c.BodyParser(&t); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	locationID, err := h.s.CreateLocation(c.Context(), userID, &t)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id": locationID,
	})
}

func (h *LocationHandler) UpdateLocation(c *fiber.Ctx) error {
	userID := GetUserID(c)
	locationID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid location id",
		})
	}

	var t transfer.LocationUpdate
	if err := c.BodyParser(&t); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	location, err := h.s.UpdateLocation(c.Context(), userID, int64(locationID), &t)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(location)
}

func (h *LocationHandler) RemoveLocation(c *fiber.Ctx) error {
	userID := GetUserID(c)
	locationID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid location id",
		})
	}

	if err := h.s.RemoveLocation(c.Context(), userID, int64(locationID)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Location removed",
	})
}

func (h *LocationHandler) SyncLocations(c *fiber.Ctx) error {
	userID := GetUserID(c)

	imported, err := h.s.SyncFromGoogle(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"imported": imported,
	})
}
