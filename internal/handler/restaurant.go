package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/middleware"
	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/repository"
)

type RestaurantHandler struct {
	repo *repository.RestaurantRepo
}

func NewRestaurantHandler(repo *repository.RestaurantRepo) *RestaurantHandler {
	return &RestaurantHandler{repo: repo}
}

// List handles GET /api/restaurants
func (h *RestaurantHandler) List(c fiber.Ctx) error {
	restaurants, err := h.repo.ListAll(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list restaurants")
	}
	return c.JSON(restaurants)
}

// Get handles GET /api/restaurants/:id
func (h *RestaurantHandler) Get(c fiber.Ctx) error {
	id, errMsg := middleware.ValidateRestaurantID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	rest, err := h.repo.FindByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Restaurant not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to lookup restaurant")
	}
	return c.JSON(rest)
}
