package handlers

import (
	"errors"
	"net/http"
	"strings"

	"feastly/internal/analytics"
	"feastly/internal/common"
	"feastly/internal/models"
	"feastly/internal/repositories"

	"github.com/labstack/echo/v4"
)

// RestaurantHandlers handles HTTP requests for restaurants
type RestaurantHandlers struct {
	restaurantRepo repositories.RestaurantRepository
	analyticsSvc   *analytics.AnalyticsService
}

func NewRestaurantHandlers(restaurantRepo repositories.RestaurantRepository, analyticsSvc *analytics.AnalyticsService) *RestaurantHandlers {
	return &RestaurantHandlers{
		restaurantRepo: restaurantRepo,
		analyticsSvc:   analyticsSvc,
	}
}

type CreateRestaurantRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
}

// CreateRestaurant handles POST /restaurants
func (h *RestaurantHandlers) CreateRestaurant(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateRestaurantRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return common.SendValidationError(c, "name", "name is required")
	}

	restaurant := &models.Restaurant{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
	}
	if err := h.restaurantRepo.Create(ctx, restaurant); err != nil {
		if common.IsClientError(err) {
			return common.SendClientError(c, err.Error())
		}
		return common.SendServerError(c, "Failed to create restaurant")
	}

	return c.JSON(http.StatusCreated, restaurant)
}

// ListRestaurants handles GET /restaurants
func (h *RestaurantHandlers) ListRestaurants(c echo.Context) error {
	ctx := c.Request().Context()

	restaurants, err := h.restaurantRepo.List(ctx)
	if err != nil {
		return common.SendServerError(c, "Failed to list restaurants")
	}

	return c.JSON(http.StatusOK, restaurants)
}

// GetRestaurant handles GET /restaurants/:id
func (h *RestaurantHandlers) GetRestaurant(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantID, err := common.ValidateUUID(c.Param("id"), "restaurant_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	restaurant, err := h.restaurantRepo.GetByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.SendNotFoundError(c, "Restaurant")
		}
		return common.SendServerError(c, "Failed to load restaurant")
	}

	return c.JSON(http.StatusOK, restaurant)
}

// DeleteRestaurant handles DELETE /restaurants/:id
func (h *RestaurantHandlers) DeleteRestaurant(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantID, err := common.ValidateUUID(c.Param("id"), "restaurant_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	deletedID, err := h.restaurantRepo.Delete(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.SendNotFoundError(c, "Restaurant")
		}
		return common.SendServerError(c, "Failed to delete restaurant")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Restaurant deleted successfully",
		"id":      deletedID,
	})
}

// GetRestaurantStats handles GET /restaurants/:id/stats
func (h *RestaurantHandlers) GetRestaurantStats(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantID, err := common.ValidateUUID(c.Param("id"), "restaurant_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if _, err := h.restaurantRepo.GetByID(ctx, restaurantID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.SendNotFoundError(c, "Restaurant")
		}
		return common.SendServerError(c, "Failed to load restaurant")
	}

	stats, err := h.analyticsSvc.RestaurantStats(ctx, restaurantID)
	if err != nil {
		return common.SendServerError(c, "Failed to compute restaurant stats")
	}

	return c.JSON(http.StatusOK, stats)
}
