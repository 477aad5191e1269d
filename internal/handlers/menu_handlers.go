package handlers

import (
	"errors"
	"net/http"
	"strings"

	"feastly/internal/common"
	"feastly/internal/models"
	"feastly/internal/repositories"

	"github.com/labstack/echo/v4"
)

// MenuHandlers handles HTTP requests for restaurant menus
type MenuHandlers struct {
	menuItemRepo   repositories.MenuItemRepository
	restaurantRepo repositories.RestaurantRepository
}

func NewMenuHandlers(menuItemRepo repositories.MenuItemRepository, restaurantRepo repositories.RestaurantRepository) *MenuHandlers {
	return &MenuHandlers{
		menuItemRepo:   menuItemRepo,
		restaurantRepo: restaurantRepo,
	}
}

type CreateMenuItemRequest struct {
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Category  *string `json:"category"`
	Image     *string `json:"image"`
	Available *bool   `json:"available"`
}

// CreateMenuItem handles POST /restaurants/:id/menu
func (h *MenuHandlers) CreateMenuItem(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantID, err := common.ValidateUUID(c.Param("id"), "restaurant_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req CreateMenuItemRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return common.SendValidationError(c, "name", "name is required")
	}
	if req.Price < 0 {
		return common.SendValidationError(c, "price", "price must not be negative")
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	item := &models.MenuItem{
		RestaurantID: restaurantID,
		Name:         req.Name,
		Price:        common.NumericFromFloat(req.Price),
		Category:     req.Category,
		Image:        req.Image,
		Available:    available,
	}
	if err := h.menuItemRepo.Create(ctx, item); err != nil {
		if common.IsClientError(err) {
			return common.SendClientError(c, "Restaurant does not exist")
		}
		return common.SendServerError(c, "Failed to create menu item")
	}

	return c.JSON(http.StatusCreated, item.Response())
}

// ListMenu handles GET /restaurants/:id/menu
func (h *MenuHandlers) ListMenu(c echo.Context) error {
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

	items, err := h.menuItemRepo.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return common.SendServerError(c, "Failed to list menu items")
	}

	responses := make([]*models.MenuItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, item.Response())
	}
	return c.JSON(http.StatusOK, responses)
}

// GetMenuItem handles GET /menu-items/:id
func (h *MenuHandlers) GetMenuItem(c echo.Context) error {
	ctx := c.Request().Context()

	itemID, err := common.ValidateUUID(c.Param("id"), "menu_item_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	item, err := h.menuItemRepo.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.SendNotFoundError(c, "Menu item")
		}
		return common.SendServerError(c, "Failed to load menu item")
	}

	return c.JSON(http.StatusOK, item.Response())
}

// DeleteMenuItem handles DELETE /menu-items/:id
func (h *MenuHandlers) DeleteMenuItem(c echo.Context) error {
	ctx := c.Request().Context()

	itemID, err := common.ValidateUUID(c.Param("id"), "menu_item_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	deletedID, err := h.menuItemRepo.Delete(ctx, itemID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.SendNotFoundError(c, "Menu item")
		}
		return common.SendServerError(c, "Failed to delete menu item")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Menu item deleted successfully",
		"id":      deletedID,
	})
}
