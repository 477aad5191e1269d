package handlers

import (
	"errors"
	"net/http"

	"feastly/internal/common"
	"feastly/internal/models"
	"feastly/internal/services"

	"github.com/labstack/echo/v4"
)

// OrderHandlers handles HTTP requests for orders
type OrderHandlers struct {
	orderService services.OrderServiceInterface
}

// NewOrderHandlers creates a new order handlers instance
func NewOrderHandlers(orderService services.OrderServiceInterface) *OrderHandlers {
	return &OrderHandlers{orderService: orderService}
}

// CreateOrderRequest is the POST /orders payload.
type CreateOrderRequest struct {
	CustomerID    string                   `json:"customer_id"`
	RestaurantID  string                   `json:"restaurant_id"`
	TotalPrice    float64                  `json:"total_price"`
	PaymentStatus string                   `json:"payment_status"`
	Items         []CreateOrderItemRequest `json:"items"`
}

type CreateOrderItemRequest struct {
	MenuItemID string  `json:"menu_item_id"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

// sendOrderError translates service and repository errors into the HTTP
// error contract: 404 for missing rows, 400 for client mistakes, 500
// otherwise with no internal detail leaked.
func sendOrderError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrNotFound):
		return common.SendNotFoundError(c, "Order")
	case common.IsClientError(err):
		return common.SendClientError(c, err.Error())
	default:
		return common.SendServerError(c, "Order operation failed")
	}
}

// CreateOrder handles POST /orders
func (h *OrderHandlers) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	customerID, err := common.ValidateUUID(req.CustomerID, "customer_id")
	if err != nil {
		return common.SendValidationError(c, "customer_id", err.Error())
	}
	restaurantID, err := common.ValidateUUID(req.RestaurantID, "restaurant_id")
	if err != nil {
		return common.SendValidationError(c, "restaurant_id", err.Error())
	}

	items := make([]services.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		menuItemID, err := common.ValidateUUID(item.MenuItemID, "menu_item_id")
		if err != nil {
			return common.SendValidationError(c, "menu_item_id", err.Error())
		}
		items = append(items, services.OrderItemInput{
			MenuItemID: menuItemID,
			Quantity:   item.Quantity,
			Price:      item.Price,
		})
	}

	order, err := h.orderService.CreateOrder(ctx, customerID, restaurantID, req.TotalPrice, req.PaymentStatus, items)
	if err != nil {
		return sendOrderError(c, err)
	}

	return c.JSON(http.StatusOK, order.Response())
}

// GetOrder handles GET /orders/:id
func (h *OrderHandlers) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := common.ValidateUUID(c.Param("id"), "order_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	order, err := h.orderService.GetOrder(ctx, orderID)
	if err != nil {
		return sendOrderError(c, err)
	}

	return c.JSON(http.StatusOK, order.Response())
}

// GetCustomerOrders handles GET /orders/customer/:customer_id
func (h *OrderHandlers) GetCustomerOrders(c echo.Context) error {
	ctx := c.Request().Context()

	customerID, err := common.ValidateUUID(c.Param("customer_id"), "customer_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	orders, err := h.orderService.ListCustomerOrders(ctx, customerID)
	if err != nil {
		return sendOrderError(c, err)
	}

	return c.JSON(http.StatusOK, models.OrderResponses(orders))
}

// GetRestaurantOrders handles GET /orders/restaurant/:restaurant_id
func (h *OrderHandlers) GetRestaurantOrders(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantID, err := common.ValidateUUID(c.Param("restaurant_id"), "restaurant_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	orders, err := h.orderService.ListRestaurantOrders(ctx, restaurantID)
	if err != nil {
		return sendOrderError(c, err)
	}

	return c.JSON(http.StatusOK, models.OrderResponses(orders))
}

// UpdateOrderStatusRequest is the PATCH /orders/:id payload.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus handles PATCH /orders/:id
func (h *OrderHandlers) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := common.ValidateUUID(c.Param("id"), "order_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	order, err := h.orderService.UpdateOrderStatus(ctx, orderID, req.Status)
	if err != nil {
		return sendOrderError(c, err)
	}

	return c.JSON(http.StatusOK, order.Response())
}

// DeleteOrder handles DELETE /orders/:id
func (h *OrderHandlers) DeleteOrder(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := common.ValidateUUID(c.Param("id"), "order_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	deletedID, err := h.orderService.DeleteOrder(ctx, orderID)
	if err != nil {
		return sendOrderError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Order deleted successfully",
		"id":      deletedID,
	})
}
