package services

import (
	"context"
	"fmt"

	"feastly/internal/common"
	"feastly/internal/models"
	"feastly/internal/repositories"

	"github.com/google/uuid"
)

// OrderItemInput is one requested line item: a menu item reference, a
// quantity and the unit price snapshot the client observed.
type OrderItemInput struct {
	MenuItemID uuid.UUID
	Quantity   int
	Price      float64
}

// OrderServiceInterface defines the order operations exposed to the HTTP layer.
type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, customerID, restaurantID uuid.UUID, totalPrice float64, paymentStatus string, items []OrderItemInput) (*models.Order, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	ListCustomerOrders(ctx context.Context, customerID uuid.UUID) ([]*models.Order, error)
	ListRestaurantOrders(ctx context.Context, restaurantID uuid.UUID) ([]*models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status string) (*models.Order, error)
	DeleteOrder(ctx context.Context, orderID uuid.UUID) (uuid.UUID, error)
}

type orderService struct {
	orderRepo repositories.OrderRepository
}

// NewOrderService creates a new order service instance
func NewOrderService(orderRepo repositories.OrderRepository) OrderServiceInterface {
	return &orderService{orderRepo: orderRepo}
}

// CreateOrder validates the request and persists the order with its items in
// one transaction. The client-supplied total must equal the sum of
// quantity x price over the items to the cent; the original system trusted
// the client here, we verify instead.
func (s *orderService) CreateOrder(ctx context.Context, customerID, restaurantID uuid.UUID, totalPrice float64, paymentStatus string, items []OrderItemInput) (*models.Order, error) {
	if customerID == uuid.Nil {
		return nil, common.NewValidationError("customer_id", "customer ID is required")
	}
	if restaurantID == uuid.Nil {
		return nil, common.NewValidationError("restaurant_id", "restaurant ID is required")
	}
	if totalPrice < 0 {
		return nil, common.NewValidationError("total_price", "total price must not be negative")
	}
	if paymentStatus == "" {
		paymentStatus = models.PaymentStatusUnpaid
	}
	if !models.ValidPaymentStatus(paymentStatus) {
		return nil, common.NewValidationError("payment_status", fmt.Sprintf("payment status must be %q or %q", models.PaymentStatusPaid, models.PaymentStatusUnpaid))
	}

	var sumCents int64
	orderItems := make([]*models.OrderItem, 0, len(items))
	for i, item := range items {
		if item.MenuItemID == uuid.Nil {
			return nil, common.NewValidationError(fmt.Sprintf("items[%d].menu_item_id", i), "menu item ID is required")
		}
		if item.Quantity <= 0 {
			return nil, common.NewValidationError(fmt.Sprintf("items[%d].quantity", i), "quantity must be a positive integer")
		}
		if item.Price < 0 {
			return nil, common.NewValidationError(fmt.Sprintf("items[%d].price", i), "price must not be negative")
		}
		sumCents += int64(item.Quantity) * common.CentsFromFloat(item.Price)
		orderItems = append(orderItems, &models.OrderItem{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			Price:      common.NumericFromFloat(item.Price),
		})
	}

	if sumCents != common.CentsFromFloat(totalPrice) {
		return nil, common.NewValidationError("total_price", "total price does not match the sum of item prices")
	}

	order := &models.Order{
		CustomerID:    customerID,
		RestaurantID:  restaurantID,
		TotalPrice:    common.NumericFromFloat(totalPrice),
		Status:        models.OrderStatusPlaced,
		PaymentStatus: paymentStatus,
		Items:         orderItems,
	}

	return s.orderRepo.Create(ctx, order)
}

func (s *orderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	return s.orderRepo.GetByID(ctx, orderID)
}

func (s *orderService) ListCustomerOrders(ctx context.Context, customerID uuid.UUID) ([]*models.Order, error) {
	return s.orderRepo.ListByCustomer(ctx, customerID)
}

func (s *orderService) ListRestaurantOrders(ctx context.Context, restaurantID uuid.UUID) ([]*models.Order, error) {
	return s.orderRepo.ListByRestaurant(ctx, restaurantID)
}

// UpdateOrderStatus sets the status unconditionally. Both placed->delivered
// and delivered->placed are accepted; only enum membership is enforced.
func (s *orderService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, common.NewValidationError("status", fmt.Sprintf("status must be %q or %q", models.OrderStatusPlaced, models.OrderStatusDelivered))
	}
	return s.orderRepo.UpdateStatus(ctx, orderID, status)
}

func (s *orderService) DeleteOrder(ctx context.Context, orderID uuid.UUID) (uuid.UUID, error) {
	return s.orderRepo.Delete(ctx, orderID)
}
