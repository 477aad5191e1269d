package models

import (
	"time"

	"feastly/internal/common"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	OrderStatusPlaced    = "placed"
	OrderStatusDelivered = "delivered"

	PaymentStatusPaid   = "Paid"
	PaymentStatusUnpaid = "Unpaid"
)

// ValidOrderStatus reports whether s is one of the accepted order statuses.
// Transitions between them are deliberately unrestricted.
func ValidOrderStatus(s string) bool {
	return s == OrderStatusPlaced || s == OrderStatusDelivered
}

// ValidPaymentStatus reports whether s is an accepted payment status.
func ValidPaymentStatus(s string) bool {
	return s == PaymentStatusPaid || s == PaymentStatusUnpaid
}

// Order is a customer's purchase request against one restaurant. Items carry
// a price snapshot taken at order time; TotalPrice is fixed at creation.
type Order struct {
	ID             uuid.UUID      `json:"id" db:"id"`
	CustomerID     uuid.UUID      `json:"customer_id" db:"customer_id"`
	RestaurantID   uuid.UUID      `json:"restaurant_id" db:"restaurant_id"`
	TotalPrice     pgtype.Numeric `json:"-" db:"total_price"`
	Status         string         `json:"status" db:"status"`
	PaymentStatus  string         `json:"payment_status" db:"payment_status"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
	RestaurantName string         `json:"restaurant_name" db:"restaurant_name"`
	Items          []*OrderItem   `json:"items"`
}

// OrderResponse is the wire shape of a full order with money as numbers.
type OrderResponse struct {
	ID             uuid.UUID            `json:"id"`
	CustomerID     uuid.UUID            `json:"customer_id"`
	RestaurantID   uuid.UUID            `json:"restaurant_id"`
	TotalPrice     float64              `json:"total_price"`
	Status         string               `json:"status"`
	PaymentStatus  string               `json:"payment_status"`
	CreatedAt      time.Time            `json:"created_at"`
	RestaurantName string               `json:"restaurant_name"`
	Items          []*OrderItemResponse `json:"items"`
}

func (o *Order) Response() *OrderResponse {
	items := make([]*OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, item.Response())
	}
	return &OrderResponse{
		ID:             o.ID,
		CustomerID:     o.CustomerID,
		RestaurantID:   o.RestaurantID,
		TotalPrice:     common.NumericToFloat(o.TotalPrice),
		Status:         o.Status,
		PaymentStatus:  o.PaymentStatus,
		CreatedAt:      o.CreatedAt,
		RestaurantName: o.RestaurantName,
		Items:          items,
	}
}

// OrderResponses maps a batch of orders preserving their ordering.
func OrderResponses(orders []*Order) []*OrderResponse {
	out := make([]*OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.Response())
	}
	return out
}

// RestaurantStats is a per-restaurant aggregate over all orders.
type RestaurantStats struct {
	RestaurantID uuid.UUID `json:"restaurant_id"`
	OrderCount   int64     `json:"order_count"`
	TotalRevenue float64   `json:"total_revenue"`
	GeneratedAt  time.Time `json:"generated_at"`
}
