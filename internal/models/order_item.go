package models

import (
	"feastly/internal/common"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// OrderItem is one line of an order. Price is the menu price captured when
// the order was created, not a live reference to MenuItem.Price.
type OrderItem struct {
	ID         uuid.UUID      `json:"id" db:"id"`
	OrderID    uuid.UUID      `json:"order_id" db:"order_id"`
	MenuItemID uuid.UUID      `json:"menu_item_id" db:"menu_item_id"`
	Name       string         `json:"name" db:"name"`
	Quantity   int            `json:"quantity" db:"quantity"`
	Price      pgtype.Numeric `json:"-" db:"price"`
}

type OrderItemResponse struct {
	ID         uuid.UUID `json:"id"`
	MenuItemID uuid.UUID `json:"menu_item_id"`
	Name       string    `json:"name"`
	Price      float64   `json:"price"`
	Quantity   int       `json:"quantity"`
}

func (i *OrderItem) Response() *OrderItemResponse {
	return &OrderItemResponse{
		ID:         i.ID,
		MenuItemID: i.MenuItemID,
		Name:       i.Name,
		Price:      common.NumericToFloat(i.Price),
		Quantity:   i.Quantity,
	}
}
