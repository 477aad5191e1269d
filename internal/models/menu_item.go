package models

import (
	"time"

	"feastly/internal/common"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type MenuItem struct {
	ID           uuid.UUID      `json:"id" db:"id"`
	RestaurantID uuid.UUID      `json:"restaurant_id" db:"restaurant_id"`
	Name         string         `json:"name" db:"name"`
	Price        pgtype.Numeric `json:"-" db:"price"`
	Category     *string        `json:"category" db:"category"`
	Image        *string        `json:"image" db:"image"`
	Available    bool           `json:"available" db:"available"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
}

// MenuItemResponse is the wire shape with the price as a plain number.
type MenuItemResponse struct {
	ID           uuid.UUID `json:"id"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	Category     *string   `json:"category"`
	Image        *string   `json:"image"`
	Available    bool      `json:"available"`
	CreatedAt    time.Time `json:"created_at"`
}

func (m *MenuItem) Response() *MenuItemResponse {
	return &MenuItemResponse{
		ID:           m.ID,
		RestaurantID: m.RestaurantID,
		Name:         m.Name,
		Price:        common.NumericToFloat(m.Price),
		Category:     m.Category,
		Image:        m.Image,
		Available:    m.Available,
		CreatedAt:    m.CreatedAt,
	}
}
