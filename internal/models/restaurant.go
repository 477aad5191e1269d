package models

import (
	"time"

	"github.com/google/uuid"
)

type Restaurant struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	Address     *string   `json:"address" db:"address"`
	Phone       *string   `json:"phone" db:"phone"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// RestaurantSummary is the shape returned by the listing endpoint.
type RestaurantSummary struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
}
