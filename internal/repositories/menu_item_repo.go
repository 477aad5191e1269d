package repositories

import (
	"context"

	"feastly/internal/common"
	"feastly/internal/models"

	"github.com/google/uuid"
)

type MenuItemRepository interface {
	Create(ctx context.Context, item *models.MenuItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*models.MenuItem, error)
	Delete(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

type menuItemRepo struct {
	db DB
}

func NewMenuItemRepo(db DB) MenuItemRepository {
	return &menuItemRepo{db: db}
}

func (r *menuItemRepo) Create(ctx context.Context, item *models.MenuItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	query := `
		INSERT INTO menu_items (id, restaurant_id, name, price, category, image, available)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`
	err := r.db.QueryRow(ctx, query,
		item.ID, item.RestaurantID, item.Name, item.Price, item.Category, item.Image, item.Available,
	).Scan(&item.CreatedAt)
	if err != nil {
		return common.MapStorageError("insert menu item", err)
	}
	return nil
}

func (r *menuItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	item := &models.MenuItem{}
	query := `
		SELECT id, restaurant_id, name, price, category, image, available, created_at
		FROM menu_items
		WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&item.ID, &item.RestaurantID, &item.Name, &item.Price,
		&item.Category, &item.Image, &item.Available, &item.CreatedAt,
	)
	if err != nil {
		return nil, common.MapStorageError("get menu item", err)
	}
	return item, nil
}

func (r *menuItemRepo) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*models.MenuItem, error) {
	query := `
		SELECT id, restaurant_id, name, price, category, image, available, created_at
		FROM menu_items
		WHERE restaurant_id = $1`
	rows, err := r.db.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, common.MapStorageError("list menu items", err)
	}
	defer rows.Close()

	items := make([]*models.MenuItem, 0)
	for rows.Next() {
		item := &models.MenuItem{}
		if err := rows.Scan(
			&item.ID, &item.RestaurantID, &item.Name, &item.Price,
			&item.Category, &item.Image, &item.Available, &item.CreatedAt,
		); err != nil {
			return nil, common.MapStorageError("scan menu item", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, common.MapStorageError("read menu items", err)
	}
	return items, nil
}

func (r *menuItemRepo) Delete(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var deletedID uuid.UUID
	err := r.db.QueryRow(ctx, `DELETE FROM menu_items WHERE id = $1 RETURNING id`, id).Scan(&deletedID)
	if err != nil {
		return uuid.Nil, common.MapStorageError("delete menu item", err)
	}
	return deletedID, nil
}
