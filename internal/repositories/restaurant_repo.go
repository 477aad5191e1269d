package repositories

import (
	"context"

	"feastly/internal/common"
	"feastly/internal/models"

	"github.com/google/uuid"
)

type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *models.Restaurant) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
	List(ctx context.Context) ([]*models.RestaurantSummary, error)
	Delete(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

type restaurantRepo struct {
	db DB
}

func NewRestaurantRepo(db DB) RestaurantRepository {
	return &restaurantRepo{db: db}
}

func (r *restaurantRepo) Create(ctx context.Context, restaurant *models.Restaurant) error {
	if restaurant.ID == uuid.Nil {
		restaurant.ID = uuid.New()
	}
	query := `
		INSERT INTO restaurants (id, name, description, address, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`
	err := r.db.QueryRow(ctx, query,
		restaurant.ID, restaurant.Name, restaurant.Description, restaurant.Address, restaurant.Phone,
	).Scan(&restaurant.CreatedAt)
	if err != nil {
		return common.MapStorageError("insert restaurant", err)
	}
	return nil
}

func (r *restaurantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	restaurant := &models.Restaurant{}
	query := `
		SELECT id, name, description, address, phone, created_at
		FROM restaurants
		WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&restaurant.ID, &restaurant.Name, &restaurant.Description,
		&restaurant.Address, &restaurant.Phone, &restaurant.CreatedAt,
	)
	if err != nil {
		return nil, common.MapStorageError("get restaurant", err)
	}
	return restaurant, nil
}

func (r *restaurantRepo) List(ctx context.Context) ([]*models.RestaurantSummary, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM restaurants`)
	if err != nil {
		return nil, common.MapStorageError("list restaurants", err)
	}
	defer rows.Close()

	summaries := make([]*models.RestaurantSummary, 0)
	for rows.Next() {
		s := &models.RestaurantSummary{}
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, common.MapStorageError("scan restaurant", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, common.MapStorageError("read restaurants", err)
	}
	return summaries, nil
}

func (r *restaurantRepo) Delete(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var deletedID uuid.UUID
	err := r.db.QueryRow(ctx, `DELETE FROM restaurants WHERE id = $1 RETURNING id`, id).Scan(&deletedID)
	if err != nil {
		return uuid.Nil, common.MapStorageError("delete restaurant", err)
	}
	return deletedID, nil
}
