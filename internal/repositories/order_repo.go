package repositories

import (
	"context"
	"log"
	"time"

	"feastly/internal/common"
	"feastly/internal/models"

	"github.com/google/uuid"
)

type OrderRepository interface {
	// Create inserts the order row and all item rows atomically and returns
	// the fully joined order. On any failure the transaction rolls back and
	// no partial order is persisted.
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*models.Order, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error)
	Delete(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	AggregateByRestaurant(ctx context.Context) ([]*models.RestaurantStats, error)
}

type orderRepo struct {
	db DB
}

func NewOrderRepo(db DB) OrderRepository {
	return &orderRepo{db: db}
}

const orderSelect = `
		SELECT o.id, o.customer_id, o.restaurant_id, o.total_price, o.status, o.payment_status, o.created_at, r.name AS restaurant_name
		FROM orders o
		JOIN restaurants r ON o.restaurant_id = r.id`

const orderItemSelect = `
		SELECT oi.id, oi.menu_item_id, mi.name, oi.quantity, oi.price
		FROM order_items oi
		JOIN menu_items mi ON oi.menu_item_id = mi.id
		WHERE oi.order_id = $1`

func (r *orderRepo) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, common.MapStorageError("begin order transaction", err)
	}
	defer tx.Rollback(ctx)

	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.Status == "" {
		order.Status = models.OrderStatusPlaced
	}
	if order.PaymentStatus == "" {
		order.PaymentStatus = models.PaymentStatusUnpaid
	}

	insertOrder := `
		INSERT INTO orders (id, customer_id, restaurant_id, total_price, status, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`
	err = tx.QueryRow(ctx, insertOrder,
		order.ID, order.CustomerID, order.RestaurantID, order.TotalPrice, order.Status, order.PaymentStatus,
	).Scan(&order.CreatedAt)
	if err != nil {
		log.Printf("order insert failed for customer %s: %v", order.CustomerID, err)
		return nil, common.MapStorageError("insert order", err)
	}

	insertItem := `
		INSERT INTO order_items (id, order_id, menu_item_id, quantity, price)
		VALUES ($1, $2, $3, $4, $5)`
	for _, item := range order.Items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.OrderID = order.ID
		if _, err := tx.Exec(ctx, insertItem, item.ID, item.OrderID, item.MenuItemID, item.Quantity, item.Price); err != nil {
			log.Printf("order item insert failed for order %s, menu item %s: %v", order.ID, item.MenuItemID, err)
			return nil, common.MapStorageError("insert order item", err)
		}
	}

	full, err := getOrder(ctx, tx, order.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, common.MapStorageError("commit order transaction", err)
	}
	return full, nil
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return getOrder(ctx, r.db, id)
}

// getOrder reads one order joined with its restaurant, then attaches the
// item rows joined with menu item names. An order whose restaurant was
// deleted is unreachable here, matching the cascade-delete semantics.
func getOrder(ctx context.Context, q querier, id uuid.UUID) (*models.Order, error) {
	order := &models.Order{}
	err := q.QueryRow(ctx, orderSelect+` WHERE o.id = $1`, id).Scan(
		&order.ID, &order.CustomerID, &order.RestaurantID, &order.TotalPrice,
		&order.Status, &order.PaymentStatus, &order.CreatedAt, &order.RestaurantName,
	)
	if err != nil {
		return nil, common.MapStorageError("get order", err)
	}

	items, err := getOrderItems(ctx, q, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func getOrderItems(ctx context.Context, q querier, orderID uuid.UUID) ([]*models.OrderItem, error) {
	rows, err := q.Query(ctx, orderItemSelect, orderID)
	if err != nil {
		return nil, common.MapStorageError("get order items", err)
	}
	defer rows.Close()

	items := make([]*models.OrderItem, 0)
	for rows.Next() {
		item := &models.OrderItem{OrderID: orderID}
		if err := rows.Scan(&item.ID, &item.MenuItemID, &item.Name, &item.Quantity, &item.Price); err != nil {
			return nil, common.MapStorageError("scan order item", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, common.MapStorageError("read order items", err)
	}
	return items, nil
}

func (r *orderRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*models.Order, error) {
	return r.listOrders(ctx, `o.customer_id`, customerID)
}

func (r *orderRepo) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*models.Order, error) {
	return r.listOrders(ctx, `o.restaurant_id`, restaurantID)
}

// listOrders returns orders scoped by one column, most recent first, each
// with its items attached through a per-order query. A scope with no orders
// yields an empty slice, not an error.
func (r *orderRepo) listOrders(ctx context.Context, column string, id uuid.UUID) ([]*models.Order, error) {
	rows, err := r.db.Query(ctx, orderSelect+` WHERE `+column+` = $1 ORDER BY o.created_at DESC`, id)
	if err != nil {
		return nil, common.MapStorageError("list orders", err)
	}
	defer rows.Close()

	orders := make([]*models.Order, 0)
	for rows.Next() {
		order := &models.Order{}
		if err := rows.Scan(
			&order.ID, &order.CustomerID, &order.RestaurantID, &order.TotalPrice,
			&order.Status, &order.PaymentStatus, &order.CreatedAt, &order.RestaurantName,
		); err != nil {
			return nil, common.MapStorageError("scan order", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, common.MapStorageError("read orders", err)
	}
	rows.Close()

	for _, order := range orders {
		items, err := getOrderItems(ctx, r.db, order.ID)
		if err != nil {
			return nil, err
		}
		order.Items = items
	}
	return orders, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, common.MapStorageError("begin status transaction", err)
	}
	defer tx.Rollback(ctx)

	var updatedID uuid.UUID
	err = tx.QueryRow(ctx, `UPDATE orders SET status = $1 WHERE id = $2 RETURNING id`, status, id).Scan(&updatedID)
	if err != nil {
		return nil, common.MapStorageError("update order status", err)
	}

	full, err := getOrder(ctx, tx, updatedID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, common.MapStorageError("commit status transaction", err)
	}
	return full, nil
}

func (r *orderRepo) Delete(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var deletedID uuid.UUID
	err := r.db.QueryRow(ctx, `DELETE FROM orders WHERE id = $1 RETURNING id`, id).Scan(&deletedID)
	if err != nil {
		return uuid.Nil, common.MapStorageError("delete order", err)
	}
	return deletedID, nil
}

func (r *orderRepo) AggregateByRestaurant(ctx context.Context) ([]*models.RestaurantStats, error) {
	query := `
		SELECT restaurant_id, COUNT(*), COALESCE(SUM(total_price), 0)
		FROM orders
		GROUP BY restaurant_id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, common.MapStorageError("aggregate orders", err)
	}
	defer rows.Close()

	now := time.Now().UTC()
	stats := make([]*models.RestaurantStats, 0)
	for rows.Next() {
		s := &models.RestaurantStats{GeneratedAt: now}
		var revenue float64
		if err := rows.Scan(&s.RestaurantID, &s.OrderCount, &revenue); err != nil {
			return nil, common.MapStorageError("scan order aggregate", err)
		}
		s.TotalRevenue = revenue
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, common.MapStorageError("read order aggregates", err)
	}
	return stats, nil
}
