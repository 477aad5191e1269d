package analytics

import (
	"context"
	"log"
	"time"

	"feastly/internal/caching"
	"feastly/internal/models"
	"feastly/internal/repositories"

	"github.com/google/uuid"
)

const snapshotTTL = 30 * time.Minute

// AnalyticsService maintains per-restaurant order aggregates. Snapshots are
// recomputed from storage on a schedule and held in redis between refreshes.
type AnalyticsService struct {
	orderRepo repositories.OrderRepository
	cacheSvc  caching.CacheService
}

func NewAnalyticsService(orderRepo repositories.OrderRepository, cacheSvc caching.CacheService) *AnalyticsService {
	return &AnalyticsService{
		orderRepo: orderRepo,
		cacheSvc:  cacheSvc,
	}
}

// RefreshRestaurantStats recomputes the aggregates for all restaurants with
// at least one order and replaces the cached snapshots.
func (s *AnalyticsService) RefreshRestaurantStats(ctx context.Context) error {
	stats, err := s.orderRepo.AggregateByRestaurant(ctx)
	if err != nil {
		return err
	}
	for _, st := range stats {
		if err := s.cacheSvc.SetRestaurantStats(ctx, st, snapshotTTL); err != nil {
			log.Printf("failed to cache stats for restaurant %s: %v", st.RestaurantID, err)
		}
	}
	log.Printf("refreshed order stats for %d restaurants", len(stats))
	return nil
}

// RestaurantStats returns the snapshot for one restaurant, recomputing all
// snapshots on a cache miss. A restaurant with no orders gets zero counts.
func (s *AnalyticsService) RestaurantStats(ctx context.Context, restaurantID uuid.UUID) (*models.RestaurantStats, error) {
	cached, err := s.cacheSvc.GetRestaurantStats(ctx, restaurantID)
	if err != nil {
		log.Printf("stats cache read failed for restaurant %s: %v", restaurantID, err)
	}
	if cached != nil {
		return cached, nil
	}

	if err := s.RefreshRestaurantStats(ctx); err != nil {
		return nil, err
	}

	cached, err = s.cacheSvc.GetRestaurantStats(ctx, restaurantID)
	if err != nil {
		log.Printf("stats cache read failed for restaurant %s: %v", restaurantID, err)
	}
	if cached != nil {
		return cached, nil
	}

	return &models.RestaurantStats{
		RestaurantID: restaurantID,
		GeneratedAt:  time.Now().UTC(),
	}, nil
}
