package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"dispatch-engine/internal/core/cache"
	"dispatch-engine/internal/features/routes/domain"
)

// RedisRouteRepository implements ports.RouteRepository on the store adapter.
// Routes are append-only records: they are re-saved on state transitions but
// never deleted.
type RedisRouteRepository struct {
	store cache.Store
}

// NewRedisRouteRepository creates a new RedisRouteRepository.
func NewRedisRouteRepository(s cache.Store) *RedisRouteRepository {
	return &RedisRouteRepository{
		store: s,
	}
}

func routeKey(id string) string {
	return "ruta:" + id
}

func truckRoutesKey(camionID string) string {
	return "rutas:camion:" + camionID
}

// Save stores a route and maintains the owning truck's index.
func (r *RedisRouteRepository) Save(ctx context.Context, route *domain.Route) error {
	data, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("failed to marshal route: %w", err)
	}

	if err := r.store.Set(ctx, routeKey(route.ID), data, 0); err != nil {
		return fmt.Errorf("failed to save route: %w", err)
	}

	if err := r.store.SetAdd(ctx, truckRoutesKey(route.CamionID), route.ID); err != nil {
		return fmt.Errorf("failed to index route by truck: %w", err)
	}

	return nil
}

// Get retrieves a route by ID. Returns nil, nil when absent.
func (r *RedisRouteRepository) Get(ctx context.Context, id string) (*domain.Route, error) {
	data, err := r.store.Get(ctx, routeKey(id))
	if err != nil {
		if strings.Contains(err.Error(), "key not found") {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get route: %w", err)
	}

	var route domain.Route
	if err := json.Unmarshal(data, &route); err != nil {
		return nil, fmt.Errorf("failed to unmarshal route: %w", err)
	}

	return &route, nil
}

// ListByTruck returns all routes owned by the given truck.
func (r *RedisRouteRepository) ListByTruck(ctx context.Context, camionID string) ([]domain.Route, error) {
	ids, err := r.store.SetMembers(ctx, truckRoutesKey(camionID))
	if err != nil {
		return nil, fmt.Errorf("failed to list truck routes: %w", err)
	}

	routes := make([]domain.Route, 0, len(ids))
	for _, id := range ids {
		route, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if route != nil {
			routes = append(routes, *route)
		}
	}

	return routes, nil
}
