package ports

import (
	"context"
	"errors"

	"dispatch-engine/internal/features/routes/domain"
)

var (
	// ErrOptimizerUnavailable marks transport-level optimizer failures
	// (network, timeout, 5xx, open circuit). Retryable with bounded attempts.
	ErrOptimizerUnavailable = errors.New("optimizer unavailable")
	// ErrMalformedResponse marks optimizer responses that cannot be parsed or
	// lack required fields. Fatal for the batch; orders stay pendiente.
	ErrMalformedResponse = errors.New("malformed optimizer response")
)

// RouteRepository defines the secondary port for route storage.
type RouteRepository interface {
	// Save persists a route record.
	Save(ctx context.Context, route *domain.Route) error
	// Get retrieves a route by ID, or nil if absent.
	Get(ctx context.Context, id string) (*domain.Route, error)
	// ListByTruck returns all routes owned by a truck.
	ListByTruck(ctx context.Context, camionID string) ([]domain.Route, error)
}

// TruckRepository defines the secondary port for truck storage.
type TruckRepository interface {
	// Save persists a truck record.
	Save(ctx context.Context, truck *domain.Truck) error
	// Get retrieves a truck by ID, or nil if absent.
	Get(ctx context.Context, id string) (*domain.Truck, error)
	// GetByCodigo retrieves a truck by operational code, or nil if absent.
	GetByCodigo(ctx context.Context, codigo string) (*domain.Truck, error)
	// ListByWarehouse returns the trucks owned by a warehouse.
	ListByWarehouse(ctx context.Context, bodega string) ([]domain.Truck, error)
	// List returns the full fleet.
	List(ctx context.Context) ([]domain.Truck, error)
}

// Optimizer defines the interface to the external route optimization service.
// The real implementation is a remote AI service; tests substitute a
// deterministic double.
type Optimizer interface {
	// Optimize proposes truck routes for the given request snapshot.
	Optimize(ctx context.Context, req *domain.RouteRequest) (*domain.RouteResponse, error)
}
