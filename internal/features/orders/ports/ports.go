package ports

import (
	"context"

	"dispatch-engine/internal/features/orders/domain"
)

// OrderRepository defines the secondary port for order storage.
type OrderRepository interface {
	// Save persists an order record.
	Save(ctx context.Context, order *domain.Order) error
	// Get retrieves an order by ID, or nil if absent.
	Get(ctx context.Context, id string) (*domain.Order, error)
	// ListByWarehouse returns all orders assigned to a warehouse.
	ListByWarehouse(ctx context.Context, bodega string) ([]domain.Order, error)
	// ListByWarehouseAndStatus returns the warehouse's orders in a given state.
	ListByWarehouseAndStatus(ctx context.Context, bodega string, estado domain.OrderStatus) ([]domain.Order, error)
}

// PriorityPolicy decides the priority of an order that carries no explicit
// priority signal from the intake source.
type PriorityPolicy interface {
	// Assign returns the priority for the given order. Orders that already
	// carry a valid priority keep it.
	Assign(order *domain.Order) domain.Priority
}
