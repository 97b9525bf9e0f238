package ports

import (
	"context"

	"dispatch-engine/internal/features/warehouses/domain"
)

// WarehouseRepository defines the secondary port for warehouse storage.
type WarehouseRepository interface {
	// Save persists a warehouse record.
	Save(ctx context.Context, warehouse *domain.Warehouse) error
	// GetByNombre retrieves a warehouse by its name, or nil if absent.
	GetByNombre(ctx context.Context, nombre string) (*domain.Warehouse, error)
	// List returns all registered warehouses.
	List(ctx context.Context) ([]domain.Warehouse, error)
}
