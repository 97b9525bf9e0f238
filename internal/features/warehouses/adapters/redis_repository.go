package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"dispatch-engine/internal/core/cache"
	"dispatch-engine/internal/features/warehouses/domain"
)

const warehouseIndexKey = "bodegas"

// RedisWarehouseRepository implements ports.WarehouseRepository on the store adapter.
type RedisWarehouseRepository struct {
	store cache.Store
}

// NewRedisWarehouseRepository creates a new RedisWarehouseRepository.
func NewRedisWarehouseRepository(s cache.Store) *RedisWarehouseRepository {
	return &RedisWarehouseRepository{
		store: s,
	}
}

func warehouseKey(nombre string) string {
	return "bodega:" + nombre
}

// Save stores a warehouse record and registers it in the index set.
func (r *RedisWarehouseRepository) Save(ctx context.Context, warehouse *domain.Warehouse) error {
	data, err := json.Marshal(warehouse)
	if err != nil {
		return fmt.Errorf("failed to marshal warehouse: %w", err)
	}

	if err := r.store.Set(ctx, warehouseKey(warehouse.Nombre), data, 0); err != nil {
		return fmt.Errorf("failed to save warehouse: %w", err)
	}

	if err := r.store.SetAdd(ctx, warehouseIndexKey, warehouse.Nombre); err != nil {
		return fmt.Errorf("failed to index warehouse: %w", err)
	}

	return nil
}

// GetByNombre retrieves a warehouse by name. Returns nil, nil when absent.
func (r *RedisWarehouseRepository) GetByNombre(ctx context.Context, nombre string) (*domain.Warehouse, error) {
	data, err := r.store.Get(ctx, warehouseKey(nombre))
	if err != nil {
		if strings.Contains(err.Error(), "key not found") {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get warehouse: %w", err)
	}

	var warehouse domain.Warehouse
	if err := json.Unmarshal(data, &warehouse); err != nil {
		return nil, fmt.Errorf("failed to unmarshal warehouse: %w", err)
	}

	return &warehouse, nil
}

// List returns all registered warehouses.
func (r *RedisWarehouseRepository) List(ctx context.Context) ([]domain.Warehouse, error) {
	nombres, err := r.store.SetMembers(ctx, warehouseIndexKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list warehouses: %w", err)
	}

	warehouses := make([]domain.Warehouse, 0, len(nombres))
	for _, nombre := range nombres {
		w, err := r.GetByNombre(ctx, nombre)
		if err != nil {
			return nil, err
		}
		if w != nil {
			warehouses = append(warehouses, *w)
		}
	}

	return warehouses, nil
}
