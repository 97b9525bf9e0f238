package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"dispatch-engine/internal/core/cache"
	"dispatch-engine/internal/features/routes/domain"
)

const truckIndexKey = "camiones"

// RedisTruckRepository implements ports.TruckRepository on the store adapter.
type RedisTruckRepository struct {
	store cache.Store
}

// NewRedisTruckRepository creates a new RedisTruckRepository.
func NewRedisTruckRepository(s cache.Store) *RedisTruckRepository {
	return &RedisTruckRepository{
		store: s,
	}
}

func truckKey(id string) string {
	return "camion:" + id
}

func truckCodeKey(codigo string) string {
	return "camion:codigo:" + codigo
}

func warehouseTrucksKey(bodega string) string {
	return "camiones:bodega:" + bodega
}

// Save stores a truck and maintains the code and warehouse indexes.
func (r *RedisTruckRepository) Save(ctx context.Context, truck *domain.Truck) error {
	data, err := json.Marshal(truck)
	if err != nil {
		return fmt.Errorf("failed to marshal truck: %w", err)
	}

	if err := r.store.Set(ctx, truckKey(truck.ID), data, 0); err != nil {
		return fmt.Errorf("failed to save truck: %w", err)
	}
	if err := r.store.Set(ctx, truckCodeKey(truck.Codigo), []byte(truck.ID), 0); err != nil {
		return fmt.Errorf("failed to index truck code: %w", err)
	}
	if err := r.store.SetAdd(ctx, truckIndexKey, truck.ID); err != nil {
		return fmt.Errorf("failed to index truck: %w", err)
	}
	if err := r.store.SetAdd(ctx, warehouseTrucksKey(truck.Bodega), truck.ID); err != nil {
		return fmt.Errorf("failed to index truck by warehouse: %w", err)
	}

	return nil
}

// Get retrieves a truck by ID. Returns nil, nil when absent.
func (r *RedisTruckRepository) Get(ctx context.Context, id string) (*domain.Truck, error) {
	data, err := r.store.Get(ctx, truckKey(id))
	if err != nil {
		if strings.Contains(err.Error(), "key not found") {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get truck: %w", err)
	}

	var truck domain.Truck
	if err := json.Unmarshal(data, &truck); err != nil {
		return nil, fmt.Errorf("failed to unmarshal truck: %w", err)
	}

	return &truck, nil
}

// GetByCodigo retrieves a truck by operational code. Returns nil, nil when absent.
func (r *RedisTruckRepository) GetByCodigo(ctx context.Context, codigo string) (*domain.Truck, error) {
	id, err := r.store.Get(ctx, truckCodeKey(codigo))
	if err != nil {
		if strings.Contains(err.Error(), "key not found") {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve truck code: %w", err)
	}
	return r.Get(ctx, string(id))
}

// ListByWarehouse returns the trucks owned by the given warehouse.
func (r *RedisTruckRepository) ListByWarehouse(ctx context.Context, bodega string) ([]domain.Truck, error) {
	return r.listFromSet(ctx, warehouseTrucksKey(bodega))
}

// List returns the full fleet.
func (r *RedisTruckRepository) List(ctx context.Context) ([]domain.Truck, error) {
	return r.listFromSet(ctx, truckIndexKey)
}

func (r *RedisTruckRepository) listFromSet(ctx context.Context, key string) ([]domain.Truck, error) {
	ids, err := r.store.SetMembers(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to list trucks: %w", err)
	}

	trucks := make([]domain.Truck, 0, len(ids))
	for _, id := range ids {
		truck, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if truck != nil {
			trucks = append(trucks, *truck)
		}
	}

	return trucks, nil
}
