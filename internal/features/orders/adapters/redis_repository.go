package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"dispatch-engine/internal/core/cache"
	"dispatch-engine/internal/features/orders/domain"
)

// RedisOrderRepository implements ports.OrderRepository on the store adapter.
// Orders are stored as JSON records with a per-warehouse index set, which
// keeps the "pending orders of a warehouse" query path cheap enough for the
// capacity ledger to derive values fresh on every call.
type RedisOrderRepository struct {
	store cache.Store
}

// NewRedisOrderRepository creates a new RedisOrderRepository.
func NewRedisOrderRepository(s cache.Store) *RedisOrderRepository {
	return &RedisOrderRepository{
		store: s,
	}
}

func orderKey(id string) string {
	return "pedido:" + id
}

func warehouseOrdersKey(bodega string) string {
	return "pedidos:bodega:" + bodega
}

// Save stores an order and maintains the warehouse index.
func (r *RedisOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}

	if err := r.store.Set(ctx, orderKey(order.ID), data, 0); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}

	if order.BodegaAsignada != "" {
		if err := r.store.SetAdd(ctx, warehouseOrdersKey(order.BodegaAsignada), order.ID); err != nil {
			return fmt.Errorf("failed to index order by warehouse: %w", err)
		}
	}

	return nil
}

// Get retrieves an order by ID. Returns nil, nil when absent.
func (r *RedisOrderRepository) Get(ctx context.Context, id string) (*domain.Order, error) {
	data, err := r.store.Get(ctx, orderKey(id))
	if err != nil {
		if strings.Contains(err.Error(), "key not found") {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	var order domain.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order: %w", err)
	}

	return &order, nil
}

// ListByWarehouse returns all orders assigned to the given warehouse.
func (r *RedisOrderRepository) ListByWarehouse(ctx context.Context, bodega string) ([]domain.Order, error) {
	ids, err := r.store.SetMembers(ctx, warehouseOrdersKey(bodega))
	if err != nil {
		return nil, fmt.Errorf("failed to list warehouse orders: %w", err)
	}

	orders := make([]domain.Order, 0, len(ids))
	for _, id := range ids {
		o, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if o != nil {
			orders = append(orders, *o)
		}
	}

	return orders, nil
}

// ListByWarehouseAndStatus returns the warehouse's orders in a given state.
func (r *RedisOrderRepository) ListByWarehouseAndStatus(ctx context.Context, bodega string, estado domain.OrderStatus) ([]domain.Order, error) {
	orders, err := r.ListByWarehouse(ctx, bodega)
	if err != nil {
		return nil, err
	}

	filtered := orders[:0]
	for _, o := range orders {
		if o.Estado == estado {
			filtered = append(filtered, o)
		}
	}

	return filtered, nil
}
