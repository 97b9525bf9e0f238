package service

import (
	"context"
	"testing"
	"time"

	"dispatch-engine/internal/core/cache"
	ordersadapters "dispatch-engine/internal/features/orders/adapters"
	ordersdomain "dispatch-engine/internal/features/orders/domain"
	"dispatch-engine/internal/features/routes/adapters"
	"dispatch-engine/internal/features/routes/domain"
	warehousesadapters "dispatch-engine/internal/features/warehouses/adapters"
	warehousesdomain "dispatch-engine/internal/features/warehouses/domain"
	warehousesservice "dispatch-engine/internal/features/warehouses/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// funcOptimizer adapts a function to the Optimizer port so dispatch tests can
// script proposals from the request they receive.
type funcOptimizer func(ctx context.Context, req *domain.RouteRequest) (*domain.RouteResponse, error)

func (f funcOptimizer) Optimize(ctx context.Context, req *domain.RouteRequest) (*domain.RouteResponse, error) {
	return f(ctx, req)
}

type dispatcherFixture struct {
	dispatcher *Dispatcher
	warehouses *warehousesadapters.RedisWarehouseRepository
	orders     *ordersadapters.RedisOrderRepository
	trucks     *adapters.RedisTruckRepository
	routes     *adapters.RedisRouteRepository
	asOf       time.Time
}

// greedyOptimizer packs every order into the first truck, in request order.
func greedyOptimizer() funcOptimizer {
	return func(_ context.Context, req *domain.RouteRequest) (*domain.RouteResponse, error) {
		if len(req.CamionesDisponibles) == 0 || len(req.PedidosIncluir) == 0 {
			return &domain.RouteResponse{RutasOptimizadas: []domain.OptimizedRoute{}, PedidosNoAsignados: []string{}}, nil
		}

		stops := make([]domain.OptimizedStop, 0, len(req.PedidosIncluir))
		var volume float64
		for i, o := range req.PedidosIncluir {
			stops = append(stops, domain.OptimizedStop{ID: o.ID, Orden: i + 1})
			volume += o.VolumenM3
		}
		return &domain.RouteResponse{
			RutasOptimizadas: []domain.OptimizedRoute{{
				CamionCodigo: req.CamionesDisponibles[0].Codigo,
				Pedidos:      stops,
				Resumen:      domain.RouteSummary{TotalPedidos: len(stops), VolumenUtilizado: volume},
			}},
			PedidosNoAsignados: []string{},
		}, nil
	}
}

func newDispatcherFixture(t *testing.T, optimizer funcOptimizer) *dispatcherFixture {
	t.Helper()

	mr := miniredis.RunT(t)
	store, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	f := &dispatcherFixture{
		warehouses: warehousesadapters.NewRedisWarehouseRepository(store),
		orders:     ordersadapters.NewRedisOrderRepository(store),
		trucks:     adapters.NewRedisTruckRepository(store),
		routes:     adapters.NewRedisRouteRepository(store),
		asOf:       time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC), // Monday
	}

	ctx := context.Background()
	for _, w := range warehousesdomain.DefaultWarehouses() {
		wh := w
		require.NoError(t, f.warehouses.Save(ctx, &wh))
	}

	broker := NewBroker(optimizer, 0)
	lifecycle := NewLifecycle(f.routes, f.orders, f.trucks, 30*time.Minute, 45*time.Minute).
		WithClock(func() time.Time { return f.asOf })
	f.dispatcher = NewDispatcher(f.warehouses, f.orders, f.trucks, broker, lifecycle)
	return f
}

func (f *dispatcherFixture) seedOrder(t *testing.T, id string, volume float64, deadline time.Time) {
	t.Helper()
	order := testOrder(id, volume)
	order.FechaLimiteEntrega = deadline
	require.NoError(t, f.orders.Save(context.Background(), &order))
}

func (f *dispatcherFixture) seedTruck(t *testing.T, codigo string, capacity float64) {
	t.Helper()
	truck := testTruck(codigo, capacity)
	require.NoError(t, f.trucks.Save(context.Background(), &truck))
}

// TestDispatcher_RunForWarehouse verifies due orders are routed and committed
// while orders outside the lead-time window wait.
func TestDispatcher_RunForWarehouse(t *testing.T) {
	f := newDispatcherFixture(t, greedyOptimizer())
	ctx := context.Background()

	// Antioquia's lead time is one business day: the window from Monday ends
	// Tuesday. p-far is due the following Monday and must not be dispatched.
	f.seedOrder(t, "p-1", 2, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC))
	f.seedOrder(t, "p-2", 3, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	f.seedOrder(t, "p-far", 2, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC))
	f.seedTruck(t, "ANT-01", 10)

	result, err := f.dispatcher.RunForWarehouse(ctx, "Antioquia", f.asOf)
	require.NoError(t, err)

	assert.Equal(t, "Antioquia", result.Bodega)
	assert.Equal(t, "2026-03-02", result.Fecha)
	require.Len(t, result.Rutas, 1)
	assert.Len(t, result.Rutas[0].Paradas, 2)
	assert.Empty(t, result.PedidosNoAsignados)

	order, err := f.orders.Get(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, ordersdomain.OrderStatusAssigned, order.Estado)
	assert.Equal(t, result.Rutas[0].ID, order.RutaEntregaID)

	far, err := f.orders.Get(ctx, "p-far")
	require.NoError(t, err)
	assert.Equal(t, ordersdomain.OrderStatusPending, far.Estado)
}

// TestDispatcher_RunForWarehouse_Idempotent verifies a second run finds
// nothing to dispatch.
func TestDispatcher_RunForWarehouse_Idempotent(t *testing.T) {
	f := newDispatcherFixture(t, greedyOptimizer())
	ctx := context.Background()

	f.seedOrder(t, "p-1", 2, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC))
	f.seedTruck(t, "ANT-01", 10)

	first, err := f.dispatcher.RunForWarehouse(ctx, "Antioquia", f.asOf)
	require.NoError(t, err)
	require.Len(t, first.Rutas, 1)

	second, err := f.dispatcher.RunForWarehouse(ctx, "Antioquia", f.asOf)
	require.NoError(t, err)
	assert.Empty(t, second.Rutas)
	assert.Empty(t, second.PedidosNoAsignados)
}

// TestDispatcher_RunForWarehouse_NoTrucks verifies the cycle degrades to
// reporting every due order as unassigned.
func TestDispatcher_RunForWarehouse_NoTrucks(t *testing.T) {
	f := newDispatcherFixture(t, greedyOptimizer())
	ctx := context.Background()

	f.seedOrder(t, "p-1", 2, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC))

	result, err := f.dispatcher.RunForWarehouse(ctx, "Antioquia", f.asOf)
	require.NoError(t, err)

	assert.Empty(t, result.Rutas)
	assert.Equal(t, []string{"p-1"}, result.PedidosNoAsignados)
	assert.Equal(t, "sin camiones disponibles", result.Razon)

	order, err := f.orders.Get(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, ordersdomain.OrderStatusPending, order.Estado)
}

// TestDispatcher_RunForWarehouse_UnknownWarehouse verifies dispatching an
// unregistered warehouse fails cleanly.
func TestDispatcher_RunForWarehouse_UnknownWarehouse(t *testing.T) {
	f := newDispatcherFixture(t, greedyOptimizer())

	_, err := f.dispatcher.RunForWarehouse(context.Background(), "Narnia", f.asOf)
	assert.ErrorIs(t, err, warehousesservice.ErrUnknownWarehouse)
}

// TestDispatcher_RunForWarehouse_OptimizerLeavesOrdersOut verifies unassigned
// orders from the optimizer stay pendiente with the reported reason.
func TestDispatcher_RunForWarehouse_OptimizerLeavesOrdersOut(t *testing.T) {
	optimizer := funcOptimizer(func(_ context.Context, req *domain.RouteRequest) (*domain.RouteResponse, error) {
		return &domain.RouteResponse{
			RutasOptimizadas: []domain.OptimizedRoute{{
				CamionCodigo: req.CamionesDisponibles[0].Codigo,
				Pedidos:      []domain.OptimizedStop{{ID: req.PedidosIncluir[0].ID, Orden: 1}},
				Resumen:      domain.RouteSummary{TotalPedidos: 1, VolumenUtilizado: req.PedidosIncluir[0].VolumenM3},
			}},
			PedidosNoAsignados: []string{req.PedidosIncluir[1].ID},
			Razon:              "excede capacidad disponible",
		}, nil
	})
	f := newDispatcherFixture(t, optimizer)
	ctx := context.Background()

	f.seedOrder(t, "p-1", 8, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC))
	f.seedOrder(t, "p-2", 8, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC))
	f.seedTruck(t, "ANT-01", 10)

	result, err := f.dispatcher.RunForWarehouse(ctx, "Antioquia", f.asOf)
	require.NoError(t, err)

	require.Len(t, result.Rutas, 1)
	assert.Equal(t, []string{"p-2"}, result.PedidosNoAsignados)
	assert.Equal(t, "excede capacidad disponible", result.Razon)

	left, err := f.orders.Get(ctx, "p-2")
	require.NoError(t, err)
	assert.Equal(t, ordersdomain.OrderStatusPending, left.Estado)
}

// TestDispatcher_RunForWarehouse_OptimizerFailure verifies optimizer errors
// leave every order untouched.
func TestDispatcher_RunForWarehouse_OptimizerFailure(t *testing.T) {
	optimizer := funcOptimizer(func(_ context.Context, _ *domain.RouteRequest) (*domain.RouteResponse, error) {
		return nil, ErrInvalidResponse
	})
	f := newDispatcherFixture(t, optimizer)
	ctx := context.Background()

	f.seedOrder(t, "p-1", 2, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC))
	f.seedTruck(t, "ANT-01", 10)

	_, err := f.dispatcher.RunForWarehouse(ctx, "Antioquia", f.asOf)
	assert.ErrorIs(t, err, ErrInvalidResponse)

	order, err := f.orders.Get(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, ordersdomain.OrderStatusPending, order.Estado)
	assert.Empty(t, order.RutaEntregaID)
}
