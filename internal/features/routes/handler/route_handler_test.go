package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"dispatch-engine/internal/core/cache"
	ordersadapters "dispatch-engine/internal/features/orders/adapters"
	ordersdomain "dispatch-engine/internal/features/orders/domain"
	"dispatch-engine/internal/features/routes/adapters"
	"dispatch-engine/internal/features/routes/domain"
	"dispatch-engine/internal/features/routes/service"
	warehousesadapters "dispatch-engine/internal/features/warehouses/adapters"
	warehousesdomain "dispatch-engine/internal/features/warehouses/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// packingOptimizer loads every order onto the first truck of the request.
type packingOptimizer struct{}

func (packingOptimizer) Optimize(_ context.Context, req *domain.RouteRequest) (*domain.RouteResponse, error) {
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

type routeApp struct {
	app    *fiber.App
	orders *ordersadapters.RedisOrderRepository
	now    time.Time
}

func newRouteApp(t *testing.T) *routeApp {
	t.Helper()

	mr := miniredis.RunT(t)
	store, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	warehouses := warehousesadapters.NewRedisWarehouseRepository(store)
	for _, w := range warehousesdomain.DefaultWarehouses() {
		wh := w
		require.NoError(t, warehouses.Save(ctx, &wh))
	}

	orders := ordersadapters.NewRedisOrderRepository(store)
	trucks := adapters.NewRedisTruckRepository(store)
	routes := adapters.NewRedisRouteRepository(store)

	ra := &routeApp{
		orders: orders,
		now:    time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC), // Monday
	}

	truck := domain.Truck{ID: "camion-ant-01", Codigo: "ANT-01", Bodega: "Antioquia", CapacidadMaximaM3: 10, Estado: domain.TruckStatusAvailable}
	require.NoError(t, trucks.Save(ctx, &truck))

	lifecycle := service.NewLifecycle(routes, orders, trucks, 30*time.Minute, 45*time.Minute).
		WithClock(func() time.Time { return ra.now })
	broker := service.NewBroker(packingOptimizer{}, 0)
	dispatcher := service.NewDispatcher(warehouses, orders, trucks, broker, lifecycle)

	h := NewRouteHandler(dispatcher, lifecycle, trucks).
		WithClock(func() time.Time { return ra.now })

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("requestid", "test-ray-id")
		return c.Next()
	})
	app.Post("/bodegas/:nombre/despachar", h.Dispatch)
	app.Get("/rutas/:id", h.GetRoute)
	app.Post("/rutas/:id/iniciar", h.StartRoute)
	app.Post("/rutas/:id/pausar", h.PauseRoute)
	app.Post("/rutas/:id/reanudar", h.ResumeRoute)
	app.Post("/rutas/:id/finalizar", h.FinishRoute)
	app.Post("/rutas/:id/pedidos/:pedidoId/entregado", h.MarkDelivered)
	app.Post("/rutas/:id/pedidos/:pedidoId/fallido", h.MarkFailed)
	app.Get("/camiones", h.ListTrucks)

	ra.app = app
	return ra
}

func (ra *routeApp) seedOrder(t *testing.T, id string) {
	t.Helper()
	order := &ordersdomain.Order{
		ID:                 id,
		DireccionEntrega:   "Calle 10 #20, Envigado",
		Estado:             ordersdomain.OrderStatusPending,
		VolumenTotalM3:     2,
		Prioridad:          ordersdomain.PriorityNormal,
		BodegaAsignada:     "Antioquia",
		FechaLimiteEntrega: time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, ra.orders.Save(context.Background(), order))
}

// dispatch runs a dispatch cycle and returns the committed route ID.
func (ra *routeApp) dispatch(t *testing.T) string {
	t.Helper()

	resp, err := ra.app.Test(httptest.NewRequest("POST", "/bodegas/Antioquia/despachar", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result service.DispatchResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.Len(t, result.Rutas, 1)
	return result.Rutas[0].ID
}

// TestRouteHandler_Dispatch verifies the dispatch endpoint commits routes and
// reports them.
func TestRouteHandler_Dispatch(t *testing.T) {
	ra := newRouteApp(t)
	ra.seedOrder(t, "p-1")
	ra.seedOrder(t, "p-2")

	routeID := ra.dispatch(t)

	resp, err := ra.app.Test(httptest.NewRequest("GET", "/rutas/"+routeID, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var route domain.Route
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&route))
	assert.Equal(t, domain.RouteStatusPlanned, route.Estado)
	assert.Len(t, route.Paradas, 2)
}

// TestRouteHandler_Dispatch_InvalidFecha verifies date validation.
func TestRouteHandler_Dispatch_InvalidFecha(t *testing.T) {
	ra := newRouteApp(t)

	resp, err := ra.app.Test(httptest.NewRequest("POST", "/bodegas/Antioquia/despachar?fecha=ayer", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

// TestRouteHandler_Dispatch_UnknownWarehouse verifies 404 for unregistered
// warehouses.
func TestRouteHandler_Dispatch_UnknownWarehouse(t *testing.T) {
	ra := newRouteApp(t)

	resp, err := ra.app.Test(httptest.NewRequest("POST", "/bodegas/Narnia/despachar", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// TestRouteHandler_Lifecycle walks a route through start, one delivery, one
// failure and finish over HTTP.
func TestRouteHandler_Lifecycle(t *testing.T) {
	ra := newRouteApp(t)
	ra.seedOrder(t, "p-1")
	ra.seedOrder(t, "p-2")
	routeID := ra.dispatch(t)

	resp, err := ra.app.Test(httptest.NewRequest("POST", "/rutas/"+routeID+"/iniciar", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := json.Marshal(DeliveryRequest{Observaciones: "recibido en portería"})
	req := httptest.NewRequest("POST", "/rutas/"+routeID+"/pedidos/p-1/entregado", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = ra.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ = json.Marshal(FailureRequest{Motivo: "cliente ausente"})
	req = httptest.NewRequest("POST", "/rutas/"+routeID+"/pedidos/p-2/fallido", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = ra.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = ra.app.Test(httptest.NewRequest("POST", "/rutas/"+routeID+"/finalizar", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var route domain.Route
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&route))
	assert.Equal(t, domain.RouteStatusCompleted, route.Estado)

	delivered, err := ra.orders.Get(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, ordersdomain.OrderStatusDelivered, delivered.Estado)
	failed, err := ra.orders.Get(context.Background(), "p-2")
	require.NoError(t, err)
	assert.Equal(t, ordersdomain.OrderStatusFailed, failed.Estado)
}

// TestRouteHandler_MarkFailed_EmptyMotivo verifies the mandatory reason rule
// surfaces as 400.
func TestRouteHandler_MarkFailed_EmptyMotivo(t *testing.T) {
	ra := newRouteApp(t)
	ra.seedOrder(t, "p-1")
	routeID := ra.dispatch(t)

	resp, err := ra.app.Test(httptest.NewRequest("POST", "/rutas/"+routeID+"/iniciar", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := json.Marshal(FailureRequest{Motivo: "   "})
	req := httptest.NewRequest("POST", "/rutas/"+routeID+"/pedidos/p-1/fallido", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = ra.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var errResp ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.Equal(t, "test-ray-id", errResp.RayID)
}

// TestRouteHandler_InvalidTransition verifies conflicting transitions come
// back as 409 without side effects.
func TestRouteHandler_InvalidTransition(t *testing.T) {
	ra := newRouteApp(t)
	ra.seedOrder(t, "p-1")
	routeID := ra.dispatch(t)

	// A planned route cannot be paused or finished.
	resp, err := ra.app.Test(httptest.NewRequest("POST", "/rutas/"+routeID+"/pausar", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, err = ra.app.Test(httptest.NewRequest("POST", "/rutas/"+routeID+"/finalizar", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

// TestRouteHandler_GetRoute_NotFound verifies unknown routes return 404.
func TestRouteHandler_GetRoute_NotFound(t *testing.T) {
	ra := newRouteApp(t)

	resp, err := ra.app.Test(httptest.NewRequest("GET", "/rutas/no-such", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// TestRouteHandler_ListTrucks verifies fleet listing and the bodega filter.
func TestRouteHandler_ListTrucks(t *testing.T) {
	ra := newRouteApp(t)

	resp, err := ra.app.Test(httptest.NewRequest("GET", "/camiones", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var trucks []domain.Truck
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&trucks))
	require.Len(t, trucks, 1)
	assert.Equal(t, "ANT-01", trucks[0].Codigo)

	resp, err = ra.app.Test(httptest.NewRequest("GET", "/camiones?bodega=Cundinamarca", nil))
	require.NoError(t, err)
	var none []domain.Truck
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&none))
	assert.Empty(t, none)
}
