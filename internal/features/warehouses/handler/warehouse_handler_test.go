package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"dispatch-engine/internal/core/cache"
	ordersadapters "dispatch-engine/internal/features/orders/adapters"
	ordersdomain "dispatch-engine/internal/features/orders/domain"
	"dispatch-engine/internal/features/warehouses/adapters"
	"dispatch-engine/internal/features/warehouses/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWarehouseApp(t *testing.T) (*fiber.App, *ordersadapters.RedisOrderRepository) {
	t.Helper()

	mr := miniredis.RunT(t)
	store, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	warehouses := adapters.NewRedisWarehouseRepository(store)
	ctx := context.Background()
	for _, w := range domain.DefaultWarehouses() {
		wh := w
		require.NoError(t, warehouses.Save(ctx, &wh))
	}
	orders := ordersadapters.NewRedisOrderRepository(store)

	h := NewWarehouseHandler(warehouses, orders)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("requestid", "test-ray-id")
		return c.Next()
	})
	app.Get("/bodegas", h.ListWarehouses)
	app.Get("/bodegas/:nombre/capacidad", h.GetCapacity)

	return app, orders
}

// TestWarehouseHandler_ListWarehouses verifies the registry listing.
func TestWarehouseHandler_ListWarehouses(t *testing.T) {
	app, _ := newWarehouseApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/bodegas", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var warehouses []domain.Warehouse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&warehouses))
	assert.Len(t, warehouses, 3)
}

// TestWarehouseHandler_GetCapacity verifies capacity is derived from pendiente
// and asignado orders only.
func TestWarehouseHandler_GetCapacity(t *testing.T) {
	app, orders := newWarehouseApp(t)
	ctx := context.Background()

	deadline := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	require.NoError(t, orders.Save(ctx, &ordersdomain.Order{ID: "p-1", BodegaAsignada: "Antioquia", Estado: ordersdomain.OrderStatusPending, VolumenTotalM3: 30, FechaLimiteEntrega: deadline}))
	require.NoError(t, orders.Save(ctx, &ordersdomain.Order{ID: "p-2", BodegaAsignada: "Antioquia", Estado: ordersdomain.OrderStatusAssigned, VolumenTotalM3: 20, FechaLimiteEntrega: deadline}))
	require.NoError(t, orders.Save(ctx, &ordersdomain.Order{ID: "p-3", BodegaAsignada: "Antioquia", Estado: ordersdomain.OrderStatusDelivered, VolumenTotalM3: 50, FechaLimiteEntrega: deadline}))

	resp, err := app.Test(httptest.NewRequest("GET", "/bodegas/Antioquia/capacidad", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var report CapacityReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, "Antioquia", report.Bodega)
	assert.Equal(t, 120.0, report.CapacidadTotalM3)
	assert.Equal(t, 50.0, report.VolumenOcupadoM3)
	assert.Equal(t, 70.0, report.CapacidadDisponibleM3)
}

// TestWarehouseHandler_GetCapacity_NotFound verifies unknown warehouses return 404.
func TestWarehouseHandler_GetCapacity_NotFound(t *testing.T) {
	app, _ := newWarehouseApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/bodegas/Narnia/capacidad", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
