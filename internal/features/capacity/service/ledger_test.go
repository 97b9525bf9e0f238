package service

import (
	"testing"

	ordersdomain "dispatch-engine/internal/features/orders/domain"
	warehousesdomain "dispatch-engine/internal/features/warehouses/domain"

	"github.com/stretchr/testify/assert"
)

func catalogLookup(volumes map[string]float64) VolumeLookup {
	return func(producto string) (float64, bool) {
		v, ok := volumes[producto]
		return v, ok
	}
}

// TestVolumeOf verifies volume computation from catalog values and the
// default constant.
func TestVolumeOf(t *testing.T) {
	lookup := catalogLookup(map[string]float64{
		"Nevera":   1.2,
		"Televisor": 0.3,
	})

	tests := []struct {
		name     string
		items    []ordersdomain.OrderItem
		expected float64
	}{
		{
			name:     "SingleCataloguedItem",
			items:    []ordersdomain.OrderItem{{Producto: "Nevera", Cantidad: 1}},
			expected: 1.2,
		},
		{
			name: "MultipleLines",
			items: []ordersdomain.OrderItem{
				{Producto: "Nevera", Cantidad: 2},
				{Producto: "Televisor", Cantidad: 3},
			},
			expected: 2*1.2 + 3*0.3,
		},
		{
			name:     "UncataloguedUsesDefault",
			items:    []ordersdomain.OrderItem{{Producto: "Florero", Cantidad: 4}},
			expected: 4 * DefaultUnitVolumeM3,
		},
		{
			name:     "EmptyOrder",
			items:    nil,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, VolumeOf(tt.items, lookup), 1e-9)
		})
	}
}

// TestVolumeOf_NilLookup verifies that a missing catalog never blocks orders.
func TestVolumeOf_NilLookup(t *testing.T) {
	items := []ordersdomain.OrderItem{{Producto: "Nevera", Cantidad: 2}}
	assert.InDelta(t, 2*DefaultUnitVolumeM3, VolumeOf(items, nil), 1e-9)
}

// TestAvailableCapacity verifies the derived capacity invariant:
// available + Σ(pending+assigned volumes) == total.
func TestAvailableCapacity(t *testing.T) {
	warehouse := warehousesdomain.Warehouse{Nombre: "Antioquia", CapacidadTotalM3: 100}

	orders := []ordersdomain.Order{
		{BodegaAsignada: "Antioquia", Estado: ordersdomain.OrderStatusPending, VolumenTotalM3: 10},
		{BodegaAsignada: "Antioquia", Estado: ordersdomain.OrderStatusAssigned, VolumenTotalM3: 25},
		// Terminal and en-route orders no longer occupy warehouse capacity.
		{BodegaAsignada: "Antioquia", Estado: ordersdomain.OrderStatusDelivered, VolumenTotalM3: 40},
		{BodegaAsignada: "Antioquia", Estado: ordersdomain.OrderStatusEnRoute, VolumenTotalM3: 7},
		// Orders for other warehouses are ignored.
		{BodegaAsignada: "Cundinamarca", Estado: ordersdomain.OrderStatusPending, VolumenTotalM3: 99},
	}

	available := AvailableCapacity(warehouse, orders)
	assert.InDelta(t, 100-10-25, available, 1e-9)

	pendingAndAssigned := 10.0 + 25.0
	assert.InDelta(t, warehouse.CapacidadTotalM3, available+pendingAndAssigned, 1e-9)
}

// TestAvailableCapacity_Negative verifies over-capacity is reported, not rejected.
func TestAvailableCapacity_Negative(t *testing.T) {
	warehouse := warehousesdomain.Warehouse{Nombre: "Valle del Cauca", CapacidadTotalM3: 10}

	orders := []ordersdomain.Order{
		{BodegaAsignada: "Valle del Cauca", Estado: ordersdomain.OrderStatusPending, VolumenTotalM3: 18},
	}

	assert.InDelta(t, -8, AvailableCapacity(warehouse, orders), 1e-9)
}
