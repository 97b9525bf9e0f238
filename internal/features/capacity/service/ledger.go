package service

import (
	ordersdomain "dispatch-engine/internal/features/orders/domain"
	warehousesdomain "dispatch-engine/internal/features/warehouses/domain"
)

// DefaultUnitVolumeM3 is the unit volume assumed for products absent from the
// catalog. Orders must never be blocked by catalog gaps, so uncatalogued
// lines fall back to this constant instead of failing.
const DefaultUnitVolumeM3 = 0.1

// VolumeLookup resolves a product name to its unit volume in cubic meters.
// The boolean reports whether the product is catalogued.
type VolumeLookup func(producto string) (float64, bool)

// VolumeOf computes the total volume of an order's line items as
// Σ(cantidad × volumen unitario), applying DefaultUnitVolumeM3 for products
// the lookup does not know.
func VolumeOf(items []ordersdomain.OrderItem, lookup VolumeLookup) float64 {
	var total float64
	for _, item := range items {
		unit := DefaultUnitVolumeM3
		if lookup != nil {
			if v, ok := lookup(item.Producto); ok {
				unit = v
			}
		}
		total += float64(item.Cantidad) * unit
	}
	return total
}

// AvailableCapacity derives the remaining volumetric capacity of a warehouse
// from the orders currently pending or assigned to it. The value is computed
// fresh on every call, never stored, and may be negative: over-capacity is a
// valid, alertable state, not an error.
func AvailableCapacity(warehouse warehousesdomain.Warehouse, orders []ordersdomain.Order) float64 {
	used := 0.0
	for _, o := range orders {
		if o.BodegaAsignada != warehouse.Nombre {
			continue
		}
		if o.Estado == ordersdomain.OrderStatusPending || o.Estado == ordersdomain.OrderStatusAssigned {
			used += o.VolumenTotalM3
		}
	}
	return warehouse.CapacidadTotalM3 - used
}
