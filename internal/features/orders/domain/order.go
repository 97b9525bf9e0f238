package domain

import "time"

// OrderStatus represents the delivery lifecycle state of an order.
// Values match the persisted wire format.
type OrderStatus string

const (
	// OrderStatusPending indicates the order awaits dispatch planning.
	OrderStatusPending OrderStatus = "pendiente"
	// OrderStatusAssigned indicates the order is committed to a route.
	OrderStatusAssigned OrderStatus = "asignado"
	// OrderStatusEnRoute indicates the truck carrying the order departed.
	OrderStatusEnRoute OrderStatus = "en_ruta"
	// OrderStatusDelivered indicates the order reached the customer.
	OrderStatusDelivered OrderStatus = "entregado"
	// OrderStatusFailed indicates the delivery attempt failed.
	OrderStatusFailed OrderStatus = "fallido"
)

// Priority represents the dispatch priority of an order.
type Priority string

const (
	// PriorityNormal is the default dispatch priority.
	PriorityNormal Priority = "normal"
	// PriorityCritical marks orders that must be dispatched first.
	PriorityCritical Priority = "critica"
)

// IsValid reports whether the status is one of the known lifecycle values.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusAssigned, OrderStatusEnRoute,
		OrderStatusDelivered, OrderStatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusFailed
}

// CanTransitionTo reports whether the lifecycle allows moving to next.
// Deliveries only move forward: pendiente → asignado → en_ruta → entregado|fallido,
// with entregado/fallido also reachable directly from asignado.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusAssigned
	case OrderStatusAssigned:
		return next == OrderStatusEnRoute || next == OrderStatusDelivered || next == OrderStatusFailed
	case OrderStatusEnRoute:
		return next == OrderStatusDelivered || next == OrderStatusFailed
	}
	return false
}

// IsValid reports whether the priority is a known value.
func (p Priority) IsValid() bool {
	return p == PriorityNormal || p == PriorityCritical
}

// OrderItem represents a product line within an order.
type OrderItem struct {
	// Producto is the product name, used as the catalog key.
	Producto string `json:"producto"`
	// Cantidad is the number of units ordered.
	Cantidad int `json:"cantidad"`
}

// Order represents a delivery order in the system.
type Order struct {
	// ID is the unique identifier for the order.
	ID string `json:"id"`
	// NombreCliente is the customer name.
	NombreCliente string `json:"nombre_cliente"`
	// DireccionEntrega is the free-text delivery address.
	DireccionEntrega string `json:"direccion_entrega"`
	// CiudadEntrega is the delivery city, resolved at intake when not provided.
	CiudadEntrega string `json:"ciudad_entrega"`
	// Items contains the product lines of the order.
	Items []OrderItem `json:"items"`
	// Estado is the current lifecycle state.
	Estado OrderStatus `json:"estado"`
	// VolumenTotalM3 is the computed total volume in cubic meters.
	// Always derived from items and the catalog, never set by clients.
	VolumenTotalM3 float64 `json:"volumen_total_m3"`
	// Prioridad is the dispatch priority.
	Prioridad Priority `json:"prioridad"`
	// FechaLimiteEntrega is the delivery deadline, always a business day.
	// Computed at intake and immutable thereafter.
	FechaLimiteEntrega time.Time `json:"fecha_limite_entrega"`
	// BodegaAsignada is the name of the warehouse serving the order.
	BodegaAsignada string `json:"bodega_asignada"`
	// RutaEntregaID references the delivery route once committed.
	RutaEntregaID string `json:"ruta_entrega_id,omitempty"`
	// ObservacionesLogistica holds free-text logistics notes (failure reasons,
	// delivery confirmations, triage flags).
	ObservacionesLogistica string `json:"observaciones_logistica,omitempty"`
}
