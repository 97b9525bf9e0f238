package domain

import "time"

// TruckSnapshot is the view of a truck sent to the optimizer.
type TruckSnapshot struct {
	// Codigo is the truck's operational code.
	Codigo string `json:"codigo"`
	// CapacidadM3 is the truck's maximum cargo volume.
	CapacidadM3 float64 `json:"capacidad_m3"`
}

// OrderSnapshot is the view of an order sent to the optimizer.
type OrderSnapshot struct {
	// ID is the order identifier.
	ID string `json:"id"`
	// Direccion is the delivery address.
	Direccion string `json:"direccion"`
	// VolumenM3 is the order's total volume.
	VolumenM3 float64 `json:"volumen_m3"`
	// Prioridad is the dispatch priority.
	Prioridad string `json:"prioridad"`
	// FechaLimite is the delivery deadline.
	FechaLimite time.Time `json:"fecha_limite"`
}

// RouteRequest is the payload sent to the external optimization service.
// It is a self-contained snapshot: the optimizer never reads engine state.
type RouteRequest struct {
	// Bodega is the dispatching warehouse name.
	Bodega string `json:"bodega"`
	// FechaPlanificacion is the operating date being planned (YYYY-MM-DD).
	FechaPlanificacion string `json:"fecha_planificacion"`
	// DireccionBase is the warehouse address trucks depart from.
	DireccionBase string `json:"direccion_base"`
	// HorarioOperacion is the warehouse operating window.
	HorarioOperacion string `json:"horario_operacion"`
	// CamionesDisponibles lists the trucks available for planning.
	CamionesDisponibles []TruckSnapshot `json:"camiones_disponibles"`
	// PedidosIncluir lists the orders to be routed.
	PedidosIncluir []OrderSnapshot `json:"pedidos_incluir"`
}

// OptimizedStop is one delivery in an optimizer-proposed route.
type OptimizedStop struct {
	// ID is the order identifier.
	ID string `json:"id"`
	// Orden is the 1-based delivery sequence position.
	Orden int `json:"orden"`
	// HoraEstimada is the optimizer's estimated arrival time.
	HoraEstimada time.Time `json:"hora_estimada"`
}

// RouteSummary holds the optimizer's aggregate estimates for one route.
type RouteSummary struct {
	TotalPedidos        int     `json:"total_pedidos"`
	VolumenUtilizado    float64 `json:"volumen_utilizado"`
	PorcentajeCapacidad float64 `json:"porcentaje_capacidad"`
	DistanciaKm         float64 `json:"distancia_km"`
	TiempoHoras         float64 `json:"tiempo_horas"`
}

// OptimizedRoute is one truck assignment proposed by the optimizer.
type OptimizedRoute struct {
	// CamionCodigo references a truck from the request by code.
	CamionCodigo string `json:"camion_codigo"`
	// Pedidos is the ordered delivery sequence.
	Pedidos []OptimizedStop `json:"pedidos"`
	// Resumen holds the aggregate estimates.
	Resumen RouteSummary `json:"resumen"`
}

// RouteResponse is the payload returned by the external optimization service.
// PedidosNoAsignados is always echoed explicitly; callers never infer it.
type RouteResponse struct {
	// RutasOptimizadas lists the proposed truck assignments.
	RutasOptimizadas []OptimizedRoute `json:"rutas_optimizadas"`
	// PedidosNoAsignados lists order ids the optimizer left out.
	PedidosNoAsignados []string `json:"pedidos_no_asignados"`
	// Razon is the optimizer's explanation for unassigned orders.
	Razon string `json:"razon"`
}
