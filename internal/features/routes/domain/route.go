package domain

import "time"

// RouteStatus represents the lifecycle state of a delivery route.
type RouteStatus string

const (
	// RouteStatusPlanned is the initial state of a committed route.
	RouteStatusPlanned RouteStatus = "planificada"
	// RouteStatusInProgress indicates the truck departed.
	RouteStatusInProgress RouteStatus = "en_curso"
	// RouteStatusPaused is a side branch reachable from en_curso.
	RouteStatusPaused RouteStatus = "pausada"
	// RouteStatusCompleted is the terminal state.
	RouteStatusCompleted RouteStatus = "completada"
)

// IsTerminal reports whether the route admits no further transitions.
func (s RouteStatus) IsTerminal() bool {
	return s == RouteStatusCompleted
}

// CanTransitionTo reports whether the route lifecycle allows moving to next:
// planificada → en_curso → completada, with pausada reachable from en_curso
// and returning to it.
func (s RouteStatus) CanTransitionTo(next RouteStatus) bool {
	switch s {
	case RouteStatusPlanned:
		return next == RouteStatusInProgress
	case RouteStatusInProgress:
		return next == RouteStatusPaused || next == RouteStatusCompleted
	case RouteStatusPaused:
		return next == RouteStatusInProgress
	}
	return false
}

// Stop represents one order's scheduled delivery within a route.
type Stop struct {
	// PedidoID references the order delivered at this stop.
	PedidoID string `json:"id"`
	// Orden is the 1-based position of the stop in the route sequence.
	Orden int `json:"orden"`
	// HoraEstimada is the estimated arrival time.
	HoraEstimada time.Time `json:"hora_estimada"`
	// Completada marks the stop as resolved (delivered or failed).
	Completada bool `json:"completada"`
}

// Route represents a truck's ordered sequence of delivery stops for one
// operating day. Routes are never deleted, only state-transitioned.
type Route struct {
	// ID is the unique identifier for the route.
	ID string `json:"id"`
	// CamionID references the owning truck.
	CamionID string `json:"camion_id"`
	// FechaProgramada is the scheduled operating date.
	FechaProgramada time.Time `json:"fecha_programada"`
	// Estado is the lifecycle state.
	Estado RouteStatus `json:"estado"`
	// HoraInicio is the actual start time, set by StartRoute.
	HoraInicio *time.Time `json:"hora_inicio,omitempty"`
	// HoraFinEstimada is the estimated completion time, kept current by ETA
	// recomputation.
	HoraFinEstimada *time.Time `json:"hora_fin_estimada,omitempty"`
	// HoraFin is the actual end time, set when the route completes.
	HoraFin *time.Time `json:"hora_fin,omitempty"`
	// DistanciaTotalKm is the optimizer's estimated total distance.
	DistanciaTotalKm float64 `json:"distancia_total_km"`
	// TiempoEstimadoHoras is the optimizer's estimated driving time.
	TiempoEstimadoHoras float64 `json:"tiempo_estimado_horas"`
	// VolumenTotalM3 is the total cargo volume committed to the route.
	VolumenTotalM3 float64 `json:"volumen_total_m3"`
	// Paradas is the ordered stop list.
	Paradas []Stop `json:"ruta_optimizada"`
	// Observaciones holds free-text operational notes.
	Observaciones string `json:"observaciones,omitempty"`
}

// FindStop returns a pointer to the stop delivering the given order, or nil.
func (r *Route) FindStop(pedidoID string) *Stop {
	for i := range r.Paradas {
		if r.Paradas[i].PedidoID == pedidoID {
			return &r.Paradas[i]
		}
	}
	return nil
}

// PendingStops returns the stops not yet resolved, in sequence order.
func (r *Route) PendingStops() []*Stop {
	var pending []*Stop
	for i := range r.Paradas {
		if !r.Paradas[i].Completada {
			pending = append(pending, &r.Paradas[i])
		}
	}
	return pending
}
