package domain

// Warehouse represents a regional fulfillment node (bodega) with its own
// truck fleet and volumetric capacity.
type Warehouse struct {
	// ID is the unique identifier for the warehouse.
	ID string `json:"id"`
	// Nombre is the warehouse name, by convention the department it serves
	// (e.g., "Antioquia").
	Nombre string `json:"nombre"`
	// Departamento is the administrative region the warehouse covers.
	Departamento string `json:"departamento"`
	// CapacidadTotalM3 is the total volumetric capacity in cubic meters.
	CapacidadTotalM3 float64 `json:"capacidad_total_m3"`
	// TiempoMaximoEntregaDias is the maximum delivery lead time in business days.
	TiempoMaximoEntregaDias int `json:"tiempo_maximo_entrega_dias"`
	// Activa indicates whether the warehouse currently accepts orders.
	Activa bool `json:"activa"`
	// DireccionBase is the physical address trucks depart from.
	DireccionBase string `json:"direccion_base"`
	// HorarioOperacion is the operating hours window (e.g., "06:00-18:00").
	HorarioOperacion string `json:"horario_operacion"`
}
