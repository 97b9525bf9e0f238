package domain

// TruckStatus represents the operational state of a truck.
type TruckStatus string

const (
	// TruckStatusAvailable indicates the truck can be planned into a route.
	TruckStatusAvailable TruckStatus = "disponible"
	// TruckStatusEnRoute indicates the truck is executing a route.
	TruckStatusEnRoute TruckStatus = "en_ruta"
	// TruckStatusPlanned indicates the truck is committed to a scheduled route
	// that has not started.
	TruckStatusPlanned TruckStatus = "planificado"
	// TruckStatusMaintenance indicates the truck is out of service.
	TruckStatusMaintenance TruckStatus = "mantenimiento"
)

// Truck represents a delivery truck owned by a warehouse.
// A truck is en_ruta or planificado exactly while it owns a non-terminal route.
type Truck struct {
	// ID is the unique identifier for the truck.
	ID string `json:"id"`
	// Codigo is the operational code painted on the truck (e.g., "ANT-01").
	Codigo string `json:"codigo"`
	// Bodega is the name of the owning warehouse.
	Bodega string `json:"bodega"`
	// CapacidadMaximaM3 is the maximum cargo volume in cubic meters.
	CapacidadMaximaM3 float64 `json:"capacidad_maxima_m3"`
	// Estado is the operational state.
	Estado TruckStatus `json:"estado"`
	// ConductorNombre is the assigned driver's name.
	ConductorNombre string `json:"conductor_nombre,omitempty"`
	// ConductorTelefono is the assigned driver's phone number.
	ConductorTelefono string `json:"conductor_telefono,omitempty"`
}

// DefaultTrucks returns the built-in fleet used to seed an empty store on
// startup.
func DefaultTrucks() []Truck {
	return []Truck{
		{ID: "camion-ant-01", Codigo: "ANT-01", Bodega: "Antioquia", CapacidadMaximaM3: 10, Estado: TruckStatusAvailable, ConductorNombre: "Carlos Restrepo", ConductorTelefono: "+57 301 555 0101"},
		{ID: "camion-ant-02", Codigo: "ANT-02", Bodega: "Antioquia", CapacidadMaximaM3: 16, Estado: TruckStatusAvailable, ConductorNombre: "Luisa Moreno", ConductorTelefono: "+57 301 555 0102"},
		{ID: "camion-cun-01", Codigo: "CUN-01", Bodega: "Cundinamarca", CapacidadMaximaM3: 20, Estado: TruckStatusAvailable, ConductorNombre: "Jorge Ruiz", ConductorTelefono: "+57 310 555 0201"},
		{ID: "camion-cun-02", Codigo: "CUN-02", Bodega: "Cundinamarca", CapacidadMaximaM3: 12, Estado: TruckStatusAvailable},
		{ID: "camion-val-01", Codigo: "VAL-01", Bodega: "Valle del Cauca", CapacidadMaximaM3: 14, Estado: TruckStatusAvailable, ConductorNombre: "Marta Quintero", ConductorTelefono: "+57 315 555 0301"},
	}
}
