package domain

// DefaultWarehouses returns the built-in regional warehouse registry used to
// seed an empty store on startup.
func DefaultWarehouses() []Warehouse {
	return []Warehouse{
		{
			ID:                      "bodega-antioquia",
			Nombre:                  "Antioquia",
			Departamento:            "Antioquia",
			CapacidadTotalM3:        120,
			TiempoMaximoEntregaDias: 1,
			Activa:                  true,
			DireccionBase:           "Calle 30 #65-20, Medellín",
			HorarioOperacion:        "06:00-18:00",
		},
		{
			ID:                      "bodega-cundinamarca",
			Nombre:                  "Cundinamarca",
			Departamento:            "Cundinamarca",
			CapacidadTotalM3:        200,
			TiempoMaximoEntregaDias: 2,
			Activa:                  true,
			DireccionBase:           "Autopista Sur #60-30, Bogotá",
			HorarioOperacion:        "05:00-19:00",
		},
		{
			ID:                      "bodega-valle",
			Nombre:                  "Valle del Cauca",
			Departamento:            "Valle del Cauca",
			CapacidadTotalM3:        90,
			TiempoMaximoEntregaDias: 2,
			Activa:                  true,
			DireccionBase:           "Carrera 1 #45-10, Cali",
			HorarioOperacion:        "06:00-18:00",
		},
	}
}
