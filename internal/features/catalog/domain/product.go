package domain

// Product represents a catalog entry with its unit shipping dimensions.
type Product struct {
	// Nombre is the product name, which is also its catalog key.
	Nombre string `json:"nombre"`
	// VolumenUnitarioM3 is the volume of one unit in cubic meters.
	VolumenUnitarioM3 float64 `json:"volumen_unitario_m3"`
	// PesoUnitarioKg is the weight of one unit in kilograms.
	PesoUnitarioKg float64 `json:"peso_unitario_kg"`
}
