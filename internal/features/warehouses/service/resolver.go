package service

import (
	"errors"
	"strings"
	"time"

	"dispatch-engine/internal/features/warehouses/domain"
)

// ErrUnknownWarehouse is returned when a warehouse name is not registered.
// This is a configuration error: callers are expected to resolve against the
// registry before computing deadlines.
var ErrUnknownWarehouse = errors.New("unknown warehouse")

// cityWarehouses maps normalized city names to the warehouse serving them.
var cityWarehouses = map[string]string{
	"medellin": "Antioquia",
	"envigado": "Antioquia",
	"itagui":   "Antioquia",
	"bello":    "Antioquia",
	"rionegro": "Antioquia",
	"bogota":   "Cundinamarca",
	"soacha":   "Cundinamarca",
	"chia":     "Cundinamarca",
	"zipaquira": "Cundinamarca",
	"cali":     "Valle del Cauca",
	"palmira":  "Valle del Cauca",
	"yumbo":    "Valle del Cauca",
	"jamundi":  "Valle del Cauca",
}

// cityNames maps normalized city names back to their display form.
var cityNames = map[string]string{
	"medellin": "Medellín",
	"envigado": "Envigado",
	"itagui":   "Itagüí",
	"bello":    "Bello",
	"rionegro": "Rionegro",
	"bogota":   "Bogotá",
	"soacha":   "Soacha",
	"chia":     "Chía",
	"zipaquira": "Zipaquirá",
	"cali":     "Cali",
	"palmira":  "Palmira",
	"yumbo":    "Yumbo",
	"jamundi":  "Jamundí",
}

var accentReplacer = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
	"Á", "a", "É", "e", "Í", "i", "Ó", "o", "Ú", "u", "Ü", "u", "Ñ", "n",
)

// normalizeCity lowercases and strips accents so "Itagüí" matches "itagui".
func normalizeCity(s string) string {
	return strings.ToLower(accentReplacer.Replace(strings.TrimSpace(s)))
}

// Resolver maps delivery cities and free-text addresses to warehouses and
// computes business-day delivery deadlines. It holds an immutable snapshot of
// the warehouse registry and performs no I/O.
type Resolver struct {
	warehouses  map[string]domain.Warehouse
	defaultCity string
}

// NewResolver creates a Resolver over the given warehouse registry.
// defaultCity is used when neither the explicit city nor the address matches
// a known city.
func NewResolver(warehouses []domain.Warehouse, defaultCity string) *Resolver {
	byNombre := make(map[string]domain.Warehouse, len(warehouses))
	for _, w := range warehouses {
		byNombre[w.Nombre] = w
	}
	return &Resolver{
		warehouses:  byNombre,
		defaultCity: defaultCity,
	}
}

// ResolveWarehouse determines the delivery city and the warehouse that serves
// an order. The explicit city wins when it is a known city; otherwise known
// city names are substring-matched against the free-text address; otherwise
// the configured default city applies.
func (r *Resolver) ResolveWarehouse(direccion, ciudadExplicita string) (ciudad, bodega string) {
	if ciudadExplicita != "" {
		key := normalizeCity(ciudadExplicita)
		if b, ok := cityWarehouses[key]; ok {
			return cityNames[key], b
		}
	}

	normalizedAddr := normalizeCity(direccion)
	for key, b := range cityWarehouses {
		if strings.Contains(normalizedAddr, key) {
			return cityNames[key], b
		}
	}

	defaultKey := normalizeCity(r.defaultCity)
	if b, ok := cityWarehouses[defaultKey]; ok {
		return cityNames[defaultKey], b
	}

	// Misconfigured default city. Fall back to Cundinamarca, the central hub.
	return r.defaultCity, "Cundinamarca"
}

// ComputeDeadline returns fromDate advanced by the warehouse's maximum lead
// time in business days. The result is deterministic and never a weekend.
func (r *Resolver) ComputeDeadline(bodega string, from time.Time) (time.Time, error) {
	w, ok := r.warehouses[bodega]
	if !ok {
		return time.Time{}, ErrUnknownWarehouse
	}
	return AddBusinessDays(from, w.TiempoMaximoEntregaDias), nil
}

// LeadTimeWindowEnd returns the end of the dispatch window for a warehouse as
// of a given date: deadlines at or before this date are due for dispatch.
func (r *Resolver) LeadTimeWindowEnd(bodega string, asOf time.Time) (time.Time, error) {
	return r.ComputeDeadline(bodega, asOf)
}

// AddBusinessDays advances a date by n business days, skipping Saturdays and
// Sundays. The time of day is preserved.
func AddBusinessDays(from time.Time, days int) time.Time {
	d := from
	for remaining := days; remaining > 0; {
		d = d.AddDate(0, 0, 1)
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			remaining--
		}
	}
	return d
}
