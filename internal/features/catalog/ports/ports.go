package ports

import (
	"context"
	"errors"

	"dispatch-engine/internal/features/catalog/domain"
)

// ErrProductNotFound is returned when a product is not catalogued.
var ErrProductNotFound = errors.New("product not found")

// CatalogProvider defines the interface for product catalog lookups.
// This is a Secondary Port (Driven Port).
type CatalogProvider interface {
	// GetProduct retrieves a product by name.
	// Returns ErrProductNotFound for products absent from the catalog.
	GetProduct(ctx context.Context, nombre string) (*domain.Product, error)
}
