package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"dispatch-engine/internal/core/config"
	"dispatch-engine/internal/core/httpclient"
	"dispatch-engine/internal/features/catalog/domain"
	"dispatch-engine/internal/features/catalog/ports"
)

// HTTPCatalogAdapter implements the CatalogProvider interface against the
// product catalog REST API.
type HTTPCatalogAdapter struct {
	// client is the HTTP client used for API requests.
	client *http.Client
	// config holds the catalog connection details.
	config config.CatalogConfig
}

// NewHTTPCatalogAdapter creates a new instance of HTTPCatalogAdapter.
func NewHTTPCatalogAdapter(cfg config.CatalogConfig) *HTTPCatalogAdapter {
	return &HTTPCatalogAdapter{
		client: httpclient.NewClient(10 * time.Second),
		config: cfg,
	}
}

// catalogProduct represents the JSON structure returned by the catalog API.
type catalogProduct struct {
	Nombre            string  `json:"nombre"`
	VolumenUnitarioM3 float64 `json:"volumen_unitario_m3"`
	PesoUnitarioKg    float64 `json:"peso_unitario_kg"`
}

// GetProduct fetches a product from the catalog API and maps it to the domain entity.
func (a *HTTPCatalogAdapter) GetProduct(ctx context.Context, nombre string) (*domain.Product, error) {
	reqURL := fmt.Sprintf("%s/productos/%s", a.config.URL, url.PathEscape(nombre))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ports.ErrProductNotFound, nombre)
		}
		return nil, fmt.Errorf("catalog API returned status: %d", resp.StatusCode)
	}

	var p catalogProduct
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &domain.Product{
		Nombre:            p.Nombre,
		VolumenUnitarioM3: p.VolumenUnitarioM3,
		PesoUnitarioKg:    p.PesoUnitarioKg,
	}, nil
}

// HealthCheck verifies that the catalog API is reachable.
func (a *HTTPCatalogAdapter) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.config.URL+"/productos?per_page=1", nil)
	if err != nil {
		return fmt.Errorf("health check failed to create request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("health check request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed with status: %d", resp.StatusCode)
	}

	return nil
}
