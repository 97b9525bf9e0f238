package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dispatch-engine/internal/core/cache"
	"dispatch-engine/internal/core/logger"
	"dispatch-engine/internal/features/catalog/domain"
	"dispatch-engine/internal/features/catalog/ports"

	"go.uber.org/zap"
)

// CachedCatalogAdapter wraps a CatalogProvider with a read-through cache so
// hot catalog entries do not hit the external API on every intake.
type CachedCatalogAdapter struct {
	inner ports.CatalogProvider
	store cache.Store
	ttl   time.Duration
}

// NewCachedCatalogAdapter creates a read-through cache over the given provider.
func NewCachedCatalogAdapter(inner ports.CatalogProvider, store cache.Store, ttl time.Duration) *CachedCatalogAdapter {
	return &CachedCatalogAdapter{
		inner: inner,
		store: store,
		ttl:   ttl,
	}
}

func productCacheKey(nombre string) string {
	return "catalogo:producto:" + nombre
}

// GetProduct returns the cached product when present, otherwise fetches it
// from the inner provider and caches the result. Not-found results are not
// cached so late catalog additions become visible immediately.
func (a *CachedCatalogAdapter) GetProduct(ctx context.Context, nombre string) (*domain.Product, error) {
	key := productCacheKey(nombre)

	if data, err := a.store.Get(ctx, key); err == nil {
		var p domain.Product
		if err := json.Unmarshal(data, &p); err == nil {
			return &p, nil
		}
		// Corrupt entry. Drop it and fall through to the provider.
		if err := a.store.Delete(ctx, key); err != nil {
			logger.Get().Warn("Failed to evict corrupt catalog cache entry",
				zap.String("producto", nombre),
				zap.Error(err),
			)
		}
	}

	p, err := a.inner.GetProduct(ctx, nombre)
	if err != nil {
		if errors.Is(err, ports.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("catalog lookup failed: %w", err)
	}

	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal product: %w", err)
	}
	if err := a.store.Set(ctx, key, data, a.ttl); err != nil {
		logger.Get().Warn("Failed to cache catalog entry",
			zap.String("producto", nombre),
			zap.Error(err),
		)
	}

	return p, nil
}
