package service

import (
	"math/rand"
	"sync"

	"dispatch-engine/internal/features/orders/domain"
)

// RandomPriorityPolicy implements ports.PriorityPolicy with a seedable random
// draw: orders without an explicit priority are marked critical with a fixed
// probability. Tests fix the seed (or use ratio 0/1) for determinism.
type RandomPriorityPolicy struct {
	ratio float64
	mu    sync.Mutex
	rng   *rand.Rand
}

// NewRandomPriorityPolicy creates a policy marking orders critical with the
// given probability. Ratios outside [0, 1] are clamped.
func NewRandomPriorityPolicy(ratio float64, seed int64) *RandomPriorityPolicy {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return &RandomPriorityPolicy{
		ratio: ratio,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Assign returns the order's own priority when it carries a valid one,
// otherwise draws critical with the configured probability.
func (p *RandomPriorityPolicy) Assign(order *domain.Order) domain.Priority {
	if order.Prioridad.IsValid() {
		return order.Prioridad
	}

	p.mu.Lock()
	draw := p.rng.Float64()
	p.mu.Unlock()

	if draw < p.ratio {
		return domain.PriorityCritical
	}
	return domain.PriorityNormal
}
