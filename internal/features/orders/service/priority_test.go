package service

import (
	"testing"

	"dispatch-engine/internal/features/orders/domain"

	"github.com/stretchr/testify/assert"
)

// TestRandomPriorityPolicy_ExplicitPriorityWins verifies that an explicit
// priority from the intake source is never overridden.
func TestRandomPriorityPolicy_ExplicitPriorityWins(t *testing.T) {
	policy := NewRandomPriorityPolicy(1.0, 1)

	order := &domain.Order{Prioridad: domain.PriorityNormal}
	assert.Equal(t, domain.PriorityNormal, policy.Assign(order))

	order = &domain.Order{Prioridad: domain.PriorityCritical}
	assert.Equal(t, domain.PriorityCritical, policy.Assign(order))
}

// TestRandomPriorityPolicy_RatioExtremes verifies deterministic behavior at
// ratio 0 and 1.
func TestRandomPriorityPolicy_RatioExtremes(t *testing.T) {
	never := NewRandomPriorityPolicy(0, 42)
	always := NewRandomPriorityPolicy(1, 42)

	for i := 0; i < 100; i++ {
		assert.Equal(t, domain.PriorityNormal, never.Assign(&domain.Order{}))
		assert.Equal(t, domain.PriorityCritical, always.Assign(&domain.Order{}))
	}
}

// TestRandomPriorityPolicy_Seedable verifies identical seeds draw identical
// sequences.
func TestRandomPriorityPolicy_Seedable(t *testing.T) {
	a := NewRandomPriorityPolicy(0.5, 7)
	b := NewRandomPriorityPolicy(0.5, 7)

	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Assign(&domain.Order{}), b.Assign(&domain.Order{}))
	}
}

// TestRandomPriorityPolicy_AlwaysAssignsAValue verifies every order ends up
// with one of the two priorities.
func TestRandomPriorityPolicy_AlwaysAssignsAValue(t *testing.T) {
	policy := NewRandomPriorityPolicy(0.5, 99)

	for i := 0; i < 100; i++ {
		p := policy.Assign(&domain.Order{})
		assert.True(t, p.IsValid())
	}
}

// TestNewRandomPriorityPolicy_ClampsRatio verifies out-of-range ratios clamp.
func TestNewRandomPriorityPolicy_ClampsRatio(t *testing.T) {
	low := NewRandomPriorityPolicy(-0.5, 1)
	high := NewRandomPriorityPolicy(1.5, 1)

	assert.Equal(t, domain.PriorityNormal, low.Assign(&domain.Order{}))
	assert.Equal(t, domain.PriorityCritical, high.Assign(&domain.Order{}))
}
