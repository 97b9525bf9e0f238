package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRouteStatus_CanTransitionTo exercises the route transition table.
func TestRouteStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    RouteStatus
		to      RouteStatus
		allowed bool
	}{
		{RouteStatusPlanned, RouteStatusInProgress, true},
		{RouteStatusPlanned, RouteStatusCompleted, false},
		{RouteStatusPlanned, RouteStatusPaused, false},
		{RouteStatusInProgress, RouteStatusPaused, true},
		{RouteStatusInProgress, RouteStatusCompleted, true},
		{RouteStatusInProgress, RouteStatusPlanned, false},
		{RouteStatusPaused, RouteStatusInProgress, true},
		{RouteStatusPaused, RouteStatusCompleted, false},
		{RouteStatusCompleted, RouteStatusInProgress, false},
		{RouteStatusCompleted, RouteStatusPlanned, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

// TestRoute_FindStop verifies stop lookup by order id.
func TestRoute_FindStop(t *testing.T) {
	route := &Route{
		Paradas: []Stop{
			{PedidoID: "p-1", Orden: 1},
			{PedidoID: "p-2", Orden: 2},
		},
	}

	stop := route.FindStop("p-2")
	require.NotNil(t, stop)
	assert.Equal(t, 2, stop.Orden)

	assert.Nil(t, route.FindStop("p-9"))
}

// TestRoute_PendingStops verifies that completed stops are excluded and order
// is preserved.
func TestRoute_PendingStops(t *testing.T) {
	now := time.Now()
	route := &Route{
		Paradas: []Stop{
			{PedidoID: "p-1", Orden: 1, Completada: true, HoraEstimada: now},
			{PedidoID: "p-2", Orden: 2},
			{PedidoID: "p-3", Orden: 3},
		},
	}

	pending := route.PendingStops()
	require.Len(t, pending, 2)
	assert.Equal(t, "p-2", pending[0].PedidoID)
	assert.Equal(t, "p-3", pending[1].PedidoID)

	// Mutating through the returned pointers reaches the route.
	pending[0].Completada = true
	assert.True(t, route.Paradas[1].Completada)
}
