package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"dispatch-engine/internal/core/logger"
	ordersdomain "dispatch-engine/internal/features/orders/domain"
	ordersports "dispatch-engine/internal/features/orders/ports"
	"dispatch-engine/internal/features/routes/domain"
	"dispatch-engine/internal/features/routes/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrRouteNotFound indicates the requested route does not exist.
	ErrRouteNotFound = errors.New("route not found")
	// ErrTruckNotFound indicates the referenced truck does not exist.
	ErrTruckNotFound = errors.New("truck not found")
	// ErrInvalidTransition indicates the requested lifecycle move is not
	// allowed from the current state. Nothing is mutated.
	ErrInvalidTransition = errors.New("invalid state transition")
	// ErrEmptyFailureReason indicates a delivery failure without a reason.
	ErrEmptyFailureReason = errors.New("failure reason is required")
	// ErrOrderNotInRoute indicates the order is not a stop of the route.
	ErrOrderNotInRoute = errors.New("order is not part of the route")
	// ErrOrderNotCommittable indicates an order could not be committed because
	// it is missing or no longer pendiente.
	ErrOrderNotCommittable = errors.New("order cannot be committed to a route")
)

// DispatchMode selects what happens to a committed route right after it is
// created.
type DispatchMode string

const (
	// DispatchImmediate commits the route and starts it in the same operation.
	DispatchImmediate DispatchMode = "inmediato"
	// DispatchScheduled commits the route as planificada for later start.
	DispatchScheduled DispatchMode = "programado"
)

// Lifecycle drives route and delivery state transitions. All mutations run
// under a single mutex so concurrent handler calls cannot interleave partial
// updates across the route, its orders, and its truck.
type Lifecycle struct {
	routes      ports.RouteRepository
	orders      ordersports.OrderRepository
	trucks      ports.TruckRepository
	buffer      time.Duration
	serviceTime time.Duration
	nowFn       func() time.Time
	mu          sync.Mutex
}

// NewLifecycle creates a new Lifecycle. buffer is the fixed dispatch overhead
// and serviceTime the per-stop handling estimate used for ETA recomputation.
func NewLifecycle(routes ports.RouteRepository, orders ordersports.OrderRepository, trucks ports.TruckRepository, buffer, serviceTime time.Duration) *Lifecycle {
	return &Lifecycle{
		routes:      routes,
		orders:      orders,
		trucks:      trucks,
		buffer:      buffer,
		serviceTime: serviceTime,
		nowFn:       time.Now,
	}
}

// WithClock overrides the time source. Intended for tests.
func (l *Lifecycle) WithClock(now func() time.Time) *Lifecycle {
	l.nowFn = now
	return l
}

// GetRoute retrieves a route by ID.
func (l *Lifecycle) GetRoute(ctx context.Context, id string) (*domain.Route, error) {
	route, err := l.routes.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if route == nil {
		return nil, ErrRouteNotFound
	}
	return route, nil
}

// CommitRoute turns an accepted optimizer proposal into a persisted route.
// Every referenced order must still be pendiente; the check runs before any
// mutation so a stale order leaves the whole batch untouched. Committed orders
// move to asignado and the truck leaves the available pool. In immediate mode
// the route is started in the same critical section.
func (l *Lifecycle) CommitRoute(ctx context.Context, truck *domain.Truck, proposal domain.OptimizedRoute, fecha time.Time, mode DispatchMode) (*domain.Route, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	committed := make([]*ordersdomain.Order, 0, len(proposal.Pedidos))
	for _, stop := range proposal.Pedidos {
		order, err := l.orders.Get(ctx, stop.ID)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, fmt.Errorf("%w: %s not found", ErrOrderNotCommittable, stop.ID)
		}
		if order.Estado != ordersdomain.OrderStatusPending {
			return nil, fmt.Errorf("%w: %s is %s", ErrOrderNotCommittable, order.ID, order.Estado)
		}
		committed = append(committed, order)
	}

	route := &domain.Route{
		ID:                  uuid.New().String(),
		CamionID:            truck.ID,
		FechaProgramada:     fecha,
		Estado:              domain.RouteStatusPlanned,
		DistanciaTotalKm:    proposal.Resumen.DistanciaKm,
		TiempoEstimadoHoras: proposal.Resumen.TiempoHoras,
		VolumenTotalM3:      proposal.Resumen.VolumenUtilizado,
		Paradas:             make([]domain.Stop, 0, len(proposal.Pedidos)),
	}
	for _, stop := range proposal.Pedidos {
		route.Paradas = append(route.Paradas, domain.Stop{
			PedidoID:     stop.ID,
			Orden:        stop.Orden,
			HoraEstimada: stop.HoraEstimada,
		})
	}
	l.estimateCompletion(route)

	if err := l.routes.Save(ctx, route); err != nil {
		return nil, err
	}

	for _, order := range committed {
		order.Estado = ordersdomain.OrderStatusAssigned
		order.RutaEntregaID = route.ID
		if err := l.orders.Save(ctx, order); err != nil {
			return nil, err
		}
	}

	truck.Estado = domain.TruckStatusPlanned
	if err := l.trucks.Save(ctx, truck); err != nil {
		return nil, err
	}

	logger.Get().Info("Route committed",
		zap.String("ruta_id", route.ID),
		zap.String("camion", truck.Codigo),
		zap.Int("paradas", len(route.Paradas)),
		zap.String("modo", string(mode)),
	)

	if mode == DispatchImmediate {
		if err := l.startLocked(ctx, route); err != nil {
			return nil, err
		}
	}

	return route, nil
}

// StartRoute transitions a route to en_curso, records the departure time, and
// moves its orders and truck to en_ruta. Starting an already running route is
// a no-op.
func (l *Lifecycle) StartRoute(ctx context.Context, routeID string) (*domain.Route, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	route, err := l.GetRoute(ctx, routeID)
	if err != nil {
		return nil, err
	}
	if route.Estado == domain.RouteStatusInProgress {
		return route, nil
	}
	if !route.Estado.CanTransitionTo(domain.RouteStatusInProgress) {
		return nil, fmt.Errorf("%w: %s cannot start", ErrInvalidTransition, route.Estado)
	}

	if err := l.startLocked(ctx, route); err != nil {
		return nil, err
	}
	return route, nil
}

func (l *Lifecycle) startLocked(ctx context.Context, route *domain.Route) error {
	now := l.nowFn()
	route.Estado = domain.RouteStatusInProgress
	route.HoraInicio = &now
	l.estimateCompletion(route)

	if err := l.routes.Save(ctx, route); err != nil {
		return err
	}

	for i := range route.Paradas {
		order, err := l.orders.Get(ctx, route.Paradas[i].PedidoID)
		if err != nil {
			return err
		}
		if order == nil || !order.Estado.CanTransitionTo(ordersdomain.OrderStatusEnRoute) {
			continue
		}
		order.Estado = ordersdomain.OrderStatusEnRoute
		if err := l.orders.Save(ctx, order); err != nil {
			return err
		}
	}

	truck, err := l.trucks.Get(ctx, route.CamionID)
	if err != nil {
		return err
	}
	if truck == nil {
		return fmt.Errorf("%w: %s", ErrTruckNotFound, route.CamionID)
	}
	truck.Estado = domain.TruckStatusEnRoute
	if err := l.trucks.Save(ctx, truck); err != nil {
		return err
	}

	logger.Get().Info("Route started",
		zap.String("ruta_id", route.ID),
		zap.String("camion", truck.Codigo),
	)
	return nil
}

// PauseRoute transitions a running route to pausada. Orders keep their state.
func (l *Lifecycle) PauseRoute(ctx context.Context, routeID string) (*domain.Route, error) {
	return l.transition(ctx, routeID, domain.RouteStatusPaused)
}

// ResumeRoute transitions a paused route back to en_curso.
func (l *Lifecycle) ResumeRoute(ctx context.Context, routeID string) (*domain.Route, error) {
	return l.transition(ctx, routeID, domain.RouteStatusInProgress)
}

func (l *Lifecycle) transition(ctx context.Context, routeID string, next domain.RouteStatus) (*domain.Route, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	route, err := l.GetRoute(ctx, routeID)
	if err != nil {
		return nil, err
	}
	if !route.Estado.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, route.Estado, next)
	}

	route.Estado = next
	if err := l.routes.Save(ctx, route); err != nil {
		return nil, err
	}
	return route, nil
}

// MarkDelivered resolves one stop of a running route as entregado. The
// remaining stops' arrival estimates are recomputed from the current time.
func (l *Lifecycle) MarkDelivered(ctx context.Context, routeID, pedidoID, notes string) (*domain.Route, error) {
	return l.resolveStop(ctx, routeID, pedidoID, ordersdomain.OrderStatusDelivered, notes)
}

// MarkFailed resolves one stop of a running route as fallido. A non-empty
// reason is mandatory and is recorded on the order.
func (l *Lifecycle) MarkFailed(ctx context.Context, routeID, pedidoID, reason string) (*domain.Route, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrEmptyFailureReason
	}
	return l.resolveStop(ctx, routeID, pedidoID, ordersdomain.OrderStatusFailed, strings.TrimSpace(reason))
}

func (l *Lifecycle) resolveStop(ctx context.Context, routeID, pedidoID string, outcome ordersdomain.OrderStatus, notes string) (*domain.Route, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	route, err := l.GetRoute(ctx, routeID)
	if err != nil {
		return nil, err
	}
	if route.Estado != domain.RouteStatusInProgress {
		return nil, fmt.Errorf("%w: route is %s, deliveries require en_curso", ErrInvalidTransition, route.Estado)
	}

	stop := route.FindStop(pedidoID)
	if stop == nil {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotInRoute, pedidoID)
	}

	order, err := l.orders.Get(ctx, pedidoID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotInRoute, pedidoID)
	}
	if !order.Estado.CanTransitionTo(outcome) {
		return nil, fmt.Errorf("%w: order is %s", ErrInvalidTransition, order.Estado)
	}

	order.Estado = outcome
	if notes != "" {
		order.ObservacionesLogistica = notes
	}
	if err := l.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	stop.Completada = true
	l.recomputeETA(route)
	if err := l.routes.Save(ctx, route); err != nil {
		return nil, err
	}

	logger.Get().Info("Stop resolved",
		zap.String("ruta_id", route.ID),
		zap.String("pedido_id", pedidoID),
		zap.String("estado", string(outcome)),
		zap.Int("paradas_pendientes", len(route.PendingStops())),
	)
	return route, nil
}

// FinishRoute closes a running route. Stops not yet resolved are confirmed as
// entregado, the completion time is recorded, and the truck returns to
// disponible unless it still owns another open route.
func (l *Lifecycle) FinishRoute(ctx context.Context, routeID string) (*domain.Route, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	route, err := l.GetRoute(ctx, routeID)
	if err != nil {
		return nil, err
	}
	if route.Estado != domain.RouteStatusInProgress {
		return nil, fmt.Errorf("%w: %s cannot finish", ErrInvalidTransition, route.Estado)
	}

	for _, stop := range route.PendingStops() {
		order, err := l.orders.Get(ctx, stop.PedidoID)
		if err != nil {
			return nil, err
		}
		if order != nil && order.Estado.CanTransitionTo(ordersdomain.OrderStatusDelivered) {
			order.Estado = ordersdomain.OrderStatusDelivered
			order.ObservacionesLogistica = "entrega confirmada al cierre de ruta"
			if err := l.orders.Save(ctx, order); err != nil {
				return nil, err
			}
		}
		stop.Completada = true
	}

	now := l.nowFn()
	route.Estado = domain.RouteStatusCompleted
	route.HoraFin = &now
	if err := l.routes.Save(ctx, route); err != nil {
		return nil, err
	}

	if err := l.releaseTruck(ctx, route); err != nil {
		return nil, err
	}

	logger.Get().Info("Route completed",
		zap.String("ruta_id", route.ID),
		zap.Time("hora_fin", now),
	)
	return route, nil
}

func (l *Lifecycle) releaseTruck(ctx context.Context, finished *domain.Route) error {
	truck, err := l.trucks.Get(ctx, finished.CamionID)
	if err != nil {
		return err
	}
	if truck == nil {
		return fmt.Errorf("%w: %s", ErrTruckNotFound, finished.CamionID)
	}

	open, err := l.routes.ListByTruck(ctx, truck.ID)
	if err != nil {
		return err
	}
	for _, r := range open {
		if r.ID != finished.ID && !r.Estado.IsTerminal() {
			return nil
		}
	}

	truck.Estado = domain.TruckStatusAvailable
	return l.trucks.Save(ctx, truck)
}

// recomputeETA re-estimates arrival times after a real-world deviation: the
// first unresolved stop lands at now plus the dispatch buffer, each subsequent
// one offset by the per-stop service time, in existing stop order. This is a
// linear re-estimate, not a new optimization round. The route's completion
// estimate follows the last unresolved stop.
func (l *Lifecycle) recomputeETA(route *domain.Route) {
	now := l.nowFn()
	pending := route.PendingStops()
	for i, stop := range pending {
		stop.HoraEstimada = now.Add(l.buffer + time.Duration(i)*l.serviceTime)
	}
	eta := now.Add(l.buffer + time.Duration(len(pending))*l.serviceTime)
	route.HoraFinEstimada = &eta
}

// estimateCompletion sets the route's completion estimate without touching the
// stops' arrival times, which still carry the optimizer's plan.
func (l *Lifecycle) estimateCompletion(route *domain.Route) {
	eta := l.nowFn().Add(l.buffer + time.Duration(len(route.PendingStops()))*l.serviceTime)
	route.HoraFinEstimada = &eta
}
