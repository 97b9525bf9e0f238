package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"dispatch-engine/internal/core/logger"
	ordersdomain "dispatch-engine/internal/features/orders/domain"
	"dispatch-engine/internal/features/routes/domain"
	"dispatch-engine/internal/features/routes/ports"
	warehousesdomain "dispatch-engine/internal/features/warehouses/domain"

	"go.uber.org/zap"
)

// ErrInvalidResponse marks optimizer proposals that reference orders or trucks
// outside the submitted snapshot. The whole batch is rejected and no state
// changes.
var ErrInvalidResponse = errors.New("invalid optimizer proposal")

// BrokerOutcome is the validated result of one optimization round.
type BrokerOutcome struct {
	// Rutas are the accepted route proposals, ready to commit.
	Rutas []domain.OptimizedRoute
	// NoAsignados lists order IDs the optimizer (or validation) left out.
	NoAsignados []string
	// Razon carries the optimizer's explanation for unassigned orders, if any.
	Razon string
}

// Broker mediates between dispatch and the external optimizer. It builds
// deterministic request snapshots, retries transport failures with bounded
// attempts, and validates proposals before anything is persisted.
type Broker struct {
	optimizer  ports.Optimizer
	maxRetries int
}

// NewBroker creates a new Broker. maxRetries counts additional attempts after
// the first call; negative values are treated as zero.
func NewBroker(optimizer ports.Optimizer, maxRetries int) *Broker {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Broker{
		optimizer:  optimizer,
		maxRetries: maxRetries,
	}
}

// BuildRequest assembles the optimization snapshot for one warehouse. Orders
// and trucks are sorted so identical inputs always produce an identical
// request payload.
func (b *Broker) BuildRequest(warehouse *warehousesdomain.Warehouse, fecha string, orders []ordersdomain.Order, trucks []domain.Truck) *domain.RouteRequest {
	sorted := make([]ordersdomain.Order, len(orders))
	copy(sorted, orders)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	sortedTrucks := make([]domain.Truck, len(trucks))
	copy(sortedTrucks, trucks)
	sort.Slice(sortedTrucks, func(i, j int) bool { return sortedTrucks[i].Codigo < sortedTrucks[j].Codigo })

	req := &domain.RouteRequest{
		Bodega:              warehouse.Nombre,
		FechaPlanificacion:  fecha,
		DireccionBase:       warehouse.DireccionBase,
		HorarioOperacion:    warehouse.HorarioOperacion,
		CamionesDisponibles: make([]domain.TruckSnapshot, 0, len(sortedTrucks)),
		PedidosIncluir:      make([]domain.OrderSnapshot, 0, len(sorted)),
	}

	for _, t := range sortedTrucks {
		req.CamionesDisponibles = append(req.CamionesDisponibles, domain.TruckSnapshot{
			Codigo:      t.Codigo,
			CapacidadM3: t.CapacidadMaximaM3,
		})
	}
	for _, o := range sorted {
		req.PedidosIncluir = append(req.PedidosIncluir, domain.OrderSnapshot{
			ID:          o.ID,
			Direccion:   o.DireccionEntrega,
			VolumenM3:   o.VolumenTotalM3,
			Prioridad:   string(o.Prioridad),
			FechaLimite: o.FechaLimiteEntrega,
		})
	}

	return req
}

// Optimize submits the request and validates the proposal. Transport failures
// are retried up to maxRetries extra attempts; malformed or inconsistent
// responses fail the batch immediately. Routes that overrun their truck's
// declared capacity are dropped individually, with their orders reported as
// unassigned.
func (b *Broker) Optimize(ctx context.Context, req *domain.RouteRequest) (*BrokerOutcome, error) {
	resp, err := b.callWithRetry(ctx, req)
	if err != nil {
		return nil, err
	}

	return b.validate(req, resp)
}

func (b *Broker) callWithRetry(ctx context.Context, req *domain.RouteRequest) (*domain.RouteResponse, error) {
	var lastErr error
	for attempt := 0; attempt <= b.maxRetries; attempt++ {
		resp, err := b.optimizer.Optimize(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		// Only transport-level failures are worth retrying. A malformed body
		// will be malformed again.
		if !errors.Is(err, ports.ErrOptimizerUnavailable) {
			return nil, err
		}

		logger.Get().Warn("Optimizer call failed",
			zap.String("bodega", req.Bodega),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
	}

	return nil, fmt.Errorf("optimizer exhausted %d attempts: %w", b.maxRetries+1, lastErr)
}

func (b *Broker) validate(req *domain.RouteRequest, resp *domain.RouteResponse) (*BrokerOutcome, error) {
	knownOrders := make(map[string]float64, len(req.PedidosIncluir))
	for _, o := range req.PedidosIncluir {
		knownOrders[o.ID] = o.VolumenM3
	}
	knownTrucks := make(map[string]float64, len(req.CamionesDisponibles))
	for _, t := range req.CamionesDisponibles {
		knownTrucks[t.Codigo] = t.CapacidadM3
	}

	outcome := &BrokerOutcome{
		Rutas:       make([]domain.OptimizedRoute, 0, len(resp.RutasOptimizadas)),
		NoAsignados: append([]string{}, resp.PedidosNoAsignados...),
		Razon:       resp.Razon,
	}

	unassigned := make(map[string]bool, len(resp.PedidosNoAsignados))
	for _, id := range resp.PedidosNoAsignados {
		if _, ok := knownOrders[id]; !ok {
			return nil, fmt.Errorf("%w: unknown order %q in pedidos_no_asignados", ErrInvalidResponse, id)
		}
		unassigned[id] = true
	}

	seenOrders := make(map[string]bool, len(knownOrders))
	seenTrucks := make(map[string]bool, len(knownTrucks))
	for _, route := range resp.RutasOptimizadas {
		capacity, ok := knownTrucks[route.CamionCodigo]
		if !ok {
			return nil, fmt.Errorf("%w: unknown truck %q", ErrInvalidResponse, route.CamionCodigo)
		}
		if seenTrucks[route.CamionCodigo] {
			return nil, fmt.Errorf("%w: truck %q assigned twice", ErrInvalidResponse, route.CamionCodigo)
		}
		seenTrucks[route.CamionCodigo] = true

		var volume float64
		for _, stop := range route.Pedidos {
			v, ok := knownOrders[stop.ID]
			if !ok {
				return nil, fmt.Errorf("%w: unknown order %q in route for %s", ErrInvalidResponse, stop.ID, route.CamionCodigo)
			}
			if seenOrders[stop.ID] {
				return nil, fmt.Errorf("%w: order %q assigned twice", ErrInvalidResponse, stop.ID)
			}
			if unassigned[stop.ID] {
				return nil, fmt.Errorf("%w: order %q both routed and unassigned", ErrInvalidResponse, stop.ID)
			}
			seenOrders[stop.ID] = true
			volume += v
		}

		// Capacity overruns are the optimizer's mistake but only poison one
		// route: drop it and keep the rest of the proposal.
		if volume > capacity {
			logger.Get().Warn("Dropping route over truck capacity",
				zap.String("camion", route.CamionCodigo),
				zap.Float64("volumen_m3", volume),
				zap.Float64("capacidad_m3", capacity),
			)
			for _, stop := range route.Pedidos {
				outcome.NoAsignados = append(outcome.NoAsignados, stop.ID)
			}
			if outcome.Razon == "" {
				outcome.Razon = fmt.Sprintf("ruta para %s excede capacidad del camión", route.CamionCodigo)
			}
			continue
		}

		outcome.Rutas = append(outcome.Rutas, route)
	}

	return outcome, nil
}
