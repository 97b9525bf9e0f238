package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"dispatch-engine/internal/core/logger"
	ordersdomain "dispatch-engine/internal/features/orders/domain"
	ordersports "dispatch-engine/internal/features/orders/ports"
	"dispatch-engine/internal/features/routes/domain"
	"dispatch-engine/internal/features/routes/ports"
	warehousesports "dispatch-engine/internal/features/warehouses/ports"
	warehousesservice "dispatch-engine/internal/features/warehouses/service"

	"go.uber.org/zap"
)

// DispatchResult summarizes one dispatch run for a warehouse.
type DispatchResult struct {
	// Bodega is the warehouse that was dispatched.
	Bodega string `json:"bodega"`
	// Fecha is the operating date that was planned.
	Fecha string `json:"fecha"`
	// Rutas are the committed routes.
	Rutas []domain.Route `json:"rutas"`
	// PedidosNoAsignados lists order IDs left pendiente for the next run.
	PedidosNoAsignados []string `json:"pedidos_no_asignados"`
	// Razon explains why orders were left unassigned, when the optimizer or
	// validation said so.
	Razon string `json:"razon,omitempty"`
}

// Dispatcher runs the daily planning cycle for a warehouse: collect the
// pending orders due inside the lead-time window, snapshot the available
// fleet, broker an optimization round, and commit the accepted routes. Runs
// for the same warehouse are serialized; different warehouses dispatch
// concurrently.
type Dispatcher struct {
	warehouses warehousesports.WarehouseRepository
	orders     ordersports.OrderRepository
	trucks     ports.TruckRepository
	broker     *Broker
	lifecycle  *Lifecycle

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(warehouses warehousesports.WarehouseRepository, orders ordersports.OrderRepository, trucks ports.TruckRepository, broker *Broker, lifecycle *Lifecycle) *Dispatcher {
	return &Dispatcher{
		warehouses: warehouses,
		orders:     orders,
		trucks:     trucks,
		broker:     broker,
		lifecycle:  lifecycle,
		locks:      make(map[string]*sync.Mutex),
	}
}

func (d *Dispatcher) lockFor(bodega string) *sync.Mutex {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.locks[bodega]; !ok {
		d.locks[bodega] = &sync.Mutex{}
	}
	return d.locks[bodega]
}

// RunForWarehouse executes one dispatch cycle for the named warehouse as of
// the given date. Only pendiente orders whose deadline falls inside the
// warehouse's lead-time window are considered. The run is idempotent: orders
// committed by one run are asignado and invisible to the next.
func (d *Dispatcher) RunForWarehouse(ctx context.Context, bodega string, asOf time.Time) (*DispatchResult, error) {
	lock := d.lockFor(bodega)
	lock.Lock()
	defer lock.Unlock()

	warehouse, err := d.warehouses.GetByNombre(ctx, bodega)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, fmt.Errorf("%w: %s", warehousesservice.ErrUnknownWarehouse, bodega)
	}

	result := &DispatchResult{
		Bodega:             warehouse.Nombre,
		Fecha:              asOf.Format("2006-01-02"),
		Rutas:              []domain.Route{},
		PedidosNoAsignados: []string{},
	}

	pending, err := d.orders.ListByWarehouseAndStatus(ctx, warehouse.Nombre, ordersdomain.OrderStatusPending)
	if err != nil {
		return nil, err
	}

	windowEnd := warehousesservice.AddBusinessDays(asOf, warehouse.TiempoMaximoEntregaDias)
	due := make([]ordersdomain.Order, 0, len(pending))
	for _, o := range pending {
		if !o.FechaLimiteEntrega.After(windowEnd) {
			due = append(due, o)
		}
	}

	if len(due) == 0 {
		logger.Get().Info("No orders due for dispatch",
			zap.String("bodega", warehouse.Nombre),
			zap.String("fecha", result.Fecha),
		)
		return result, nil
	}

	trucks, err := d.availableTrucks(ctx, warehouse.Nombre)
	if err != nil {
		return nil, err
	}
	if len(trucks) == 0 {
		for _, o := range due {
			result.PedidosNoAsignados = append(result.PedidosNoAsignados, o.ID)
		}
		result.Razon = "sin camiones disponibles"
		logger.Get().Warn("Dispatch skipped, no trucks available",
			zap.String("bodega", warehouse.Nombre),
			zap.Int("pedidos_pendientes", len(due)),
		)
		return result, nil
	}

	req := d.broker.BuildRequest(warehouse, result.Fecha, due, trucks)
	outcome, err := d.broker.Optimize(ctx, req)
	if err != nil {
		return nil, err
	}

	result.PedidosNoAsignados = append(result.PedidosNoAsignados, outcome.NoAsignados...)
	result.Razon = outcome.Razon

	trucksByCode := make(map[string]*domain.Truck, len(trucks))
	for i := range trucks {
		trucksByCode[trucks[i].Codigo] = &trucks[i]
	}

	for _, proposal := range outcome.Rutas {
		truck := trucksByCode[proposal.CamionCodigo]
		route, err := d.lifecycle.CommitRoute(ctx, truck, proposal, asOf, DispatchScheduled)
		if err != nil {
			// A commit lost to a concurrent state change drops this route
			// only; its orders stay pendiente for the next run.
			logger.Get().Warn("Route commit rejected",
				zap.String("bodega", warehouse.Nombre),
				zap.String("camion", proposal.CamionCodigo),
				zap.Error(err),
			)
			for _, stop := range proposal.Pedidos {
				result.PedidosNoAsignados = append(result.PedidosNoAsignados, stop.ID)
			}
			continue
		}
		result.Rutas = append(result.Rutas, *route)
	}

	logger.Get().Info("Dispatch cycle finished",
		zap.String("bodega", warehouse.Nombre),
		zap.String("fecha", result.Fecha),
		zap.Int("rutas", len(result.Rutas)),
		zap.Int("no_asignados", len(result.PedidosNoAsignados)),
	)
	return result, nil
}

func (d *Dispatcher) availableTrucks(ctx context.Context, bodega string) ([]domain.Truck, error) {
	fleet, err := d.trucks.ListByWarehouse(ctx, bodega)
	if err != nil {
		return nil, err
	}

	available := fleet[:0]
	for _, t := range fleet {
		if t.Estado == domain.TruckStatusAvailable {
			available = append(available, t)
		}
	}
	return available, nil
}
