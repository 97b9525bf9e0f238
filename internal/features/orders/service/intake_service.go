package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch-engine/internal/core/logger"
	capacityservice "dispatch-engine/internal/features/capacity/service"
	catalogports "dispatch-engine/internal/features/catalog/ports"
	"dispatch-engine/internal/features/orders/domain"
	"dispatch-engine/internal/features/orders/ports"
	warehouseservice "dispatch-engine/internal/features/warehouses/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrMissingAddress is returned when an order carries no delivery address.
	ErrMissingAddress = errors.New("delivery address is required")
	// ErrNoItems is returned when an order carries no line items.
	ErrNoItems = errors.New("order has no items")
	// ErrUnassignable is returned when an order cannot be resolved to a
	// warehouse. The order is persisted flagged for manual triage.
	ErrUnassignable = errors.New("order cannot be assigned to a warehouse")
)

// IntakeService resolves incoming orders into fully dispatchable pending
// orders: warehouse, volume, deadline and priority. It never triggers routing.
type IntakeService struct {
	repo     ports.OrderRepository
	catalog  catalogports.CatalogProvider
	resolver *warehouseservice.Resolver
	priority ports.PriorityPolicy
	nowFn    func() time.Time
	logger   *zap.Logger
}

// NewIntakeService creates a new IntakeService.
func NewIntakeService(
	repo ports.OrderRepository,
	catalog catalogports.CatalogProvider,
	resolver *warehouseservice.Resolver,
	priority ports.PriorityPolicy,
) *IntakeService {
	return &IntakeService{
		repo:     repo,
		catalog:  catalog,
		resolver: resolver,
		priority: priority,
		nowFn:    time.Now,
		logger:   logger.Get(),
	}
}

// WithClock overrides the intake clock. Used by tests to pin deadlines.
func (s *IntakeService) WithClock(now func() time.Time) *IntakeService {
	s.nowFn = now
	return s
}

// Intake runs the resolution pipeline on an order and persists the result:
// warehouse resolution, volume computation, business-day deadline, priority
// defaulting. The order ends up pendiente, ready for the next dispatch run.
func (s *IntakeService) Intake(ctx context.Context, order *domain.Order) error {
	if order.DireccionEntrega == "" {
		return ErrMissingAddress
	}
	if len(order.Items) == 0 {
		return ErrNoItems
	}

	if order.ID == "" {
		order.ID = uuid.NewString()
	}

	ciudad, bodega := s.resolver.ResolveWarehouse(order.DireccionEntrega, order.CiudadEntrega)
	order.CiudadEntrega = ciudad
	order.BodegaAsignada = bodega

	order.VolumenTotalM3 = capacityservice.VolumeOf(order.Items, s.volumeLookup(ctx))

	deadline, err := s.resolver.ComputeDeadline(bodega, s.nowFn())
	if err != nil {
		// Resolution produced a warehouse the registry does not know. This is
		// a configuration error; persist the order flagged for manual triage.
		order.Estado = domain.OrderStatusPending
		order.ObservacionesLogistica = fmt.Sprintf("pedido no asignable: %v", err)
		if saveErr := s.repo.Save(ctx, order); saveErr != nil {
			return fmt.Errorf("failed to persist unassignable order: %w", saveErr)
		}
		return fmt.Errorf("%w: %v", ErrUnassignable, err)
	}
	order.FechaLimiteEntrega = deadline

	order.Prioridad = s.priority.Assign(order)
	order.Estado = domain.OrderStatusPending

	if err := s.repo.Save(ctx, order); err != nil {
		return fmt.Errorf("failed to save resolved order: %w", err)
	}

	s.logger.Info("Order intake resolved",
		zap.String("pedido_id", order.ID),
		zap.String("bodega", order.BodegaAsignada),
		zap.String("ciudad", order.CiudadEntrega),
		zap.Float64("volumen_m3", order.VolumenTotalM3),
		zap.String("prioridad", string(order.Prioridad)),
	)

	return nil
}

// volumeLookup adapts the catalog provider to the capacity ledger's lookup
// shape. Catalog misses and transport failures both fall back to the default
// unit volume: catalog gaps must never block an order.
func (s *IntakeService) volumeLookup(ctx context.Context) capacityservice.VolumeLookup {
	return func(producto string) (float64, bool) {
		p, err := s.catalog.GetProduct(ctx, producto)
		if err != nil {
			if !errors.Is(err, catalogports.ErrProductNotFound) {
				s.logger.Warn("Catalog lookup failed, using default unit volume",
					zap.String("producto", producto),
					zap.Error(err),
				)
			}
			return 0, false
		}
		return p.VolumenUnitarioM3, true
	}
}
