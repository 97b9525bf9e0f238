package handler

import (
	"errors"
	"net/http"

	"dispatch-engine/internal/core/logger"
	"dispatch-engine/internal/features/orders/domain"
	"dispatch-engine/internal/features/orders/ports"
	"dispatch-engine/internal/features/orders/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// OrderHandler handles HTTP requests related to orders.
type OrderHandler struct {
	// intake is the order intake pipeline.
	intake *service.IntakeService
	// repo is the order repository for read paths.
	repo ports.OrderRepository
}

// NewOrderHandler creates a new instance of OrderHandler.
func NewOrderHandler(intake *service.IntakeService, repo ports.OrderRepository) *OrderHandler {
	return &OrderHandler{
		intake: intake,
		repo:   repo,
	}
}

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id"`
}

func rayID(c *fiber.Ctx) string {
	id, ok := c.Locals("requestid").(string)
	if !ok {
		return "unknown"
	}
	return id
}

// CreateOrderRequest is the intake payload accepted from clients. Volume,
// deadline, warehouse and state are always derived server-side.
type CreateOrderRequest struct {
	// NombreCliente is the customer name.
	NombreCliente string `json:"nombre_cliente"`
	// DireccionEntrega is the free-text delivery address.
	DireccionEntrega string `json:"direccion_entrega"`
	// CiudadEntrega optionally names the delivery city.
	CiudadEntrega string `json:"ciudad_entrega"`
	// Items contains the product lines of the order.
	Items []domain.OrderItem `json:"items"`
	// Prioridad optionally pins the dispatch priority.
	Prioridad domain.Priority `json:"prioridad"`
}

// CreateOrder godoc
// @Summary Register a new delivery order
// @Description Runs intake resolution (warehouse, volume, deadline, priority) and persists the order as pendiente.
// @Tags pedidos
// @Accept json
// @Produce json
// @Param order body CreateOrderRequest true "Order intake payload"
// @Success 201 {object} domain.Order
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /pedidos [post]
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID(c),
		})
	}

	order := &domain.Order{
		NombreCliente:    req.NombreCliente,
		DireccionEntrega: req.DireccionEntrega,
		CiudadEntrega:    req.CiudadEntrega,
		Items:            req.Items,
		Prioridad:        req.Prioridad,
	}

	if err := h.intake.Intake(c.UserContext(), order); err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, service.ErrMissingAddress), errors.Is(err, service.ErrNoItems):
			status = http.StatusBadRequest
		case errors.Is(err, service.ErrUnassignable):
			// The order was persisted flagged for triage; the client still
			// needs to know it will not be dispatched automatically.
			status = http.StatusUnprocessableEntity
		}

		logger.Get().Warn("Order intake rejected",
			zap.String("ray_id", rayID(c)),
			zap.Error(err),
		)
		return c.Status(status).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID(c),
		})
	}

	return c.Status(http.StatusCreated).JSON(order)
}

// GetOrder godoc
// @Summary Get an order by ID
// @Tags pedidos
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 404 {object} ErrorResponse
// @Router /pedidos/{id} [get]
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	order, err := h.repo.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID(c),
		})
	}
	if order == nil {
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Message: "order not found",
			RayID:   rayID(c),
		})
	}

	return c.Status(http.StatusOK).JSON(order)
}

// ListWarehouseOrders godoc
// @Summary List the orders assigned to a warehouse
// @Description Returns the warehouse's orders, optionally filtered by lifecycle state via the estado query parameter.
// @Tags pedidos
// @Produce json
// @Param nombre path string true "Warehouse name"
// @Param estado query string false "Lifecycle state filter (pendiente, asignado, en_ruta, entregado, fallido)"
// @Success 200 {array} domain.Order
// @Failure 400 {object} ErrorResponse
// @Router /bodegas/{nombre}/pedidos [get]
func (h *OrderHandler) ListWarehouseOrders(c *fiber.Ctx) error {
	bodega := c.Params("nombre")

	var (
		orders []domain.Order
		err    error
	)
	if estado := c.Query("estado"); estado != "" {
		status := domain.OrderStatus(estado)
		if !status.IsValid() {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Message: "unknown estado filter: " + estado,
				RayID:   rayID(c),
			})
		}
		orders, err = h.repo.ListByWarehouseAndStatus(c.UserContext(), bodega, status)
	} else {
		orders, err = h.repo.ListByWarehouse(c.UserContext(), bodega)
	}
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID(c),
		})
	}

	return c.Status(http.StatusOK).JSON(orders)
}
