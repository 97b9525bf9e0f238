package handler

import (
	"errors"
	"net/http"
	"time"

	"dispatch-engine/internal/core/logger"
	"dispatch-engine/internal/features/routes/ports"
	"dispatch-engine/internal/features/routes/service"
	warehousesservice "dispatch-engine/internal/features/warehouses/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RouteHandler handles HTTP requests for dispatch runs, route lifecycle and
// the truck fleet.
type RouteHandler struct {
	dispatcher *service.Dispatcher
	lifecycle  *service.Lifecycle
	trucks     ports.TruckRepository
	nowFn      func() time.Time
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(dispatcher *service.Dispatcher, lifecycle *service.Lifecycle, trucks ports.TruckRepository) *RouteHandler {
	return &RouteHandler{
		dispatcher: dispatcher,
		lifecycle:  lifecycle,
		trucks:     trucks,
		nowFn:      time.Now,
	}
}

// WithClock overrides the time source. Intended for tests.
func (h *RouteHandler) WithClock(now func() time.Time) *RouteHandler {
	h.nowFn = now
	return h
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

func (h *RouteHandler) fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ErrorResponse{
		Message: msg,
		RayID:   rayID(c),
	})
}

// lifecycleStatus maps lifecycle errors to HTTP status codes.
func lifecycleStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrRouteNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrOrderNotInRoute):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, service.ErrEmptyFailureReason):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Dispatch godoc
// @Summary Run a dispatch cycle for a warehouse
// @Description Collects the warehouse's due pendiente orders, requests optimized routes, and commits the accepted proposals. Safe to re-run.
// @Tags rutas
// @Produce json
// @Param nombre path string true "Warehouse name"
// @Param fecha query string false "Operating date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} service.DispatchResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /bodegas/{nombre}/despachar [post]
func (h *RouteHandler) Dispatch(c *fiber.Ctx) error {
	nombre := c.Params("nombre")

	asOf := h.nowFn()
	if fecha := c.Query("fecha"); fecha != "" {
		parsed, err := time.Parse("2006-01-02", fecha)
		if err != nil {
			return h.fail(c, http.StatusBadRequest, "invalid fecha, expected YYYY-MM-DD")
		}
		asOf = parsed
	}

	result, err := h.dispatcher.RunForWarehouse(c.UserContext(), nombre, asOf)
	if err != nil {
		logger.Get().Error("Dispatch run failed",
			zap.String("bodega", nombre),
			zap.String("ray_id", rayID(c)),
			zap.Error(err),
		)

		switch {
		case errors.Is(err, warehousesservice.ErrUnknownWarehouse):
			return h.fail(c, http.StatusNotFound, "warehouse not found")
		case errors.Is(err, ports.ErrOptimizerUnavailable),
			errors.Is(err, ports.ErrMalformedResponse),
			errors.Is(err, service.ErrInvalidResponse):
			return h.fail(c, http.StatusBadGateway, err.Error())
		default:
			return h.fail(c, http.StatusInternalServerError, err.Error())
		}
	}

	return c.Status(http.StatusOK).JSON(result)
}

// GetRoute godoc
// @Summary Get a route by ID
// @Tags rutas
// @Produce json
// @Param id path string true "Route ID"
// @Success 200 {object} domain.Route
// @Failure 404 {object} ErrorResponse
// @Router /rutas/{id} [get]
func (h *RouteHandler) GetRoute(c *fiber.Ctx) error {
	route, err := h.lifecycle.GetRoute(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, lifecycleStatus(err), err.Error())
	}
	return c.Status(http.StatusOK).JSON(route)
}

// StartRoute godoc
// @Summary Start a planned route
// @Description Moves the route to en_curso, its orders to en_ruta and its truck to en_ruta. Starting a running route is a no-op.
// @Tags rutas
// @Produce json
// @Param id path string true "Route ID"
// @Success 200 {object} domain.Route
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /rutas/{id}/iniciar [post]
func (h *RouteHandler) StartRoute(c *fiber.Ctx) error {
	route, err := h.lifecycle.StartRoute(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, lifecycleStatus(err), err.Error())
	}
	return c.Status(http.StatusOK).JSON(route)
}

// PauseRoute godoc
// @Summary Pause a running route
// @Tags rutas
// @Produce json
// @Param id path string true "Route ID"
// @Success 200 {object} domain.Route
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /rutas/{id}/pausar [post]
func (h *RouteHandler) PauseRoute(c *fiber.Ctx) error {
	route, err := h.lifecycle.PauseRoute(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, lifecycleStatus(err), err.Error())
	}
	return c.Status(http.StatusOK).JSON(route)
}

// ResumeRoute godoc
// @Summary Resume a paused route
// @Tags rutas
// @Produce json
// @Param id path string true "Route ID"
// @Success 200 {object} domain.Route
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /rutas/{id}/reanudar [post]
func (h *RouteHandler) ResumeRoute(c *fiber.Ctx) error {
	route, err := h.lifecycle.ResumeRoute(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, lifecycleStatus(err), err.Error())
	}
	return c.Status(http.StatusOK).JSON(route)
}

// FinishRoute godoc
// @Summary Close a running route
// @Description Completes the route, confirming any unresolved stops as entregado and releasing the truck.
// @Tags rutas
// @Produce json
// @Param id path string true "Route ID"
// @Success 200 {object} domain.Route
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /rutas/{id}/finalizar [post]
func (h *RouteHandler) FinishRoute(c *fiber.Ctx) error {
	route, err := h.lifecycle.FinishRoute(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, lifecycleStatus(err), err.Error())
	}
	return c.Status(http.StatusOK).JSON(route)
}

// DeliveryRequest carries the optional notes of a delivery confirmation.
type DeliveryRequest struct {
	// Observaciones are free-text delivery notes.
	Observaciones string `json:"observaciones"`
}

// FailureRequest carries the mandatory reason of a failed delivery.
type FailureRequest struct {
	// Motivo explains why the delivery failed. Required.
	Motivo string `json:"motivo"`
}

// MarkDelivered godoc
// @Summary Confirm one delivery of a running route
// @Tags rutas
// @Accept json
// @Produce json
// @Param id path string true "Route ID"
// @Param pedidoId path string true "Order ID"
// @Param body body DeliveryRequest false "Delivery notes"
// @Success 200 {object} domain.Route
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /rutas/{id}/pedidos/{pedidoId}/entregado [post]
func (h *RouteHandler) MarkDelivered(c *fiber.Ctx) error {
	var req DeliveryRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return h.fail(c, http.StatusBadRequest, "invalid request body")
		}
	}

	route, err := h.lifecycle.MarkDelivered(c.UserContext(), c.Params("id"), c.Params("pedidoId"), req.Observaciones)
	if err != nil {
		return h.fail(c, lifecycleStatus(err), err.Error())
	}
	return c.Status(http.StatusOK).JSON(route)
}

// MarkFailed godoc
// @Summary Register a failed delivery of a running route
// @Description Marks the order fallido. A non-empty motivo is mandatory and is recorded on the order.
// @Tags rutas
// @Accept json
// @Produce json
// @Param id path string true "Route ID"
// @Param pedidoId path string true "Order ID"
// @Param body body FailureRequest true "Failure reason"
// @Success 200 {object} domain.Route
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /rutas/{id}/pedidos/{pedidoId}/fallido [post]
func (h *RouteHandler) MarkFailed(c *fiber.Ctx) error {
	var req FailureRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return h.fail(c, http.StatusBadRequest, "invalid request body")
		}
	}

	route, err := h.lifecycle.MarkFailed(c.UserContext(), c.Params("id"), c.Params("pedidoId"), req.Motivo)
	if err != nil {
		return h.fail(c, lifecycleStatus(err), err.Error())
	}
	return c.Status(http.StatusOK).JSON(route)
}

// ListTrucks godoc
// @Summary List the truck fleet
// @Tags camiones
// @Produce json
// @Param bodega query string false "Filter by owning warehouse"
// @Success 200 {array} domain.Truck
// @Router /camiones [get]
func (h *RouteHandler) ListTrucks(c *fiber.Ctx) error {
	if bodega := c.Query("bodega"); bodega != "" {
		trucks, err := h.trucks.ListByWarehouse(c.UserContext(), bodega)
		if err != nil {
			return h.fail(c, http.StatusInternalServerError, err.Error())
		}
		return c.Status(http.StatusOK).JSON(trucks)
	}

	trucks, err := h.trucks.List(c.UserContext())
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(trucks)
}
