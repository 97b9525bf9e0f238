package handler

import (
	"net/http"

	capacityservice "dispatch-engine/internal/features/capacity/service"
	ordersports "dispatch-engine/internal/features/orders/ports"
	"dispatch-engine/internal/features/warehouses/ports"

	"github.com/gofiber/fiber/v2"
)

// WarehouseHandler handles HTTP requests for the warehouse registry and its
// derived capacity view.
type WarehouseHandler struct {
	warehouses ports.WarehouseRepository
	orders     ordersports.OrderRepository
}

// NewWarehouseHandler creates a new WarehouseHandler.
func NewWarehouseHandler(warehouses ports.WarehouseRepository, orders ordersports.OrderRepository) *WarehouseHandler {
	return &WarehouseHandler{
		warehouses: warehouses,
		orders:     orders,
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

// CapacityReport is the derived capacity view of a warehouse. Values are
// computed fresh from current orders on every request.
type CapacityReport struct {
	// Bodega is the warehouse name.
	Bodega string `json:"bodega"`
	// CapacidadTotalM3 is the warehouse's configured capacity.
	CapacidadTotalM3 float64 `json:"capacidad_total_m3"`
	// VolumenOcupadoM3 is the volume committed by pendiente and asignado orders.
	VolumenOcupadoM3 float64 `json:"volumen_ocupado_m3"`
	// CapacidadDisponibleM3 is the remaining capacity. Negative values signal
	// an over-capacity warehouse.
	CapacidadDisponibleM3 float64 `json:"capacidad_disponible_m3"`
}

// ListWarehouses godoc
// @Summary List registered warehouses
// @Tags bodegas
// @Produce json
// @Success 200 {array} domain.Warehouse
// @Router /bodegas [get]
func (h *WarehouseHandler) ListWarehouses(c *fiber.Ctx) error {
	warehouses, err := h.warehouses.List(c.UserContext())
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID(c),
		})
	}

	return c.Status(http.StatusOK).JSON(warehouses)
}

// GetCapacity godoc
// @Summary Get the derived capacity of a warehouse
// @Description Computes available capacity from the warehouse's pendiente and asignado orders. The value may be negative.
// @Tags bodegas
// @Produce json
// @Param nombre path string true "Warehouse name"
// @Success 200 {object} CapacityReport
// @Failure 404 {object} ErrorResponse
// @Router /bodegas/{nombre}/capacidad [get]
func (h *WarehouseHandler) GetCapacity(c *fiber.Ctx) error {
	nombre := c.Params("nombre")

	warehouse, err := h.warehouses.GetByNombre(c.UserContext(), nombre)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID(c),
		})
	}
	if warehouse == nil {
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Message: "warehouse not found",
			RayID:   rayID(c),
		})
	}

	orders, err := h.orders.ListByWarehouse(c.UserContext(), warehouse.Nombre)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID(c),
		})
	}

	available := capacityservice.AvailableCapacity(*warehouse, orders)
	return c.Status(http.StatusOK).JSON(CapacityReport{
		Bodega:                warehouse.Nombre,
		CapacidadTotalM3:      warehouse.CapacidadTotalM3,
		VolumenOcupadoM3:      warehouse.CapacidadTotalM3 - available,
		CapacidadDisponibleM3: available,
	})
}
