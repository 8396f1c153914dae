package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/hantagam/qrmenu/internal/logging"
	"github.com/hantagam/qrmenu/internal/service"
	"github.com/hantagam/qrmenu/internal/transport"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) GetOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	orders, err := h.Svc.GetOrders(ctx, c.QueryParam("status"))
	if err != nil {
		l.Error("order_list_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get orders")
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("order_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.CreateOrder(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("order_create_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("order_create_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create order")
	}

	l.Info("order_create_success", "orderID", order.ID, "total", order.TotalAmount)
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) PatchOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.patch_status")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("order_patch_error", "status", 400, "reason", "id not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id not a uuid")
	}

	var req transport.PatchOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("order_patch_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.UpdateOrderStatus(ctx, id, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("order_patch_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("order_patch_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		l.Error("order_patch_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update order")
	}

	l.Info("order_patch_success", "orderID", order.ID, "new_status", order.Status)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) ClearOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.clear")

	removed, err := h.Svc.ClearOrderHistory(ctx)
	if err != nil {
		l.Error("order_clear_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot clear orders")
	}

	l.Info("order_clear_success", "removed", removed)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "removed": removed})
}
