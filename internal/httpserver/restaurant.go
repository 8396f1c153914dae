package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/hantagam/qrmenu/internal/logging"
	"github.com/hantagam/qrmenu/internal/repo"
	"github.com/hantagam/qrmenu/internal/service"
	"github.com/hantagam/qrmenu/internal/transport"
)

type RestaurantHTTP struct {
	Repo *repo.GormRepo
}

func (h *RestaurantHTTP) GetRestaurant(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "restaurant.get")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("restaurant_get_error", "status", 400, "reason", "id not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id not an integer")
	}

	restaurant, err := h.Repo.GetRestaurant(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("restaurant_get_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "restaurant not found")
		}
		l.Error("restaurant_get_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get restaurant")
	}
	return c.JSON(http.StatusOK, restaurant)
}

// GetMenu is the customer-facing QR landing payload: active categories
// in display order with localized meals.
func (h *RestaurantHTTP) GetMenu(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "restaurant.menu")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("restaurant_menu_error", "status", 400, "reason", "id not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id not an integer")
	}

	lang := service.NormalizeLang(c.QueryParam("lang"))

	cats, err := h.Repo.GetRestaurantMenu(ctx, id)
	if err != nil {
		l.Error("restaurant_menu_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get menu")
	}

	out := make([]transport.LocalizedCategory, len(cats))
	for i := range cats {
		out[i] = service.LocalizeCategory(&cats[i], lang)
	}
	return c.JSON(http.StatusOK, out)
}
