package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hantagam/qrmenu/internal/es"
	"github.com/hantagam/qrmenu/internal/logging"
	"github.com/hantagam/qrmenu/internal/util"
)

type SearchHTTP struct {
	Search *es.MealSearch
}

func (h *SearchHTTP) SearchMeals(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search.meals")

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}
	if h.Search == nil {
		l.Warn("search_unavailable", "status", 503)
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not configured")
	}

	pageParam := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(pageParam, size)

	total, meals, err := h.Search.Search(ctx, q, offset, limit)
	if err != nil {
		l.Error("search_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": meals,
		"meta": map[string]any{
			"page":     pageParam,
			"size":     limit,
			"total":    total,
			"has_prev": pageParam > 1,
			"has_next": int64(offset+limit) < total,
		},
	})
}
