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

type CategoryHTTP struct {
	Svc *service.MenuService
}

func (h *CategoryHTTP) GetCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.list")

	cats, err := h.Svc.GetCategories(ctx)
	if err != nil {
		l.Error("category_list_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get categories")
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *CategoryHTTP) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.create")

	var req transport.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("category_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cat, err := h.Svc.CreateCategory(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("category_create_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("category_create_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create category")
	}

	l.Info("category_create_success", "categoryID", cat.ID)
	return c.JSON(http.StatusCreated, cat)
}

func (h *CategoryHTTP) PatchCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.patch")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("category_patch_error", "status", 400, "reason", "id not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id not a uuid")
	}

	var req transport.PatchCategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("category_patch_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cat, err := h.Svc.PatchCategory(ctx, id, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("category_patch_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "category not found")
		}
		l.Error("category_patch_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update category")
	}

	l.Info("category_patch_success", "categoryID", cat.ID)
	return c.JSON(http.StatusOK, cat)
}

func (h *CategoryHTTP) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.delete")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("category_delete_error", "status", 400, "reason", "id not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id not a uuid")
	}

	if err := h.Svc.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("category_delete_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "category not found")
		}
		l.Error("category_delete_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete category")
	}

	l.Info("category_delete_success", "categoryID", id)
	return c.NoContent(http.StatusNoContent)
}
