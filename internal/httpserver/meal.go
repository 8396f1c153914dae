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

type MealHTTP struct {
	Svc *service.MenuService
}

func (h *MealHTTP) GetMeal(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "meal.get")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("meal_get_error", "status", 400, "reason", "id not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id not a uuid")
	}

	meal, err := h.Svc.GetMeal(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("meal_get_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "meal not found")
		}
		l.Error("meal_get_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get meal")
	}
	return c.JSON(http.StatusOK, meal)
}

func (h *MealHTTP) GetMeals(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "meal.list")

	var categoryID *uuid.UUID
	if v := c.QueryParam("categoryId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			l.Warn("meal_list_error", "status", 400, "reason", "categoryId not a uuid", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "categoryId not a uuid")
		}
		categoryID = &id
	}

	meals, err := h.Svc.GetMeals(ctx, categoryID)
	if err != nil {
		l.Error("meal_list_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get meals")
	}
	return c.JSON(http.StatusOK, meals)
}

func (h *MealHTTP) CreateMeal(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "meal.create")

	var req transport.CreateMealRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("meal_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	meal, err := h.Svc.CreateMeal(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("meal_create_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("meal_create_error", "status", 404, "reason", "category not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "category not found")
		}
		l.Error("meal_create_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create meal")
	}

	l.Info("meal_create_success", "mealID", meal.ID)
	return c.JSON(http.StatusCreated, meal)
}

func (h *MealHTTP) PatchMeal(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "meal.patch")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("meal_patch_error", "status", 400, "reason", "id not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id not a uuid")
	}

	var req transport.PatchMealRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("meal_patch_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	meal, err := h.Svc.PatchMeal(ctx, id, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("meal_patch_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "meal not found")
		}
		if errors.Is(err, service.ErrValidation) {
			l.Warn("meal_patch_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("meal_patch_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update meal")
	}

	l.Info("meal_patch_success", "mealID", meal.ID)
	return c.JSON(http.StatusOK, meal)
}

func (h *MealHTTP) DeleteMeal(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "meal.delete")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("meal_delete_error", "status", 400, "reason", "id not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id not a uuid")
	}

	if err := h.Svc.DeleteMeal(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("meal_delete_error", "status", 404, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "meal not found")
		}
		l.Error("meal_delete_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete meal")
	}

	l.Info("meal_delete_success", "mealID", id)
	return c.NoContent(http.StatusNoContent)
}
