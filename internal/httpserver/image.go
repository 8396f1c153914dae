package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hantagam/qrmenu/internal/logging"
	"github.com/hantagam/qrmenu/internal/sse"
	"github.com/hantagam/qrmenu/internal/storage"
)

type ImageHTTP struct {
	Store  *storage.ImageStore
	Broker *sse.Broker
}

func (h *ImageHTTP) notify(eventType, path string) {
	if h.Broker != nil {
		h.Broker.Publish(sse.Event{Type: eventType, Path: path})
	}
}

func (h *ImageHTTP) Upload(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "image.upload")

	fh, err := c.FormFile("file")
	if err != nil {
		l.Warn("image_upload_error", "status", 400, "reason", "file missing", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}

	src, err := fh.Open()
	if err != nil {
		l.Error("image_upload_error", "status", 500, "reason", "cannot open upload", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot read file")
	}
	defer src.Close()

	category := c.FormValue("category")
	path, err := h.Store.Save(src, fh.Size, fh.Header.Get("Content-Type"), category)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedType) {
			l.Warn("image_upload_error", "status", 400, "reason", "unsupported type")
			return echo.NewHTTPError(http.StatusBadRequest, "unsupported file type, allowed: jpeg, png, webp")
		}
		if errors.Is(err, storage.ErrTooLarge) {
			l.Warn("image_upload_error", "status", 400, "reason", "too large", "size", fh.Size)
			return echo.NewHTTPError(http.StatusBadRequest, "file exceeds 5MB")
		}
		l.Error("image_upload_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot save file")
	}

	h.notify("image_uploaded", path)
	l.Info("image_upload_success", "path", path)
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "filePath": path})
}

func (h *ImageHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "image.list")

	paths, err := h.Store.List(c.QueryParam("folder"))
	if err != nil {
		if errors.Is(err, storage.ErrUnknownFolder) {
			l.Warn("image_list_error", "status", 400, "reason", "unknown folder")
			return echo.NewHTTPError(http.StatusBadRequest, "unknown folder")
		}
		l.Error("image_list_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list images")
	}
	return c.JSON(http.StatusOK, echo.Map{"images": paths})
}

func (h *ImageHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "image.delete")

	var req struct {
		Path string `json:"path"`
	}
	if err := c.Bind(&req); err != nil || req.Path == "" {
		l.Warn("image_delete_error", "status", 400, "reason", "path missing")
		return echo.NewHTTPError(http.StatusBadRequest, "path is required")
	}

	if err := h.Store.Delete(req.Path); err != nil {
		l.Warn("image_delete_error", "status", 404, "path", req.Path, "error", err)
		return echo.NewHTTPError(http.StatusNotFound, "image not found")
	}

	h.notify("image_deleted", req.Path)
	l.Info("image_delete_success", "path", req.Path)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
