package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hantagam/qrmenu/internal/sse"
)

type EventsHTTP struct {
	Broker *sse.Broker
}

// Stream serves the image-cache invalidation feed as Server-Sent
// Events. Clients get a "connected" frame up front and are removed
// when the request context is cancelled.
func (h *EventsHTTP) Stream(c echo.Context) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)

	flusher, ok := res.Writer.(http.Flusher)
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "streaming unsupported")
	}

	events, unsubscribe := h.Broker.Subscribe()
	defer unsubscribe()

	if _, err := res.Write(sse.Frame(sse.Event{Type: "connected"})); err != nil {
		return nil
	}
	flusher.Flush()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if _, err := res.Write(sse.Frame(ev)); err != nil {
				return nil
			}
			flusher.Flush()
		}
	}
}
