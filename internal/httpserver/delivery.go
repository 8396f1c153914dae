package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// DeliveryHTTP answers the cart's delivery fee lookup. The fee is a
// flat configured amount.
type DeliveryHTTP struct {
	Fee      int
	Currency string
}

func (h *DeliveryHTTP) GetFee(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"success":     true,
		"deliveryFee": h.Fee,
		"currency":    h.Currency,
	})
}
