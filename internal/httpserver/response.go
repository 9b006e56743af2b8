package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-client/internal/checkout"
	"storefront-client/internal/domain"
)

// envelope mirrors the remote service's response shape, so the UI handles
// both surfaces the same way.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

func respondError(c *gin.Context, err error) {
	var (
		validation *domain.ValidationError
		rejected   *domain.RejectedError
		transport  *domain.TransportError
	)

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &validation):
		status = http.StatusBadRequest
	case errors.As(err, &rejected):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrVendorMismatch):
		status = http.StatusConflict
	case errors.Is(err, checkout.ErrSubmitInFlight):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.As(err, &transport):
		status = http.StatusBadGateway
	}

	c.JSON(status, envelope{Success: false, Message: err.Error()})
}

func respondUnauthenticated(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, envelope{Success: false, Message: "sign in required"})
}
