package http

import (
	"errors"
	"net/http"

	"intent-router/internal/intent"
	pkgErrors "intent-router/pkg/errors"
)

var errEmptyBody = errors.New("request body is required")

// mapError translates router errors into HTTP errors. The category decides
// the status; the message of validation errors is safe to return.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, intent.ErrClassifyTimeout):
		return pkgErrors.NewHTTPError(http.StatusGatewayTimeout, "classification timed out")
	case errors.Is(err, intent.ErrValidation):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, intent.ErrNotReady):
		return pkgErrors.NewHTTPError(http.StatusServiceUnavailable, "router is not ready")
	case errors.Is(err, intent.ErrConfiguration):
		return pkgErrors.NewHTTPError(http.StatusServiceUnavailable, "router is misconfigured")
	case errors.Is(err, intent.ErrEncoding):
		return pkgErrors.NewHTTPError(http.StatusBadGateway, "encoder unavailable")
	case errors.Is(err, intent.ErrSync):
		return pkgErrors.NewHTTPError(http.StatusInternalServerError, "index sync failed")
	default:
		return pkgErrors.ErrInternalServer
	}
}
