package handler

import (
	"errors"
	"net/http"

	"lostfound-service/internal/lostfound"
	"lostfound-service/internal/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var svc *lostfound.Service

// Init wires the engine into the handler package
func Init(s *lostfound.Service) {
	svc = s
}

// tenantID resolves the tenant from the authenticated request context
func tenantID(c echo.Context) (uint, error) {
	id, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "tenant context missing")
	}
	return id, nil
}

// engineError maps engine error taxonomy onto HTTP responses
func engineError(c echo.Context, log *zap.Logger, err error, msg string) error {
	switch {
	case errors.Is(err, lostfound.ErrNotFound):
		log.Warn(msg, zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, lostfound.ErrConflict):
		log.Warn(msg, zap.Error(err))
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, lostfound.ErrInvalidInput):
		log.Warn(msg, zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		log.Error(msg, zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msg})
	}
}
