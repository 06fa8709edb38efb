package handler

import (
	"net/http"
	"time"

	"lostfound-service/pkg/logger"
	"lostfound-service/prometheus"

	"github.com/labstack/echo/v4"
)

// GetStats returns the tenant's lost & found dashboard statistics
func GetStats(c echo.Context) error {
	log := logger.FromContext(c)

	tenant, err := tenantID(c)
	if err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	stats, err := svc.GetStats(c.Request().Context(), tenant)
	if err != nil {
		return engineError(c, log, err, "Failed to compute stats")
	}

	return c.JSON(http.StatusOK, stats)
}
