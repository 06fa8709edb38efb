package handler

import (
	"net/http"
	"strconv"
	"time"

	"lostfound-service/internal/model"
	"lostfound-service/pkg/logger"
	"lostfound-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// FoundItemRequest defines the structure for found item registrations
type FoundItemRequest struct {
	ItemName          string     `json:"item_name" validate:"required"`
	Category          string     `json:"category"`
	Description       string     `json:"description"`
	Color             string     `json:"color"`
	Brand             string     `json:"brand"`
	LocationFound     string     `json:"location_found" validate:"required"`
	FinderName        string     `json:"finder_name"`
	StorageLocation   string     `json:"storage_location"`
	StorageNotes      string     `json:"storage_notes"`
	FoundAt           *time.Time `json:"found_at"`
	DisposalAfterDays int        `json:"disposal_after_days"`
}

// RegisterFoundItem handles a staff member registering a recovered item
func RegisterFoundItem(c echo.Context) error {
	log := logger.FromContext(c)

	tenant, err := tenantID(c)
	if err != nil {
		return err
	}

	var req FoundItemRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid found item request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	item := model.FoundItem{
		TenantID:          tenant,
		ItemName:          req.ItemName,
		Category:          req.Category,
		Description:       req.Description,
		Color:             req.Color,
		Brand:             req.Brand,
		LocationFound:     req.LocationFound,
		FinderName:        req.FinderName,
		StorageLocation:   req.StorageLocation,
		StorageNotes:      req.StorageNotes,
		DisposalAfterDays: req.DisposalAfterDays,
	}
	if req.FoundAt != nil {
		item.FoundAt = *req.FoundAt
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	created, err := svc.RegisterFoundItem(c.Request().Context(), &item)
	if err != nil {
		return engineError(c, log, err, "Failed to register found item")
	}

	prometheus.FoundItemRegistersCounter.Inc()
	return c.JSON(http.StatusCreated, created)
}

// ListFoundItems handles retrieving found items with optional filtering
func ListFoundItems(c echo.Context) error {
	log := logger.FromContext(c)

	tenant, err := tenantID(c)
	if err != nil {
		return err
	}

	var status *model.FoundItemStatus
	if raw := c.QueryParam("status"); raw != "" {
		parsed, ok := model.ParseFoundItemStatus(raw)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown found item status: " + raw})
		}
		status = &parsed
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	items, err := svc.ListFoundItems(c.Request().Context(), tenant, status)
	if err != nil {
		return engineError(c, log, err, "Failed to list found items")
	}

	return c.JSON(http.StatusOK, items)
}

// GetFoundItem handles retrieving a single found item
func GetFoundItem(c echo.Context) error {
	log := logger.FromContext(c)

	tenant, err := tenantID(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid found item id"})
	}

	item, err := svc.GetFoundItem(c.Request().Context(), tenant, uint(id))
	if err != nil {
		return engineError(c, log, err, "Failed to get found item")
	}

	return c.JSON(http.StatusOK, item)
}

// ListUrgentFoundItems handles listing items nearing their disposal deadline
func ListUrgentFoundItems(c echo.Context) error {
	log := logger.FromContext(c)

	tenant, err := tenantID(c)
	if err != nil {
		return err
	}

	items, err := svc.UrgentFoundItems(c.Request().Context(), tenant)
	if err != nil {
		return engineError(c, log, err, "Failed to list urgent found items")
	}

	return c.JSON(http.StatusOK, items)
}

// DisposeFoundItem handles a staff member disposing an item manually
func DisposeFoundItem(c echo.Context) error {
	log := logger.FromContext(c)

	tenant, err := tenantID(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid found item id"})
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if err := svc.DisposeFoundItem(c.Request().Context(), tenant, uint(id), req.Reason); err != nil {
		return engineError(c, log, err, "Failed to dispose found item")
	}

	prometheus.ItemsDisposedCounter.Inc()
	return c.JSON(http.StatusOK, echo.Map{"status": "disposed"})
}
