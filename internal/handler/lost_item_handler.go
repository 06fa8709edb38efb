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

// LostItemRequest defines the structure for lost item reports
type LostItemRequest struct {
	ItemName       string     `json:"item_name" validate:"required"`
	Category       string     `json:"category"`
	Description    string     `json:"description"`
	Color          string     `json:"color"`
	Brand          string     `json:"brand"`
	LocationLost   string     `json:"location_lost"`
	RoomNumber     string     `json:"room_number"`
	ReporterPhone  string     `json:"reporter_phone"`
	ReporterName   string     `json:"reporter_name"`
	ConversationID *uint      `json:"conversation_id"`
	RewardAmount   *float64   `json:"reward_amount"`
	Instructions   string     `json:"special_instructions"`
	ReportedAt     *time.Time `json:"reported_at"`
}

// ReportLostItem handles a new lost item report
func ReportLostItem(c echo.Context) error {
	log := logger.FromContext(c)

	tenant, err := tenantID(c)
	if err != nil {
		return err
	}

	var req LostItemRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid lost item request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	item := model.LostItem{
		TenantID:       tenant,
		ItemName:       req.ItemName,
		Category:       req.Category,
		Description:    req.Description,
		Color:          req.Color,
		Brand:          req.Brand,
		LocationLost:   req.LocationLost,
		RoomNumber:     req.RoomNumber,
		ReporterPhone:  req.ReporterPhone,
		ReporterName:   req.ReporterName,
		ConversationID: req.ConversationID,
		RewardAmount:   req.RewardAmount,
		Instructions:   req.Instructions,
	}
	if req.ReportedAt != nil {
		item.ReportedAt = *req.ReportedAt
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	created, err := svc.ReportLostItem(c.Request().Context(), &item)
	if err != nil {
		return engineError(c, log, err, "Failed to report lost item")
	}

	prometheus.LostItemReportsCounter.Inc()
	return c.JSON(http.StatusCreated, created)
}

// ListLostItems handles retrieving lost items with optional filtering
func ListLostItems(c echo.Context) error {
	log := logger.FromContext(c)

	tenant, err := tenantID(c)
	if err != nil {
		return err
	}

	var status *model.LostItemStatus
	if raw := c.QueryParam("status"); raw != "" {
		parsed, ok := model.ParseLostItemStatus(raw)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown lost item status: " + raw})
		}
		status = &parsed
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	items, err := svc.ListLostItems(c.Request().Context(), tenant, status, c.QueryParam("reporter_phone"))
	if err != nil {
		return engineError(c, log, err, "Failed to list lost items")
	}

	return c.JSON(http.StatusOK, items)
}

// GetLostItem handles retrieving a single lost item
func GetLostItem(c echo.Context) error {
	log := logger.FromContext(c)

	tenant, err := tenantID(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lost item id"})
	}

	item, err := svc.GetLostItem(c.Request().Context(), tenant, uint(id))
	if err != nil {
		return engineError(c, log, err, "Failed to get lost item")
	}

	return c.JSON(http.StatusOK, item)
}

// CloseLostItem handles a staff member closing an open report
func CloseLostItem(c echo.Context) error {
	log := logger.FromContext(c)

	tenant, err := tenantID(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lost item id"})
	}

	var req struct {
		Notes string `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if err := svc.CloseLostItem(c.Request().Context(), tenant, uint(id), req.Notes); err != nil {
		return engineError(c, log, err, "Failed to close lost item")
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "closed"})
}
