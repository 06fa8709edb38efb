package handler

import (
	"net/http"
	"strconv"
	"time"

	"lostfound-service/internal/middleware"
	"lostfound-service/internal/model"
	"lostfound-service/pkg/logger"
	"lostfound-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// FindMatchesRequest selects the item to re-run candidate generation for.
// Exactly one of the two IDs must be set.
type FindMatchesRequest struct {
	LostItemID  *uint `json:"lost_item_id"`
	FoundItemID *uint `json:"found_item_id"`
}

// VerifyMatchRequest carries the staff decision on a pending match
type VerifyMatchRequest struct {
	Confirmed bool   `json:"confirmed"`
	Notes     string `json:"notes"`
}

// FindMatches re-runs candidate generation for one item and returns its proposals
func FindMatches(c echo.Context) error {
	log := logger.FromContext(c)

	tenant, err := tenantID(c)
	if err != nil {
		return err
	}

	var req FindMatchesRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid find matches request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	matches, err := svc.FindMatches(c.Request().Context(), tenant, req.LostItemID, req.FoundItemID)
	if err != nil {
		return engineError(c, log, err, "Failed to find matches")
	}

	source := "lost_item"
	if req.FoundItemID != nil {
		source = "found_item"
	}
	prometheus.RecordMatchCandidates(source, len(matches))

	return c.JSON(http.StatusOK, matches)
}

// ListMatches handles retrieving match proposals with optional status filtering
func ListMatches(c echo.Context) error {
	log := logger.FromContext(c)

	tenant, err := tenantID(c)
	if err != nil {
		return err
	}

	var status *model.MatchStatus
	if raw := c.QueryParam("status"); raw != "" {
		parsed, ok := model.ParseMatchStatus(raw)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown match status: " + raw})
		}
		status = &parsed
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	matches, err := svc.ListMatches(c.Request().Context(), tenant, status)
	if err != nil {
		return engineError(c, log, err, "Failed to list matches")
	}

	return c.JSON(http.StatusOK, matches)
}

// ListPendingMatches handles retrieving the tenant's pending proposals
func ListPendingMatches(c echo.Context) error {
	log := logger.FromContext(c)

	tenant, err := tenantID(c)
	if err != nil {
		return err
	}

	matches, err := svc.Matches().ListPending(c.Request().Context(), tenant)
	if err != nil {
		return engineError(c, log, err, "Failed to list pending matches")
	}

	return c.JSON(http.StatusOK, matches)
}

// VerifyMatch handles the staff verification decision on a pending match
func VerifyMatch(c echo.Context) error {
	log := logger.FromContext(c)

	tenant, err := tenantID(c)
	if err != nil {
		return err
	}

	matchID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid match id"})
	}

	var req VerifyMatchRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid verify request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	verifiedBy, _ := middleware.GetUserIDFromContext(c)

	defer prometheus.TrackDBOperation("update")(time.Now())

	match, err := svc.Verify(c.Request().Context(), tenant, uint(matchID), verifiedBy, req.Confirmed, req.Notes)
	if err != nil {
		return engineError(c, log, err, "Failed to verify match")
	}

	prometheus.RecordMatchVerification(string(match.Status))
	return c.JSON(http.StatusOK, match)
}

// ClaimMatch handles the staff action finalizing a claim on a confirmed match
func ClaimMatch(c echo.Context) error {
	log := logger.FromContext(c)

	tenant, err := tenantID(c)
	if err != nil {
		return err
	}

	matchID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid match id"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	lost, found, err := svc.FinalizeClaim(c.Request().Context(), tenant, uint(matchID))
	if err != nil {
		return engineError(c, log, err, "Failed to finalize claim")
	}

	prometheus.ClaimsFinalizedCounter.Inc()
	return c.JSON(http.StatusOK, echo.Map{
		"lost_item":  lost,
		"found_item": found,
	})
}

// GuestConfirmMatch records the guest's advisory confirmation of a match
func GuestConfirmMatch(c echo.Context) error {
	log := logger.FromContext(c)

	tenant, err := tenantID(c)
	if err != nil {
		return err
	}

	matchID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid match id"})
	}

	match, err := svc.ConfirmByGuest(c.Request().Context(), tenant, uint(matchID))
	if err != nil {
		return engineError(c, log, err, "Failed to record guest confirmation")
	}

	return c.JSON(http.StatusOK, match)
}
