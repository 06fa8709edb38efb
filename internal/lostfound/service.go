package lostfound

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"lostfound-service/internal/model"
	"lostfound-service/pkg/config"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service is the lost & found engine facade. It owns candidate generation,
// the match repository and the cross-entity lifecycle; the surrounding CRUD
// layer talks to it through these methods only.
type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	cfg     config.LostFoundConfig
	matches *MatchRepository
	now     func() time.Time
}

// NewService creates the engine with its persistence handle and policy config
func NewService(db *gorm.DB, log *zap.Logger, cfg config.LostFoundConfig) *Service {
	return &Service{
		db:      db,
		log:     log,
		cfg:     cfg,
		matches: NewMatchRepository(db),
		now:     time.Now,
	}
}

// Matches exposes the match repository for read paths
func (s *Service) Matches() *MatchRepository {
	return s.matches
}

// ReportLostItem stores a guest's lost item report and immediately generates
// match candidates against the tenant's items in storage
func (s *Service) ReportLostItem(ctx context.Context, item *model.LostItem) (*model.LostItem, error) {
	if item.TenantID == 0 || item.ItemName == "" {
		return nil, fmt.Errorf("tenant_id and item_name are required: %w", ErrInvalidInput)
	}

	item.Status = model.LostItemOpen
	if item.ReportedAt.IsZero() {
		item.ReportedAt = s.now()
	}

	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}

	s.log.Info("Lost item reported",
		zap.Uint("tenant_id", item.TenantID),
		zap.Uint("lost_item_id", item.ID),
		zap.String("item_name", item.ItemName),
		zap.String("category", item.Category))

	if _, err := s.GenerateForLostItem(ctx, item.TenantID, item.ID); err != nil {
		// The report itself is persisted; candidate generation can be retried
		// on demand via FindMatches.
		s.log.Error("Candidate generation failed after lost item report",
			zap.Uint("lost_item_id", item.ID), zap.Error(err))
	}

	return item, nil
}

// RegisterFoundItem stores a staff-registered found item, computes its
// disposal deadline and immediately generates match candidates against the
// tenant's open lost item reports
func (s *Service) RegisterFoundItem(ctx context.Context, item *model.FoundItem) (*model.FoundItem, error) {
	if item.TenantID == 0 || item.ItemName == "" || item.LocationFound == "" {
		return nil, fmt.Errorf("tenant_id, item_name and location_found are required: %w", ErrInvalidInput)
	}

	item.Status = model.FoundItemInStorage
	if item.FoundAt.IsZero() {
		item.FoundAt = s.now()
	}
	if item.DisposalAfterDays <= 0 {
		item.DisposalAfterDays = s.cfg.DefaultDisposalDays
	}
	item.DisposalDate = item.FoundAt.AddDate(0, 0, item.DisposalAfterDays)

	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}

	s.log.Info("Found item registered",
		zap.Uint("tenant_id", item.TenantID),
		zap.Uint("found_item_id", item.ID),
		zap.String("item_name", item.ItemName),
		zap.String("location_found", item.LocationFound),
		zap.Time("disposal_date", item.DisposalDate))

	if _, err := s.GenerateForFoundItem(ctx, item.TenantID, item.ID); err != nil {
		s.log.Error("Candidate generation failed after found item registration",
			zap.Uint("found_item_id", item.ID), zap.Error(err))
	}

	return item, nil
}

// FindMatches re-runs candidate generation for one side of a pairing and
// returns all stored proposals for that item. Exactly one of lostItemID and
// foundItemID must be set.
func (s *Service) FindMatches(ctx context.Context, tenantID uint, lostItemID, foundItemID *uint) ([]model.Match, error) {
	switch {
	case lostItemID != nil && foundItemID == nil:
		if _, err := s.GenerateForLostItem(ctx, tenantID, *lostItemID); err != nil {
			return nil, err
		}
		return s.matches.ListForLostItem(ctx, tenantID, *lostItemID)
	case foundItemID != nil && lostItemID == nil:
		if _, err := s.GenerateForFoundItem(ctx, tenantID, *foundItemID); err != nil {
			return nil, err
		}
		return s.matches.ListForFoundItem(ctx, tenantID, *foundItemID)
	default:
		return nil, fmt.Errorf("exactly one of lost_item_id and found_item_id must be set: %w", ErrInvalidInput)
	}
}

// ListMatches returns a tenant's match proposals, optionally filtered by status
func (s *Service) ListMatches(ctx context.Context, tenantID uint, status *model.MatchStatus) ([]model.Match, error) {
	return s.matches.ListByStatus(ctx, tenantID, status)
}

// ListLostItems returns a tenant's lost items, newest report first
func (s *Service) ListLostItems(ctx context.Context, tenantID uint, status *model.LostItemStatus, reporterPhone string) ([]model.LostItem, error) {
	query := s.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if reporterPhone != "" {
		query = query.Where("reporter_phone = ?", reporterPhone)
	}

	var items []model.LostItem
	err := query.Order("reported_at DESC").Find(&items).Error
	return items, err
}

// ListFoundItems returns a tenant's found items, newest first
func (s *Service) ListFoundItems(ctx context.Context, tenantID uint, status *model.FoundItemStatus) ([]model.FoundItem, error) {
	query := s.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var items []model.FoundItem
	err := query.Order("found_at DESC").Find(&items).Error
	return items, err
}

// GetLostItem loads one lost item scoped to a tenant
func (s *Service) GetLostItem(ctx context.Context, tenantID, id uint) (*model.LostItem, error) {
	var item model.LostItem
	err := s.db.WithContext(ctx).Where("id = ? AND tenant_id = ?", id, tenantID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lost item %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetFoundItem loads one found item scoped to a tenant
func (s *Service) GetFoundItem(ctx context.Context, tenantID, id uint) (*model.FoundItem, error) {
	var item model.FoundItem
	err := s.db.WithContext(ctx).Where("id = ? AND tenant_id = ?", id, tenantID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("found item %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CloseLostItem closes an open report outside the matching flow (staff action).
// Only Open reports can be closed; anything already matched or claimed conflicts.
func (s *Service) CloseLostItem(ctx context.Context, tenantID, lostItemID uint, notes string) error {
	if _, err := s.GetLostItem(ctx, tenantID, lostItemID); err != nil {
		return err
	}

	res := s.db.WithContext(ctx).Model(&model.LostItem{}).
		Where("id = ? AND tenant_id = ? AND status = ?", lostItemID, tenantID, model.LostItemOpen).
		Updates(map[string]interface{}{"status": model.LostItemClosed, "notes": notes})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("lost item %d is not open: %w", lostItemID, ErrConflict)
	}

	s.log.Info("Lost item closed",
		zap.Uint("tenant_id", tenantID), zap.Uint("lost_item_id", lostItemID))
	return nil
}

// Stats summarizes a tenant's lost & found state for dashboards
type Stats struct {
	OpenReports      int64   `json:"openReports"`
	ItemsInStorage   int64   `json:"itemsInStorage"`
	PendingMatches   int64   `json:"pendingMatches"`
	UrgentItems      int64   `json:"urgentItems"`
	TotalLostItems   int64   `json:"totalLostItems"`
	TotalFoundItems  int64   `json:"totalFoundItems"`
	TotalMatched     int64   `json:"totalMatched"`
	TotalClaimed     int64   `json:"totalClaimed"`
	MatchSuccessRate float64 `json:"matchSuccessRate"`
}

// GetStats computes the dashboard statistics for a tenant
func (s *Service) GetStats(ctx context.Context, tenantID uint) (*Stats, error) {
	db := s.db.WithContext(ctx)
	var stats Stats

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.OpenReports, db.Model(&model.LostItem{}).
			Where("tenant_id = ? AND status = ?", tenantID, model.LostItemOpen)},
		{&stats.ItemsInStorage, db.Model(&model.FoundItem{}).
			Where("tenant_id = ? AND status = ?", tenantID, model.FoundItemInStorage)},
		{&stats.PendingMatches, db.Model(&model.Match{}).
			Where("tenant_id = ? AND status = ?", tenantID, model.MatchPending)},
		{&stats.UrgentItems, db.Model(&model.FoundItem{}).
			Where("tenant_id = ? AND status = ? AND disposal_date <= ?",
				tenantID, model.FoundItemInStorage, s.now().Add(s.cfg.UrgentDisposalWindow))},
		{&stats.TotalLostItems, db.Model(&model.LostItem{}).
			Where("tenant_id = ?", tenantID)},
		{&stats.TotalFoundItems, db.Model(&model.FoundItem{}).
			Where("tenant_id = ?", tenantID)},
		{&stats.TotalMatched, db.Model(&model.Match{}).
			Where("tenant_id = ? AND status = ?", tenantID, model.MatchConfirmed)},
		{&stats.TotalClaimed, db.Model(&model.LostItem{}).
			Where("tenant_id = ? AND status = ?", tenantID, model.LostItemClaimed)},
	}

	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	if stats.TotalLostItems > 0 {
		rate := float64(stats.TotalClaimed) / float64(stats.TotalLostItems) * 100
		stats.MatchSuccessRate = math.Round(rate*100) / 100
	}

	return &stats, nil
}
