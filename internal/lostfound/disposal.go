package lostfound

import (
	"context"
	"fmt"

	"lostfound-service/internal/model"

	"go.uber.org/zap"
)

// SweepDisposals promotes found items past their retention deadline to
// Disposed. Items with a confirmed match are never disposed, regardless of
// date. Each item's transition is independent: a failure on one row is logged
// and counted but does not abort the sweep. Returns the number of items
// disposed and the first per-item error, if any.
func (s *Service) SweepDisposals(ctx context.Context) (int, error) {
	now := s.now()

	var due []model.FoundItem
	err := s.db.WithContext(ctx).
		Where("status = ? AND disposal_date <= ?", model.FoundItemInStorage, now).
		Where("NOT EXISTS (SELECT 1 FROM lost_found_matches m WHERE m.found_item_id = found_items.id AND m.status = ?)",
			model.MatchConfirmed).
		Find(&due).Error
	if err != nil {
		return 0, err
	}

	disposed := 0
	var firstErr error
	for i := range due {
		item := &due[i]

		// Guarded per-item update; the item may have been matched or claimed
		// since the query ran.
		res := s.db.WithContext(ctx).Model(&model.FoundItem{}).
			Where("id = ? AND status = ?", item.ID, model.FoundItemInStorage).
			Update("status", model.FoundItemDisposed)
		if res.Error != nil {
			s.log.Error("Disposal transition failed",
				zap.Uint("found_item_id", item.ID), zap.Error(res.Error))
			if firstErr == nil {
				firstErr = res.Error
			}
			continue
		}
		if res.RowsAffected == 0 {
			continue
		}

		disposed++
		s.log.Info("Found item disposed",
			zap.Uint("tenant_id", item.TenantID),
			zap.Uint("found_item_id", item.ID),
			zap.String("item_name", item.ItemName),
			zap.Time("disposal_date", item.DisposalDate))
	}

	return disposed, firstErr
}

// DisposeFoundItem disposes one item manually (staff action), recording the
// reason in its storage notes. Only items still in storage can be disposed.
func (s *Service) DisposeFoundItem(ctx context.Context, tenantID, foundItemID uint, reason string) error {
	item, err := s.GetFoundItem(ctx, tenantID, foundItemID)
	if err != nil {
		return err
	}

	notes := item.StorageNotes
	if reason != "" {
		if notes != "" {
			notes += "; "
		}
		notes += "disposed: " + reason
	}

	res := s.db.WithContext(ctx).Model(&model.FoundItem{}).
		Where("id = ? AND tenant_id = ? AND status = ?", foundItemID, tenantID, model.FoundItemInStorage).
		Updates(map[string]interface{}{
			"status":        model.FoundItemDisposed,
			"disposal_date": s.now(),
			"storage_notes": notes,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("found item %d is not in storage: %w", foundItemID, ErrConflict)
	}

	s.log.Info("Found item disposed manually",
		zap.Uint("tenant_id", tenantID),
		zap.Uint("found_item_id", foundItemID),
		zap.String("reason", reason))
	return nil
}

// UrgentFoundItems lists items in storage whose disposal deadline falls within
// the urgency window. Read-only reporting classification, not a stored state.
func (s *Service) UrgentFoundItems(ctx context.Context, tenantID uint) ([]model.FoundItem, error) {
	var items []model.FoundItem
	err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ? AND disposal_date <= ?",
			tenantID, model.FoundItemInStorage, s.now().Add(s.cfg.UrgentDisposalWindow)).
		Order("disposal_date ASC").
		Find(&items).Error
	return items, err
}
