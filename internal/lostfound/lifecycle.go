package lostfound

import (
	"context"
	"errors"
	"fmt"

	"lostfound-service/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Verify resolves a pending match. Confirming it locks both linked items into
// the Matched state; rejecting it leaves the items untouched and eligible for
// other candidates. All effects run inside one transaction, and every status
// change is a guarded update whose affected-row count is checked, so a
// concurrent writer causes ErrConflict and a full rollback rather than a lost
// update or partial state.
func (s *Service) Verify(ctx context.Context, tenantID, matchID uint, verifiedBy uint, confirmed bool, notes string) (*model.Match, error) {
	var out model.Match

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.Match
		if err := tx.Where("id = ? AND tenant_id = ?", matchID, tenantID).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("match %d: %w", matchID, ErrNotFound)
			}
			return err
		}
		if m.Status != model.MatchPending {
			return fmt.Errorf("match %d is already %s: %w", matchID, m.Status, ErrConflict)
		}

		newStatus := model.MatchRejected
		if confirmed {
			newStatus = model.MatchConfirmed
		}

		now := s.now()
		res := tx.Model(&model.Match{}).
			Where("id = ? AND status = ?", m.ID, model.MatchPending).
			Updates(map[string]interface{}{
				"status":      newStatus,
				"verified_by": verifiedBy,
				"verified_at": now,
				"notes":       notes,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("match %d resolved concurrently: %w", matchID, ErrConflict)
		}

		if confirmed {
			res = tx.Model(&model.LostItem{}).
				Where("id = ? AND tenant_id = ? AND status = ?", m.LostItemID, tenantID, model.LostItemOpen).
				Update("status", model.LostItemMatched)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("lost item %d is no longer open: %w", m.LostItemID, ErrConflict)
			}

			res = tx.Model(&model.FoundItem{}).
				Where("id = ? AND tenant_id = ? AND status = ?", m.FoundItemID, tenantID, model.FoundItemInStorage).
				Update("status", model.FoundItemMatched)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("found item %d is no longer in storage: %w", m.FoundItemID, ErrConflict)
			}
		}

		return tx.Where("id = ?", m.ID).First(&out).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Match verified",
		zap.Uint("tenant_id", tenantID),
		zap.Uint("match_id", matchID),
		zap.String("status", string(out.Status)),
		zap.Uint("verified_by", verifiedBy))
	return &out, nil
}

// FinalizeClaim marks a confirmed match as claimed and both linked items as
// returned to the guest. Terminal for all three entities. This is always an
// explicit staff action; guest confirmation alone never triggers it.
func (s *Service) FinalizeClaim(ctx context.Context, tenantID, matchID uint) (*model.LostItem, *model.FoundItem, error) {
	var lost model.LostItem
	var found model.FoundItem

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.Match
		if err := tx.Where("id = ? AND tenant_id = ?", matchID, tenantID).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("match %d: %w", matchID, ErrNotFound)
			}
			return err
		}
		if m.Status != model.MatchConfirmed {
			return fmt.Errorf("match %d is %s, not confirmed: %w", matchID, m.Status, ErrConflict)
		}

		now := s.now()
		res := tx.Model(&model.Match{}).
			Where("id = ? AND status = ? AND claimed_at IS NULL", m.ID, model.MatchConfirmed).
			Update("claimed_at", now)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("match %d already claimed: %w", matchID, ErrConflict)
		}

		res = tx.Model(&model.LostItem{}).
			Where("id = ? AND tenant_id = ? AND status = ?", m.LostItemID, tenantID, model.LostItemMatched).
			Updates(map[string]interface{}{"status": model.LostItemClaimed, "claimed_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("lost item %d is not in matched state: %w", m.LostItemID, ErrConflict)
		}

		res = tx.Model(&model.FoundItem{}).
			Where("id = ? AND tenant_id = ? AND status = ?", m.FoundItemID, tenantID, model.FoundItemMatched).
			Updates(map[string]interface{}{"status": model.FoundItemClaimed, "claimed_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("found item %d is not in matched state: %w", m.FoundItemID, ErrConflict)
		}

		if err := tx.Where("id = ?", m.LostItemID).First(&lost).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", m.FoundItemID).First(&found).Error
	})
	if err != nil {
		return nil, nil, err
	}

	s.log.Info("Claim finalized",
		zap.Uint("tenant_id", tenantID),
		zap.Uint("match_id", matchID),
		zap.Uint("lost_item_id", lost.ID),
		zap.Uint("found_item_id", found.ID))
	return &lost, &found, nil
}

// ConfirmByGuest records the guest's confirmation of a match as advisory
// evidence for staff. It never changes the match status.
func (s *Service) ConfirmByGuest(ctx context.Context, tenantID, matchID uint) (*model.Match, error) {
	m, err := s.matches.Get(ctx, tenantID, matchID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	res := s.db.WithContext(ctx).Model(&model.Match{}).
		Where("id = ?", m.ID).
		Updates(map[string]interface{}{"guest_confirmed": true, "guest_confirmed_at": now})
	if res.Error != nil {
		return nil, res.Error
	}

	m.GuestConfirmed = true
	m.GuestConfirmedAt = &now

	s.log.Info("Guest confirmed match",
		zap.Uint("tenant_id", tenantID), zap.Uint("match_id", matchID))
	return m, nil
}
