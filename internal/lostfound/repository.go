package lostfound

import (
	"context"
	"errors"
	"fmt"

	"lostfound-service/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchRepository persists match proposals. Pair uniqueness lives in the
// database (composite unique index), so concurrent upserts for the same pair
// converge to a single row without any application-level locking.
type MatchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a MatchRepository
func NewMatchRepository(db *gorm.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// Upsert inserts a proposal or, when the (tenant, lost, found) pair already
// exists, refreshes its score and reason only. The existing status is never
// touched: a rejected pair must not resurface as a fresh pending proposal.
func (r *MatchRepository) Upsert(ctx context.Context, m *model.Match) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "tenant_id"},
			{Name: "lost_item_id"},
			{Name: "found_item_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"match_score", "matching_reason", "updated_at"}),
	}).Create(m).Error
}

// Get loads a single match scoped to a tenant
func (r *MatchRepository) Get(ctx context.Context, tenantID, matchID uint) (*model.Match, error) {
	var m model.Match
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", matchID, tenantID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("match %d: %w", matchID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListForLostItem returns all proposals referencing a lost item, best first
func (r *MatchRepository) ListForLostItem(ctx context.Context, tenantID, lostItemID uint) ([]model.Match, error) {
	var matches []model.Match
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND lost_item_id = ?", tenantID, lostItemID).
		Order("match_score DESC, created_at DESC").
		Find(&matches).Error
	return matches, err
}

// ListForFoundItem returns all proposals referencing a found item, best first
func (r *MatchRepository) ListForFoundItem(ctx context.Context, tenantID, foundItemID uint) ([]model.Match, error) {
	var matches []model.Match
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND found_item_id = ?", tenantID, foundItemID).
		Order("match_score DESC, created_at DESC").
		Find(&matches).Error
	return matches, err
}

// ListPending returns all pending proposals for a tenant, best first
func (r *MatchRepository) ListPending(ctx context.Context, tenantID uint) ([]model.Match, error) {
	status := model.MatchPending
	return r.ListByStatus(ctx, tenantID, &status)
}

// ListByStatus returns a tenant's proposals, optionally filtered by status
func (r *MatchRepository) ListByStatus(ctx context.Context, tenantID uint, status *model.MatchStatus) ([]model.Match, error) {
	query := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var matches []model.Match
	err := query.Order("match_score DESC, created_at DESC").Find(&matches).Error
	return matches, err
}
