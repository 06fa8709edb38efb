package lostfound

import (
	"context"
	"sort"
	"time"

	"lostfound-service/internal/model"

	"go.uber.org/zap"
)

// scoredCandidate pairs a proposal with its counterpart's timestamp so ties
// can be broken by counterpart recency
type scoredCandidate struct {
	match         model.Match
	counterpartAt time.Time
}

// GenerateForFoundItem scores a found item against the tenant's open lost item
// reports and upserts every candidate at or above the minimum score as a
// pending proposal. Running it again for the same item refreshes scores but
// never duplicates a pair and never changes an existing proposal's status.
func (s *Service) GenerateForFoundItem(ctx context.Context, tenantID, foundItemID uint) ([]model.Match, error) {
	found, err := s.GetFoundItem(ctx, tenantID, foundItemID)
	if err != nil {
		return nil, err
	}

	// Bounded most-recent pool keeps generation a single O(N) scan.
	var pool []model.LostItem
	if err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ?", tenantID, model.LostItemOpen).
		Order("reported_at DESC").
		Limit(s.cfg.CandidatePoolLimit).
		Find(&pool).Error; err != nil {
		return nil, err
	}

	candidates := make([]scoredCandidate, 0, len(pool))
	for i := range pool {
		score, reason := Score(&pool[i], found)
		if score < s.minScore() {
			continue
		}
		candidates = append(candidates, scoredCandidate{
			match: model.Match{
				TenantID:       tenantID,
				LostItemID:     pool[i].ID,
				FoundItemID:    found.ID,
				MatchScore:     score,
				Status:         model.MatchPending,
				MatchingReason: reason,
			},
			counterpartAt: pool[i].ReportedAt,
		})
	}

	proposals, err := s.persistCandidates(ctx, candidates)
	if err != nil {
		return nil, err
	}

	s.log.Info("Candidates generated for found item",
		zap.Uint("tenant_id", tenantID),
		zap.Uint("found_item_id", foundItemID),
		zap.Int("pool_size", len(pool)),
		zap.Int("candidates", len(proposals)))
	return proposals, nil
}

// GenerateForLostItem is the symmetric operation: it scores a lost item report
// against the tenant's found items still in storage
func (s *Service) GenerateForLostItem(ctx context.Context, tenantID, lostItemID uint) ([]model.Match, error) {
	lost, err := s.GetLostItem(ctx, tenantID, lostItemID)
	if err != nil {
		return nil, err
	}

	var pool []model.FoundItem
	if err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ?", tenantID, model.FoundItemInStorage).
		Order("found_at DESC").
		Limit(s.cfg.CandidatePoolLimit).
		Find(&pool).Error; err != nil {
		return nil, err
	}

	candidates := make([]scoredCandidate, 0, len(pool))
	for i := range pool {
		score, reason := Score(lost, &pool[i])
		if score < s.minScore() {
			continue
		}
		candidates = append(candidates, scoredCandidate{
			match: model.Match{
				TenantID:       tenantID,
				LostItemID:     lost.ID,
				FoundItemID:    pool[i].ID,
				MatchScore:     score,
				Status:         model.MatchPending,
				MatchingReason: reason,
			},
			counterpartAt: pool[i].FoundAt,
		})
	}

	proposals, err := s.persistCandidates(ctx, candidates)
	if err != nil {
		return nil, err
	}

	s.log.Info("Candidates generated for lost item",
		zap.Uint("tenant_id", tenantID),
		zap.Uint("lost_item_id", lostItemID),
		zap.Int("pool_size", len(pool)),
		zap.Int("candidates", len(proposals)))
	return proposals, nil
}

// persistCandidates ranks candidates (score descending, then most recent
// counterpart first) and upserts them through the match repository
func (s *Service) persistCandidates(ctx context.Context, candidates []scoredCandidate) ([]model.Match, error) {
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].match.MatchScore != candidates[j].match.MatchScore {
			return candidates[i].match.MatchScore > candidates[j].match.MatchScore
		}
		return candidates[i].counterpartAt.After(candidates[j].counterpartAt)
	})

	proposals := make([]model.Match, 0, len(candidates))
	for i := range candidates {
		m := candidates[i].match
		if err := s.matches.Upsert(ctx, &m); err != nil {
			return nil, err
		}
		proposals = append(proposals, m)
	}
	return proposals, nil
}

func (s *Service) minScore() int {
	if s.cfg.MinMatchScore > 0 {
		return s.cfg.MinMatchScore
	}
	return MinMatchScore
}
