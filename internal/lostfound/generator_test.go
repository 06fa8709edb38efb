package lostfound

import (
	"context"
	"testing"
	"time"

	"lostfound-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateForFoundItem_CreatesPendingProposals(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	lost := seedLostItem(t, s, model.LostItem{
		ItemName: "iPhone 15", Category: "Electronics", Color: "Black", Brand: "Apple",
	})
	found := seedFoundItem(t, s, model.FoundItem{
		ItemName: "iPhone", Category: "Electronics", Color: "Black", Brand: "Apple",
		LocationFound: "Room 204",
	})

	proposals, err := s.GenerateForFoundItem(ctx, 1, found.ID)
	require.NoError(t, err)
	require.Len(t, proposals, 1)
	assert.Equal(t, lost.ID, proposals[0].LostItemID)
	assert.Equal(t, model.MatchPending, proposals[0].Status)
	assert.GreaterOrEqual(t, proposals[0].MatchScore, MinMatchScore)
	assert.NotEmpty(t, proposals[0].MatchingReason)
}

func TestGenerateForFoundItem_Idempotent(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	seedLostItem(t, s, model.LostItem{
		ItemName: "laptop", Category: "Electronics", Color: "Silver", Brand: "Dell",
	})
	found := seedFoundItem(t, s, model.FoundItem{
		ItemName: "laptop", Category: "Electronics", Color: "Silver", Brand: "Dell",
		LocationFound: "Conference room",
	})

	_, err := s.GenerateForFoundItem(ctx, 1, found.ID)
	require.NoError(t, err)
	_, err = s.GenerateForFoundItem(ctx, 1, found.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 1, countMatches(t, s), "re-running generation must not duplicate a pair")
}

func TestGenerateForFoundItem_RefreshNeverResurrectsRejected(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	seedLostItem(t, s, model.LostItem{
		ItemName: "sunglasses", Category: "Personal", Color: "Black", Brand: "RayBan",
	})
	found := seedFoundItem(t, s, model.FoundItem{
		ItemName: "sunglasses", Category: "Personal", Color: "Black", Brand: "RayBan",
		LocationFound: "Pool deck",
	})

	proposals, err := s.GenerateForFoundItem(ctx, 1, found.ID)
	require.NoError(t, err)
	require.Len(t, proposals, 1)

	stored := reloadMatch(t, s, 1)
	require.NoError(t, s.db.Model(&model.Match{}).Where("id = ?", stored.ID).
		Update("status", model.MatchRejected).Error)

	_, err = s.GenerateForFoundItem(ctx, 1, found.ID)
	require.NoError(t, err)

	refreshed := reloadMatch(t, s, stored.ID)
	assert.Equal(t, model.MatchRejected, refreshed.Status, "refresh must not change status")
	assert.EqualValues(t, 1, countMatches(t, s))
}

func TestGenerateForFoundItem_FiltersBelowThreshold(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	seedLostItem(t, s, model.LostItem{
		ItemName: "diamond necklace", Category: "Jewelry", Color: "Silver",
	})
	found := seedFoundItem(t, s, model.FoundItem{
		ItemName: "phone charger", Category: "Electronics", Color: "White",
		LocationFound: "Gym",
	})

	proposals, err := s.GenerateForFoundItem(ctx, 1, found.ID)
	require.NoError(t, err)
	assert.Empty(t, proposals)
	assert.EqualValues(t, 0, countMatches(t, s))
}

func TestGenerateForFoundItem_IgnoresOtherTenantsAndNonOpenItems(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	// Same attributes, but wrong tenant or wrong status
	seedLostItem(t, s, model.LostItem{
		TenantID: 2, ItemName: "umbrella", Category: "Personal", Color: "Red",
	})
	seedLostItem(t, s, model.LostItem{
		ItemName: "umbrella", Category: "Personal", Color: "Red",
		Status: model.LostItemClosed,
	})
	found := seedFoundItem(t, s, model.FoundItem{
		ItemName: "umbrella", Category: "Personal", Color: "Red",
		LocationFound: "Entrance",
	})

	proposals, err := s.GenerateForFoundItem(ctx, 1, found.ID)
	require.NoError(t, err)
	assert.Empty(t, proposals)
}

func TestGenerateForFoundItem_NotFound(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, err := s.GenerateForFoundItem(ctx, 1, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	// Item exists but belongs to another tenant
	found := seedFoundItem(t, s, model.FoundItem{
		TenantID: 2, ItemName: "keys", LocationFound: "Bar",
	})
	_, err = s.GenerateForFoundItem(ctx, 1, found.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGenerateForLostItem_RanksByScoreThenRecency(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	lost := seedLostItem(t, s, model.LostItem{
		ItemName: "black iPhone", Category: "Electronics", Color: "Black", Brand: "Apple",
	})

	// Strong candidate: everything matches
	strong := seedFoundItem(t, s, model.FoundItem{
		ItemName: "black iPhone", Category: "Electronics", Color: "Black", Brand: "Apple",
		LocationFound: "Restaurant",
	})
	// Weaker candidate: category and color only
	weak := seedFoundItem(t, s, model.FoundItem{
		ItemName: "tablet", Category: "Electronics", Color: "Black",
		LocationFound: "Lobby",
	})
	// Equal-score twin of strong, found more recently
	recent := seedFoundItem(t, s, model.FoundItem{
		ItemName: "black iPhone", Category: "Electronics", Color: "Black", Brand: "Apple",
		LocationFound: "Restaurant", FoundAt: testClock.Add(-1 * time.Hour),
	})

	proposals, err := s.GenerateForLostItem(ctx, 1, lost.ID)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(proposals), 2)

	assert.Equal(t, recent.ID, proposals[0].FoundItemID, "ties break toward the most recent counterpart")
	assert.Equal(t, strong.ID, proposals[1].FoundItemID)
	if len(proposals) > 2 {
		assert.Equal(t, weak.ID, proposals[2].FoundItemID)
	}
	for i := 1; i < len(proposals); i++ {
		assert.LessOrEqual(t, proposals[i].MatchScore, proposals[i-1].MatchScore)
	}
}

func TestGenerateForLostItem_NotFound(t *testing.T) {
	s := newTestService(t)

	_, err := s.GenerateForLostItem(context.Background(), 1, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}
