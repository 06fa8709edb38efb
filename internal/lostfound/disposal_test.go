package lostfound

import (
	"context"
	"testing"

	"lostfound-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepDisposals_DisposesPastDeadline(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	overdue := seedFoundItem(t, s, model.FoundItem{
		ItemName: "umbrella", LocationFound: "Lobby",
		FoundAt:      testClock.AddDate(0, 0, -120),
		DisposalDate: testClock.AddDate(0, 0, -30),
	})
	fresh := seedFoundItem(t, s, model.FoundItem{
		ItemName: "sunglasses", LocationFound: "Pool",
		FoundAt:      testClock.AddDate(0, 0, -10),
		DisposalDate: testClock.AddDate(0, 0, 80),
	})

	disposed, err := s.SweepDisposals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, disposed)

	assert.Equal(t, model.FoundItemDisposed, reloadFoundItem(t, s, overdue.ID).Status)
	assert.Equal(t, model.FoundItemInStorage, reloadFoundItem(t, s, fresh.ID).Status)
}

func TestSweepDisposals_NeverDisposesConfirmedMatch(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	lost := seedLostItem(t, s, model.LostItem{ItemName: "coat"})
	protected := seedFoundItem(t, s, model.FoundItem{
		ItemName: "coat", LocationFound: "Bar",
		FoundAt:      testClock.AddDate(0, 0, -200),
		DisposalDate: testClock.AddDate(0, 0, -100),
	})
	require.NoError(t, s.db.Create(&model.Match{
		TenantID: 1, LostItemID: lost.ID, FoundItemID: protected.ID,
		MatchScore: 90, Status: model.MatchConfirmed,
	}).Error)

	disposed, err := s.SweepDisposals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, disposed)
	assert.Equal(t, model.FoundItemInStorage, reloadFoundItem(t, s, protected.ID).Status,
		"an item with a confirmed match is never disposed, regardless of date")
}

func TestSweepDisposals_PendingOrRejectedMatchDoesNotProtect(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	lost := seedLostItem(t, s, model.LostItem{ItemName: "hat"})
	item := seedFoundItem(t, s, model.FoundItem{
		ItemName: "hat", LocationFound: "Terrace",
		FoundAt:      testClock.AddDate(0, 0, -120),
		DisposalDate: testClock.AddDate(0, 0, -1),
	})
	require.NoError(t, s.db.Create(&model.Match{
		TenantID: 1, LostItemID: lost.ID, FoundItemID: item.ID,
		MatchScore: 50, Status: model.MatchRejected,
	}).Error)

	disposed, err := s.SweepDisposals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, disposed)
	assert.Equal(t, model.FoundItemDisposed, reloadFoundItem(t, s, item.ID).Status)
}

func TestSweepDisposals_SpansTenants(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	a := seedFoundItem(t, s, model.FoundItem{
		TenantID: 1, ItemName: "book", LocationFound: "Library",
		FoundAt: testClock.AddDate(0, 0, -100), DisposalDate: testClock.AddDate(0, 0, -5),
	})
	b := seedFoundItem(t, s, model.FoundItem{
		TenantID: 2, ItemName: "bottle", LocationFound: "Gym",
		FoundAt: testClock.AddDate(0, 0, -100), DisposalDate: testClock.AddDate(0, 0, -5),
	})

	disposed, err := s.SweepDisposals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, disposed)
	assert.Equal(t, model.FoundItemDisposed, reloadFoundItem(t, s, a.ID).Status)
	assert.Equal(t, model.FoundItemDisposed, reloadFoundItem(t, s, b.ID).Status)
}

func TestDisposeFoundItem_Manual(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	item := seedFoundItem(t, s, model.FoundItem{
		ItemName: "charger", LocationFound: "Room 110",
		StorageNotes: "shelf B",
	})

	require.NoError(t, s.DisposeFoundItem(ctx, 1, item.ID, "damaged beyond use"))

	stored := reloadFoundItem(t, s, item.ID)
	assert.Equal(t, model.FoundItemDisposed, stored.Status)
	assert.Contains(t, stored.StorageNotes, "damaged beyond use")
	assert.Contains(t, stored.StorageNotes, "shelf B")

	// Already disposed: conflict
	err := s.DisposeFoundItem(ctx, 1, item.ID, "again")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestDisposeFoundItem_NotFound(t *testing.T) {
	s := newTestService(t)

	err := s.DisposeFoundItem(context.Background(), 1, 999, "cleanup")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUrgentFoundItems_WindowClassification(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	urgent := seedFoundItem(t, s, model.FoundItem{
		ItemName: "ring", LocationFound: "Spa",
		FoundAt: testClock.AddDate(0, 0, -87), DisposalDate: testClock.AddDate(0, 0, 3),
	})
	seedFoundItem(t, s, model.FoundItem{
		ItemName: "jacket", LocationFound: "Lobby",
		FoundAt: testClock.AddDate(0, 0, -10), DisposalDate: testClock.AddDate(0, 0, 80),
	})
	seedFoundItem(t, s, model.FoundItem{
		ItemName: "wallet", LocationFound: "Bar",
		FoundAt: testClock.AddDate(0, 0, -89), DisposalDate: testClock.AddDate(0, 0, 1),
		Status: model.FoundItemClaimed,
	})

	items, err := s.UrgentFoundItems(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 1, "only in-storage items inside the window are urgent")
	assert.Equal(t, urgent.ID, items[0].ID)

	// Urgency is a read-only classification
	assert.Equal(t, model.FoundItemInStorage, reloadFoundItem(t, s, urgent.ID).Status)
}
