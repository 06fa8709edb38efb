package lostfound

import (
	"testing"
	"time"

	"lostfound-service/internal/model"
	"lostfound-service/pkg/config"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testClock is a fixed reference instant used across the engine tests
var testClock = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// newTestService builds the engine over an in-memory sqlite database with a
// frozen clock
func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.LostItem{}, &model.FoundItem{}, &model.Match{}))

	svc := NewService(db, zap.NewNop(), config.LostFoundConfig{
		MinMatchScore:        40,
		CandidatePoolLimit:   200,
		DefaultDisposalDays:  90,
		DisposalSweepEvery:   time.Hour,
		UrgentDisposalWindow: 7 * 24 * time.Hour,
	})
	svc.now = func() time.Time { return testClock }
	return svc
}

func seedLostItem(t *testing.T, s *Service, item model.LostItem) model.LostItem {
	t.Helper()
	if item.TenantID == 0 {
		item.TenantID = 1
	}
	if item.Status == "" {
		item.Status = model.LostItemOpen
	}
	if item.ReportedAt.IsZero() {
		item.ReportedAt = testClock.Add(-48 * time.Hour)
	}
	require.NoError(t, s.db.Create(&item).Error)
	return item
}

func seedFoundItem(t *testing.T, s *Service, item model.FoundItem) model.FoundItem {
	t.Helper()
	if item.TenantID == 0 {
		item.TenantID = 1
	}
	if item.Status == "" {
		item.Status = model.FoundItemInStorage
	}
	if item.FoundAt.IsZero() {
		item.FoundAt = testClock.Add(-24 * time.Hour)
	}
	if item.DisposalAfterDays == 0 {
		item.DisposalAfterDays = 90
	}
	if item.DisposalDate.IsZero() {
		item.DisposalDate = item.FoundAt.AddDate(0, 0, item.DisposalAfterDays)
	}
	require.NoError(t, s.db.Create(&item).Error)
	return item
}

func countMatches(t *testing.T, s *Service) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.db.Model(&model.Match{}).Count(&n).Error)
	return n
}

func reloadMatch(t *testing.T, s *Service, id uint) model.Match {
	t.Helper()
	var m model.Match
	require.NoError(t, s.db.First(&m, id).Error)
	return m
}

func reloadLostItem(t *testing.T, s *Service, id uint) model.LostItem {
	t.Helper()
	var item model.LostItem
	require.NoError(t, s.db.First(&item, id).Error)
	return item
}

func reloadFoundItem(t *testing.T, s *Service, id uint) model.FoundItem {
	t.Helper()
	var item model.FoundItem
	require.NoError(t, s.db.First(&item, id).Error)
	return item
}
