package repo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/DavidCraggs/PropertySwipe-sub001/internal/domain"
)

func newMatchRepoDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("match_repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA foreign_keys=ON;")
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := db.AutoMigrate(&domain.Match{}, &domain.Message{}, &domain.Rating{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func seedMatch(t *testing.T, db *gorm.DB, m domain.Match) {
	t.Helper()
	if m.TenancyStatus == "" {
		m.TenancyStatus = domain.TenancyStatusNone
	}
	if err := db.Create(&m).Error; err != nil {
		t.Fatalf("seed match %s: %v", m.ID, err)
	}
}

func TestCreateMatch_DefaultsAndSnapshotRoundTrip(t *testing.T) {
	db := newMatchRepoDB(t)

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	prop := &domain.Property{
		ID: "p1", LandlordID: "l1", AddressLine: "12 Harbour St", City: "Bristol",
		Rent: 1200, Bedrooms: 2, Available: true, AvailableFrom: &from,
		Images: []string{"a.jpg", "b.jpg"},
	}
	m, err := CreateMatch(context.Background(), db, &domain.Match{
		PropertyID:   "p1",
		LandlordID:   "l1",
		LandlordName: "Dev",
		RenterID:     "r1",
		RenterName:   "Amira",
		Property:     prop.Snapshot(),
		RenterProfile: &domain.RenterProfile{
			Role: domain.RoleRenter, Name: "Amira", IncomeBand: "2000_3000",
		},
		UnreadCount: 1,
	})
	if err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}
	if m.ID == "" || m.TenancyStatus != domain.TenancyStatusNone || m.LastMessageAt.IsZero() {
		t.Fatalf("defaults not applied: %+v", m)
	}

	var got domain.Match
	if err := db.First(&got, "id = ?", m.ID).Error; err != nil {
		t.Fatalf("readback: %v", err)
	}
	if got.Property.AddressLine != "12 Harbour St" || got.Property.Rent != 1200 || len(got.Property.Images) != 2 {
		t.Fatalf("snapshot not round-tripped: %+v", got.Property)
	}
	if got.RenterProfile == nil || got.RenterProfile.IncomeBand != "2000_3000" {
		t.Fatalf("renter profile not round-tripped: %+v", got.RenterProfile)
	}
	if got.UnreadCount != 1 {
		t.Fatalf("unread badge = %d; want 1", got.UnreadCount)
	}
}

func TestGetMatch_FoundAndNotFound(t *testing.T) {
	db := newMatchRepoDB(t)

	if _, err := GetMatch(context.Background(), db, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	seedMatch(t, db, domain.Match{ID: "mt1", PropertyID: "p1", LandlordID: "l1", RenterID: "r1"})
	got, err := GetMatch(context.Background(), db, "mt1")
	if err != nil {
		t.Fatalf("GetMatch: %v", err)
	}
	if got.RenterID != "r1" {
		t.Fatalf("unexpected match: %+v", got)
	}
}

func TestListMatches_RecencyOrderBothSides(t *testing.T) {
	db := newMatchRepoDB(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	seedMatch(t, db, domain.Match{ID: "quiet", PropertyID: "p1", LandlordID: "l1", RenterID: "r1", LastMessageAt: base.Add(-2 * time.Hour)})
	seedMatch(t, db, domain.Match{ID: "busy", PropertyID: "p2", LandlordID: "l1", RenterID: "r1", LastMessageAt: base})
	seedMatch(t, db, domain.Match{ID: "foreign", PropertyID: "p3", LandlordID: "l2", RenterID: "r2", LastMessageAt: base})

	forRenter, err := ListMatchesForRenter(context.Background(), db, "r1", 0, 50)
	if err != nil {
		t.Fatalf("ListMatchesForRenter: %v", err)
	}
	if len(forRenter) != 2 || forRenter[0].ID != "busy" || forRenter[1].ID != "quiet" {
		t.Fatalf("unexpected renter list: %+v", forRenter)
	}

	forLandlord, err := ListMatchesForLandlord(context.Background(), db, "l1", 0, 50)
	if err != nil {
		t.Fatalf("ListMatchesForLandlord: %v", err)
	}
	if len(forLandlord) != 2 || forLandlord[0].ID != "busy" {
		t.Fatalf("unexpected landlord list: %+v", forLandlord)
	}

	rc, err := CountMatchesForRenter(context.Background(), db, "r1")
	if err != nil || rc != 2 {
		t.Fatalf("CountMatchesForRenter = %d, %v; want 2, nil", rc, err)
	}
	lc, err := CountMatchesForLandlord(context.Background(), db, "l2")
	if err != nil || lc != 1 {
		t.Fatalf("CountMatchesForLandlord = %d, %v; want 1, nil", lc, err)
	}
}

func TestListMatchesByProperty(t *testing.T) {
	db := newMatchRepoDB(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	seedMatch(t, db, domain.Match{ID: "m2", PropertyID: "p1", LandlordID: "l1", RenterID: "r2", CreatedAt: base.Add(time.Hour)})
	seedMatch(t, db, domain.Match{ID: "m1", PropertyID: "p1", LandlordID: "l1", RenterID: "r1", CreatedAt: base})
	seedMatch(t, db, domain.Match{ID: "mx", PropertyID: "p2", LandlordID: "l1", RenterID: "r3", CreatedAt: base})

	got, err := ListMatchesByProperty(context.Background(), db, "p1")
	if err != nil {
		t.Fatalf("ListMatchesByProperty: %v", err)
	}
	if len(got) != 2 || got[0].ID != "m1" || got[1].ID != "m2" {
		t.Fatalf("unexpected set/order: %+v", got)
	}
}

func TestUpdateMatchFields_SuccessNotFoundAndEmpty(t *testing.T) {
	db := newMatchRepoDB(t)

	seedMatch(t, db, domain.Match{ID: "mt1", PropertyID: "p1", LandlordID: "l1", RenterID: "r1"})

	if err := UpdateMatchFields(context.Background(), db, "mt1", map[string]any{
		"unread_count":   3,
		"tenancy_status": domain.TenancyStatusActive,
		"can_rate":       true,
	}); err != nil {
		t.Fatalf("UpdateMatchFields: %v", err)
	}
	var got domain.Match
	if err := db.First(&got, "id = ?", "mt1").Error; err != nil {
		t.Fatalf("readback: %v", err)
	}
	if got.UnreadCount != 3 || got.TenancyStatus != domain.TenancyStatusActive || !got.CanRate {
		t.Fatalf("updates not applied: %+v", got)
	}

	if err := UpdateMatchFields(context.Background(), db, "missing", map[string]any{"unread_count": 1}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing match, got %v", err)
	}
	if err := UpdateMatchFields(context.Background(), db, "mt1", nil); err != nil {
		t.Fatalf("empty update should be a no-op, got %v", err)
	}
}

func TestDeleteMatch_CascadesThread(t *testing.T) {
	db := newMatchRepoDB(t)

	seedMatch(t, db, domain.Match{ID: "mt1", PropertyID: "p1", LandlordID: "l1", RenterID: "r1"})
	if err := db.Create(&domain.Message{ID: "m1", MatchID: "mt1", Seq: 1, SenderID: "l1", SenderRole: domain.SenderLandlord, Content: "x"}).Error; err != nil {
		t.Fatalf("seed message: %v", err)
	}
	if err := db.Create(&domain.Rating{ID: "rt1", MatchID: "mt1", RaterID: "r1", RaterRole: domain.SenderRenter, Stars: 4}).Error; err != nil {
		t.Fatalf("seed rating: %v", err)
	}

	if err := DeleteMatch(context.Background(), db, "mt1"); err != nil {
		t.Fatalf("DeleteMatch: %v", err)
	}
	var cnt int64
	if err := db.Model(&domain.Message{}).Where("match_id = ?", "mt1").Count(&cnt).Error; err != nil || cnt != 0 {
		t.Fatalf("messages not cascaded: cnt=%d err=%v", cnt, err)
	}
	if err := db.Model(&domain.Rating{}).Where("match_id = ?", "mt1").Count(&cnt).Error; err != nil || cnt != 0 {
		t.Fatalf("ratings not cascaded: cnt=%d err=%v", cnt, err)
	}

	if err := DeleteMatch(context.Background(), db, "mt1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestSumUnreadForRenter(t *testing.T) {
	db := newMatchRepoDB(t)

	seedMatch(t, db, domain.Match{ID: "a", PropertyID: "p1", LandlordID: "l1", RenterID: "r1", UnreadCount: 2})
	seedMatch(t, db, domain.Match{ID: "b", PropertyID: "p2", LandlordID: "l1", RenterID: "r1", UnreadCount: 3})
	seedMatch(t, db, domain.Match{ID: "c", PropertyID: "p3", LandlordID: "l1", RenterID: "r2", UnreadCount: 7})

	total, err := SumUnreadForRenter(context.Background(), db, "r1")
	if err != nil {
		t.Fatalf("SumUnreadForRenter: %v", err)
	}
	if total != 5 {
		t.Fatalf("total = %d; want 5", total)
	}

	// No matches sums to zero, not NULL.
	total, err = SumUnreadForRenter(context.Background(), db, "r-none")
	if err != nil || total != 0 {
		t.Fatalf("empty sum = %d, %v; want 0, nil", total, err)
	}
}
