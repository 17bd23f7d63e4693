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

func newInterestRepoDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("interest_repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := db.AutoMigrate(&domain.Interest{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func seedInterest(t *testing.T, db *gorm.DB, i domain.Interest) {
	t.Helper()
	if i.CreatedAt.IsZero() {
		i.CreatedAt = time.Now().UTC().Add(-time.Hour)
	}
	if err := db.Create(&i).Error; err != nil {
		t.Fatalf("seed interest %s: %v", i.ID, err)
	}
}

func TestCreateInterest_DefaultsAndPersists(t *testing.T) {
	db := newInterestRepoDB(t)

	in := &domain.Interest{
		PropertyID: "p1",
		RenterID:   "r1",
		LandlordID: "l1",
		RenterName: "Amira",
		Score:      72,
		ExpiresAt:  time.Now().UTC().Add(720 * time.Hour),
		Profile:    &domain.RenterProfile{Role: domain.RoleRenter, Name: "Amira", Occupation: "nurse"},
	}
	got, err := CreateInterest(context.Background(), db, in)
	if err != nil {
		t.Fatalf("CreateInterest: %v", err)
	}
	if got.ID == "" {
		t.Fatalf("expected generated UUID, got empty ID")
	}
	if got.Status != domain.InterestStatusPending {
		t.Fatalf("expected default pending status, got %q", got.Status)
	}
	if got.CreatedAt.IsZero() {
		t.Fatalf("expected CreatedAt to be stamped")
	}

	var back domain.Interest
	if err := db.First(&back, "id = ?", got.ID).Error; err != nil {
		t.Fatalf("readback: %v", err)
	}
	if back.Profile == nil || back.Profile.Occupation != "nurse" {
		t.Fatalf("profile snapshot not round-tripped: %+v", back.Profile)
	}
}

func TestGetInterest_FoundAndNotFound(t *testing.T) {
	db := newInterestRepoDB(t)

	if _, err := GetInterest(context.Background(), db, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	seedInterest(t, db, domain.Interest{ID: "i1", PropertyID: "p1", RenterID: "r1", LandlordID: "l1", Status: domain.InterestStatusPending, ExpiresAt: time.Now().Add(time.Hour)})
	got, err := GetInterest(context.Background(), db, "i1")
	if err != nil {
		t.Fatalf("GetInterest: %v", err)
	}
	if got.RenterID != "r1" {
		t.Fatalf("unexpected interest: %+v", got)
	}
}

func TestFindBlockingInterest_Semantics(t *testing.T) {
	db := newInterestRepoDB(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		seed   domain.Interest
		blocks bool
	}{
		{"live pending blocks", domain.Interest{ID: "a", Status: domain.InterestStatusPending, ExpiresAt: now.Add(time.Hour)}, true},
		{"pending past TTL frees the pair", domain.Interest{ID: "b", Status: domain.InterestStatusPending, ExpiresAt: now.Add(-time.Minute)}, false},
		{"liked blocks forever", domain.Interest{ID: "c", Status: domain.InterestStatusLiked, ExpiresAt: now.Add(-time.Hour)}, true},
		{"passed blocks forever", domain.Interest{ID: "d", Status: domain.InterestStatusPassed, ExpiresAt: now.Add(-time.Hour)}, true},
		{"expired status frees the pair", domain.Interest{ID: "e", Status: domain.InterestStatusExpired, ExpiresAt: now.Add(-time.Hour)}, false},
		{"orphaned rows never block", domain.Interest{ID: "f", Status: domain.InterestStatusLiked, ExpiresAt: now.Add(time.Hour), Orphaned: true}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			i := c.seed
			i.PropertyID = "prop-" + i.ID
			i.RenterID = "r1"
			i.LandlordID = "l1"
			seedInterest(t, db, i)

			got, err := FindBlockingInterest(context.Background(), db, "r1", i.PropertyID, now)
			if c.blocks {
				if err != nil {
					t.Fatalf("expected blocking interest, got err=%v", err)
				}
				if got.ID != i.ID {
					t.Fatalf("wrong blocking row: %+v", got)
				}
				return
			}
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound (pair free), got %v", err)
			}
		})
	}
}

func TestListPendingForLandlord_OrderLivenessAndCount(t *testing.T) {
	db := newInterestRepoDB(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// Oldest first is the review-queue contract.
	seedInterest(t, db, domain.Interest{ID: "old", PropertyID: "p1", RenterID: "r1", LandlordID: "l1", Status: domain.InterestStatusPending, ExpiresAt: now.Add(time.Hour), CreatedAt: now.Add(-3 * time.Hour)})
	seedInterest(t, db, domain.Interest{ID: "new", PropertyID: "p2", RenterID: "r2", LandlordID: "l1", Status: domain.InterestStatusPending, ExpiresAt: now.Add(time.Hour), CreatedAt: now.Add(-1 * time.Hour)})
	// Excluded: past TTL, reviewed, orphaned, other landlord.
	seedInterest(t, db, domain.Interest{ID: "stale", PropertyID: "p3", RenterID: "r3", LandlordID: "l1", Status: domain.InterestStatusPending, ExpiresAt: now.Add(-time.Minute), CreatedAt: now.Add(-4 * time.Hour)})
	seedInterest(t, db, domain.Interest{ID: "done", PropertyID: "p4", RenterID: "r4", LandlordID: "l1", Status: domain.InterestStatusLiked, ExpiresAt: now.Add(time.Hour), CreatedAt: now.Add(-5 * time.Hour)})
	seedInterest(t, db, domain.Interest{ID: "orph", PropertyID: "p5", RenterID: "r5", LandlordID: "l1", Status: domain.InterestStatusPending, ExpiresAt: now.Add(time.Hour), Orphaned: true, CreatedAt: now.Add(-6 * time.Hour)})
	seedInterest(t, db, domain.Interest{ID: "other", PropertyID: "p6", RenterID: "r6", LandlordID: "l2", Status: domain.InterestStatusPending, ExpiresAt: now.Add(time.Hour), CreatedAt: now.Add(-7 * time.Hour)})

	list, err := ListPendingForLandlord(context.Background(), db, "l1", now, 0, 50)
	if err != nil {
		t.Fatalf("ListPendingForLandlord: %v", err)
	}
	if len(list) != 2 || list[0].ID != "old" || list[1].ID != "new" {
		t.Fatalf("unexpected queue: %+v", list)
	}

	total, err := CountPendingForLandlord(context.Background(), db, "l1", now)
	if err != nil {
		t.Fatalf("CountPendingForLandlord: %v", err)
	}
	if total != 2 {
		t.Fatalf("count = %d; want 2", total)
	}
}

func TestTransitionInterestStatus_OptimisticGuard(t *testing.T) {
	db := newInterestRepoDB(t)
	now := time.Now().UTC()

	seedInterest(t, db, domain.Interest{ID: "i1", PropertyID: "p1", RenterID: "r1", LandlordID: "l1", Status: domain.InterestStatusPending, ExpiresAt: now.Add(time.Hour)})

	reviewed := now.Truncate(time.Second)
	if err := TransitionInterestStatus(context.Background(), db, "i1", domain.InterestStatusPending, domain.InterestStatusLiked, &reviewed); err != nil {
		t.Fatalf("transition: %v", err)
	}
	var got domain.Interest
	if err := db.First(&got, "id = ?", "i1").Error; err != nil {
		t.Fatalf("readback: %v", err)
	}
	if got.Status != domain.InterestStatusLiked {
		t.Fatalf("status = %q; want landlord_liked", got.Status)
	}
	if got.ReviewedAt == nil {
		t.Fatalf("ReviewedAt not stamped")
	}

	// The row is no longer pending, so the same guarded transition loses.
	err := TransitionInterestStatus(context.Background(), db, "i1", domain.InterestStatusPending, domain.InterestStatusPassed, &reviewed)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on stale transition, got %v", err)
	}

	// Missing row behaves the same.
	err = TransitionInterestStatus(context.Background(), db, "missing", domain.InterestStatusPending, domain.InterestStatusLiked, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on missing row, got %v", err)
	}
}

func TestMarkExpiredInterests_FlipsOnlyDuePending(t *testing.T) {
	db := newInterestRepoDB(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	seedInterest(t, db, domain.Interest{ID: "due1", PropertyID: "p1", RenterID: "r1", LandlordID: "l1", Status: domain.InterestStatusPending, ExpiresAt: now.Add(-time.Minute)})
	seedInterest(t, db, domain.Interest{ID: "due2", PropertyID: "p2", RenterID: "r2", LandlordID: "l1", Status: domain.InterestStatusPending, ExpiresAt: now})
	seedInterest(t, db, domain.Interest{ID: "live", PropertyID: "p3", RenterID: "r3", LandlordID: "l1", Status: domain.InterestStatusPending, ExpiresAt: now.Add(time.Hour)})
	seedInterest(t, db, domain.Interest{ID: "done", PropertyID: "p4", RenterID: "r4", LandlordID: "l1", Status: domain.InterestStatusPassed, ExpiresAt: now.Add(-time.Hour)})

	n, err := MarkExpiredInterests(context.Background(), db, now)
	if err != nil {
		t.Fatalf("MarkExpiredInterests: %v", err)
	}
	if n != 2 {
		t.Fatalf("flipped %d rows; want 2", n)
	}

	assertStatus := func(id string, want domain.InterestStatus) {
		t.Helper()
		var got domain.Interest
		if err := db.First(&got, "id = ?", id).Error; err != nil {
			t.Fatalf("readback %s: %v", id, err)
		}
		if got.Status != want {
			t.Fatalf("%s status = %q; want %q", id, got.Status, want)
		}
	}
	assertStatus("due1", domain.InterestStatusExpired)
	assertStatus("due2", domain.InterestStatusExpired)
	assertStatus("live", domain.InterestStatusPending)
	assertStatus("done", domain.InterestStatusPassed)

	// Second run is a no-op.
	n, err = MarkExpiredInterests(context.Background(), db, now)
	if err != nil || n != 0 {
		t.Fatalf("second sweep: n=%d err=%v; want 0,nil", n, err)
	}
}

func TestOrphanInterestsForProperty(t *testing.T) {
	db := newInterestRepoDB(t)
	now := time.Now().UTC()

	seedInterest(t, db, domain.Interest{ID: "i1", PropertyID: "p1", RenterID: "r1", LandlordID: "l1", Status: domain.InterestStatusPending, ExpiresAt: now.Add(time.Hour)})
	seedInterest(t, db, domain.Interest{ID: "i2", PropertyID: "p1", RenterID: "r2", LandlordID: "l1", Status: domain.InterestStatusLiked, ExpiresAt: now.Add(time.Hour)})
	seedInterest(t, db, domain.Interest{ID: "i3", PropertyID: "p2", RenterID: "r3", LandlordID: "l1", Status: domain.InterestStatusPending, ExpiresAt: now.Add(time.Hour)})

	n, err := OrphanInterestsForProperty(context.Background(), db, "p1")
	if err != nil {
		t.Fatalf("OrphanInterestsForProperty: %v", err)
	}
	if n != 2 {
		t.Fatalf("orphaned %d rows; want 2", n)
	}

	var other domain.Interest
	if err := db.First(&other, "id = ?", "i3").Error; err != nil {
		t.Fatalf("readback i3: %v", err)
	}
	if other.Orphaned {
		t.Fatalf("interest on another property must not be orphaned")
	}
}

func TestUpdateInterestLandlord_SkipsOrphaned(t *testing.T) {
	db := newInterestRepoDB(t)
	now := time.Now().UTC()

	seedInterest(t, db, domain.Interest{ID: "i1", PropertyID: "p1", RenterID: "r1", LandlordID: "old", Status: domain.InterestStatusPending, ExpiresAt: now.Add(time.Hour)})
	seedInterest(t, db, domain.Interest{ID: "i2", PropertyID: "p1", RenterID: "r2", LandlordID: "old", Status: domain.InterestStatusPending, ExpiresAt: now.Add(time.Hour), Orphaned: true})

	n, err := UpdateInterestLandlord(context.Background(), db, "p1", "new")
	if err != nil {
		t.Fatalf("UpdateInterestLandlord: %v", err)
	}
	if n != 1 {
		t.Fatalf("updated %d rows; want 1", n)
	}
	var kept domain.Interest
	if err := db.First(&kept, "id = ?", "i2").Error; err != nil {
		t.Fatalf("readback i2: %v", err)
	}
	if kept.LandlordID != "old" {
		t.Fatalf("orphaned row must keep its historical landlord, got %q", kept.LandlordID)
	}
}

func TestIsDuplicateErr(t *testing.T) {
	if IsDuplicateErr(nil) {
		t.Fatalf("nil is not a duplicate error")
	}
	if !IsDuplicateErr(gorm.ErrDuplicatedKey) {
		t.Fatalf("gorm.ErrDuplicatedKey must be detected")
	}
	if !IsDuplicateErr(errors.New("UNIQUE constraint failed: interests.id")) {
		t.Fatalf("sqlite text form must be detected")
	}
	if !IsDuplicateErr(errors.New("ERROR: duplicate key value violates unique constraint")) {
		t.Fatalf("postgres text form must be detected")
	}
	if IsDuplicateErr(errors.New("disk I/O error")) {
		t.Fatalf("unrelated error detected as duplicate")
	}
}
