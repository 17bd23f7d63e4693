// Package repo persists the domain model through GORM. This file holds the
// small aggregate queries behind conditional responses (ETag generation) in
// the HTTP layer.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/DavidCraggs/PropertySwipe-sub001/internal/domain"
)

// countAndLatest runs the two-step aggregate shared by every stats helper:
// a COUNT over the scoped query, then the newest value of tsColumn. The
// second step orders and limits rather than calling MAX(), which SQLite
// would hand back as TEXT. No rows yields (0, nil, nil). tsColumn is always
// a compile-time constant, never caller input.
func countAndLatest(q *gorm.DB, tsColumn string) (int64, *time.Time, error) {
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	var row struct{ TS time.Time }
	if err := q.Select(tsColumn + " AS ts").Order(tsColumn + " DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.TS, nil
}

// PropertiesStats reports how many listings a landlord owns and when the
// portfolio last changed. The HTTP layer folds both into the ETag for
// conditional portfolio GETs.
func PropertiesStats(ctx context.Context, db *gorm.DB, landlordID string) (int64, *time.Time, error) {
	q := db.WithContext(ctx).Model(&domain.Property{}).Where("landlord_id = ?", landlordID)
	return countAndLatest(q, "updated_at")
}

// InterestsStats summarises a landlord's live pending queue. Rows already
// expired by the clock are excluded, so the ETag moves exactly when the lazy
// sweep would change the visible queue.
func InterestsStats(ctx context.Context, db *gorm.DB, landlordID string, now time.Time) (int64, *time.Time, error) {
	q := db.WithContext(ctx).Model(&domain.Interest{}).
		Where("landlord_id = ?", landlordID).
		Where("status = ?", domain.InterestStatusPending).
		Where("orphaned = ?", false).
		Where("expires_at > ?", now)
	return countAndLatest(q, "updated_at")
}

// MatchesStats summarises one side's matches. The column argument picks the
// side and is forced onto the renter column unless it names a known one, so
// caller input never reaches the SQL.
func MatchesStats(ctx context.Context, db *gorm.DB, column, userID string) (int64, *time.Time, error) {
	if column != "renter_id" && column != "landlord_id" {
		column = "renter_id"
	}
	q := db.WithContext(ctx).Model(&domain.Match{}).Where(column+" = ?", userID)
	return countAndLatest(q, "updated_at")
}

// MessagesStats summarises one match thread. Messages are immutable, so
// CreatedAt is the freshness signal.
func MessagesStats(ctx context.Context, db *gorm.DB, matchID string) (int64, *time.Time, error) {
	q := db.WithContext(ctx).Model(&domain.Message{}).Where("match_id = ?", matchID)
	return countAndLatest(q, "created_at")
}
