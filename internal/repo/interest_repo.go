// Package repo persists the domain model through GORM. This file holds the
// Interest queries.
//
// The repository follows a "thin" approach: it performs persistence and simple
// query composition, leaving business rules (one-per-pair absorption, expiry
// semantics, ownership checks) to the services package.
//
// Error semantics:
//   - When an interest is not found, functions return gorm.ErrRecordNotFound
//     (aliased as ErrNotFound).
//   - Guarded status transitions report a stale/missing row via ErrNotFound
//     when zero rows are affected.
//   - On other DB errors (connectivity, constraints, etc.), the raw gorm
//     error is propagated.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DavidCraggs/PropertySwipe-sub001/internal/domain"
)

// CreateInterest inserts a new Interest row. A missing ID is filled with a
// randomly generated UUID, and CreatedAt is set to UTC. ExpiresAt must
// already be stamped by the caller (CreatedAt + TTL).
func CreateInterest(ctx context.Context, db *gorm.DB, i *domain.Interest) (*domain.Interest, error) {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.CreatedAt.IsZero() {
		i.CreatedAt = time.Now().UTC()
	}
	if i.Status == "" {
		i.Status = domain.InterestStatusPending
	}
	if err := db.WithContext(ctx).Create(i).Error; err != nil {
		return nil, err
	}
	return i, nil
}

// GetInterest fetches a single interest by its ID, or ErrNotFound if missing.
func GetInterest(ctx context.Context, db *gorm.DB, id string) (*domain.Interest, error) {
	var i domain.Interest
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&i).Error
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// FindBlockingInterest returns the live interest occupying the
// (renter, property) pair, if any: a terminal review outcome, or a pending
// row whose TTL has not elapsed at now. Expired and orphaned rows do not
// block, so a renter can express interest again once a previous one ages
// out. Returns ErrNotFound when the pair is free.
func FindBlockingInterest(ctx context.Context, db *gorm.DB, renterID, propertyID string, now time.Time) (*domain.Interest, error) {
	var i domain.Interest
	err := db.WithContext(ctx).
		Where("renter_id = ? AND property_id = ? AND orphaned = ?", renterID, propertyID, false).
		Where("status IN ? OR (status = ? AND expires_at > ?)",
			[]domain.InterestStatus{domain.InterestStatusLiked, domain.InterestStatusPassed},
			domain.InterestStatusPending, now).
		Order("created_at desc").
		First(&i).Error
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// ListPendingForLandlord returns the landlord's review queue: live pending
// interests across all their properties, oldest first so nobody waits
// forever. Rows past their TTL are excluded even before the sweeper flips
// their status.
func ListPendingForLandlord(ctx context.Context, db *gorm.DB, landlordID string, now time.Time, offset, limit int) ([]domain.Interest, error) {
	var out []domain.Interest
	err := db.WithContext(ctx).
		Where("landlord_id = ? AND status = ? AND orphaned = ? AND expires_at > ?",
			landlordID, domain.InterestStatusPending, false, now).
		Order("created_at asc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CountPendingForLandlord returns the size of the landlord's review queue,
// applying the same liveness filter as ListPendingForLandlord.
func CountPendingForLandlord(ctx context.Context, db *gorm.DB, landlordID string, now time.Time) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Interest{}).
		Where("landlord_id = ? AND status = ? AND orphaned = ? AND expires_at > ?",
			landlordID, domain.InterestStatusPending, false, now).
		Count(&total).Error
	return total, err
}

// TransitionInterestStatus moves an interest from one status to another with
// an optimistic guard: the update only applies while the row still holds the
// expected current status. Zero affected rows (missing row or a concurrent
// transition won the race) is reported as ErrNotFound.
func TransitionInterestStatus(ctx context.Context, db *gorm.DB, id string, from, to domain.InterestStatus, reviewedAt *time.Time) error {
	updates := map[string]any{"status": to}
	if reviewedAt != nil {
		updates["reviewed_at"] = *reviewedAt
	}
	res := db.WithContext(ctx).
		Model(&domain.Interest{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkExpiredInterests flips every pending interest whose TTL elapsed at or
// before now to the expired status and returns how many rows changed. Used
// by the housekeeping sweep; read paths do not depend on it having run.
func MarkExpiredInterests(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	res := db.WithContext(ctx).
		Model(&domain.Interest{}).
		Where("status = ? AND expires_at <= ?", domain.InterestStatusPending, now).
		Update("status", domain.InterestStatusExpired)
	return res.RowsAffected, res.Error
}

// OrphanInterestsForProperty marks every interest referencing propertyID as
// orphaned, retaining the rows for history while making them inert. Returns
// the number of rows changed.
func OrphanInterestsForProperty(ctx context.Context, db *gorm.DB, propertyID string) (int64, error) {
	res := db.WithContext(ctx).
		Model(&domain.Interest{}).
		Where("property_id = ? AND orphaned = ?", propertyID, false).
		Update("orphaned", true)
	return res.RowsAffected, res.Error
}

// ListInterestsByProperty returns every live (non-orphaned) interest row for
// a property, used by the consistency cascade to rewrite denormalized fields.
func ListInterestsByProperty(ctx context.Context, db *gorm.DB, propertyID string) ([]domain.Interest, error) {
	var out []domain.Interest
	err := db.WithContext(ctx).
		Where("property_id = ? AND orphaned = ?", propertyID, false).
		Find(&out).Error
	return out, err
}

// UpdateInterestLandlord rewrites the denormalized landlord column on every
// live interest for a property (cascade step after link/unlink). Returns the
// number of rows changed.
func UpdateInterestLandlord(ctx context.Context, db *gorm.DB, propertyID, landlordID string) (int64, error) {
	res := db.WithContext(ctx).
		Model(&domain.Interest{}).
		Where("property_id = ? AND orphaned = ?", propertyID, false).
		Update("landlord_id", landlordID)
	return res.RowsAffected, res.Error
}

// IsDuplicateErr reports whether err looks like a unique-constraint
// violation from the underlying driver.
// glebarez/sqlite often returns plain-text errors for UNIQUE violations.
func IsDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint failed") ||
		strings.Contains(low, "constraint failed: unique") ||
		strings.Contains(low, "duplicate key value")
}
