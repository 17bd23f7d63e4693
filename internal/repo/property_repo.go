// Package repo persists the domain model through GORM. This file holds the
// Property queries.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a property is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
//
// Functions:
//
//   - CreateProperty(ctx, db, p) -> *domain.Property, error
//     Inserts a new Property row with UUID primary key and UTC timestamp.
//
//   - GetProperty(ctx, db, id) -> *domain.Property, error
//     Fetches a single property by ID, or ErrNotFound if missing.
//
//   - ListAvailableProperties(ctx, db, renterID, now, offset, limit) -> []domain.Property, error
//     Returns the renter's browse feed: claimed, available listings the
//     renter has not already acted on, newest first.
//
//   - CountAvailableProperties(ctx, db, renterID, now) -> (int64, error)
//     Returns the total size of the renter's browse feed.
//
//   - ListPropertiesByLandlord(ctx, db, landlordID, offset, limit) -> []domain.Property, error
//     Returns a paginated slice of a landlord's portfolio.
//
//   - CountPropertiesByLandlord(ctx, db, landlordID) -> (int64, error)
//     Returns the portfolio size for pagination metadata.
//
//   - UpdatePropertyFields(ctx, db, id, updates) -> error
//     Applies a whitelisted column map to a property.
//     Returns ErrNotFound if the property does not exist.
//
//   - SetPropertyLandlord(ctx, db, id, landlordID) -> error
//     Rewrites the ownership column (link/unlink); guards live in the service.
//
//   - DeleteProperty(ctx, db, id) -> error
//     Hard-deletes a property row. Returns ErrNotFound if missing.
//
// This repository is designed to be wrapped by a higher-level service
// (see services.RegistryService) which enforces ownership rules and runs
// the consistency cascade over denormalized copies.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DavidCraggs/PropertySwipe-sub001/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateProperty inserts a new Property row. A missing ID is filled with a
// randomly generated UUID (string), and CreatedAt is set to UTC.
//
// On success, it returns the persisted Property. On failure, it returns a DB error.
func CreateProperty(ctx context.Context, db *gorm.DB, p *domain.Property) (*domain.Property, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// GetProperty fetches a single property by its ID. If the record does not
// exist, it returns ErrNotFound. On other DB errors, the raw error is returned.
func GetProperty(ctx context.Context, db *gorm.DB, id string) (*domain.Property, error) {
	var p domain.Property
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// actedOnSubquery selects the property IDs the renter has already acted on:
// any live (non-orphaned) interest that is terminal, or still pending and not
// yet past its TTL. Expired interests free the pair again, so they are not
// part of the exclusion.
func actedOnSubquery(db *gorm.DB, renterID string, now time.Time) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Model(&domain.Interest{}).
		Select("property_id").
		Where("renter_id = ? AND orphaned = ?", renterID, false).
		Where("status IN ? OR (status = ? AND expires_at > ?)",
			[]domain.InterestStatus{domain.InterestStatusLiked, domain.InterestStatusPassed},
			domain.InterestStatusPending, now)
}

// ListAvailableProperties returns the renter's browse feed: claimed,
// available listings the renter has not already acted on, ordered by
// creation time descending (newest first). Unclaimed listings are excluded
// because there is no counterparty to match with. On DB error, it returns
// the error.
func ListAvailableProperties(ctx context.Context, db *gorm.DB, renterID string, now time.Time, offset, limit int) ([]domain.Property, error) {
	var out []domain.Property
	q := db.WithContext(ctx).
		Where("available = ? AND landlord_id <> ''", true)
	if renterID != "" {
		q = q.Where("id NOT IN (?)", actedOnSubquery(db, renterID, now))
	}
	err := q.
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CountAvailableProperties returns the total size of the renter's browse
// feed (see ListAvailableProperties for the exclusion rules).
func CountAvailableProperties(ctx context.Context, db *gorm.DB, renterID string, now time.Time) (int64, error) {
	var total int64
	q := db.WithContext(ctx).
		Model(&domain.Property{}).
		Where("available = ? AND landlord_id <> ''", true)
	if renterID != "" {
		q = q.Where("id NOT IN (?)", actedOnSubquery(db, renterID, now))
	}
	err := q.Count(&total).Error
	return total, err
}

// ListPropertiesByLandlord returns a paginated slice of the landlord's
// portfolio, ordered by creation time descending. Use
// CountPropertiesByLandlord to obtain the total for pagination metadata.
//
// The caller is responsible for computing offset and limit (e.g., (page-1)*pageSize).
func ListPropertiesByLandlord(ctx context.Context, db *gorm.DB, landlordID string, offset, limit int) ([]domain.Property, error) {
	var out []domain.Property
	err := db.WithContext(ctx).
		Where("landlord_id = ?", landlordID).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CountPropertiesByLandlord returns the total number of properties linked to
// landlordID. On DB error, it returns the error.
func CountPropertiesByLandlord(ctx context.Context, db *gorm.DB, landlordID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Property{}).
		Where("landlord_id = ?", landlordID).
		Count(&total).Error
	return total, err
}

// UpdatePropertyFields applies a column map to the property identified by id.
// The caller (service layer) is responsible for whitelisting columns; this
// function never touches ownership. If no rows are affected, it returns
// ErrNotFound. On DB error, the raw error is returned.
func UpdatePropertyFields(ctx context.Context, db *gorm.DB, id string, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	res := db.WithContext(ctx).
		Model(&domain.Property{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetPropertyLandlord rewrites the ownership column for the property
// identified by id. An empty landlordID unlinks the property. If no rows are
// affected, it returns ErrNotFound.
func SetPropertyLandlord(ctx context.Context, db *gorm.DB, id, landlordID string) error {
	res := db.WithContext(ctx).
		Model(&domain.Property{}).
		Where("id = ?", id).
		Update("landlord_id", landlordID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteProperty hard-deletes the property identified by id. If no rows are
// affected, it returns ErrNotFound. Dependent matches and interests are the
// service layer's responsibility (see the consistency cascade).
func DeleteProperty(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Property{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
