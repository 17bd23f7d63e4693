// Package repo persists the domain model through GORM. This file holds the
// Match queries.
//
// Matches are created by the landlord-confirmation flow and removed only as
// a cascade of property deletion. Mutations here are column maps guarded by
// RowsAffected so services can distinguish "missing" from "changed".
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DavidCraggs/PropertySwipe-sub001/internal/domain"
)

// CreateMatch inserts a new Match row. A missing ID is filled with a
// randomly generated UUID, and CreatedAt/UpdatedAt are set to UTC.
func CreateMatch(ctx context.Context, db *gorm.DB, m *domain.Match) (*domain.Match, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	if m.LastMessageAt.IsZero() {
		m.LastMessageAt = now
	}
	if m.TenancyStatus == "" {
		m.TenancyStatus = domain.TenancyStatusNone
	}
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// GetMatch fetches a single match by its ID, or ErrNotFound if missing.
func GetMatch(ctx context.Context, db *gorm.DB, id string) (*domain.Match, error) {
	var m domain.Match
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListMatchesForRenter returns the renter's matches ordered by conversation
// recency (last_message_at descending), paginated.
func ListMatchesForRenter(ctx context.Context, db *gorm.DB, renterID string, offset, limit int) ([]domain.Match, error) {
	var out []domain.Match
	err := db.WithContext(ctx).
		Where("renter_id = ?", renterID).
		Order("last_message_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CountMatchesForRenter returns the renter's total match count.
func CountMatchesForRenter(ctx context.Context, db *gorm.DB, renterID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Match{}).
		Where("renter_id = ?", renterID).
		Count(&total).Error
	return total, err
}

// ListMatchesForLandlord returns the landlord's matches ordered by
// conversation recency (last_message_at descending), paginated.
func ListMatchesForLandlord(ctx context.Context, db *gorm.DB, landlordID string, offset, limit int) ([]domain.Match, error) {
	var out []domain.Match
	err := db.WithContext(ctx).
		Where("landlord_id = ?", landlordID).
		Order("last_message_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CountMatchesForLandlord returns the landlord's total match count.
func CountMatchesForLandlord(ctx context.Context, db *gorm.DB, landlordID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Match{}).
		Where("landlord_id = ?", landlordID).
		Count(&total).Error
	return total, err
}

// ListMatchesByProperty returns every match referencing propertyID. The
// consistency cascade iterates this set to rewrite or delete denormalized
// copies.
func ListMatchesByProperty(ctx context.Context, db *gorm.DB, propertyID string) ([]domain.Match, error) {
	var out []domain.Match
	err := db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("created_at asc").
		Find(&out).Error
	return out, err
}

// UpdateMatchFields applies a column map to the match identified by id.
// If no rows are affected, it returns ErrNotFound.
func UpdateMatchFields(ctx context.Context, db *gorm.DB, id string, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	res := db.WithContext(ctx).
		Model(&domain.Match{}).
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

// DeleteMatch hard-deletes a single match row; its messages and ratings go
// with it via FK cascade. If no rows are affected, it returns ErrNotFound.
func DeleteMatch(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Match{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SumUnreadForRenter returns the renter's aggregate unread badge across all
// matches. Uses a raw SUM so a missing table surfaces as an error.
func SumUnreadForRenter(ctx context.Context, db *gorm.DB, renterID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Raw("SELECT COALESCE(SUM(unread_count), 0) FROM matches WHERE renter_id = ?", renterID).
		Scan(&total).Error
	return total, err
}
