// Package repo persists the domain model through GORM. This file holds the
// Rating queries.
//
// The repository follows a "thin" approach: it performs persistence and simple
// query composition, leaving business rules to the services package.
//
// Error semantics:
//   - Duplicate ratings (same match_id,rater_role) rely on the database
//     unique constraint and are returned as a raw DB error. The service layer
//     translates that into a domain error (e.g., ErrAlreadyRated) via
//     IsDuplicateErr.
//   - On other DB errors (connectivity, constraints, etc.), the raw gorm
//     error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DavidCraggs/PropertySwipe-sub001/internal/domain"
)

// CreateRating inserts a rating row for the given match and side.
//
// The combination (match_id, rater_role) must be unique, enforced by the
// database schema (unique index). If a duplicate exists, the database will
// return an error which the service layer translates into a domain-level
// duplicate error.
//
// Stars must be within [1,5]. Validation is enforced at higher layers
// (handlers/services) and via the DB check constraint.
func CreateRating(ctx context.Context, db *gorm.DB, r *domain.Rating) (*domain.Rating, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

// ListRatingsForMatch returns the ratings submitted on a match (at most one
// per side), oldest first.
func ListRatingsForMatch(ctx context.Context, db *gorm.DB, matchID string) ([]domain.Rating, error) {
	var out []domain.Rating
	err := db.WithContext(ctx).
		Where("match_id = ?", matchID).
		Order("created_at asc").
		Find(&out).Error
	return out, err
}
