// Package repo persists the domain model through GORM. This file holds the
// Idempotency records behind safe POST retries.
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

// ErrDuplicate means a record already exists for the (user_id, scope_id,
// key) tuple, i.e. two requests raced on the same Idempotency-Key.
var ErrDuplicate = errors.New("duplicate")

// GetIdempotency fetches the live record for the tuple, or ErrNotFound when
// none exists or the stored one has expired. Scope is the resource the
// original POST addressed, a match id for confirms and messages; a blank
// scope can never have been stored, so it short-circuits to ErrNotFound.
func GetIdempotency(ctx context.Context, db *gorm.DB, userID, scopeID, key string, now time.Time) (*domain.Idempotency, error) {
	if strings.TrimSpace(scopeID) == "" {
		return nil, ErrNotFound
	}

	var rec domain.Idempotency
	err := db.WithContext(ctx).
		Where("user_id = ? AND scope_id = ? AND key = ? AND expires_at > ?", userID, scopeID, key, now).
		First(&rec).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	case err != nil:
		return nil, err
	}
	return &rec, nil
}

// CreateIdempotency records a completed operation so replays can serve its
// outcome: resultID points at the entity the operation produced and status
// is the HTTP status it answered with. The unique index on the tuple turns
// a concurrent double-submit into ErrDuplicate.
func CreateIdempotency(ctx context.Context, db *gorm.DB, userID, scopeID, key, resultID string, status int, ttl time.Duration) (*domain.Idempotency, error) {
	now := time.Now().UTC()
	rec := &domain.Idempotency{
		ID:        uuid.NewString(),
		UserID:    userID,
		ScopeID:   scopeID,
		Key:       key,
		ResultID:  resultID,
		Status:    status,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	err := db.WithContext(ctx).Create(rec).Error
	switch {
	case err == nil:
		return rec, nil
	case IsDuplicateErr(err):
		return nil, ErrDuplicate
	default:
		return nil, err
	}
}
