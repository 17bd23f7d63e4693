// Package services – InterestService
//
// This file implements the InterestService, the ledger of renter-initiated
// expressions of interest awaiting landlord review. It validates the target
// property against the registry (interest in a missing or unclaimed listing
// is absorbed as "not applicable" rather than failed), scores the pairing
// through the injected scoring policy, and enforces the one-live-interest
// rule per (renter, property) pair inside a transaction.
//
// Expiry is lazy: every read path filters on the expiry timestamp, so
// correctness never depends on the housekeeping sweep having run.
//
// Observability: public methods are OpenTelemetry-instrumented; spans carry
// property/renter/landlord identifiers.
package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/DavidCraggs/PropertySwipe-sub001/internal/domain"
	"github.com/DavidCraggs/PropertySwipe-sub001/internal/repo"
	"github.com/DavidCraggs/PropertySwipe-sub001/internal/scoring"

	// OpenTelemetry
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DefaultInterestTTL is the pending-interest lifetime applied when the
// service has no explicit TTL configured.
const DefaultInterestTTL = 30 * 24 * time.Hour

// ScoreFunc computes a compatibility score in [0,100] for a renter profile
// against a property. The score is display metadata on the interest; it
// never gates whether a match can happen.
type ScoreFunc func(p *domain.Property, r *domain.RenterProfile) int

// InterestService implements the use-cases around expressions of interest:
// creation with scoring and TTL stamping, the landlord review queue, decline,
// and the expiry sweep entry point.
type InterestService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB

	// Score is the compatibility scoring policy. Defaults to scoring.Score
	// when nil, keeping the policy replaceable without touching the ledger.
	Score ScoreFunc

	// TTL is the pending-interest lifetime. Defaults to DefaultInterestTTL
	// when zero or negative.
	TTL time.Duration
}

// scoreFn returns the configured scoring policy or the default.
func (s *InterestService) scoreFn() ScoreFunc {
	if s.Score != nil {
		return s.Score
	}
	return scoring.Score
}

// ttl returns the configured pending lifetime or the default.
func (s *InterestService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultInterestTTL
}

// Express records renterID's interest in propertyID.
//
// Semantics:
//   - A missing or unclaimed property yields (nil, nil): there is no
//     counterparty to notify, so the action is "not applicable" by business
//     rule, not a failure. Callers must distinguish this from an error.
//   - If a live interest already occupies the (renter, property) pair (a
//     reviewed outcome, or a pending row inside its TTL), that record is
//     returned as-is. Repeat swipes are idempotent.
//   - Otherwise the pairing is scored, and a pending interest is persisted
//     with the landlord denormalized from the property and expiry set to
//     creation time plus the configured TTL.
//
// The check-then-create runs inside one transaction. Writes to the same
// pair are assumed single-writer (one human swiping); the transaction makes
// the lookup and insert atomic against the sweeper and cascade writers.
func (s *InterestService) Express(ctx context.Context, propertyID, renterID string, profile domain.RenterProfile) (*domain.Interest, error) {
	tr := otel.Tracer("services/InterestService")
	ctx, span := tr.Start(ctx, "Express",
		trace.WithAttributes(
			attribute.String("property.id", propertyID),
			attribute.String("renter.id", renterID),
		),
	)
	defer span.End()

	p, err := repo.GetProperty(ctx, s.DB, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !p.Claimed() {
		return nil, nil
	}

	profile = domain.NewRenterProfile(profile)

	var (
		out     *domain.Interest
		created bool
	)
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		existing, err := repo.FindBlockingInterest(ctx, tx, renterID, propertyID, now)
		if err == nil {
			out = existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		iv := &domain.Interest{
			PropertyID: propertyID,
			RenterID:   renterID,
			LandlordID: p.LandlordID,
			RenterName: profile.Name,
			Status:     domain.InterestStatusPending,
			Score:      s.scoreFn()(p, &profile),
			Profile:    &profile,
			CreatedAt:  now,
			ExpiresAt:  now.Add(s.ttl()),
		}
		if _, err := repo.CreateInterest(ctx, tx, iv); err != nil {
			return err
		}
		out = iv
		created = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if created {
		interestsCreated.Inc()
	}
	return out, nil
}

// PendingCount returns the size of the landlord's review queue: pending,
// non-orphaned interests still inside their TTL.
func (s *InterestService) PendingCount(ctx context.Context, landlordID string) (int64, error) {
	tr := otel.Tracer("services/InterestService")
	ctx, span := tr.Start(ctx, "PendingCount",
		trace.WithAttributes(attribute.String("landlord.id", landlordID)),
	)
	defer span.End()

	return repo.CountPendingForLandlord(ctx, s.DB, landlordID, time.Now().UTC())
}

// ListPending returns a page of the landlord's review queue, oldest first,
// with the queue total. Page defaults follow the rest of the API (page 1,
// size 20).
func (s *InterestService) ListPending(ctx context.Context, landlordID string, page, pageSize int) ([]domain.Interest, int64, error) {
	tr := otel.Tracer("services/InterestService")
	ctx, span := tr.Start(ctx, "ListPending",
		trace.WithAttributes(
			attribute.String("landlord.id", landlordID),
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize
	now := time.Now().UTC()

	total, err := repo.CountPendingForLandlord(ctx, s.DB, landlordID, now)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Interest{}, 0, nil
	}

	items, err := repo.ListPendingForLandlord(ctx, s.DB, landlordID, now, offset, pageSize)
	return items, total, err
}

// Decline transitions a pending interest to landlord_passed and stamps the
// review timestamp. Terminal: a declined interest can never produce a match.
//
// Errors:
//   - ErrInterestNotFound when the id does not exist.
//   - ErrInterestClosed when the interest already left the pending state,
//     aged out, or was orphaned by a property deletion. Declining twice is
//     loud rather than silent so callers see their queue went stale.
func (s *InterestService) Decline(ctx context.Context, interestID string) error {
	tr := otel.Tracer("services/InterestService")
	ctx, span := tr.Start(ctx, "Decline",
		trace.WithAttributes(attribute.String("interest.id", interestID)),
	)
	defer span.End()

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		iv, err := repo.GetInterest(ctx, tx, interestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInterestNotFound
			}
			return err
		}

		now := time.Now().UTC()
		if iv.Orphaned || iv.Terminal() || iv.ExpiredBy(now) {
			return ErrInterestClosed
		}

		err = repo.TransitionInterestStatus(ctx, tx, interestID,
			domain.InterestStatusPending, domain.InterestStatusPassed, &now)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Raced with another reviewer or the sweeper.
				return ErrInterestClosed
			}
			return err
		}
		return nil
	})
}

// ExpireDue flips every pending interest whose TTL elapsed at or before now
// to expired and returns the number of rows changed. Called by the cron
// sweep; read paths filter lazily and never depend on it.
func (s *InterestService) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	n, err := repo.MarkExpiredInterests(ctx, s.DB, now)
	if err != nil {
		return n, err
	}
	if n > 0 {
		interestsExpired.Add(float64(n))
	}
	return n, nil
}
