// Package services – RegistryService
//
// This file implements the RegistryService, which owns the canonical set of
// property listings and their landlord linkage. It enforces the ownership
// invariant (a property is unclaimed or linked to exactly one landlord,
// changed only through explicit link/unlink), coordinates repository
// operations for creating, listing (with pagination), updating, and deleting
// listings, and invokes the consistency cascade so dependent Match and
// Interest records never diverge from the property they denormalize.
//
// Service-level errors (e.g., ErrPropertyNotFound, ErrOwnershipConflict,
// ErrOwnershipMismatch) are returned for predictable cases so handlers can
// map them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/DavidCraggs/PropertySwipe-sub001/internal/domain"
	"github.com/DavidCraggs/PropertySwipe-sub001/internal/repo"
)

// PropertyRepo defines the repository contract required by RegistryService.
// Implementations are responsible for persistence of property aggregates.
type PropertyRepo interface {
	// CreateProperty inserts a new property row.
	CreateProperty(ctx context.Context, db *gorm.DB, p *domain.Property) (*domain.Property, error)

	// GetProperty fetches a property by ID.
	GetProperty(ctx context.Context, db *gorm.DB, id string) (*domain.Property, error)

	// ListAvailableProperties returns a page of the renter's browse feed.
	ListAvailableProperties(ctx context.Context, db *gorm.DB, renterID string, now time.Time, offset, limit int) ([]domain.Property, error)

	// CountAvailableProperties returns the browse feed total for pagination.
	CountAvailableProperties(ctx context.Context, db *gorm.DB, renterID string, now time.Time) (int64, error)

	// ListPropertiesByLandlord returns a page of a landlord's portfolio.
	ListPropertiesByLandlord(ctx context.Context, db *gorm.DB, landlordID string, offset, limit int) ([]domain.Property, error)

	// CountPropertiesByLandlord returns the portfolio size for pagination.
	CountPropertiesByLandlord(ctx context.Context, db *gorm.DB, landlordID string) (int64, error)

	// UpdatePropertyFields applies a whitelisted column map to a property.
	UpdatePropertyFields(ctx context.Context, db *gorm.DB, id string, updates map[string]any) error

	// SetPropertyLandlord rewrites the ownership column (link/unlink).
	SetPropertyLandlord(ctx context.Context, db *gorm.DB, id, landlordID string) error

	// DeleteProperty hard-deletes a property row.
	DeleteProperty(ctx context.Context, db *gorm.DB, id string) error
}

// RegistryService provides property-level operations: creation, listing,
// partial updates, deletion, and the explicit link/unlink ownership flow.
// Ownership rules are enforced here; the cascade keeps dependants aligned.
type RegistryService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the property repository used by this service.
	Repo PropertyRepo
}

// NewRegistryService constructs a RegistryService.
func NewRegistryService(db *gorm.DB, r PropertyRepo) *RegistryService {
	return &RegistryService{DB: db, Repo: r}
}

// PropertyInput carries the caller-supplied listing fields for Create.
type PropertyInput struct {
	AddressLine   string
	City          string
	Postcode      string
	Rent          int
	Bedrooms      int
	Bathrooms     int
	PropertyType  string
	Furnished     bool
	Available     bool
	AvailableFrom *time.Time
	Images        []string
	Features      []string
}

// PropertyUpdate is a partial update: nil fields are left untouched. Slices
// follow the same rule (nil means untouched, an empty slice clears).
//
// LandlordID is present only so the strip guard can detect an attempted
// ownership change; it is never applied. Ownership changes go through
// Link/Unlink, which carry the cascading consistency obligations a generic
// update must not bypass.
type PropertyUpdate struct {
	LandlordID    *string
	AddressLine   *string
	City          *string
	Postcode      *string
	Rent          *int
	Bedrooms      *int
	Bathrooms     *int
	PropertyType  *string
	Furnished     *bool
	Available     *bool
	AvailableFrom *time.Time
	Images        []string
	Features      []string
}

// columns converts the set fields into a GORM column map.
func (u PropertyUpdate) columns() map[string]any {
	m := map[string]any{}
	if u.AddressLine != nil {
		m["address_line"] = strings.TrimSpace(*u.AddressLine)
	}
	if u.City != nil {
		m["city"] = strings.TrimSpace(*u.City)
	}
	if u.Postcode != nil {
		m["postcode"] = strings.TrimSpace(*u.Postcode)
	}
	if u.Rent != nil {
		m["rent"] = *u.Rent
	}
	if u.Bedrooms != nil {
		m["bedrooms"] = *u.Bedrooms
	}
	if u.Bathrooms != nil {
		m["bathrooms"] = *u.Bathrooms
	}
	if u.PropertyType != nil {
		m["property_type"] = *u.PropertyType
	}
	if u.Furnished != nil {
		m["furnished"] = *u.Furnished
	}
	if u.Available != nil {
		m["available"] = *u.Available
	}
	if u.AvailableFrom != nil {
		m["available_from"] = *u.AvailableFrom
	}
	if u.Images != nil {
		m["images"] = u.Images
	}
	if u.Features != nil {
		m["features"] = u.Features
	}
	return m
}

// Create inserts a new listing owned by landlordID. The landlord is assigned
// at creation, so no ownership conflict is possible on this path.
func (s *RegistryService) Create(ctx context.Context, in PropertyInput, landlordID string) (*domain.Property, error) {
	p := &domain.Property{
		LandlordID:    landlordID,
		AddressLine:   strings.TrimSpace(in.AddressLine),
		City:          strings.TrimSpace(in.City),
		Postcode:      strings.TrimSpace(in.Postcode),
		Rent:          in.Rent,
		Bedrooms:      in.Bedrooms,
		Bathrooms:     in.Bathrooms,
		PropertyType:  in.PropertyType,
		Furnished:     in.Furnished,
		Available:     in.Available,
		AvailableFrom: in.AvailableFrom,
		Images:        in.Images,
		Features:      in.Features,
	}
	return s.Repo.CreateProperty(ctx, s.DB, p)
}

// Get fetches a single listing by ID.
func (s *RegistryService) Get(ctx context.Context, id string) (*domain.Property, error) {
	p, err := s.Repo.GetProperty(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return p, nil
}

// ListAvailable returns a page of the renter's browse feed: claimed,
// available listings the renter has not already acted on. An empty renterID
// skips the acted-on exclusion (admin/debug view).
func (s *RegistryService) ListAvailable(ctx context.Context, renterID string, page, pageSize int) ([]domain.Property, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize
	now := time.Now().UTC()

	total, err := s.Repo.CountAvailableProperties(ctx, s.DB, renterID, now)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Property{}, 0, nil
	}

	items, err := s.Repo.ListAvailableProperties(ctx, s.DB, renterID, now, offset, pageSize)
	return items, total, err
}

// ListByLandlord returns a page of the landlord's portfolio, newest first.
func (s *RegistryService) ListByLandlord(ctx context.Context, landlordID string, page, pageSize int) ([]domain.Property, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := s.Repo.CountPropertiesByLandlord(ctx, s.DB, landlordID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Property{}, 0, nil
	}

	items, err := s.Repo.ListPropertiesByLandlord(ctx, s.DB, landlordID, offset, pageSize)
	return items, total, err
}

// Update applies a partial update to a listing and refreshes the
// denormalized snapshot on every match of the property. An attempted
// LandlordID change is stripped with a warning rather than applied:
// ownership changes must go through Link/Unlink so their cascades run.
//
// The returned CascadeResult reports the snapshot refresh. Failed rows are
// logged and counted, never silently dropped; re-running the update
// converges the stragglers.
func (s *RegistryService) Update(ctx context.Context, id string, upd PropertyUpdate) (*CascadeResult, error) {
	if _, err := s.Repo.GetProperty(ctx, s.DB, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}

	if upd.LandlordID != nil {
		log.Warn().Str("property_id", id).
			Msg("ownership change attempted through generic update; stripped, use link/unlink")
		upd.LandlordID = nil
	}

	updates := upd.columns()
	if len(updates) == 0 {
		return &CascadeResult{}, nil
	}
	updates["updated_at"] = time.Now().UTC()

	if err := s.Repo.UpdatePropertyFields(ctx, s.DB, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}

	p, err := s.Repo.GetProperty(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return cascadeSnapshotRefresh(ctx, s.DB, p), nil
}

// Delete hard-deletes a listing. The cascade runs first: every match of the
// property is removed (messages and ratings follow via FK) and surviving
// interests are marked orphaned. The property row itself is only removed
// once the cascade completed cleanly, so a failed pass leaves the operation
// retryable instead of stranding unreachable match rows.
func (s *RegistryService) Delete(ctx context.Context, id string) (*CascadeResult, error) {
	if _, err := s.Repo.GetProperty(ctx, s.DB, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}

	res := cascadePropertyDelete(ctx, s.DB, id)
	if res.Failed > 0 {
		return res, fmt.Errorf("delete cascade incomplete for property %s: %d steps failed", id, res.Failed)
	}

	if err := s.Repo.DeleteProperty(ctx, s.DB, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return res, ErrPropertyNotFound
		}
		return res, err
	}

	log.Info().Str("property_id", id).
		Int("matches_deleted", res.Deleted).
		Int("interests_orphaned", res.Updated).
		Msg("property deleted")
	return res, nil
}

// Link claims a property for landlordID. Linking is idempotent for the
// owning landlord and conflicts for anyone else:
//   - missing property: ErrPropertyNotFound
//   - linked to a different landlord: ErrOwnershipConflict, no mutation
//   - already linked to landlordID: no error; the cascade still re-runs so a
//     retried link converges any rows a previous partial pass missed
//
// On a fresh claim the cascade rewrites every match of the property (top
// level and snapshot landlord, plus re-attribution of old landlord-side
// message senders) and points live interests at the new landlord, so the
// incoming landlord sees full historical renter interest. landlordName is
// optional; when empty, existing display names are left alone.
func (s *RegistryService) Link(ctx context.Context, id, landlordID, landlordName string) (*CascadeResult, error) {
	p, err := s.Repo.GetProperty(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}

	if p.Claimed() && p.LandlordID != landlordID {
		return nil, ErrOwnershipConflict
	}

	if !p.Claimed() {
		if err := s.Repo.SetPropertyLandlord(ctx, s.DB, id, landlordID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrPropertyNotFound
			}
			return nil, err
		}
		p.LandlordID = landlordID
	}

	res := cascadeRelink(ctx, s.DB, p, landlordName)
	log.Info().Str("property_id", id).Str("landlord_id", landlordID).
		Int("matches_scanned", res.Scanned).
		Int("rows_updated", res.Updated).
		Int("failed", res.Failed).
		Msg("property linked")
	return res, nil
}

// Unlink releases a property owned by landlordID, setting the linkage back
// to unclaimed. Matches are deliberately left untouched: historical matches
// stay addressed to the outgoing landlord, preserving the renter's view of
// who they spoke to. Live interests are detached from the landlord's review
// queue until a future relink points them at the new owner.
func (s *RegistryService) Unlink(ctx context.Context, id, landlordID string) error {
	p, err := s.Repo.GetProperty(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPropertyNotFound
		}
		return err
	}

	if p.LandlordID != landlordID {
		return ErrOwnershipMismatch
	}

	if err := s.Repo.SetPropertyLandlord(ctx, s.DB, id, ""); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPropertyNotFound
		}
		return err
	}

	if _, err := repo.UpdateInterestLandlord(ctx, s.DB, id, ""); err != nil {
		// Best effort: a relink rewrites these anyway.
		log.Warn().Err(err).Str("property_id", id).Msg("unlink: detaching interests failed")
	}
	return nil
}
