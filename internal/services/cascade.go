// Package services – consistency cascade
//
// This file implements the propagation rules that keep Match and Interest
// records consistent with their Property as ownership and listing fields
// change. Cascades are best effort: a failure on one row never blocks
// propagation to the rest. Every failure is counted, captured with its
// match id, and logged, so partial propagation is observable to callers
// instead of disappearing into the log stream.
//
// The cascade is invoked by RegistryService only; it is not an external
// entry point. All passes are written to be re-appliable, so a retried
// link or delete converges to the same end state.
package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/DavidCraggs/PropertySwipe-sub001/internal/domain"
	"github.com/DavidCraggs/PropertySwipe-sub001/internal/repo"
)

// CascadeError records a single failed propagation step. MatchID is empty
// for property-level steps (listing the matches, bulk interest rewrites).
type CascadeError struct {
	MatchID string
	Err     error
}

// CascadeResult summarizes one propagation pass over the dependants of a
// property. Scanned counts the matches examined; Updated counts rewritten
// rows (matches plus bulk-updated interests); Deleted counts removed
// matches. Failed steps are detailed in Errors.
type CascadeResult struct {
	Scanned int
	Updated int
	Deleted int
	Failed  int
	Errors  []CascadeError
}

// fail records a failed step without aborting the pass.
func (r *CascadeResult) fail(matchID string, err error) {
	r.Failed++
	r.Errors = append(r.Errors, CascadeError{MatchID: matchID, Err: err})
	cascadeFailures.Inc()
	log.Warn().Err(err).Str("match_id", matchID).Msg("cascade step failed")
}

// cascadeRelink propagates a new landlord linkage into every match of the
// property: the top-level landlord id (and name, when one is known), the
// landlord id inside the denormalized property snapshot, and the sender id
// of every landlord-role message previously attributed to the match's old
// landlord. It finishes by pointing the property's live interests at the
// new landlord so the review queue follows the ownership change.
//
// The old landlord id is read per match rather than from the property,
// because the property linkage is already cleared by the time a relink
// happens (unlink first, then link).
func cascadeRelink(ctx context.Context, db *gorm.DB, p *domain.Property, landlordName string) *CascadeResult {
	res := &CascadeResult{}

	matches, err := repo.ListMatchesByProperty(ctx, db, p.ID)
	if err != nil {
		res.fail("", err)
		return res
	}

	now := time.Now().UTC()
	for _, m := range matches {
		res.Scanned++

		oldID := m.LandlordID
		snap := m.Property
		snap.LandlordID = p.LandlordID

		updates := map[string]any{
			"landlord_id": p.LandlordID,
			"property":    snap,
			"updated_at":  now,
		}
		if landlordName != "" {
			updates["landlord_name"] = landlordName
		}
		if err := repo.UpdateMatchFields(ctx, db, m.ID, updates); err != nil {
			res.fail(m.ID, err)
			continue
		}
		res.Updated++

		// Re-attribute historical landlord-side messages so the incoming
		// landlord owns the prior conversation.
		if oldID != "" && oldID != p.LandlordID {
			r2 := db.WithContext(ctx).Model(&domain.Message{}).
				Where("match_id = ? AND sender_role = ? AND sender_id = ?", m.ID, domain.SenderLandlord, oldID).
				Update("sender_id", p.LandlordID)
			if r2.Error != nil {
				res.fail(m.ID, r2.Error)
			}
		}
	}

	if n, err := repo.UpdateInterestLandlord(ctx, db, p.ID, p.LandlordID); err != nil {
		res.fail("", err)
	} else {
		res.Updated += int(n)
	}
	return res
}

// cascadeSnapshotRefresh pushes the property's current listing fields into
// the denormalized snapshot of every match, so renters viewing an existing
// match see current details rather than a stale copy. The landlord id inside
// each snapshot is preserved from the match: ownership attribution is
// history, and only the link cascade may rewrite it.
func cascadeSnapshotRefresh(ctx context.Context, db *gorm.DB, p *domain.Property) *CascadeResult {
	res := &CascadeResult{}

	matches, err := repo.ListMatchesByProperty(ctx, db, p.ID)
	if err != nil {
		res.fail("", err)
		return res
	}

	now := time.Now().UTC()
	for _, m := range matches {
		res.Scanned++

		snap := p.Snapshot()
		snap.LandlordID = m.Property.LandlordID

		err := repo.UpdateMatchFields(ctx, db, m.ID, map[string]any{
			"property":   snap,
			"updated_at": now,
		})
		if err != nil {
			res.fail(m.ID, err)
			continue
		}
		res.Updated++
	}
	return res
}

// cascadePropertyDelete removes every match referencing the property (their
// messages and ratings follow via FK cascade) and marks surviving interests
// orphaned, retaining them for history while making them inert.
func cascadePropertyDelete(ctx context.Context, db *gorm.DB, propertyID string) *CascadeResult {
	res := &CascadeResult{}

	matches, err := repo.ListMatchesByProperty(ctx, db, propertyID)
	if err != nil {
		res.fail("", err)
		return res
	}

	for _, m := range matches {
		res.Scanned++
		if err := repo.DeleteMatch(ctx, db, m.ID); err != nil {
			res.fail(m.ID, err)
			continue
		}
		res.Deleted++
	}

	if n, err := repo.OrphanInterestsForProperty(ctx, db, propertyID); err != nil {
		res.fail("", err)
	} else {
		res.Updated += int(n)
	}
	return res
}
