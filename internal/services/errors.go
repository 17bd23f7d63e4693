// Package services defines the business logic for the property registry,
// interest ledger, match engine, and consistency cascade. This file holds
// the sentinel errors the services return; mapping them onto HTTP status
// codes is the handlers' job.
package services

import "errors"

// Property-registry errors.
var (
	// ErrPropertyNotFound indicates that the referenced property does not exist.
	ErrPropertyNotFound = errors.New("property not found")

	// ErrOwnershipConflict is returned when a landlord attempts to claim a
	// property that is already linked to a different landlord. Callers are
	// expected to present this as "already claimed".
	ErrOwnershipConflict = errors.New("property already claimed by another landlord")

	// ErrOwnershipMismatch is returned when a landlord attempts to release a
	// property they do not currently own. Authorization-style failure.
	ErrOwnershipMismatch = errors.New("property not owned by this landlord")
)

// Interest-ledger errors.
var (
	// ErrInterestNotFound indicates that the referenced interest does not exist.
	ErrInterestNotFound = errors.New("interest not found")

	// ErrInterestClosed is returned when a confirm or decline targets an
	// interest that is no longer actionable: already reviewed, expired, or
	// made inert by a property deletion or unlink.
	ErrInterestClosed = errors.New("interest already closed")
)

// Match-engine errors.
var (
	// ErrMatchNotFound indicates that the referenced match does not exist.
	ErrMatchNotFound = errors.New("match not found")

	// ErrEmptyMessage is returned when a message send carries no content
	// after trimming whitespace.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrMessageTooLong is returned when a message exceeds the maximum
	// configured length limit.
	ErrMessageTooLong = errors.New("message too long")

	// ErrInvalidTenancyStatus is returned when a tenancy transition names a
	// status outside the known set (none, active, ended).
	ErrInvalidTenancyStatus = errors.New("tenancy status must be none, active or ended")

	// ErrInvalidRating is returned when a rating submission fails validation:
	// stars outside 1..5 or an unknown rater role.
	ErrInvalidRating = errors.New("rating requires 1-5 stars and a renter or landlord role")

	// ErrAlreadyRated is returned when a party attempts to rate a match they
	// have already rated.
	ErrAlreadyRated = errors.New("rating already submitted for this match")
)
