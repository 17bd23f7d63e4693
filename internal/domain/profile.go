package domain

import "time"

// Role discriminates the profile variants carried by platform users.
type Role string

const (
	RoleRenter   Role = "renter"
	RoleLandlord Role = "landlord"
	RoleAgency   Role = "agency"
)

// Profile is the closed set of role-specific profile shapes. Each variant
// carries only the fields meaningful for its role; callers branch on
// ProfileRole instead of probing optional fields.
type Profile interface {
	// ProfileRole returns the discriminant for the concrete variant.
	ProfileRole() Role
	// DisplayName returns the name shown to the other side of a match.
	DisplayName() string
}

// RenterProfile is the renter-side profile attached to interests and matches
// so landlords can review an applicant before confirming. It is embedded as
// a JSON snapshot; later edits to the live profile do not rewrite history.
type RenterProfile struct {
	Role       Role       `json:"role"`
	Name       string     `json:"name"`
	Age        int        `json:"age,omitempty"`
	Occupation string     `json:"occupation,omitempty"`
	IncomeBand string     `json:"income_band,omitempty"`
	HasPets    bool       `json:"has_pets"`
	Smoker     bool       `json:"smoker"`
	MoveInDate *time.Time `json:"move_in_date,omitempty"`
	Bio        string     `json:"bio,omitempty"`
}

func (p RenterProfile) ProfileRole() Role   { return RoleRenter }
func (p RenterProfile) DisplayName() string { return p.Name }

// LandlordProfile describes an individual landlord.
type LandlordProfile struct {
	Role          Role   `json:"role"`
	Name          string `json:"name"`
	Company       string `json:"company,omitempty"`
	PortfolioSize int    `json:"portfolio_size,omitempty"`
}

func (p LandlordProfile) ProfileRole() Role   { return RoleLandlord }
func (p LandlordProfile) DisplayName() string { return p.Name }

// AgencyProfile describes a letting agency acting on behalf of landlords.
// Agency users see landlord-side views plus internal notes on threads.
type AgencyProfile struct {
	Role         Role   `json:"role"`
	Name         string `json:"name"`
	Branch       string `json:"branch,omitempty"`
	ManagedCount int    `json:"managed_count,omitempty"`
}

func (p AgencyProfile) ProfileRole() Role   { return RoleAgency }
func (p AgencyProfile) DisplayName() string { return p.Name }

// NewRenterProfile normalizes a renter profile, stamping the discriminant.
func NewRenterProfile(p RenterProfile) RenterProfile {
	p.Role = RoleRenter
	return p
}
