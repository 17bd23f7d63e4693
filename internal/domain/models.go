// Package domain defines the persistence models for properties, interests,
// matches, messages, and ratings. These types are mapped with GORM and form
// the core data layer of the rental matching application.
package domain

import "time"

// InterestStatus is the lifecycle state of a renter's expression of interest.
type InterestStatus string

const (
	// InterestStatusPending means the landlord has not yet reviewed the interest.
	InterestStatusPending InterestStatus = "pending"
	// InterestStatusLiked means the landlord confirmed and a Match was produced.
	InterestStatusLiked InterestStatus = "landlord_liked"
	// InterestStatusPassed means the landlord declined. Terminal.
	InterestStatusPassed InterestStatus = "landlord_passed"
	// InterestStatusExpired means the interest aged out unreviewed. Terminal.
	InterestStatusExpired InterestStatus = "expired"
)

// TenancyStatus tracks the post-match tenancy state of a Match.
type TenancyStatus string

const (
	TenancyStatusNone   TenancyStatus = "none"
	TenancyStatusActive TenancyStatus = "active"
	TenancyStatusEnded  TenancyStatus = "ended"
)

// MessageSender identifies which side of a match authored a message.
type MessageSender string

const (
	SenderRenter   MessageSender = "renter"
	SenderLandlord MessageSender = "landlord"
	// SenderSystem marks machine-generated thread entries (e.g. the viewing
	// request summary appended on behalf of the renter).
	SenderSystem MessageSender = "system"
)

// Property represents a rental listing. A property is either unclaimed
// (LandlordID == "") or linked to exactly one landlord; linkage changes only
// through the explicit link/unlink operations, never through a field update.
//
// IDs are char(36) UUIDs. LandlordID stays empty while unclaimed and is
// indexed for the dashboard queries. Rent is whole currency units per month,
// and Images and Features serialize into JSON columns.
type Property struct {
	ID            string     `json:"id"            gorm:"type:char(36);primaryKey"`
	LandlordID    string     `json:"landlord_id"   gorm:"type:varchar(64);index:idx_property_landlord"`
	AddressLine   string     `json:"address_line"  gorm:"type:varchar(255);not null"`
	City          string     `json:"city"          gorm:"type:varchar(128)"`
	Postcode      string     `json:"postcode"      gorm:"type:varchar(16)"`
	Rent          int        `json:"rent"          gorm:"not null;index"`
	Bedrooms      int        `json:"bedrooms"`
	Bathrooms     int        `json:"bathrooms"`
	PropertyType  string     `json:"property_type" gorm:"type:varchar(32)"`
	Furnished     bool       `json:"furnished"`
	Available     bool       `json:"available"     gorm:"index"`
	AvailableFrom *time.Time `json:"available_from,omitempty"`
	Images        []string   `json:"images"        gorm:"serializer:json"`
	Features      []string   `json:"features"      gorm:"serializer:json"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Table names are pinned explicitly rather than left to the pluralizer.
func (Property) TableName() string { return "properties" }

// Claimed reports whether the property is linked to a landlord.
func (p *Property) Claimed() bool { return p.LandlordID != "" }

// PropertySnapshot is the denormalized copy of a property embedded in each
// Match so match listings never need a join against the live row. The
// consistency cascade keeps it aligned when the source property changes.
type PropertySnapshot struct {
	LandlordID    string     `json:"landlord_id"`
	AddressLine   string     `json:"address_line"`
	City          string     `json:"city"`
	Postcode      string     `json:"postcode"`
	Rent          int        `json:"rent"`
	Bedrooms      int        `json:"bedrooms"`
	Bathrooms     int        `json:"bathrooms"`
	PropertyType  string     `json:"property_type"`
	Furnished     bool       `json:"furnished"`
	Available     bool       `json:"available"`
	AvailableFrom *time.Time `json:"available_from,omitempty"`
	Images        []string   `json:"images"`
	Features      []string   `json:"features"`
}

// Snapshot captures the denormalized view of p for embedding in a Match.
func (p *Property) Snapshot() PropertySnapshot {
	return PropertySnapshot{
		LandlordID:    p.LandlordID,
		AddressLine:   p.AddressLine,
		City:          p.City,
		Postcode:      p.Postcode,
		Rent:          p.Rent,
		Bedrooms:      p.Bedrooms,
		Bathrooms:     p.Bathrooms,
		PropertyType:  p.PropertyType,
		Furnished:     p.Furnished,
		Available:     p.Available,
		AvailableFrom: p.AvailableFrom,
		Images:        p.Images,
		Features:      p.Features,
	}
}

// Interest records a one-sided, renter-initiated expression of interest in a
// property, awaiting landlord review. At most one non-expired Interest exists
// per (renter, property) pair; repeat expressions are absorbed silently.
//
// Notable columns:
//   - LandlordID: denormalized from the property at creation time so pending
//     counts never need a join.
//   - Score: compatibility score in [0,100]; display metadata only, it never
//     gates matching.
//   - ExpiresAt: CreatedAt + configured TTL. Pending rows past this instant
//     are treated as expired by every read path.
//   - Orphaned: set when the referenced property is hard-deleted. Orphaned
//     interests are retained for history but inert: excluded from pending
//     counts and never confirmable.
type Interest struct {
	ID         string         `json:"id"          gorm:"type:char(36);primaryKey"`
	PropertyID string         `json:"property_id" gorm:"type:char(36);not null;index:idx_interest_pair,priority:2"`
	RenterID   string         `json:"renter_id"   gorm:"type:varchar(64);not null;index:idx_interest_pair,priority:1"`
	LandlordID string         `json:"landlord_id" gorm:"type:varchar(64);not null;index"`
	RenterName string         `json:"renter_name" gorm:"type:varchar(128)"`
	Status     InterestStatus `json:"status"      gorm:"type:varchar(20);not null;default:'pending';index"`
	Score      int            `json:"score"       gorm:"not null"`
	Profile    *RenterProfile `json:"profile,omitempty" gorm:"serializer:json"`
	Orphaned   bool           `json:"orphaned"    gorm:"not null;default:false"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	ExpiresAt  time.Time      `json:"expires_at"  gorm:"index"`
	ReviewedAt *time.Time     `json:"reviewed_at,omitempty"`
}

func (Interest) TableName() string { return "interests" }

// Terminal reports whether the interest has left the pending state.
func (i *Interest) Terminal() bool { return i.Status != InterestStatusPending }

// ExpiredBy reports whether a still-pending interest should be treated as
// expired at the given instant. Reviewed interests never expire.
func (i *Interest) ExpiredBy(now time.Time) bool {
	return i.Status == InterestStatusPending && !i.ExpiresAt.After(now)
}

// ViewingPreference is a renter's structured viewing request attached to a
// match. The match engine renders it into a system message so the request
// also appears inside the conversation thread.
type ViewingPreference struct {
	// Flexibility is a coarse availability mode, e.g. "weekday_evenings",
	// "weekends_only", "flexible".
	Flexibility string   `json:"flexibility"`
	Slots       []string `json:"slots,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

// Match is the bidirectional relationship between a renter and a landlord
// over a specific property, created when a landlord confirms an interest.
// It owns the message thread plus the viewing, tenancy, and rating state
// that follows a successful match.
//
// Invariants:
//   - A match references a property that existed at creation time; matches
//     disappear only as a cascade of property deletion.
//   - UnreadCount is the renter-side badge: landlord-authored messages the
//     renter has not read yet.
//   - HasViewingScheduled implies ConfirmedViewingAt is set.
//   - RenterRated / LandlordRated each flip at most once.
type Match struct {
	ID            string           `json:"id"            gorm:"type:char(36);primaryKey"`
	PropertyID    string           `json:"property_id"   gorm:"type:char(36);not null;index"`
	LandlordID    string           `json:"landlord_id"   gorm:"type:varchar(64);not null;index"`
	LandlordName  string           `json:"landlord_name" gorm:"type:varchar(128)"`
	RenterID      string           `json:"renter_id"     gorm:"type:varchar(64);not null;index"`
	RenterName    string           `json:"renter_name"   gorm:"type:varchar(128)"`
	Property      PropertySnapshot `json:"property"      gorm:"serializer:json"`
	RenterProfile *RenterProfile   `json:"renter_profile,omitempty" gorm:"serializer:json"`

	LastMessageAt time.Time `json:"last_message_at"`
	UnreadCount   int       `json:"unread_count" gorm:"not null;default:0"`

	Viewing             *ViewingPreference `json:"viewing_preference,omitempty" gorm:"serializer:json"`
	HasViewingScheduled bool               `json:"has_viewing_scheduled" gorm:"not null;default:false"`
	ConfirmedViewingAt  *time.Time         `json:"confirmed_viewing_at,omitempty"`

	TenancyStatus TenancyStatus `json:"tenancy_status"     gorm:"type:varchar(16);not null;default:'none'"`
	CanRate       bool          `json:"can_rate"           gorm:"not null;default:false"`
	RenterRated   bool          `json:"has_renter_rated"   gorm:"not null;default:false"`
	LandlordRated bool          `json:"has_landlord_rated" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Match) TableName() string { return "matches" }

// RatedBy reports whether the given side already submitted its rating.
func (m *Match) RatedBy(role MessageSender) bool {
	switch role {
	case SenderRenter:
		return m.RenterRated
	case SenderLandlord:
		return m.LandlordRated
	default:
		return false
	}
}

// Message is a single entry in a match's thread. The thread is append-only:
// ordering is by Seq (assigned at insert), and the Read flag only ever
// transitions false to true.
//
// Notable columns:
//   - Seq: per-thread sequence number, dense from 1.
//   - SenderRole: renter, landlord, or system.
//   - Internal: agency-facing note, never exposed to renters.
//   - Match: FK association; messages are cascade-deleted with their match.
type Message struct {
	ID         string        `json:"id"          gorm:"type:char(36);primaryKey"`
	MatchID    string        `json:"match_id"    gorm:"type:char(36);not null;index:idx_match_msgs,priority:1"`
	Seq        int           `json:"seq"         gorm:"not null;index:idx_match_msgs,priority:2"`
	SenderID   string        `json:"sender_id"   gorm:"type:varchar(64);not null"`
	SenderRole MessageSender `json:"sender_role" gorm:"type:varchar(16);not null;check:sender_role IN ('renter','landlord','system')"`
	Content    string        `json:"content"     gorm:"type:text;not null"`
	Read       bool          `json:"read"        gorm:"not null;default:false"`
	Internal   bool          `json:"internal"    gorm:"not null;default:false"`
	CreatedAt  time.Time     `json:"created_at"`

	// Match is the parent relationship. Messages are cascade-deleted
	// if their match is removed.
	Match Match `json:"-" gorm:"foreignKey:MatchID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Message) TableName() string { return "messages" }

// Rating is one party's single review of the other side of a match, unlocked
// once the tenancy state makes the match rateable. The unique index backs
// the has*Rated flags on Match against double submission.
type Rating struct {
	ID        string        `json:"id"         gorm:"type:char(36);primaryKey"`
	MatchID   string        `json:"match_id"   gorm:"type:char(36);not null;index;uniqueIndex:ux_rating_match_role"`
	RaterID   string        `json:"rater_id"   gorm:"type:varchar(64);not null"`
	RaterRole MessageSender `json:"rater_role" gorm:"type:varchar(16);not null;uniqueIndex:ux_rating_match_role;check:rater_role IN ('renter','landlord')"`
	Stars     int           `json:"stars"      gorm:"not null;check:stars BETWEEN 1 AND 5"`
	Comment   string        `json:"comment"    gorm:"type:text"`
	CreatedAt time.Time     `json:"created_at"`

	// Match is the reviewed relationship. Ratings are cascade-deleted
	// if the underlying match is removed.
	Match Match `json:"-" gorm:"foreignKey:MatchID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Rating) TableName() string { return "ratings" }
