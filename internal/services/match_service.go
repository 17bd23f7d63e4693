// Package services – MatchService
//
// This file implements MatchService, the engine that promotes a confirmed
// interest into a bidirectional Match and owns everything that follows:
// the seeded message thread, unread accounting, viewing preferences and
// confirmations, tenancy transitions, and rating submission.
//
// Two creation paths exist. Confirm is the production two-sided flow
// (pending interest reviewed by the landlord). CheckForMatch is the legacy
// probabilistic path kept for demos and seeding; it rolls an injected
// random source against a configured probability and is not the production
// flow.
//
// Observability: the mutating entry points are OpenTelemetry-instrumented;
// spans carry match/interest/party identifiers.
package services

import (
	"context"
	"errors"
	"fmt"
	mrand "math/rand"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/DavidCraggs/PropertySwipe-sub001/internal/domain"
	"github.com/DavidCraggs/PropertySwipe-sub001/internal/repo"

	// OpenTelemetry
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// systemSenderID is the sender id stamped on machine-generated messages.
const systemSenderID = "system"

// Rand is the minimal random source used by the legacy probabilistic path.
// *math/rand.Rand satisfies it; tests inject fixed-value stubs to force
// both outcomes deterministically.
type Rand interface {
	Float64() float64
}

// MatchService coordinates match creation and the post-match lifecycle.
type MatchService struct {
	DB *gorm.DB

	// Probability is the legacy-roll match chance, clamped to [0,1].
	Probability float64
	// Rand draws for the legacy roll. Inject a seeded source; when nil, a
	// wall-clock-seeded one is created on first use. The global generator
	// is never touched.
	Rand Rand

	// MaxMessageRunes caps message content length; 0 disables the cap.
	MaxMessageRunes int

	// SummaryLocale drives title casing in viewing-request summaries.
	SummaryLocale language.Tag
}

// rand returns the injected random source, lazily seeding one if unset.
func (s *MatchService) rand() Rand {
	if s.Rand == nil {
		s.Rand = mrand.New(mrand.NewSource(time.Now().UnixNano()))
	}
	return s.Rand
}

// Confirm reviews a pending interest positively: the interest transitions
// to landlord_liked with a review timestamp, and a Match is created from
// the property and the interest's renter snapshot, seeded with exactly one
// landlord-authored welcome message and an unread count of 1. The whole
// promotion is one transaction.
//
// landlordName is the confirming landlord's display name from the identity
// layer; it may be empty.
//
// Errors:
//   - ErrInterestNotFound when the interest id does not exist.
//   - ErrInterestClosed when the interest already left the pending state,
//     aged out, was orphaned, or its property is gone or unclaimed. A
//     declined or expired interest can never be confirmed.
func (s *MatchService) Confirm(ctx context.Context, interestID, landlordName string) (*domain.Match, error) {
	tr := otel.Tracer("services/MatchService")
	ctx, span := tr.Start(ctx, "Confirm",
		trace.WithAttributes(attribute.String("interest.id", interestID)),
	)
	defer span.End()

	var match *domain.Match
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
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

		p, err := repo.GetProperty(ctx, tx, iv.PropertyID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Property gone before the orphan flag landed.
				return ErrInterestClosed
			}
			return err
		}
		if !p.Claimed() {
			// The listing was released while the interest sat in the queue.
			return ErrInterestClosed
		}

		err = repo.TransitionInterestStatus(ctx, tx, iv.ID,
			domain.InterestStatusPending, domain.InterestStatusLiked, &now)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Raced with another reviewer or the sweeper.
				return ErrInterestClosed
			}
			return err
		}

		m, err := seedMatch(ctx, tx, p, iv.RenterID, iv.RenterName, landlordName, iv.Profile)
		if err != nil {
			return err
		}
		match = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	matchesCreated.WithLabelValues("confirm").Inc()
	return match, nil
}

// CheckForMatch is the legacy probabilistic path: a like action rolls the
// injected random source against the configured probability. A missing or
// unclaimed property always reports false: unclaimed listings can never
// produce a match, so a renter cannot "match" with nobody. On a winning
// roll the Match is built exactly like Confirm, carrying the optional
// renter profile snapshot when supplied.
//
// The production flow is Express followed by Confirm or Decline; this path
// exists for demonstrations and seeding.
func (s *MatchService) CheckForMatch(ctx context.Context, propertyID, renterID string, profile *domain.RenterProfile) (bool, error) {
	tr := otel.Tracer("services/MatchService")
	ctx, span := tr.Start(ctx, "CheckForMatch",
		trace.WithAttributes(
			attribute.String("property.id", propertyID),
			attribute.String("renter.id", renterID),
		),
	)
	defer span.End()

	p, err := repo.GetProperty(ctx, s.DB, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if !p.Claimed() {
		return false, nil
	}

	pr := s.Probability
	if pr < 0 {
		pr = 0
	}
	if pr > 1 {
		pr = 1
	}
	if s.rand().Float64() >= pr {
		return false, nil
	}

	renterName := ""
	if profile != nil {
		norm := domain.NewRenterProfile(*profile)
		profile = &norm
		renterName = norm.Name
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := seedMatch(ctx, tx, p, renterID, renterName, "", profile)
		return err
	})
	if err != nil {
		return false, err
	}
	matchesCreated.WithLabelValues("roll").Inc()
	return true, nil
}

// seedMatch creates the match row plus its single landlord-authored welcome
// message inside tx. The unread badge starts at 1 because the welcome is
// counterparty-authored and unread.
func seedMatch(ctx context.Context, tx *gorm.DB, p *domain.Property, renterID, renterName, landlordName string, profile *domain.RenterProfile) (*domain.Match, error) {
	m := &domain.Match{
		PropertyID:    p.ID,
		LandlordID:    p.LandlordID,
		LandlordName:  landlordName,
		RenterID:      renterID,
		RenterName:    renterName,
		Property:      p.Snapshot(),
		RenterProfile: profile,
		UnreadCount:   1,
	}
	if _, err := repo.CreateMatch(ctx, tx, m); err != nil {
		return nil, err
	}

	seq, err := repo.NextMessageSeq(tx, m.ID)
	if err != nil {
		return nil, err
	}
	msg := &domain.Message{
		MatchID:    m.ID,
		Seq:        seq,
		SenderID:   p.LandlordID,
		SenderRole: domain.SenderLandlord,
		Content:    welcomeMessage(renterName, p.AddressLine),
	}
	if _, err := repo.CreateMessage(tx, msg); err != nil {
		return nil, err
	}
	return m, nil
}

// welcomeMessage renders the greeting that seeds every new match thread.
func welcomeMessage(renterName, addressLine string) string {
	name := strings.TrimSpace(renterName)
	if name == "" {
		name = "there"
	}
	if addressLine == "" {
		return fmt.Sprintf("Hi %s! Thanks for your interest. Happy to answer any questions or arrange a viewing.", name)
	}
	return fmt.Sprintf("Hi %s! Thanks for your interest in %s. Happy to answer any questions or arrange a viewing.", name, addressLine)
}

// Get fetches a single match by ID.
func (s *MatchService) Get(ctx context.Context, id string) (*domain.Match, error) {
	m, err := repo.GetMatch(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return m, nil
}

// ListForRenter returns a page of the renter's matches ordered by
// conversation recency, with the total for pagination.
func (s *MatchService) ListForRenter(ctx context.Context, renterID string, page, pageSize int) ([]domain.Match, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountMatchesForRenter(ctx, s.DB, renterID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Match{}, 0, nil
	}

	items, err := repo.ListMatchesForRenter(ctx, s.DB, renterID, offset, pageSize)
	return items, total, err
}

// ListForLandlord returns a page of the landlord's matches ordered by
// conversation recency, with the total for pagination.
func (s *MatchService) ListForLandlord(ctx context.Context, landlordID string, page, pageSize int) ([]domain.Match, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountMatchesForLandlord(ctx, s.DB, landlordID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Match{}, 0, nil
	}

	items, err := repo.ListMatchesForLandlord(ctx, s.DB, landlordID, offset, pageSize)
	return items, total, err
}

// SendMessage appends a message to the match thread with the next sequence
// number and bumps the conversation recency. Senders other than the match's
// renter are attributed to the landlord side (agencies message on the
// landlord's behalf); landlord-side messages arrive unread and increment
// the renter's badge, renter messages do not.
//
// A send into a missing match is deliberately a silent no-op: the match was
// removed underneath the sender (property deleted) and the message is
// dropped with a debug log rather than failed.
//
// Errors: ErrEmptyMessage, ErrMessageTooLong for invalid content.
func (s *MatchService) SendMessage(ctx context.Context, matchID, senderID, content string) error {
	tr := otel.Tracer("services/MatchService")
	ctx, span := tr.Start(ctx, "SendMessage",
		trace.WithAttributes(
			attribute.String("match.id", matchID),
			attribute.String("sender.id", senderID),
		),
	)
	defer span.End()

	content = strings.TrimSpace(content)
	if content == "" {
		return ErrEmptyMessage
	}
	if s.MaxMessageRunes > 0 && utf8.RuneCountInString(content) > s.MaxMessageRunes {
		return ErrMessageTooLong
	}

	var sent domain.MessageSender
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := repo.GetMatch(ctx, tx, matchID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Debug().Str("match_id", matchID).Msg("message into missing match dropped")
				return nil
			}
			return err
		}

		role := domain.SenderLandlord
		if senderID == m.RenterID {
			role = domain.SenderRenter
		}

		seq, err := repo.NextMessageSeq(tx, matchID)
		if err != nil {
			return err
		}
		msg := &domain.Message{
			MatchID:    matchID,
			Seq:        seq,
			SenderID:   senderID,
			SenderRole: role,
			Content:    content,
			Read:       role == domain.SenderRenter,
		}
		if _, err := repo.CreateMessage(tx, msg); err != nil {
			return err
		}

		now := time.Now().UTC()
		updates := map[string]any{
			"last_message_at": now,
			"updated_at":      now,
		}
		if role == domain.SenderLandlord {
			updates["unread_count"] = gorm.Expr("unread_count + 1")
		}
		if err := repo.UpdateMatchFields(ctx, tx, matchID, updates); err != nil {
			return err
		}
		sent = role
		return nil
	})
	if err != nil {
		return err
	}
	if sent != "" {
		messagesSent.WithLabelValues(string(sent)).Inc()
	}
	return nil
}

// MarkMessagesRead marks the whole thread read from the renter's side and
// zeroes the unread badge. The read flag only ever goes false to true.
func (s *MatchService) MarkMessagesRead(ctx context.Context, matchID string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repo.GetMatch(ctx, tx, matchID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMatchNotFound
			}
			return err
		}
		if _, err := repo.MarkThreadRead(tx, matchID); err != nil {
			return err
		}
		return repo.UpdateMatchFields(ctx, tx, matchID, map[string]any{
			"unread_count": 0,
			"updated_at":   time.Now().UTC(),
		})
	})
}

// ListMessages returns a page of the thread in append order with the total
// for pagination. Internal (agency-facing) notes are excluded unless
// includeInternal is set; the handler layer decides that from the caller's
// role.
func (s *MatchService) ListMessages(ctx context.Context, matchID string, includeInternal bool, page, pageSize int) ([]domain.Message, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 50
	}
	offset := (page - 1) * pageSize

	// Ensure the match exists.
	if _, err := repo.GetMatch(ctx, s.DB, matchID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrMatchNotFound
		}
		return nil, 0, err
	}

	q := s.DB.WithContext(ctx).Model(&domain.Message{}).Where("match_id = ?", matchID)
	if !includeInternal {
		q = q.Where("internal = ?", false)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Message{}, 0, nil
	}

	items, err := repo.ListThreadMessagesPage(s.DB.WithContext(ctx), matchID, includeInternal, offset, pageSize)
	return items, total, err
}

// SetViewingPreference attaches a structured viewing request to the match
// and drops a system-authored summary into the thread, so the landlord sees
// the request in the conversation without a separate notification channel.
// The summary is authored on the renter's behalf: it arrives read and never
// bumps the renter's badge.
func (s *MatchService) SetViewingPreference(ctx context.Context, matchID string, pref domain.ViewingPreference) error {
	tr := otel.Tracer("services/MatchService")
	ctx, span := tr.Start(ctx, "SetViewingPreference",
		trace.WithAttributes(attribute.String("match.id", matchID)),
	)
	defer span.End()

	pref.Flexibility = strings.TrimSpace(pref.Flexibility)
	pref.Notes = strings.TrimSpace(pref.Notes)

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repo.GetMatch(ctx, tx, matchID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMatchNotFound
			}
			return err
		}

		seq, err := repo.NextMessageSeq(tx, matchID)
		if err != nil {
			return err
		}
		msg := &domain.Message{
			MatchID:    matchID,
			Seq:        seq,
			SenderID:   systemSenderID,
			SenderRole: domain.SenderSystem,
			Content:    s.viewingSummary(pref),
			Read:       true,
		}
		if _, err := repo.CreateMessage(tx, msg); err != nil {
			return err
		}

		now := time.Now().UTC()
		return repo.UpdateMatchFields(ctx, tx, matchID, map[string]any{
			"viewing":         &pref,
			"last_message_at": now,
			"updated_at":      now,
		})
	})
}

// viewingSummary renders the structured preference as natural language.
func (s *MatchService) viewingSummary(pref domain.ViewingPreference) string {
	caser := cases.Title(s.summaryLocale())
	label := caser.String(strings.ReplaceAll(pref.Flexibility, "_", " "))
	if label == "" {
		label = "Flexible"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Viewing requested. Availability: %s.", label)
	if len(pref.Slots) > 0 {
		fmt.Fprintf(&b, " Preferred times: %s.", strings.Join(pref.Slots, ", "))
	}
	if pref.Notes != "" {
		fmt.Fprintf(&b, " Note: %s", pref.Notes)
	}
	return b.String()
}

// summaryLocale returns the configured locale for casing or English if unset.
func (s *MatchService) summaryLocale() language.Tag {
	if s.SummaryLocale == language.Und {
		return language.English
	}
	return s.SummaryLocale
}

// ConfirmViewing records a confirmed viewing datetime and raises the
// scheduled flag; both land in one update so the flag never exists without
// its date. Past datetimes are accepted (retroactive data entry), and no
// prior preference is required: confirming without a request is a valid
// path.
func (s *MatchService) ConfirmViewing(ctx context.Context, matchID string, when time.Time) error {
	if _, err := repo.GetMatch(ctx, s.DB, matchID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMatchNotFound
		}
		return err
	}
	return repo.UpdateMatchFields(ctx, s.DB, matchID, map[string]any{
		"has_viewing_scheduled": true,
		"confirmed_viewing_at":  when.UTC(),
		"updated_at":            time.Now().UTC(),
	})
}

// SetTenancyStatus records the tenancy state of a match. Entering active or
// ended unlocks rating for both sides; the unlock is sticky, so winding the
// status back to none never revokes earned eligibility.
func (s *MatchService) SetTenancyStatus(ctx context.Context, matchID string, status domain.TenancyStatus) error {
	switch status {
	case domain.TenancyStatusNone, domain.TenancyStatusActive, domain.TenancyStatusEnded:
	default:
		return ErrInvalidTenancyStatus
	}

	if _, err := repo.GetMatch(ctx, s.DB, matchID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMatchNotFound
		}
		return err
	}

	updates := map[string]any{
		"tenancy_status": status,
		"updated_at":     time.Now().UTC(),
	}
	if status != domain.TenancyStatusNone {
		updates["can_rate"] = true
	}
	return repo.UpdateMatchFields(ctx, s.DB, matchID, updates)
}

// RatingInput carries one side's review of a match.
type RatingInput struct {
	MatchID   string
	RaterID   string
	RaterRole domain.MessageSender
	Stars     int
	Comment   string
}

// SubmitRating persists one party's rating and flips the corresponding
// has-rated flag in a single transaction. Each side rates at most once; the
// flag check is backstopped by the unique index on (match, role). The
// CanRate flag is advisory for clients and deliberately not enforced here.
//
// Errors:
//   - ErrInvalidRating before any persistence when stars fall outside 1..5
//     or the role is neither renter nor landlord.
//   - ErrMatchNotFound when the match does not exist.
//   - ErrAlreadyRated on a repeat submission from the same side.
func (s *MatchService) SubmitRating(ctx context.Context, in RatingInput) error {
	tr := otel.Tracer("services/MatchService")
	ctx, span := tr.Start(ctx, "SubmitRating",
		trace.WithAttributes(
			attribute.String("match.id", in.MatchID),
			attribute.String("rater.role", string(in.RaterRole)),
		),
	)
	defer span.End()

	if in.Stars < 1 || in.Stars > 5 {
		return ErrInvalidRating
	}
	if in.RaterRole != domain.SenderRenter && in.RaterRole != domain.SenderLandlord {
		return ErrInvalidRating
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := repo.GetMatch(ctx, tx, in.MatchID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMatchNotFound
			}
			return err
		}
		if m.RatedBy(in.RaterRole) {
			return ErrAlreadyRated
		}

		r := &domain.Rating{
			MatchID:   in.MatchID,
			RaterID:   in.RaterID,
			RaterRole: in.RaterRole,
			Stars:     in.Stars,
			Comment:   strings.TrimSpace(in.Comment),
		}
		if _, err := repo.CreateRating(ctx, tx, r); err != nil {
			if repo.IsDuplicateErr(err) {
				return ErrAlreadyRated
			}
			return err
		}

		col := "renter_rated"
		if in.RaterRole == domain.SenderLandlord {
			col = "landlord_rated"
		}
		return repo.UpdateMatchFields(ctx, tx, in.MatchID, map[string]any{
			col:          true,
			"updated_at": time.Now().UTC(),
		})
	})
	if err != nil {
		return err
	}
	ratingsSubmitted.Inc()
	return nil
}

// UnreadTotal returns the renter's aggregate unread badge across all their
// matches.
func (s *MatchService) UnreadTotal(ctx context.Context, renterID string) (int64, error) {
	return repo.SumUnreadForRenter(ctx, s.DB, renterID)
}
