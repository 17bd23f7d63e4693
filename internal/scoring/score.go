// Package scoring computes the renter/property compatibility score shown to
// landlords alongside each pending interest. It is intentionally small and
// dependency-free, but engineered with production-grade ergonomics:
//
//   - No logging in the library (callers decide how/what to log)
//   - Clear, documented weights and functional options (Option pattern)
//   - Deterministic output: same inputs always produce the same score
//   - Scores are display metadata only; they never gate matching
//
// The score starts from a neutral baseline and applies additive adjustments
// for affordability (rent against the renter's income band), pet policy,
// smoking policy, and move-in alignment, then clamps to [0,100].
package scoring

import (
	"strings"
	"time"

	"github.com/DavidCraggs/PropertySwipe-sub001/internal/domain"
)

// ----------------------------------------------------------------------------
// Options

type Option func(*config)

type config struct {
	baseline    int
	petFeatures map[string]struct{}
}

func defaultConfig() config {
	return config{
		baseline: 50,
		petFeatures: map[string]struct{}{
			"pets_allowed":    {},
			"pet_friendly":    {},
			"pets_considered": {},
		},
	}
}

// WithBaseline overrides the neutral starting score (default 50).
func WithBaseline(n int) Option {
	return func(c *config) {
		if n >= 0 && n <= 100 {
			c.baseline = n
		}
	}
}

// WithPetFeatures replaces the set of feature strings treated as
// pet-friendly. Inputs are normalized the same way listing features are.
func WithPetFeatures(features []string) Option {
	return func(c *config) {
		m := make(map[string]struct{}, len(features))
		for _, f := range features {
			if n := normalizeFeature(f); n != "" {
				m[n] = struct{}{}
			}
		}
		if len(m) > 0 {
			c.petFeatures = m
		}
	}
}

// ----------------------------------------------------------------------------
// Scorer

// Scorer computes compatibility scores with a fixed configuration. The zero
// cost of construction makes it safe to build one per service instance and
// share across goroutines (it is immutable after New).
type Scorer struct {
	cfg config
}

// New builds a Scorer, applying any options over the defaults.
func New(opts ...Option) *Scorer {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return &Scorer{cfg: cfg}
}

// Score computes the compatibility score for a renter profile against a
// listing. A nil profile scores the bare baseline: nothing is known about
// the renter, so no adjustment applies.
func (s *Scorer) Score(p *domain.Property, r *domain.RenterProfile) int {
	score := s.cfg.baseline
	if p == nil {
		return clamp(score)
	}
	if r != nil {
		score += affordabilityAdjustment(p.Rent, r.IncomeBand)
		score += petAdjustment(p.Features, r.HasPets, s.cfg.petFeatures)
		score += smokerAdjustment(p.Features, r.Smoker)
		score += moveInAdjustment(p.AvailableFrom, r.MoveInDate)
	}
	return clamp(score)
}

// Score computes the compatibility score with the default configuration.
func Score(p *domain.Property, r *domain.RenterProfile) int {
	return defaultScorer.Score(p, r)
}

var defaultScorer = New()

// ----------------------------------------------------------------------------
// Adjustments

// incomeBandMidpoints maps the recognized income band labels to an assumed
// monthly income. Unrecognized bands contribute no adjustment.
var incomeBandMidpoints = map[string]int{
	"under_1000": 800,
	"1000_1500":  1250,
	"1500_2000":  1750,
	"2000_3000":  2500,
	"3000_4500":  3750,
	"over_4500":  5500,
}

func affordabilityAdjustment(rent int, band string) int {
	if rent <= 0 {
		return 0
	}
	income, ok := incomeBandMidpoints[normalizeFeature(band)]
	if !ok || income <= 0 {
		return 0
	}
	ratio := float64(rent) / float64(income)
	switch {
	case ratio <= 0.25:
		return 25
	case ratio <= 0.35:
		return 15
	case ratio <= 0.45:
		return 5
	default:
		return -20
	}
}

func petAdjustment(features []string, hasPets bool, petFeatures map[string]struct{}) int {
	if !hasPets {
		return 0
	}
	for _, f := range features {
		if _, ok := petFeatures[normalizeFeature(f)]; ok {
			return 10
		}
	}
	return -15
}

func smokerAdjustment(features []string, smoker bool) int {
	if !smoker {
		return 0
	}
	for _, f := range features {
		if normalizeFeature(f) == "smoking_allowed" {
			return 0
		}
	}
	return -10
}

// moveInAdjustment rewards a move-in date on or after the listing becomes
// available and penalizes one requiring the property well before then.
func moveInAdjustment(availableFrom, moveIn *time.Time) int {
	if moveIn == nil {
		return 0
	}
	if availableFrom == nil {
		// Listing is available now; any concrete move-in date works.
		return 10
	}
	if !moveIn.Before(*availableFrom) {
		return 10
	}
	if availableFrom.Sub(*moveIn) <= 14*24*time.Hour {
		return 0
	}
	return -10
}

// ----------------------------------------------------------------------------
// Helpers

func normalizeFeature(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, " ", "_")
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
