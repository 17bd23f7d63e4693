package scoring

import (
	"testing"
	"time"

	"github.com/DavidCraggs/PropertySwipe-sub001/internal/domain"
)

func TestScore_NilInputsYieldBaseline(t *testing.T) {
	if got := Score(nil, nil); got != 50 {
		t.Fatalf("Score(nil, nil) = %d; want 50", got)
	}
	p := &domain.Property{Rent: 900}
	if got := Score(p, nil); got != 50 {
		t.Fatalf("Score(p, nil) = %d; want 50", got)
	}
}

func TestScore_AffordabilityTiers(t *testing.T) {
	cases := []struct {
		name string
		rent int
		band string
		want int
	}{
		{"very affordable", 600, "2000_3000", 75},  // ratio 0.24 -> +25
		{"affordable", 850, "2000_3000", 65},       // ratio 0.34 -> +15
		{"stretch", 1100, "2000_3000", 55},         // ratio 0.44 -> +5
		{"unaffordable", 1600, "2000_3000", 30},    // ratio 0.64 -> -20
		{"unknown band", 1600, "six figures", 50},  // no adjustment
		{"missing band", 1600, "", 50},             // no adjustment
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := &domain.Property{Rent: c.rent}
			r := &domain.RenterProfile{IncomeBand: c.band}
			if got := Score(p, r); got != c.want {
				t.Fatalf("Score = %d; want %d", got, c.want)
			}
		})
	}
}

func TestScore_PetPolicy(t *testing.T) {
	withPets := &domain.RenterProfile{HasPets: true}

	friendly := &domain.Property{Features: []string{"Garden", "Pets Allowed"}}
	if got := Score(friendly, withPets); got != 60 {
		t.Fatalf("pet-friendly score = %d; want 60", got)
	}

	strict := &domain.Property{Features: []string{"Garden"}}
	if got := Score(strict, withPets); got != 35 {
		t.Fatalf("no-pets score = %d; want 35", got)
	}

	// Renter without pets is unaffected either way.
	if got := Score(strict, &domain.RenterProfile{}); got != 50 {
		t.Fatalf("petless renter score = %d; want 50", got)
	}
}

func TestScore_SmokerPenalty(t *testing.T) {
	smoker := &domain.RenterProfile{Smoker: true}

	if got := Score(&domain.Property{}, smoker); got != 40 {
		t.Fatalf("smoker on default listing = %d; want 40", got)
	}
	allowed := &domain.Property{Features: []string{"smoking allowed"}}
	if got := Score(allowed, smoker); got != 50 {
		t.Fatalf("smoker on permissive listing = %d; want 50", got)
	}
}

func TestScore_MoveInAlignment(t *testing.T) {
	avail := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	day := func(d time.Time) *time.Time { return &d }

	cases := []struct {
		name   string
		avail  *time.Time
		moveIn *time.Time
		want   int
	}{
		{"no move-in date", &avail, nil, 50},
		{"aligned", &avail, day(avail.AddDate(0, 0, 7)), 60},
		{"slightly early", &avail, day(avail.AddDate(0, 0, -10)), 50},
		{"far too early", &avail, day(avail.AddDate(0, -2, 0)), 40},
		{"available now", nil, day(avail), 60},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := &domain.Property{AvailableFrom: c.avail}
			r := &domain.RenterProfile{MoveInDate: c.moveIn}
			if got := Score(p, r); got != c.want {
				t.Fatalf("Score = %d; want %d", got, c.want)
			}
		})
	}
}

func TestScore_ClampsToRange(t *testing.T) {
	// Stack every penalty: unaffordable, pets refused, smoker, far-early move-in.
	avail := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	moveIn := avail.AddDate(0, -3, 0)
	p := &domain.Property{Rent: 2400, AvailableFrom: &avail}
	r := &domain.RenterProfile{
		IncomeBand: "under_1000",
		HasPets:    true,
		Smoker:     true,
		MoveInDate: &moveIn,
	}
	if got := Score(p, r); got != 0 {
		t.Fatalf("stacked penalties = %d; want clamp to 0", got)
	}

	// Stack bonuses over a high baseline.
	s := New(WithBaseline(90))
	cheap := &domain.Property{Rent: 500, Features: []string{"pets_allowed"}}
	keen := &domain.RenterProfile{IncomeBand: "over_4500", HasPets: true}
	if got := s.Score(cheap, keen); got != 100 {
		t.Fatalf("stacked bonuses = %d; want clamp to 100", got)
	}
}

func TestScore_Deterministic(t *testing.T) {
	p := &domain.Property{Rent: 950, Features: []string{"pets_allowed", "garden"}}
	r := &domain.RenterProfile{IncomeBand: "2000_3000", HasPets: true}
	first := Score(p, r)
	for i := 0; i < 5; i++ {
		if got := Score(p, r); got != first {
			t.Fatalf("score changed between calls: %d vs %d", got, first)
		}
	}
}

func TestScorer_WithPetFeatures(t *testing.T) {
	s := New(WithPetFeatures([]string{"Animals OK"}))
	p := &domain.Property{Features: []string{"animals ok"}}
	r := &domain.RenterProfile{HasPets: true}
	if got := s.Score(p, r); got != 60 {
		t.Fatalf("custom pet feature score = %d; want 60", got)
	}
}
