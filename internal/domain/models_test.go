package domain

import (
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDomainDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:domain_models?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("sqlite: %v", err)
	}
	// Cascade deletes need the pragma switched on.
	db.Exec("PRAGMA foreign_keys=ON;")
	return db
}

func TestTableNames(t *testing.T) {
	if (Property{}).TableName() != "properties" {
		t.Fatalf("Property.TableName() = %q; want %q", (Property{}).TableName(), "properties")
	}
	if (Interest{}).TableName() != "interests" {
		t.Fatalf("Interest.TableName() = %q; want %q", (Interest{}).TableName(), "interests")
	}
	if (Match{}).TableName() != "matches" {
		t.Fatalf("Match.TableName() = %q; want %q", (Match{}).TableName(), "matches")
	}
	if (Message{}).TableName() != "messages" {
		t.Fatalf("Message.TableName() = %q; want %q", (Message{}).TableName(), "messages")
	}
	if (Rating{}).TableName() != "ratings" {
		t.Fatalf("Rating.TableName() = %q; want %q", (Rating{}).TableName(), "ratings")
	}
}

func TestMigrations_Indexes_AndCascades(t *testing.T) {
	db := newDomainDB(t)

	if err := db.AutoMigrate(&Property{}, &Interest{}, &Match{}, &Message{}, &Rating{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	m := db.Migrator()

	// every model owns a table
	for _, tbl := range []any{&Property{}, &Interest{}, &Match{}, &Message{}, &Rating{}} {
		if !m.HasTable(tbl) {
			t.Fatalf("expected table for %T to exist", tbl)
		}
	}

	// tag-declared indexes materialized
	if !m.HasIndex(&Property{}, "idx_property_landlord") {
		t.Fatalf("expected index idx_property_landlord on properties")
	}
	if !m.HasIndex(&Interest{}, "idx_interest_pair") {
		t.Fatalf("expected index idx_interest_pair on interests")
	}
	if !m.HasIndex(&Message{}, "idx_match_msgs") {
		t.Fatalf("expected index idx_match_msgs on messages")
	}
	if !m.HasIndex(&Rating{}, "ux_rating_match_role") {
		t.Fatalf("expected unique index ux_rating_match_role on ratings")
	}

	// Seed a property, a match over it, two messages, and one rating
	now := time.Now().UTC()

	p := &Property{ID: "p1", LandlordID: "l1", AddressLine: "12 Harbour St", Rent: 1200, Available: true, CreatedAt: now, UpdatedAt: now}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("insert property: %v", err)
	}

	mt := &Match{
		ID: "mt1", PropertyID: "p1", LandlordID: "l1", RenterID: "r1",
		Property: p.Snapshot(), TenancyStatus: TenancyStatusNone,
		LastMessageAt: now, CreatedAt: now, UpdatedAt: now,
	}
	if err := db.Create(mt).Error; err != nil {
		t.Fatalf("insert match: %v", err)
	}

	m1 := &Message{ID: "m1", MatchID: "mt1", Seq: 1, SenderID: "l1", SenderRole: SenderLandlord, Content: "hello", CreatedAt: now}
	m2 := &Message{ID: "m2", MatchID: "mt1", Seq: 2, SenderID: "r1", SenderRole: SenderRenter, Content: "hi", Read: true, CreatedAt: now.Add(time.Second)}
	if err := db.Create(m1).Error; err != nil {
		t.Fatalf("insert m1: %v", err)
	}
	if err := db.Create(m2).Error; err != nil {
		t.Fatalf("insert m2: %v", err)
	}

	rt := &Rating{ID: "rt1", MatchID: "mt1", RaterID: "r1", RaterRole: SenderRenter, Stars: 5, CreatedAt: now}
	if err := db.Create(rt).Error; err != nil {
		t.Fatalf("insert rating: %v", err)
	}

	// Unique index: a second renter-side rating on the same match must fail
	dup := &Rating{ID: "rt2", MatchID: "mt1", RaterID: "r1", RaterRole: SenderRenter, Stars: 3, CreatedAt: now}
	if err := db.Create(dup).Error; err == nil {
		t.Fatalf("expected unique violation on (match_id, rater_role)")
	}

	// CASCADE: deleting the match should delete its messages and ratings
	if err := db.Delete(&Match{}, "id = ?", "mt1").Error; err != nil {
		t.Fatalf("delete match: %v", err)
	}
	var cnt int64
	if err := db.Model(&Message{}).Where("match_id = ?", "mt1").Count(&cnt).Error; err != nil {
		t.Fatalf("count messages after match delete: %v", err)
	}
	if cnt != 0 {
		t.Fatalf("expected messages to cascade-delete when match deleted, got count=%d", cnt)
	}
	if err := db.Model(&Rating{}).Where("match_id = ?", "mt1").Count(&cnt).Error; err != nil {
		t.Fatalf("count ratings after match delete: %v", err)
	}
	if cnt != 0 {
		t.Fatalf("expected ratings to cascade-delete when match deleted, got count=%d", cnt)
	}
}

func TestSnapshot_CopiesListingFields(t *testing.T) {
	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	p := &Property{
		ID: "p1", LandlordID: "l1",
		AddressLine: "4 Rose Lane", City: "Leeds", Postcode: "LS1 4AB",
		Rent: 950, Bedrooms: 2, Bathrooms: 1, PropertyType: "flat",
		Furnished: true, Available: true, AvailableFrom: &from,
		Images: []string{"a.jpg"}, Features: []string{"garden"},
	}
	s := p.Snapshot()
	if s.LandlordID != "l1" || s.AddressLine != "4 Rose Lane" || s.Rent != 950 {
		t.Fatalf("snapshot mismatch: %+v", s)
	}
	if s.AvailableFrom == nil || !s.AvailableFrom.Equal(from) {
		t.Fatalf("snapshot AvailableFrom = %v; want %v", s.AvailableFrom, from)
	}
	if len(s.Images) != 1 || len(s.Features) != 1 {
		t.Fatalf("snapshot slices not copied: %+v", s)
	}
}

func TestInterest_TerminalAndExpiry(t *testing.T) {
	now := time.Now().UTC()

	pending := &Interest{Status: InterestStatusPending, ExpiresAt: now.Add(time.Hour)}
	if pending.Terminal() {
		t.Fatalf("pending interest must not be terminal")
	}
	if pending.ExpiredBy(now) {
		t.Fatalf("interest with future ExpiresAt must not be expired")
	}
	if !pending.ExpiredBy(now.Add(2 * time.Hour)) {
		t.Fatalf("interest past ExpiresAt must read as expired")
	}

	liked := &Interest{Status: InterestStatusLiked, ExpiresAt: now.Add(-time.Hour)}
	if !liked.Terminal() {
		t.Fatalf("liked interest must be terminal")
	}
	if liked.ExpiredBy(now) {
		t.Fatalf("reviewed interests never expire")
	}
}

func TestMatch_RatedBy(t *testing.T) {
	m := &Match{RenterRated: true}
	if !m.RatedBy(SenderRenter) {
		t.Fatalf("RatedBy(renter) = false; want true")
	}
	if m.RatedBy(SenderLandlord) {
		t.Fatalf("RatedBy(landlord) = true; want false")
	}
	if m.RatedBy(SenderSystem) {
		t.Fatalf("RatedBy(system) must always be false")
	}
}

func TestProperty_Claimed(t *testing.T) {
	if (&Property{}).Claimed() {
		t.Fatalf("property without landlord must be unclaimed")
	}
	if !(&Property{LandlordID: "l1"}).Claimed() {
		t.Fatalf("property with landlord must be claimed")
	}
}
