package repo

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/DavidCraggs/PropertySwipe-sub001/internal/domain"
)

// newMsgRepoDB opens a throwaway file-backed store under t.TempDir. Pass
// models to migrate, or nothing for a bare database.
func newMsgRepoDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "messages.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("migrate: %v", err)
		}
	}
	return db
}

func seedMsgs(t *testing.T, db *gorm.DB, msgs ...domain.Message) {
	t.Helper()
	for i := range msgs {
		if err := db.Create(&msgs[i]).Error; err != nil {
			t.Fatalf("seed %s: %v", msgs[i].ID, err)
		}
	}
}

func TestNextMessageSeq_StartsAtOneAndIncrements(t *testing.T) {
	db := newMsgRepoDB(t, &domain.Message{})

	next, err := NextMessageSeq(db, "mt1")
	if err != nil {
		t.Fatalf("NextMessageSeq on empty thread: %v", err)
	}
	if next != 1 {
		t.Fatalf("empty thread seq = %d, want 1", next)
	}

	// A busy neighbouring thread must not advance mt1's counter.
	seedMsgs(t, db,
		domain.Message{ID: "m1", MatchID: "mt1", Seq: 1, SenderID: "r1", SenderRole: domain.SenderRenter, Content: "x"},
		domain.Message{ID: "m2", MatchID: "mt1", Seq: 2, SenderID: "l1", SenderRole: domain.SenderLandlord, Content: "y"},
		domain.Message{ID: "m9", MatchID: "mt2", Seq: 9, SenderID: "r1", SenderRole: domain.SenderRenter, Content: "z"},
	)

	next, err = NextMessageSeq(db, "mt1")
	if err != nil {
		t.Fatalf("NextMessageSeq: %v", err)
	}
	if next != 3 {
		t.Fatalf("seq = %d, want 3", next)
	}
}

func TestCreateMessage_InsertsAndStampsFields(t *testing.T) {
	db := newMsgRepoDB(t, &domain.Match{}, &domain.Message{})

	// Parent match exists so the insert also passes under FK enforcement.
	if err := db.Create(&domain.Match{ID: "mt1", PropertyID: "p1", LandlordID: "l1", RenterID: "r1"}).Error; err != nil {
		t.Fatalf("seed match: %v", err)
	}

	msg, err := CreateMessage(db, &domain.Message{
		MatchID:    "mt1",
		Seq:        1,
		SenderID:   "l1",
		SenderRole: domain.SenderLandlord,
		Content:    "hello",
	})
	if err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	if msg.ID == "" || msg.MatchID != "mt1" || msg.SenderRole != domain.SenderLandlord || msg.Content != "hello" {
		t.Fatalf("stamped message = %+v", msg)
	}
	if msg.Read {
		t.Fatalf("new messages must start unread: %+v", msg)
	}
	if msg.CreatedAt.IsZero() || time.Since(msg.CreatedAt) > time.Minute {
		t.Fatalf("CreatedAt = %v, want a fresh stamp", msg.CreatedAt)
	}

	got, err := GetMessage(db, msg.ID)
	if err != nil {
		t.Fatalf("GetMessage: %v", err)
	}
	if got.ID != msg.ID {
		t.Fatalf("readback = %+v, want %+v", got, msg)
	}
}

func TestListThreadMessages_OrderLimitAndInternalFilter(t *testing.T) {
	db := newMsgRepoDB(t, &domain.Message{})

	// Shuffled insert order; the query must sort by seq regardless.
	seedMsgs(t, db,
		domain.Message{ID: "b", MatchID: "mt2", Seq: 2, SenderID: "l1", SenderRole: domain.SenderLandlord, Content: "y"},
		domain.Message{ID: "a", MatchID: "mt2", Seq: 1, SenderID: "r1", SenderRole: domain.SenderRenter, Content: "x"},
		domain.Message{ID: "z", MatchID: "mt2", Seq: 4, SenderID: "sys", SenderRole: domain.SenderSystem, Content: "z"},
		domain.Message{ID: "n", MatchID: "mt2", Seq: 3, SenderID: "a1", SenderRole: domain.SenderLandlord, Content: "note", Internal: true},
	)

	// Zero limit returns every renter-visible message; the agency note
	// stays hidden.
	all, err := ListThreadMessages(db, "mt2", false, 0)
	if err != nil {
		t.Fatalf("ListThreadMessages(all): %v", err)
	}
	if len(all) != 3 || all[0].ID != "a" || all[1].ID != "b" || all[2].ID != "z" {
		t.Fatalf("visible thread = %+v", all)
	}

	// includeInternal surfaces the note at its seq position.
	withNotes, err := ListThreadMessages(db, "mt2", true, 0)
	if err != nil {
		t.Fatalf("ListThreadMessages(internal): %v", err)
	}
	if len(withNotes) != 4 || withNotes[2].ID != "n" {
		t.Fatalf("internal-inclusive thread = %+v", withNotes)
	}

	// A positive limit truncates after ordering.
	top2, err := ListThreadMessages(db, "mt2", false, 2)
	if err != nil {
		t.Fatalf("ListThreadMessages(limit): %v", err)
	}
	if len(top2) != 2 || top2[0].ID != "a" || top2[1].ID != "b" {
		t.Fatalf("limited thread = %+v", top2)
	}
}

func TestCountThreadMessages_NoTable(t *testing.T) {
	db := newMsgRepoDB(t)
	if _, err := CountThreadMessages(db, "mtx"); err == nil {
		t.Fatal("want error with no messages table")
	}
}

func TestCountThreadMessages_PerThread(t *testing.T) {
	db := newMsgRepoDB(t, &domain.Message{})

	seedMsgs(t, db,
		domain.Message{ID: "m1", MatchID: "mtx", Seq: 1, SenderID: "r", SenderRole: domain.SenderRenter, Content: "1"},
		domain.Message{ID: "m2", MatchID: "mtx", Seq: 2, SenderID: "l", SenderRole: domain.SenderLandlord, Content: "2"},
		domain.Message{ID: "m3", MatchID: "mty", Seq: 1, SenderID: "r", SenderRole: domain.SenderRenter, Content: "3"},
	)

	total, err := CountThreadMessages(db, "mtx")
	if err != nil {
		t.Fatalf("CountThreadMessages: %v", err)
	}
	if total != 2 {
		t.Fatalf("count = %d, want 2", total)
	}
}

func TestListThreadMessagesPage_Pagination(t *testing.T) {
	db := newMsgRepoDB(t, &domain.Message{})

	// Five messages a..e; offset 1 with limit 2 should return b and c.
	var msgs []domain.Message
	for i := 1; i <= 5; i++ {
		msgs = append(msgs, domain.Message{
			ID:         string(rune('a' + i - 1)),
			MatchID:    "mt3",
			Seq:        i,
			SenderID:   "r1",
			SenderRole: domain.SenderRenter,
			Content:    "x",
		})
	}
	seedMsgs(t, db, msgs...)

	out, err := ListThreadMessagesPage(db, "mt3", false, 1, 2)
	if err != nil {
		t.Fatalf("ListThreadMessagesPage: %v", err)
	}
	if len(out) != 2 || out[0].ID != "b" || out[1].ID != "c" {
		t.Fatalf("page = %+v, want b then c", out)
	}
}

func TestMarkThreadRead_FlipsOnlyOtherSidesUnread(t *testing.T) {
	db := newMsgRepoDB(t, &domain.Message{})

	seedMsgs(t, db,
		domain.Message{ID: "m1", MatchID: "mt4", Seq: 1, SenderID: "l1", SenderRole: domain.SenderLandlord, Content: "a", Read: false},
		domain.Message{ID: "m2", MatchID: "mt4", Seq: 2, SenderID: "l1", SenderRole: domain.SenderLandlord, Content: "b", Read: true},
		domain.Message{ID: "m3", MatchID: "mt4", Seq: 3, SenderID: "r1", SenderRole: domain.SenderRenter, Content: "c", Read: false},
		domain.Message{ID: "m4", MatchID: "mt4", Seq: 4, SenderID: "sys", SenderRole: domain.SenderSystem, Content: "d", Read: false},
		domain.Message{ID: "m5", MatchID: "other", Seq: 1, SenderID: "l1", SenderRole: domain.SenderLandlord, Content: "e", Read: false},
	)

	n, err := MarkThreadRead(db, "mt4")
	if err != nil {
		t.Fatalf("MarkThreadRead: %v", err)
	}
	// m1 (landlord, unread) and m4 (system, unread) flip; m2 already read,
	// m3 is the renter's own message, m5 is another thread.
	if n != 2 {
		t.Fatalf("flipped %d rows, want 2", n)
	}

	var renterOwn domain.Message
	if err := db.First(&renterOwn, "id = ?", "m3").Error; err != nil {
		t.Fatalf("readback m3: %v", err)
	}
	if renterOwn.Read {
		t.Fatal("renter's own message must not be flipped")
	}
	var otherThread domain.Message
	if err := db.First(&otherThread, "id = ?", "m5").Error; err != nil {
		t.Fatalf("readback m5: %v", err)
	}
	if otherThread.Read {
		t.Fatal("other thread must be untouched")
	}
}

func TestGetMessage_FoundAndNotFound(t *testing.T) {
	db := newMsgRepoDB(t, &domain.Message{})

	if _, err := GetMessage(db, "nope"); err == nil {
		t.Fatal("unknown id should fail with record-not-found")
	}

	seedMsgs(t, db, domain.Message{ID: "mid", MatchID: "mt9", Seq: 1, SenderID: "r1", SenderRole: domain.SenderRenter, Content: "hi"})
	got, err := GetMessage(db, "mid")
	if err != nil {
		t.Fatalf("GetMessage: %v", err)
	}
	if got.ID != "mid" || got.MatchID != "mt9" {
		t.Fatalf("fetched message = %+v", got)
	}
}

// The repo functions take whatever *gorm.DB handle the caller holds; a
// context-scoped session must behave identically.
func TestRepoWithContextHandles(t *testing.T) {
	db := newMsgRepoDB(t, &domain.Message{})
	tdb := db.WithContext(context.Background())

	if _, err := CreateMessage(tdb, &domain.Message{MatchID: "mtX", Seq: 1, SenderID: "r1", SenderRole: domain.SenderRenter, Content: "hello"}); err != nil {
		t.Fatalf("CreateMessage with context: %v", err)
	}
	if _, err := ListThreadMessages(tdb, "mtX", false, 10); err != nil {
		t.Fatalf("ListThreadMessages with context: %v", err)
	}
	if _, err := CountThreadMessages(tdb, "mtX"); err != nil {
		t.Fatalf("CountThreadMessages with context: %v", err)
	}
	if _, err := ListThreadMessagesPage(tdb, "mtX", false, 0, 1); err != nil {
		t.Fatalf("ListThreadMessagesPage with context: %v", err)
	}
	if _, err := NextMessageSeq(tdb, "mtX"); err != nil {
		t.Fatalf("NextMessageSeq with context: %v", err)
	}
}
