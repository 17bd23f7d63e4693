// Package repo persists the domain model through GORM. This file holds the
// Message queries.
package repo

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DavidCraggs/PropertySwipe-sub001/internal/domain"
)

// NextMessageSeq returns the next sequence number for a thread. Call inside
// the same transaction as the insert so concurrent sends cannot collide.
func NextMessageSeq(db *gorm.DB, matchID string) (int, error) {
	var next int
	err := db.Raw("SELECT COALESCE(MAX(seq), 0) + 1 FROM messages WHERE match_id = ?", matchID).Scan(&next).Error
	return next, err
}

// CreateMessage inserts a new message row. A missing ID is filled with a
// UUID and CreatedAt is set to UTC; Seq must already be assigned.
func CreateMessage(db *gorm.DB, m *domain.Message) (*domain.Message, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	return m, db.Create(m).Error
}

// ListThreadMessages returns a thread ordered deterministically (Seq ASC,
// ID ASC). Internal notes are filtered out unless includeInternal is set.
func ListThreadMessages(db *gorm.DB, matchID string, includeInternal bool, limit int) ([]domain.Message, error) {
	var out []domain.Message
	q := db.Where("match_id = ?", matchID).Order("seq ASC, id ASC")
	if !includeInternal {
		q = q.Where("internal = ?", false)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}

// ListThreadMessagesPage returns a paginated slice ordered (Seq ASC, ID ASC).
func ListThreadMessagesPage(db *gorm.DB, matchID string, includeInternal bool, offset, limit int) ([]domain.Message, error) {
	var out []domain.Message
	q := db.
		Where("match_id = ?", matchID).
		Order("seq ASC, id ASC")
	if !includeInternal {
		q = q.Where("internal = ?", false)
	}
	err := q.
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CountThreadMessages counts through raw SQL so a missing table surfaces as
// an error rather than a silent zero.
func CountThreadMessages(db *gorm.DB, matchID string) (int64, error) {
	var total int64
	err := db.Raw("SELECT COUNT(*) FROM messages WHERE match_id = ?", matchID).Scan(&total).Error
	return total, err
}

// MarkThreadRead flips every unread message not authored by the renter to
// read and returns how many rows changed. The Read flag never goes back.
func MarkThreadRead(db *gorm.DB, matchID string) (int64, error) {
	res := db.Model(&domain.Message{}).
		Where("match_id = ? AND sender_role <> ? AND read = ?", matchID, domain.SenderRenter, false).
		Update("read", true)
	return res.RowsAffected, res.Error
}

// GetMessage loads one message, gorm.ErrRecordNotFound when absent.
func GetMessage(db *gorm.DB, id string) (*domain.Message, error) {
	var m domain.Message
	if err := db.Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}
