package domain

import "time"

// Idempotency records the outcome of a completed request under its
// (user_id, scope_id, key) tuple so a retry with the same Idempotency-Key
// can be answered without re-running side effects. ScopeID is the resource
// the request acted on: a property for interest expressions, a match for
// confirms, messages and viewing updates. ResultID points at whatever the
// operation produced and Status is the HTTP status it returned.
type Idempotency struct {
	ID        string    `gorm:"type:TEXT NOT NULL;primaryKey"`
	UserID    string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_user_scope_key,priority:1"`
	ScopeID   string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_user_scope_key,priority:2"`
	Key       string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_user_scope_key,priority:3"`
	ResultID  string    `gorm:"type:TEXT NOT NULL"`
	Status    int       `gorm:"type:INTEGER NOT NULL"`
	CreatedAt time.Time `gorm:"type:DATETIME NOT NULL;autoCreateTime"`
	ExpiresAt time.Time `gorm:"type:DATETIME NOT NULL;index"`
}

// TableName keeps the table name singular.
func (Idempotency) TableName() string { return "idempotency" }
