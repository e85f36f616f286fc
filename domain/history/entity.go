// Package history defines the persisted record of calculator computations.
package history

import "time"

// Entry is one evaluated computation of a calculator session.
type Entry struct {
	ID         string    `gorm:"primarykey;size:36" json:"id"`
	SessionID  string    `gorm:"size:36;not null;index:idx_history_session_created,priority:1" json:"session_id"`
	Token      string    `gorm:"size:8;not null" json:"token"`
	Expression string    `gorm:"size:200;not null" json:"expression"`
	Result     string    `gorm:"size:64;not null" json:"result"`
	Failed     bool      `gorm:"not null;default:false" json:"failed"`
	CreatedAt  time.Time `gorm:"index:idx_history_session_created,priority:2" json:"created_at"`
}

// TableName returns the table name for Entry.
func (Entry) TableName() string {
	return "history_entries"
}

// DeletedSession marks a session whose history is closed. Computations
// for it that arrive after deletion are not recorded.
type DeletedSession struct {
	SessionID string    `gorm:"primarykey;size:36" json:"session_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

// TableName returns the table name for DeletedSession.
func (DeletedSession) TableName() string {
	return "deleted_sessions"
}
