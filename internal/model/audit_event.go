package model

import "time"

const (
	ActionUserRegistered = "user.registered"
	ActionUserLoggedIn   = "user.logged_in"
	ActionUserLoggedOut  = "user.logged_out"
	ActionUserDeleted    = "user.deleted"
	ActionNoteCreated    = "note.created"
	ActionNoteUpdated    = "note.updated"
	ActionNoteDeleted    = "note.deleted"
)

// AuditEvent is an append-only record of an account or note lifecycle change.
// It carries no foreign key so it outlives the user it mentions.
type AuditEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:20;not null;index" json:"username"`
	Action    string    `gorm:"size:32;not null;index" json:"action"`
	NoteID    uint      `gorm:"not null;default:0" json:"note_id"`
	CreatedAt time.Time `json:"created_at"`
}
