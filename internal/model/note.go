package model

import "time"

// Note belongs to exactly one user. The foreign key restricts deleting a user
// that still owns notes, so account removal has to delete the notes first.
type Note struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"size:100;not null" json:"title"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	OwnerUsername string    `gorm:"size:20;not null;index" json:"owner_username"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Owner *User `gorm:"foreignKey:OwnerUsername;references:Username;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT" json:"-"`
}
