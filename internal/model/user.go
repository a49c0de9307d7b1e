package model

import "time"

type User struct {
	Username  string    `gorm:"primaryKey;size:20" json:"username"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Email     string    `gorm:"size:50;not null;uniqueIndex" json:"email"`
	FirstName string    `gorm:"size:30;not null" json:"first_name"`
	LastName  string    `gorm:"size:30;not null" json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}
