package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a remark left by a user on a task
type Comment struct {
	gorm.Model
	TaskID    uint      `gorm:"not null;index" json:"task_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Comment   string    `gorm:"not null;type:text" json:"comment"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`

	// Relations
	Task Task `json:"-"`
	User User `json:"user,omitempty"`
}
