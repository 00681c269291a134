package models

import "gorm.io/gorm"

// Notification types
const (
	NotifyTaskAssigned = "task_assigned"
	NotifyTaskComment  = "task_comment"
	NotifyTaskOverdue  = "task_overdue"
	NotifyTeamJoined   = "team_joined"
	NotifyTeamRemoved  = "team_removed"
)

// Notification is a message delivered to a single user as a side effect
// of another action
type Notification struct {
	gorm.Model
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	Message string `gorm:"not null" json:"message"`
	Type    string `gorm:"not null" json:"type"`
	IsRead  bool   `gorm:"default:false" json:"is_read"`

	// Relations
	User User `json:"-"`
}
