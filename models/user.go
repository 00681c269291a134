package models

import (
	"gorm.io/gorm"
)

// User represents a user account in the system
type User struct {
	gorm.Model

	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	// Relations
	Memberships     []TeamMember     `gorm:"foreignKey:UserID" json:"memberships,omitempty"`
	CreatedTasks    []Task           `gorm:"foreignKey:CreatorID" json:"created_tasks,omitempty"`
	Assignments     []TaskAssignment `gorm:"foreignKey:AssignedTo" json:"assignments,omitempty"`
	Comments        []Comment        `gorm:"foreignKey:UserID" json:"comments,omitempty"`
	Notifications   []Notification   `gorm:"foreignKey:UserID" json:"notifications,omitempty"`
	DashboardStats  *DashboardStats  `gorm:"foreignKey:UserID" json:"dashboard_stats,omitempty"`
	Recommendations []Recommendation `gorm:"foreignKey:UserID" json:"recommendations,omitempty"`
}

// Sanitize strips credential material before the user is serialized
func (u *User) Sanitize() {
	u.PasswordHash = ""
}
