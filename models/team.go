package models

import "gorm.io/gorm"

// Team roles
const (
	RoleAdmin  = "ADMIN"
	RoleMember = "MEMBER"
)

// Team represents a group of users collaborating on projects and tasks
type Team struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	AdminID     uint   `gorm:"not null;index" json:"admin_id"`

	// Relations
	Admin    User         `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
	Members  []TeamMember `gorm:"foreignKey:TeamID" json:"members,omitempty"`
	Projects []Project    `gorm:"foreignKey:TeamID" json:"projects,omitempty"`
	Tasks    []Task       `gorm:"foreignKey:TeamID" json:"tasks,omitempty"`
}

// TeamMember represents team members and their roles
type TeamMember struct {
	gorm.Model
	TeamID uint   `gorm:"not null;index;uniqueIndex:idx_team_user" json:"team_id"`
	UserID uint   `gorm:"not null;index;uniqueIndex:idx_team_user" json:"user_id"`
	Role   string `gorm:"default:'MEMBER'" json:"role"` // ADMIN, MEMBER

	// Relations
	Team Team `json:"-"`
	User User `json:"-"`
}
