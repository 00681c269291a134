package models

import "gorm.io/gorm"

// Project groups tasks under a team
type Project struct {
	gorm.Model
	Name   string `gorm:"not null" json:"name"`
	TeamID uint   `gorm:"not null;index" json:"team_id"`

	// Relations
	Team  Team   `json:"team,omitempty"`
	Tasks []Task `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}
