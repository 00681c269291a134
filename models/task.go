package models

import (
	"time"

	"gorm.io/gorm"
)

// Task statuses. Stored as free-form strings; transitions are not
// constrained beyond these well-known values.
const (
	StatusPending    = "Pending"
	StatusInProgress = "InProgress"
	StatusCompleted  = "Completed"
	StatusCancelled  = "Cancelled"
)

// Task represents a unit of work created by a user, optionally scoped
// to a team and/or project
type Task struct {
	gorm.Model
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	StartDate   time.Time `gorm:"not null" json:"start_date"`
	DueDate     time.Time `gorm:"not null" json:"due_date"`
	Priority    string    `gorm:"not null" json:"priority"`
	Category    string    `gorm:"not null;index" json:"category"`
	Status      string    `gorm:"not null;index" json:"status"`
	Progress    int       `gorm:"default:0" json:"progress"` // 0-100

	CreatorID uint  `gorm:"not null;index" json:"creator_id"`
	TeamID    *uint `gorm:"index" json:"team_id,omitempty"`
	ProjectID *uint `gorm:"index" json:"project_id,omitempty"`

	// Relations
	Creator     User             `gorm:"foreignKey:CreatorID" json:"-"`
	Team        *Team            `json:"team,omitempty"`
	Project     *Project         `json:"project,omitempty"`
	Assignments []TaskAssignment `gorm:"foreignKey:TaskID" json:"assignments,omitempty"`
	Comments    []Comment        `gorm:"foreignKey:TaskID" json:"comments,omitempty"`
}

// IsOverdue reports whether the task is past its due date and not done
func (t *Task) IsOverdue(now time.Time) bool {
	return t.Status != StatusCompleted && t.Status != StatusCancelled && t.DueDate.Before(now)
}

// TaskAssignment binds a task to an assignee. A task may carry several
// assignments, but the same user cannot be assigned twice.
type TaskAssignment struct {
	gorm.Model
	TaskID     uint `gorm:"not null;index;uniqueIndex:idx_task_assignee" json:"task_id"`
	AssignedBy uint `gorm:"not null;index" json:"assigned_by"`
	AssignedTo uint `gorm:"not null;index;uniqueIndex:idx_task_assignee" json:"assigned_to"`

	// Relations
	Task           Task `json:"-"`
	AssignedByUser User `gorm:"foreignKey:AssignedBy" json:"assigned_by_user,omitempty"`
	AssignedToUser User `gorm:"foreignKey:AssignedTo" json:"assigned_to_user,omitempty"`
}
