package models

import (
	"time"

	"gorm.io/gorm"
)

// DashboardStats is a per-user snapshot of derived task metrics.
// It is created with zero values at registration and refreshed by the
// task lifecycle after any mutation that could change it.
type DashboardStats struct {
	gorm.Model
	UserID         uint    `gorm:"not null;uniqueIndex" json:"user_id"`
	TotalTasks     int     `gorm:"default:0" json:"total_tasks"`
	CompletedTasks int     `gorm:"default:0" json:"completed_tasks"`
	OverdueTasks   int     `gorm:"default:0" json:"overdue_tasks"`
	CompletionRate float64 `gorm:"default:0" json:"completion_rate"`
	ActiveProjects int     `gorm:"default:0" json:"active_projects"`

	// Relations
	User User `json:"-"`
}

// Recommendation is a suggested task produced by an external suggestion
// mechanism and read back per user
type Recommendation struct {
	gorm.Model
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Title     string    `gorm:"not null" json:"title"`
	Category  string    `gorm:"not null" json:"category"`
	StartDate time.Time `gorm:"not null" json:"start_date"`
	DueDate   time.Time `gorm:"not null" json:"due_date"`

	// Relations
	User User `json:"-"`
}
