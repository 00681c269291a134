// Package aggregate computes derived read-models from raw task
// collections. Every function here is pure: identical inputs produce
// identical outputs, and nothing is written back to the store.
package aggregate

import (
	"fmt"
	"math"
	"sort"
	"time"

	"tasknest/models"
)

// CompletionRate returns the percentage of tasks whose status is
// Completed, rounded to two decimals. An empty collection yields 0,
// never NaN.
func CompletionRate(tasks []models.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	completed := 0
	for _, t := range tasks {
		if t.Status == models.StatusCompleted {
			completed++
		}
	}
	rate := float64(completed) / float64(len(tasks)) * 100
	return math.Round(rate*100) / 100
}

// CategoryCount is one entry of the category histogram
type CategoryCount struct {
	Category  string `json:"category"`
	TaskCount int    `json:"taskCount"`
}

// TopCategories groups tasks by category and returns (category, count)
// pairs sorted by count descending. Ties keep first-seen category order,
// so the output is deterministic for a given input ordering.
func TopCategories(tasks []models.Task) []CategoryCount {
	counts := make(map[string]int)
	var order []string
	for _, t := range tasks {
		if _, seen := counts[t.Category]; !seen {
			order = append(order, t.Category)
		}
		counts[t.Category]++
	}

	result := make([]CategoryCount, 0, len(order))
	for _, category := range order {
		result = append(result, CategoryCount{Category: category, TaskCount: counts[category]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TaskCount > result[j].TaskCount
	})
	return result
}

// Rollup holds per-entity task totals. Each rollup is computed from its
// own task collection only; no counts are shared across entities.
type Rollup struct {
	TotalTasks     int     `json:"totalTasks"`
	CompletedTasks int     `json:"completedTasks"`
	CompletionRate float64 `json:"completionRate"`
}

// RollupTasks reduces a task collection to its completion rollup
func RollupTasks(tasks []models.Task) Rollup {
	completed := 0
	for _, t := range tasks {
		if t.Status == models.StatusCompleted {
			completed++
		}
	}
	return Rollup{
		TotalTasks:     len(tasks),
		CompletedTasks: completed,
		CompletionRate: CompletionRate(tasks),
	}
}

// WeekWindow returns the calendar week containing ref: start is the
// Sunday of that week at local midnight, end is the following Saturday.
// The window spans exactly seven calendar days.
func WeekWindow(ref time.Time) (start, end time.Time) {
	y, m, d := ref.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, ref.Location())
	start = day.AddDate(0, 0, -int(day.Weekday()))
	end = start.AddDate(0, 0, 6)
	return start, end
}

// ReportEntry is one task row of a weekly report
type ReportEntry struct {
	Title          string     `json:"title"`
	Status         string     `json:"status"`
	CompletionDate *time.Time `json:"completionDate"`
	Progress       int        `json:"progress"`
}

// WeeklyReport summarizes tasks created in the week containing ref
type WeeklyReport struct {
	UserID    uint          `json:"user"`
	Week      string        `json:"week"`
	WeekStart time.Time     `json:"weekStart"`
	WeekEnd   time.Time     `json:"weekEnd"`
	Tasks     []ReportEntry `json:"tasks"`
}

// BuildWeeklyReport filters tasks whose CreatedAt falls inside the
// calendar week containing ref (inclusive on both ends) and emits one
// entry per task. Completed tasks report their last-updated timestamp as
// the completion date and a progress of 100; everything else reports the
// stored progress with no completion date.
func BuildWeeklyReport(userID uint, tasks []models.Task, ref time.Time) WeeklyReport {
	start, end := WeekWindow(ref)
	exclusive := start.AddDate(0, 0, 7)

	year, week := ref.ISOWeek()
	report := WeeklyReport{
		UserID:    userID,
		Week:      fmt.Sprintf("%d-W%02d", year, week),
		WeekStart: start,
		WeekEnd:   end,
		Tasks:     []ReportEntry{},
	}

	for _, t := range tasks {
		if t.CreatedAt.Before(start) || !t.CreatedAt.Before(exclusive) {
			continue
		}
		entry := ReportEntry{
			Title:    t.Title,
			Status:   t.Status,
			Progress: t.Progress,
		}
		if t.Status == models.StatusCompleted {
			completedAt := t.UpdatedAt
			entry.CompletionDate = &completedAt
			entry.Progress = 100
		}
		report.Tasks = append(report.Tasks, entry)
	}
	return report
}

// Snapshot reduces a user's tasks to the dashboard stats row. The write
// back to the store is the lifecycle manager's job; this only computes.
func Snapshot(userID uint, tasks []models.Task, activeProjects int, now time.Time) models.DashboardStats {
	completed, overdue := 0, 0
	for _, t := range tasks {
		if t.Status == models.StatusCompleted {
			completed++
		}
		if t.IsOverdue(now) {
			overdue++
		}
	}
	return models.DashboardStats{
		UserID:         userID,
		TotalTasks:     len(tasks),
		CompletedTasks: completed,
		OverdueTasks:   overdue,
		CompletionRate: CompletionRate(tasks),
		ActiveProjects: activeProjects,
	}
}
