package service

import (
	"fmt"
	"log"
	"time"

	"tasknest/aggregate"
	"tasknest/apperr"
	"tasknest/models"
	"tasknest/store"
)

// DashboardService serves the derived read-models: the per-user stats
// snapshot plus on-the-fly rollups and reports
type DashboardService struct {
	Store  *store.Store
	Logger *log.Logger
}

func NewDashboardService(st *store.Store, logger *log.Logger) *DashboardService {
	return &DashboardService{Store: st, Logger: logger}
}

// GetStats returns the user's dashboard snapshot. The snapshot is
// maintained by the task lifecycle; this is a plain read.
func (ds *DashboardService) GetStats(userID uint) (*models.DashboardStats, error) {
	return ds.Store.GetDashboardStats(userID)
}

// ProjectRollup pairs a project name with its completion rollup
type ProjectRollup struct {
	ProjectName string `json:"projectName"`
	aggregate.Rollup
}

// ProjectRollups computes a completion rollup per project reachable
// through the user's team memberships. Counts are never shared across
// projects.
func (ds *DashboardService) ProjectRollups(userID uint) ([]ProjectRollup, error) {
	projects, err := ds.Store.ListProjectsForUser(userID)
	if err != nil {
		return nil, err
	}
	rollups := make([]ProjectRollup, 0, len(projects))
	for _, project := range projects {
		rollups = append(rollups, ProjectRollup{
			ProjectName: project.Name,
			Rollup:      aggregate.RollupTasks(project.Tasks),
		})
	}
	return rollups, nil
}

// TeamRollup pairs a team name with its completion rollup
type TeamRollup struct {
	TeamName string `json:"teamName"`
	aggregate.Rollup
}

// TeamRollups computes a completion rollup per team the user belongs to
func (ds *DashboardService) TeamRollups(userID uint) ([]TeamRollup, error) {
	teams, err := ds.Store.ListTeamsWithTasksForUser(userID)
	if err != nil {
		return nil, err
	}
	rollups := make([]TeamRollup, 0, len(teams))
	for _, team := range teams {
		rollups = append(rollups, TeamRollup{
			TeamName: team.Name,
			Rollup:   aggregate.RollupTasks(team.Tasks),
		})
	}
	return rollups, nil
}

// CompletionRateResult reports a user's created-task completion rate
type CompletionRateResult struct {
	TotalTasks     int    `json:"totalTasks"`
	CompletedTasks int    `json:"completedTasks"`
	CompletionRate string `json:"completionRate"`
}

// CompletionRate computes the completion rate over the user's created
// tasks, formatted as a percentage with two decimals
func (ds *DashboardService) CompletionRate(userID uint) (*CompletionRateResult, error) {
	if exists, err := ds.Store.UserExists(userID); err != nil {
		return nil, err
	} else if !exists {
		return nil, apperr.NotFound(store.KindUser, userID)
	}
	tasks, err := ds.Store.ListTasksByCreator(userID)
	if err != nil {
		return nil, err
	}
	rollup := aggregate.RollupTasks(tasks)
	return &CompletionRateResult{
		TotalTasks:     rollup.TotalTasks,
		CompletedTasks: rollup.CompletedTasks,
		CompletionRate: fmt.Sprintf("%.2f%%", rollup.CompletionRate),
	}, nil
}

// TopCategories returns the user's category histogram, most frequent
// first
func (ds *DashboardService) TopCategories(userID uint) ([]aggregate.CategoryCount, error) {
	tasks, err := ds.Store.ListTasksByCreator(userID)
	if err != nil {
		return nil, err
	}
	return aggregate.TopCategories(tasks), nil
}

// WeeklyReport summarizes the tasks the user created during the week
// containing ref
func (ds *DashboardService) WeeklyReport(userID uint, ref time.Time) (*aggregate.WeeklyReport, error) {
	tasks, err := ds.Store.ListTasksByCreator(userID)
	if err != nil {
		return nil, err
	}
	report := aggregate.BuildWeeklyReport(userID, tasks, ref)
	return &report, nil
}
