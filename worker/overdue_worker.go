package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"tasknest/aggregate"
	"tasknest/models"
	"tasknest/store"
)

// OverdueWorker periodically scans for tasks past their due date,
// notifies the creator and every assignee, and refreshes the creators'
// dashboard snapshots so the overdue count stays current between task
// mutations. A task produces at most one overdue notification per
// recipient.
type OverdueWorker struct {
	Store  *store.Store
	Logger *log.Logger
}

func NewOverdueWorker(st *store.Store, logger *log.Logger) *OverdueWorker {
	return &OverdueWorker{
		Store:  st,
		Logger: logger,
	}
}

func (ow *OverdueWorker) Start(ctx context.Context) {
	// Initial delay to let the server start up
	time.Sleep(10 * time.Second)

	ow.Logger.Println("Overdue worker started")

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			ow.Logger.Println("Overdue worker shutting down...")
			return
		case <-ticker.C:
			ow.sweepOverdueTasks()
		}
	}
}

func (ow *OverdueWorker) sweepOverdueTasks() {
	now := time.Now()
	tasks, err := ow.Store.ListOverdueTasks(now)
	if err != nil {
		ow.Logger.Printf("Error fetching overdue tasks: %v", err)
		return
	}

	creators := make(map[uint]struct{})
	for _, task := range tasks {
		if err := ow.notifyOverdue(task); err != nil {
			ow.Logger.Printf("Error notifying overdue task %d: %v", task.ID, err)
		}
		creators[task.CreatorID] = struct{}{}
	}

	for creatorID := range creators {
		if err := ow.refreshStats(creatorID, now); err != nil {
			ow.Logger.Printf("Error refreshing stats for user %d: %v", creatorID, err)
		}
	}
}

// refreshStats recomputes the creator's dashboard snapshot so the
// overdue count reflects the sweep
func (ow *OverdueWorker) refreshStats(userID uint, now time.Time) error {
	tasks, err := ow.Store.ListTasksByCreator(userID)
	if err != nil {
		return err
	}
	activeProjects, err := ow.Store.CountProjectsForUser(userID)
	if err != nil {
		return err
	}
	snapshot := aggregate.Snapshot(userID, tasks, activeProjects, now)
	return ow.Store.SaveDashboardStats(&snapshot)
}

func (ow *OverdueWorker) notifyOverdue(task models.Task) error {
	recipients := []uint{task.CreatorID}
	assignees, err := ow.Store.ListAssigneeIDs(task.ID)
	if err != nil {
		return err
	}
	for _, assigneeID := range assignees {
		if assigneeID != task.CreatorID {
			recipients = append(recipients, assigneeID)
		}
	}

	message := fmt.Sprintf("Task %q is overdue (due %s)", task.Title, task.DueDate.Format("2006-01-02"))
	for _, userID := range recipients {
		exists, err := ow.Store.HasNotification(userID, models.NotifyTaskOverdue, message)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		notification := &models.Notification{
			UserID:  userID,
			Message: message,
			Type:    models.NotifyTaskOverdue,
		}
		if err := ow.Store.CreateNotification(notification); err != nil {
			return err
		}
	}
	return nil
}
