package worker

import (
	"io"
	"log"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tasknest/config"
	"tasknest/models"
	"tasknest/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "tasknest_test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.MigrateDB(db))
	return store.New(db)
}

func seedUser(t *testing.T, st *store.Store, name, email string) *models.User {
	t.Helper()
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: "not-a-real-hash",
		IsActive:     true,
	}
	require.NoError(t, st.CreateUserWithStats(user))
	return user
}

func seedOverdueTask(t *testing.T, st *store.Store, creator *models.User, assignees ...uint) *models.Task {
	t.Helper()
	now := time.Now()
	task := &models.Task{
		Title:     "Ship release notes",
		StartDate: now.AddDate(0, 0, -10),
		DueDate:   now.AddDate(0, 0, -3),
		Priority:  "High",
		Category:  "work",
		Status:    models.StatusPending,
		CreatorID: creator.ID,
	}
	require.NoError(t, st.CreateTaskWithAssignments(task, assignees, creator.ID))
	return task
}

func TestSweepNotifiesAndRefreshesStats(t *testing.T) {
	st := newTestStore(t)
	creator := seedUser(t, st, "Ana", "ana@example.com")
	assignee := seedUser(t, st, "Ben", "ben@example.com")
	seedOverdueTask(t, st, creator, assignee.ID)

	ow := NewOverdueWorker(st, log.New(io.Discard, "", 0))
	ow.sweepOverdueTasks()

	for _, userID := range []uint{creator.ID, assignee.ID} {
		notifications, err := st.ListNotifications(userID)
		require.NoError(t, err)
		require.Len(t, notifications, 1)
		assert.Equal(t, models.NotifyTaskOverdue, notifications[0].Type)
	}

	// The creator's snapshot reflects the overdue task without waiting
	// for a task mutation
	stats, err := st.GetDashboardStats(creator.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalTasks)
	assert.Equal(t, 1, stats.OverdueTasks)
}

func TestSweepDoesNotDuplicateNotifications(t *testing.T) {
	st := newTestStore(t)
	creator := seedUser(t, st, "Ana", "ana@example.com")
	seedOverdueTask(t, st, creator)

	ow := NewOverdueWorker(st, log.New(io.Discard, "", 0))
	ow.sweepOverdueTasks()
	ow.sweepOverdueTasks()

	notifications, err := st.ListNotifications(creator.ID)
	require.NoError(t, err)
	assert.Len(t, notifications, 1)
}

func TestSweepSkipsFinishedTasks(t *testing.T) {
	st := newTestStore(t)
	creator := seedUser(t, st, "Ana", "ana@example.com")
	task := seedOverdueTask(t, st, creator)
	task.Status = models.StatusCompleted
	require.NoError(t, st.UpdateTask(task))

	ow := NewOverdueWorker(st, log.New(io.Discard, "", 0))
	ow.sweepOverdueTasks()

	notifications, err := st.ListNotifications(creator.ID)
	require.NoError(t, err)
	assert.Empty(t, notifications)
}
