package service

import (
	"io"
	"log"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tasknest/config"
	"tasknest/models"
	"tasknest/store"
)

// newTestStore opens a throwaway SQLite database with the full schema
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

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// seedUser persists a user directly, skipping the password hashing path
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

// seedTeam creates a team administered by admin and adds the given
// members with MEMBER role
func seedTeam(t *testing.T, st *store.Store, admin *models.User, members ...*models.User) *models.Team {
	t.Helper()
	team := &models.Team{Name: "Platform", AdminID: admin.ID}
	require.NoError(t, st.CreateTeamWithAdmin(team))
	for _, member := range members {
		require.NoError(t, st.AddTeamMember(&models.TeamMember{
			TeamID: team.ID,
			UserID: member.ID,
			Role:   models.RoleMember,
		}))
	}
	return team
}

func validTaskInput() CreateTaskInput {
	return CreateTaskInput{
		Title:     "Write quarterly report",
		StartDate: "2025-03-01",
		DueDate:   "2025-03-10",
		Priority:  "High",
		Category:  "work",
		Status:    models.StatusPending,
	}
}
