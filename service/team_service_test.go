package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasknest/apperr"
	"tasknest/models"
)

func TestCreateTeamMakesActorAdmin(t *testing.T) {
	st := newTestStore(t)
	ts := NewTeamService(st, testLogger())
	actor := seedUser(t, st, "Ana", "ana@example.com")

	team, err := ts.CreateTeam(actor, "Platform", "infra work")
	require.NoError(t, err)
	assert.Equal(t, actor.ID, team.AdminID)

	member, err := st.GetTeamMember(team.ID, actor.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, member.Role)

	teams, err := ts.ListTeams(actor)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, team.ID, teams[0].ID)
}

func TestCreateTeamRequiresName(t *testing.T) {
	st := newTestStore(t)
	ts := NewTeamService(st, testLogger())
	actor := seedUser(t, st, "Ana", "ana@example.com")

	_, err := ts.CreateTeam(actor, "  ", "")
	var v *apperr.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "name", v.Field)
}

func TestAddMemberAdminOnly(t *testing.T) {
	st := newTestStore(t)
	ts := NewTeamService(st, testLogger())
	admin := seedUser(t, st, "Ana", "ana@example.com")
	member := seedUser(t, st, "Ben", "ben@example.com")
	outsider := seedUser(t, st, "Cleo", "cleo@example.com")

	team, err := ts.CreateTeam(admin, "Platform", "")
	require.NoError(t, err)

	_, err = ts.AddMember(member, team.ID, outsider.ID, "")
	assert.True(t, apperr.IsForbidden(err, apperr.ReasonNotAdmin))

	added, err := ts.AddMember(admin, team.ID, member.ID, "")
	require.NoError(t, err)
	assert.Equal(t, models.RoleMember, added.Role)

	notifications, err := st.ListNotifications(member.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotifyTeamJoined, notifications[0].Type)
}

func TestAddMemberTwiceIsConflict(t *testing.T) {
	st := newTestStore(t)
	ts := NewTeamService(st, testLogger())
	admin := seedUser(t, st, "Ana", "ana@example.com")
	member := seedUser(t, st, "Ben", "ben@example.com")

	team, err := ts.CreateTeam(admin, "Platform", "")
	require.NoError(t, err)
	_, err = ts.AddMember(admin, team.ID, member.ID, "")
	require.NoError(t, err)

	_, err = ts.AddMember(admin, team.ID, member.ID, "")
	assert.True(t, apperr.IsConflict(err))
}

func TestAddMemberUnknownUser(t *testing.T) {
	st := newTestStore(t)
	ts := NewTeamService(st, testLogger())
	admin := seedUser(t, st, "Ana", "ana@example.com")

	team, err := ts.CreateTeam(admin, "Platform", "")
	require.NoError(t, err)

	_, err = ts.AddMember(admin, team.ID, 9999, "")
	assert.True(t, apperr.IsNotFound(err))
}

func TestRemoveMember(t *testing.T) {
	st := newTestStore(t)
	ts := NewTeamService(st, testLogger())
	admin := seedUser(t, st, "Ana", "ana@example.com")
	member := seedUser(t, st, "Ben", "ben@example.com")

	team, err := ts.CreateTeam(admin, "Platform", "")
	require.NoError(t, err)
	_, err = ts.AddMember(admin, team.ID, member.ID, "")
	require.NoError(t, err)

	require.NoError(t, ts.RemoveMember(admin, team.ID, member.ID))

	_, err = st.GetTeamMember(team.ID, member.ID)
	assert.True(t, apperr.IsNotFound(err))

	notifications, err := st.ListNotifications(member.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	types := []string{notifications[0].Type, notifications[1].Type}
	assert.Contains(t, types, models.NotifyTeamRemoved)
	assert.Contains(t, types, models.NotifyTeamJoined)

	// Removing again finds no membership
	err = ts.RemoveMember(admin, team.ID, member.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestRemoveMemberCannotRemoveAdmin(t *testing.T) {
	st := newTestStore(t)
	ts := NewTeamService(st, testLogger())
	tasks := NewTaskService(st, testLogger())
	admin := seedUser(t, st, "Ana", "ana@example.com")

	team, err := ts.CreateTeam(admin, "Platform", "")
	require.NoError(t, err)

	err = ts.RemoveMember(admin, team.ID, admin.ID)
	var v *apperr.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "userId", v.Field)

	// The admin's membership row survives and still grants team-scoped
	// task creation
	member, err := st.GetTeamMember(team.ID, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, member.Role)

	in := validTaskInput()
	in.TeamID = &team.ID
	_, err = tasks.CreateTask(admin, in)
	assert.NoError(t, err)
}

func TestUpdateTeamAdminOnly(t *testing.T) {
	st := newTestStore(t)
	ts := NewTeamService(st, testLogger())
	admin := seedUser(t, st, "Ana", "ana@example.com")
	member := seedUser(t, st, "Ben", "ben@example.com")

	team, err := ts.CreateTeam(admin, "Platform", "")
	require.NoError(t, err)
	_, err = ts.AddMember(admin, team.ID, member.ID, "")
	require.NoError(t, err)

	_, err = ts.UpdateTeam(member, team.ID, "Renamed", "")
	assert.True(t, apperr.IsForbidden(err, apperr.ReasonNotAdmin))

	updated, err := ts.UpdateTeam(admin, team.ID, "Renamed", "new goal")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "new goal", updated.Description)
}

func TestDeleteTeamRemovesMemberships(t *testing.T) {
	st := newTestStore(t)
	ts := NewTeamService(st, testLogger())
	admin := seedUser(t, st, "Ana", "ana@example.com")
	member := seedUser(t, st, "Ben", "ben@example.com")

	team, err := ts.CreateTeam(admin, "Platform", "")
	require.NoError(t, err)
	_, err = ts.AddMember(admin, team.ID, member.ID, "")
	require.NoError(t, err)

	err = ts.DeleteTeam(member, team.ID)
	assert.True(t, apperr.IsForbidden(err, apperr.ReasonNotAdmin))

	require.NoError(t, ts.DeleteTeam(admin, team.ID))
	_, err = st.GetTeamByID(team.ID)
	assert.True(t, apperr.IsNotFound(err))
	_, err = st.GetTeamMember(team.ID, member.ID)
	assert.True(t, apperr.IsNotFound(err))
}
