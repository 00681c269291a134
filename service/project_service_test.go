package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasknest/apperr"
)

func TestCreateProjectRequiresMembership(t *testing.T) {
	st := newTestStore(t)
	ps := NewProjectService(st, testLogger())
	admin := seedUser(t, st, "Ana", "ana@example.com")
	member := seedUser(t, st, "Ben", "ben@example.com")
	stranger := seedUser(t, st, "Cleo", "cleo@example.com")
	team := seedTeam(t, st, admin, member)

	_, err := ps.CreateProject(stranger, "Website", team.ID)
	assert.True(t, apperr.IsForbidden(err, apperr.ReasonNotMember))

	project, err := ps.CreateProject(member, "Website", team.ID)
	require.NoError(t, err)
	assert.Equal(t, team.ID, project.TeamID)
}

func TestCreateProjectValidation(t *testing.T) {
	st := newTestStore(t)
	ps := NewProjectService(st, testLogger())
	actor := seedUser(t, st, "Ana", "ana@example.com")

	_, err := ps.CreateProject(actor, "", 1)
	var v *apperr.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "name", v.Field)

	_, err = ps.CreateProject(actor, "Website", 0)
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "teamId", v.Field)

	_, err = ps.CreateProject(actor, "Website", 9999)
	assert.True(t, apperr.IsNotFound(err))
}

func TestDeleteProjectDetachesTasks(t *testing.T) {
	st := newTestStore(t)
	ps := NewProjectService(st, testLogger())
	ts := NewTaskService(st, testLogger())
	admin := seedUser(t, st, "Ana", "ana@example.com")
	team := seedTeam(t, st, admin)

	project, err := ps.CreateProject(admin, "Website", team.ID)
	require.NoError(t, err)

	in := validTaskInput()
	in.TeamID = &team.ID
	in.ProjectID = &project.ID
	task, err := ts.CreateTask(admin, in)
	require.NoError(t, err)

	require.NoError(t, ps.DeleteProject(admin, project.ID))

	_, err = st.GetProjectByID(project.ID)
	assert.True(t, apperr.IsNotFound(err))

	// The project's tasks survive, detached
	survivor, err := st.GetTaskByID(task.ID)
	require.NoError(t, err)
	assert.Nil(t, survivor.ProjectID)
}

func TestListProjectTasks(t *testing.T) {
	st := newTestStore(t)
	ps := NewProjectService(st, testLogger())
	ts := NewTaskService(st, testLogger())
	admin := seedUser(t, st, "Ana", "ana@example.com")
	team := seedTeam(t, st, admin)

	project, err := ps.CreateProject(admin, "Website", team.ID)
	require.NoError(t, err)
	other, err := ps.CreateProject(admin, "Backend", team.ID)
	require.NoError(t, err)

	in := validTaskInput()
	in.ProjectID = &project.ID
	_, err = ts.CreateTask(admin, in)
	require.NoError(t, err)

	tasks, err := ps.ListProjectTasks(project.ID)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)

	empty, err := ps.ListProjectTasks(other.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = ps.ListProjectTasks(9999)
	assert.True(t, apperr.IsNotFound(err))
}
