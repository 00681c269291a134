package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasknest/apperr"
	"tasknest/models"
)

func TestCreateTaskRequiredFields(t *testing.T) {
	st := newTestStore(t)
	ts := NewTaskService(st, testLogger())
	actor := seedUser(t, st, "Ana", "ana@example.com")

	cases := []struct {
		field  string
		mutate func(*CreateTaskInput)
	}{
		{"title", func(in *CreateTaskInput) { in.Title = "" }},
		{"startDate", func(in *CreateTaskInput) { in.StartDate = "" }},
		{"dueDate", func(in *CreateTaskInput) { in.DueDate = "  " }},
		{"priority", func(in *CreateTaskInput) { in.Priority = "" }},
		{"category", func(in *CreateTaskInput) { in.Category = "" }},
		{"status", func(in *CreateTaskInput) { in.Status = "" }},
	}
	for _, tc := range cases {
		in := validTaskInput()
		tc.mutate(&in)
		_, err := ts.CreateTask(actor, in)
		var v *apperr.ValidationError
		require.ErrorAs(t, err, &v, "field %s", tc.field)
		assert.Equal(t, tc.field, v.Field)
	}

	tasks, err := st.ListTasksForUser(actor.ID)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestCreateTaskRejectsMalformedDate(t *testing.T) {
	st := newTestStore(t)
	ts := NewTaskService(st, testLogger())
	actor := seedUser(t, st, "Ana", "ana@example.com")

	in := validTaskInput()
	in.StartDate = "next tuesday"
	_, err := ts.CreateTask(actor, in)
	var v *apperr.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "startDate", v.Field)
}

func TestCreateTaskDueBeforeStartRejected(t *testing.T) {
	st := newTestStore(t)
	ts := NewTaskService(st, testLogger())
	actor := seedUser(t, st, "Ana", "ana@example.com")

	in := validTaskInput()
	in.StartDate = "2025-03-10"
	in.DueDate = "2025-03-01"
	_, err := ts.CreateTask(actor, in)
	var v *apperr.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "dueDate", v.Field)
}

func TestCreateTaskProgressBounds(t *testing.T) {
	st := newTestStore(t)
	ts := NewTaskService(st, testLogger())
	actor := seedUser(t, st, "Ana", "ana@example.com")

	in := validTaskInput()
	in.Progress = 101
	_, err := ts.CreateTask(actor, in)
	assert.True(t, apperr.IsValidation(err))
}

func TestCreateTaskTeamMembership(t *testing.T) {
	st := newTestStore(t)
	ts := NewTaskService(st, testLogger())
	admin := seedUser(t, st, "Ana", "ana@example.com")
	member := seedUser(t, st, "Ben", "ben@example.com")
	stranger := seedUser(t, st, "Cleo", "cleo@example.com")
	team := seedTeam(t, st, admin, member)

	in := validTaskInput()
	in.TeamID = &team.ID

	_, err := ts.CreateTask(member, in)
	assert.NoError(t, err)

	_, err = ts.CreateTask(stranger, in)
	assert.True(t, apperr.IsForbidden(err, apperr.ReasonNotMember))
	tasks, err := st.ListTasksForUser(stranger.ID)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	unknown := uint(9999)
	in.TeamID = &unknown
	_, err = ts.CreateTask(member, in)
	assert.True(t, apperr.IsNotFound(err))
}

func TestCreateTaskUnknownAssigneeRollsBack(t *testing.T) {
	st := newTestStore(t)
	ts := NewTaskService(st, testLogger())
	actor := seedUser(t, st, "Ana", "ana@example.com")
	other := seedUser(t, st, "Ben", "ben@example.com")

	in := validTaskInput()
	in.AssignedTo = []uint{other.ID, 9999}
	_, err := ts.CreateTask(actor, in)
	assert.True(t, apperr.IsNotFound(err))

	// Nothing must survive the failed transaction
	tasks, err := st.ListTasksForUser(actor.ID)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestCreateTaskAssignsAndNotifies(t *testing.T) {
	st := newTestStore(t)
	ts := NewTaskService(st, testLogger())
	actor := seedUser(t, st, "Ana", "ana@example.com")
	assignee := seedUser(t, st, "Ben", "ben@example.com")

	in := validTaskInput()
	in.AssignedTo = []uint{assignee.ID}
	task, err := ts.CreateTask(actor, in)
	require.NoError(t, err)

	assignees, err := st.ListAssigneeIDs(task.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{assignee.ID}, assignees)

	notifications, err := st.ListNotifications(assignee.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotifyTaskAssigned, notifications[0].Type)

	// The creator's snapshot reflects the new task
	stats, err := st.GetDashboardStats(actor.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalTasks)
}

func TestAssignTaskDuplicateIsConflict(t *testing.T) {
	st := newTestStore(t)
	ts := NewTaskService(st, testLogger())
	actor := seedUser(t, st, "Ana", "ana@example.com")
	assignee := seedUser(t, st, "Ben", "ben@example.com")

	task, err := ts.CreateTask(actor, validTaskInput())
	require.NoError(t, err)

	_, err = ts.AssignTask(actor, task.ID, assignee.ID)
	require.NoError(t, err)

	_, err = ts.AssignTask(actor, task.ID, assignee.ID)
	assert.True(t, apperr.IsConflict(err))

	count, err := st.CountAssignments(task.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestAssignTaskUnknownUser(t *testing.T) {
	st := newTestStore(t)
	ts := NewTaskService(st, testLogger())
	actor := seedUser(t, st, "Ana", "ana@example.com")

	task, err := ts.CreateTask(actor, validTaskInput())
	require.NoError(t, err)

	_, err = ts.AssignTask(actor, task.ID, 9999)
	assert.True(t, apperr.IsNotFound(err))
}

func TestUpdateTaskAccess(t *testing.T) {
	st := newTestStore(t)
	ts := NewTaskService(st, testLogger())
	actor := seedUser(t, st, "Ana", "ana@example.com")
	assignee := seedUser(t, st, "Ben", "ben@example.com")
	stranger := seedUser(t, st, "Cleo", "cleo@example.com")

	in := validTaskInput()
	in.AssignedTo = []uint{assignee.ID}
	task, err := ts.CreateTask(actor, in)
	require.NoError(t, err)

	status := models.StatusCompleted
	_, err = ts.UpdateTask(stranger, task.ID, UpdateTaskInput{Status: &status})
	assert.True(t, apperr.IsForbidden(err, apperr.ReasonNotOwner))

	updated, err := ts.UpdateTask(assignee, task.ID, UpdateTaskInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, updated.Status)

	// Completing the task updates the creator's snapshot
	stats, err := st.GetDashboardStats(actor.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.CompletedTasks)
	assert.Equal(t, 100.0, stats.CompletionRate)
}

func TestUpdateTaskKeepsDatesOrdered(t *testing.T) {
	st := newTestStore(t)
	ts := NewTaskService(st, testLogger())
	actor := seedUser(t, st, "Ana", "ana@example.com")

	task, err := ts.CreateTask(actor, validTaskInput())
	require.NoError(t, err)

	early := "2025-02-01"
	_, err = ts.UpdateTask(actor, task.ID, UpdateTaskInput{DueDate: &early})
	var v *apperr.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "dueDate", v.Field)
}

func TestDeleteTaskCascades(t *testing.T) {
	st := newTestStore(t)
	ts := NewTaskService(st, testLogger())
	actor := seedUser(t, st, "Ana", "ana@example.com")
	assignee := seedUser(t, st, "Ben", "ben@example.com")

	in := validTaskInput()
	in.AssignedTo = []uint{assignee.ID}
	task, err := ts.CreateTask(actor, in)
	require.NoError(t, err)
	_, err = ts.AddComment(actor, task.ID, "kickoff notes")
	require.NoError(t, err)

	require.NoError(t, ts.DeleteTask(actor, task.ID))

	_, err = st.GetTaskByID(task.ID)
	assert.True(t, apperr.IsNotFound(err))
	assignments, err := st.CountAssignments(task.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, assignments)
	comments, err := st.CountCommentsByTask(task.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, comments)
}

func TestAddCommentValidatesAndNotifies(t *testing.T) {
	st := newTestStore(t)
	ts := NewTaskService(st, testLogger())
	actor := seedUser(t, st, "Ana", "ana@example.com")
	assignee := seedUser(t, st, "Ben", "ben@example.com")

	in := validTaskInput()
	in.AssignedTo = []uint{assignee.ID}
	task, err := ts.CreateTask(actor, in)
	require.NoError(t, err)

	_, err = ts.AddComment(assignee, task.ID, "   ")
	var v *apperr.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "comment", v.Field)

	comment, err := ts.AddComment(assignee, task.ID, "blocked on review")
	require.NoError(t, err)
	assert.False(t, comment.Timestamp.IsZero())

	notifications, err := st.ListNotifications(actor.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotifyTaskComment, notifications[0].Type)
}

func TestAddCommentByCreatorSkipsNotification(t *testing.T) {
	st := newTestStore(t)
	ts := NewTaskService(st, testLogger())
	actor := seedUser(t, st, "Ana", "ana@example.com")

	task, err := ts.CreateTask(actor, validTaskInput())
	require.NoError(t, err)
	_, err = ts.AddComment(actor, task.ID, "note to self")
	require.NoError(t, err)

	notifications, err := st.ListNotifications(actor.ID)
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestDeleteCommentAuthorOnly(t *testing.T) {
	st := newTestStore(t)
	ts := NewTaskService(st, testLogger())
	actor := seedUser(t, st, "Ana", "ana@example.com")
	other := seedUser(t, st, "Ben", "ben@example.com")

	task, err := ts.CreateTask(actor, validTaskInput())
	require.NoError(t, err)
	comment, err := ts.AddComment(actor, task.ID, "draft done")
	require.NoError(t, err)

	err = ts.DeleteComment(other, comment.ID)
	assert.True(t, apperr.IsForbidden(err, apperr.ReasonNotOwner))

	require.NoError(t, ts.DeleteComment(actor, comment.ID))
	_, err = st.GetCommentByID(comment.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestNilActorIsRejectedEverywhere(t *testing.T) {
	st := newTestStore(t)
	ts := NewTaskService(st, testLogger())

	var authErr *apperr.AuthenticationError
	_, err := ts.CreateTask(nil, validTaskInput())
	assert.True(t, errors.As(err, &authErr))
	_, err = ts.GetTask(nil, 1)
	assert.True(t, errors.As(err, &authErr))
	err = ts.DeleteTask(nil, 1)
	assert.True(t, errors.As(err, &authErr))
}
