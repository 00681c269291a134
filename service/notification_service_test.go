package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasknest/apperr"
)

func TestCreateNotificationValidation(t *testing.T) {
	st := newTestStore(t)
	ns := NewNotificationService(st, testLogger())
	actor := seedUser(t, st, "Ana", "ana@example.com")

	cases := []struct {
		field              string
		userID             uint
		message, notifType string
	}{
		{"message", actor.ID, "", "task_assigned"},
		{"type", actor.ID, "hello", ""},
		{"userId", 0, "hello", "task_assigned"},
	}
	for _, tc := range cases {
		_, err := ns.Create(actor, tc.userID, tc.message, tc.notifType)
		var v *apperr.ValidationError
		require.ErrorAs(t, err, &v)
		assert.Equal(t, tc.field, v.Field)
	}

	_, err := ns.Create(actor, 9999, "hello", "task_assigned")
	assert.True(t, apperr.IsNotFound(err))
}

func TestMarkReadRecipientOnly(t *testing.T) {
	st := newTestStore(t)
	ns := NewNotificationService(st, testLogger())
	recipient := seedUser(t, st, "Ana", "ana@example.com")
	other := seedUser(t, st, "Ben", "ben@example.com")

	created, err := ns.Create(other, recipient.ID, "task is due", "task_overdue")
	require.NoError(t, err)

	_, err = ns.MarkRead(other, created.ID)
	assert.True(t, apperr.IsForbidden(err, apperr.ReasonNotOwner))

	read, err := ns.MarkRead(recipient, created.ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)

	unread, err := ns.ListUnread(recipient)
	require.NoError(t, err)
	assert.Empty(t, unread)
}

func TestDeleteNotificationRecipientOnly(t *testing.T) {
	st := newTestStore(t)
	ns := NewNotificationService(st, testLogger())
	recipient := seedUser(t, st, "Ana", "ana@example.com")
	other := seedUser(t, st, "Ben", "ben@example.com")

	created, err := ns.Create(other, recipient.ID, "task is due", "task_overdue")
	require.NoError(t, err)

	err = ns.Delete(other, created.ID)
	assert.True(t, apperr.IsForbidden(err, apperr.ReasonNotOwner))

	require.NoError(t, ns.Delete(recipient, created.ID))
	err = ns.Delete(recipient, created.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestAddRecommendation(t *testing.T) {
	st := newTestStore(t)
	ns := NewNotificationService(st, testLogger())
	user := seedUser(t, st, "Ana", "ana@example.com")

	_, err := ns.AddRecommendation(RecommendationInput{
		UserID:   user.ID,
		Title:    "Plan sprint",
		Category: "work",
	})
	var v *apperr.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "startDate", v.Field)

	created, err := ns.AddRecommendation(RecommendationInput{
		UserID:    user.ID,
		Title:     "Plan sprint",
		Category:  "work",
		StartDate: "2025-03-01",
		DueDate:   "2025-03-07",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, created.UserID)

	listed, err := ns.ListRecommendations(user.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Plan sprint", listed[0].Title)
}
