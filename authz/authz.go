// Package authz decides whether an actor may perform an action on a
// target entity. Decisions are pure: all the relationship context a rule
// needs is passed in, nothing is read from the store here.
package authz

import (
	"tasknest/apperr"
	"tasknest/models"
)

// Action is the closed set of operations subject to authorization
type Action string

const (
	ActionCreateTask    Action = "task.create"
	ActionCreateProject Action = "project.create"
	ActionViewTask      Action = "task.view"
	ActionUpdateTask    Action = "task.update"
	ActionDeleteTask    Action = "task.delete"
	ActionAssignTask    Action = "task.assign"
	ActionUpdateTeam    Action = "team.update"
	ActionDeleteTeam    Action = "team.delete"
	ActionAddMember     Action = "team.add_member"
	ActionRemoveMember  Action = "team.remove_member"
	ActionDeleteComment Action = "comment.delete"
	ActionUpdateUser    Action = "user.update"
	ActionDeleteUser    Action = "user.delete"
)

// Target carries the entity under decision plus the relationship context
// the rules consult. Callers populate only the fields the action needs.
type Target struct {
	Team    *models.Team
	Task    *models.Task
	Comment *models.Comment
	User    *models.User

	// TaskAssignees are the user ids assigned to Target.Task
	TaskAssignees []uint

	// ActorTeamIDs are the teams the actor belongs to
	ActorTeamIDs []uint

	// ActorAdminTeamIDs are the teams in which the actor holds ADMIN
	ActorAdminTeamIDs []uint

	// TargetTeamIDs are the teams the target user belongs to
	TargetTeamIDs []uint
}

// CanAct returns nil when actor may perform action on target, an
// AuthenticationError when there is no actor, and an AuthorizationError
// with a distinguishable reason otherwise.
func CanAct(actor *models.User, action Action, target Target) error {
	if actor == nil {
		return apperr.Unauthenticated()
	}

	switch action {
	case ActionUpdateTeam, ActionDeleteTeam, ActionAddMember, ActionRemoveMember:
		// Team and membership mutation belong to the team admin alone
		if target.Team == nil || target.Team.AdminID != actor.ID {
			return apperr.Forbidden(apperr.ReasonNotAdmin)
		}
		return nil

	case ActionCreateTask, ActionCreateProject:
		// Team-scoped creation requires membership, any role
		if target.Team == nil {
			return nil
		}
		if containsID(target.ActorTeamIDs, target.Team.ID) {
			return nil
		}
		return apperr.Forbidden(apperr.ReasonNotMember)

	case ActionViewTask, ActionUpdateTask, ActionDeleteTask, ActionAssignTask:
		return canTouchTask(actor, target)

	case ActionDeleteComment:
		// A comment is deletable only by its author
		if target.Comment == nil || target.Comment.UserID != actor.ID {
			return apperr.Forbidden(apperr.ReasonNotOwner)
		}
		return nil

	case ActionUpdateUser:
		if target.User == nil || target.User.ID != actor.ID {
			return apperr.Forbidden(apperr.ReasonNotOwner)
		}
		return nil

	case ActionDeleteUser:
		// Self-deletion, or deletion by an admin of any team the target
		// belongs to
		if target.User != nil && target.User.ID == actor.ID {
			return nil
		}
		for _, teamID := range target.TargetTeamIDs {
			if containsID(target.ActorAdminTeamIDs, teamID) {
				return nil
			}
		}
		return apperr.Forbidden(apperr.ReasonNotAdmin)
	}

	return apperr.Forbidden(apperr.ReasonNotOwner)
}

// canTouchTask is the single write-access predicate for tasks: creator,
// assignee, or admin of the task's team.
func canTouchTask(actor *models.User, target Target) error {
	if target.Task == nil {
		return apperr.Forbidden(apperr.ReasonNotOwner)
	}
	if target.Task.CreatorID == actor.ID {
		return nil
	}
	if containsID(target.TaskAssignees, actor.ID) {
		return nil
	}
	if target.Task.TeamID != nil && containsID(target.ActorAdminTeamIDs, *target.Task.TeamID) {
		return nil
	}
	return apperr.Forbidden(apperr.ReasonNotOwner)
}

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
