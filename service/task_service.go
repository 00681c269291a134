package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"tasknest/aggregate"
	"tasknest/apperr"
	"tasknest/authz"
	"tasknest/models"
	"tasknest/store"
	"tasknest/utils"
)

// TaskService orchestrates the task lifecycle: validation,
// authorization, transactional writes and notification side effects.
type TaskService struct {
	Store  *store.Store
	Logger *log.Logger
}

func NewTaskService(st *store.Store, logger *log.Logger) *TaskService {
	return &TaskService{Store: st, Logger: logger}
}

// CreateTaskInput carries the raw task fields. Dates arrive as strings
// and are parsed into validated times before anything is persisted.
type CreateTaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	DueDate     string `json:"due_date"`
	Priority    string `json:"priority"`
	Category    string `json:"category"`
	Status      string `json:"status"`
	Progress    int    `json:"progress"`
	TeamID      *uint  `json:"team_id"`
	ProjectID   *uint  `json:"project_id"`
	AssignedTo  []uint `json:"assigned_to"`
}

// UpdateTaskInput carries optional field updates; nil means unchanged
type UpdateTaskInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	StartDate   *string `json:"start_date"`
	DueDate     *string `json:"due_date"`
	Priority    *string `json:"priority"`
	Category    *string `json:"category"`
	Status      *string `json:"status"`
	Progress    *int    `json:"progress"`
}

// CreateTask validates the required fields, checks team membership when
// the task is team-scoped, and persists the task atomically with its
// assignment rows. Assignees are notified.
func (ts *TaskService) CreateTask(actor *models.User, in CreateTaskInput) (*models.Task, error) {
	if actor == nil {
		return nil, apperr.Unauthenticated()
	}

	for _, field := range []struct {
		name  string
		value string
	}{
		{"title", in.Title},
		{"startDate", in.StartDate},
		{"dueDate", in.DueDate},
		{"priority", in.Priority},
		{"category", in.Category},
		{"status", in.Status},
	} {
		if strings.TrimSpace(field.value) == "" {
			return nil, apperr.Validation(field.name)
		}
	}

	startDate, err := parseDate("startDate", in.StartDate)
	if err != nil {
		return nil, err
	}
	dueDate, err := parseDate("dueDate", in.DueDate)
	if err != nil {
		return nil, err
	}
	if dueDate.Before(startDate) {
		return nil, apperr.Validationf("dueDate", "must not be before startDate")
	}
	if in.Progress < 0 || in.Progress > 100 {
		return nil, apperr.Validationf("progress", "must be between 0 and 100")
	}

	if in.TeamID != nil {
		team, err := ts.Store.GetTeamByID(*in.TeamID)
		if err != nil {
			return nil, err
		}
		teamIDs, _, err := actorTeamIDs(ts.Store, actor.ID)
		if err != nil {
			return nil, err
		}
		if err := authz.CanAct(actor, authz.ActionCreateTask, authz.Target{
			Team:         team,
			ActorTeamIDs: teamIDs,
		}); err != nil {
			return nil, err
		}
	}

	if in.ProjectID != nil {
		if _, err := ts.Store.GetProjectByID(*in.ProjectID); err != nil {
			return nil, err
		}
	}

	task := &models.Task{
		Title:       in.Title,
		Description: in.Description,
		StartDate:   startDate,
		DueDate:     dueDate,
		Priority:    in.Priority,
		Category:    in.Category,
		Status:      in.Status,
		Progress:    in.Progress,
		CreatorID:   actor.ID,
		TeamID:      in.TeamID,
		ProjectID:   in.ProjectID,
	}

	if err := ts.Store.CreateTaskWithAssignments(task, in.AssignedTo, actor.ID); err != nil {
		return nil, err
	}

	for _, assigneeID := range in.AssignedTo {
		ts.notify(assigneeID, models.NotifyTaskAssigned,
			fmt.Sprintf("You have been assigned to task %q", task.Title))
	}

	ts.refreshDashboardStats(actor.ID)
	return task, nil
}

// GetTask loads a task after checking read access
func (ts *TaskService) GetTask(actor *models.User, taskID uint) (*models.Task, error) {
	if actor == nil {
		return nil, apperr.Unauthenticated()
	}
	task, err := ts.Store.GetTaskWithAssignments(taskID)
	if err != nil {
		return nil, err
	}
	target, err := ts.taskTarget(actor, task)
	if err != nil {
		return nil, err
	}
	if err := authz.CanAct(actor, authz.ActionViewTask, target); err != nil {
		return nil, err
	}
	return task, nil
}

// ListTasks returns the tasks the actor created or is assigned to
func (ts *TaskService) ListTasks(actor *models.User) ([]models.Task, error) {
	if actor == nil {
		return nil, apperr.Unauthenticated()
	}
	return ts.Store.ListTasksForUser(actor.ID)
}

// ListAssignedTasks returns the tasks assigned to userID
func (ts *TaskService) ListAssignedTasks(userID uint) ([]models.Task, error) {
	return ts.Store.ListTasksAssignedTo(userID)
}

// UpdateTask applies the provided fields after re-parsing any date
// strings. The task must exist and the actor must hold write access.
func (ts *TaskService) UpdateTask(actor *models.User, taskID uint, in UpdateTaskInput) (*models.Task, error) {
	if actor == nil {
		return nil, apperr.Unauthenticated()
	}
	task, err := ts.Store.GetTaskByID(taskID)
	if err != nil {
		return nil, err
	}
	target, err := ts.taskTarget(actor, task)
	if err != nil {
		return nil, err
	}
	if err := authz.CanAct(actor, authz.ActionUpdateTask, target); err != nil {
		return nil, err
	}

	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.StartDate != nil {
		startDate, err := parseDate("startDate", *in.StartDate)
		if err != nil {
			return nil, err
		}
		task.StartDate = startDate
	}
	if in.DueDate != nil {
		dueDate, err := parseDate("dueDate", *in.DueDate)
		if err != nil {
			return nil, err
		}
		task.DueDate = dueDate
	}
	if task.DueDate.Before(task.StartDate) {
		return nil, apperr.Validationf("dueDate", "must not be before startDate")
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}
	if in.Category != nil {
		task.Category = *in.Category
	}
	if in.Status != nil {
		task.Status = *in.Status
	}
	if in.Progress != nil {
		if *in.Progress < 0 || *in.Progress > 100 {
			return nil, apperr.Validationf("progress", "must be between 0 and 100")
		}
		task.Progress = *in.Progress
	}

	if err := ts.Store.UpdateTask(task); err != nil {
		return nil, err
	}
	ts.refreshDashboardStats(task.CreatorID)
	return task, nil
}

// DeleteTask removes the task and cascades its assignments and comments
func (ts *TaskService) DeleteTask(actor *models.User, taskID uint) error {
	if actor == nil {
		return apperr.Unauthenticated()
	}
	task, err := ts.Store.GetTaskByID(taskID)
	if err != nil {
		return err
	}
	target, err := ts.taskTarget(actor, task)
	if err != nil {
		return err
	}
	if err := authz.CanAct(actor, authz.ActionDeleteTask, target); err != nil {
		return err
	}
	if err := ts.Store.DeleteTaskCascade(taskID); err != nil {
		return err
	}
	ts.refreshDashboardStats(task.CreatorID)
	return nil
}

// AssignTask binds one assignee to the task. Both the task and the user
// must exist; assigning the same user twice is a conflict.
func (ts *TaskService) AssignTask(actor *models.User, taskID, assigneeID uint) (*models.TaskAssignment, error) {
	if actor == nil {
		return nil, apperr.Unauthenticated()
	}
	task, err := ts.Store.GetTaskByID(taskID)
	if err != nil {
		return nil, err
	}
	assignee, err := ts.Store.GetUserByID(assigneeID)
	if err != nil {
		return nil, err
	}
	target, err := ts.taskTarget(actor, task)
	if err != nil {
		return nil, err
	}
	if err := authz.CanAct(actor, authz.ActionAssignTask, target); err != nil {
		return nil, err
	}

	assignment := &models.TaskAssignment{
		TaskID:     task.ID,
		AssignedBy: actor.ID,
		AssignedTo: assignee.ID,
	}
	if err := ts.Store.CreateAssignment(assignment); err != nil {
		return nil, err
	}

	ts.notify(assignee.ID, models.NotifyTaskAssigned,
		fmt.Sprintf("You have been assigned to task %q", task.Title))
	return assignment, nil
}

// AddComment persists a comment with a server-assigned timestamp and
// notifies the task creator
func (ts *TaskService) AddComment(actor *models.User, taskID uint, text string) (*models.Comment, error) {
	if actor == nil {
		return nil, apperr.Unauthenticated()
	}
	if strings.TrimSpace(text) == "" {
		return nil, apperr.Validation("comment")
	}
	task, err := ts.Store.GetTaskByID(taskID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		TaskID:    task.ID,
		UserID:    actor.ID,
		Comment:   text,
		Timestamp: time.Now(),
	}
	if err := ts.Store.CreateComment(comment); err != nil {
		return nil, err
	}

	if task.CreatorID != actor.ID {
		ts.notify(task.CreatorID, models.NotifyTaskComment,
			fmt.Sprintf("%s commented on your task %q", actor.Name, task.Title))
	}
	return comment, nil
}

// ListComments returns a task's comments in chronological order
func (ts *TaskService) ListComments(taskID uint) ([]models.Comment, error) {
	if _, err := ts.Store.GetTaskByID(taskID); err != nil {
		return nil, err
	}
	return ts.Store.ListCommentsByTask(taskID)
}

// DeleteComment removes a comment; only its author may do so
func (ts *TaskService) DeleteComment(actor *models.User, commentID uint) error {
	if actor == nil {
		return apperr.Unauthenticated()
	}
	comment, err := ts.Store.GetCommentByID(commentID)
	if err != nil {
		return err
	}
	if err := authz.CanAct(actor, authz.ActionDeleteComment, authz.Target{Comment: comment}); err != nil {
		return err
	}
	return ts.Store.DeleteComment(commentID)
}

// taskTarget assembles the authorization context for a task decision
func (ts *TaskService) taskTarget(actor *models.User, task *models.Task) (authz.Target, error) {
	assignees, err := ts.Store.ListAssigneeIDs(task.ID)
	if err != nil {
		return authz.Target{}, err
	}
	_, adminTeamIDs, err := actorTeamIDs(ts.Store, actor.ID)
	if err != nil {
		return authz.Target{}, err
	}
	return authz.Target{
		Task:              task,
		TaskAssignees:     assignees,
		ActorAdminTeamIDs: adminTeamIDs,
	}, nil
}

// refreshDashboardStats recomputes the creator's snapshot after a task
// mutation. A failed refresh is logged, not surfaced: the mutation
// itself already committed.
func (ts *TaskService) refreshDashboardStats(userID uint) {
	tasks, err := ts.Store.ListTasksByCreator(userID)
	if err != nil {
		ts.Logger.Printf("Failed to load tasks for stats refresh (user %d): %v", userID, err)
		return
	}
	activeProjects, err := ts.Store.CountProjectsForUser(userID)
	if err != nil {
		ts.Logger.Printf("Failed to count projects for stats refresh (user %d): %v", userID, err)
		return
	}
	snapshot := aggregate.Snapshot(userID, tasks, activeProjects, time.Now())
	if err := ts.Store.SaveDashboardStats(&snapshot); err != nil {
		utils.LogError("dashboard_stats_refresh", err, map[string]interface{}{
			"user_id": userID,
		})
	}
}

func (ts *TaskService) notify(userID uint, notifType, message string) {
	notification := &models.Notification{
		UserID:  userID,
		Message: message,
		Type:    notifType,
	}
	if err := ts.Store.CreateNotification(notification); err != nil {
		ts.Logger.Printf("Failed to create %s notification for user %d: %v", notifType, userID, err)
	}
}

// parseDate accepts RFC 3339 timestamps and plain dates. Anything else
// is a field-level validation error, never a silently wrong date.
func parseDate(field, value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Time{}, apperr.Validationf(field, "invalid date %q", value)
}

// actorTeamIDs returns the ids of every team the user belongs to, and
// the subset where the user holds ADMIN
func actorTeamIDs(st *store.Store, userID uint) (teamIDs, adminTeamIDs []uint, err error) {
	memberships, err := st.ListUserMemberships(userID)
	if err != nil {
		return nil, nil, err
	}
	for _, m := range memberships {
		teamIDs = append(teamIDs, m.TeamID)
		if m.Role == models.RoleAdmin {
			adminTeamIDs = append(adminTeamIDs, m.TeamID)
		}
	}
	return teamIDs, adminTeamIDs, nil
}
