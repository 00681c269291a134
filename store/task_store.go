package store

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tasknest/apperr"
	"tasknest/models"
)

// CreateTaskWithAssignments persists a task and one assignment row per
// assignee in a single transaction. Any unknown assignee id aborts the
// whole creation; no partial set of assignments survives.
func (s *Store) CreateTaskWithAssignments(task *models.Task, assigneeIDs []uint, assignedBy uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, assigneeID := range assigneeIDs {
			var user models.User
			if err := tx.Select("id").First(&user, assigneeID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFound(KindUser, assigneeID)
				}
				return err
			}
		}
		if err := tx.Create(task).Error; err != nil {
			return err
		}
		for _, assigneeID := range assigneeIDs {
			assignment := models.TaskAssignment{
				TaskID:     task.ID,
				AssignedBy: assignedBy,
				AssignedTo: assigneeID,
			}
			if err := tx.Create(&assignment).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if apperr.IsNotFound(err) {
			return err
		}
		return apperr.Internal(err)
	}
	return nil
}

func (s *Store) GetTaskByID(id uint) (*models.Task, error) {
	var task models.Task
	if err := s.db.First(&task, id).Error; err != nil {
		return nil, wrapRead(err, KindTask, id)
	}
	return &task, nil
}

// GetTaskWithAssignments loads a task with its assignments, assignee
// names and team
func (s *Store) GetTaskWithAssignments(id uint) (*models.Task, error) {
	var task models.Task
	err := s.db.
		Preload("Assignments.AssignedToUser").
		Preload("Team").
		First(&task, id).Error
	if err != nil {
		return nil, wrapRead(err, KindTask, id)
	}
	return &task, nil
}

// ListTasksForUser returns tasks the user created or is assigned to,
// newest first
func (s *Store) ListTasksForUser(userID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.
		Preload("Assignments.AssignedToUser").
		Preload("Team").
		Distinct("tasks.*").
		Joins("LEFT JOIN task_assignments ON task_assignments.task_id = tasks.id AND task_assignments.deleted_at IS NULL").
		Where("tasks.creator_id = ? OR task_assignments.assigned_to = ?", userID, userID).
		Order("tasks.created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return tasks, nil
}

// ListTasksByCreator returns every task created by userID
func (s *Store) ListTasksByCreator(userID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.Where("creator_id = ?", userID).Order("created_at ASC").Find(&tasks).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return tasks, nil
}

// ListTasksAssignedTo returns tasks assigned to userID with the
// assignment rows and assignee names attached
func (s *Store) ListTasksAssignedTo(userID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.
		Preload("Assignments", "assigned_to = ?", userID).
		Preload("Assignments.AssignedToUser").
		Joins("JOIN task_assignments ON task_assignments.task_id = tasks.id AND task_assignments.deleted_at IS NULL").
		Where("task_assignments.assigned_to = ?", userID).
		Find(&tasks).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return tasks, nil
}

func (s *Store) UpdateTask(task *models.Task) error {
	if err := s.db.Omit(clause.Associations).Save(task).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// DeleteTaskCascade removes a task together with its assignments and
// comments so no dangling references remain
func (s *Store) DeleteTaskCascade(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Task{}, id).Error
	})
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// CreateAssignment inserts one assignment row; assigning the same user
// to the same task twice is a conflict
func (s *Store) CreateAssignment(assignment *models.TaskAssignment) error {
	var existing models.TaskAssignment
	err := s.db.Select("id").
		Where("task_id = ? AND assigned_to = ?", assignment.TaskID, assignment.AssignedTo).
		First(&existing).Error
	if err == nil {
		return apperr.Conflict("user %d is already assigned to task %d", assignment.AssignedTo, assignment.TaskID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Internal(err)
	}
	if err := s.db.Create(assignment).Error; err != nil {
		return wrapWrite(err, "user is already assigned to this task")
	}
	return nil
}

// ListAssigneeIDs returns the ids of every user assigned to taskID
func (s *Store) ListAssigneeIDs(taskID uint) ([]uint, error) {
	var ids []uint
	err := s.db.Model(&models.TaskAssignment{}).
		Where("task_id = ?", taskID).
		Pluck("assigned_to", &ids).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return ids, nil
}

// CountAssignments counts the assignment rows for taskID
func (s *Store) CountAssignments(taskID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.TaskAssignment{}).Where("task_id = ?", taskID).Count(&count).Error
	if err != nil {
		return 0, apperr.Internal(err)
	}
	return count, nil
}

// ListOverdueTasks returns unfinished tasks whose due date has passed
func (s *Store) ListOverdueTasks(now time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.
		Where("due_date < ? AND status NOT IN ?", now, []string{models.StatusCompleted, models.StatusCancelled}).
		Find(&tasks).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return tasks, nil
}
