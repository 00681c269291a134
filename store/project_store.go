package store

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tasknest/apperr"
	"tasknest/models"
)

func (s *Store) CreateProject(project *models.Project) error {
	if err := s.db.Create(project).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// GetProjectByID loads a project with its team and tasks
func (s *Store) GetProjectByID(id uint) (*models.Project, error) {
	var project models.Project
	err := s.db.Preload("Team").Preload("Tasks").First(&project, id).Error
	if err != nil {
		return nil, wrapRead(err, KindProject, id)
	}
	return &project, nil
}

// ListProjectsByTeam returns a team's projects, newest first
func (s *Store) ListProjectsByTeam(teamID uint) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.Where("team_id = ?", teamID).Order("created_at DESC").Find(&projects).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return projects, nil
}

// ListProjectsForUser returns the projects of every team the user
// belongs to, with tasks preloaded for per-project rollups
func (s *Store) ListProjectsForUser(userID uint) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.
		Preload("Tasks").
		Joins("JOIN team_members ON team_members.team_id = projects.team_id AND team_members.deleted_at IS NULL").
		Where("team_members.user_id = ?", userID).
		Find(&projects).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return projects, nil
}

// CountProjectsForUser counts the projects reachable through the user's
// team memberships, used for the dashboard snapshot
func (s *Store) CountProjectsForUser(userID uint) (int, error) {
	var count int64
	err := s.db.Model(&models.Project{}).
		Joins("JOIN team_members ON team_members.team_id = projects.team_id AND team_members.deleted_at IS NULL").
		Where("team_members.user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, apperr.Internal(err)
	}
	return int(count), nil
}

func (s *Store) UpdateProject(project *models.Project) error {
	if err := s.db.Omit(clause.Associations).Save(project).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// DeleteProject removes the project and detaches its tasks
func (s *Store) DeleteProject(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Task{}).Where("project_id = ?", id).Update("project_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, id).Error
	})
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// ListTasksByProject returns a project's tasks, newest first
func (s *Store) ListTasksByProject(projectID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.Where("project_id = ?", projectID).Order("created_at DESC").Find(&tasks).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return tasks, nil
}
