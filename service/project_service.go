package service

import (
	"log"
	"strings"

	"tasknest/apperr"
	"tasknest/authz"
	"tasknest/models"
	"tasknest/store"
)

// ProjectService manages the project lifecycle
type ProjectService struct {
	Store  *store.Store
	Logger *log.Logger
}

func NewProjectService(st *store.Store, logger *log.Logger) *ProjectService {
	return &ProjectService{Store: st, Logger: logger}
}

// CreateProject creates a project under a team. The actor must be a
// member of that team.
func (ps *ProjectService) CreateProject(actor *models.User, name string, teamID uint) (*models.Project, error) {
	if actor == nil {
		return nil, apperr.Unauthenticated()
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validation("name")
	}
	if teamID == 0 {
		return nil, apperr.Validation("teamId")
	}

	team, err := ps.Store.GetTeamByID(teamID)
	if err != nil {
		return nil, err
	}
	teamIDs, _, err := actorTeamIDs(ps.Store, actor.ID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanAct(actor, authz.ActionCreateProject, authz.Target{
		Team:         team,
		ActorTeamIDs: teamIDs,
	}); err != nil {
		return nil, err
	}

	project := &models.Project{Name: name, TeamID: teamID}
	if err := ps.Store.CreateProject(project); err != nil {
		return nil, err
	}
	return project, nil
}

// GetProject loads a project with its team and tasks
func (ps *ProjectService) GetProject(projectID uint) (*models.Project, error) {
	return ps.Store.GetProjectByID(projectID)
}

// ListProjects returns a team's projects, newest first
func (ps *ProjectService) ListProjects(actor *models.User, teamID uint) ([]models.Project, error) {
	if actor == nil {
		return nil, apperr.Unauthenticated()
	}
	if _, err := ps.Store.GetTeamByID(teamID); err != nil {
		return nil, err
	}
	return ps.Store.ListProjectsByTeam(teamID)
}

// UpdateProject renames a project
func (ps *ProjectService) UpdateProject(actor *models.User, projectID uint, name string) (*models.Project, error) {
	if actor == nil {
		return nil, apperr.Unauthenticated()
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validation("name")
	}
	project, err := ps.Store.GetProjectByID(projectID)
	if err != nil {
		return nil, err
	}
	project.Name = name
	if err := ps.Store.UpdateProject(project); err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteProject removes a project; its tasks are detached, not deleted
func (ps *ProjectService) DeleteProject(actor *models.User, projectID uint) error {
	if actor == nil {
		return apperr.Unauthenticated()
	}
	if _, err := ps.Store.GetProjectByID(projectID); err != nil {
		return err
	}
	return ps.Store.DeleteProject(projectID)
}

// ListProjectTasks returns a project's tasks, newest first
func (ps *ProjectService) ListProjectTasks(projectID uint) ([]models.Task, error) {
	if _, err := ps.Store.GetProjectByID(projectID); err != nil {
		return nil, err
	}
	return ps.Store.ListTasksByProject(projectID)
}
