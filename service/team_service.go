package service

import (
	"fmt"
	"log"
	"strings"

	"tasknest/apperr"
	"tasknest/authz"
	"tasknest/models"
	"tasknest/store"
)

// TeamService manages teams and their memberships
type TeamService struct {
	Store  *store.Store
	Logger *log.Logger
}

func NewTeamService(st *store.Store, logger *log.Logger) *TeamService {
	return &TeamService{Store: st, Logger: logger}
}

// CreateTeam creates a team with the actor as admin. The team row and
// the admin's ADMIN membership land in one transaction.
func (ts *TeamService) CreateTeam(actor *models.User, name, description string) (*models.Team, error) {
	if actor == nil {
		return nil, apperr.Unauthenticated()
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validation("name")
	}

	team := &models.Team{
		Name:        name,
		Description: description,
		AdminID:     actor.ID,
	}
	if err := ts.Store.CreateTeamWithAdmin(team); err != nil {
		return nil, err
	}
	return team, nil
}

// GetTeam loads a team with its admin and members
func (ts *TeamService) GetTeam(actor *models.User, teamID uint) (*models.Team, error) {
	if actor == nil {
		return nil, apperr.Unauthenticated()
	}
	return ts.Store.GetTeamWithMembers(teamID)
}

// ListTeams returns the teams the actor administers or belongs to
func (ts *TeamService) ListTeams(actor *models.User) ([]models.Team, error) {
	if actor == nil {
		return nil, apperr.Unauthenticated()
	}
	return ts.Store.ListTeamsForUser(actor.ID)
}

// UpdateTeam changes the team name/description; admin only
func (ts *TeamService) UpdateTeam(actor *models.User, teamID uint, name, description string) (*models.Team, error) {
	team, err := ts.authorizeAdmin(actor, teamID, authz.ActionUpdateTeam)
	if err != nil {
		return nil, err
	}
	if name != "" {
		team.Name = name
	}
	if description != "" {
		team.Description = description
	}
	if err := ts.Store.UpdateTeam(team); err != nil {
		return nil, err
	}
	return team, nil
}

// DeleteTeam removes the team and its membership rows; admin only
func (ts *TeamService) DeleteTeam(actor *models.User, teamID uint) error {
	if _, err := ts.authorizeAdmin(actor, teamID, authz.ActionDeleteTeam); err != nil {
		return err
	}
	return ts.Store.DeleteTeam(teamID)
}

// AddMember adds a user to the team; admin only. The role defaults to
// MEMBER when not provided.
func (ts *TeamService) AddMember(actor *models.User, teamID, userID uint, role string) (*models.TeamMember, error) {
	team, err := ts.authorizeAdmin(actor, teamID, authz.ActionAddMember)
	if err != nil {
		return nil, err
	}
	user, err := ts.Store.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if role == "" {
		role = models.RoleMember
	}

	member := &models.TeamMember{
		TeamID: team.ID,
		UserID: user.ID,
		Role:   role,
	}
	if err := ts.Store.AddTeamMember(member); err != nil {
		return nil, err
	}

	ts.notify(user.ID, models.NotifyTeamJoined,
		fmt.Sprintf("You have been added to team %q", team.Name))
	return member, nil
}

// RemoveMember removes a user from the team; admin only. The admin's
// own membership row cannot be removed: the admin is always a member.
func (ts *TeamService) RemoveMember(actor *models.User, teamID, userID uint) error {
	team, err := ts.authorizeAdmin(actor, teamID, authz.ActionRemoveMember)
	if err != nil {
		return err
	}
	if userID == team.AdminID {
		return apperr.Validationf("userId", "the team admin cannot be removed from the team")
	}
	if err := ts.Store.RemoveTeamMember(teamID, userID); err != nil {
		return err
	}

	ts.notify(userID, models.NotifyTeamRemoved,
		fmt.Sprintf("You have been removed from team %q", team.Name))
	return nil
}

// authorizeAdmin loads the team and checks the admin-only rule for the
// given action
func (ts *TeamService) authorizeAdmin(actor *models.User, teamID uint, action authz.Action) (*models.Team, error) {
	if actor == nil {
		return nil, apperr.Unauthenticated()
	}
	team, err := ts.Store.GetTeamByID(teamID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanAct(actor, action, authz.Target{Team: team}); err != nil {
		return nil, err
	}
	return team, nil
}

func (ts *TeamService) notify(userID uint, notifType, message string) {
	notification := &models.Notification{
		UserID:  userID,
		Message: message,
		Type:    notifType,
	}
	if err := ts.Store.CreateNotification(notification); err != nil {
		ts.Logger.Printf("Failed to create %s notification for user %d: %v", notifType, userID, err)
	}
}
