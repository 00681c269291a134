package store

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tasknest/apperr"
	"tasknest/models"
)

// CreateTeamWithAdmin persists a team and its admin membership row in
// one transaction. A partial failure leaves no admin-less team behind.
func (s *Store) CreateTeamWithAdmin(team *models.Team) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return err
		}
		member := models.TeamMember{
			TeamID: team.ID,
			UserID: team.AdminID,
			Role:   models.RoleAdmin,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *Store) GetTeamByID(id uint) (*models.Team, error) {
	var team models.Team
	if err := s.db.First(&team, id).Error; err != nil {
		return nil, wrapRead(err, KindTeam, id)
	}
	return &team, nil
}

// GetTeamWithMembers loads a team with its admin and member rows
func (s *Store) GetTeamWithMembers(id uint) (*models.Team, error) {
	var team models.Team
	err := s.db.Preload("Admin").Preload("Members").First(&team, id).Error
	if err != nil {
		return nil, wrapRead(err, KindTeam, id)
	}
	return &team, nil
}

// ListTeamsForUser returns the teams userID administers or belongs to
func (s *Store) ListTeamsForUser(userID uint) ([]models.Team, error) {
	var teams []models.Team
	err := s.db.
		Distinct("teams.*").
		Joins("LEFT JOIN team_members ON team_members.team_id = teams.id AND team_members.deleted_at IS NULL").
		Where("teams.admin_id = ? OR team_members.user_id = ?", userID, userID).
		Find(&teams).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return teams, nil
}

// ListTeamsWithTasksForUser returns the teams userID belongs to with
// each team's tasks preloaded, for per-team rollups
func (s *Store) ListTeamsWithTasksForUser(userID uint) ([]models.Team, error) {
	var teams []models.Team
	err := s.db.
		Preload("Tasks").
		Joins("JOIN team_members ON team_members.team_id = teams.id AND team_members.deleted_at IS NULL").
		Where("team_members.user_id = ?", userID).
		Find(&teams).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return teams, nil
}

func (s *Store) UpdateTeam(team *models.Team) error {
	if err := s.db.Omit(clause.Associations).Save(team).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// DeleteTeam removes the team and cascades its membership rows
func (s *Store) DeleteTeam(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", id).Delete(&models.TeamMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Team{}, id).Error
	})
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// AddTeamMember inserts a membership row; adding the same user twice is
// a conflict
func (s *Store) AddTeamMember(member *models.TeamMember) error {
	existing, err := s.GetTeamMember(member.TeamID, member.UserID)
	if err != nil && !apperr.IsNotFound(err) {
		return err
	}
	if existing != nil {
		return apperr.Conflict("user %d is already a member of team %d", member.UserID, member.TeamID)
	}
	if err := s.db.Create(member).Error; err != nil {
		return wrapWrite(err, "user is already a member of this team")
	}
	return nil
}

func (s *Store) GetTeamMember(teamID, userID uint) (*models.TeamMember, error) {
	var member models.TeamMember
	err := s.db.Where("team_id = ? AND user_id = ?", teamID, userID).First(&member).Error
	if err != nil {
		return nil, wrapRead(err, KindTeamMember, userID)
	}
	return &member, nil
}

// RemoveTeamMember deletes the membership row for (teamID, userID)
func (s *Store) RemoveTeamMember(teamID, userID uint) error {
	res := s.db.Where("team_id = ? AND user_id = ?", teamID, userID).Delete(&models.TeamMember{})
	if res.Error != nil {
		return apperr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(KindTeamMember, userID)
	}
	return nil
}

// IsTeamMember reports whether userID belongs to teamID
func (s *Store) IsTeamMember(teamID, userID uint) (bool, error) {
	var member models.TeamMember
	err := s.db.Select("id").Where("team_id = ? AND user_id = ?", teamID, userID).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, apperr.Internal(err)
	}
	return true, nil
}
