package store

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tasknest/apperr"
	"tasknest/models"
)

// CreateUserWithStats persists a new user together with a zero-valued
// dashboard stats row. Both rows land in one transaction so no user
// exists without a stats snapshot.
func (s *Store) CreateUserWithStats(user *models.User) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		stats := models.DashboardStats{UserID: user.ID}
		return tx.Create(&stats).Error
	})
	if err != nil {
		return wrapWrite(err, "email already registered")
	}
	return nil
}

func (s *Store) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, wrapRead(err, KindUser, id)
	}
	return &user, nil
}

// GetUserByEmail returns the user for email, or a NotFoundError when no
// account carries it
func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, wrapRead(err, KindUser, 0)
	}
	return &user, nil
}

// GetUserProfile loads a user with teams, notifications and dashboard
// stats attached
func (s *Store) GetUserProfile(id uint) (*models.User, error) {
	var user models.User
	err := s.db.
		Preload("Memberships.Team").
		Preload("Notifications").
		Preload("DashboardStats").
		First(&user, id).Error
	if err != nil {
		return nil, wrapRead(err, KindUser, id)
	}
	return &user, nil
}

func (s *Store) UpdateUser(user *models.User) error {
	if err := s.db.Omit(clause.Associations).Save(user).Error; err != nil {
		return wrapWrite(err, "email already registered")
	}
	return nil
}

// DeleteUser removes the user together with everything hanging off
// them in one transaction: created tasks (with their assignment and
// comment children), assignments to them, their comments on other
// tasks, memberships, notifications and stats. Nothing referencing the
// user remains queryable afterwards.
func (s *Store) DeleteUser(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var taskIDs []uint
		if err := tx.Model(&models.Task{}).Where("creator_id = ?", id).Pluck("id", &taskIDs).Error; err != nil {
			return err
		}
		if len(taskIDs) > 0 {
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.TaskAssignment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.Task{}, taskIDs).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("assigned_to = ?", id).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.TeamMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.DashboardStats{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// ListUserMemberships returns every team membership row for userID
func (s *Store) ListUserMemberships(userID uint) ([]models.TeamMember, error) {
	var memberships []models.TeamMember
	if err := s.db.Where("user_id = ?", userID).Find(&memberships).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return memberships, nil
}

// UserExists reports whether a user row exists for id
func (s *Store) UserExists(id uint) (bool, error) {
	var user models.User
	err := s.db.Select("id").First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, apperr.Internal(err)
	}
	return true, nil
}
