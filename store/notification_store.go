package store

import (
	"errors"

	"gorm.io/gorm"

	"tasknest/apperr"
	"tasknest/models"
)

func (s *Store) CreateNotification(notification *models.Notification) error {
	if err := s.db.Create(notification).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// ListNotifications returns a user's notifications, newest first
func (s *Store) ListNotifications(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&notifications).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return notifications, nil
}

// ListUnreadNotifications returns a user's unread notifications, newest
// first
func (s *Store) ListUnreadNotifications(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.
		Where("user_id = ? AND is_read = ?", userID, false).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return notifications, nil
}

func (s *Store) GetNotificationByID(id uint) (*models.Notification, error) {
	var notification models.Notification
	if err := s.db.First(&notification, id).Error; err != nil {
		return nil, wrapRead(err, KindNotification, id)
	}
	return &notification, nil
}

// MarkNotificationRead flags the notification as read
func (s *Store) MarkNotificationRead(id uint) (*models.Notification, error) {
	notification, err := s.GetNotificationByID(id)
	if err != nil {
		return nil, err
	}
	notification.IsRead = true
	if err := s.db.Save(notification).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return notification, nil
}

func (s *Store) DeleteNotification(id uint) error {
	if err := s.db.Delete(&models.Notification{}, id).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// HasNotification reports whether userID already has a notification of
// the given type and message, used to keep periodic sweeps from piling
// up duplicates
func (s *Store) HasNotification(userID uint, notifType, message string) (bool, error) {
	var notification models.Notification
	err := s.db.Select("id").
		Where("user_id = ? AND type = ? AND message = ?", userID, notifType, message).
		First(&notification).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, apperr.Internal(err)
	}
	return true, nil
}

// GetDashboardStats returns the stats snapshot for userID
func (s *Store) GetDashboardStats(userID uint) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	if err := s.db.Where("user_id = ?", userID).First(&stats).Error; err != nil {
		return nil, wrapRead(err, KindStats, userID)
	}
	return &stats, nil
}

// SaveDashboardStats overwrites the snapshot values for stats.UserID
func (s *Store) SaveDashboardStats(stats *models.DashboardStats) error {
	err := s.db.Model(&models.DashboardStats{}).
		Where("user_id = ?", stats.UserID).
		Updates(map[string]interface{}{
			"total_tasks":     stats.TotalTasks,
			"completed_tasks": stats.CompletedTasks,
			"overdue_tasks":   stats.OverdueTasks,
			"completion_rate": stats.CompletionRate,
			"active_projects": stats.ActiveProjects,
		}).Error
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *Store) CreateRecommendation(recommendation *models.Recommendation) error {
	if err := s.db.Create(recommendation).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// ListRecommendations returns the suggested tasks stored for userID
func (s *Store) ListRecommendations(userID uint) ([]models.Recommendation, error) {
	var recommendations []models.Recommendation
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&recommendations).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return recommendations, nil
}
