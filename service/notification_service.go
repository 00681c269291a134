package service

import (
	"log"
	"strings"

	"tasknest/apperr"
	"tasknest/models"
	"tasknest/store"
)

// NotificationService manages notification delivery and read state
type NotificationService struct {
	Store  *store.Store
	Logger *log.Logger
}

func NewNotificationService(st *store.Store, logger *log.Logger) *NotificationService {
	return &NotificationService{Store: st, Logger: logger}
}

// Create delivers a notification to a user
func (ns *NotificationService) Create(actor *models.User, userID uint, message, notifType string) (*models.Notification, error) {
	if actor == nil {
		return nil, apperr.Unauthenticated()
	}
	if strings.TrimSpace(message) == "" {
		return nil, apperr.Validation("message")
	}
	if strings.TrimSpace(notifType) == "" {
		return nil, apperr.Validation("type")
	}
	if userID == 0 {
		return nil, apperr.Validation("userId")
	}
	if _, err := ns.Store.GetUserByID(userID); err != nil {
		return nil, err
	}

	notification := &models.Notification{
		UserID:  userID,
		Message: message,
		Type:    notifType,
	}
	if err := ns.Store.CreateNotification(notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// List returns the actor's notifications, newest first
func (ns *NotificationService) List(actor *models.User) ([]models.Notification, error) {
	if actor == nil {
		return nil, apperr.Unauthenticated()
	}
	return ns.Store.ListNotifications(actor.ID)
}

// ListUnread returns the actor's unread notifications, newest first
func (ns *NotificationService) ListUnread(actor *models.User) ([]models.Notification, error) {
	if actor == nil {
		return nil, apperr.Unauthenticated()
	}
	return ns.Store.ListUnreadNotifications(actor.ID)
}

// MarkRead flags a notification as read; recipients only
func (ns *NotificationService) MarkRead(actor *models.User, notificationID uint) (*models.Notification, error) {
	if err := ns.authorizeRecipient(actor, notificationID); err != nil {
		return nil, err
	}
	return ns.Store.MarkNotificationRead(notificationID)
}

// Delete removes a notification; recipients only
func (ns *NotificationService) Delete(actor *models.User, notificationID uint) error {
	if err := ns.authorizeRecipient(actor, notificationID); err != nil {
		return err
	}
	return ns.Store.DeleteNotification(notificationID)
}

func (ns *NotificationService) authorizeRecipient(actor *models.User, notificationID uint) error {
	if actor == nil {
		return apperr.Unauthenticated()
	}
	notification, err := ns.Store.GetNotificationByID(notificationID)
	if err != nil {
		return err
	}
	if notification.UserID != actor.ID {
		return apperr.Forbidden(apperr.ReasonNotOwner)
	}
	return nil
}

// RecommendationInput carries a suggested task produced by an external
// suggestion mechanism
type RecommendationInput struct {
	UserID    uint   `json:"user_id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	StartDate string `json:"start_date"`
	DueDate   string `json:"due_date"`
}

// AddRecommendation stores a suggested task for later retrieval
func (ns *NotificationService) AddRecommendation(in RecommendationInput) (*models.Recommendation, error) {
	if in.UserID == 0 {
		return nil, apperr.Validation("userId")
	}
	for _, field := range []struct {
		name  string
		value string
	}{
		{"title", in.Title},
		{"category", in.Category},
		{"startDate", in.StartDate},
		{"dueDate", in.DueDate},
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
	if _, err := ns.Store.GetUserByID(in.UserID); err != nil {
		return nil, err
	}

	recommendation := &models.Recommendation{
		UserID:    in.UserID,
		Title:     in.Title,
		Category:  in.Category,
		StartDate: startDate,
		DueDate:   dueDate,
	}
	if err := ns.Store.CreateRecommendation(recommendation); err != nil {
		return nil, err
	}
	return recommendation, nil
}

// ListRecommendations returns the suggested tasks stored for userID
func (ns *NotificationService) ListRecommendations(userID uint) ([]models.Recommendation, error) {
	if userID == 0 {
		return nil, apperr.Validation("userId")
	}
	return ns.Store.ListRecommendations(userID)
}
