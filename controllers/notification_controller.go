package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"tasknest/middleware"
	"tasknest/service"
	"tasknest/utils"
)

type NotificationController struct {
	Notifications *service.NotificationService
	Logger        *log.Logger
}

func NewNotificationController(notifications *service.NotificationService, logger *log.Logger) *NotificationController {
	return &NotificationController{Notifications: notifications, Logger: logger}
}

type NotificationRequest struct {
	UserID  uint   `json:"userId" validate:"required"`
	Message string `json:"message" validate:"required"`
	Type    string `json:"type" validate:"required"`
}

func (nc *NotificationController) CreateNotification(c *fiber.Ctx) error {
	var req NotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	actor := middleware.CurrentUser(c)
	notification, err := nc.Notifications.Create(actor, req.UserID, req.Message, req.Type)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(notification)
}

func (nc *NotificationController) ListNotifications(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if c.QueryBool("unread") {
		notifications, err := nc.Notifications.ListUnread(actor)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(notifications)
	}
	notifications, err := nc.Notifications.List(actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(notifications)
}

func (nc *NotificationController) MarkRead(c *fiber.Ctx) error {
	id, err := utils.ParseUint(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid notification ID",
		})
	}

	actor := middleware.CurrentUser(c)
	notification, err := nc.Notifications.MarkRead(actor, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(notification)
}

func (nc *NotificationController) DeleteNotification(c *fiber.Ctx) error {
	id, err := utils.ParseUint(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid notification ID",
		})
	}

	actor := middleware.CurrentUser(c)
	if err := nc.Notifications.Delete(actor, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Notification deleted successfully"})
}

func (nc *NotificationController) AddRecommendation(c *fiber.Ctx) error {
	var req service.RecommendationInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	recommendation, err := nc.Notifications.AddRecommendation(req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(recommendation)
}

// ListRecommendations returns the caller's stored task suggestions
func (nc *NotificationController) ListRecommendations(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	recommendations, err := nc.Notifications.ListRecommendations(actor.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(recommendations)
}
