package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"tasknest/middleware"
	"tasknest/service"
	"tasknest/utils"
)

type UserController struct {
	Users  *service.UserService
	Logger *log.Logger
}

func NewUserController(users *service.UserService, logger *log.Logger) *UserController {
	return &UserController{Users: users, Logger: logger}
}

// GetProfile returns a user with memberships, notifications and stats
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	id, err := utils.ParseUint(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	user, err := uc.Users.GetProfile(id)
	if err != nil {
		return respondError(c, err)
	}
	user.Sanitize()
	return c.JSON(user)
}

func (uc *UserController) UpdateUser(c *fiber.Ctx) error {
	id, err := utils.ParseUint(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	var req service.UpdateUserInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	actor := middleware.CurrentUser(c)
	user, err := uc.Users.UpdateUser(actor, id, req)
	if err != nil {
		return respondError(c, err)
	}
	user.Sanitize()
	return c.JSON(user)
}

func (uc *UserController) DeleteUser(c *fiber.Ctx) error {
	id, err := utils.ParseUint(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	actor := middleware.CurrentUser(c)
	if err := uc.Users.DeleteUser(actor, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}
