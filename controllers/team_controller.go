package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"tasknest/middleware"
	"tasknest/service"
	"tasknest/utils"
)

type TeamController struct {
	Teams  *service.TeamService
	Logger *log.Logger
}

func NewTeamController(teams *service.TeamService, logger *log.Logger) *TeamController {
	return &TeamController{Teams: teams, Logger: logger}
}

type TeamRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

type AddMemberRequest struct {
	UserID uint   `json:"userId" validate:"required"`
	Role   string `json:"role" validate:"omitempty,oneof=ADMIN MEMBER"`
}

func (tc *TeamController) CreateTeam(c *fiber.Ctx) error {
	var req TeamRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	actor := middleware.CurrentUser(c)
	team, err := tc.Teams.CreateTeam(actor, req.Name, req.Description)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(team)
}

func (tc *TeamController) GetTeam(c *fiber.Ctx) error {
	id, err := utils.ParseUint(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid team ID",
		})
	}

	actor := middleware.CurrentUser(c)
	team, err := tc.Teams.GetTeam(actor, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(team)
}

func (tc *TeamController) ListTeams(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	teams, err := tc.Teams.ListTeams(actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(teams)
}

func (tc *TeamController) UpdateTeam(c *fiber.Ctx) error {
	id, err := utils.ParseUint(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid team ID",
		})
	}

	var req TeamRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	actor := middleware.CurrentUser(c)
	team, err := tc.Teams.UpdateTeam(actor, id, req.Name, req.Description)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(team)
}

func (tc *TeamController) DeleteTeam(c *fiber.Ctx) error {
	id, err := utils.ParseUint(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid team ID",
		})
	}

	actor := middleware.CurrentUser(c)
	if err := tc.Teams.DeleteTeam(actor, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Team deleted successfully"})
}

func (tc *TeamController) AddMember(c *fiber.Ctx) error {
	id, err := utils.ParseUint(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid team ID",
		})
	}

	var req AddMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	actor := middleware.CurrentUser(c)
	member, err := tc.Teams.AddMember(actor, id, req.UserID, req.Role)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(member)
}

func (tc *TeamController) RemoveMember(c *fiber.Ctx) error {
	id, err := utils.ParseUint(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid team ID",
		})
	}
	userID, err := utils.ParseUint(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	actor := middleware.CurrentUser(c)
	if err := tc.Teams.RemoveMember(actor, id, userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Member removed successfully"})
}
