package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"tasknest/middleware"
	"tasknest/service"
	"tasknest/utils"
)

type ProjectController struct {
	Projects *service.ProjectService
	Logger   *log.Logger
}

func NewProjectController(projects *service.ProjectService, logger *log.Logger) *ProjectController {
	return &ProjectController{Projects: projects, Logger: logger}
}

type ProjectRequest struct {
	Name   string `json:"name" validate:"required,max=100"`
	TeamID uint   `json:"teamId" validate:"required"`
}

func (pc *ProjectController) CreateProject(c *fiber.Ctx) error {
	var req ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	actor := middleware.CurrentUser(c)
	project, err := pc.Projects.CreateProject(actor, req.Name, req.TeamID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

func (pc *ProjectController) GetProject(c *fiber.Ctx) error {
	id, err := utils.ParseUint(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid project ID",
		})
	}

	project, err := pc.Projects.GetProject(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(project)
}

// ListProjects returns projects for the team given in the query string
func (pc *ProjectController) ListProjects(c *fiber.Ctx) error {
	teamID, err := utils.ParseUint(c.Query("teamId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid team ID",
		})
	}

	actor := middleware.CurrentUser(c)
	projects, err := pc.Projects.ListProjects(actor, teamID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(projects)
}

func (pc *ProjectController) UpdateProject(c *fiber.Ctx) error {
	id, err := utils.ParseUint(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid project ID",
		})
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	actor := middleware.CurrentUser(c)
	project, err := pc.Projects.UpdateProject(actor, id, req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(project)
}

func (pc *ProjectController) DeleteProject(c *fiber.Ctx) error {
	id, err := utils.ParseUint(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid project ID",
		})
	}

	actor := middleware.CurrentUser(c)
	if err := pc.Projects.DeleteProject(actor, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Project deleted successfully"})
}

func (pc *ProjectController) ListProjectTasks(c *fiber.Ctx) error {
	id, err := utils.ParseUint(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid project ID",
		})
	}

	tasks, err := pc.Projects.ListProjectTasks(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tasks)
}
