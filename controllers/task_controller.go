package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"tasknest/middleware"
	"tasknest/service"
	"tasknest/utils"
)

type TaskController struct {
	Tasks  *service.TaskService
	Logger *log.Logger
}

func NewTaskController(tasks *service.TaskService, logger *log.Logger) *TaskController {
	return &TaskController{Tasks: tasks, Logger: logger}
}

type AssignTaskRequest struct {
	AssignedTo uint `json:"assignedTo" validate:"required"`
}

type CommentRequest struct {
	Comment string `json:"comment" validate:"required"`
}

func (tc *TaskController) CreateTask(c *fiber.Ctx) error {
	var req service.CreateTaskInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	actor := middleware.CurrentUser(c)
	task, err := tc.Tasks.CreateTask(actor, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

func (tc *TaskController) GetTask(c *fiber.Ctx) error {
	id, err := utils.ParseUint(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid task ID",
		})
	}

	actor := middleware.CurrentUser(c)
	task, err := tc.Tasks.GetTask(actor, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(task)
}

// ListTasks returns the tasks the caller created or is assigned to
func (tc *TaskController) ListTasks(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	tasks, err := tc.Tasks.ListTasks(actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tasks)
}

func (tc *TaskController) ListAssignedTasks(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	tasks, err := tc.Tasks.ListAssignedTasks(actor.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tasks)
}

func (tc *TaskController) UpdateTask(c *fiber.Ctx) error {
	id, err := utils.ParseUint(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid task ID",
		})
	}

	var req service.UpdateTaskInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	actor := middleware.CurrentUser(c)
	task, err := tc.Tasks.UpdateTask(actor, id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(task)
}

func (tc *TaskController) DeleteTask(c *fiber.Ctx) error {
	id, err := utils.ParseUint(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid task ID",
		})
	}

	actor := middleware.CurrentUser(c)
	if err := tc.Tasks.DeleteTask(actor, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Task deleted successfully"})
}

func (tc *TaskController) AssignTask(c *fiber.Ctx) error {
	id, err := utils.ParseUint(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid task ID",
		})
	}

	var req AssignTaskRequest
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
	assignment, err := tc.Tasks.AssignTask(actor, id, req.AssignedTo)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(assignment)
}

func (tc *TaskController) AddComment(c *fiber.Ctx) error {
	id, err := utils.ParseUint(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid task ID",
		})
	}

	var req CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	actor := middleware.CurrentUser(c)
	comment, err := tc.Tasks.AddComment(actor, id, req.Comment)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (tc *TaskController) ListComments(c *fiber.Ctx) error {
	id, err := utils.ParseUint(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid task ID",
		})
	}

	comments, err := tc.Tasks.ListComments(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comments)
}

func (tc *TaskController) DeleteComment(c *fiber.Ctx) error {
	commentID, err := utils.ParseUint(c.Params("commentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid comment ID",
		})
	}

	actor := middleware.CurrentUser(c)
	if err := tc.Tasks.DeleteComment(actor, commentID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Comment deleted successfully"})
}
