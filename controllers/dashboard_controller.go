package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"tasknest/middleware"
	"tasknest/service"
)

type DashboardController struct {
	Dashboard *service.DashboardService
	Logger    *log.Logger
}

func NewDashboardController(dashboard *service.DashboardService, logger *log.Logger) *DashboardController {
	return &DashboardController{Dashboard: dashboard, Logger: logger}
}

// GetStats serves the caller's dashboard snapshot
func (dc *DashboardController) GetStats(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	stats, err := dc.Dashboard.GetStats(actor.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

func (dc *DashboardController) GetProjectRollups(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	rollups, err := dc.Dashboard.ProjectRollups(actor.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rollups)
}

func (dc *DashboardController) GetTeamRollups(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	rollups, err := dc.Dashboard.TeamRollups(actor.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rollups)
}

func (dc *DashboardController) GetCompletionRate(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	result, err := dc.Dashboard.CompletionRate(actor.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (dc *DashboardController) GetTopCategories(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	categories, err := dc.Dashboard.TopCategories(actor.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}

// GetWeeklyReport summarizes the current week's tasks. An optional
// ?week=2025-03-02 query pins the report to another week.
func (dc *DashboardController) GetWeeklyReport(c *fiber.Ctx) error {
	ref := time.Now()
	if week := c.Query("week"); week != "" {
		parsed, err := time.Parse("2006-01-02", week)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid week date, expected YYYY-MM-DD",
			})
		}
		ref = parsed
	}

	actor := middleware.CurrentUser(c)
	report, err := dc.Dashboard.WeeklyReport(actor.ID, ref)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}
