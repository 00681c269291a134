package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	controller "tasknest/controllers"
	"tasknest/middleware"
	"tasknest/service"
	"tasknest/store"
)

// SetupAuthRoutes wires the public authentication endpoints. Register
// and login sit behind the per-IP rate limiter.
func SetupAuthRoutes(app *fiber.App, st *store.Store) {
	authLogger := log.New(os.Stdout, "AUTH: ", log.Ldate|log.Ltime|log.Lshortfile)

	userService := service.NewUserService(st, authLogger)
	authController := controller.NewAuthController(userService, authLogger)

	auth := app.Group("/auth", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	limited := auth.Group("", middleware.AuthRateLimiter())
	limited.Post("/register", authController.Register)
	limited.Post("/login", authController.Login)
	auth.Post("/refresh", authController.RefreshToken)

	protectedAuth := auth.Group("", middleware.Protected(st))
	protectedAuth.Get("/me", authController.GetCurrentUser)

	authLogger.Println("Authentication routes initialized successfully")
}

// SetupAPIRoutes wires the protected API surface
func SetupAPIRoutes(app *fiber.App, st *store.Store) {
	userController := controller.NewUserController(
		service.NewUserService(st, log.New(os.Stdout, "USER: ", log.LstdFlags)),
		log.New(os.Stdout, "USER: ", log.LstdFlags))
	teamController := controller.NewTeamController(
		service.NewTeamService(st, log.New(os.Stdout, "TEAM: ", log.LstdFlags)),
		log.New(os.Stdout, "TEAM: ", log.LstdFlags))
	projectController := controller.NewProjectController(
		service.NewProjectService(st, log.New(os.Stdout, "PROJECT: ", log.LstdFlags)),
		log.New(os.Stdout, "PROJECT: ", log.LstdFlags))
	taskController := controller.NewTaskController(
		service.NewTaskService(st, log.New(os.Stdout, "TASK: ", log.LstdFlags)),
		log.New(os.Stdout, "TASK: ", log.LstdFlags))
	notificationController := controller.NewNotificationController(
		service.NewNotificationService(st, log.New(os.Stdout, "NOTIFY: ", log.LstdFlags)),
		log.New(os.Stdout, "NOTIFY: ", log.LstdFlags))
	dashboardController := controller.NewDashboardController(
		service.NewDashboardService(st, log.New(os.Stdout, "DASHBOARD: ", log.LstdFlags)),
		log.New(os.Stdout, "DASHBOARD: ", log.LstdFlags))

	api := app.Group("/api/v1", middleware.Protected(st), logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	users := api.Group("/users")
	users.Get("/:id", userController.GetProfile)
	users.Put("/:id", userController.UpdateUser)
	users.Delete("/:id", userController.DeleteUser)

	teams := api.Group("/teams")
	teams.Post("/", teamController.CreateTeam)
	teams.Get("/", teamController.ListTeams)
	teams.Get("/:id", teamController.GetTeam)
	teams.Put("/:id", teamController.UpdateTeam)
	teams.Delete("/:id", teamController.DeleteTeam)
	teams.Post("/:id/members", teamController.AddMember)
	teams.Delete("/:id/members/:userId", teamController.RemoveMember)

	projects := api.Group("/projects")
	projects.Post("/", projectController.CreateProject)
	projects.Get("/", projectController.ListProjects)
	projects.Get("/:id", projectController.GetProject)
	projects.Put("/:id", projectController.UpdateProject)
	projects.Delete("/:id", projectController.DeleteProject)
	projects.Get("/:id/tasks", projectController.ListProjectTasks)

	tasks := api.Group("/tasks")
	tasks.Post("/", taskController.CreateTask)
	tasks.Get("/", taskController.ListTasks)
	tasks.Get("/assigned", taskController.ListAssignedTasks)
	tasks.Get("/:id", taskController.GetTask)
	tasks.Put("/:id", taskController.UpdateTask)
	tasks.Delete("/:id", taskController.DeleteTask)
	tasks.Post("/:id/assign", taskController.AssignTask)
	tasks.Post("/:id/comments", taskController.AddComment)
	tasks.Get("/:id/comments", taskController.ListComments)

	comments := api.Group("/comments")
	comments.Delete("/:commentId", taskController.DeleteComment)

	notifications := api.Group("/notifications")
	notifications.Post("/", notificationController.CreateNotification)
	notifications.Get("/", notificationController.ListNotifications)
	notifications.Put("/:id/read", notificationController.MarkRead)
	notifications.Delete("/:id", notificationController.DeleteNotification)

	recommendations := api.Group("/recommendations")
	recommendations.Post("/", notificationController.AddRecommendation)
	recommendations.Get("/", notificationController.ListRecommendations)

	dashboard := api.Group("/dashboard")
	dashboard.Get("/stats", dashboardController.GetStats)
	dashboard.Get("/projects", dashboardController.GetProjectRollups)
	dashboard.Get("/teams", dashboardController.GetTeamRollups)
	dashboard.Get("/completion-rate", dashboardController.GetCompletionRate)
	dashboard.Get("/top-categories", dashboardController.GetTopCategories)
	dashboard.Get("/weekly-report", dashboardController.GetWeeklyReport)
}
