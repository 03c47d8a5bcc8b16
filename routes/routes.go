package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	controller "insureops/controllers"
	"insureops/middleware"
	"insureops/store"
)

// SetupRoutes wires every API endpoint. All /api routes run behind the
// identity resolver; everything except the auth/team/setup endpoints also
// runs behind the tenancy guard.
func SetupRoutes(app *fiber.App, db *gorm.DB, resolver middleware.IdentityResolver, uploadDir string) {
	st := store.New(db)

	authController := controller.NewAuthController(st, log.New(os.Stdout, "AUTH: ", log.LstdFlags))
	teamController := controller.NewTeamController(st, log.New(os.Stdout, "TEAM: ", log.LstdFlags))
	dashboardController := controller.NewDashboardController(st, log.New(os.Stdout, "DASHBOARD: ", log.LstdFlags))
	documentController := controller.NewDocumentController(st, log.New(os.Stdout, "DOCUMENT: ", log.LstdFlags), uploadDir)
	taskController := controller.NewTaskController(st, log.New(os.Stdout, "TASK: ", log.LstdFlags))
	meetingController := controller.NewMeetingController(st, log.New(os.Stdout, "MEETING: ", log.LstdFlags))
	emailArchiveController := controller.NewEmailArchiveController(st, log.New(os.Stdout, "EMAIL: ", log.LstdFlags))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api", middleware.Identity(resolver), logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Endpoints that work before a team is selected
	api.Get("/auth/user", authController.GetCurrentUser)
	api.Get("/teams", teamController.GetTeams)
	api.Post("/teams/:teamId/select", teamController.SelectTeam)
	api.Post("/setup", teamController.Setup)

	// Team-scoped endpoints: no team, no operation
	scoped := api.Group("", middleware.RequireTeam(st))

	dashboard := scoped.Group("/dashboard")
	dashboard.Get("/metrics", dashboardController.GetMetrics)
	dashboard.Get("/recent-activity", dashboardController.GetRecentActivity)

	documents := scoped.Group("/documents")
	documents.Get("/", documentController.GetDocuments)
	documents.Post("/upload", documentController.UploadDocuments)
	documents.Get("/search", documentController.SearchDocuments)
	documents.Patch("/:id/status", documentController.UpdateDocumentStatus)

	tasks := scoped.Group("/tasks")
	tasks.Get("/", taskController.GetTasks)
	tasks.Get("/mine", taskController.GetMyTasks)
	tasks.Post("/", taskController.CreateTask)
	tasks.Patch("/:id", taskController.UpdateTask)

	meetings := scoped.Group("/meetings")
	meetings.Get("/", meetingController.GetMeetings)
	meetings.Get("/today", meetingController.GetTodaysMeetings)
	meetings.Post("/", meetingController.CreateMeeting)

	emails := scoped.Group("/email-archives")
	emails.Get("/", emailArchiveController.GetEmailArchives)
	emails.Post("/", emailArchiveController.CreateEmailArchive)
	emails.Get("/search", emailArchiveController.SearchEmailArchives)

	// 404 fallback
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "The requested resource was not found",
		})
	})

	log.Println("API routes initialized successfully")
}
