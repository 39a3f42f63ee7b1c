package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"careerbridge/internal/domain/user"
	"careerbridge/internal/http/handlers"
	httpmw "careerbridge/internal/http/middleware"
)

type RouterDependencies struct {
	AuthHandler        *handlers.AuthHandler
	OpportunityHandler *handlers.OpportunityHandler
	ApplicationHandler *handlers.ApplicationHandler
	ProfileHandler     *handlers.ProfileHandler
	AuthMiddleware     *httpmw.AuthMiddleware
	Limiter            httpmw.Limiter
	UploadDir          string
	BodyLimitBytes     int
	ReadTimeout        time.Duration
}

func NewRouter(deps RouterDependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:   deps.BodyLimitBytes,
		ReadTimeout: deps.ReadTimeout,
	})

	app.Use(requestid.New())
	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Static("/uploads", deps.UploadDir)

	api := app.Group("/api")
	authenticated := deps.AuthMiddleware.Authenticate()
	studentOnly := httpmw.RequireRole(user.RoleStudent)
	companyOnly := httpmw.RequireRole(user.RoleCompany)

	auth := api.Group("/auth", httpmw.RateLimit(deps.Limiter, "auth", 20, time.Minute))
	auth.Post("/register/student", deps.AuthHandler.RegisterStudent)
	auth.Post("/register/company", deps.AuthHandler.RegisterCompany)
	auth.Post("/login", deps.AuthHandler.Login)
	auth.Post("/reset-password", deps.AuthHandler.ResetPassword)

	opportunities := api.Group("/opportunities")
	opportunities.Get("/", deps.OpportunityHandler.List)
	opportunities.Get("/company", authenticated, companyOnly, deps.OpportunityHandler.ListByCompany)
	opportunities.Get("/:id", authenticated, deps.OpportunityHandler.Get)
	opportunities.Post("/", authenticated, companyOnly, deps.OpportunityHandler.Create)
	opportunities.Put("/:id", authenticated, companyOnly, deps.OpportunityHandler.Update)
	opportunities.Delete("/:id", authenticated, companyOnly, deps.OpportunityHandler.Delete)
	opportunities.Post("/save/:id", authenticated, studentOnly, deps.OpportunityHandler.Save)
	opportunities.Post("/unsave/:id", authenticated, studentOnly, deps.OpportunityHandler.Unsave)

	applications := api.Group("/applications", authenticated)
	applications.Post("/apply/:oppId", studentOnly, httpmw.RateLimit(deps.Limiter, "apply", 30, time.Minute), deps.ApplicationHandler.Apply)
	applications.Get("/student", studentOnly, deps.ApplicationHandler.ListForStudent)
	applications.Get("/company", companyOnly, deps.ApplicationHandler.ListForCompany)
	applications.Put("/:id/status", companyOnly, deps.ApplicationHandler.UpdateStatus)
	applications.Put("/:id/interview", companyOnly, deps.ApplicationHandler.ScheduleInterview)
	applications.Put("/:id/withdraw-student", studentOnly, deps.ApplicationHandler.Withdraw)
	applications.Delete("/:id", deps.ApplicationHandler.Delete)
	applications.Post("/:id/notes", companyOnly, deps.ApplicationHandler.AddNote)

	profile := api.Group("/profile", authenticated)
	profile.Get("/notifications", studentOnly, deps.ProfileHandler.Notifications)
	profile.Delete("/notifications/:index", studentOnly, deps.ProfileHandler.DismissNotification)
	profile.Post("/notifications/read-all", studentOnly, deps.ProfileHandler.DismissAllNotifications)
	profile.Get("/:role", deps.ProfileHandler.Get)
	profile.Put("/:role", deps.ProfileHandler.Update)

	companyArea := api.Group("/company", authenticated, companyOnly)
	companyArea.Get("/dashboard/stats", deps.ProfileHandler.DashboardStats)
	companyArea.Post("/profile/logo", deps.ProfileHandler.UploadLogo)

	return app
}
