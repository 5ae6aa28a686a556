package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/club-service/internal/api/http/handlers"
	"github.com/spec-kit/club-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Events   *handlers.EventsHandler
	Clubs    *handlers.ClubsHandler
	Admin    *handlers.AdminHandler
	Faculty  *handlers.FacultyHandler
	Student  *handlers.StudentHandler
	Resolver *auth.Resolver
	Policy   *auth.PolicyTable
}

// RegisterRoutes wires HTTP routes. The resolver runs first and the
// policy table second, so every handler below executes only after its
// route-class check passed.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Resolver.Handle)
	app.Use(cfg.Policy.Enforce())

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)

	eventsGroup := api.Group("/events")
	eventsGroup.Get("/", cfg.Events.List)
	eventsGroup.Get("/upcoming", cfg.Events.Upcoming)
	eventsGroup.Get("/club/:clubId", cfg.Events.ByClub)
	eventsGroup.Get("/:id", cfg.Events.GetByID)

	clubsGroup := api.Group("/clubs")
	clubsGroup.Get("/all", cfg.Clubs.All)
	clubsGroup.Get("/:id/details", cfg.Clubs.Details)

	adminGroup := api.Group("/admin")
	adminGroup.Get("/clubs", cfg.Admin.ListClubs)
	adminGroup.Post("/clubs/add", cfg.Admin.AddClub)
	adminGroup.Put("/clubs/:id", cfg.Admin.UpdateClub)
	adminGroup.Delete("/clubs/:id", cfg.Admin.DeleteClub)
	adminGroup.Get("/events", cfg.Admin.ListEvents)
	adminGroup.Put("/events/:id/visibility", cfg.Admin.SetEventVisibility)
	adminGroup.Delete("/events/:id", cfg.Admin.DeleteEvent)
	adminGroup.Get("/users", cfg.Admin.ListUsers)
	adminGroup.Put("/users/:id/assign", cfg.Admin.AssignClub)

	facultyGroup := api.Group("/faculty")
	facultyGroup.Post("/add-event", cfg.Faculty.AddEvent)
	facultyGroup.Get("/event-details/:clubId/:eventName", cfg.Faculty.EventDetails)
	facultyGroup.Put("/update-event/:eventId", cfg.Faculty.UpdateEvent)
	facultyGroup.Delete("/delete-event/:eventId", cfg.Faculty.DeleteEvent)
	facultyGroup.Get("/my-events", cfg.Faculty.MyEvents)
	facultyGroup.Get("/submissions/:clubId", cfg.Faculty.Submissions)
	facultyGroup.Put("/update-status/:regId", cfg.Faculty.UpdateStatus)

	studentGroup := api.Group("/student")
	studentGroup.Post("/register", cfg.Student.Register)
	studentGroup.Put("/update-form-data", cfg.Student.UpdateFormData)
	studentGroup.Get("/my-registrations", cfg.Student.MyRegistrations)
}
