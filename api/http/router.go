package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobportal/api/http/handlers"
)

// Handlers — набор обработчиков, которые маршрутизатор вешает на приложение.
type Handlers struct {
	Auth        *handlers.AuthHandler
	Health      *handlers.HealthHandler
	Job         *handlers.JobHandler
	Profile     *handlers.ProfileHandler
	Application *handlers.ApplicationHandler
	Chat        *handlers.ChatHandler
}

// Register wires all HTTP routes onto given Fiber app.
// authMW проверяет JWT; recruiterOnly/seekerOnly режут доступ по роли.
func Register(app *fiber.App, h Handlers, authMW, recruiterOnly, seekerOnly fiber.Handler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", h.Auth.Register)
	a.Post("/login", h.Auth.Login)

	// Вакансии: просмотр доступен всем авторизованным, управление — рекрутёру.
	jobs := v1.Group("/jobs", authMW)
	jobs.Get("/", h.Job.List)
	jobs.Get("/:id", h.Job.Get)
	jobs.Post("/", recruiterOnly, h.Job.Create)
	jobs.Put("/:id", recruiterOnly, h.Job.Update)
	jobs.Patch("/:id/status", recruiterOnly, h.Job.SetStatus)
	jobs.Delete("/:id", recruiterOnly, h.Job.Delete)

	// Отклики на вакансию
	jobs.Post("/:id/applications", seekerOnly, h.Application.Apply)
	jobs.Get("/:id/applications", recruiterOnly, h.Application.ListForJob)

	// Профиль соискателя
	profile := v1.Group("/profile", authMW, seekerOnly)
	profile.Put("/", h.Profile.Save)
	profile.Get("/", h.Profile.Get)
	profile.Post("/resume", h.Profile.UploadResume)

	// Жизненный цикл отклика
	apps := v1.Group("/applications", authMW)
	apps.Get("/", seekerOnly, h.Application.ListOwn)
	apps.Post("/scan-pending", recruiterOnly, h.Application.ScanPending)
	apps.Post("/:id/scan", recruiterOnly, h.Application.Scan)
	apps.Post("/:id/action", recruiterOnly, h.Application.Act)
	apps.Post("/:id/schedule", recruiterOnly, h.Application.Schedule)

	v1.Get("/interviews/next-slot", authMW, recruiterOnly, h.Application.NextSlot)

	// Чат рекрутёра с кандидатом (websocket)
	v1.Get("/chat/ws", authMW, h.Chat.Upgrade, h.Chat.Serve())
}
