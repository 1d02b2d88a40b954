package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"conferenceapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// db may be nil when the memory store is in use.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.ConferenceService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	conferences := app.Group("/conferences")
	conferences.Get("/", ListConferences(svc))
	conferences.Post("/", CreateConference(svc))
	conferences.Get("/:id", GetConference(svc))
	conferences.Put("/:id", ReplaceConference(svc))
	conferences.Patch("/:id", PatchConference(svc))
	conferences.Delete("/:id", DeleteConference(svc))
	conferences.Get("/:id/reviews", ListReviews(svc))
	conferences.Patch("/:id/reviews", AppendReviews(svc))
	conferences.Delete("/:id/reviews/:reviewId", DeleteReview(svc))
}
