package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	api.Get("/me", handler.AuthRequired, handler.Me)

	entries := api.Group("/entries", handler.AuthRequired)
	entries.Post("", handler.CreateEntry)
	entries.Get("", handler.ListEntries)
	entries.Get("/:id", handler.GetEntry)
	entries.Delete("/:id", handler.DeleteEntry)
	entries.Post("/:id/revise", handler.ReviseEntry)

	api.Get("/trends", handler.AuthRequired, handler.GetTrend)

	posts := api.Group("/posts", handler.AuthRequired)
	posts.Post("", handler.CreatePost)
	posts.Get("", handler.ListPosts)
	posts.Post("/:id/comments", handler.AddComment)
	posts.Get("/:id/comments", handler.ListComments)

	admin := api.Group("/admin", handler.AuthRequired, handler.AdminOnly)
	admin.Get("/overview", handler.AdminOverview)
	admin.Get("/review", handler.AdminReview)
}
