package api

import (
	"github.com/gofiber/fiber/v2"
)

type postPayload struct {
	Body      string `json:"body"`
	Anonymous bool   `json:"anonymous"`
}

type commentPayload struct {
	Body string `json:"body"`
}

func (handler *Handler) CreatePost(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthenticated")
	}

	payload := postPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	post, err := handler.forumService.CreatePost(user.ID, payload.Body, payload.Anonymous)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (handler *Handler) ListPosts(c *fiber.Ctx) error {
	if _, ok := currentUser(c); !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthenticated")
	}

	posts, err := handler.forumService.ListPosts(c.Query("cursor"), c.QueryInt("limit", 20))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

func (handler *Handler) AddComment(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthenticated")
	}

	payload := commentPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	comment, err := handler.forumService.AddComment(user.ID, c.Params("id"), payload.Body)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (handler *Handler) ListComments(c *fiber.Ctx) error {
	if _, ok := currentUser(c); !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthenticated")
	}

	comments, err := handler.forumService.ListComments(c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"comments": comments})
}
