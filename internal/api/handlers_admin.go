package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) AdminOverview(c *fiber.Ctx) error {
	overview, err := handler.adminService.Overview()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build overview")
	}
	return c.JSON(overview)
}

func (handler *Handler) AdminReview(c *fiber.Ctx) error {
	queue, err := handler.adminService.Review(c.QueryInt("limit", 25))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build review queue")
	}
	return c.JSON(queue)
}
