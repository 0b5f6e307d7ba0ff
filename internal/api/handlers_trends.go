package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// parseTrendWindow accepts Go durations ("6h", "90m") plus the day/week
// shorthands the dashboard uses.
func parseTrendWindow(raw string) (time.Duration, error) {
	trimmed := strings.TrimSpace(strings.ToLower(raw))
	switch trimmed {
	case "", "day", "daily", "1d":
		return 24 * time.Hour, nil
	case "week", "weekly", "1w":
		return 7 * 24 * time.Hour, nil
	}
	return time.ParseDuration(trimmed)
}

func (handler *Handler) GetTrend(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthenticated")
	}

	window, err := parseTrendWindow(c.Query("window"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid trend window")
	}

	from, err := parseTimeParam(c.Query("from"))
	if err != nil || from == nil {
		return apiError(c, fiber.StatusBadRequest, "invalid from")
	}
	to, err := parseTimeParam(c.Query("to"))
	if err != nil || to == nil {
		return apiError(c, fiber.StatusBadRequest, "invalid to")
	}

	buckets, err := handler.trendService.GetTrend(user.ID, window, *from, *to)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"buckets": buckets})
}
