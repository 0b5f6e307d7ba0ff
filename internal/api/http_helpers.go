package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/wecare-app/wecare/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// serviceError maps the service taxonomy onto HTTP statuses. Cross-user
// access answers the same 404 as a missing entry so existence never leaks.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrUnauthorized):
		return apiError(c, fiber.StatusNotFound, "not found")
	case errors.Is(err, services.ErrBodyRequired):
		return apiError(c, fiber.StatusBadRequest, "body is required")
	case errors.Is(err, services.ErrBodyTooLong):
		return apiError(c, fiber.StatusBadRequest, "body too long")
	case errors.Is(err, services.ErrContentRejected):
		return apiError(c, fiber.StatusUnprocessableEntity, "content contains flagged words")
	case errors.Is(err, services.ErrInvalidTrendWindow):
		return apiError(c, fiber.StatusBadRequest, "invalid trend window")
	case errors.Is(err, services.ErrInvalidTrendRange):
		return apiError(c, fiber.StatusBadRequest, "invalid trend range")
	default:
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
}

// parseTimeParam accepts RFC3339 timestamps or bare dates (2024-01-01, read
// as midnight UTC).
func parseTimeParam(raw string) (*time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	if parsed, err := time.Parse(time.RFC3339, trimmed); err == nil {
		utc := parsed.UTC()
		return &utc, nil
	}
	if parsed, err := time.ParseInLocation("2006-01-02", trimmed, time.UTC); err == nil {
		return &parsed, nil
	}
	return nil, fmt.Errorf("invalid time %q", trimmed)
}

// encodeEntryCursor and decodeEntryCursor carry the keyset position
// (written_at, row id) between list pages.
func encodeEntryCursor(writtenAt time.Time, id uint) string {
	return fmt.Sprintf("%d.%d", writtenAt.UTC().UnixNano(), id)
}

func decodeEntryCursor(raw string) (*time.Time, uint, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, 0, nil
	}
	parts := strings.SplitN(trimmed, ".", 2)
	if len(parts) != 2 {
		return nil, 0, fmt.Errorf("invalid cursor %q", raw)
	}
	nanos, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid cursor %q", raw)
	}
	id, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid cursor %q", raw)
	}
	writtenAt := time.Unix(0, nanos).UTC()
	return &writtenAt, uint(id), nil
}
