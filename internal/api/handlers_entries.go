package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/wecare-app/wecare/internal/services"
)

type entryPayload struct {
	Body      string `json:"body"`
	WrittenAt string `json:"written_at"`
}

func (handler *Handler) CreateEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthenticated")
	}

	payload := entryPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	writtenAt := time.Time{}
	if parsed, err := parseTimeParam(payload.WrittenAt); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid written_at")
	} else if parsed != nil {
		writtenAt = *parsed
	}

	entry, err := handler.journalService.Create(c.Context(), user.ID, payload.Body, writtenAt)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (handler *Handler) GetEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthenticated")
	}

	entry, err := handler.journalService.Get(user.ID, c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(entry)
}

func (handler *Handler) ListEntries(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthenticated")
	}

	since, err := parseTimeParam(c.Query("since"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid since")
	}
	until, err := parseTimeParam(c.Query("until"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid until")
	}
	cursorWrittenAt, cursorID, err := decodeEntryCursor(c.Query("cursor"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid cursor")
	}
	// Out-of-range limits are clamped; the cursor check below must use the
	// effective page size, not the requested one.
	limit := services.EntryListLimit(c.QueryInt("limit", services.DefaultEntryListLimit))

	entries, err := handler.journalService.List(user.ID, since, until, cursorWrittenAt, cursorID, limit)
	if err != nil {
		return serviceError(c, err)
	}

	nextCursor := ""
	if len(entries) == limit {
		last := entries[len(entries)-1]
		nextCursor = encodeEntryCursor(last.WrittenAt, last.ID)
	}
	return c.JSON(fiber.Map{"entries": entries, "next_cursor": nextCursor})
}

func (handler *Handler) DeleteEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthenticated")
	}

	if err := handler.journalService.SoftDelete(user.ID, c.Params("id")); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) ReviseEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthenticated")
	}

	payload := entryPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	revision, err := handler.journalService.Revise(c.Context(), user.ID, c.Params("id"), payload.Body)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(revision)
}
