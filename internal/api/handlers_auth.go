package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/wecare-app/wecare/internal/models"
	"github.com/wecare-app/wecare/internal/services"
	"golang.org/x/crypto/bcrypt"
)

type credentialsInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	RememberMe  bool   `json:"remember_me"`
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := credentialsInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	email, password, err := services.NormalizeCredentialsInput(input.Email, input.Password)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := services.ValidatePasswordStrength(password); err != nil {
		return apiError(c, fiber.StatusBadRequest, "weak password")
	}

	exists, err := handler.authService.RegistrationEmailExists(email)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to check email")
	}
	if exists {
		return apiError(c, fiber.StatusConflict, "email already exists")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to secure password")
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(passwordHash),
		DisplayName:  strings.TrimSpace(input.DisplayName),
		Role:         models.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}
	if err := handler.authService.CreateUser(&user); err != nil {
		return apiError(c, fiber.StatusConflict, "email already exists")
	}

	if err := handler.setAuthCookie(c, &user, true); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	input := credentialsInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	email, password, err := services.NormalizeCredentialsInput(input.Email, input.Password)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.authService.FindByNormalizedEmail(email)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}

	if err := handler.setAuthCookie(c, &user, input.RememberMe); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.JSON(user)
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthenticated")
	}
	return c.JSON(user)
}
