package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/wecare-app/wecare/internal/models"
)

type authClaims struct {
	UserID uint   `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*models.User, error) {
	rawToken := strings.TrimSpace(c.Cookies(authCookieName))
	if rawToken == "" {
		return nil, errors.New("no session cookie")
	}

	claims := &authClaims{}
	if _, err := jwt.ParseWithClaims(rawToken, claims, handler.sessionSigningKey,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	); err != nil {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}

	user, err := handler.authService.FindByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (handler *Handler) sessionSigningKey(*jwt.Token) (any, error) {
	return handler.secretKey, nil
}

// sessionToken signs a cookie token for the user. Remember-me sessions get
// the long TTL; the chosen TTL is returned so the cookie expiry can match the
// token expiry.
func (handler *Handler) sessionToken(user *models.User, rememberMe bool) (string, time.Duration, error) {
	tokenTTL := defaultAuthTokenTTL
	if rememberMe {
		tokenTTL = rememberAuthTokenTTL
	}

	now := time.Now()
	claims := authClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(handler.secretKey)
	if err != nil {
		return "", 0, err
	}
	return signed, tokenTTL, nil
}

func (handler *Handler) setAuthCookie(c *fiber.Ctx, user *models.User, rememberMe bool) error {
	token, tokenTTL, err := handler.sessionToken(user, rememberMe)
	if err != nil {
		return err
	}

	// Without remember-me the cookie stays session-scoped: no Expires, the
	// browser drops it on close even though the token would outlive it.
	expires := time.Time{}
	if rememberMe {
		expires = time.Now().Add(tokenTTL)
	}
	handler.writeAuthCookie(c, token, expires)
	return nil
}

func (handler *Handler) clearAuthCookie(c *fiber.Ctx) {
	handler.writeAuthCookie(c, "", time.Now().Add(-time.Hour))
}

func (handler *Handler) writeAuthCookie(c *fiber.Ctx, value string, expires time.Time) {
	cookie := &fiber.Cookie{
		Name:     authCookieName,
		Value:    value,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
	}
	if !expires.IsZero() {
		cookie.Expires = expires
	}
	c.Cookie(cookie)
}
