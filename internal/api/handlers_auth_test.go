package api

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestRegisterAndMe(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerTestUser(t, app, "alice@example.com")

	response := doJSON(t, app, http.MethodGet, "/api/me", cookie, nil)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("me returned %d", response.StatusCode)
	}
	me := map[string]any{}
	decodeJSON(t, response, &me)
	if me["email"] != "alice@example.com" {
		t.Fatalf("unexpected profile %v", me)
	}
	if _, leaked := me["password_hash"]; leaked {
		t.Fatal("password hash must never be serialized")
	}
}

func TestRegisterValidation(t *testing.T) {
	app, _ := newTestApp(t)

	tests := []struct {
		name       string
		payload    fiber.Map
		wantStatus int
	}{
		{name: "bad email", payload: fiber.Map{"email": "not-an-email", "password": "Str0ngPass"}, wantStatus: http.StatusBadRequest},
		{name: "weak password", payload: fiber.Map{"email": "bob@example.com", "password": "short"}, wantStatus: http.StatusBadRequest},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			response := doJSON(t, app, http.MethodPost, "/api/auth/register", "", testCase.payload)
			defer response.Body.Close()
			if response.StatusCode != testCase.wantStatus {
				t.Fatalf("expected %d, got %d", testCase.wantStatus, response.StatusCode)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app, _ := newTestApp(t)
	registerTestUser(t, app, "dup@example.com")

	response := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email":    "Dup@Example.com",
		"password": "Str0ngPass",
	})
	defer response.Body.Close()
	if response.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", response.StatusCode)
	}
}

func TestLoginFlow(t *testing.T) {
	app, _ := newTestApp(t)
	registerTestUser(t, app, "carol@example.com")

	response := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    " Carol@Example.com ",
		"password": "Str0ngPass",
	})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("login returned %d", response.StatusCode)
	}
	cookie := authCookieFrom(t, response)
	response.Body.Close()
	if cookie == "" {
		t.Fatal("expected session cookie")
	}

	response = doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "carol@example.com",
		"password": "WrongPass1",
	})
	defer response.Body.Close()
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", response.StatusCode)
	}
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	app, _ := newTestApp(t)

	paths := []string{"/api/me", "/api/entries", "/api/trends", "/api/posts"}
	for _, path := range paths {
		response := doJSON(t, app, http.MethodGet, path, "", nil)
		response.Body.Close()
		if response.StatusCode != http.StatusUnauthorized {
			t.Fatalf("GET %s without session returned %d", path, response.StatusCode)
		}
	}

	response := doJSON(t, app, http.MethodGet, "/api/me", "not-a-token", nil)
	defer response.Body.Close()
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", response.StatusCode)
	}
}
