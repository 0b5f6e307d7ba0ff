package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/wecare-app/wecare/internal/db"
)

const testSecretKey = "test-secret-key-0123456789abcdef0123456789"

func defaultTestConfig() Config {
	return Config{
		SecretKey:           testSecretKey,
		ClassifierTimeout:   time.Second,
		ClassifierCacheTTL:  time.Minute,
		AsyncClassification: false,
	}
}

func newTestAppWithConfig(t *testing.T, config Config) (*fiber.App, *Handler) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "api-test.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	handler, err := NewHandler(database, config)
	if err != nil {
		t.Fatalf("build handler: %v", err)
	}
	t.Cleanup(handler.Close)

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, handler
}

func newTestApp(t *testing.T) (*fiber.App, *Handler) {
	t.Helper()
	return newTestAppWithConfig(t, defaultTestConfig())
}

func jsonRequest(t *testing.T, method string, path string, cookie string, payload any) *http.Request {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		request.AddCookie(&http.Cookie{Name: authCookieName, Value: cookie})
	}
	return request
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, cookie string, payload any) *http.Response {
	t.Helper()
	response, err := app.Test(jsonRequest(t, method, path, cookie, payload), -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return response
}

func decodeJSON(t *testing.T, response *http.Response, target any) {
	t.Helper()
	defer response.Body.Close()
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func authCookieFrom(t *testing.T, response *http.Response) string {
	t.Helper()
	for _, cookie := range response.Cookies() {
		if cookie.Name == authCookieName {
			return cookie.Value
		}
	}
	t.Fatal("response carries no auth cookie")
	return ""
}

// registerTestUser signs a fresh account up and returns its session cookie.
func registerTestUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	response := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email":        email,
		"password":     "Str0ngPass",
		"display_name": "Test User",
	})
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("register %s returned %d", email, response.StatusCode)
	}
	cookie := authCookieFrom(t, response)
	response.Body.Close()
	return cookie
}

func createTestEntry(t *testing.T, app *fiber.App, cookie string, body string, writtenAt string) map[string]any {
	t.Helper()

	payload := fiber.Map{"body": body}
	if writtenAt != "" {
		payload["written_at"] = writtenAt
	}
	response := doJSON(t, app, http.MethodPost, "/api/entries", cookie, payload)
	if response.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(response.Body)
		t.Fatalf("create entry returned %d: %s", response.StatusCode, raw)
	}

	entry := map[string]any{}
	decodeJSON(t, response, &entry)
	if _, ok := entry["id"].(string); !ok {
		t.Fatalf("entry response lacks public id: %v", entry)
	}
	return entry
}

func entryID(t *testing.T, entry map[string]any) string {
	t.Helper()
	id, ok := entry["id"].(string)
	if !ok || id == "" {
		t.Fatalf("missing entry id in %v", entry)
	}
	return id
}

func entryPath(id string) string {
	return fmt.Sprintf("/api/entries/%s", id)
}
