package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"portal-backend/internal/config"
	"portal-backend/internal/database"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	database.DB = db

	cfg := &config.Config{JWTSecret: strings.Repeat("s", 32)}

	app := fiber.New()
	api := app.Group("/api")
	api.Post("/auth/register", RegisterHandler())
	api.Post("/auth/login", LoginHandler(cfg))

	protected := api.Group("")
	protected.Use(JWTMiddleware(cfg))
	protected.Get("/auth/me", MeHandler())

	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	return resp
}

func TestRegisterAndLogin(t *testing.T) {
	app := setupApp(t)

	resp := postJSON(t, app, "/api/auth/register", fiber.Map{
		"name": "Alice", "email": "Alice@X.com", "pass": "secret123", "role": "Sales",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d", resp.StatusCode)
	}

	var created map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created["email"] != "alice@x.com" {
		t.Errorf("email not normalized: %v", created["email"])
	}
	if _, ok := created["token"]; ok {
		t.Error("registration must not log the user in")
	}

	resp = postJSON(t, app, "/api/auth/login", fiber.Map{"email": "alice@x.com", "pass": "secret123"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}
	var login struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if login.Token == "" || login.User.Role != "Sales" {
		t.Errorf("login response = %+v", login)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	meResp, err := app.Test(req)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if meResp.StatusCode != http.StatusOK {
		t.Errorf("me status = %d", meResp.StatusCode)
	}
}

func TestRegisterValidation(t *testing.T) {
	app := setupApp(t)

	resp := postJSON(t, app, "/api/auth/register", fiber.Map{
		"name": "", "email": "a@x.com", "pass": "pw", "role": "Sales",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("blank name status = %d", resp.StatusCode)
	}

	resp = postJSON(t, app, "/api/auth/register", fiber.Map{
		"name": "A", "email": "a@x.com", "pass": "pw", "role": "Wizard",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad role status = %d", resp.StatusCode)
	}

	ok := postJSON(t, app, "/api/auth/register", fiber.Map{
		"name": "A", "email": "a@x.com", "pass": "pw", "role": "Planning",
	})
	if ok.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d", ok.StatusCode)
	}

	dup := postJSON(t, app, "/api/auth/register", fiber.Map{
		"name": "B", "email": "a@x.com", "pass": "pw2", "role": "Sales",
	})
	if dup.StatusCode != http.StatusConflict {
		t.Errorf("duplicate email status = %d", dup.StatusCode)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	app := setupApp(t)

	postJSON(t, app, "/api/auth/register", fiber.Map{
		"name": "Alice", "email": "alice@x.com", "pass": "secret123", "role": "Sales",
	})

	resp := postJSON(t, app, "/api/auth/login", fiber.Map{"email": "alice@x.com", "pass": "wrong"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("wrong password status = %d", resp.StatusCode)
	}

	resp = postJSON(t, app, "/api/auth/login", fiber.Map{"email": "nobody@x.com", "pass": "secret123"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("unknown email status = %d", resp.StatusCode)
	}
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("missing token status = %d", resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("garbage token status = %d", resp.StatusCode)
	}
}
