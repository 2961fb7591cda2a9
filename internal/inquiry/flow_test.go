package inquiry_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"portal-backend/internal/auth"
	"portal-backend/internal/catalog"
	"portal-backend/internal/config"
	"portal-backend/internal/dashboard"
	"portal-backend/internal/database"
	"portal-backend/internal/inquiry"
	"portal-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupPortal(t *testing.T) *fiber.App {
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
	if err := catalog.Seed(db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	database.DB = db

	cfg := &config.Config{JWTSecret: strings.Repeat("s", 32), InquirySeries: "03/INQ/26"}

	app := fiber.New()
	api := app.Group("/api")
	api.Post("/auth/register", auth.RegisterHandler())
	api.Post("/auth/login", auth.LoginHandler(cfg))

	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))
	protected.Post("/inquiries", auth.RequireRole(models.RoleSales), inquiry.CreateInquiryHandler(cfg))
	protected.Get("/inquiries", inquiry.ListInquiriesHandler())
	protected.Get("/inquiries/:id", inquiry.GetInquiryHandler())
	protected.Put("/inquiries/:id/status", inquiry.UpdateStatusHandler())
	protected.Get("/dashboard/summary", auth.RequireRole(models.RolePlanning), dashboard.SummaryHandler())

	return app
}

func request(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, into any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func loginAs(t *testing.T, app *fiber.App, name, email string, role models.UserRole) string {
	t.Helper()
	resp := request(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name": name, "email": email, "pass": "secret123", "role": role,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: status %d", email, resp.StatusCode)
	}
	resp = request(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": email, "pass": "secret123",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d", email, resp.StatusCode)
	}
	var login struct {
		Token string `json:"token"`
	}
	decode(t, resp, &login)
	return login.Token
}

type summary struct {
	ConfirmedRevenue float64 `json:"confirmed_revenue"`
	InProgress       int     `json:"in_progress"`
	TotalVolume      int     `json:"total_volume"`
}

// The full portal journey: a Sales user registers and logs in, creates an
// inquiry for META Electric Company, the Planning dashboard counts it as
// in-progress with no confirmed revenue, and once the inquiry is accepted
// the confirmed revenue picks up its value.
func TestPortalFlow(t *testing.T) {
	app := setupPortal(t)

	salesToken := loginAs(t, app, "Alice", "alice@x.com", models.RoleSales)
	planningToken := loginAs(t, app, "Petra", "petra@x.com", models.RolePlanning)

	resp := request(t, app, http.MethodPost, "/api/inquiries", salesToken, fiber.Map{
		"cust_id":   "03/IC/00002",
		"cust_name": "META Electric Company",
		"engineer":  "Feroz Khan",
		"items": []fiber.Map{
			{"code": "01305-40000120", "desc": "TERMINATION KIT,OUTDOOR,36KV,1X630MM2", "qty": 2, "unit_price": 100},
		},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create inquiry: status %d", resp.StatusCode)
	}
	var created models.Inquiry
	decode(t, resp, &created)
	if created.Reference != "03/INQ/26/00001" || created.Status != models.StatusEngineering {
		t.Fatalf("created inquiry = %+v", created)
	}

	resp = request(t, app, http.MethodGet, "/api/dashboard/summary", planningToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("summary: status %d", resp.StatusCode)
	}
	var s summary
	decode(t, resp, &s)
	if s.InProgress != 1 || s.ConfirmedRevenue != 0 || s.TotalVolume != 1 {
		t.Fatalf("summary before acceptance = %+v", s)
	}

	// Engineering cannot be skipped.
	resp = request(t, app, http.MethodPut, idPath(created.ID)+"/status", planningToken, fiber.Map{"status": "Accepted"})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("skip to Accepted: status %d, want 409", resp.StatusCode)
	}

	resp = request(t, app, http.MethodPut, idPath(created.ID)+"/status", planningToken, fiber.Map{"status": "Planning"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("to Planning: status %d", resp.StatusCode)
	}
	resp = request(t, app, http.MethodPut, idPath(created.ID)+"/status", planningToken, fiber.Map{"status": "Accepted"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("to Accepted: status %d", resp.StatusCode)
	}

	resp = request(t, app, http.MethodGet, "/api/dashboard/summary", planningToken, nil)
	decode(t, resp, &s)
	if s.ConfirmedRevenue != 200 || s.InProgress != 0 {
		t.Fatalf("summary after acceptance = %+v", s)
	}

	// Terminal: nothing moves out of Accepted.
	resp = request(t, app, http.MethodPut, idPath(created.ID)+"/status", planningToken, fiber.Map{"status": "Rejected"})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("out of Accepted: status %d, want 409", resp.StatusCode)
	}
}

func TestRoleScopedListing(t *testing.T) {
	app := setupPortal(t)

	aliceToken := loginAs(t, app, "Alice", "alice@x.com", models.RoleSales)
	bobToken := loginAs(t, app, "Bob", "bob@x.com", models.RoleSales)
	ferozToken := loginAs(t, app, "Feroz Khan", "feroz@x.com", models.RoleEngineering)
	planningToken := loginAs(t, app, "Petra", "petra@x.com", models.RolePlanning)

	mkInquiry := func(token, custName, engineer string) {
		t.Helper()
		resp := request(t, app, http.MethodPost, "/api/inquiries", token, fiber.Map{
			"cust_name": custName, "engineer": engineer,
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("create for %s: status %d", custName, resp.StatusCode)
		}
	}
	mkInquiry(aliceToken, "META Electric Company", "Feroz Khan")
	mkInquiry(aliceToken, "Gulf Cable Works", "Nitin Derekar")
	mkInquiry(bobToken, "Red Sea Switchgear", "Feroz Khan")

	list := func(token, q string) []models.Inquiry {
		t.Helper()
		path := "/api/inquiries"
		if q != "" {
			path += "?q=" + q
		}
		resp := request(t, app, http.MethodGet, path, token, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("list: status %d", resp.StatusCode)
		}
		var inqs []models.Inquiry
		decode(t, resp, &inqs)
		return inqs
	}

	if got := list(aliceToken, ""); len(got) != 2 {
		t.Errorf("alice sees %d inquiries, want her own 2", len(got))
	}
	if got := list(ferozToken, ""); len(got) != 2 {
		t.Errorf("assigned engineer sees %d inquiries, want 2", len(got))
	}
	if got := list(planningToken, ""); len(got) != 3 {
		t.Errorf("planning sees %d inquiries, want all 3", len(got))
	}
	if got := list(aliceToken, "meta"); len(got) != 1 || got[0].CustName != "META Electric Company" {
		t.Errorf("search within role scope = %+v", got)
	}

	// Engineering role may not open the create endpoint.
	resp := request(t, app, http.MethodPost, "/api/inquiries", ferozToken, fiber.Map{
		"cust_name": "X", "engineer": "Y",
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("engineer create: status %d, want 403", resp.StatusCode)
	}

	// Bob cannot open Alice's inquiry.
	alices := list(aliceToken, "meta")
	resp = request(t, app, http.MethodGet, idPath(alices[0].ID), bobToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("cross-owner detail: status %d, want 404", resp.StatusCode)
	}
}

func TestCreateInquiryValidation(t *testing.T) {
	app := setupPortal(t)
	salesToken := loginAs(t, app, "Alice", "alice@x.com", models.RoleSales)

	resp := request(t, app, http.MethodPost, "/api/inquiries", salesToken, fiber.Map{
		"cust_name": "", "engineer": "Feroz Khan",
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("blank client: status %d, want 422", resp.StatusCode)
	}

	resp = request(t, app, http.MethodPost, "/api/inquiries", salesToken, fiber.Map{
		"cust_name": "META Electric Company", "engineer": "",
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("blank engineer: status %d, want 422", resp.StatusCode)
	}
}

func idPath(id uint) string {
	return "/api/inquiries/" + strconv.FormatUint(uint64(id), 10)
}
