package main

import (
	"log"
	"strings"

	"portal-backend/internal/audit"
	"portal-backend/internal/auth"
	"portal-backend/internal/catalog"
	"portal-backend/internal/config"
	"portal-backend/internal/dashboard"
	"portal-backend/internal/database"
	"portal-backend/internal/docs"
	"portal-backend/internal/inquiry"
	"portal-backend/internal/models"
	"portal-backend/internal/quote"
	"portal-backend/internal/report"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	if err := catalog.Seed(database.DB); err != nil {
		log.Fatalf("Could not seed reference data: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register", auth.RegisterHandler())
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Reference data
	protected.Get("/catalog/items", catalog.ListMasterItemsHandler())
	protected.Get("/catalog/customers", catalog.ListCustomerAccountsHandler())
	protected.Get("/catalog/engineers", catalog.ListEngineersHandler())

	// Inquiries
	protected.Post("/inquiries", auth.RequireRole(models.RoleSales), inquiry.CreateInquiryHandler(cfg))
	protected.Get("/inquiries", inquiry.ListInquiriesHandler())
	protected.Get("/inquiries/:id", inquiry.GetInquiryHandler())
	protected.Put("/inquiries/:id", inquiry.UpdateInquiryHandler())
	protected.Put("/inquiries/:id/status", inquiry.UpdateStatusHandler())

	// Technical documents
	protected.Post("/inquiries/:id/docs", docs.AttachDocHandler())
	protected.Get("/inquiries/:id/docs", docs.ListDocsHandler())
	protected.Get("/inquiries/:id/docs/:docID", docs.GetDocHandler())

	// Registration wizard (Sales only)
	drafts := protected.Group("/drafts")
	drafts.Use(auth.RequireRole(models.RoleSales))
	drafts.Post("/", quote.CreateDraftHandler())
	drafts.Get("/", quote.GetDraftHandler())
	drafts.Put("/header", quote.UpdateHeaderHandler())
	drafts.Post("/items", quote.AddItemHandler())
	drafts.Put("/items/:index", quote.UpdateItemHandler())
	drafts.Delete("/items/:index", quote.RemoveItemHandler())
	drafts.Post("/submit", quote.SubmitDraftHandler(cfg))

	// Dashboard (Planning only)
	protected.Get("/dashboard/summary", auth.RequireRole(models.RolePlanning), dashboard.SummaryHandler())

	// Report export
	protected.Get("/reports/inquiries", report.ExportInquiriesHandler())

	// Audit logs (Planning only)
	protected.Get("/audit-logs", auth.RequireRole(models.RolePlanning), audit.ListAuditLogsHandler())

	log.Println("Server running on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
