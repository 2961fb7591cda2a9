package docs

import (
	"errors"
	"strings"

	"portal-backend/internal/auth"
	"portal-backend/internal/database"
	"portal-backend/internal/inquiry"
	"portal-backend/internal/models"
	"portal-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttachDocRequest struct {
	Name string `json:"name"`
	Data string `json:"data"` // base64 payload, stored opaque
}

type DocSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// POST /api/inquiries/:id/docs
func AttachDocHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		inq, err := loadInquiry(c)
		if err != nil {
			return err
		}

		var body AttachDocRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if strings.TrimSpace(body.Name) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Document name is required")
		}

		doc := models.TechnicalDoc{
			ID:        uuid.NewString(),
			InquiryID: inq.ID,
			Name:      body.Name,
			Data:      body.Data,
		}

		if err := database.DB.Create(&doc).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not attach document")
		}

		return c.Status(fiber.StatusCreated).JSON(DocSummary{
			ID:        doc.ID,
			Name:      doc.Name,
			CreatedAt: doc.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

// GET /api/inquiries/:id/docs
func ListDocsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		inq, err := loadInquiry(c)
		if err != nil {
			return err
		}

		var docList []models.TechnicalDoc
		if err := database.DB.Where("inquiry_id = ?", inq.ID).
			Order("created_at ASC").Find(&docList).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list documents")
		}

		resp := make([]DocSummary, 0, len(docList))
		for _, d := range docList {
			resp = append(resp, DocSummary{
				ID:        d.ID,
				Name:      d.Name,
				CreatedAt: d.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return c.JSON(resp)
	}
}

// GET /api/inquiries/:id/docs/:docID
func GetDocHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		inq, err := loadInquiry(c)
		if err != nil {
			return err
		}

		var doc models.TechnicalDoc
		if err := database.DB.Where("id = ? AND inquiry_id = ?", c.Params("docID"), inq.ID).
			First(&doc).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Document not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load document")
		}

		return c.JSON(doc)
	}
}

// loadInquiry resolves :id with the same role scoping as the detail view.
func loadInquiry(c *fiber.Ctx) (*models.Inquiry, error) {
	sess, err := auth.CurrentUser(c)
	if err != nil {
		return nil, err
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid inquiry id")
	}

	inq, err := store.NewInquiryStore(database.DB).Get(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Inquiry not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not load inquiry")
	}

	if !inquiry.Visible(inq, sess) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Inquiry not found")
	}

	return inq, nil
}
