package inquiry

import (
	"errors"
	"fmt"

	"portal-backend/internal/audit"
	"portal-backend/internal/auth"
	"portal-backend/internal/config"
	"portal-backend/internal/database"
	"portal-backend/internal/models"
	"portal-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ItemPayload struct {
	Code       string   `json:"code"`
	Desc       string   `json:"desc"`
	Qty        *float64 `json:"qty"`
	Unit       string   `json:"unit"`
	LandedCost float64  `json:"landed_cost"`
	UnitPrice  float64  `json:"unit_price"`
	Delivery   string   `json:"delivery"`
}

func (p ItemPayload) toModel() models.InquiryItem {
	qty := 1.0
	if p.Qty != nil {
		qty = *p.Qty
	}
	return models.InquiryItem{
		Code:       p.Code,
		Desc:       p.Desc,
		Qty:        qty,
		Unit:       p.Unit,
		LandedCost: p.LandedCost,
		UnitPrice:  p.UnitPrice,
		Delivery:   p.Delivery,
	}
}

type CreateInquiryRequest struct {
	CustID   string        `json:"cust_id"`
	CustName string        `json:"cust_name"`
	Engineer string        `json:"engineer"`
	Items    []ItemPayload `json:"items"`
}

type UpdateInquiryRequest struct {
	AssignedEng string        `json:"assigned_eng"`
	Items       []ItemPayload `json:"items"`
}

type UpdateStatusRequest struct {
	Status models.InquiryStatus `json:"status"`
}

// POST /api/inquiries  (Sales only)
func CreateInquiryHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body CreateInquiryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		items := make([]models.InquiryItem, 0, len(body.Items))
		for _, p := range body.Items {
			items = append(items, p.toModel())
		}

		inq, err := Create(database.DB, cfg.InquirySeries, sess, body.CustID, body.CustName, body.Engineer, items)
		if err != nil {
			if errors.Is(err, ErrMissingRequiredField) {
				return fiber.NewError(fiber.StatusUnprocessableEntity, "Missing client or engineer information")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create inquiry")
		}

		return c.Status(fiber.StatusCreated).JSON(inq)
	}
}

// GET /api/inquiries?q=
func ListInquiriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		inqs, err := store.NewInquiryStore(database.DB).List(ScopeFilter(sess, c.Query("q")))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list inquiries")
		}
		return c.JSON(inqs)
	}
}

// GET /api/inquiries/:id
func GetInquiryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, inq, err := loadScoped(c)
		if err != nil {
			return err
		}
		return c.JSON(inq)
	}
}

// PUT /api/inquiries/:id
// Replaces the mutable fields only; reference, owner and creation timestamp
// cannot change. No optimistic concurrency check: last write wins.
func UpdateInquiryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, inq, err := loadScoped(c)
		if err != nil {
			return err
		}

		var body UpdateInquiryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		before := *inq

		if body.AssignedEng != "" {
			inq.AssignedEng = body.AssignedEng
		}
		items := make([]models.InquiryItem, 0, len(body.Items))
		for _, p := range body.Items {
			items = append(items, p.toModel())
		}
		inq.Items = items

		inquiries := store.NewInquiryStore(database.DB)
		if err := inquiries.Update(inq); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update inquiry")
		}

		updated, err := inquiries.Get(inq.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not reload inquiry")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      sess.ID,
			UserName:    sess.Name,
			EntityType:  "inquiry",
			EntityRef:   inq.Reference,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Inquiry %s updated", inq.Reference),
			Before:      before,
			After:       updated,
		}); logErr != nil {
			fmt.Printf("Could not write audit log: %v\n", logErr)
		}

		return c.JSON(updated)
	}
}

// PUT /api/inquiries/:id/status
func UpdateStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, inq, err := loadScoped(c)
		if err != nil {
			return err
		}

		var body UpdateStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if !models.ValidStatus(body.Status) {
			return fiber.NewError(fiber.StatusBadRequest, "Status must be Engineering, Planning, Accepted or Rejected")
		}

		if !CanTransition(inq.Status, body.Status) {
			return fiber.NewError(fiber.StatusConflict,
				fmt.Sprintf("Cannot move inquiry from %s to %s", inq.Status, body.Status))
		}

		if err := store.NewInquiryStore(database.DB).SetStatus(inq.ID, body.Status); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update status")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      sess.ID,
			UserName:    sess.Name,
			EntityType:  "inquiry",
			EntityRef:   inq.Reference,
			Action:      models.AuditActionStatus,
			Description: fmt.Sprintf("Inquiry %s moved from %s to %s", inq.Reference, inq.Status, body.Status),
			Before:      fiber.Map{"status": inq.Status},
			After:       fiber.Map{"status": body.Status},
		}); logErr != nil {
			fmt.Printf("Could not write audit log: %v\n", logErr)
		}

		inq.Status = body.Status
		return c.JSON(inq)
	}
}

// loadScoped resolves :id and enforces role scoping. Records outside the
// session's scope read as not found.
func loadScoped(c *fiber.Ctx) (auth.SessionUser, *models.Inquiry, error) {
	sess, err := auth.CurrentUser(c)
	if err != nil {
		return auth.SessionUser{}, nil, err
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return sess, nil, fiber.NewError(fiber.StatusBadRequest, "Invalid inquiry id")
	}

	inq, err := store.NewInquiryStore(database.DB).Get(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return sess, nil, fiber.NewError(fiber.StatusNotFound, "Inquiry not found")
		}
		return sess, nil, fiber.NewError(fiber.StatusInternalServerError, "Could not load inquiry")
	}

	if !Visible(inq, sess) {
		return sess, nil, fiber.NewError(fiber.StatusNotFound, "Inquiry not found")
	}

	return sess, inq, nil
}
