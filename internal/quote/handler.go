package quote

import (
	"errors"

	"portal-backend/internal/auth"
	"portal-backend/internal/catalog"
	"portal-backend/internal/config"
	"portal-backend/internal/database"
	"portal-backend/internal/inquiry"
	"portal-backend/internal/models"
	"portal-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DraftResponse struct {
	CustID   string               `json:"cust_id"`
	CustName string               `json:"cust_name"`
	Engineer string               `json:"engineer"`
	Items    []models.InquiryItem `json:"items"`
}

type UpdateHeaderRequest struct {
	CustID   *string `json:"cust_id"`
	CustName *string `json:"cust_name"`
	Engineer *string `json:"engineer"`
}

// POST /api/drafts
// Starts a fresh registration wizard for the session user: blank header and
// one default item row. An existing draft is reset.
func CreateDraftHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		drafts := store.NewDraftStore(database.DB)

		draft, err := drafts.GetByOwner(sess.Email)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not load draft")
			}
			draft = &models.InquiryDraft{OwnerEmail: sess.Email}
		}

		draft.CustID = ""
		draft.CustName = ""
		draft.Engineer = ""
		if err := store.SetDraftItems(draft, []models.InquiryItem{models.NewItem()}); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not encode draft items")
		}

		if err := drafts.Save(draft); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save draft")
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(draft))
	}
}

// GET /api/drafts
func GetDraftHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, draft, err := loadDraft(c)
		if err != nil {
			return err
		}
		return c.JSON(toResponse(draft))
	}
}

// PUT /api/drafts/header
// Updates customer account, company name and engineer. Picking a known
// account fills the company name; the manual sentinel account clears it so
// the user can type their own.
func UpdateHeaderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, draft, err := loadDraft(c)
		if err != nil {
			return err
		}

		var body UpdateHeaderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.CustID != nil {
			draft.CustID = *body.CustID
			if acct, ok := catalog.NewStore(database.DB).FindAccount(*body.CustID); ok {
				if acct.AccountID == catalog.ManualAccountID {
					draft.CustName = ""
				} else {
					draft.CustName = acct.Name
				}
			}
		}
		if body.CustName != nil {
			draft.CustName = *body.CustName
		}
		if body.Engineer != nil {
			draft.Engineer = *body.Engineer
		}

		if err := store.NewDraftStore(database.DB).Save(draft); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save draft")
		}

		return c.JSON(toResponse(draft))
	}
}

// POST /api/drafts/items
func AddItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, draft, err := loadDraft(c)
		if err != nil {
			return err
		}

		items, err := store.DraftItems(draft)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not decode draft items")
		}

		if err := saveItems(draft, AddRow(items)); err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(toResponse(draft))
	}
}

// PUT /api/drafts/items/:index
func UpdateItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, draft, err := loadDraft(c)
		if err != nil {
			return err
		}

		idx, err := c.ParamsInt("index")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid item index")
		}

		var upd FieldUpdate
		if err := c.BodyParser(&upd); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		items, err := store.DraftItems(draft)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not decode draft items")
		}

		if err := ApplyUpdate(items, idx, upd, catalog.NewStore(database.DB)); err != nil {
			switch {
			case errors.Is(err, ErrRowOutOfRange):
				return fiber.NewError(fiber.StatusNotFound, "Item row not found")
			case errors.Is(err, ErrUnknownField):
				return fiber.NewError(fiber.StatusBadRequest, "Unknown item field")
			case errors.Is(err, ErrBadValue):
				return fiber.NewError(fiber.StatusBadRequest, "Value does not match the field type")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update item")
		}

		if err := saveItems(draft, items); err != nil {
			return err
		}
		return c.JSON(toResponse(draft))
	}
}

// DELETE /api/drafts/items/:index
func RemoveItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, draft, err := loadDraft(c)
		if err != nil {
			return err
		}

		idx, err := c.ParamsInt("index")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid item index")
		}

		items, err := store.DraftItems(draft)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not decode draft items")
		}

		items, err = RemoveRow(items, idx)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Item row not found")
		}

		if err := saveItems(draft, items); err != nil {
			return err
		}
		return c.JSON(toResponse(draft))
	}
}

// POST /api/drafts/submit
// Registers the inquiry built in the wizard. On success the draft is gone;
// on a validation failure it stays put so the user can correct and resubmit.
func SubmitDraftHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, draft, err := loadDraft(c)
		if err != nil {
			return err
		}

		items, err := store.DraftItems(draft)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not decode draft items")
		}

		inq, err := inquiry.Create(database.DB, cfg.InquirySeries, sess, draft.CustID, draft.CustName, draft.Engineer, items)
		if err != nil {
			if errors.Is(err, inquiry.ErrMissingRequiredField) {
				return fiber.NewError(fiber.StatusUnprocessableEntity, "Missing client or engineer information")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create inquiry")
		}

		if err := store.NewDraftStore(database.DB).Delete(draft); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not clear draft")
		}

		return c.Status(fiber.StatusCreated).JSON(inq)
	}
}

func loadDraft(c *fiber.Ctx) (auth.SessionUser, *models.InquiryDraft, error) {
	sess, err := auth.CurrentUser(c)
	if err != nil {
		return auth.SessionUser{}, nil, err
	}

	draft, err := store.NewDraftStore(database.DB).GetByOwner(sess.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return sess, nil, fiber.NewError(fiber.StatusNotFound, "No draft in progress")
		}
		return sess, nil, fiber.NewError(fiber.StatusInternalServerError, "Could not load draft")
	}

	return sess, draft, nil
}

func saveItems(draft *models.InquiryDraft, items []models.InquiryItem) error {
	if err := store.SetDraftItems(draft, items); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Could not encode draft items")
	}
	if err := store.NewDraftStore(database.DB).Save(draft); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Could not save draft")
	}
	return nil
}

func toResponse(d *models.InquiryDraft) DraftResponse {
	items, err := store.DraftItems(d)
	if err != nil {
		items = []models.InquiryItem{}
	}
	return DraftResponse{
		CustID:   d.CustID,
		CustName: d.CustName,
		Engineer: d.Engineer,
		Items:    items,
	}
}
