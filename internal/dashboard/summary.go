package dashboard

import (
	"portal-backend/internal/database"
	"portal-backend/internal/inquiry"
	"portal-backend/internal/models"
	"portal-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

type SummaryResponse struct {
	ConfirmedRevenue float64 `json:"confirmed_revenue"` // value of Accepted inquiries
	InProgress       int     `json:"in_progress"`       // neither Accepted nor Rejected
	TotalVolume      int     `json:"total_volume"`
}

// GET /api/dashboard/summary  (Planning only)
func SummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		inqs, err := store.NewInquiryStore(database.DB).List(store.InquiryFilter{})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute summary")
		}

		resp := SummaryResponse{TotalVolume: len(inqs)}
		for _, inq := range inqs {
			if inq.Status == models.StatusAccepted {
				resp.ConfirmedRevenue += inquiry.Value(inq.Items)
			}
			if inquiry.InProgress(inq.Status) {
				resp.InProgress++
			}
		}

		return c.JSON(resp)
	}
}
