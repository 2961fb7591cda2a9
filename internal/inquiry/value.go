package inquiry

import "portal-backend/internal/models"

// Value is the quoted worth of an item list: the sum of qty times unit price
// over all rows. A missing unit price counts as zero. Both the dashboard and
// the report export use this.
func Value(items []models.InquiryItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Qty * it.UnitPrice
	}
	return sum
}
