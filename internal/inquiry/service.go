package inquiry

import (
	"errors"
	"fmt"
	"strings"

	"portal-backend/internal/audit"
	"portal-backend/internal/auth"
	"portal-backend/internal/models"
	"portal-backend/internal/store"

	"gorm.io/gorm"
)

// ErrMissingRequiredField blocks creation when client name or assigned
// engineer is blank. The caller's form state stays intact for correction.
var ErrMissingRequiredField = errors.New("client name and assigned engineer are required")

// Create registers a new inquiry for the session user. The record starts in
// Engineering with no documents, gets the next reference from the monotonic
// sequence, and keeps the given items in order with builder defaults applied.
func Create(db *gorm.DB, series string, sess auth.SessionUser, custID, custName, engineer string, items []models.InquiryItem) (*models.Inquiry, error) {
	if strings.TrimSpace(custName) == "" || strings.TrimSpace(engineer) == "" {
		return nil, ErrMissingRequiredField
	}

	for i := range items {
		if items[i].Unit == "" {
			items[i].Unit = "Pcs"
		}
		if items[i].Delivery == "" {
			items[i].Delivery = "TBA"
		}
		items[i].Position = i
	}

	inq := &models.Inquiry{
		CustID:      custID,
		CustName:    custName,
		Status:      models.StatusEngineering,
		AssignedEng: engineer,
		OwnerEmail:  sess.Email,
		Items:       items,
		Docs:        []models.TechnicalDoc{},
	}

	if err := store.NewInquiryStore(db).Create(series, inq); err != nil {
		return nil, fmt.Errorf("could not create inquiry: %w", err)
	}

	if logErr := audit.WriteLog(audit.LogOptions{
		UserID:      sess.ID,
		UserName:    sess.Name,
		EntityType:  "inquiry",
		EntityRef:   inq.Reference,
		Action:      models.AuditActionCreate,
		Description: fmt.Sprintf("Inquiry registered for %s, %d item(s)", inq.CustName, len(inq.Items)),
		Before:      nil,
		After:       inq,
	}); logErr != nil {
		fmt.Printf("Could not write audit log: %v\n", logErr)
	}

	return inq, nil
}
