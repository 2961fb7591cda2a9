package inquiry

import (
	"strings"

	"portal-backend/internal/auth"
	"portal-backend/internal/models"
	"portal-backend/internal/store"
)

// ScopeFilter builds the listing filter for a session: Sales users see their
// own inquiries, Engineering users the ones assigned to them by name, and
// Planning sees everything. The text query is ANDed on top.
func ScopeFilter(sess auth.SessionUser, query string) store.InquiryFilter {
	f := store.InquiryFilter{Query: query}
	switch sess.Role {
	case models.RoleSales:
		f.OwnerEmail = sess.Email
	case models.RoleEngineering:
		f.Engineer = sess.Name
	}
	return f
}

// Visible applies the same role scoping to a single record.
func Visible(inq *models.Inquiry, sess auth.SessionUser) bool {
	switch sess.Role {
	case models.RoleSales:
		return inq.OwnerEmail == sess.Email
	case models.RoleEngineering:
		return strings.EqualFold(inq.AssignedEng, sess.Name)
	}
	return true
}
