package models

import "time"

// InquiryDraft is the one in-progress inquiry a Sales user is building in
// the registration wizard. Rows are kept as a JSON document until the draft
// is submitted and becomes a real Inquiry.
type InquiryDraft struct {
	ID         uint   `gorm:"primaryKey"`
	OwnerEmail string `gorm:"size:100;uniqueIndex;not null"`
	CustID     string `gorm:"size:30"`
	CustName   string `gorm:"size:150"`
	Engineer   string `gorm:"size:100"`
	Items      string `gorm:"type:text"` // JSON array of InquiryItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
