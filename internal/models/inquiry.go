package models

import "time"

type InquiryStatus string

const (
	StatusEngineering InquiryStatus = "Engineering"
	StatusPlanning    InquiryStatus = "Planning"
	StatusAccepted    InquiryStatus = "Accepted"
	StatusRejected    InquiryStatus = "Rejected"
)

// ValidStatus reports whether s is one of the four lifecycle stages.
func ValidStatus(s InquiryStatus) bool {
	switch s {
	case StatusEngineering, StatusPlanning, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Inquiry is a customer request for quotation tracked through the
// Engineering -> Planning -> Accepted/Rejected review stages.
// Reference, OwnerEmail and CreatedAt are fixed at creation and never change.
type Inquiry struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Reference   string        `gorm:"size:30;uniqueIndex;not null" json:"reference"`
	CustID      string        `gorm:"size:30" json:"cust_id"`
	CustName    string        `gorm:"size:150;not null" json:"cust_name"`
	Status      InquiryStatus `gorm:"size:20;not null;index" json:"status"`
	AssignedEng string        `gorm:"size:100;not null" json:"assigned_eng"`
	OwnerEmail  string        `gorm:"size:100;not null;index" json:"owner_email"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	Items []InquiryItem  `gorm:"foreignKey:InquiryID;constraint:OnDelete:CASCADE" json:"items"`
	Docs  []TechnicalDoc `gorm:"foreignKey:InquiryID;constraint:OnDelete:CASCADE" json:"docs"`
}

type InquiryItem struct {
	ID         uint    `gorm:"primaryKey" json:"-"`
	InquiryID  uint    `gorm:"index;not null" json:"-"`
	Position   int     `gorm:"not null" json:"position"`
	Code       string  `gorm:"size:50" json:"code"`
	Desc       string  `gorm:"size:255" json:"desc"`
	Qty        float64 `json:"qty"`
	Unit       string  `gorm:"size:20" json:"unit"` // Pcs | Set | Roll
	LandedCost float64 `json:"landed_cost"`
	UnitPrice  float64 `json:"unit_price"`
	Delivery   string  `gorm:"size:100" json:"delivery"`
}

// ItemUnits are the unit choices offered by the quotation builder.
var ItemUnits = []string{"Pcs", "Set", "Roll"}

// NewItem returns a blank quotation row with the builder defaults.
func NewItem() InquiryItem {
	return InquiryItem{Qty: 1, Unit: "Pcs", Delivery: "TBA"}
}

// TechnicalDoc is a document attached to an inquiry. Data carries the
// base64-encoded payload and is treated as opaque.
type TechnicalDoc struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	InquiryID uint      `gorm:"index;not null" json:"-"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Data      string    `gorm:"type:text" json:"data,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// InquirySequence holds the monotonic counter behind inquiry reference
// numbers, persisted independently of the inquiry count.
type InquirySequence struct {
	ID      uint `gorm:"primaryKey"`
	NextSeq int  `gorm:"not null"`
}
