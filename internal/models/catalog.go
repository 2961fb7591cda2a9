package models

import "time"

// MasterItem is a reference-data product code with its canonical description.
// Read-only after seeding; used to pre-fill quotation rows.
type MasterItem struct {
	Code      string    `gorm:"primaryKey;size:50" json:"code"`
	Desc      string    `gorm:"size:255;not null" json:"desc"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// CustomerAccount is a known customer the create wizard offers in its
// account picker. The sentinel "NEW" account stands for manual entry.
type CustomerAccount struct {
	AccountID string    `gorm:"primaryKey;size:30" json:"account_id"`
	Name      string    `gorm:"size:150;not null" json:"name"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Engineer is a name that inquiries can be assigned to.
type Engineer struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
