package models

import "time"

type UserRole string

const (
	RoleSales       UserRole = "Sales"
	RoleEngineering UserRole = "Engineering"
	RolePlanning    UserRole = "Planning"
)

// ValidRole reports whether r is one of the three portal roles.
func ValidRole(r UserRole) bool {
	switch r {
	case RoleSales, RoleEngineering, RolePlanning:
		return true
	}
	return false
}

type User struct {
	ID           uint     `gorm:"primaryKey"`
	Name         string   `gorm:"size:100;not null"`
	Email        string   `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:20;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
