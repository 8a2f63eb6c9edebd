package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role identifies what part of the job system a user belongs to
type Role string

const (
	RoleInstaller Role = "installer"
	RoleDealer    Role = "dealer"
	RoleAdmin     Role = "admin"
)

// User represents an authenticated identity in the job system.
// Authentication itself is handled by Auth0; this record links the Auth0
// identity to a role and, through the profile tables, to a dealer company
// or installer.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Auth0ID   string    `gorm:"uniqueIndex;not null" json:"auth0_id"` // Auth0 user ID (from 'sub' claim)
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Phone     string    `gorm:"size:20" json:"phone"`
	Role      Role      `gorm:"size:20;not null;default:'installer'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns the UUID primary key and validates the role
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleInstaller
	}
	if !ValidRole(u.Role) {
		return fmt.Errorf("invalid role %q", u.Role)
	}
	return nil
}

// BeforeDelete clears references that outlive the user: job photos keep
// their record with the uploader set to null, and any profile owned by
// the user is removed.
func (u *User) BeforeDelete(tx *gorm.DB) error {
	if err := tx.Model(&JobPhoto{}).Where("uploaded_by_id = ?", u.ID).Update("uploaded_by_id", nil).Error; err != nil {
		return err
	}

	var installer InstallerProfile
	if err := tx.First(&installer, "user_id = ?", u.ID).Error; err == nil {
		if err := tx.Delete(&installer).Error; err != nil {
			return err
		}
	}

	var dealer DealerProfile
	if err := tx.First(&dealer, "user_id = ?", u.ID).Error; err == nil {
		if err := tx.Delete(&dealer).Error; err != nil {
			return err
		}
	}

	return nil
}

// ValidRole checks whether the role is one of the known roles
func ValidRole(r Role) bool {
	switch r {
	case RoleInstaller, RoleDealer, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsInstaller checks if the user is an installer
func (u *User) IsInstaller() bool {
	return u.Role == RoleInstaller
}

// IsDealer checks if the user is dealer staff
func (u *User) IsDealer() bool {
	return u.Role == RoleDealer
}

// IsAdmin checks if the user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
