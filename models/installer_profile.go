package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrRoleMismatch is returned when a profile is created against a user
// whose role does not permit that kind of profile.
var ErrRoleMismatch = errors.New("user role does not permit this profile")

// InstallerProfile is the work profile of a field installer. Exactly one
// may exist per user, and only for users with the installer role.
type InstallerProfile struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	DisplayName string    `gorm:"size:100;not null" json:"display_name"`
	Phone       string    `gorm:"size:20" json:"phone"`
	Active      bool      `gorm:"default:true" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the InstallerProfile model
func (InstallerProfile) TableName() string {
	return "installer_profiles"
}

// BeforeCreate assigns the UUID primary key and enforces the role gate.
// The check happens at creation time only: changing the user's role later
// does not invalidate an existing profile.
func (p *InstallerProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	var user User
	if err := tx.First(&user, "id = ?", p.UserID).Error; err != nil {
		return fmt.Errorf("installer profile user lookup: %w", err)
	}
	if !user.IsInstaller() {
		return fmt.Errorf("%w: user %s has role %q, expected %q", ErrRoleMismatch, user.ID, user.Role, RoleInstaller)
	}
	return nil
}

// BeforeDelete clears the installer's job assignments. The jobs stay;
// only the assignment reverts to unassigned.
func (p *InstallerProfile) BeforeDelete(tx *gorm.DB) error {
	return tx.Model(&Job{}).Where("assigned_installer_id = ?", p.ID).Update("assigned_installer_id", nil).Error
}
