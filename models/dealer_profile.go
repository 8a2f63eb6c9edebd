package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DealerProfile links a dealer-staff user to the company they work for.
// Exactly one may exist per user, and only for users with the dealer role.
type DealerProfile struct {
	ID              uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID     `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User            User          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	DealerCompanyID uuid.UUID     `gorm:"type:uuid;not null;index" json:"dealer_company_id"`
	DealerCompany   DealerCompany `gorm:"foreignKey:DealerCompanyID;constraint:OnDelete:CASCADE" json:"dealer_company,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// TableName specifies the table name for the DealerProfile model
func (DealerProfile) TableName() string {
	return "dealer_profiles"
}

// BeforeCreate assigns the UUID primary key and enforces the role gate,
// creation-time only, same as InstallerProfile.
func (p *DealerProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	var user User
	if err := tx.First(&user, "id = ?", p.UserID).Error; err != nil {
		return fmt.Errorf("dealer profile user lookup: %w", err)
	}
	if !user.IsDealer() {
		return fmt.Errorf("%w: user %s has role %q, expected %q", ErrRoleMismatch, user.ID, user.Role, RoleDealer)
	}
	return nil
}
