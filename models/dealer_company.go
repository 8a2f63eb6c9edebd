package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DealerCompany is the organizational entity that owns jobs. Dealer staff
// belong to a company through their DealerProfile.
type DealerCompany struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"size:150;not null" json:"name"`
	ContactEmail string    `gorm:"size:254" json:"contact_email"`
	ContactPhone string    `gorm:"size:20" json:"contact_phone"`
	ServiceArea  string    `gorm:"size:150" json:"service_area"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the DealerCompany model
func (DealerCompany) TableName() string {
	return "dealer_companies"
}

// BeforeCreate assigns the UUID primary key
func (c *DealerCompany) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// BeforeDelete removes everything the company owns. Jobs are deleted one
// at a time so their own delete hooks run and cascade to photos.
func (c *DealerCompany) BeforeDelete(tx *gorm.DB) error {
	var jobs []Job
	if err := tx.Where("dealer_company_id = ?", c.ID).Find(&jobs).Error; err != nil {
		return err
	}
	for i := range jobs {
		if err := tx.Delete(&jobs[i]).Error; err != nil {
			return err
		}
	}

	return tx.Where("dealer_company_id = ?", c.ID).Delete(&DealerProfile{}).Error
}
