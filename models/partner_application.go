package models

import "time"

// PartnerApplication is a dealer partnership request submitted through the
// public dealers page. Like leads, applications are append-only records.
type PartnerApplication struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Company      string    `gorm:"size:150;not null" json:"company"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:254;not null" json:"email"`
	Phone        string    `gorm:"size:20;not null" json:"phone"`
	BusinessType string    `gorm:"size:100" json:"business_type"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for the PartnerApplication model
func (PartnerApplication) TableName() string {
	return "partner_applications"
}
