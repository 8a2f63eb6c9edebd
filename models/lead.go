package models

import "time"

// Lead is a contact request submitted through the public marketing site.
// Leads are append-only: they are created once by the contact form and
// never updated or deleted through any public operation. The table keeps
// its legacy auto-increment key; only the job-system tables use UUIDs.
type Lead struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	Name      string      `gorm:"size:100;not null" json:"name"`
	Email     string      `gorm:"size:254;not null" json:"email"`
	Phone     string      `gorm:"size:20;not null" json:"phone"`
	Service   ServiceType `gorm:"size:50;not null;default:'general'" json:"service"`
	City      string      `gorm:"size:100" json:"city"`
	Message   string      `gorm:"type:text" json:"message"`
	CreatedAt time.Time   `json:"created_at"` // set at creation, immutable
}

// TableName specifies the table name for the Lead model
func (Lead) TableName() string {
	return "leads"
}
