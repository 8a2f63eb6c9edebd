package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PhotoType tags a job photo as taken before or after the installation
type PhotoType string

const (
	PhotoBefore PhotoType = "before"
	PhotoAfter  PhotoType = "after"
)

// JobPhoto is an image attached to a job. Photos are deleted with their
// job, but deleting the uploading user only clears the uploader reference.
type JobPhoto struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	JobID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"job_id"`
	Job          Job        `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
	PhotoType    PhotoType  `gorm:"size:10;not null" json:"photo_type"`
	ImageKey     string     `gorm:"size:255;not null" json:"image_key"` // date-partitioned storage key
	ImageURL     string     `gorm:"-" json:"image_url,omitempty"`       // computed, presigned or local URL
	Caption      string     `gorm:"size:255" json:"caption"`
	UploadedByID *uuid.UUID `gorm:"type:uuid;index" json:"uploaded_by_id"`
	UploadedBy   *User      `gorm:"foreignKey:UploadedByID;constraint:OnDelete:SET NULL" json:"uploaded_by,omitempty"`
	CreatedAt    time.Time  `json:"uploaded_at"`
}

// TableName specifies the table name for the JobPhoto model
func (JobPhoto) TableName() string {
	return "job_photos"
}

// BeforeCreate assigns the UUID primary key and validates the photo type
func (p *JobPhoto) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if !ValidPhotoType(p.PhotoType) {
		return fmt.Errorf("invalid photo type %q", p.PhotoType)
	}
	return nil
}

// ValidPhotoType checks whether the value is one of the known photo types
func ValidPhotoType(t PhotoType) bool {
	return t == PhotoBefore || t == PhotoAfter
}
