package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobStatus is the work state of a job. There is no enforced transition
// graph: any status may be set to any other status.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
)

// PaymentStatus is the payment state of a job, independent of JobStatus
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

// Job is a work order owned by a dealer company, optionally assigned to
// an installer. Removing the installer clears the assignment rather than
// deleting the job.
type Job struct {
	ID                  uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Title               string            `gorm:"size:150;not null" json:"title"`
	ServiceType         ServiceType       `gorm:"size:50;not null;default:'general'" json:"service_type"`
	Address             string            `gorm:"size:200" json:"address"`
	City                string            `gorm:"size:100" json:"city"`
	State               string            `gorm:"size:50" json:"state"`
	Zip                 string            `gorm:"size:20" json:"zip"`
	FullAddress         string            `gorm:"-" json:"full_address"` // derived, recomputed on read
	Status              JobStatus         `gorm:"size:20;not null;default:'pending'" json:"status"`
	PaymentStatus       PaymentStatus     `gorm:"size:20;not null;default:'unpaid'" json:"payment_status"`
	ScheduledDate       *time.Time        `json:"scheduled_date"`
	Notes               string            `gorm:"type:text" json:"notes"`
	DealerCompanyID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"dealer_company_id"`
	DealerCompany       DealerCompany     `gorm:"foreignKey:DealerCompanyID;constraint:OnDelete:CASCADE" json:"dealer_company,omitempty"`
	AssignedInstallerID *uuid.UUID        `gorm:"type:uuid;index" json:"assigned_installer_id"`
	AssignedInstaller   *InstallerProfile `gorm:"foreignKey:AssignedInstallerID;constraint:OnDelete:SET NULL" json:"assigned_installer,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

// TableName specifies the table name for the Job model
func (Job) TableName() string {
	return "jobs"
}

// BeforeCreate assigns the UUID primary key and the initial lifecycle state
func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.ServiceType == "" {
		j.ServiceType = ServiceGeneral
	}
	if !ValidServiceType(j.ServiceType) {
		return fmt.Errorf("invalid service type %q", j.ServiceType)
	}
	if j.Status == "" {
		j.Status = JobStatusPending
	}
	if j.PaymentStatus == "" {
		j.PaymentStatus = PaymentUnpaid
	}
	return nil
}

// AfterFind recomputes the derived full address on every read so it can
// never go stale; it is not stored.
func (j *Job) AfterFind(tx *gorm.DB) error {
	j.FullAddress = j.composeFullAddress()
	return nil
}

// BeforeDelete cascades to the job's photos
func (j *Job) BeforeDelete(tx *gorm.DB) error {
	return tx.Where("job_id = ?", j.ID).Delete(&JobPhoto{}).Error
}

// composeFullAddress joins address, city and "state zip", skipping empty
// components so there are no dangling separators.
func (j *Job) composeFullAddress() string {
	var parts []string
	if j.Address != "" {
		parts = append(parts, j.Address)
	}
	if j.City != "" {
		parts = append(parts, j.City)
	}
	if stateZip := strings.TrimSpace(j.State + " " + j.Zip); stateZip != "" {
		parts = append(parts, stateZip)
	}
	return strings.Join(parts, ", ")
}

// ValidJobStatus checks whether the value is one of the known statuses
func ValidJobStatus(s JobStatus) bool {
	switch s {
	case JobStatusPending, JobStatusInProgress, JobStatusCompleted:
		return true
	default:
		return false
	}
}

// ValidPaymentStatus checks whether the value is one of the known payment states
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentUnpaid, PaymentPaid:
		return true
	default:
		return false
	}
}
