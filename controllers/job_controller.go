package controllers

import (
	"net/http"
	"time"

	"github.com/clearcrest-windows/clearcrest-api/config"
	"github.com/clearcrest-windows/clearcrest-api/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateJobRequest represents the request body for creating a job
type CreateJobRequest struct {
	Title           string     `json:"title" binding:"required,max=150"`
	ServiceType     string     `json:"service_type"`
	Address         string     `json:"address" binding:"omitempty,max=200"`
	City            string     `json:"city" binding:"omitempty,max=100"`
	State           string     `json:"state" binding:"omitempty,max=50"`
	Zip             string     `json:"zip" binding:"omitempty,max=20"`
	ScheduledDate   *time.Time `json:"scheduled_date"`
	Notes           string     `json:"notes"`
	DealerCompanyID *uuid.UUID `json:"dealer_company_id"` // required for admins, derived for dealers
}

// UpdateJobRequest represents the request body for updating job details
type UpdateJobRequest struct {
	Title         string     `json:"title" binding:"omitempty,max=150"`
	ServiceType   string     `json:"service_type"`
	Address       *string    `json:"address"`
	City          *string    `json:"city"`
	State         *string    `json:"state"`
	Zip           *string    `json:"zip"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	Notes         *string    `json:"notes"`
}

// AssignInstallerRequest represents the request body for assigning an installer.
// A null installer_id clears the assignment.
type AssignInstallerRequest struct {
	InstallerID *uuid.UUID `json:"installer_id"`
}

// UpdateJobStatusRequest represents the request body for setting job status
type UpdateJobStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateJobPaymentRequest represents the request body for setting payment status
type UpdateJobPaymentRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// dealerCompanyFor resolves the company a dealer-staff user belongs to
func dealerCompanyFor(db *gorm.DB, user *models.User) (uuid.UUID, bool) {
	var profile models.DealerProfile
	if err := db.First(&profile, "user_id = ?", user.ID).Error; err != nil {
		return uuid.Nil, false
	}
	return profile.DealerCompanyID, true
}

// canViewJob reports whether the user may see the job: admins see all,
// dealer staff see their company's jobs, installers see their assignments
func canViewJob(db *gorm.DB, user *models.User, job *models.Job) bool {
	switch user.Role {
	case models.RoleAdmin:
		return true
	case models.RoleDealer:
		companyID, ok := dealerCompanyFor(db, user)
		return ok && companyID == job.DealerCompanyID
	case models.RoleInstaller:
		var profile models.InstallerProfile
		if err := db.First(&profile, "user_id = ?", user.ID).Error; err != nil {
			return false
		}
		return job.AssignedInstallerID != nil && *job.AssignedInstallerID == profile.ID
	}
	return false
}

// canManageJob reports whether the user may mutate the job: admins, or
// dealer staff of the owning company
func canManageJob(db *gorm.DB, user *models.User, job *models.Job) bool {
	if user.IsAdmin() {
		return true
	}
	if user.IsDealer() {
		companyID, ok := dealerCompanyFor(db, user)
		return ok && companyID == job.DealerCompanyID
	}
	return false
}

// findJob loads a job by the :id parameter. On failure it writes the error
// response and returns ok=false.
func findJob(c *gin.Context, db *gorm.DB) (*models.Job, bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil, false
	}

	var job models.Job
	if err := db.First(&job, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "JOB_NOT_FOUND",
				"message": "Job not found",
			},
		})
		return nil, false
	}
	return &job, true
}

// CreateJob handles POST /api/v1/jobs - creates a work order in the
// pending/unpaid state. Dealer staff create jobs for their own company;
// admins must name the company.
func CreateJob(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if user.IsInstaller() {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Installers cannot create jobs",
			},
		})
		return
	}

	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()

	var companyID uuid.UUID
	if user.IsDealer() {
		id, ok := dealerCompanyFor(db, user)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NO_DEALER_PROFILE",
					"message": "Dealer staff need a dealer profile to create jobs",
				},
			})
			return
		}
		companyID = id
	} else {
		if req.DealerCompanyID == nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "dealer_company_id is required",
				},
			})
			return
		}
		companyID = *req.DealerCompanyID
	}

	var company models.DealerCompany
	if err := db.First(&company, "id = ?", companyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "COMPANY_NOT_FOUND",
				"message": "Dealer company not found",
			},
		})
		return
	}

	serviceType := models.ServiceType(req.ServiceType)
	if serviceType != "" && !models.ValidServiceType(serviceType) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_SERVICE_TYPE",
				"message": "Unknown service type",
			},
		})
		return
	}

	job := models.Job{
		Title:           req.Title,
		ServiceType:     serviceType,
		Address:         req.Address,
		City:            req.City,
		State:           req.State,
		Zip:             req.Zip,
		ScheduledDate:   req.ScheduledDate,
		Notes:           req.Notes,
		DealerCompanyID: companyID,
		Status:          models.JobStatusPending,
		PaymentStatus:   models.PaymentUnpaid,
	}

	if err := db.Create(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create job",
			},
		})
		return
	}

	// Reload with relationships so the derived address is computed
	if err := db.Preload("DealerCompany").First(&job, "id = ?", job.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load job details",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    job,
	})
}

// ListJobs handles GET /api/v1/jobs - lists jobs scoped by role: admins
// see all, dealer staff their company's, installers their assignments
func ListJobs(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	query := db.Preload("DealerCompany").Preload("AssignedInstaller").Order("created_at DESC")

	switch user.Role {
	case models.RoleAdmin:
		// no scoping
	case models.RoleDealer:
		companyID, ok := dealerCompanyFor(db, user)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"success": true, "data": []models.Job{}})
			return
		}
		query = query.Where("dealer_company_id = ?", companyID)
	case models.RoleInstaller:
		var profile models.InstallerProfile
		if err := db.First(&profile, "user_id = ?", user.ID).Error; err != nil {
			c.JSON(http.StatusOK, gin.H{"success": true, "data": []models.Job{}})
			return
		}
		query = query.Where("assigned_installer_id = ?", profile.ID)
	}

	var jobs []models.Job
	if err := query.Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch jobs",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    jobs,
	})
}

// GetJob handles GET /api/v1/jobs/:id
func GetJob(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	job, ok := findJob(c, db)
	if !ok {
		return
	}

	if !canViewJob(db, user, job) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to view this job",
			},
		})
		return
	}

	if err := db.Preload("DealerCompany").Preload("AssignedInstaller").First(job, "id = ?", job.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load job details",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    job,
	})
}

// UpdateJob handles PUT /api/v1/jobs/:id - updates work order details
func UpdateJob(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	job, ok := findJob(c, db)
	if !ok {
		return
	}

	if !canManageJob(db, user, job) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to update this job",
			},
		})
		return
	}

	var req UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	updates := make(map[string]interface{})
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.ServiceType != "" {
		serviceType := models.ServiceType(req.ServiceType)
		if !models.ValidServiceType(serviceType) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_SERVICE_TYPE",
					"message": "Unknown service type",
				},
			})
			return
		}
		updates["service_type"] = serviceType
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.State != nil {
		updates["state"] = *req.State
	}
	if req.Zip != nil {
		updates["zip"] = *req.Zip
	}
	if req.ScheduledDate != nil {
		updates["scheduled_date"] = req.ScheduledDate
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) > 0 {
		if err := db.Model(job).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update job",
				},
			})
			return
		}
	}

	if err := db.Preload("DealerCompany").Preload("AssignedInstaller").First(job, "id = ?", job.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load job details",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    job,
	})
}

// AssignInstaller handles PUT /api/v1/jobs/:id/assign - sets or clears the
// job's installer. Two jobs may share one installer; there is no
// exclusivity constraint.
func AssignInstaller(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	job, ok := findJob(c, db)
	if !ok {
		return
	}

	if !canManageJob(db, user, job) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to assign this job",
			},
		})
		return
	}

	var req AssignInstallerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	if req.InstallerID != nil {
		var profile models.InstallerProfile
		if err := db.First(&profile, "id = ?", *req.InstallerID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INSTALLER_NOT_FOUND",
					"message": "Installer profile not found",
				},
			})
			return
		}
	}

	if err := db.Model(job).Update("assigned_installer_id", req.InstallerID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update assignment",
			},
		})
		return
	}

	if err := db.Preload("DealerCompany").Preload("AssignedInstaller").First(job, "id = ?", job.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load job details",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    job,
	})
}

// UpdateJobStatus handles PUT /api/v1/jobs/:id/status - sets the work
// state. Any status may follow any other; only membership in the
// enumeration is checked. The assigned installer may update status too.
func UpdateJobStatus(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	job, ok := findJob(c, db)
	if !ok {
		return
	}

	if !canManageJob(db, user, job) && !canViewJob(db, user, job) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to update this job",
			},
		})
		return
	}

	var req UpdateJobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	status := models.JobStatus(req.Status)
	if !models.ValidJobStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATUS",
				"message": "Unknown job status",
			},
		})
		return
	}

	if err := db.Model(job).Update("status", status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update status",
			},
		})
		return
	}

	if err := db.First(job, "id = ?", job.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load job details",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    job,
	})
}

// UpdateJobPayment handles PUT /api/v1/jobs/:id/payment - sets the payment
// state, independent of work status
func UpdateJobPayment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	job, ok := findJob(c, db)
	if !ok {
		return
	}

	if !canManageJob(db, user, job) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to update this job",
			},
		})
		return
	}

	var req UpdateJobPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	paymentStatus := models.PaymentStatus(req.PaymentStatus)
	if !models.ValidPaymentStatus(paymentStatus) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_PAYMENT_STATUS",
				"message": "Unknown payment status",
			},
		})
		return
	}

	if err := db.Model(job).Update("payment_status", paymentStatus).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update payment status",
			},
		})
		return
	}

	if err := db.First(job, "id = ?", job.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load job details",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    job,
	})
}

// DeleteJob handles DELETE /api/v1/jobs/:id (admins only). Normal flow
// never deletes jobs; removal otherwise only cascades from a dealer
// company. Deleting a job removes its photos.
func DeleteJob(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Only admins can delete jobs",
			},
		})
		return
	}

	db := config.GetDB()
	job, ok := findJob(c, db)
	if !ok {
		return
	}

	if err := db.Delete(job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete job",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": job.ID},
	})
}
