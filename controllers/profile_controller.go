package controllers

import (
	"errors"
	"net/http"

	"github.com/clearcrest-windows/clearcrest-api/config"
	"github.com/clearcrest-windows/clearcrest-api/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateInstallerProfileRequest represents the request body for creating an installer profile
type CreateInstallerProfileRequest struct {
	UserID      uuid.UUID `json:"user_id" binding:"required"`
	DisplayName string    `json:"display_name" binding:"required,max=100"`
	Phone       string    `json:"phone" binding:"omitempty,max=20"`
}

// CreateDealerProfileRequest represents the request body for creating a dealer profile
type CreateDealerProfileRequest struct {
	UserID          uuid.UUID `json:"user_id" binding:"required"`
	DealerCompanyID uuid.UUID `json:"dealer_company_id" binding:"required"`
}

// CreateInstallerProfile handles POST /api/v1/installer-profiles. The
// referenced user must hold the installer role at creation time; each user
// may own at most one installer profile.
func CreateInstallerProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateInstallerProfileRequest
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

	// Admins can create profiles for anyone; others only for themselves
	if !user.IsAdmin() && req.UserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You can only create your own profile",
			},
		})
		return
	}

	profile := models.InstallerProfile{
		UserID:      req.UserID,
		DisplayName: req.DisplayName,
		Phone:       req.Phone,
		Active:      true,
	}

	db := config.GetDB()
	if err := db.Create(&profile).Error; err != nil {
		writeProfileCreateError(c, err)
		return
	}

	if err := db.Preload("User").First(&profile, "id = ?", profile.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load profile details",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    profile,
	})
}

// ListInstallerProfiles handles GET /api/v1/installer-profiles
func ListInstallerProfiles(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	db := config.GetDB()
	var profiles []models.InstallerProfile
	if err := db.Preload("User").Order("display_name ASC").Find(&profiles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch installer profiles",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    profiles,
	})
}

// DeleteInstallerProfile handles DELETE /api/v1/installer-profiles/:id
// (admins only). Jobs assigned to the installer survive with the
// assignment cleared.
func DeleteInstallerProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Only admins can delete installer profiles",
			},
		})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var profile models.InstallerProfile
	if err := db.First(&profile, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PROFILE_NOT_FOUND",
				"message": "Installer profile not found",
			},
		})
		return
	}

	if err := db.Delete(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete installer profile",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": profile.ID},
	})
}

// CreateDealerProfile handles POST /api/v1/dealer-profiles. The referenced
// user must hold the dealer role at creation time and the company must
// exist; each user may own at most one dealer profile.
func CreateDealerProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateDealerProfileRequest
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

	if !user.IsAdmin() && req.UserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You can only create your own profile",
			},
		})
		return
	}

	db := config.GetDB()

	var company models.DealerCompany
	if err := db.First(&company, "id = ?", req.DealerCompanyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "COMPANY_NOT_FOUND",
				"message": "Dealer company not found",
			},
		})
		return
	}

	profile := models.DealerProfile{
		UserID:          req.UserID,
		DealerCompanyID: req.DealerCompanyID,
	}

	if err := db.Create(&profile).Error; err != nil {
		writeProfileCreateError(c, err)
		return
	}

	if err := db.Preload("User").Preload("DealerCompany").First(&profile, "id = ?", profile.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load profile details",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    profile,
	})
}

// writeProfileCreateError maps profile creation failures onto the error
// envelope: role gate violations, missing users, duplicate profiles.
func writeProfileCreateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrRoleMismatch):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ROLE_MISMATCH",
				"message": "The referenced user's role does not permit this profile",
			},
		})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "Referenced user not found",
			},
		})
	case isDuplicateError(err):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PROFILE_EXISTS",
				"message": "This user already has a profile",
			},
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create profile",
			},
		})
	}
}
