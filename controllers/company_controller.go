package controllers

import (
	"net/http"

	"github.com/clearcrest-windows/clearcrest-api/config"
	"github.com/clearcrest-windows/clearcrest-api/models"
	"github.com/gin-gonic/gin"
)

// CreateDealerCompanyRequest represents the request body for creating a dealer company
type CreateDealerCompanyRequest struct {
	Name         string `json:"name" binding:"required,max=150"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone string `json:"contact_phone" binding:"omitempty,max=20"`
	ServiceArea  string `json:"service_area" binding:"omitempty,max=150"`
}

// CreateDealerCompany handles POST /api/v1/dealer-companies (admins only)
func CreateDealerCompany(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Only admins can create dealer companies",
			},
		})
		return
	}

	var req CreateDealerCompanyRequest
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

	company := models.DealerCompany{
		Name:         req.Name,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		ServiceArea:  req.ServiceArea,
	}

	db := config.GetDB()
	if err := db.Create(&company).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create dealer company",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    company,
	})
}

// ListDealerCompanies handles GET /api/v1/dealer-companies
func ListDealerCompanies(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	db := config.GetDB()
	var companies []models.DealerCompany
	if err := db.Order("name ASC").Find(&companies).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch dealer companies",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    companies,
	})
}

// GetDealerCompany handles GET /api/v1/dealer-companies/:id
func GetDealerCompany(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var company models.DealerCompany
	if err := db.First(&company, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "COMPANY_NOT_FOUND",
				"message": "Dealer company not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    company,
	})
}

// DeleteDealerCompany handles DELETE /api/v1/dealer-companies/:id (admins
// only). Removing a company cascades to its jobs, their photos, and its
// dealer profiles.
func DeleteDealerCompany(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Only admins can delete dealer companies",
			},
		})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var company models.DealerCompany
	if err := db.First(&company, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "COMPANY_NOT_FOUND",
				"message": "Dealer company not found",
			},
		})
		return
	}

	if err := db.Delete(&company).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete dealer company",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": company.ID},
	})
}
