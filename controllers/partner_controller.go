package controllers

import (
	"net/http"

	"github.com/clearcrest-windows/clearcrest-api/config"
	"github.com/clearcrest-windows/clearcrest-api/models"
	"github.com/gin-gonic/gin"
)

const (
	partnerSuccessMessage = "Thanks for your interest! Our dealer team will review your application and reach out."
	partnerErrorMessage   = "There was an error with your application. Please check the form and try again."
)

// PartnerApplicationForm represents the public dealer application fields
type PartnerApplicationForm struct {
	Company      string `form:"company" binding:"required,max=150"`
	Name         string `form:"name" binding:"required,max=100"`
	Email        string `form:"email" binding:"required,email"`
	Phone        string `form:"phone" binding:"required,max=20"`
	BusinessType string `form:"business_type" binding:"max=100"`
}

// DealersPage handles GET /dealers/ - renders the dealer program page with
// the partner application form
func DealersPage(c *gin.Context) {
	c.HTML(http.StatusOK, "dealers.html", gin.H{
		"form": PartnerApplicationForm{},
	})
}

// SubmitPartnerApplication handles POST /partners/apply - validates and
// persists a dealer partner application, same append-only flow as leads
func SubmitPartnerApplication(c *gin.Context) {
	var form PartnerApplicationForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "dealers.html", gin.H{
			"form":       form,
			"errors":     formErrors(err),
			"flash":      partnerErrorMessage,
			"flashClass": "error",
		})
		return
	}

	application := models.PartnerApplication{
		Company:      form.Company,
		Name:         form.Name,
		Email:        form.Email,
		Phone:        form.Phone,
		BusinessType: form.BusinessType,
	}

	db := config.GetDB()
	if err := db.Create(&application).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "dealers.html", gin.H{
			"form":       form,
			"flash":      "Something went wrong on our end. Please try again later.",
			"flashClass": "error",
		})
		return
	}

	c.HTML(http.StatusOK, "dealers.html", gin.H{
		"form":       PartnerApplicationForm{},
		"flash":      partnerSuccessMessage,
		"flashClass": "success",
	})
}

// ListPartnerApplications handles GET /api/v1/partner-applications - lists
// applications for admin review, newest first
func ListPartnerApplications(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Only admins can review partner applications",
			},
		})
		return
	}

	db := config.GetDB()
	var applications []models.PartnerApplication
	if err := db.Order("created_at DESC").Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch partner applications",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    applications,
	})
}
