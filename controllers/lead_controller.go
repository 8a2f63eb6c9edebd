package controllers

import (
	"net/http"

	"github.com/clearcrest-windows/clearcrest-api/config"
	"github.com/clearcrest-windows/clearcrest-api/models"
	"github.com/gin-gonic/gin"
)

const (
	contactSuccessMessage = "Thank you! Your request has been received. We will contact you shortly."
	contactErrorMessage   = "There was an error with your submission. Please check the form and try again."
)

// LeadForm represents the public contact form fields
type LeadForm struct {
	Name    string `form:"name" binding:"required,max=100"`
	Email   string `form:"email" binding:"required,email"`
	Phone   string `form:"phone" binding:"required,max=20"`
	Service string `form:"service"`
	City    string `form:"city" binding:"max=100"`
	Message string `form:"message"`
}

// HomePage handles GET /
func HomePage(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", gin.H{})
}

// ServicesPage handles GET /services/
func ServicesPage(c *gin.Context) {
	c.HTML(http.StatusOK, "services.html", gin.H{})
}

// AboutPage handles GET /about/
func AboutPage(c *gin.Context) {
	c.HTML(http.StatusOK, "about.html", gin.H{})
}

// ContactPage handles GET /contact/ - renders the empty contact form
func ContactPage(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", gin.H{
		"form": LeadForm{},
	})
}

// SubmitContactForm handles POST /contact/ - validates the form and
// persists a new lead. A valid submission creates exactly one immutable
// record; an invalid one creates nothing and re-renders with field errors.
func SubmitContactForm(c *gin.Context) {
	var form LeadForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "contact.html", gin.H{
			"form":       form,
			"errors":     formErrors(err),
			"flash":      contactErrorMessage,
			"flashClass": "error",
		})
		return
	}

	// Service defaults to general inquiry when left unspecified; anything
	// outside the enumeration is rejected
	service := models.ServiceType(form.Service)
	if service == "" {
		service = models.ServiceGeneral
	}
	if !models.ValidServiceType(service) {
		c.HTML(http.StatusBadRequest, "contact.html", gin.H{
			"form":       form,
			"errors":     map[string]string{"service": "Select a valid service."},
			"flash":      contactErrorMessage,
			"flashClass": "error",
		})
		return
	}

	lead := models.Lead{
		Name:    form.Name,
		Email:   form.Email,
		Phone:   form.Phone,
		Service: service,
		City:    form.City,
		Message: form.Message,
	}

	db := config.GetDB()
	if err := db.Create(&lead).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "contact.html", gin.H{
			"form":       form,
			"flash":      "Something went wrong on our end. Please try again later.",
			"flashClass": "error",
		})
		return
	}

	c.HTML(http.StatusOK, "contact.html", gin.H{
		"form":       LeadForm{},
		"flash":      contactSuccessMessage,
		"flashClass": "success",
	})
}

// ListLeads handles GET /api/v1/leads - lists leads for admin review,
// newest first. Leads stay append-only: there is no update or delete.
func ListLeads(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Only admins can review leads",
			},
		})
		return
	}

	db := config.GetDB()
	var leads []models.Lead
	if err := db.Order("created_at DESC").Find(&leads).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch leads",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    leads,
	})
}
