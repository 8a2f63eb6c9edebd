package controllers

import (
	"net/http"
	"strings"

	"github.com/clearcrest-windows/clearcrest-api/config"
	"github.com/clearcrest-windows/clearcrest-api/middleware"
	"github.com/clearcrest-windows/clearcrest-api/models"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// currentUser resolves the authenticated user for an API request. On
// failure it writes the error response and returns ok=false.
func currentUser(c *gin.Context) (*models.User, bool) {
	auth0ID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return nil, false
	}

	db := config.GetDB()
	var user models.User
	if err := db.Where("auth0_id = ?", auth0ID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "User profile not found. Please create a profile first.",
			},
		})
		return nil, false
	}

	return &user, true
}

// parseIDParam parses the UUID path parameter. On failure it writes the
// error response and returns ok=false.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Identifier must be a valid UUID",
			},
		})
		return uuid.Nil, false
	}
	return id, true
}

// isDuplicateError reports whether a database error is a unique-constraint
// violation (works with both PostgreSQL and SQLite)
func isDuplicateError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique")
}

// formErrors converts a binding error into field-level messages keyed by
// lowercase field name, for rendering back into the public forms
func formErrors(err error) map[string]string {
	errs := make(map[string]string)

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["form"] = "Invalid form data."
		return errs
	}

	for _, fe := range validationErrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			errs[field] = "This field is required."
		case "email":
			errs[field] = "Enter a valid email address."
		case "max":
			errs[field] = "This value is too long."
		default:
			errs[field] = "This value is invalid."
		}
	}

	return errs
}
