package controllers

import (
	"errors"
	"net/http"

	"github.com/clearcrest-windows/clearcrest-api/config"
	"github.com/clearcrest-windows/clearcrest-api/models"
	"github.com/clearcrest-windows/clearcrest-api/services"
	"github.com/clearcrest-windows/clearcrest-api/utils"
	"github.com/gin-gonic/gin"
)

// UploadJobPhoto handles POST /api/v1/jobs/:id/photos - attaches a
// before/after photo to a job. The image is stored under a
// date-partitioned key and the uploader is recorded.
func UploadJobPhoto(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	job, ok := findJob(c, db)
	if !ok {
		return
	}

	// Anyone who can see the job can document it with photos
	if !canViewJob(db, user, job) && !canManageJob(db, user, job) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to add photos to this job",
			},
		})
		return
	}

	photoType := models.PhotoType(c.PostForm("photo_type"))
	if !models.ValidPhotoType(photoType) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_PHOTO_TYPE",
				"message": "photo_type must be 'before' or 'after'",
			},
		})
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "A photo file is required",
			},
		})
		return
	}

	imageKey, err := services.GetImageService().UploadImage(fileHeader)
	if err != nil {
		var uploadErr *utils.FileUploadError
		if errors.As(err, &uploadErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    uploadErr.Code,
					"message": uploadErr.Message,
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_ERROR",
				"message": "Failed to store the photo",
			},
		})
		return
	}

	photo := models.JobPhoto{
		JobID:        job.ID,
		PhotoType:    photoType,
		ImageKey:     imageKey,
		Caption:      c.PostForm("caption"),
		UploadedByID: &user.ID,
	}

	if err := db.Create(&photo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save photo record",
			},
		})
		return
	}

	// Load the uploader relationship to return complete data
	if err := db.Preload("UploadedBy").First(&photo, "id = ?", photo.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load photo details",
			},
		})
		return
	}

	if url, err := services.GetImageService().GetImageURL(photo.ImageKey); err == nil {
		photo.ImageURL = url
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    photo,
	})
}

// ListJobPhotos handles GET /api/v1/jobs/:id/photos - lists a job's photos
// in upload order with freshly computed image URLs
func ListJobPhotos(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	job, ok := findJob(c, db)
	if !ok {
		return
	}

	if !canViewJob(db, user, job) && !canManageJob(db, user, job) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to view photos on this job",
			},
		})
		return
	}

	var photos []models.JobPhoto
	if err := db.Where("job_id = ?", job.ID).
		Preload("UploadedBy").
		Order("created_at ASC").
		Find(&photos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch photos",
			},
		})
		return
	}

	imageService := services.GetImageService()
	for i := range photos {
		if url, err := imageService.GetImageURL(photos[i].ImageKey); err == nil {
			photos[i].ImageURL = url
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    photos,
	})
}
