package controllers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/clearcrest-windows/clearcrest-api/utils"
	"github.com/gin-gonic/gin"
)

// GetUploadedImage handles GET /uploads/*filepath - serves locally stored
// job photos when the local image backend is in use
func GetUploadedImage(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("filepath"), "/")

	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "File path is required",
			},
		})
		return
	}

	// Security: Prevent directory traversal attacks
	if strings.Contains(key, "..") || strings.Contains(key, "\\") {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_FILENAME",
				"message": "Invalid file path",
			},
		})
		return
	}

	// Validate file extension is PNG
	if strings.ToLower(filepath.Ext(key)) != utils.AllowedImageFormat {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_FILE_TYPE",
				"message": "Only PNG files are supported",
			},
		})
		return
	}

	filePath := filepath.Join(utils.UploadDir, filepath.FromSlash(key))

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_NOT_FOUND",
				"message": "Image not found",
			},
		})
		return
	}

	c.Header("Content-Type", "image/png")
	c.Header("Cache-Control", "public, max-age=86400") // Cache for 24 hours
	c.File(filePath)
}
