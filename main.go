package main

import (
	"log"
	"net/http"

	"github.com/clearcrest-windows/clearcrest-api/config"
	"github.com/clearcrest-windows/clearcrest-api/controllers"
	"github.com/clearcrest-windows/clearcrest-api/middleware"
	"github.com/clearcrest-windows/clearcrest-api/models"
	"github.com/clearcrest-windows/clearcrest-api/services"
	"github.com/clearcrest-windows/clearcrest-api/templates"
	"github.com/clearcrest-windows/clearcrest-api/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Basic logging
	log.Println("Starting ClearCrest Windows API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.DealerCompany{},
		&models.InstallerProfile{},
		&models.DealerProfile{},
		&models.Job{},
		&models.JobPhoto{},
		&models.Lead{},
		&models.PartnerApplication{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize photo storage: S3 when a bucket is configured, local
	// filesystem otherwise
	if cfg.UsesS3() {
		s3Service, err := services.InitS3Service()
		if err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		services.InitImageService(s3Service)
		log.Printf("Job photos stored in S3 bucket %s", cfg.AWSS3Bucket)
	} else {
		utils.UploadDir = cfg.UploadDir
		services.InitLocalImageService(cfg.UploadDir)
		log.Printf("Job photos stored locally under %s", cfg.UploadDir)
	}

	router := setupRouter()

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the full route table: the public marketing site and
// the authenticated job-management API
func setupRouter() *gin.Engine {
	router := gin.Default()
	router.SetHTMLTemplate(templates.Load())

	cfg := config.GetConfig()

	// Public marketing site
	router.GET("/", controllers.HomePage)
	router.GET("/services/", controllers.ServicesPage)
	router.GET("/dealers/", controllers.DealersPage)
	router.GET("/about/", controllers.AboutPage)
	router.GET("/contact/", controllers.ContactPage)
	router.POST("/contact/", controllers.SubmitContactForm)
	router.POST("/partners/apply", controllers.SubmitPartnerApplication)

	// Locally stored job photos (no-op route when S3 is in use)
	router.GET("/uploads/*filepath", controllers.GetUploadedImage)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(cors.Default())
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)
	}

	secured := v1.Group("")
	if cfg != nil && cfg.Auth0Domain != "" {
		secured.Use(middleware.EnsureValidToken(cfg))
	}
	{
		secured.POST("/users", controllers.CreateUser)
		secured.GET("/users/me", controllers.GetMyProfile)
		secured.PUT("/users/me", controllers.UpdateMyProfile)
		secured.DELETE("/users/:id", controllers.DeleteUser)

		secured.POST("/dealer-companies", controllers.CreateDealerCompany)
		secured.GET("/dealer-companies", controllers.ListDealerCompanies)
		secured.GET("/dealer-companies/:id", controllers.GetDealerCompany)
		secured.DELETE("/dealer-companies/:id", controllers.DeleteDealerCompany)

		secured.POST("/installer-profiles", controllers.CreateInstallerProfile)
		secured.GET("/installer-profiles", controllers.ListInstallerProfiles)
		secured.DELETE("/installer-profiles/:id", controllers.DeleteInstallerProfile)
		secured.POST("/dealer-profiles", controllers.CreateDealerProfile)

		secured.POST("/jobs", controllers.CreateJob)
		secured.GET("/jobs", controllers.ListJobs)
		secured.GET("/jobs/:id", controllers.GetJob)
		secured.PUT("/jobs/:id", controllers.UpdateJob)
		secured.PUT("/jobs/:id/assign", controllers.AssignInstaller)
		secured.PUT("/jobs/:id/status", controllers.UpdateJobStatus)
		secured.PUT("/jobs/:id/payment", controllers.UpdateJobPayment)
		secured.DELETE("/jobs/:id", controllers.DeleteJob)

		secured.POST("/jobs/:id/photos", controllers.UploadJobPhoto)
		secured.GET("/jobs/:id/photos", controllers.ListJobPhotos)

		secured.GET("/leads", controllers.ListLeads)
		secured.GET("/partner-applications", controllers.ListPartnerApplications)
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "ClearCrest Windows API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()
	if db == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Database not initialized",
			},
		})
		return
	}

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
