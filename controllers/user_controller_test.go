package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/clearcrest-windows/clearcrest-api/config"
	"github.com/clearcrest-windows/clearcrest-api/middleware"
	"github.com/clearcrest-windows/clearcrest-api/models"
	"github.com/clearcrest-windows/clearcrest-api/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	// Auto-migrate every model so cross-table hooks work in all tests
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
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	return router
}

// setupMockAuth0Server creates a mock HTTP server that simulates Auth0's /userinfo endpoint
func setupMockAuth0Server(userInfoMap map[string]*services.Auth0UserInfo) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/userinfo" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		// Extract token from Authorization header
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || len(authHeader) < 7 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		token := authHeader[7:] // Remove "Bearer " prefix

		// Look up user info by token
		userInfo, exists := userInfoMap[token]
		if !exists {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(userInfo)
	}))
}

// mockAuthMiddleware simulates the Auth0 JWT middleware for testing
// It sets up the context exactly as the real EnsureValidToken middleware does
func mockAuthMiddleware(auth0ID, role, accessToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Set the user_id (Auth0 ID from 'sub' claim)
		c.Set("user_id", auth0ID)

		// Set the access token for calling /userinfo
		c.Set("access_token", accessToken)

		// Create custom claims matching the real structure
		customClaims := &middleware.CustomClaims{
			Role: role,
		}

		mockClaims := &validator.ValidatedClaims{
			CustomClaims: customClaims,
		}

		// Store in context the same way the real middleware does
		c.Set("validated_claims", mockClaims)

		c.Next()
	}
}

// createTestUser persists a user with the given role and returns it
func createTestUser(t *testing.T, db *gorm.DB, auth0ID, email string, role models.Role) models.User {
	t.Helper()
	user := models.User{
		Auth0ID: auth0ID,
		Name:    "Test User",
		Email:   email,
		Role:    role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func TestCreateUser(t *testing.T) {
	// Setup
	db := setupTestDB(t)
	config.SetDB(db)

	tests := []struct {
		name           string
		auth0ID        string
		email          string
		userName       string
		role           string
		accessToken    string
		expectedStatus int
		expectedCode   string
		expectedRole   string
	}{
		{
			name:           "Create installer user successfully",
			auth0ID:        "auth0|installer123",
			email:          "installer@example.com",
			userName:       "Installer User",
			role:           "installer",
			accessToken:    "token-installer123",
			expectedStatus: http.StatusCreated,
			expectedRole:   "installer",
		},
		{
			name:           "Create dealer user successfully",
			auth0ID:        "auth0|dealer456",
			email:          "dealer@example.com",
			userName:       "Dealer User",
			role:           "dealer",
			accessToken:    "token-dealer456",
			expectedStatus: http.StatusCreated,
			expectedRole:   "dealer",
		},
		{
			name:           "Create admin user successfully",
			auth0ID:        "auth0|admin789",
			email:          "admin@example.com",
			userName:       "Admin User",
			role:           "admin",
			accessToken:    "token-admin789",
			expectedStatus: http.StatusCreated,
			expectedRole:   "admin",
		},
		{
			name:           "Default to installer when role claim is absent",
			auth0ID:        "auth0|norole",
			email:          "norole@example.com",
			userName:       "No Role User",
			role:           "",
			accessToken:    "token-norole",
			expectedStatus: http.StatusCreated,
			expectedRole:   "installer",
		},
		{
			name:           "Fail with unknown role claim",
			auth0ID:        "auth0|badrole",
			email:          "badrole@example.com",
			userName:       "Bad Role User",
			role:           "superuser",
			accessToken:    "token-badrole",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_ROLE",
		},
		{
			name:           "Fail with missing email",
			auth0ID:        "auth0|noemail",
			email:          "",
			userName:       "No Email User",
			role:           "installer",
			accessToken:    "token-noemail",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "MISSING_EMAIL",
		},
		{
			name:           "Fail with missing name",
			auth0ID:        "auth0|noname",
			email:          "noname@example.com",
			userName:       "",
			role:           "installer",
			accessToken:    "token-noname",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "MISSING_NAME",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear database before each test
			db.Exec("DELETE FROM users")

			// Setup mock Auth0 server
			userInfoMap := map[string]*services.Auth0UserInfo{
				tt.accessToken: {
					Sub:   tt.auth0ID,
					Email: tt.email,
					Name:  tt.userName,
				},
			}
			mockServer := setupMockAuth0Server(userInfoMap)
			defer mockServer.Close()

			// Point the Auth0 service at the mock server for this test
			testConfig := &config.Config{
				Auth0Domain: mockServer.URL,
			}
			originalConfig := config.GetConfig()
			defer func() {
				config.SetConfig(originalConfig)
			}()
			config.SetConfig(testConfig)

			// Setup route with mock auth middleware
			router := setupTestRouter()
			router.POST("/users", mockAuthMiddleware(tt.auth0ID, tt.role, tt.accessToken), CreateUser)

			req := httptest.NewRequest(http.MethodPost, "/users", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code, "Response body: %s", w.Body.String())

			var response map[string]interface{}
			err := json.Unmarshal(w.Body.Bytes(), &response)
			assert.NoError(t, err)

			if tt.expectedStatus == http.StatusCreated {
				assert.True(t, response["success"].(bool))
				assert.NotNil(t, response["data"])
				data := response["data"].(map[string]interface{})
				assert.Equal(t, tt.email, data["email"])
				assert.Equal(t, tt.userName, data["name"])
				assert.Equal(t, tt.auth0ID, data["auth0_id"])
				assert.Equal(t, tt.expectedRole, data["role"])
				assert.NotEmpty(t, data["id"], "UUID primary key should be set")
			} else {
				assert.False(t, response["success"].(bool))
				errorData := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedCode, errorData["code"])
			}
		})
	}
}

func TestCreateUser_DuplicateAuth0ID(t *testing.T) {
	// Setup
	db := setupTestDB(t)
	config.SetDB(db)

	// Create first user
	createTestUser(t, db, "auth0|duplicate", "first@example.com", models.RoleInstaller)

	// Setup mock Auth0 server
	accessToken := "token-duplicate"
	userInfoMap := map[string]*services.Auth0UserInfo{
		accessToken: {
			Sub:   "auth0|duplicate",
			Email: "second@example.com",
			Name:  "Second User",
		},
	}
	mockServer := setupMockAuth0Server(userInfoMap)
	defer mockServer.Close()

	testConfig := &config.Config{
		Auth0Domain: mockServer.URL,
	}
	originalConfig := config.GetConfig()
	defer func() {
		config.SetConfig(originalConfig)
	}()
	config.SetConfig(testConfig)

	// Try to create user with duplicate Auth0ID
	router := setupTestRouter()
	router.POST("/users", mockAuthMiddleware("auth0|duplicate", "installer", accessToken), CreateUser)

	req := httptest.NewRequest(http.MethodPost, "/users", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.False(t, response["success"].(bool))
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "USER_EXISTS", errorData["code"])
}

func TestGetMyProfile_Success(t *testing.T) {
	// Setup
	db := setupTestDB(t)
	config.SetDB(db)
	router := setupTestRouter()

	router.GET("/users/me", func(c *gin.Context) {
		c.Set("user_id", "auth0|testuser")
		GetMyProfile(c)
	})

	createTestUser(t, db, "auth0|testuser", "test@example.com", models.RoleDealer)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.True(t, response["success"].(bool))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "test@example.com", data["email"])
	assert.Equal(t, "dealer", data["role"])
}

func TestGetMyProfile_UserNotFound(t *testing.T) {
	// Setup
	db := setupTestDB(t)
	config.SetDB(db)
	router := setupTestRouter()

	router.GET("/users/me", func(c *gin.Context) {
		c.Set("user_id", "auth0|nonexistent")
		GetMyProfile(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.False(t, response["success"].(bool))
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "USER_NOT_FOUND", errorData["code"])
}

func TestUpdateMyProfile_Success(t *testing.T) {
	// Setup
	db := setupTestDB(t)
	config.SetDB(db)
	router := setupTestRouter()

	router.PUT("/users/me", func(c *gin.Context) {
		c.Set("user_id", "auth0|testuser")
		UpdateMyProfile(c)
	})

	createTestUser(t, db, "auth0|testuser", "old@example.com", models.RoleInstaller)

	payload := UpdateUserRequest{
		Name:  "New Name",
		Email: "new@example.com",
		Phone: "555-0134",
	}

	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPut, "/users/me", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.True(t, response["success"].(bool))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "new@example.com", data["email"])
	assert.Equal(t, "New Name", data["name"])
	assert.Equal(t, "555-0134", data["phone"])
}

func TestUpdateMyProfile_RoleIsImmutable(t *testing.T) {
	// Setup
	db := setupTestDB(t)
	config.SetDB(db)
	router := setupTestRouter()

	router.PUT("/users/me", func(c *gin.Context) {
		c.Set("user_id", "auth0|testuser")
		UpdateMyProfile(c)
	})

	user := createTestUser(t, db, "auth0|testuser", "test@example.com", models.RoleInstaller)

	// A role field in the body is simply ignored
	body := []byte(`{"name":"Renamed","role":"admin"}`)
	req := httptest.NewRequest(http.MethodPut, "/users/me", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.User
	db.First(&updated, "id = ?", user.ID)
	assert.Equal(t, models.RoleInstaller, updated.Role, "Role must not change through profile updates")
	assert.Equal(t, "Renamed", updated.Name)
}

func TestUpdateMyProfile_DuplicateEmail(t *testing.T) {
	// Setup
	db := setupTestDB(t)
	config.SetDB(db)
	router := setupTestRouter()

	router.PUT("/users/me", func(c *gin.Context) {
		c.Set("user_id", "auth0|testuser")
		UpdateMyProfile(c)
	})

	createTestUser(t, db, "auth0|testuser", "user1@example.com", models.RoleInstaller)
	createTestUser(t, db, "auth0|otheruser", "user2@example.com", models.RoleInstaller)

	payload := UpdateUserRequest{
		Email: "user2@example.com",
	}

	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPut, "/users/me", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.False(t, response["success"].(bool))
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "EMAIL_EXISTS", errorData["code"])
}

func TestUpdateMyProfile_EmptyUpdate(t *testing.T) {
	// Setup
	db := setupTestDB(t)
	config.SetDB(db)
	router := setupTestRouter()

	router.PUT("/users/me", func(c *gin.Context) {
		c.Set("user_id", "auth0|testuser")
		UpdateMyProfile(c)
	})

	createTestUser(t, db, "auth0|testuser", "test@example.com", models.RoleInstaller)

	payload := UpdateUserRequest{}

	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPut, "/users/me", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.True(t, response["success"].(bool))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "test@example.com", data["email"])
}

func TestDeleteUser_AdminOnly(t *testing.T) {
	// Setup
	db := setupTestDB(t)
	config.SetDB(db)

	createTestUser(t, db, "auth0|installer", "installer@example.com", models.RoleInstaller)
	target := createTestUser(t, db, "auth0|target", "target@example.com", models.RoleInstaller)

	router := setupTestRouter()
	router.DELETE("/users/:id",
		mockAuthMiddleware("auth0|installer", "installer", "mock-token"),
		DeleteUser,
	)

	req := httptest.NewRequest(http.MethodDelete, "/users/"+target.ID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "FORBIDDEN", errorData["code"])
}

func TestDeleteUser_ClearsPhotoUploader(t *testing.T) {
	// Setup
	db := setupTestDB(t)
	config.SetDB(db)

	createTestUser(t, db, "auth0|admin", "admin@example.com", models.RoleAdmin)
	uploader := createTestUser(t, db, "auth0|uploader", "uploader@example.com", models.RoleInstaller)

	company := models.DealerCompany{Name: "Summit Blinds Co"}
	db.Create(&company)

	job := models.Job{Title: "Install blinds", DealerCompanyID: company.ID}
	db.Create(&job)

	photo := models.JobPhoto{
		JobID:        job.ID,
		PhotoType:    models.PhotoBefore,
		ImageKey:     "job_photos/2026/09/01/test.png",
		UploadedByID: &uploader.ID,
	}
	db.Create(&photo)

	router := setupTestRouter()
	router.DELETE("/users/:id",
		mockAuthMiddleware("auth0|admin", "admin", "mock-token"),
		DeleteUser,
	)

	req := httptest.NewRequest(http.MethodDelete, "/users/"+uploader.ID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	// The photo survives with the uploader reference cleared
	var kept models.JobPhoto
	err := db.First(&kept, "id = ?", photo.ID).Error
	assert.NoError(t, err, "Photo should survive the uploader's deletion")
	assert.Nil(t, kept.UploadedByID, "Uploader reference should be nulled")

	var userCount int64
	db.Model(&models.User{}).Where("id = ?", uploader.ID).Count(&userCount)
	assert.Equal(t, int64(0), userCount)
}

func TestDeleteUser_RemovesOwnedProfile(t *testing.T) {
	// Setup
	db := setupTestDB(t)
	config.SetDB(db)

	createTestUser(t, db, "auth0|admin", "admin@example.com", models.RoleAdmin)
	installer := createTestUser(t, db, "auth0|installer", "installer@example.com", models.RoleInstaller)

	profile := models.InstallerProfile{
		UserID:      installer.ID,
		DisplayName: "Sam the Installer",
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("Failed to create installer profile: %v", err)
	}

	router := setupTestRouter()
	router.DELETE("/users/:id",
		mockAuthMiddleware("auth0|admin", "admin", "mock-token"),
		DeleteUser,
	)

	req := httptest.NewRequest(http.MethodDelete, "/users/"+installer.ID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var profileCount int64
	db.Model(&models.InstallerProfile{}).Where("user_id = ?", installer.ID).Count(&profileCount)
	assert.Equal(t, int64(0), profileCount, "Owned profile should be removed with the user")
}
