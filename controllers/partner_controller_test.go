package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/clearcrest-windows/clearcrest-api/config"
	"github.com/clearcrest-windows/clearcrest-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDealersPage_RendersForm(t *testing.T) {
	router := setupSiteRouter()
	router.GET("/dealers/", DealersPage)

	req := httptest.NewRequest(http.MethodGet, "/dealers/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Become a ClearCrest Dealer")
	assert.Contains(t, w.Body.String(), `name="company"`)
}

func TestSubmitPartnerApplication_Success(t *testing.T) {
	// Setup
	db := setupTestDB(t)
	config.SetDB(db)

	router := setupSiteRouter()
	router.POST("/partners/apply", SubmitPartnerApplication)

	w := postForm(router, "/partners/apply", url.Values{
		"company":       {"Lakeside Interiors"},
		"name":          {"Pat Rivera"},
		"email":         {"pat@lakeside.example.com"},
		"phone":         {"555-0188"},
		"business_type": {"Interior design studio"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), partnerSuccessMessage)

	var applications []models.PartnerApplication
	db.Find(&applications)
	require.Len(t, applications, 1)
	assert.Equal(t, "Lakeside Interiors", applications[0].Company)
	assert.Equal(t, "Pat Rivera", applications[0].Name)
	assert.Equal(t, "Interior design studio", applications[0].BusinessType)
}

func TestSubmitPartnerApplication_MissingCompany(t *testing.T) {
	// Setup
	db := setupTestDB(t)
	config.SetDB(db)

	router := setupSiteRouter()
	router.POST("/partners/apply", SubmitPartnerApplication)

	w := postForm(router, "/partners/apply", url.Values{
		"name":  {"Pat Rivera"},
		"email": {"pat@lakeside.example.com"},
		"phone": {"555-0188"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), partnerErrorMessage)
	assert.Contains(t, w.Body.String(), "This field is required.")

	var count int64
	db.Model(&models.PartnerApplication{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestListPartnerApplications_AdminOnly(t *testing.T) {
	// Setup
	db := setupTestDB(t)
	config.SetDB(db)

	createTestUser(t, db, "auth0|admin", "admin@example.com", models.RoleAdmin)
	createTestUser(t, db, "auth0|installer", "installer@example.com", models.RoleInstaller)

	db.Create(&models.PartnerApplication{
		Company: "Lakeside Interiors",
		Name:    "Pat Rivera",
		Email:   "pat@lakeside.example.com",
		Phone:   "555-0188",
	})

	tests := []struct {
		name           string
		auth0ID        string
		role           string
		expectedStatus int
	}{
		{"Admin can list applications", "auth0|admin", "admin", http.StatusOK},
		{"Installer cannot list applications", "auth0|installer", "installer", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.GET("/partner-applications",
				mockAuthMiddleware(tt.auth0ID, tt.role, "mock-token"),
				ListPartnerApplications,
			)

			req := httptest.NewRequest(http.MethodGet, "/partner-applications", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			err := json.Unmarshal(w.Body.Bytes(), &response)
			assert.NoError(t, err)

			if tt.expectedStatus == http.StatusOK {
				data := response["data"].([]interface{})
				assert.Len(t, data, 1)
			}
		})
	}
}
