package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ryanstpierre/boulder.codes-sub000/internal/middleware"
	"github.com/ryanstpierre/boulder.codes-sub000/internal/models"
	"github.com/ryanstpierre/boulder.codes-sub000/internal/repository"
	"github.com/ryanstpierre/boulder.codes-sub000/internal/services"
	"github.com/ryanstpierre/boulder.codes-sub000/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// RegistrationHandlerTestSuite defines the test suite for the registration
// handlers, including the tag reconciliation path
type RegistrationHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

// SetupTest runs before each test
func (suite *RegistrationHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.Tag{},
		&models.Registration{},
		&models.RegistrationTag{},
	)
	suite.Require().NoError(err)

	tagRepo := repository.NewTagRepository(suite.db)
	registrationRepo := repository.NewRegistrationRepository(suite.db)

	registrationService := services.NewRegistrationService(registrationRepo)
	reconcileService := services.NewReconcileService(tagRepo, registrationRepo)
	handler := NewRegistrationHandler(registrationService, reconcileService, false)

	gin.SetMode(gin.TestMode)

	suite.router = gin.New()
	api := suite.router.Group("/api")
	api.POST("/register-with-tags", handler.Submit)
	api.POST("/community/register-with-tags", handler.SubmitCommunity)

	admin := api.Group("", middleware.RequireAdmin(testAdminToken))
	admin.GET("/admin/registrations", handler.List)
}

// TearDownTest runs after each test
func (suite *RegistrationHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *RegistrationHandlerTestSuite) createTestTag(name string, approved bool) *models.Tag {
	tag := &models.Tag{
		Name:     name,
		Slug:     utils.Slugify(name),
		Category: "language",
		Approved: approved,
	}
	suite.Require().NoError(suite.db.Create(tag).Error)
	return tag
}

func (suite *RegistrationHandlerTestSuite) createTestRegistration(firstName, email string) *models.Registration {
	registration := &models.Registration{
		FirstName: firstName,
		LastName:  "Tester",
		Email:     email,
		Role:      "developer",
	}
	suite.Require().NoError(suite.db.Create(registration).Error)
	return registration
}

func (suite *RegistrationHandlerTestSuite) request(method, url string, body any, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *RegistrationHandlerTestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func (suite *RegistrationHandlerTestSuite) submitBody(email string) gin.H {
	return gin.H{
		"firstName": "Grace",
		"lastName":  "Hopper",
		"email":     email,
		"role":      "developer",
	}
}

// TestSubmit_Success covers registration plus mixed tag reconciliation
func (suite *RegistrationHandlerTestSuite) TestSubmit_Success() {
	existing := suite.createTestTag("Go", true)

	body := suite.submitBody("grace@example.com")
	body["projectIdea"] = "A compiler, obviously"
	body["tags"] = []gin.H{
		{"id": existing.ID},
		{"name": "COBOL", "isCustom": true},
	}

	w := suite.request("POST", "/api/register-with-tags", body, "")

	assert.Equal(suite.T(), http.StatusCreated, w.Code)
	response := suite.decode(w)
	assert.Equal(suite.T(), true, response["success"])
	assert.Equal(suite.T(), "connected", response["dbStatus"])
	assert.Greater(suite.T(), response["registrationId"].(float64), float64(0))

	tags := response["tags"].([]interface{})
	assert.Len(suite.T(), tags, 2)

	// The custom tag was created unapproved, visible, category "custom"
	var created models.Tag
	suite.Require().NoError(suite.db.Where("name = ?", "COBOL").First(&created).Error)
	assert.False(suite.T(), created.Approved)
	assert.False(suite.T(), created.Hidden)
	assert.Equal(suite.T(), "custom", created.Category)
	assert.Equal(suite.T(), "cobol", created.Slug)

	// One link row per tag
	var links int64
	suite.db.Model(&models.RegistrationTag{}).Count(&links)
	assert.Equal(suite.T(), int64(2), links)
}

// TestSubmit_MissingFields fails validation with no row created
func (suite *RegistrationHandlerTestSuite) TestSubmit_MissingFields() {
	body := suite.submitBody("grace@example.com")
	delete(body, "role")

	w := suite.request("POST", "/api/register-with-tags", body, "")

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var count int64
	suite.db.Model(&models.Registration{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

// TestSubmit_InvalidEmail is rejected by binding validation
func (suite *RegistrationHandlerTestSuite) TestSubmit_InvalidEmail() {
	w := suite.request("POST", "/api/register-with-tags", suite.submitBody("not-an-email"), "")

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestSubmit_DuplicateEmail conflicts on the second submission
func (suite *RegistrationHandlerTestSuite) TestSubmit_DuplicateEmail() {
	first := suite.request("POST", "/api/register-with-tags", suite.submitBody("grace@example.com"), "")
	assert.Equal(suite.T(), http.StatusCreated, first.Code)

	second := suite.request("POST", "/api/register-with-tags", suite.submitBody("grace@example.com"), "")
	assert.Equal(suite.T(), http.StatusConflict, second.Code)
	response := suite.decode(second)
	assert.Equal(suite.T(), false, response["success"])

	var count int64
	suite.db.Model(&models.Registration{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

// TestSubmit_CustomTagReuse reuses an existing tag on a case-insensitive
// match instead of creating a duplicate
func (suite *RegistrationHandlerTestSuite) TestSubmit_CustomTagReuse() {
	existing := suite.createTestTag("Go", true)

	body := suite.submitBody("grace@example.com")
	body["tags"] = []gin.H{
		{"name": "go", "isCustom": true},
	}

	w := suite.request("POST", "/api/register-with-tags", body, "")

	assert.Equal(suite.T(), http.StatusCreated, w.Code)
	tags := suite.decode(w)["tags"].([]interface{})
	suite.Require().Len(tags, 1)
	assert.Equal(suite.T(), float64(existing.ID), tags[0].(map[string]interface{})["id"])

	var count int64
	suite.db.Model(&models.Tag{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

// TestSubmit_DuplicateTagReferences links the same catalog tag only once
func (suite *RegistrationHandlerTestSuite) TestSubmit_DuplicateTagReferences() {
	existing := suite.createTestTag("Go", true)

	body := suite.submitBody("grace@example.com")
	body["tags"] = []gin.H{
		{"id": existing.ID},
		{"name": "GO", "isCustom": true},
	}

	w := suite.request("POST", "/api/register-with-tags", body, "")

	assert.Equal(suite.T(), http.StatusCreated, w.Code)
	tags := suite.decode(w)["tags"].([]interface{})
	assert.Len(suite.T(), tags, 1)

	var links int64
	suite.db.Model(&models.RegistrationTag{}).Count(&links)
	assert.Equal(suite.T(), int64(1), links)
}

// TestSubmit_TagFailuresDoNotFailRegistration drops the link table so every
// association insert fails; the registration must still succeed
func (suite *RegistrationHandlerTestSuite) TestSubmit_TagFailuresDoNotFailRegistration() {
	suite.Require().NoError(suite.db.Migrator().DropTable(&models.RegistrationTag{}))

	body := suite.submitBody("grace@example.com")
	body["tags"] = []gin.H{
		{"name": "COBOL", "isCustom": true},
	}

	w := suite.request("POST", "/api/register-with-tags", body, "")

	assert.Equal(suite.T(), http.StatusCreated, w.Code)
	response := suite.decode(w)
	assert.Equal(suite.T(), true, response["success"])
	assert.Len(suite.T(), response["tags"].([]interface{}), 0)

	var count int64
	suite.db.Model(&models.Registration{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

// TestSubmit_CommunityKind persists the community flavor
func (suite *RegistrationHandlerTestSuite) TestSubmit_CommunityKind() {
	w := suite.request("POST", "/api/community/register-with-tags", suite.submitBody("grace@example.com"), "")

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var registration models.Registration
	suite.Require().NoError(suite.db.First(&registration).Error)
	assert.Equal(suite.T(), models.KindCommunity, registration.Kind)
}

// TestSubmit_Fallback exercises the database-less demo mode
func (suite *RegistrationHandlerTestSuite) TestSubmit_Fallback() {
	handler := NewRegistrationHandler(nil, nil, true)
	router := gin.New()
	router.POST("/api/register-with-tags", handler.Submit)

	data, err := json.Marshal(suite.submitBody("grace@example.com"))
	suite.Require().NoError(err)
	req := httptest.NewRequest("POST", "/api/register-with-tags", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)
	response := suite.decode(w)
	assert.Equal(suite.T(), true, response["success"])
	assert.Equal(suite.T(), "fallback", response["dbStatus"])
	assert.NotEmpty(suite.T(), response["registrationId"].(string))
}

// TestListRegistrations_Admin pages through registrations with a total count
func (suite *RegistrationHandlerTestSuite) TestListRegistrations_Admin() {
	suite.createTestRegistration("Ada", "ada@example.com")
	suite.createTestRegistration("Grace", "grace@example.com")
	suite.createTestRegistration("Linus", "linus@example.com")

	w := suite.request("GET", "/api/admin/registrations?limit=2&offset=0", nil, testAdminToken)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	data := suite.decode(w)["data"].(map[string]interface{})
	assert.Equal(suite.T(), float64(3), data["total"])
	assert.Len(suite.T(), data["registrations"].([]interface{}), 2)
}

// TestListRegistrations_Search matches name and email case-insensitively
func (suite *RegistrationHandlerTestSuite) TestListRegistrations_Search() {
	suite.createTestRegistration("Ada", "ada@example.com")
	suite.createTestRegistration("Grace", "grace@example.com")

	w := suite.request("GET", "/api/admin/registrations?search=GRACE", nil, testAdminToken)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	data := suite.decode(w)["data"].(map[string]interface{})
	registrations := data["registrations"].([]interface{})
	suite.Require().Len(registrations, 1)
	assert.Equal(suite.T(), "grace@example.com", registrations[0].(map[string]interface{})["email"])
}

// TestListRegistrations_Unauthorized keeps the admin view gated
func (suite *RegistrationHandlerTestSuite) TestListRegistrations_Unauthorized() {
	w := suite.request("GET", "/api/admin/registrations", nil, "")

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func TestRegistrationHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(RegistrationHandlerTestSuite))
}
