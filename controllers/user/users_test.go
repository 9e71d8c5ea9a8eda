package userControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/renus-code/QuickBite/models"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	r := gin.New()
	authed := func(c *gin.Context) {
		c.Set("user_email", "bob@x.com")
		c.Next()
	}
	r.GET("/user", authed, GetUser(db))
	r.PUT("/user", authed, UpdateUser(db))
	r.DELETE("/user", authed, DeleteUser(db))
	return r, db
}

func seedBob(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{Email: "bob@x.com", PasswordHash: "x", DisplayName: "Bob"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestGetUser(t *testing.T) {
	r, db := setupRouter(t)
	seedBob(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Bob", got.DisplayName)
}

func TestGetUserNotFound(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateUser(t *testing.T) {
	r, db := setupRouter(t)
	seedBob(t, db)

	body, _ := json.Marshal(map[string]interface{}{
		"phone_number": "555-0100",
		"is_dark_mode": true,
		"add_address": map[string]string{
			"label": "Home", "street": "12 Main St", "city": "Toronto",
		},
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/user", bytes.NewReader(body))
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.User
	require.NoError(t, db.Where("email = ?", "bob@x.com").First(&stored).Error)
	assert.Equal(t, "555-0100", stored.PhoneNumber)
	assert.True(t, stored.IsDarkMode)
	require.Len(t, stored.Addresses, 1)
	assert.Equal(t, "Home", stored.Addresses[0].Label)
	assert.Equal(t, "Bob", stored.DisplayName, "untouched fields keep their values")
}

func TestDeleteUser(t *testing.T) {
	r, db := setupRouter(t)
	seedBob(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/user", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}
