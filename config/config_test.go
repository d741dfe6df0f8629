package config

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motorcycles-backend/models"
)

func TestLoadSettingsFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("JWT_EXPIRY_HOURS", "2")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("HEALTH_INTERVAL", "5s")
	t.Setenv("TWILIO_ACCOUNT_SID", "AC123")
	t.Setenv("TWILIO_AUTH_TOKEN", "secret")
	t.Setenv("TWILIO_PHONE_NUMBER", "+15550001111")

	s, err := LoadSettings()
	require.NoError(t, err)

	assert.Equal(t, "9090", s.Port)
	assert.Equal(t, "sqlite", s.DBDriver)
	assert.Equal(t, 2*time.Hour, s.JWTExpiry)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, s.AllowedOrigins)
	assert.Equal(t, 5*time.Second, s.HealthInterval)
	assert.Equal(t, 10*time.Second, s.APITimeout)
	assert.True(t, s.Twilio.Enabled())
	assert.Same(t, s, AppConfig)
}

func TestLoadSettingsBadInterval(t *testing.T) {
	t.Setenv("HEALTH_INTERVAL", "soon")

	_, err := LoadSettings()
	assert.Error(t, err)
}

func TestMysqlDSN(t *testing.T) {
	assert.Equal(t, "u:p@tcp(db:3306)/shop?charset=utf8mb4&parseTime=True&loc=UTC", mysqlDSN("mysql://u:p@db:3306/shop"))
	assert.Equal(t, "u:p@tcp(db:3306)/shop?tls=true", mysqlDSN("mariadb://u:p@db:3306/shop?tls=true"))
	assert.Equal(t, "u:p@tcp(db)/shop", mysqlDSN("u:p@tcp(db)/shop"))
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open("oracle", "x")
	assert.Error(t, err)
}

func TestMigrateAndSeedAdmin(t *testing.T) {
	db, err := Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	require.NoError(t, SeedAdmin(db, "admin", "s3cret!"))
	require.NoError(t, SeedAdmin(db, "other", "ignored"))

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "admin", users[0].Username)
	assert.NotEqual(t, "s3cret!", users[0].Password)
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), PerformanceLogger(time.Second))
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, w.Header().Get("X-Request-ID"), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Body.String())
}
