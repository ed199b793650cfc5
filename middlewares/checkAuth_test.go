package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"

	"github.com/StillWaters/initializers"
)

func signTestToken(t *testing.T, tokenType string, ttl time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   1,
		"exp":  time.Now().Add(ttl).Unix(),
		"type": tokenType,
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("Failed to sign test token: %v", err)
	}
	return signed
}

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	originalDB := initializers.DB
	initializers.DB = goqu.New("postgres", db)
	return mock, func() {
		db.Close()
		initializers.DB = originalDB
	}
}

func runCheckAuth(authHeader string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}
	CheckAuth(c)
	return c, w
}

func TestCheckAuth(t *testing.T) {
	t.Setenv("SECRET", "test-secret")

	operatorCols := []string{
		"operator_id", "username", "password", "email", "first_name", "last_name", "created_at", "updated_at",
	}

	tests := []struct {
		name           string
		authHeader     func(t *testing.T) string
		operatorExists bool
		expectedStatus int
	}{
		{
			name:           "valid access token",
			authHeader:     func(t *testing.T) string { return "Bearer " + signTestToken(t, "access", time.Hour) },
			operatorExists: true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing header",
			authHeader:     func(t *testing.T) string { return "" },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "malformed header",
			authHeader:     func(t *testing.T) string { return "Token abc123" },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "expired token",
			authHeader:     func(t *testing.T) string { return "Bearer " + signTestToken(t, "access", -time.Hour) },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "refresh token rejected",
			authHeader:     func(t *testing.T) string { return "Bearer " + signTestToken(t, "refresh", time.Hour) },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "operator account removed",
			authHeader:     func(t *testing.T) string { return "Bearer " + signTestToken(t, "access", time.Hour) },
			operatorExists: false,
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, cleanup := setupMockDB(t)
			defer cleanup()

			if tt.name == "valid access token" || tt.name == "operator account removed" {
				rows := sqlmock.NewRows(operatorCols)
				if tt.operatorExists {
					rows.AddRow(1, "testoperator", "hash", "operator@example.com", "Test", "Operator", time.Now(), time.Now())
				}
				mock.ExpectQuery("SELECT").WillReturnRows(rows)
			}

			c, w := runCheckAuth(tt.authHeader(t))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.True(t, c.GetBool("authenticated"))
				_, exists := c.Get("currentUser")
				assert.True(t, exists)
			} else {
				assert.True(t, c.IsAborted())
			}
		})
	}
}

func TestOptionalAuthNeverRejects(t *testing.T) {
	t.Setenv("SECRET", "test-secret")

	_, cleanup := setupMockDB(t)
	defer cleanup()

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/blog", nil)
	c.Request.Header.Set("Authorization", "Bearer not-a-token")

	OptionalAuth(c)

	assert.False(t, c.IsAborted())
	assert.False(t, c.GetBool("authenticated"))
}
