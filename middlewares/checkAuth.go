package middlewares

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/StillWaters/initializers"
	"github.com/StillWaters/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// parseBearer validates the Authorization header and returns the access
// token claims along with the operator they belong to.
func parseBearer(c *gin.Context) (*models.Operator, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, fmt.Errorf("authorization header is missing")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, fmt.Errorf("invalid token format")
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(os.Getenv("SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}

	// Refresh tokens are only good for the refresh endpoint.
	if claims["type"] != "access" {
		return nil, fmt.Errorf("not an access token")
	}

	var operator models.Operator
	found, err := initializers.DB.From("operator").
		Select("*").
		Where(goqu.C("operator_id").Eq(claims["id"])).
		ScanStruct(&operator)
	if err != nil {
		return nil, fmt.Errorf("failed to load operator account")
	}
	if !found || operator.Operator_ID == 0 {
		return nil, fmt.Errorf("operator account not found")
	}

	return &operator, nil
}

// CheckAuth rejects requests without a valid operator access token.
func CheckAuth(c *gin.Context) {
	operator, err := parseBearer(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.Set("currentUser", *operator)
	c.Set("authenticated", true)
	c.Next()
}

// OptionalAuth resolves the operator when a valid token is presented but
// never rejects. Public content endpoints use it to let operators see
// unpublished rows.
func OptionalAuth(c *gin.Context) {
	if operator, err := parseBearer(c); err == nil {
		c.Set("currentUser", *operator)
		c.Set("authenticated", true)
	}
	c.Next()
}
