package controllers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/StillWaters/initializers"
	"github.com/StillWaters/models"
)

const (
	accessTokenTTL  = time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

func signToken(operatorID int, tokenType string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   operatorID,
		"exp":  time.Now().Add(ttl).Unix(),
		"type": tokenType,
	})
	return token.SignedString([]byte(os.Getenv("SECRET")))
}

// OperatorLogin verifies credentials and issues an access+refresh token pair.
func OperatorLogin(c *gin.Context) {
	var creds models.Login
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var operator models.Operator
	found, err := initializers.DB.From("operator").
		Select("*").
		Where(goqu.C("username").Eq(creds.Username)).
		ScanStruct(&operator)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up operator account"})
		return
	}

	if !found {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(operator.Password), []byte(creds.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	access, err := signToken(operator.Operator_ID, "access", accessTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	refresh, err := signToken(operator.Operator_ID, "refresh", refreshTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access":  access,
		"refresh": refresh,
	})
}

// RefreshToken exchanges a valid refresh token for a fresh token pair.
func RefreshToken(c *gin.Context) {
	var body struct {
		Refresh string `json:"refresh"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Refresh == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Refresh token is required"})
		return
	}

	token, err := jwt.Parse(body.Refresh, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(os.Getenv("SECRET")), nil
	})
	if err != nil || !token.Valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["type"] != "refresh" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not a refresh token"})
		return
	}

	id, ok := claims["id"].(float64)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	// The account may have been removed since the token was issued.
	var operator models.Operator
	found, err := initializers.DB.From("operator").
		Select("operator_id").
		Where(goqu.C("operator_id").Eq(int(id))).
		ScanStruct(&operator)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up operator account"})
		return
	}
	if !found {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Operator account not found"})
		return
	}

	access, err := signToken(int(id), "access", accessTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	refresh, err := signToken(int(id), "refresh", refreshTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access":  access,
		"refresh": refresh,
	})
}

// GetOperatorProfile returns the operator resolved from the bearer token.
func GetOperatorProfile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"operator": currentOperator(c)})
}

// CreateOperator provisions another operator account. Only an existing
// authenticated operator can do this.
func CreateOperator(c *gin.Context) {
	var signup models.OperatorSignup
	if err := c.ShouldBindJSON(&signup); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	fe := fieldErrors{}
	if signup.Username == "" {
		fe["username"] = "Username is required"
	}
	if signup.Password == "" {
		fe["password"] = "Password is required"
	}
	if fe.respond(c) {
		return
	}

	count, err := initializers.DB.From("operator").
		Where(goqu.C("username").Eq(signup.Username)).
		Count()
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check username"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors{"username": "Username already exists"}})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(signup.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	var operatorID int
	insert := initializers.DB.Insert("operator").
		Rows(goqu.Record{
			"username":   signup.Username,
			"password":   string(passwordHash),
			"email":      signup.Email,
			"first_name": signup.FirstName,
			"last_name":  signup.LastName,
		}).
		Returning("operator_id")
	if _, err := insert.Executor().ScanVal(&operatorID); err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors{"username": "Username already exists"}})
			return
		}
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create operator account"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Operator account created successfully",
		"id":      operatorID,
	})
}
