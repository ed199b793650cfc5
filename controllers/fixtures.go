package controllers

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/StillWaters/models"
)

// Test fixture data for use in tests

// MockOperator creates a sample operator account for testing
func MockOperator() models.Operator {
	return models.Operator{
		Operator_ID: 1,
		Username:    "testoperator",
		Email:       "operator@example.com",
		First_Name:  "Test",
		Last_Name:   "Operator",
		Created_At:  time.Now(),
		Updated_At:  time.Now(),
	}
}

// MockOperatorWithPassword creates a sample operator with a bcrypt hashed
// password. The plaintext password is "password123".
func MockOperatorWithPassword() models.Operator {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	operator := MockOperator()
	operator.Password = string(hashedPassword)
	return operator
}
