package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestSubscribe(t *testing.T) {
	tests := []struct {
		name            string
		body            map[string]interface{}
		existingCount   int
		insertErr       error
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:            "new subscription",
			body:            map[string]interface{}{"email": "new@example.com", "name": "New Reader"},
			existingCount:   0,
			expectedStatus:  http.StatusCreated,
			expectedMessage: "Successfully subscribed!",
		},
		{
			name:            "already subscribed",
			body:            map[string]interface{}{"email": "known@example.com"},
			existingCount:   1,
			expectedStatus:  http.StatusOK,
			expectedMessage: "You are already subscribed!",
		},
		{
			name:            "duplicate insert race",
			body:            map[string]interface{}{"email": "racing@example.com"},
			existingCount:   0,
			insertErr:       &pq.Error{Code: "23505"},
			expectedStatus:  http.StatusOK,
			expectedMessage: "You are already subscribed!",
		},
		{
			name:           "missing email",
			body:           map[string]interface{}{"name": "No Email"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.expectedStatus != http.StatusBadRequest {
				mock.ExpectQuery("SELECT").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.existingCount))

				if tt.existingCount == 0 {
					if tt.insertErr != nil {
						mock.ExpectExec("INSERT").WillReturnError(tt.insertErr)
					} else {
						mock.ExpectExec("INSERT").WillReturnResult(sqlmock.NewResult(1, 1))
					}
				}
			}

			c, w := SetupTestContext()
			payload, _ := json.Marshal(tt.body)
			c.Request = httptest.NewRequest(http.MethodPost, "/api/subscribers/subscribe", bytes.NewBuffer(payload))
			c.Request.Header.Set("Content-Type", "application/json")

			Subscribe(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

			if tt.expectedMessage != "" {
				assert.Equal(t, tt.expectedMessage, response["message"])
			}
			if tt.expectedStatus == http.StatusBadRequest {
				fieldErrs, ok := response["errors"].(map[string]interface{})
				assert.True(t, ok)
				assert.Contains(t, fieldErrs, "email")
			}
		})
	}
}

func TestUpdateSubscriberStatus(t *testing.T) {
	tests := []struct {
		name           string
		status         string
		expectedStatus int
	}{
		{name: "unsubscribe", status: "unsubscribed", expectedStatus: http.StatusOK},
		{name: "invalid status", status: "paused", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			subscriberCols := []string{"subscriber_id", "email", "name", "status", "subscribed_at", "updated_at"}
			mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(subscriberCols).
				AddRow(1, "known@example.com", "Reader", "active", time.Now(), time.Now()))
			if tt.expectedStatus == http.StatusOK {
				mock.ExpectExec("UPDATE").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(subscriberCols).
					AddRow(1, "known@example.com", "Reader", tt.status, time.Now(), time.Now()))
			}

			c, w := SetupTestContext()
			SetAuthenticatedOperator(c, MockOperator())
			c.Params = []gin.Param{{Key: "id", Value: "1"}}
			payload, _ := json.Marshal(map[string]string{"status": tt.status})
			c.Request = httptest.NewRequest(http.MethodPatch, "/api/subscribers/1", bytes.NewBuffer(payload))
			c.Request.Header.Set("Content-Type", "application/json")

			UpdateSubscriber(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
