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

func TestGetSetting(t *testing.T) {
	settingCols := []string{"site_setting_id", "setting_key", "setting_value", "updated_at"}

	tests := []struct {
		name           string
		param          string
		exists         bool
		expectedStatus int
	}{
		{name: "lookup by id", param: "1", exists: true, expectedStatus: http.StatusOK},
		{name: "lookup by key", param: "site_title", exists: true, expectedStatus: http.StatusOK},
		{name: "unknown key", param: "missing_key", exists: false, expectedStatus: http.StatusNotFound},
		{name: "unknown id", param: "999", exists: false, expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			rows := sqlmock.NewRows(settingCols)
			if tt.exists {
				rows.AddRow(1, "site_title", "Still Waters", time.Now())
			}
			mock.ExpectQuery("SELECT").WillReturnRows(rows)

			c, w := SetupTestContext()
			SetAuthenticatedOperator(c, MockOperator())
			c.Params = []gin.Param{{Key: "id", Value: tt.param}}
			c.Request = httptest.NewRequest(http.MethodGet, "/api/settings/"+tt.param, nil)

			GetSetting(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var response map[string]interface{}
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				assert.Equal(t, "site_title", response["setting_key"])
			}
		})
	}
}

func TestCreateSetting(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]string
		insertErr      error
		expectedStatus int
		expectedField  string
	}{
		{
			name:           "successful creation",
			body:           map[string]string{"setting_key": "site_title", "setting_value": "Still Waters"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "duplicate key",
			body:           map[string]string{"setting_key": "site_title", "setting_value": "Still Waters"},
			insertErr:      &pq.Error{Code: "23505"},
			expectedStatus: http.StatusBadRequest,
			expectedField:  "setting_key",
		},
		{
			name:           "missing key",
			body:           map[string]string{"setting_value": "orphaned"},
			expectedStatus: http.StatusBadRequest,
			expectedField:  "setting_key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.body["setting_key"] != "" {
				if tt.insertErr != nil {
					mock.ExpectQuery("INSERT").WillReturnError(tt.insertErr)
				} else {
					mock.ExpectQuery("INSERT").
						WillReturnRows(sqlmock.NewRows([]string{"site_setting_id"}).AddRow(1))
					mock.ExpectQuery("SELECT").
						WillReturnRows(sqlmock.NewRows([]string{"site_setting_id", "setting_key", "setting_value", "updated_at"}).
							AddRow(1, "site_title", "Still Waters", time.Now()))
				}
			}

			c, w := SetupTestContext()
			SetAuthenticatedOperator(c, MockOperator())
			payload, _ := json.Marshal(tt.body)
			c.Request = httptest.NewRequest(http.MethodPost, "/api/settings", bytes.NewBuffer(payload))
			c.Request.Header.Set("Content-Type", "application/json")

			CreateSetting(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedField != "" {
				var response map[string]interface{}
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				fieldErrs, ok := response["errors"].(map[string]interface{})
				assert.True(t, ok)
				assert.Contains(t, fieldErrs, tt.expectedField)
			}
		})
	}
}
