package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestTrackDownload(t *testing.T) {
	tests := []struct {
		name              string
		volumeID          string
		volumeExists      bool
		expectedStatus    int
		expectedDownloads float64
	}{
		{
			name:              "successful increment",
			volumeID:          "1",
			volumeExists:      true,
			expectedStatus:    http.StatusOK,
			expectedDownloads: 42,
		},
		{
			name:           "volume not found",
			volumeID:       "999",
			volumeExists:   false,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "invalid volume ID",
			volumeID:       "invalid",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.volumeID != "invalid" {
				rows := sqlmock.NewRows([]string{"downloads"})
				if tt.volumeExists {
					rows.AddRow(int(tt.expectedDownloads))
				}
				mock.ExpectQuery("UPDATE").WillReturnRows(rows)
			}

			c, w := SetupTestContext()
			c.Params = []gin.Param{{Key: "id", Value: tt.volumeID}}
			c.Request = httptest.NewRequest(http.MethodPatch, "/api/volumes/"+tt.volumeID+"/download", nil)

			TrackDownload(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var response map[string]interface{}
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				assert.Equal(t, tt.expectedDownloads, response["downloads"])
				assert.Equal(t, "Download tracked", response["message"])
			}
		})
	}
}

func TestTrackDownloadSequentialCounts(t *testing.T) {
	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()

	// Two tracked downloads on the same volume return strictly increasing
	// counts; the increment happens inside the UPDATE itself.
	mock.ExpectQuery("UPDATE").WillReturnRows(sqlmock.NewRows([]string{"downloads"}).AddRow(1))
	mock.ExpectQuery("UPDATE").WillReturnRows(sqlmock.NewRows([]string{"downloads"}).AddRow(2))

	for expected := 1; expected <= 2; expected++ {
		c, w := SetupTestContext()
		c.Params = []gin.Param{{Key: "id", Value: "1"}}
		c.Request = httptest.NewRequest(http.MethodPatch, "/api/volumes/1/download", nil)

		TrackDownload(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, float64(expected), response["downloads"])
	}
}
