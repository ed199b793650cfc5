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
	"github.com/stretchr/testify/assert"
)

var postCols = []string{
	"post_id", "title", "content", "excerpt", "category", "tags", "image",
	"status", "author_id", "author_name", "views", "created_at", "updated_at",
}

func postRow(rows *sqlmock.Rows, id int, title, status string) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(id, title, "Be still and know.", "", "peace", "", nil, status, 1, "testoperator", 0, now, now)
}

func TestGetPosts(t *testing.T) {
	tests := []struct {
		name          string
		authenticated bool
		statusQuery   string
		expectedCount int
	}{
		{
			name:          "anonymous sees published only",
			authenticated: false,
			expectedCount: 1,
		},
		{
			name:          "operator filters drafts",
			authenticated: true,
			statusQuery:   "draft",
			expectedCount: 1,
		},
		{
			name:          "operator requests everything",
			authenticated: true,
			statusQuery:   "all",
			expectedCount: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			rows := sqlmock.NewRows(postCols)
			postRow(rows, 1, "Morning Stillness", "published")
			if tt.expectedCount > 1 {
				postRow(rows, 2, "Unfinished Reflection", "draft")
			}
			mock.ExpectQuery("SELECT").WillReturnRows(rows)

			c, w := SetupTestContext()
			if tt.authenticated {
				SetAuthenticatedOperator(c, MockOperator())
			}
			c.Request = httptest.NewRequest(http.MethodGet, "/api/blog?status="+tt.statusQuery, nil)

			GetPosts(c)

			assert.Equal(t, http.StatusOK, w.Code)

			var posts []map[string]interface{}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
			assert.Len(t, posts, tt.expectedCount)
		})
	}
}

func TestGetPost(t *testing.T) {
	tests := []struct {
		name           string
		postStatus     string
		postExists     bool
		authenticated  bool
		expectedStatus int
	}{
		{
			name:           "published post visible to anyone",
			postStatus:     "published",
			postExists:     true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "draft hidden from anonymous readers",
			postStatus:     "draft",
			postExists:     true,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "draft visible to operator",
			postStatus:     "draft",
			postExists:     true,
			authenticated:  true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "post not found",
			postExists:     false,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			rows := sqlmock.NewRows(postCols)
			if tt.postExists {
				postRow(rows, 1, "Morning Stillness", tt.postStatus)
			}
			mock.ExpectQuery("SELECT").WillReturnRows(rows)

			c, w := SetupTestContext()
			if tt.authenticated {
				SetAuthenticatedOperator(c, MockOperator())
			}
			c.Params = []gin.Param{{Key: "id", Value: "1"}}
			c.Request = httptest.NewRequest(http.MethodGet, "/api/blog/1", nil)

			GetPost(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestCreatePostValidation(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedFields []string
	}{
		{
			name:           "missing everything",
			body:           `{}`,
			expectedFields: []string{"title", "content", "category"},
		},
		{
			name:           "unknown category",
			body:           `{"title": "T", "content": "C", "category": "velocity"}`,
			expectedFields: []string{"category"},
		},
		{
			name:           "unknown status",
			body:           `{"title": "T", "content": "C", "category": "peace", "status": "live"}`,
			expectedFields: []string{"status"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, cleanup := SetupTestDB(t)
			defer cleanup()

			c, w := SetupTestContext()
			SetAuthenticatedOperator(c, MockOperator())
			c.Request = httptest.NewRequest(http.MethodPost, "/api/blog", bytes.NewBufferString(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			CreatePost(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var response map[string]interface{}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			fieldErrs, ok := response["errors"].(map[string]interface{})
			assert.True(t, ok)
			for _, field := range tt.expectedFields {
				assert.Contains(t, fieldErrs, field)
			}
		})
	}
}
