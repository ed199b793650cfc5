package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"github.com/StillWaters/models"
)

// fieldErrors collects per-field validation messages for a 400 response.
type fieldErrors map[string]string

// respond writes the field-error body and reports whether validation failed.
func (fe fieldErrors) respond(c *gin.Context) bool {
	if len(fe) == 0 {
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"errors": fe})
	return true
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID", "details": err.Error()})
		return 0, false
	}
	return id, true
}

// isUniqueViolation reports whether err is a Postgres duplicate-key error.
// The constraint is the authoritative guard when two writers race past an
// existence check.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func isOperator(c *gin.Context) bool {
	return c.GetBool("authenticated")
}

func currentOperator(c *gin.Context) models.Operator {
	return c.MustGet("currentUser").(models.Operator)
}

// listStatus resolves the status filter for a public content listing.
// Anonymous callers only ever see published rows; an authenticated operator
// may select another status, or "all".
func listStatus(c *gin.Context) string {
	if !isOperator(c) {
		return models.StatusPublished
	}
	switch s := c.Query("status"); s {
	case models.StatusDraft, models.StatusPublished, models.StatusArchived, "all":
		return s
	default:
		return models.StatusPublished
	}
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
