package controllers

import (
	"log"
	"net/http"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"

	"github.com/StillWaters/initializers"
	"github.com/StillWaters/models"
	"github.com/StillWaters/services"
)

func fetchPrayerRequest(c *gin.Context, id int) (models.PrayerRequest, bool) {
	var prayer models.PrayerRequest
	found, err := initializers.DB.From("prayer_request").
		Where(goqu.C("prayer_request_id").Eq(id)).
		ScanStructContext(c, &prayer)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prayer request"})
		return prayer, false
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prayer request not found"})
		return prayer, false
	}
	return prayer, true
}

// CreatePrayerRequest accepts a prayer request from any visitor. Status
// always starts at "new"; operator notes cannot be set from this path.
func CreatePrayerRequest(c *gin.Context) {
	var input models.PrayerRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	fe := fieldErrors{}
	if input.Request == nil || *input.Request == "" {
		fe["request"] = "Request text is required"
	}
	if input.Category == nil {
		fe["category"] = "Category is required"
	} else if !models.ValidPrayerCategory(*input.Category) {
		fe["category"] = "Category must be one of: healing, family, financial, guidance, salvation, grief, thanksgiving, other"
	}
	if fe.respond(c) {
		return
	}

	isAnonymous := input.Is_Anonymous != nil && *input.Is_Anonymous
	allowSharing := input.Allow_Sharing != nil && *input.Allow_Sharing
	request := services.SanitizeText(*input.Request)

	var prayerID int
	insert := initializers.DB.Insert("prayer_request").
		Rows(goqu.Record{
			"name":          strOrEmpty(input.Name),
			"email":         strOrEmpty(input.Email),
			"category":      *input.Category,
			"request":       request,
			"is_anonymous":  isAnonymous,
			"allow_sharing": allowSharing,
			"status":        "new",
			"notes":         "",
		}).
		Returning("prayer_request_id")
	if _, err := insert.Executor().ScanVal(&prayerID); err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create prayer request"})
		return
	}

	prayer, ok := fetchPrayerRequest(c, prayerID)
	if !ok {
		return
	}

	// Let the operator know, without holding up the response.
	go func(p models.PrayerRequest) {
		if err := services.GetEmailService().NotifyPrayerRequest(p.DisplayName(), p.Category, p.Request, p.Is_Anonymous); err != nil {
			log.Printf("Prayer request notification not sent: %v", err)
		}
	}(prayer)

	c.JSON(http.StatusCreated, prayer)
}

func GetPrayerRequests(c *gin.Context) {
	var prayers []models.PrayerRequest
	err := initializers.DB.From("prayer_request").
		Order(goqu.C("created_at").Desc()).
		ScanStructsContext(c, &prayers)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prayer requests"})
		return
	}
	if prayers == nil {
		prayers = []models.PrayerRequest{}
	}

	c.JSON(http.StatusOK, prayers)
}

func GetPrayerRequest(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	prayer, ok := fetchPrayerRequest(c, id)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, prayer)
}

// UpdatePrayerRequest lets an operator edit a request, set notes, or move
// the status anywhere in the vocabulary. No transition graph is enforced.
func UpdatePrayerRequest(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	existing, ok := fetchPrayerRequest(c, id)
	if !ok {
		return
	}

	var input models.PrayerRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	fe := fieldErrors{}
	if input.Category != nil && !models.ValidPrayerCategory(*input.Category) {
		fe["category"] = "Category must be one of: healing, family, financial, guidance, salvation, grief, thanksgiving, other"
	}
	if input.Status != nil && !models.ValidPrayerStatus(*input.Status) {
		fe["status"] = "Status must be one of: new, praying, prayed, answered"
	}
	if fe.respond(c) {
		return
	}

	if input.Name != nil {
		existing.Name = *input.Name
	}
	if input.Email != nil {
		existing.Email = *input.Email
	}
	if input.Category != nil {
		existing.Category = *input.Category
	}
	if input.Request != nil {
		existing.Request = *input.Request
	}
	if input.Is_Anonymous != nil {
		existing.Is_Anonymous = *input.Is_Anonymous
	}
	if input.Allow_Sharing != nil {
		existing.Allow_Sharing = *input.Allow_Sharing
	}
	if input.Status != nil {
		existing.Status = *input.Status
	}
	if input.Notes != nil {
		existing.Notes = *input.Notes
	}

	update := initializers.DB.Update("prayer_request").
		Set(goqu.Record{
			"name":          existing.Name,
			"email":         existing.Email,
			"category":      existing.Category,
			"request":       existing.Request,
			"is_anonymous":  existing.Is_Anonymous,
			"allow_sharing": existing.Allow_Sharing,
			"status":        existing.Status,
			"notes":         existing.Notes,
			"updated_at":    goqu.L("NOW()"),
		}).
		Where(goqu.C("prayer_request_id").Eq(id))

	if _, err := update.Executor().Exec(); err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update prayer request"})
		return
	}

	prayer, ok := fetchPrayerRequest(c, id)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, prayer)
}

// DeletePrayerRequest removes a request. Any prayer testimonial pointing at
// it keeps its row; the schema nulls the reference.
func DeletePrayerRequest(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := initializers.DB.Delete("prayer_request").
		Where(goqu.C("prayer_request_id").Eq(id)).
		Executor().Exec()
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete prayer request"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prayer request not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Prayer request deleted successfully"})
}
