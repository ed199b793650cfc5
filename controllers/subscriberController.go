package controllers

import (
	"log"
	"net/http"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"

	"github.com/StillWaters/initializers"
	"github.com/StillWaters/models"
)

func fetchSubscriber(c *gin.Context, id int) (models.Subscriber, bool) {
	var subscriber models.Subscriber
	found, err := initializers.DB.From("subscriber").
		Where(goqu.C("subscriber_id").Eq(id)).
		ScanStructContext(c, &subscriber)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscriber"})
		return subscriber, false
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscriber not found"})
		return subscriber, false
	}
	return subscriber, true
}

// Subscribe signs a visitor up for the mailing list. Re-subscribing an
// address that is already on the list is treated as success, so the
// endpoint never leaks whether an email is known.
func Subscribe(c *gin.Context) {
	var input models.SubscriberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	fe := fieldErrors{}
	if input.Email == nil || *input.Email == "" {
		fe["email"] = "Email is required"
	}
	if fe.respond(c) {
		return
	}

	count, err := initializers.DB.From("subscriber").
		Where(goqu.C("email").Eq(*input.Email)).
		Count()
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check subscription"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusOK, gin.H{"message": "You are already subscribed!"})
		return
	}

	insert := initializers.DB.Insert("subscriber").
		Rows(goqu.Record{
			"email":  *input.Email,
			"name":   strOrEmpty(input.Name),
			"status": "active",
		})
	if _, err := insert.Executor().Exec(); err != nil {
		// Someone else inserted the same address between the check and
		// the insert. Still a success from the visitor's point of view.
		if isUniqueViolation(err) {
			c.JSON(http.StatusOK, gin.H{"message": "You are already subscribed!"})
			return
		}
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to subscribe"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Successfully subscribed!"})
}

// CreateSubscriber is the collection create. Duplicate emails resolve to
// the existing row rather than an error.
func CreateSubscriber(c *gin.Context) {
	var input models.SubscriberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	fe := fieldErrors{}
	if input.Email == nil || *input.Email == "" {
		fe["email"] = "Email is required"
	}
	if input.Status != nil && !models.ValidSubscriberStatus(*input.Status) {
		fe["status"] = "Status must be one of: active, unsubscribed, bounced"
	}
	if fe.respond(c) {
		return
	}

	status := "active"
	if input.Status != nil {
		status = *input.Status
	}

	var subscriberID int
	insert := initializers.DB.Insert("subscriber").
		Rows(goqu.Record{
			"email":  *input.Email,
			"name":   strOrEmpty(input.Name),
			"status": status,
		}).
		Returning("subscriber_id")
	if _, err := insert.Executor().ScanVal(&subscriberID); err != nil {
		if isUniqueViolation(err) {
			var existing models.Subscriber
			found, lookupErr := initializers.DB.From("subscriber").
				Where(goqu.C("email").Eq(*input.Email)).
				ScanStructContext(c, &existing)
			if lookupErr != nil || !found {
				log.Println(lookupErr)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subscriber"})
				return
			}
			c.JSON(http.StatusOK, existing)
			return
		}
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subscriber"})
		return
	}

	subscriber, ok := fetchSubscriber(c, subscriberID)
	if !ok {
		return
	}

	c.JSON(http.StatusCreated, subscriber)
}

func GetSubscribers(c *gin.Context) {
	var subscribers []models.Subscriber
	err := initializers.DB.From("subscriber").
		Order(goqu.C("subscribed_at").Desc()).
		ScanStructsContext(c, &subscribers)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscribers"})
		return
	}
	if subscribers == nil {
		subscribers = []models.Subscriber{}
	}

	c.JSON(http.StatusOK, subscribers)
}

func GetSubscriber(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	subscriber, ok := fetchSubscriber(c, id)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, subscriber)
}

func UpdateSubscriber(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	existing, ok := fetchSubscriber(c, id)
	if !ok {
		return
	}

	var input models.SubscriberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	fe := fieldErrors{}
	if input.Status != nil && !models.ValidSubscriberStatus(*input.Status) {
		fe["status"] = "Status must be one of: active, unsubscribed, bounced"
	}
	if fe.respond(c) {
		return
	}

	if input.Email != nil {
		existing.Email = *input.Email
	}
	if input.Name != nil {
		existing.Name = *input.Name
	}
	if input.Status != nil {
		existing.Status = *input.Status
	}

	update := initializers.DB.Update("subscriber").
		Set(goqu.Record{
			"email":      existing.Email,
			"name":       existing.Name,
			"status":     existing.Status,
			"updated_at": goqu.L("NOW()"),
		}).
		Where(goqu.C("subscriber_id").Eq(id))

	if _, err := update.Executor().Exec(); err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors{"email": "Email is already subscribed"}})
			return
		}
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update subscriber"})
		return
	}

	subscriber, ok := fetchSubscriber(c, id)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, subscriber)
}

func DeleteSubscriber(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := initializers.DB.Delete("subscriber").
		Where(goqu.C("subscriber_id").Eq(id)).
		Executor().Exec()
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete subscriber"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscriber not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscriber deleted successfully"})
}
