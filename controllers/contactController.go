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

func fetchContactMessage(c *gin.Context, id int) (models.ContactMessage, bool) {
	var message models.ContactMessage
	found, err := initializers.DB.From("contact_message").
		Where(goqu.C("contact_message_id").Eq(id)).
		ScanStructContext(c, &message)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contact message"})
		return message, false
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contact message not found"})
		return message, false
	}
	return message, true
}

// CreateContactMessage accepts a message from any visitor.
func CreateContactMessage(c *gin.Context) {
	var input models.ContactMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	fe := fieldErrors{}
	if input.Name == nil || *input.Name == "" {
		fe["name"] = "Name is required"
	}
	if input.Email == nil || *input.Email == "" {
		fe["email"] = "Email is required"
	}
	if input.Subject == nil || *input.Subject == "" {
		fe["subject"] = "Subject is required"
	}
	if input.Message == nil || *input.Message == "" {
		fe["message"] = "Message is required"
	}
	if fe.respond(c) {
		return
	}

	body := services.SanitizeText(*input.Message)

	var messageID int
	insert := initializers.DB.Insert("contact_message").
		Rows(goqu.Record{
			"name":    *input.Name,
			"email":   *input.Email,
			"subject": *input.Subject,
			"message": body,
			"status":  "new",
		}).
		Returning("contact_message_id")
	if _, err := insert.Executor().ScanVal(&messageID); err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create contact message"})
		return
	}

	message, ok := fetchContactMessage(c, messageID)
	if !ok {
		return
	}

	go func(m models.ContactMessage) {
		if err := services.GetEmailService().NotifyContactMessage(m.Name, m.Email, m.Subject, m.Message); err != nil {
			log.Printf("Contact notification not sent: %v", err)
		}
	}(message)

	c.JSON(http.StatusCreated, message)
}

func GetContactMessages(c *gin.Context) {
	var messages []models.ContactMessage
	err := initializers.DB.From("contact_message").
		Order(goqu.C("created_at").Desc()).
		ScanStructsContext(c, &messages)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contact messages"})
		return
	}
	if messages == nil {
		messages = []models.ContactMessage{}
	}

	c.JSON(http.StatusOK, messages)
}

func GetContactMessage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	message, ok := fetchContactMessage(c, id)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, message)
}

func UpdateContactMessage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	existing, ok := fetchContactMessage(c, id)
	if !ok {
		return
	}

	var input models.ContactMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	fe := fieldErrors{}
	if input.Status != nil && !models.ValidContactStatus(*input.Status) {
		fe["status"] = "Status must be one of: new, read, replied, archived"
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
	if input.Subject != nil {
		existing.Subject = *input.Subject
	}
	if input.Message != nil {
		existing.Message = *input.Message
	}
	if input.Status != nil {
		existing.Status = *input.Status
	}

	update := initializers.DB.Update("contact_message").
		Set(goqu.Record{
			"name":    existing.Name,
			"email":   existing.Email,
			"subject": existing.Subject,
			"message": existing.Message,
			"status":  existing.Status,
		}).
		Where(goqu.C("contact_message_id").Eq(id))

	if _, err := update.Executor().Exec(); err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update contact message"})
		return
	}

	message, ok := fetchContactMessage(c, id)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, message)
}

func DeleteContactMessage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := initializers.DB.Delete("contact_message").
		Where(goqu.C("contact_message_id").Eq(id)).
		Executor().Exec()
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete contact message"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contact message not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contact message deleted successfully"})
}
