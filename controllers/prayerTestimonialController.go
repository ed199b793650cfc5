package controllers

import (
	"log"
	"net/http"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"

	"github.com/StillWaters/initializers"
	"github.com/StillWaters/models"
)

func fetchPrayerTestimonial(c *gin.Context, id int) (models.PrayerTestimonial, bool) {
	var testimonial models.PrayerTestimonial
	found, err := initializers.DB.From("prayer_testimonial").
		Where(goqu.C("prayer_testimonial_id").Eq(id)).
		ScanStructContext(c, &testimonial)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prayer testimonial"})
		return testimonial, false
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prayer testimonial not found"})
		return testimonial, false
	}
	return testimonial, true
}

func GetPrayerTestimonials(c *gin.Context) {
	query := initializers.DB.From("prayer_testimonial").
		Order(goqu.C("display_order").Asc(), goqu.C("created_at").Desc())
	if status := listStatus(c); status != "all" {
		query = query.Where(goqu.C("status").Eq(status))
	}

	var testimonials []models.PrayerTestimonial
	if err := query.ScanStructsContext(c, &testimonials); err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prayer testimonials"})
		return
	}
	if testimonials == nil {
		testimonials = []models.PrayerTestimonial{}
	}

	c.JSON(http.StatusOK, testimonials)
}

func GetPrayerTestimonial(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	testimonial, ok := fetchPrayerTestimonial(c, id)
	if !ok {
		return
	}

	if testimonial.Status != models.StatusPublished && !isOperator(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prayer testimonial not found"})
		return
	}

	c.JSON(http.StatusOK, testimonial)
}

// prayerRequestExists reports whether the referenced prayer request row is
// present. Used to reject dangling references at write time.
func prayerRequestExists(id int) (bool, error) {
	count, err := initializers.DB.From("prayer_request").
		Where(goqu.C("prayer_request_id").Eq(id)).
		Count()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func CreatePrayerTestimonial(c *gin.Context) {
	var input models.PrayerTestimonialInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	fe := fieldErrors{}
	if input.Author_Name == nil || *input.Author_Name == "" {
		fe["author_name"] = "Name is required"
	}
	if input.Testimony == nil || *input.Testimony == "" {
		fe["testimony"] = "Testimony is required"
	}
	if input.Category == nil {
		fe["category"] = "Category is required"
	} else if !models.ValidPrayerCategory(*input.Category) {
		fe["category"] = "Category must be one of: healing, family, financial, guidance, salvation, grief, thanksgiving, other"
	}
	if input.Status != nil && !models.ValidContentStatus(*input.Status) {
		fe["status"] = "Status must be one of: draft, published, archived"
	}
	if input.Prayer_Request_ID != nil {
		exists, err := prayerRequestExists(*input.Prayer_Request_ID)
		if err != nil {
			log.Println(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify prayer request"})
			return
		}
		if !exists {
			fe["prayer_request"] = "Prayer request not found"
		}
	}
	if fe.respond(c) {
		return
	}

	status := models.StatusPublished
	if input.Status != nil {
		status = *input.Status
	}

	displayOrder := 0
	if input.Display_Order != nil {
		displayOrder = *input.Display_Order
	}

	var testimonialID int
	insert := initializers.DB.Insert("prayer_testimonial").
		Rows(goqu.Record{
			"author_name":       *input.Author_Name,
			"category":          *input.Category,
			"testimony":         *input.Testimony,
			"prayer_request_id": input.Prayer_Request_ID,
			"status":            status,
			"display_order":     displayOrder,
		}).
		Returning("prayer_testimonial_id")
	if _, err := insert.Executor().ScanVal(&testimonialID); err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create prayer testimonial"})
		return
	}

	testimonial, ok := fetchPrayerTestimonial(c, testimonialID)
	if !ok {
		return
	}

	c.JSON(http.StatusCreated, testimonial)
}

func UpdatePrayerTestimonial(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	existing, ok := fetchPrayerTestimonial(c, id)
	if !ok {
		return
	}

	var input models.PrayerTestimonialInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	fe := fieldErrors{}
	if input.Category != nil && !models.ValidPrayerCategory(*input.Category) {
		fe["category"] = "Category must be one of: healing, family, financial, guidance, salvation, grief, thanksgiving, other"
	}
	if input.Status != nil && !models.ValidContentStatus(*input.Status) {
		fe["status"] = "Status must be one of: draft, published, archived"
	}
	if input.Prayer_Request_ID != nil {
		exists, err := prayerRequestExists(*input.Prayer_Request_ID)
		if err != nil {
			log.Println(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify prayer request"})
			return
		}
		if !exists {
			fe["prayer_request"] = "Prayer request not found"
		}
	}
	if fe.respond(c) {
		return
	}

	if input.Author_Name != nil {
		existing.Author_Name = *input.Author_Name
	}
	if input.Category != nil {
		existing.Category = *input.Category
	}
	if input.Testimony != nil {
		existing.Testimony = *input.Testimony
	}
	if input.Prayer_Request_ID != nil {
		existing.Prayer_Request_ID = input.Prayer_Request_ID
	}
	if input.Status != nil {
		existing.Status = *input.Status
	}
	if input.Display_Order != nil {
		existing.Display_Order = *input.Display_Order
	}

	update := initializers.DB.Update("prayer_testimonial").
		Set(goqu.Record{
			"author_name":       existing.Author_Name,
			"category":          existing.Category,
			"testimony":         existing.Testimony,
			"prayer_request_id": existing.Prayer_Request_ID,
			"status":            existing.Status,
			"display_order":     existing.Display_Order,
			"updated_at":        goqu.L("NOW()"),
		}).
		Where(goqu.C("prayer_testimonial_id").Eq(id))

	if _, err := update.Executor().Exec(); err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update prayer testimonial"})
		return
	}

	testimonial, ok := fetchPrayerTestimonial(c, id)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, testimonial)
}

func DeletePrayerTestimonial(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := initializers.DB.Delete("prayer_testimonial").
		Where(goqu.C("prayer_testimonial_id").Eq(id)).
		Executor().Exec()
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete prayer testimonial"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prayer testimonial not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Prayer testimonial deleted successfully"})
}
