package controllers

import (
	"log"
	"net/http"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"

	"github.com/StillWaters/initializers"
	"github.com/StillWaters/models"
)

func fetchTestimonial(c *gin.Context, id int) (models.Testimonial, bool) {
	var testimonial models.Testimonial
	found, err := initializers.DB.From("testimonial").
		Where(goqu.C("testimonial_id").Eq(id)).
		ScanStructContext(c, &testimonial)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch testimonial"})
		return testimonial, false
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Testimonial not found"})
		return testimonial, false
	}
	return testimonial, true
}

// GetTestimonials lists testimonials in display order, ties broken
// newest-first.
func GetTestimonials(c *gin.Context) {
	query := initializers.DB.From("testimonial").
		Order(goqu.C("display_order").Asc(), goqu.C("created_at").Desc())
	if status := listStatus(c); status != "all" {
		query = query.Where(goqu.C("status").Eq(status))
	}

	var testimonials []models.Testimonial
	if err := query.ScanStructsContext(c, &testimonials); err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch testimonials"})
		return
	}
	if testimonials == nil {
		testimonials = []models.Testimonial{}
	}

	c.JSON(http.StatusOK, testimonials)
}

func GetTestimonial(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	testimonial, ok := fetchTestimonial(c, id)
	if !ok {
		return
	}

	if testimonial.Status != models.StatusPublished && !isOperator(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Testimonial not found"})
		return
	}

	c.JSON(http.StatusOK, testimonial)
}

func CreateTestimonial(c *gin.Context) {
	var input models.TestimonialInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	fe := fieldErrors{}
	if input.Author_Name == nil || *input.Author_Name == "" {
		fe["author_name"] = "Name is required"
	}
	if input.Quote == nil || *input.Quote == "" {
		fe["quote"] = "Quote is required"
	}
	if input.Status != nil && !models.ValidContentStatus(*input.Status) {
		fe["status"] = "Status must be one of: draft, published, archived"
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
	insert := initializers.DB.Insert("testimonial").
		Rows(goqu.Record{
			"author_name":   *input.Author_Name,
			"author_role":   strOrEmpty(input.Author_Role),
			"quote":         *input.Quote,
			"image":         input.Image,
			"status":        status,
			"display_order": displayOrder,
		}).
		Returning("testimonial_id")
	if _, err := insert.Executor().ScanVal(&testimonialID); err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create testimonial"})
		return
	}

	testimonial, ok := fetchTestimonial(c, testimonialID)
	if !ok {
		return
	}

	c.JSON(http.StatusCreated, testimonial)
}

func UpdateTestimonial(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	existing, ok := fetchTestimonial(c, id)
	if !ok {
		return
	}

	var input models.TestimonialInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	fe := fieldErrors{}
	if input.Status != nil && !models.ValidContentStatus(*input.Status) {
		fe["status"] = "Status must be one of: draft, published, archived"
	}
	if fe.respond(c) {
		return
	}

	if input.Author_Name != nil {
		existing.Author_Name = *input.Author_Name
	}
	if input.Author_Role != nil {
		existing.Author_Role = *input.Author_Role
	}
	if input.Quote != nil {
		existing.Quote = *input.Quote
	}
	if input.Image != nil {
		existing.Image = input.Image
	}
	if input.Status != nil {
		existing.Status = *input.Status
	}
	if input.Display_Order != nil {
		existing.Display_Order = *input.Display_Order
	}

	update := initializers.DB.Update("testimonial").
		Set(goqu.Record{
			"author_name":   existing.Author_Name,
			"author_role":   existing.Author_Role,
			"quote":         existing.Quote,
			"image":         existing.Image,
			"status":        existing.Status,
			"display_order": existing.Display_Order,
			"updated_at":    goqu.L("NOW()"),
		}).
		Where(goqu.C("testimonial_id").Eq(id))

	if _, err := update.Executor().Exec(); err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update testimonial"})
		return
	}

	testimonial, ok := fetchTestimonial(c, id)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, testimonial)
}

func DeleteTestimonial(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := initializers.DB.Delete("testimonial").
		Where(goqu.C("testimonial_id").Eq(id)).
		Executor().Exec()
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete testimonial"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Testimonial not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Testimonial deleted successfully"})
}
