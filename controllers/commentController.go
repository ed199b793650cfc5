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

func fetchComment(c *gin.Context, id int) (models.Comment, bool) {
	var comment models.Comment
	found, err := initializers.DB.From("comment").
		Where(goqu.C("comment_id").Eq(id)).
		ScanStructContext(c, &comment)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comment"})
		return comment, false
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return comment, false
	}
	return comment, true
}

// CreateComment accepts a reader comment on a blog post. Comments start
// out pending and only show publicly once an operator approves them.
func CreateComment(c *gin.Context) {
	var input models.CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	fe := fieldErrors{}
	if input.Post_ID == nil {
		fe["post"] = "Post is required"
	}
	if input.Author_Name == nil || *input.Author_Name == "" {
		fe["author_name"] = "Name is required"
	}
	if input.Content == nil || *input.Content == "" {
		fe["content"] = "Content is required"
	}
	if input.Status != nil && !models.ValidCommentStatus(*input.Status) {
		fe["status"] = "Status must be one of: pending, approved, rejected"
	}
	if fe.respond(c) {
		return
	}

	count, err := initializers.DB.From("post").
		Where(goqu.C("post_id").Eq(*input.Post_ID)).
		Count()
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify post"})
		return
	}
	if count == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Blog post not found"})
		return
	}

	status := "pending"
	if input.Status != nil {
		status = *input.Status
	}

	var commentID int
	insert := initializers.DB.Insert("comment").
		Rows(goqu.Record{
			"post_id":      *input.Post_ID,
			"author_name":  *input.Author_Name,
			"author_email": strOrEmpty(input.Author_Email),
			"content":      services.SanitizeText(*input.Content),
			"status":       status,
		}).
		Returning("comment_id")
	if _, err := insert.Executor().ScanVal(&commentID); err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	comment, ok := fetchComment(c, commentID)
	if !ok {
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "We have successfully received your reflection. Thank you for sharing your thoughts with our community.",
		"data":    comment,
	})
}

func GetComments(c *gin.Context) {
	var comments []models.Comment
	err := initializers.DB.From("comment").
		Order(goqu.C("created_at").Desc()).
		ScanStructsContext(c, &comments)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}

	c.JSON(http.StatusOK, comments)
}

func GetComment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	comment, ok := fetchComment(c, id)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, comment)
}

// UpdateComment is how an operator moderates: flip the status to approved
// or rejected, or fix up the text.
func UpdateComment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	existing, ok := fetchComment(c, id)
	if !ok {
		return
	}

	var input models.CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	fe := fieldErrors{}
	if input.Status != nil && !models.ValidCommentStatus(*input.Status) {
		fe["status"] = "Status must be one of: pending, approved, rejected"
	}
	if fe.respond(c) {
		return
	}

	if input.Author_Name != nil {
		existing.Author_Name = *input.Author_Name
	}
	if input.Author_Email != nil {
		existing.Author_Email = *input.Author_Email
	}
	if input.Content != nil {
		existing.Content = *input.Content
	}
	if input.Status != nil {
		existing.Status = *input.Status
	}

	update := initializers.DB.Update("comment").
		Set(goqu.Record{
			"author_name":  existing.Author_Name,
			"author_email": existing.Author_Email,
			"content":      existing.Content,
			"status":       existing.Status,
		}).
		Where(goqu.C("comment_id").Eq(id))

	if _, err := update.Executor().Exec(); err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update comment"})
		return
	}

	comment, ok := fetchComment(c, id)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, comment)
}

func DeleteComment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := initializers.DB.Delete("comment").
		Where(goqu.C("comment_id").Eq(id)).
		Executor().Exec()
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
