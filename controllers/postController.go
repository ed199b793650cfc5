package controllers

import (
	"log"
	"net/http"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"

	"github.com/StillWaters/initializers"
	"github.com/StillWaters/models"
)

// postQuery selects all post columns plus the author display name derived
// from the joined operator account.
func postQuery() *goqu.SelectDataset {
	return initializers.DB.From("post").
		Select(
			goqu.I("post.post_id"),
			goqu.I("post.title"),
			goqu.I("post.content"),
			goqu.I("post.excerpt"),
			goqu.I("post.category"),
			goqu.I("post.tags"),
			goqu.I("post.image"),
			goqu.I("post.status"),
			goqu.I("post.author_id"),
			goqu.I("operator.username").As("author_name"),
			goqu.I("post.views"),
			goqu.I("post.created_at"),
			goqu.I("post.updated_at"),
		).
		LeftJoin(goqu.T("operator"), goqu.On(goqu.Ex{"post.author_id": goqu.I("operator.operator_id")}))
}

func fetchPost(c *gin.Context, id int) (models.Post, bool) {
	var post models.Post
	found, err := postQuery().Where(goqu.I("post.post_id").Eq(id)).ScanStructContext(c, &post)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
		return post, false
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return post, false
	}
	return post, true
}

// GetPosts lists posts newest-first. Anonymous callers see published rows
// only; operators may filter with ?status=.
func GetPosts(c *gin.Context) {
	query := postQuery().Order(goqu.I("post.created_at").Desc())
	if status := listStatus(c); status != "all" {
		query = query.Where(goqu.I("post.status").Eq(status))
	}

	var posts []models.Post
	if err := query.ScanStructsContext(c, &posts); err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	c.JSON(http.StatusOK, posts)
}

// GetPost returns a single post. Unpublished posts are visible to
// authenticated operators only; everyone else gets a 404.
func GetPost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	post, ok := fetchPost(c, id)
	if !ok {
		return
	}

	if post.Status != models.StatusPublished && !isOperator(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, post)
}

func validatePostFields(input models.PostInput, fe fieldErrors) {
	if input.Category != nil && !models.ValidPostCategory(*input.Category) {
		fe["category"] = "Category must be one of: peace, gratitude, strength, worship, faithfulness, guidance"
	}
	if input.Status != nil && !models.ValidContentStatus(*input.Status) {
		fe["status"] = "Status must be one of: draft, published, archived"
	}
}

func CreatePost(c *gin.Context) {
	var input models.PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	fe := fieldErrors{}
	if input.Title == nil || *input.Title == "" {
		fe["title"] = "Title is required"
	}
	if input.Content == nil || *input.Content == "" {
		fe["content"] = "Content is required"
	}
	if input.Category == nil {
		fe["category"] = "Category is required"
	}
	validatePostFields(input, fe)
	if fe.respond(c) {
		return
	}

	status := models.StatusDraft
	if input.Status != nil {
		status = *input.Status
	}

	// New posts are attributed to the creating operator unless the payload
	// names another author.
	authorID := input.Author_ID
	if authorID == nil {
		id := currentOperator(c).Operator_ID
		authorID = &id
	}

	var postID int
	insert := initializers.DB.Insert("post").
		Rows(goqu.Record{
			"title":     *input.Title,
			"content":   *input.Content,
			"excerpt":   strOrEmpty(input.Excerpt),
			"category":  *input.Category,
			"tags":      strOrEmpty(input.Tags),
			"image":     input.Image,
			"status":    status,
			"author_id": authorID,
		}).
		Returning("post_id")
	if _, err := insert.Executor().ScanVal(&postID); err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	post, ok := fetchPost(c, postID)
	if !ok {
		return
	}

	c.JSON(http.StatusCreated, post)
}

// UpdatePost merges the supplied fields over the stored row. Serves both
// PUT and PATCH; absent fields are retained.
func UpdatePost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	existing, ok := fetchPost(c, id)
	if !ok {
		return
	}

	var input models.PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	fe := fieldErrors{}
	validatePostFields(input, fe)
	if fe.respond(c) {
		return
	}

	if input.Title != nil {
		existing.Title = *input.Title
	}
	if input.Content != nil {
		existing.Content = *input.Content
	}
	if input.Excerpt != nil {
		existing.Excerpt = *input.Excerpt
	}
	if input.Category != nil {
		existing.Category = *input.Category
	}
	if input.Tags != nil {
		existing.Tags = *input.Tags
	}
	if input.Image != nil {
		existing.Image = input.Image
	}
	if input.Status != nil {
		existing.Status = *input.Status
	}
	if input.Author_ID != nil {
		existing.Author_ID = input.Author_ID
	}

	update := initializers.DB.Update("post").
		Set(goqu.Record{
			"title":      existing.Title,
			"content":    existing.Content,
			"excerpt":    existing.Excerpt,
			"category":   existing.Category,
			"tags":       existing.Tags,
			"image":      existing.Image,
			"status":     existing.Status,
			"author_id":  existing.Author_ID,
			"updated_at": goqu.L("NOW()"),
		}).
		Where(goqu.C("post_id").Eq(id))

	if _, err := update.Executor().Exec(); err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	post, ok := fetchPost(c, id)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost removes a post; its comments go with it via the schema's
// cascade rule.
func DeletePost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := initializers.DB.Delete("post").
		Where(goqu.C("post_id").Eq(id)).
		Executor().Exec()
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// GetPostComments returns the approved comments for a post, newest-first.
func GetPostComments(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var comments []models.Comment
	err := initializers.DB.From("comment").
		Where(goqu.C("post_id").Eq(id), goqu.C("status").Eq("approved")).
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
