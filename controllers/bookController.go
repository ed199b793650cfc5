package controllers

import (
	"log"
	"net/http"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"

	"github.com/StillWaters/initializers"
	"github.com/StillWaters/models"
)

func fetchBook(c *gin.Context, id int) (models.Book, bool) {
	var book models.Book
	found, err := initializers.DB.From("book").
		Where(goqu.C("book_id").Eq(id)).
		ScanStructContext(c, &book)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch book"})
		return book, false
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return book, false
	}
	return book, true
}

// GetBooks lists books with featured titles first, then newest.
func GetBooks(c *gin.Context) {
	query := initializers.DB.From("book").
		Order(goqu.C("featured").Desc(), goqu.C("created_at").Desc())
	if status := listStatus(c); status != "all" {
		query = query.Where(goqu.C("status").Eq(status))
	}

	var books []models.Book
	if err := query.ScanStructsContext(c, &books); err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch books"})
		return
	}
	if books == nil {
		books = []models.Book{}
	}

	c.JSON(http.StatusOK, books)
}

func GetBook(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	book, ok := fetchBook(c, id)
	if !ok {
		return
	}

	if book.Status != models.StatusPublished && !isOperator(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}

	c.JSON(http.StatusOK, book)
}

func validateBookFields(input models.BookInput, fe fieldErrors) {
	if input.Category != nil && !models.ValidBookCategory(*input.Category) {
		fe["category"] = "Category must be one of: devotional, poetry, memoir, study, inspiration"
	}
	if input.Status != nil && !models.ValidContentStatus(*input.Status) {
		fe["status"] = "Status must be one of: draft, published, archived"
	}
}

func CreateBook(c *gin.Context) {
	var input models.BookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	fe := fieldErrors{}
	if input.Title == nil || *input.Title == "" {
		fe["title"] = "Title is required"
	}
	if input.Description == nil || *input.Description == "" {
		fe["description"] = "Description is required"
	}
	if input.Category == nil {
		fe["category"] = "Category is required"
	}
	validateBookFields(input, fe)
	if fe.respond(c) {
		return
	}

	status := models.StatusPublished
	if input.Status != nil {
		status = *input.Status
	}

	featured := input.Featured != nil && *input.Featured

	var bookID int
	insert := initializers.DB.Insert("book").
		Rows(goqu.Record{
			"title":            *input.Title,
			"subtitle":         strOrEmpty(input.Subtitle),
			"description":      *input.Description,
			"excerpt":          strOrEmpty(input.Excerpt),
			"category":         *input.Category,
			"author":           strOrEmpty(input.Author),
			"isbn":             strOrEmpty(input.ISBN),
			"pages":            input.Pages,
			"price":            strOrEmpty(input.Price),
			"cover_image":      input.Cover_Image,
			"preview_pdf":      input.Preview_PDF,
			"purchase_link":    strOrEmpty(input.Purchase_Link),
			"publication_date": input.Publication_Date,
			"status":           status,
			"featured":         featured,
		}).
		Returning("book_id")
	if _, err := insert.Executor().ScanVal(&bookID); err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create book"})
		return
	}

	book, ok := fetchBook(c, bookID)
	if !ok {
		return
	}

	c.JSON(http.StatusCreated, book)
}

func UpdateBook(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	existing, ok := fetchBook(c, id)
	if !ok {
		return
	}

	var input models.BookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	fe := fieldErrors{}
	validateBookFields(input, fe)
	if fe.respond(c) {
		return
	}

	if input.Title != nil {
		existing.Title = *input.Title
	}
	if input.Subtitle != nil {
		existing.Subtitle = *input.Subtitle
	}
	if input.Description != nil {
		existing.Description = *input.Description
	}
	if input.Excerpt != nil {
		existing.Excerpt = *input.Excerpt
	}
	if input.Category != nil {
		existing.Category = *input.Category
	}
	if input.Author != nil {
		existing.Author = *input.Author
	}
	if input.ISBN != nil {
		existing.ISBN = *input.ISBN
	}
	if input.Pages != nil {
		existing.Pages = input.Pages
	}
	if input.Price != nil {
		existing.Price = *input.Price
	}
	if input.Cover_Image != nil {
		existing.Cover_Image = input.Cover_Image
	}
	if input.Preview_PDF != nil {
		existing.Preview_PDF = input.Preview_PDF
	}
	if input.Purchase_Link != nil {
		existing.Purchase_Link = *input.Purchase_Link
	}
	if input.Publication_Date != nil {
		existing.Publication_Date = input.Publication_Date
	}
	if input.Status != nil {
		existing.Status = *input.Status
	}
	if input.Featured != nil {
		existing.Featured = *input.Featured
	}

	update := initializers.DB.Update("book").
		Set(goqu.Record{
			"title":            existing.Title,
			"subtitle":         existing.Subtitle,
			"description":      existing.Description,
			"excerpt":          existing.Excerpt,
			"category":         existing.Category,
			"author":           existing.Author,
			"isbn":             existing.ISBN,
			"pages":            existing.Pages,
			"price":            existing.Price,
			"cover_image":      existing.Cover_Image,
			"preview_pdf":      existing.Preview_PDF,
			"purchase_link":    existing.Purchase_Link,
			"publication_date": existing.Publication_Date,
			"status":           existing.Status,
			"featured":         existing.Featured,
			"updated_at":       goqu.L("NOW()"),
		}).
		Where(goqu.C("book_id").Eq(id))

	if _, err := update.Executor().Exec(); err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update book"})
		return
	}

	book, ok := fetchBook(c, id)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, book)
}

func DeleteBook(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := initializers.DB.Delete("book").
		Where(goqu.C("book_id").Eq(id)).
		Executor().Exec()
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete book"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Book deleted successfully"})
}
