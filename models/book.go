package models

import "time"

var BookCategories = []string{"devotional", "poetry", "memoir", "study", "inspiration"}

func ValidBookCategory(c string) bool {
	return oneOf(BookCategories, c)
}

type Book struct {
	Book_ID          int        `json:"id" goqu:"skipinsert"`
	Title            string     `json:"title"`
	Subtitle         string     `json:"subtitle"`
	Description      string     `json:"description"`
	Excerpt          string     `json:"excerpt"`
	Category         string     `json:"category"`
	Author           string     `json:"author"`
	ISBN             string     `json:"isbn"`
	Pages            *int       `json:"pages"`
	Price            string     `json:"price"`
	Cover_Image      *string    `json:"cover_image"`
	Preview_PDF      *string    `json:"preview_pdf"`
	Purchase_Link    string     `json:"purchase_link"`
	Publication_Date *time.Time `json:"publication_date"`
	Status           string     `json:"status"`
	Featured         bool       `json:"featured"`
	Sales_Count      int        `json:"sales_count" goqu:"skipinsert"`
	Created_At       time.Time  `json:"created_at" goqu:"skipinsert"`
	Updated_At       time.Time  `json:"updated_at" goqu:"skipinsert"`
}

type BookInput struct {
	Title            *string    `json:"title"`
	Subtitle         *string    `json:"subtitle"`
	Description      *string    `json:"description"`
	Excerpt          *string    `json:"excerpt"`
	Category         *string    `json:"category"`
	Author           *string    `json:"author"`
	ISBN             *string    `json:"isbn"`
	Pages            *int       `json:"pages"`
	Price            *string    `json:"price"`
	Cover_Image      *string    `json:"cover_image"`
	Preview_PDF      *string    `json:"preview_pdf"`
	Purchase_Link    *string    `json:"purchase_link"`
	Publication_Date *time.Time `json:"publication_date"`
	Status           *string    `json:"status"`
	Featured         *bool      `json:"featured"`
}
