package models

import "time"

var PostCategories = []string{"peace", "gratitude", "strength", "worship", "faithfulness", "guidance"}

func ValidPostCategory(c string) bool {
	return oneOf(PostCategories, c)
}

// Post is a blog entry. Author_Name is derived from the joined operator
// account and is never written back.
type Post struct {
	Post_ID     int       `json:"id" goqu:"skipinsert"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Excerpt     string    `json:"excerpt"`
	Category    string    `json:"category"`
	Tags        string    `json:"tags"`
	Image       *string   `json:"image"`
	Status      string    `json:"status"`
	Author_ID   *int      `json:"author"`
	Author_Name *string   `json:"author_name" goqu:"skipinsert,skipupdate"`
	Views       int       `json:"views" goqu:"skipinsert"`
	Created_At  time.Time `json:"created_at" goqu:"skipinsert"`
	Updated_At  time.Time `json:"updated_at" goqu:"skipinsert"`
}

type PostInput struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Excerpt   *string `json:"excerpt"`
	Category  *string `json:"category"`
	Tags      *string `json:"tags"`
	Image     *string `json:"image"`
	Status    *string `json:"status"`
	Author_ID *int    `json:"author"`
}
