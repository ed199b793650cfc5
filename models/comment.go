package models

import "time"

var CommentStatuses = []string{"pending", "approved", "rejected"}

func ValidCommentStatus(s string) bool {
	return oneOf(CommentStatuses, s)
}

// Comment belongs to exactly one post; deleting the post removes its
// comments at the database layer.
type Comment struct {
	Comment_ID   int       `json:"id" goqu:"skipinsert"`
	Post_ID      int       `json:"post"`
	Author_Name  string    `json:"author_name"`
	Author_Email string    `json:"author_email"`
	Content      string    `json:"content"`
	Status       string    `json:"status"`
	Created_At   time.Time `json:"created_at" goqu:"skipinsert"`
}

type CommentInput struct {
	Post_ID      *int    `json:"post"`
	Author_Name  *string `json:"author_name"`
	Author_Email *string `json:"author_email"`
	Content      *string `json:"content"`
	Status       *string `json:"status"`
}
