package models

import "time"

var ContactStatuses = []string{"new", "read", "replied", "archived"}

func ValidContactStatus(s string) bool {
	return oneOf(ContactStatuses, s)
}

type ContactMessage struct {
	Contact_Message_ID int       `json:"id" goqu:"skipinsert"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Subject            string    `json:"subject"`
	Message            string    `json:"message"`
	Status             string    `json:"status"`
	Created_At         time.Time `json:"created_at" goqu:"skipinsert"`
}

type ContactMessageInput struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Subject *string `json:"subject"`
	Message *string `json:"message"`
	Status  *string `json:"status"`
}
