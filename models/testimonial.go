package models

import "time"

type Testimonial struct {
	Testimonial_ID int       `json:"id" goqu:"skipinsert"`
	Author_Name    string    `json:"author_name"`
	Author_Role    string    `json:"author_role"`
	Quote          string    `json:"quote"`
	Image          *string   `json:"image"`
	Status         string    `json:"status"`
	Display_Order  int       `json:"order"`
	Created_At     time.Time `json:"created_at" goqu:"skipinsert"`
	Updated_At     time.Time `json:"updated_at" goqu:"skipinsert"`
}

type TestimonialInput struct {
	Author_Name   *string `json:"author_name"`
	Author_Role   *string `json:"author_role"`
	Quote         *string `json:"quote"`
	Image         *string `json:"image"`
	Status        *string `json:"status"`
	Display_Order *int    `json:"order"`
}
