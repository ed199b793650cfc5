package models

import "time"

// PrayerTestimonial shares the prayer request category vocabulary. The
// prayer request reference is a weak link: deleting the request nulls it
// out rather than removing the testimonial.
type PrayerTestimonial struct {
	Prayer_Testimonial_ID int       `json:"id" goqu:"skipinsert"`
	Author_Name           string    `json:"author_name"`
	Category              string    `json:"category"`
	Testimony             string    `json:"testimony"`
	Prayer_Request_ID     *int      `json:"prayer_request"`
	Status                string    `json:"status"`
	Display_Order         int       `json:"order"`
	Created_At            time.Time `json:"created_at" goqu:"skipinsert"`
	Updated_At            time.Time `json:"updated_at" goqu:"skipinsert"`
}

type PrayerTestimonialInput struct {
	Author_Name       *string `json:"author_name"`
	Category          *string `json:"category"`
	Testimony         *string `json:"testimony"`
	Prayer_Request_ID *int    `json:"prayer_request"`
	Status            *string `json:"status"`
	Display_Order     *int    `json:"order"`
}
