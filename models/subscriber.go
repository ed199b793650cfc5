package models

import "time"

var SubscriberStatuses = []string{"active", "unsubscribed", "bounced"}

func ValidSubscriberStatus(s string) bool {
	return oneOf(SubscriberStatuses, s)
}

// Subscriber is a newsletter recipient. Email uniqueness is enforced by
// the database; a duplicate submission is a soft success, not an error.
type Subscriber struct {
	Subscriber_ID int       `json:"id" goqu:"skipinsert"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Status        string    `json:"status"`
	Subscribed_At time.Time `json:"subscribed_at" goqu:"skipinsert"`
	Updated_At    time.Time `json:"updated_at" goqu:"skipinsert"`
}

type SubscriberInput struct {
	Email  *string `json:"email"`
	Name   *string `json:"name"`
	Status *string `json:"status"`
}
